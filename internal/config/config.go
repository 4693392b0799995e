package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds library defaults, populated from environment variables.
// Everything here can also be overridden programmatically through the
// service options.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	PerPage   int
	LogLevel  string
	LogFormat string

	// Output directories for persisted tables.
	FlourishDir string
	OutputDir   string

	// Optional Kafka row sink.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying
// defaults where unset.
func Load() (*Config, error) {
	timeoutStr := envOrDefault("WB_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid WB_TIMEOUT")
	}

	perPage, err := parsePerPage()
	if err != nil {
		return nil, err
	}

	kafkaBrokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		BaseURL:      envOrDefault("WB_BASE_URL", "https://api.worldbank.org/v2"),
		Timeout:      timeout,
		PerPage:      perPage,
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		LogFormat:    envOrDefault("LOG_FORMAT", "text"),
		FlourishDir:  envOrDefault("FLOURISH_DIR", "flourish_data"),
		OutputDir:    envOrDefault("OUTPUT_DIR", "."),
		KafkaBrokers: kafkaBrokers,
		KafkaTopic:   os.Getenv("KAFKA_TOPIC"),
		KafkaEnabled: kafkaEnabled,
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("WB_BASE_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is not set")
	}

	return cfg, nil
}

func parsePerPage() (int, error) {
	s := envOrDefault("WB_PER_PAGE", "1000")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid WB_PER_PAGE")
	}
	return n, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
