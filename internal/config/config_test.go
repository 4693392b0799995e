package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.worldbank.org/v2", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 1000, cfg.PerPage)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "flourish_data", cfg.FlourishDir)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("WB_BASE_URL", "http://localhost:9000/v2")
	t.Setenv("WB_TIMEOUT", "30s")
	t.Setenv("WB_PER_PAGE", "250")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("FLOURISH_DIR", "/tmp/flourish")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_TOPIC", "indicator-rows")
	t.Setenv("KAFKA_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/v2", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 250, cfg.PerPage)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/tmp/flourish", cfg.FlourishDir)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "indicator-rows", cfg.KafkaTopic)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("WB_TIMEOUT", "not-a-duration")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("negative per page", func(t *testing.T) {
		t.Setenv("WB_PER_PAGE", "-5")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("kafka enabled without brokers", func(t *testing.T) {
		t.Setenv("KAFKA_ENABLED", "true")
		t.Setenv("KAFKA_TOPIC", "indicator-rows")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("kafka enabled without topic", func(t *testing.T) {
		t.Setenv("KAFKA_ENABLED", "true")
		t.Setenv("KAFKA_BROKERS", "broker1:9092")
		_, err := Load()
		assert.Error(t, err)
	})
}
