package worldbank

import (
	"log/slog"

	"github.com/DarrenConyngham/world-bank-data-project/internal/observability"
)

// Option customizes a Service during construction.
type Option func(*Service)

// WithSource replaces the World Bank API client with another
// observation source, e.g. a fake in tests.
func WithSource(src Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithLogger replaces the default environment-configured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics replaces the shared default-registry metrics, which tests
// use to avoid cross-test registration conflicts.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithFlourishDir overrides the directory chart-race files are written to.
func WithFlourishDir(dir string) Option {
	return func(s *Service) {
		s.flourishDir = dir
	}
}

// WithOutputDir overrides the directory year-indexed files and chart
// images are written to.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		s.outputDir = dir
	}
}

// WithRowPublisher attaches a streaming sink that receives year-indexed
// rows whenever a persisted table is built.
func WithRowPublisher(p RowPublisher) Option {
	return func(s *Service) {
		s.rows = p
	}
}
