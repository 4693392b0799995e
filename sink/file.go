// Package sink persists finished tables: to timestamped delimited
// files, or to a Kafka topic for streaming consumers.
package sink

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Table is any tabular result that can serialize itself as delimited text.
type Table interface {
	WriteCSV(w io.Writer) error
}

// FileSink writes tables into a fixed directory. The directory is not
// created implicitly; writes into a missing directory fail.
type FileSink struct {
	dir    string
	logger *slog.Logger
}

// NewFileSink creates a sink rooted at dir.
func NewFileSink(dir string, logger *slog.Logger) *FileSink {
	return &FileSink{dir: dir, logger: logger}
}

// Write serializes the table and writes it to filename inside the sink
// directory, returning the full path. The table is encoded in memory
// first so an encoding failure leaves no file behind.
func (s *FileSink) Write(table Table, filename string) (string, error) {
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		return "", fmt.Errorf("encode table: %w", err)
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write table: %w", err)
	}

	s.logger.Info("table written", "path", path, "bytes", buf.Len())
	return path, nil
}
