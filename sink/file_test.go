package sink

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DarrenConyngham/world-bank-data-project/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTable() dataset.YearTable {
	return dataset.YearTable{
		Indicator: "SP.POP.TOTL",
		Rows: []dataset.YearRow{
			{Region: "Canada", Year: 2010, Value: 34.0},
			{Region: "United States", Year: 2010, Value: 309.3},
		},
	}
}

func TestFileSink_Write(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(dir, discardLogger())

	path, err := s.Write(sampleTable(), "SP.POP.TOTL_01-01-2026 00-00.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SP.POP.TOTL_01-01-2026 00-00.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Region,SP.POP.TOTL", lines[0])
}

func TestFileSink_MissingDirectory(t *testing.T) {
	s := NewFileSink(filepath.Join(t.TempDir(), "does-not-exist"), discardLogger())

	_, err := s.Write(sampleTable(), "out.csv")
	require.Error(t, err)
}

type failingTable struct{}

func (failingTable) WriteCSV(io.Writer) error {
	return errors.New("encode boom")
}

func TestFileSink_EncodeFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(dir, discardLogger())

	_, err := s.Write(failingTable{}, "out.csv")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial file should be written")
}
