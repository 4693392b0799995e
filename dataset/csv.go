package dataset

import (
	"fmt"
	"io"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// timestampLayout matches the original download filenames: day-month-year
// followed by hour-minute, e.g. "31-08-2026 14-05".
const timestampLayout = "02-01-2006 15-04"

// FlourishFilename names a chart-race file for an indicator at a point
// in time.
func FlourishFilename(indicator string, now time.Time) string {
	return fmt.Sprintf("flourish_%s_%s.csv", indicator, now.Format(timestampLayout))
}

// IndexedFilename names a year-indexed file for an indicator at a point
// in time.
func IndexedFilename(indicator string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", indicator, now.Format(timestampLayout))
}

// WriteCSV writes the wide table as delimited text with a header row.
// Cells without an observation are rendered as NaN.
func (t WideTable) WriteCSV(w io.Writer) error {
	if err := t.Frame.WriteCSV(w); err != nil {
		return fmt.Errorf("write chart-race table: %w", err)
	}
	return nil
}

// WriteCSV writes the year-indexed table as delimited text. The file
// carries only the Region and indicator value columns; the year index
// is not written, matching the original download format.
func (t YearTable) WriteCSV(w io.Writer) error {
	regions := make([]string, len(t.Rows))
	values := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		regions[i] = r.Region
		values[i] = r.Value
	}
	frame := dataframe.New(
		series.New(regions, series.String, "Region"),
		series.New(values, series.Float, t.Indicator),
	)
	if err := frame.Error(); err != nil {
		return fmt.Errorf("build year-indexed frame: %w", err)
	}
	if err := frame.WriteCSV(w); err != nil {
		return fmt.Errorf("write year-indexed table: %w", err)
	}
	return nil
}
