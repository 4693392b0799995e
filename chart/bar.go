package chart

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"

	"github.com/DarrenConyngham/world-bank-data-project/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// darkSlateGrey matches the original default bar colour.
var darkSlateGrey = color.RGBA{R: 0x2f, G: 0x4f, B: 0x4f, A: 0xff}

// BarOptions configures the bar chart renderer.
type BarOptions struct {
	Title     string
	Width     float64 // inches; 0 means 18
	Height    float64 // inches; 0 means 10
	Margin    float64 // x-axis headroom multiplier; 0 means 1.1
	Decimals  int     // label decimal places
	Color     color.Color
	Save      bool
	OutputDir string
}

// Bar renders a single-year table as horizontal bars ordered largest to
// smallest, with inline value labels. The x-axis maximum is scaled by
// the margin multiplier so labels are not clipped. When Save is set the
// chart is written to "<title>_bar.png" in OutputDir and the full path
// is returned.
func Bar(table dataset.YearTable, opts BarOptions) (string, error) {
	if len(table.Rows) == 0 {
		return "", fmt.Errorf("bar chart for %s: %w", table.Indicator, dataset.ErrEmptyTable)
	}

	title := opts.Title
	if title == "" {
		title = "Graph"
	}
	margin := opts.Margin
	if margin <= 0 {
		margin = 1.1
	}
	barColor := opts.Color
	if barColor == nil {
		barColor = darkSlateGrey
	}

	// Largest value on top: nominal index 0 draws at the bottom, so the
	// descending order is reversed for display.
	sorted := table.SortedByValueDesc()
	n := len(sorted)
	names := make([]string, n)
	values := make(plotter.Values, n)
	labels := make([]string, n)
	labelXYs := make(plotter.XYs, n)
	maxValue := sorted[0].Value
	for i, row := range sorted {
		j := n - 1 - i
		names[j] = row.Region
		values[j] = row.Value
		labels[j] = " " + FormatValue(row.Value, opts.Decimals)
		labelXYs[j] = plotter.XY{X: row.Value, Y: float64(j)}
	}

	year, _ := table.MaxYear()
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s in %d", title, year)
	p.X.Label.Text = title
	p.X.Max = maxValue * margin

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return "", fmt.Errorf("build bars: %w", err)
	}
	bars.Horizontal = true
	bars.Color = barColor
	p.Add(bars)
	p.NominalY(names...)

	valueLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labels})
	if err != nil {
		return "", fmt.Errorf("build value labels: %w", err)
	}
	p.Add(valueLabels)

	if !opts.Save {
		return "", nil
	}

	path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_bar.png", title))
	if err := p.Save(inches(opts.Width, 18), inches(opts.Height, 10), path); err != nil {
		return "", fmt.Errorf("save bar chart: %w", err)
	}
	return path, nil
}

// FormatValue renders a bar label rounded to the requested number of
// decimal places. Non-positive decimal counts produce integer labels.
func FormatValue(v float64, decimals int) string {
	if decimals <= 0 {
		decimals = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
