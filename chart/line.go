// Package chart renders year-indexed tables as PNG line and bar charts.
package chart

import (
	"fmt"
	"path/filepath"

	"github.com/DarrenConyngham/world-bank-data-project/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// LineOptions configures the line chart renderer.
type LineOptions struct {
	Title     string
	Width     float64 // inches; 0 means 18
	Height    float64 // inches; 0 means 10
	YMin      *float64
	YMax      *float64
	Save      bool
	OutputDir string
}

// Line renders one line per region across the year axis. When Save is
// set the chart is written to "<title>_line.png" in OutputDir and the
// full path is returned; otherwise the path is empty.
func Line(table dataset.YearTable, opts LineOptions) (string, error) {
	if len(table.Rows) == 0 {
		return "", fmt.Errorf("line chart for %s: %w", table.Indicator, dataset.ErrEmptyTable)
	}

	title := opts.Title
	if title == "" {
		title = "Graph"
	}

	years := table.Years()
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s from %d to %d", title, years[0], years[len(years)-1])
	p.X.Label.Text = "Year"
	p.Y.Label.Text = title
	p.Legend.Top = true

	if opts.YMin != nil {
		p.Y.Min = *opts.YMin
	}
	if opts.YMax != nil {
		p.Y.Max = *opts.YMax
	}

	for i, region := range regionOrder(table) {
		line, err := plotter.NewLine(regionPoints(table, region))
		if err != nil {
			return "", fmt.Errorf("build line for %s: %w", region, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(region, line)
	}

	if !opts.Save {
		return "", nil
	}

	path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_line.png", title))
	if err := p.Save(inches(opts.Width, 18), inches(opts.Height, 10), path); err != nil {
		return "", fmt.Errorf("save line chart: %w", err)
	}
	return path, nil
}

// regionOrder returns the distinct regions in table row order, which is
// alphabetical for tables built by dataset.NewYearTable.
func regionOrder(table dataset.YearTable) []string {
	seen := make(map[string]struct{})
	var regions []string
	for _, r := range table.Rows {
		if _, ok := seen[r.Region]; ok {
			continue
		}
		seen[r.Region] = struct{}{}
		regions = append(regions, r.Region)
	}
	return regions
}

func regionPoints(table dataset.YearTable, region string) plotter.XYs {
	var pts plotter.XYs
	for _, r := range table.Rows {
		if r.Region == region {
			pts = append(pts, plotter.XY{X: float64(r.Year), Y: r.Value})
		}
	}
	return pts
}

func inches(v, fallback float64) vg.Length {
	if v <= 0 {
		v = fallback
	}
	return vg.Length(v) * vg.Inch
}
