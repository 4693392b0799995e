// Command genfixtures generates World Bank API JSON fixtures for test
// suites and local fake servers. Output matches the v2 wire format: each
// observation page is a two-element envelope of page metadata and rows,
// and the country catalogue carries its metadata numbers as quoted
// strings, exactly as the live API serves them.
//
// Values are deterministic: each country grows from a fixed base at a
// fixed rate, so regenerating the fixtures never churns test assertions.
//
// Usage:
//
//	go run ./cmd/genfixtures \
//	  -out wbapi/testdata \
//	  -indicator SP.POP.TOTL \
//	  -start 2010 -end 2012 \
//	  -page-size 4
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// lastUpdated is the fixed catalogue revision date stamped into every
// page envelope.
var lastUpdated = time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

type fixtureCountry struct {
	iso2   string
	iso3   string
	name   string
	region string
	base   float64 // indicator value in the first year
	growth float64 // year-over-year growth rate
}

// fixtureCountries is the fixed roster behind every generated series.
// The World row exercises the aggregate-exclusion path downstream.
var fixtureCountries = []fixtureCountry{
	{iso2: "US", iso3: "USA", name: "United States", region: "North America", base: 309_300_000, growth: 0.0072},
	{iso2: "CA", iso3: "CAN", name: "Canada", region: "North America", base: 34_000_000, growth: 0.0110},
	{iso2: "GB", iso3: "GBR", name: "United Kingdom", region: "Europe & Central Asia", base: 62_800_000, growth: 0.0078},
	{iso2: "JP", iso3: "JPN", name: "Japan", region: "East Asia & Pacific", base: 128_100_000, growth: -0.0015},
	{iso2: "1W", iso3: "WLD", name: "World", region: "Aggregates", base: 6_920_000_000, growth: 0.0115},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "directory to write fixture files into")
	indicator := flag.String("indicator", "SP.POP.TOTL", "indicator code stamped on every row")
	indicatorName := flag.String("indicator-name", "Population, total", "indicator display name")
	start := flag.Int("start", 2010, "first year of the series")
	end := flag.Int("end", 2012, "last year of the series")
	pageSize := flag.Int("page-size", 4, "rows per observation page")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *start > *end {
		return fmt.Errorf("start year %d is after end year %d", *start, *end)
	}
	if *pageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", *pageSize)
	}

	rows := observationRows(*indicator, *indicatorName, *start, *end)
	pages := paginate(rows, *pageSize)
	for i, page := range pages {
		name := fmt.Sprintf("%s_page_%d.json", strings.ReplaceAll(*indicator, ".", "_"), i+1)
		envelope := []any{
			pageMeta{
				Page:        i + 1,
				Pages:       len(pages),
				PerPage:     *pageSize,
				Total:       len(rows),
				LastUpdated: lastUpdated.Format("2006-01-02"),
			},
			page,
		}
		if err := writeJSON(filepath.Join(*out, name), envelope); err != nil {
			return fmt.Errorf("writing observation page %d: %w", i+1, err)
		}
		log.Printf("wrote %s: %d rows", name, len(page))
	}

	countriesPath := filepath.Join(*out, "countries.json")
	if err := writeJSON(countriesPath, countriesEnvelope()); err != nil {
		return fmt.Errorf("writing country catalogue: %w", err)
	}
	log.Printf("wrote countries.json: %d countries", len(fixtureCountries))

	log.Printf("total: %d observations across %d pages", len(rows), len(pages))
	return nil
}

func observationRows(indicator, indicatorName string, startYear, endYear int) []observationRow {
	var rows []observationRow
	// The live API serves years newest first within each country.
	for _, c := range fixtureCountries {
		for year := endYear; year >= startYear; year-- {
			v := c.base * math.Pow(1+c.growth, float64(year-startYear))
			value := math.Round(v)
			rows = append(rows, observationRow{
				Indicator:   idValue{ID: indicator, Value: indicatorName},
				Country:     idValue{ID: c.iso2, Value: c.name},
				CountryISO3: c.iso3,
				Date:        strconv.Itoa(year),
				Value:       &value,
				Decimal:     0,
			})
		}
	}
	return rows
}

func paginate(rows []observationRow, pageSize int) [][]observationRow {
	var pages [][]observationRow
	for len(rows) > 0 {
		n := pageSize
		if n > len(rows) {
			n = len(rows)
		}
		pages = append(pages, rows[:n])
		rows = rows[n:]
	}
	return pages
}

func countriesEnvelope() []any {
	rows := make([]countryRow, 0, len(fixtureCountries))
	for _, c := range fixtureCountries {
		rows = append(rows, countryRow{
			ID:       c.iso3,
			ISO2Code: c.iso2,
			Name:     c.name,
			Region:   regionValue{Value: c.region},
		})
	}
	// The countries endpoint quotes its metadata numbers.
	meta := quotedMeta{
		Page:    "1",
		Pages:   "1",
		PerPage: strconv.Itoa(len(rows)),
		Total:   strconv.Itoa(len(rows)),
	}
	return []any{meta, rows}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type pageMeta struct {
	Page        int    `json:"page"`
	Pages       int    `json:"pages"`
	PerPage     int    `json:"per_page"`
	Total       int    `json:"total"`
	LastUpdated string `json:"lastupdated"`
}

type quotedMeta struct {
	Page    string `json:"page"`
	Pages   string `json:"pages"`
	PerPage string `json:"per_page"`
	Total   string `json:"total"`
}

type idValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type observationRow struct {
	Indicator   idValue  `json:"indicator"`
	Country     idValue  `json:"country"`
	CountryISO3 string   `json:"countryiso3code"`
	Date        string   `json:"date"`
	Value       *float64 `json:"value"`
	Unit        string   `json:"unit"`
	ObsStatus   string   `json:"obs_status"`
	Decimal     int      `json:"decimal"`
}

type regionValue struct {
	ID       string `json:"id"`
	ISO2Code string `json:"iso2code"`
	Value    string `json:"value"`
}

type countryRow struct {
	ID       string      `json:"id"`
	ISO2Code string      `json:"iso2Code"`
	Name     string      `json:"name"`
	Region   regionValue `json:"region"`
}
