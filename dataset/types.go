package dataset

import "github.com/go-gota/gota/dataframe"

// RegionAggregates is the region value the World Bank assigns to
// non-country rollups like "World" or "Euro area".
const RegionAggregates = "Aggregates"

// Observation is one numeric reading of an indicator for a
// country-year pair. Missing marks observations the source reported
// with a null value.
type Observation struct {
	CountryCode string
	CountryName string
	Year        int
	Value       float64
	Missing     bool
}

// Country is static reference data about a location.
type Country struct {
	ISO2   string
	Name   string
	Region string
}

// WideTable is the flourish bar-chart-race format: one row per
// country, columns Name, Region, Image URL, then one column per year.
// Unmatched lists observation country names that found no matching
// country metadata and were dropped by the join.
type WideTable struct {
	Indicator string
	Frame     dataframe.DataFrame
	Unmatched []string
}

// YearRow is a single (region, year, value) reading.
type YearRow struct {
	Region string  `json:"region"`
	Year   int     `json:"year"`
	Value  float64 `json:"value"`
}

// YearTable is the tidy plotting format: one row per (region, year)
// with missing values dropped, sorted by region then year.
type YearTable struct {
	Indicator string
	Rows      []YearRow
}
