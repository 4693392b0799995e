package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// flagURLFormat builds the icon URL for a country from its ISO2 code.
const flagURLFormat = "https://www.countryflags.io/%s/flat/64.png"

// PivotYears converts long-form observations into a wide frame with one
// row per country and one float column per year. Years absent for a
// country, and observations reported as missing, become NaN cells.
func PivotYears(obs []Observation) dataframe.DataFrame {
	yearSet := make(map[int]struct{})
	values := make(map[string]map[int]float64)
	for _, o := range obs {
		yearSet[o.Year] = struct{}{}
		if _, ok := values[o.CountryName]; !ok {
			values[o.CountryName] = make(map[int]float64)
		}
		if !o.Missing {
			values[o.CountryName][o.Year] = o.Value
		}
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([]series.Series, 0, len(years)+1)
	cols = append(cols, series.New(names, series.String, "Name"))
	for _, year := range years {
		col := make([]float64, len(names))
		for i, name := range names {
			v, ok := values[name][year]
			if !ok {
				v = math.NaN()
			}
			col[i] = v
		}
		cols = append(cols, series.New(col, series.Float, strconv.Itoa(year)))
	}

	return dataframe.New(cols...)
}

// JoinCountryMeta merges country metadata onto a pivoted observation
// frame by display name. Aggregate regions are excluded before the
// join. Rows whose name matches no country record are dropped from the
// joined frame and returned as the unmatched list, sorted.
func JoinCountryMeta(pivot dataframe.DataFrame, countries []Country) (dataframe.DataFrame, []string, error) {
	names := make([]string, 0, len(countries))
	regions := make([]string, 0, len(countries))
	urls := make([]string, 0, len(countries))
	known := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		if c.Region == RegionAggregates {
			continue
		}
		names = append(names, c.Name)
		regions = append(regions, c.Region)
		urls = append(urls, fmt.Sprintf(flagURLFormat, c.ISO2))
		known[c.Name] = struct{}{}
	}

	meta := dataframe.New(
		series.New(names, series.String, "Name"),
		series.New(regions, series.String, "Region"),
		series.New(urls, series.String, "Image URL"),
	)

	joined := meta.InnerJoin(pivot, "Name")
	if err := joined.Error(); err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("join country metadata: %w", err)
	}
	joined = joined.Arrange(dataframe.Sort("Name"))
	if err := joined.Error(); err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("sort joined table: %w", err)
	}

	var unmatched []string
	for _, name := range pivot.Col("Name").Records() {
		if _, ok := known[name]; !ok {
			unmatched = append(unmatched, name)
		}
	}
	sort.Strings(unmatched)

	return joined, unmatched, nil
}

// NewYearTable builds the tidy year-indexed table from observations.
// Missing values are dropped; rows are sorted by region name, then year.
func NewYearTable(indicator string, obs []Observation) YearTable {
	rows := make([]YearRow, 0, len(obs))
	for _, o := range obs {
		if o.Missing {
			continue
		}
		rows = append(rows, YearRow{Region: o.CountryName, Year: o.Year, Value: o.Value})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Region != rows[j].Region {
			return rows[i].Region < rows[j].Region
		}
		return rows[i].Year < rows[j].Year
	})
	return YearTable{Indicator: indicator, Rows: rows}
}

// Years returns the distinct years present in the table, ascending.
func (t YearTable) Years() []int {
	seen := make(map[int]struct{})
	var years []int
	for _, r := range t.Rows {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	sort.Ints(years)
	return years
}

// MaxYear returns the latest year present in the table. The second
// return value is false when the table is empty.
func (t YearTable) MaxYear() (int, bool) {
	max := 0
	found := false
	for _, r := range t.Rows {
		if !found || r.Year > max {
			max = r.Year
			found = true
		}
	}
	return max, found
}

// FilterYear returns a table containing only the rows for the given year.
func (t YearTable) FilterYear(year int) YearTable {
	out := YearTable{Indicator: t.Indicator}
	for _, r := range t.Rows {
		if r.Year == year {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// SortedByValueDesc returns a copy of the rows ordered by value,
// largest first. Ties keep the region ordering.
func (t YearTable) SortedByValueDesc() []YearRow {
	rows := make([]YearRow, len(t.Rows))
	copy(rows, t.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})
	return rows
}
