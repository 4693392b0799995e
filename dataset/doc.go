// Package dataset models World Bank indicator data and reshapes it into
// the tabular forms the downstream consumers expect.
//
// # Data Source
//
// Observations originate from the World Bank API v2, available at
// https://api.worldbank.org/v2/. An indicator is a coded statistic
// series such as "SP.POP.TOTL" (total population) or
// "NY.GDP.MKTP.CD" (GDP, current US$); the full catalogue is listed on
// the World Bank data pages. The wbapi package fetches the long-form
// observation set (one row per country-year pair) and the static
// country metadata; this package only transforms what it is handed.
//
// # Country Metadata Conventions
//
// Country records carry an ISO 3166-1 alpha-2 code, a display name,
// and a region. The region value "Aggregates" marks non-country
// rollups such as "Euro area" or "World"; country-level outputs must
// exclude those rows. Joining observations onto metadata matches the
// observation's country display name against the metadata name, which
// is the same string-equality join the World Bank's own downloads rely
// on. Names that fail to match are dropped from the joined table and
// reported on the result instead of being silently lost.
//
// # Table Shapes
//
// WideTable is the "flourish" bar-chart-race format: one row per
// country, one column per year, plus Region and Image URL columns. The
// Image URL is derived from the ISO2 code via countryflags.io.
//
// YearTable is the tidy plotting format: one row per (region, year)
// with the indicator value, rows with missing values dropped, sorted
// by region name. Both table kinds carry their indicator code
// explicitly so nothing downstream depends on remote column naming.
package dataset
