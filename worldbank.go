// Package worldbank fetches macroeconomic indicator series from the
// World Bank, reshapes them for bar-chart-race tools and static
// charting, optionally persists the results as timestamped CSV files,
// and renders line and bar charts.
//
// The package is a library with no command or network surface of its
// own; construct a Service and call its operations:
//
//	svc, err := worldbank.New()
//	if err != nil { ... }
//	table, err := svc.YearIndexedTable(ctx, worldbank.TableRequest{
//		Indicator: "SP.POP.TOTL",
//		StartYear: 2010,
//		EndYear:   2020,
//		Locations: []string{"USA", "CAN"},
//		Persist:   true,
//	})
package worldbank

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DarrenConyngham/world-bank-data-project/chart"
	"github.com/DarrenConyngham/world-bank-data-project/dataset"
	"github.com/DarrenConyngham/world-bank-data-project/internal/config"
	"github.com/DarrenConyngham/world-bank-data-project/internal/observability"
	"github.com/DarrenConyngham/world-bank-data-project/sink"
	"github.com/DarrenConyngham/world-bank-data-project/wbapi"
)

// latestYearWindow is how many trailing years the bar chart fetches
// when asked for the latest available year sight unseen.
const latestYearWindow = 10

// Source is the remote indicator source.
type Source interface {
	Observations(ctx context.Context, indicator string, locations []string, startYear, endYear int) ([]dataset.Observation, error)
	Countries(ctx context.Context) ([]dataset.Country, error)
}

// RowPublisher streams year-indexed table rows to an external system.
type RowPublisher interface {
	Publish(ctx context.Context, table dataset.YearTable) error
}

// Service composes the indicator source, the table reshaper, the
// persistence sinks, and the chart renderers.
type Service struct {
	source  Source
	logger  *slog.Logger
	metrics *observability.Metrics
	rows    RowPublisher

	flourishDir string
	outputDir   string
	flourish    *sink.FileSink
	output      *sink.FileSink
}

// TableRequest names an indicator, an inclusive year range, a location
// selector, and whether the result should be persisted. A nil Locations
// slice (or the single entry "all") selects every available location.
type TableRequest struct {
	Indicator string
	StartYear int
	EndYear   int
	Locations []string
	Persist   bool
}

// BarRequest selects the data behind a single-year bar chart. A zero
// Year means the latest year with data.
type BarRequest struct {
	Indicator string
	Year      int
	Locations []string
}

// sharedMetrics registers against the default Prometheus registry once,
// so constructing several Services does not panic on re-registration.
var (
	metricsOnce   sync.Once
	sharedMetrics *observability.Metrics
)

func defaultMetrics() *observability.Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = observability.NewMetrics()
	})
	return sharedMetrics
}

// New creates a Service. Defaults come from the environment (see
// internal/config); options override individual collaborators.
func New(opts ...Option) (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	s := &Service{
		flourishDir: cfg.FlourishDir,
		outputDir:   cfg.OutputDir,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = observability.NewLogger(cfg)
	}
	if s.metrics == nil {
		s.metrics = defaultMetrics()
	}
	if s.source == nil {
		s.source = wbapi.NewClient(cfg.BaseURL, cfg.Timeout, cfg.PerPage, s.logger)
	}
	if s.rows == nil && cfg.KafkaEnabled {
		s.rows = sink.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic, s.logger)
	}
	s.flourish = sink.NewFileSink(s.flourishDir, s.logger)
	s.output = sink.NewFileSink(s.outputDir, s.logger)

	return s, nil
}

// ChartRaceTable builds the wide flourish table for an indicator:
// observations pivoted by year, joined with country metadata, aggregate
// regions excluded. Countries whose names fail to match metadata are
// dropped from the table and listed on the result.
func (s *Service) ChartRaceTable(ctx context.Context, req TableRequest) (dataset.WideTable, error) {
	obs, err := s.fetchObservations(ctx, req)
	if err != nil {
		return dataset.WideTable{}, err
	}
	pivot := dataset.PivotYears(obs)

	countries, err := s.fetchCountries(ctx)
	if err != nil {
		return dataset.WideTable{}, err
	}

	frame, unmatched, err := dataset.JoinCountryMeta(pivot, countries)
	if err != nil {
		return dataset.WideTable{}, err
	}
	table := dataset.WideTable{Indicator: req.Indicator, Frame: frame, Unmatched: unmatched}

	if len(unmatched) > 0 {
		s.metrics.UnmatchedCountries.Add(float64(len(unmatched)))
		s.logger.Warn("countries missing metadata, rows dropped",
			"indicator", req.Indicator,
			"count", len(unmatched),
			"names", unmatched,
		)
	}
	s.metrics.TablesBuilt.WithLabelValues("chart_race").Inc()

	if req.Persist {
		name := dataset.FlourishFilename(req.Indicator, dataset.Now())
		if err := s.persist(table, s.flourish, name); err != nil {
			return dataset.WideTable{}, err
		}
	}
	return table, nil
}

// YearIndexedTable builds the tidy year-indexed table for an indicator:
// one row per (region, year), missing values dropped, sorted by region.
func (s *Service) YearIndexedTable(ctx context.Context, req TableRequest) (dataset.YearTable, error) {
	obs, err := s.fetchObservations(ctx, req)
	if err != nil {
		return dataset.YearTable{}, err
	}

	table := dataset.NewYearTable(req.Indicator, obs)
	s.metrics.TablesBuilt.WithLabelValues("year_indexed").Inc()

	if req.Persist {
		name := dataset.IndexedFilename(req.Indicator, dataset.Now())
		if err := s.persist(table, s.output, name); err != nil {
			return dataset.YearTable{}, err
		}
		if s.rows != nil {
			if err := s.rows.Publish(ctx, table); err != nil {
				return dataset.YearTable{}, fmt.Errorf("publish rows: %w", err)
			}
		}
	}
	return table, nil
}

// LineChart fetches the indicator and renders one line per region
// across the year range. Returns the saved file path when opts.Save is
// set.
func (s *Service) LineChart(ctx context.Context, req TableRequest, opts chart.LineOptions) (string, error) {
	req.Persist = false
	table, err := s.YearIndexedTable(ctx, req)
	if err != nil {
		return "", err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = s.outputDir
	}
	path, err := chart.Line(table, opts)
	if err != nil {
		return "", err
	}
	s.metrics.ChartsRendered.WithLabelValues("line").Inc()
	return path, nil
}

// BarChart fetches a single year of the indicator and renders
// horizontal bars sorted largest to smallest. When no year is given it
// fetches a trailing window first, resolves the latest year that has
// data, and filters to it, so the fallback works even when recent years
// are empty.
func (s *Service) BarChart(ctx context.Context, req BarRequest, opts chart.BarOptions) (string, error) {
	startYear, endYear := req.Year, req.Year
	if req.Year == 0 {
		endYear = dataset.Now().Year()
		startYear = endYear - latestYearWindow
	}

	obs, err := s.fetchObservations(ctx, TableRequest{
		Indicator: req.Indicator,
		StartYear: startYear,
		EndYear:   endYear,
		Locations: req.Locations,
	})
	if err != nil {
		return "", err
	}

	table := dataset.NewYearTable(req.Indicator, obs)
	target := req.Year
	if target == 0 {
		latest, ok := table.MaxYear()
		if !ok {
			return "", fmt.Errorf("bar chart for %s: %w", req.Indicator, dataset.ErrDataUnavailable)
		}
		target = latest
	}

	if opts.OutputDir == "" {
		opts.OutputDir = s.outputDir
	}
	path, err := chart.Bar(table.FilterYear(target), opts)
	if err != nil {
		return "", err
	}
	s.metrics.ChartsRendered.WithLabelValues("bar").Inc()
	return path, nil
}

// fetchObservations wraps the source call with metrics.
func (s *Service) fetchObservations(ctx context.Context, req TableRequest) ([]dataset.Observation, error) {
	start := time.Now()
	obs, err := s.source.Observations(ctx, req.Indicator, req.Locations, req.StartYear, req.EndYear)
	s.recordFetch("observations", start, err)
	if err != nil {
		return nil, err
	}
	s.metrics.ObservationsFetched.Add(float64(len(obs)))
	return obs, nil
}

func (s *Service) fetchCountries(ctx context.Context) ([]dataset.Country, error) {
	start := time.Now()
	countries, err := s.source.Countries(ctx)
	s.recordFetch("countries", start, err)
	return countries, err
}

func (s *Service) recordFetch(endpoint string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.metrics.FetchRequests.WithLabelValues(endpoint, outcome).Inc()
	s.metrics.FetchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (s *Service) persist(table sink.Table, fileSink *sink.FileSink, filename string) error {
	if _, err := fileSink.Write(table, filename); err != nil {
		s.metrics.WriteErrors.Inc()
		return err
	}
	s.metrics.FilesWritten.Inc()
	return nil
}
