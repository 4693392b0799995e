package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the data
// pipelines. They register against the default registry so an embedding
// application can expose them however it likes.
type Metrics struct {
	FetchRequests       *prometheus.CounterVec   // labels: endpoint={observations,countries}, outcome={success,error}
	FetchDuration       *prometheus.HistogramVec // labels: endpoint
	ObservationsFetched prometheus.Counter
	TablesBuilt         *prometheus.CounterVec // labels: kind={chart_race,year_indexed}
	UnmatchedCountries  prometheus.Counter
	FilesWritten        prometheus.Counter
	WriteErrors         prometheus.Counter
	ChartsRendered      *prometheus.CounterVec // labels: kind={line,bar}
}

// NewMetrics creates and registers all pipeline metrics with the
// default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wbdata",
			Name:      "fetch_requests_total",
			Help:      "World Bank API fetches by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wbdata",
			Name:      "fetch_duration_seconds",
			Help:      "World Bank API fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		ObservationsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wbdata",
			Name:      "observations_fetched_total",
			Help:      "Total indicator observations returned by the source.",
		}),
		TablesBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wbdata",
			Name:      "tables_built_total",
			Help:      "Tables produced by the reshaping pipeline, by kind.",
		}, []string{"kind"}),
		UnmatchedCountries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wbdata",
			Name:      "unmatched_countries_total",
			Help:      "Observation rows dropped because no country metadata matched.",
		}),
		FilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wbdata",
			Name:      "files_written_total",
			Help:      "Delimited files written by the persistence sink.",
		}),
		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wbdata",
			Name:      "write_errors_total",
			Help:      "Failed persistence attempts.",
		}),
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wbdata",
			Name:      "charts_rendered_total",
			Help:      "Charts rendered, by kind.",
		}, []string{"kind"}),
	}

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.ObservationsFetched,
		m.TablesBuilt,
		m.UnmatchedCountries,
		m.FilesWritten,
		m.WriteErrors,
		m.ChartsRendered,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wbdata", Name: "fetch_requests_total"}, []string{"endpoint", "outcome"}),
		FetchDuration:       prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "wbdata", Name: "fetch_duration_seconds"}, []string{"endpoint"}),
		ObservationsFetched: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wbdata", Name: "observations_fetched_total"}),
		TablesBuilt:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wbdata", Name: "tables_built_total"}, []string{"kind"}),
		UnmatchedCountries:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wbdata", Name: "unmatched_countries_total"}),
		FilesWritten:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wbdata", Name: "files_written_total"}),
		WriteErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wbdata", Name: "write_errors_total"}),
		ChartsRendered:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wbdata", Name: "charts_rendered_total"}, []string{"kind"}),
	}
}
