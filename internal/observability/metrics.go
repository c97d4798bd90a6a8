package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion run.
type Metrics struct {
	LocationsProcessed *prometheus.CounterVec   // labels: shape
	RecordsPersisted   *prometheus.CounterVec   // labels: shape
	Failures           *prometheus.CounterVec   // labels: shape, reason={status,transport,normalize,persist}
	FetchDuration      *prometheus.HistogramVec // labels: shape
	IngestRunning      prometheus.Gauge

	// Timezone resolution cache.
	TimezoneCache *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all ingestion metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		LocationsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_ingest",
			Name:      "locations_processed_total",
			Help:      "Total locations processed per request shape, success or failure.",
		}, []string{"shape"}),
		RecordsPersisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_ingest",
			Name:      "records_persisted_total",
			Help:      "Total enriched records handed to the sink.",
		}, []string{"shape"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_ingest",
			Name:      "failures_total",
			Help:      "Per-location failures by shape and reason.",
		}, []string{"shape", "reason"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_ingest",
			Name:      "fetch_duration_seconds",
			Help:      "NWS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"shape"}),
		IngestRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_ingest",
			Name:      "running",
			Help:      "1 while an ingestion run is active, 0 otherwise.",
		}),
		TimezoneCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_ingest",
			Name:      "timezone_cache_total",
			Help:      "Timezone resolution cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.LocationsProcessed,
		m.RecordsPersisted,
		m.Failures,
		m.FetchDuration,
		m.IngestRunning,
		m.TimezoneCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		LocationsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_ingest", Name: "locations_processed_total"}, []string{"shape"}),
		RecordsPersisted:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_ingest", Name: "records_persisted_total"}, []string{"shape"}),
		Failures:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_ingest", Name: "failures_total"}, []string{"shape", "reason"}),
		FetchDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_ingest", Name: "fetch_duration_seconds"}, []string{"shape"}),
		IngestRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_ingest", Name: "running"}),
		TimezoneCache:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_ingest", Name: "timezone_cache_total"}, []string{"result"}),
	}
}
