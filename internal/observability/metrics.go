package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// telemetry caches and the NDBC upstream.
type Metrics struct {
	CacheLookups        *prometheus.CounterVec   // labels: cache={current,historical}, result={hit,miss,stale}
	UpstreamRequests    *prometheus.CounterVec   // labels: endpoint={current,historical}, outcome={success,error}
	UpstreamDuration    *prometheus.HistogramVec // labels: endpoint={current,historical}
	StaleRecordsDropped prometheus.Counter
	RefreshRunning      prometheus.Gauge
	SnapshotsPublished  prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "buoy_telemetry",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache and result.",
		}, []string{"cache", "result"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "buoy_telemetry",
			Name:      "upstream_requests_total",
			Help:      "NDBC feed requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "buoy_telemetry",
			Name:      "upstream_request_duration_seconds",
			Help:      "NDBC feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		StaleRecordsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "buoy_telemetry",
			Name:      "stale_records_dropped_total",
			Help:      "Cached station records dropped during merge for exceeding the stale cutoff.",
		}),
		RefreshRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "buoy_telemetry",
			Name:      "refresh_running",
			Help:      "1 while a background refresh cycle is in progress.",
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "buoy_telemetry",
			Name:      "snapshots_published_total",
			Help:      "Station snapshots published to Kafka.",
		}),
	}

	prometheus.MustRegister(
		m.CacheLookups,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.StaleRecordsDropped,
		m.RefreshRunning,
		m.SnapshotsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		CacheLookups:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "buoy_telemetry", Name: "cache_lookups_total"}, []string{"cache", "result"}),
		UpstreamRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "buoy_telemetry", Name: "upstream_requests_total"}, []string{"endpoint", "outcome"}),
		UpstreamDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "buoy_telemetry", Name: "upstream_request_duration_seconds"}, []string{"endpoint"}),
		StaleRecordsDropped: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "buoy_telemetry", Name: "stale_records_dropped_total"}),
		RefreshRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "buoy_telemetry", Name: "refresh_running"}),
		SnapshotsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "buoy_telemetry", Name: "snapshots_published_total"}),
	}
}
