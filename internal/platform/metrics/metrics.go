package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide Prometheus metrics. Feature modules carry
// their own metrics packages; these cover the HTTP surface and ingestion.
type Metrics struct {
	// HTTP request latency by route pattern and status.
	RequestLatency *prometheus.HistogramVec

	// Rows loaded per source on the most recent ingestion.
	SourceRows *prometheus.GaugeVec

	// Ingestion failures by source.
	SourceFailures *prometheus.CounterVec

	// Rows in the currently served snapshot.
	SnapshotRows prometheus.Gauge

	// Completed snapshot swaps (startup load plus admin reloads).
	SnapshotReloads prometheus.Counter
}

// New creates and registers all platform metrics.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "covidboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status class",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),

		SourceRows: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "covidboard_source_rows",
			Help: "Observation rows produced by each dataset source on the last load",
		}, []string{"source"}),

		SourceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "covidboard_source_load_failures_total",
			Help: "Total dataset source load failures",
		}, []string{"source"}),

		SnapshotRows: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "covidboard_snapshot_rows",
			Help: "Rows in the snapshot currently being served",
		}),

		SnapshotReloads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "covidboard_snapshot_reloads_total",
			Help: "Total snapshot swaps, including the startup load",
		}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}

// RecordSourceRows records a successful source load.
func (m *Metrics) RecordSourceRows(source string, rows int) {
	if m != nil {
		m.SourceRows.WithLabelValues(source).Set(float64(rows))
	}
}

// IncrementSourceFailure records a failed source load.
func (m *Metrics) IncrementSourceFailure(source string) {
	if m != nil {
		m.SourceFailures.WithLabelValues(source).Inc()
	}
}

// RecordSnapshot records a completed snapshot swap.
func (m *Metrics) RecordSnapshot(rows int) {
	if m != nil {
		m.SnapshotRows.Set(float64(rows))
		m.SnapshotReloads.Inc()
	}
}
