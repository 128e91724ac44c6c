package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the dashboard module.
type Metrics struct {
	// Chart renders by panel kind.
	ChartRenders *prometheus.CounterVec

	// Time spent filtering and rebuilding a panel.
	RenderLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance with all dashboard metrics registered.
func New() *Metrics {
	return &Metrics{
		ChartRenders: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "covidboard_chart_renders_total",
			Help: "Total chart panel renders by kind",
		}, []string{"kind"}), // kind: "line", "bar", "pie", "scatter"

		RenderLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "covidboard_chart_render_duration_seconds",
			Help:    "Duration of filter-and-render per panel kind",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),
	}
}

// ObserveRender records one completed panel render.
func (m *Metrics) ObserveRender(kind string, d time.Duration) {
	if m != nil {
		m.ChartRenders.WithLabelValues(kind).Inc()
		m.RenderLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}
