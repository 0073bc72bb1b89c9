package web

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the service's Prometheus collectors on a private registry so
// every server instance reports its own counts.
type metrics struct {
	registry       *prometheus.Registry
	renders        *prometheus.CounterVec
	toggles        *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "setup_assistant_renders_total",
				Help: "Total number of setup assistant renders by plan.",
			},
			[]string{"plan"},
		),
		toggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "setup_assistant_step_toggles_total",
				Help: "Total number of step toggles by plan and resulting state.",
			},
			[]string{"plan", "state"},
		),
		renderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "setup_assistant_render_duration_seconds",
				Help:    "Duration of setup assistant page renders in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	m.registry.MustRegister(m.renders, m.toggles, m.renderDuration)
	return m
}

func (m *metrics) observeRender(plan string, d time.Duration) {
	m.renders.WithLabelValues(plan).Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *metrics) incToggle(plan, state string) {
	m.toggles.WithLabelValues(plan, state).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
