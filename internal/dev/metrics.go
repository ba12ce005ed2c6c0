package dev

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the watch mode collectors.
type Metrics struct {
	registry *prometheus.Registry

	rebuilds        *prometheus.CounterVec
	rebuildDuration prometheus.Histogram
	routes          prometheus.Gauge
	events          *prometheus.CounterVec
}

// NewMetrics registers the watch mode collectors on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		rebuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "routegen",
				Name:      "rebuilds_total",
				Help:      "Total number of rebuilds by result.",
			},
			[]string{"result"},
		),
		rebuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "routegen",
				Name:      "rebuild_duration_seconds",
				Help:      "Duration of rebuilds in seconds.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
		routes: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "routegen",
				Name:      "routes",
				Help:      "Number of routes produced by the last rebuild.",
			},
		),
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "routegen",
				Name:      "events_total",
				Help:      "Total number of file events by type.",
			},
			[]string{"type"},
		),
	}
}

// Handler returns the Prometheus exposition handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeRebuild(d time.Duration, routes int, err error) {
	if err != nil {
		m.rebuilds.WithLabelValues("error").Inc()
		return
	}
	m.rebuilds.WithLabelValues("ok").Inc()
	m.rebuildDuration.Observe(d.Seconds())
	m.routes.Set(float64(routes))
}

func (m *Metrics) observeEvents(batch []Change) {
	for _, c := range batch {
		m.events.WithLabelValues(c.Type.String()).Inc()
	}
}
