package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess       = "success"
	ResultUpstreamError = "upstream_error"
	ResultEmpty         = "empty"
)

// Metrics groups the collectors used by the loader and the HTTP layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	FetchTotal          *prometheus.CounterVec
	FetchDuration       prometheus.Histogram
	StaleServedTotal    prometheus.Counter
	Items               prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		FetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benefits_fetch_total",
				Help: "Total number of upstream benefit page fetches by result.",
			},
			[]string{"result"},
		),
		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "benefits_fetch_duration_seconds",
				Help:    "Duration of upstream fetch and extraction.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
			},
		),
		StaleServedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "benefits_stale_served_total",
				Help: "Total number of stale payloads served from cache.",
			},
		),
		Items: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "benefits_items",
				Help: "Number of items in the last successful extraction.",
			},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveFetch(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.FetchTotal.WithLabelValues(result).Inc()
	m.FetchDuration.Observe(duration.Seconds())
}

func (m *Metrics) SetItems(n int) {
	if m == nil {
		return
	}
	m.Items.Set(float64(n))
}

func (m *Metrics) StaleServed() {
	if m == nil {
		return
	}
	m.StaleServedTotal.Inc()
}

func (m *Metrics) ObserveRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
