// Package metrics holds the Prometheus collectors of the admin service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several instances can coexist in tests.
// All methods are safe on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	BackendLatency *prometheus.HistogramVec
	HTTPRequests   *prometheus.CounterVec
	ViewSize       prometheus.Histogram
	SignedURLs     *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		BackendLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inscritos_backend_request_duration_seconds",
			Help:    "Latency of calls to the remote API, labeled by operation and outcome",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation", "outcome"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inscritos_http_requests_total",
			Help: "HTTP requests served, labeled by method and status code",
		}, []string{"method", "status"}),
		ViewSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "inscritos_view_filtered_count",
			Help:    "Number of participants left after search and status filtering",
			Buckets: []float64{0, 1, 6, 12, 25, 50, 100, 250, 500},
		}),
		SignedURLs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inscritos_signed_urls_total",
			Help: "Document URLs handed out, labeled by source (cache or storage)",
		}, []string{"source"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveBackend(operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.BackendLatency.WithLabelValues(operation, outcome).Observe(d.Seconds())
}

func (m *Metrics) ObserveRequest(method string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveView(filtered int) {
	if m == nil {
		return
	}
	m.ViewSize.Observe(float64(filtered))
}

func (m *Metrics) ObserveSignedURL(source string) {
	if m == nil {
		return
	}
	m.SignedURLs.WithLabelValues(source).Inc()
}
