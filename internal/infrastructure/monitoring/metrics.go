package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the previewer.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Preview pipeline metrics
	PreviewsTotal   *prometheus.CounterVec
	PreviewDuration *prometheus.HistogramVec
	SessionsActive  prometheus.Gauge

	// Interception metrics
	InterceptedRequests *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "previewer_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "previewer_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "path"},
		),
		PreviewsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "previewer_previews_total",
				Help: "Preview pipeline runs by component and outcome",
			},
			[]string{"component", "outcome"},
		),
		PreviewDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "previewer_preview_duration_seconds",
				Help:    "Select-to-verdict duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"component"},
		),
		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "previewer_sessions_active",
				Help: "Active preview sessions (at most one)",
			},
		),
		InterceptedRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "previewer_intercepted_requests_total",
				Help: "Requests answered by the fixture router",
			},
			[]string{"outcome"},
		),
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "previewer_ws_connections",
				Help: "Open preview WebSocket connections",
			},
		),
	}
}

// RecordHTTPRequest records one handled HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPreview implements the controller's metrics sink.
func (m *Metrics) RecordPreview(component, outcome string, duration time.Duration) {
	m.PreviewsTotal.WithLabelValues(component, outcome).Inc()
	m.PreviewDuration.WithLabelValues(component).Observe(duration.Seconds())
}

// SessionActive implements the controller's metrics sink.
func (m *Metrics) SessionActive(active bool) {
	if active {
		m.SessionsActive.Set(1)
	} else {
		m.SessionsActive.Set(0)
	}
}

// RecordIntercepted implements the interception layer's observer.
func (m *Metrics) RecordIntercepted(outcome string) {
	m.InterceptedRequests.WithLabelValues(outcome).Inc()
}

// WSConnected tracks an opened preview stream.
func (m *Metrics) WSConnected() { m.WSConnections.Inc() }

// WSDisconnected tracks a closed preview stream.
func (m *Metrics) WSDisconnected() { m.WSConnections.Dec() }
