package metrics

import (
	"time"

	"sparqlgateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// TransportMetrics tracks metrics related to HTTP traffic between the
// gateway and SPARQL endpoints.
//
// Metrics:
//   - sparqlgateway_gateway_requests_total: Total request count by endpoint, method, status
//   - sparqlgateway_gateway_request_duration_seconds: Request duration histogram
//   - sparqlgateway_gateway_request_size_bytes: Request/response size
type TransportMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sizeBytes       *prometheus.HistogramVec
}

// NewTransportMetrics creates and registers transport metrics with the provided registry.
func NewTransportMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *TransportMetrics {
	tm := &TransportMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests issued to SPARQL endpoints",
			},
			[]string{"endpoint", "method", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests to SPARQL endpoints in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"endpoint", "method"},
		),

		sizeBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_size_bytes",
				Help:      "Size of request/response bodies in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 10), // 256B to 16MB
			},
			[]string{"endpoint", "direction"},
		),
	}

	registry.MustRegister(
		tm.requestsTotal,
		tm.requestDuration,
		tm.sizeBytes,
	)

	return tm
}

// RecordRequest records metrics for a completed HTTP request.
func (tm *TransportMetrics) RecordRequest(endpoint, method, status string, duration time.Duration) {
	tm.requestsTotal.WithLabelValues(endpoint, method, status).Inc()
	tm.requestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// RecordSize records the size of a request or response body.
func (tm *TransportMetrics) RecordSize(endpoint, direction string, sizeBytes int) {
	if sizeBytes > 0 {
		tm.sizeBytes.WithLabelValues(endpoint, direction).Observe(float64(sizeBytes))
	}
}
