package metrics

import (
	"sparqlgateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// EndpointMetrics tracks metrics related to SPARQL endpoint health and
// reachability, as maintained by the health checker and discovery
// pipeline.
//
// Metrics:
//   - sparqlgateway_gateway_endpoint_health: Endpoint health status (1=healthy, 0=unhealthy)
//   - sparqlgateway_gateway_endpoint_probe_latency_seconds: Health probe latency
//   - sparqlgateway_gateway_endpoint_errors_total: Endpoint error count by type
type EndpointMetrics struct {
	health       *prometheus.GaugeVec
	probeLatency *prometheus.HistogramVec
	errors       *prometheus.CounterVec
}

// NewEndpointMetrics creates and registers endpoint metrics with the provided registry.
func NewEndpointMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *EndpointMetrics {
	em := &EndpointMetrics{
		health: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "endpoint_health",
				Help:      "Endpoint health status (1=healthy, 0=unhealthy)",
			},
			[]string{"endpoint"},
		),

		probeLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "endpoint_probe_latency_seconds",
				Help:      "Latency of health check probes against an endpoint",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"endpoint"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "endpoint_errors_total",
				Help:      "Total number of endpoint errors by type",
			},
			[]string{"endpoint", "error_type"},
		),
	}

	registry.MustRegister(
		em.health,
		em.probeLatency,
		em.errors,
	)

	return em
}

// UpdateHealth updates the health status of an endpoint.
func (em *EndpointMetrics) UpdateHealth(endpoint string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	em.health.WithLabelValues(endpoint).Set(value)
}

// RecordProbeLatency records the latency of a health check probe.
func (em *EndpointMetrics) RecordProbeLatency(endpoint string, latencySeconds float64) {
	em.probeLatency.WithLabelValues(endpoint).Observe(latencySeconds)
}

// RecordError records an error observed against an endpoint.
//
// Common error types: "timeout", "tls", "auth", "server_error",
// "client_error", "network", "malformed_response".
func (em *EndpointMetrics) RecordError(endpoint, errorType string) {
	em.errors.WithLabelValues(endpoint, errorType).Inc()
}
