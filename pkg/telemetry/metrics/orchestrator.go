package metrics

import (
	"time"

	"sparqlgateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// OrchestratorMetrics tracks metrics for the orchestrator's retry,
// fallback, and federation behavior when satisfying a question across
// one or more endpoints.
//
// Metrics:
//   - sparqlgateway_gateway_orchestrator_attempts_total: Attempts by endpoint and outcome
//   - sparqlgateway_gateway_orchestrator_attempt_duration_seconds: Attempt duration
//   - sparqlgateway_gateway_orchestrator_fallbacks_total: Fallback invocations by endpoint
//   - sparqlgateway_gateway_orchestrator_federation_status_total: Federated query outcomes
type OrchestratorMetrics struct {
	attemptsTotal         *prometheus.CounterVec
	attemptDuration       *prometheus.HistogramVec
	fallbacksTotal        *prometheus.CounterVec
	federationStatusTotal *prometheus.CounterVec
}

// NewOrchestratorMetrics creates and registers orchestrator metrics with the provided registry.
func NewOrchestratorMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *OrchestratorMetrics {
	om := &OrchestratorMetrics{
		attemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "orchestrator_attempts_total",
				Help:      "Total number of orchestrator attempts against an endpoint, by outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		attemptDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "orchestrator_attempt_duration_seconds",
				Help:      "Duration of a single orchestrator attempt against an endpoint",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"endpoint"},
		),

		fallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "orchestrator_fallbacks_total",
				Help:      "Total number of times the orchestrator fell back away from an endpoint",
			},
			[]string{"endpoint"},
		),

		federationStatusTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "orchestrator_federation_status_total",
				Help:      "Total number of federated queries by final status",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		om.attemptsTotal,
		om.attemptDuration,
		om.fallbacksTotal,
		om.federationStatusTotal,
	)

	return om
}

// RecordAttempt records a single orchestrator attempt against an endpoint.
//
// Common outcomes: "ok", "retry", "timeout", "fatal".
func (om *OrchestratorMetrics) RecordAttempt(endpoint, outcome string, duration time.Duration) {
	om.attemptsTotal.WithLabelValues(endpoint, outcome).Inc()
	om.attemptDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordFallback records that the orchestrator fell back away from an endpoint.
func (om *OrchestratorMetrics) RecordFallback(endpoint string) {
	om.fallbacksTotal.WithLabelValues(endpoint).Inc()
}

// RecordFederationStatus records the final status of a federated query.
//
// Status values: "ok" (all services answered), "partial" (some services
// failed but at least one answered), "fatal" (no service answered).
func (om *OrchestratorMetrics) RecordFederationStatus(status string) {
	om.federationStatusTotal.WithLabelValues(status).Inc()
}
