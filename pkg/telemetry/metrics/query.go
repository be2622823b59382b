package metrics

import (
	"time"

	"sparqlgateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// QueryMetrics tracks metrics for the natural-language-to-SPARQL pipeline:
// query generation attempts, validation outcomes, and execution against
// an endpoint.
//
// Metrics:
//   - sparqlgateway_gateway_queries_generated_total: Queries generated by intent type
//   - sparqlgateway_gateway_query_execution_duration_seconds: Query execution duration
//   - sparqlgateway_gateway_query_result_rows: Result row count distribution
type QueryMetrics struct {
	generatedTotal     *prometheus.CounterVec
	executionDuration  *prometheus.HistogramVec
	resultRows         *prometheus.HistogramVec
	validationFailures *prometheus.CounterVec
}

// NewQueryMetrics creates and registers query metrics with the provided registry.
func NewQueryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *QueryMetrics {
	qm := &QueryMetrics{
		generatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "queries_generated_total",
				Help:      "Total number of SPARQL queries generated, by intent type",
			},
			[]string{"intent_type"},
		),

		executionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "query_execution_duration_seconds",
				Help:      "Duration of SPARQL query execution against an endpoint",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"endpoint"},
		),

		resultRows: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "query_result_rows",
				Help:      "Number of result rows returned by a query",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~250K rows
			},
			[]string{"endpoint"},
		),

		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "query_validation_failures_total",
				Help:      "Total number of generated queries rejected by validation, by reason",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		qm.generatedTotal,
		qm.executionDuration,
		qm.resultRows,
		qm.validationFailures,
	)

	return qm
}

// RecordGenerated records that a query was generated for the given intent type.
func (qm *QueryMetrics) RecordGenerated(intentType string) {
	qm.generatedTotal.WithLabelValues(intentType).Inc()
}

// RecordValidationFailure records that a generated query was rejected by
// validation before execution.
//
// Common reasons: "disallowed_clause", "unbound_variable", "syntax_error",
// "unsafe_pattern".
func (qm *QueryMetrics) RecordValidationFailure(reason string) {
	qm.validationFailures.WithLabelValues(reason).Inc()
}

// RecordExecution records the duration and result size of a completed
// query execution against an endpoint.
func (qm *QueryMetrics) RecordExecution(endpoint string, duration time.Duration, rows int) {
	qm.executionDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	if rows >= 0 {
		qm.resultRows.WithLabelValues(endpoint).Observe(float64(rows))
	}
}
