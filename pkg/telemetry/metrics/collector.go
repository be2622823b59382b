package metrics

import (
	"fmt"
	"sync"
	"time"

	"sparqlgateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the main orchestrator for all Prometheus metrics in the
// gateway. It manages metric registration, collection, and provides a
// unified interface for recording metrics across all components.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	transportMetrics    *TransportMetrics
	endpointMetrics     *EndpointMetrics
	queryMetrics        *QueryMetrics
	orchestratorMetrics *OrchestratorMetrics
	cacheMetrics        *CacheMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "sparqlgateway"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "sparqlgateway"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "gateway"
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(10000),
	}

	c.transportMetrics = NewTransportMetrics(cfg, registry)
	c.endpointMetrics = NewEndpointMetrics(cfg, registry)
	c.queryMetrics = NewQueryMetrics(cfg, registry)
	c.orchestratorMetrics = NewOrchestratorMetrics(cfg, registry)
	c.cacheMetrics = NewCacheMetrics(cfg, registry)

	return c
}

// RecordHTTPRequest records metrics for a completed HTTP request against
// a SPARQL endpoint.
func (c *Collector) RecordHTTPRequest(endpoint, method, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	labelSet := fmt.Sprintf("http:%s:%s:%s", endpoint, method, status)
	if !c.cardinalityLimiter.Allow(labelSet) {
		endpoint = "other"
	}

	c.transportMetrics.RecordRequest(endpoint, method, status, duration)
}

// RecordHTTPSize records the size of a request or response body.
func (c *Collector) RecordHTTPSize(endpoint, direction string, sizeBytes int) {
	if !c.config.Enabled {
		return
	}
	c.transportMetrics.RecordSize(endpoint, direction, sizeBytes)
}

// RecordEndpointProbeLatency records the latency of a health check probe
// against an endpoint.
func (c *Collector) RecordEndpointProbeLatency(endpoint string, latency float64) {
	if !c.config.Enabled {
		return
	}
	c.endpointMetrics.RecordProbeLatency(endpoint, latency)
}

// UpdateEndpointHealth updates the health status of an endpoint.
func (c *Collector) UpdateEndpointHealth(endpoint string, healthy bool) {
	if !c.config.Enabled {
		return
	}
	c.endpointMetrics.UpdateHealth(endpoint, healthy)
}

// RecordEndpointError records an error observed against an endpoint.
func (c *Collector) RecordEndpointError(endpoint, errorType string) {
	if !c.config.Enabled {
		return
	}
	c.endpointMetrics.RecordError(endpoint, errorType)
}

// RecordQueryGenerated records that a SPARQL query was generated for the
// given intent type.
func (c *Collector) RecordQueryGenerated(intentType string) {
	if !c.config.Enabled {
		return
	}
	c.queryMetrics.RecordGenerated(intentType)
}

// RecordQueryValidationFailure records that a generated query was
// rejected before execution.
func (c *Collector) RecordQueryValidationFailure(reason string) {
	if !c.config.Enabled {
		return
	}
	c.queryMetrics.RecordValidationFailure(reason)
}

// RecordQueryExecution records the duration and result size of a query
// executed against an endpoint.
func (c *Collector) RecordQueryExecution(endpoint string, duration time.Duration, rows int) {
	if !c.config.Enabled {
		return
	}
	c.queryMetrics.RecordExecution(endpoint, duration, rows)
}

// RecordOrchestratorAttempt records a single orchestrator attempt
// against an endpoint.
func (c *Collector) RecordOrchestratorAttempt(endpoint, outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.orchestratorMetrics.RecordAttempt(endpoint, outcome, duration)
}

// RecordFallback records that the orchestrator fell back away from an endpoint.
func (c *Collector) RecordFallback(endpoint string) {
	if !c.config.Enabled {
		return
	}
	c.orchestratorMetrics.RecordFallback(endpoint)
}

// RecordFederationStatus records the final status of a federated query.
func (c *Collector) RecordFederationStatus(status string) {
	if !c.config.Enabled {
		return
	}
	c.orchestratorMetrics.RecordFederationStatus(status)
}

// RecordCacheHit records a cache hit.
func (c *Collector) RecordCacheHit(cacheName string) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordHit(cacheName)
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss(cacheName string) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordMiss(cacheName)
}

// UpdateCacheSize updates the current size of a cache.
func (c *Collector) UpdateCacheSize(cacheName string, size int) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.UpdateSize(cacheName, size)
}

// RecordCacheEviction records a cache eviction.
func (c *Collector) RecordCacheEviction(cacheName string) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordEviction(cacheName)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
