// Package metrics provides Prometheus metrics collection for the gateway.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring HTTP
// traffic to SPARQL endpoints, endpoint health, query generation and
// execution, orchestrator retry/fallback behavior, and cache
// performance.
//
// # Metrics Categories
//
//   - Transport Metrics: HTTP request count, duration, and sizes
//   - Endpoint Metrics: Endpoint health, probe latency, and error rates
//   - Query Metrics: Queries generated, validation failures, execution duration, result rows
//   - Orchestrator Metrics: Attempt outcomes, fallbacks, federation status
//   - Cache Metrics: Cache hits, misses, and sizes
//
// # Usage
//
//	collector := metrics.NewCollector(cfg, registry)
//
//	collector.RecordHTTPRequest("dbpedia", "POST", "200", 340*time.Millisecond)
//	collector.UpdateEndpointHealth("dbpedia", true)
//	collector.RecordQueryGenerated("aggregation")
//	collector.RecordQueryExecution("dbpedia", 1200*time.Millisecond, 42)
//	collector.RecordFederationStatus("partial")
//
// # Prometheus Endpoint
//
// All metrics are exposed in standard Prometheus format, named
// <namespace>_<subsystem>_<metric> (by default sparqlgateway_gateway_...):
//
//	# HELP sparqlgateway_gateway_requests_total Total number of HTTP requests issued to SPARQL endpoints
//	# TYPE sparqlgateway_gateway_requests_total counter
//	sparqlgateway_gateway_requests_total{endpoint="dbpedia",method="POST",status="200"} 1234
//
// # Cardinality Management
//
// The collector applies a cardinality limit of 10,000 unique label
// combinations to transport metrics, aggregating overflow into an
// "other" endpoint label to prevent unbounded growth from misbehaving
// or dynamically-discovered endpoints.
package metrics
