// Package telemetry groups the gateway's observability subpackages.
//
// # Components
//
//   - logging: structured logging with credential redaction
//   - metrics: Prometheus metrics collection
//
// Each subpackage is self-contained and imported directly (there is no
// aggregating constructor in this package); callers wire logging.New and
// metrics.NewCollector independently from the process-wide Config.
//
// # PII Protection
//
// By default, credentials are redacted from log output:
//
//   - API keys and tokens: replaced with a fixed mask
//   - Authorization headers: replaced with a fixed mask
//
// Custom redaction patterns can be configured via Config.RedactPatterns.
package telemetry
