package config

import "time"

// Default values for configuration fields.
const (
	// Connection defaults
	DefaultTimeout       = 10 * time.Second
	DefaultVerifyTLS     = true
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 1 * time.Second
	DefaultRetryBackoff  = 2.0
	DefaultUserAgent     = "sparqlgateway/1.0"
	DefaultPoolSize      = 10

	// Discovery defaults
	DefaultFastMode           = false
	DefaultMaxSamples         = 1000
	DefaultProgressiveTimeout = false
	DefaultOverallDeadlineSec = 30

	// LLM defaults
	DefaultLLMEnabled = false
	DefaultLLMTimeout = 30 * time.Second

	// Federation defaults
	DefaultFederationTimeoutSec = 60

	// Telemetry defaults
	DefaultLoggingLevel          = "info"
	DefaultLoggingFormat         = "json"
	DefaultRedactCredentials     = true
	DefaultMetricsEnabled        = true
	DefaultMetricsListenAddress  = "127.0.0.1:9090"
	DefaultMetricsPath           = "/metrics"
	DefaultMetricsNamespace      = "sparqlgateway"
	DefaultMetricsSubsystem      = "gateway"
)

// DefaultRequestDurationBuckets are the histogram buckets (seconds)
// applied when MetricsConfig.RequestDurationBuckets is unset.
var DefaultRequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}

// ApplyDefaults applies default values to a Config struct. It sets
// defaults for any fields that have zero values. Idempotent and safe
// to call multiple times.
func ApplyDefaults(cfg *Config) {
	applyConnectionDefaults(&cfg.Connection)
	for i := range cfg.Endpoints {
		applyConnectionDefaults(&cfg.Endpoints[i].Connection)
	}

	if cfg.Discovery.MaxSamples == 0 {
		cfg.Discovery.MaxSamples = DefaultMaxSamples
	}
	if cfg.Discovery.OverallDeadlineSec == 0 {
		cfg.Discovery.OverallDeadlineSec = DefaultOverallDeadlineSec
	}

	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = DefaultLLMTimeout
	}

	if cfg.Federation.DefaultTimeoutSec == 0 {
		cfg.Federation.DefaultTimeoutSec = DefaultFederationTimeoutSec
	}

	applyLoggingDefaults(&cfg.Telemetry.Logging)
	applyMetricsDefaults(&cfg.Telemetry.Metrics)
}

// applyConnectionDefaults fills the zero-valued fields of a
// ConnectionConfig. VerifyTLS is not defaulted here: a bool zero value
// is indistinguishable from "unset", so an explicit `verify_ssl: false`
// would be overwritten. LoadConfig instead seeds the process-wide
// Connection.VerifyTLS with DefaultVerifyTLS before decoding YAML;
// per-endpoint VerifyTLS values get no default.
func applyConnectionDefaults(c *ConnectionConfig) {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = DefaultRetryBackoff
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.PoolSize == 0 {
		c.PoolSize = DefaultPoolSize
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = DefaultLoggingLevel
	}
	if l.Format == "" {
		l.Format = DefaultLoggingFormat
	}
}

func applyMetricsDefaults(m *MetricsConfig) {
	if m.ListenAddress == "" {
		m.ListenAddress = DefaultMetricsListenAddress
	}
	if m.Path == "" {
		m.Path = DefaultMetricsPath
	}
	if m.Namespace == "" {
		m.Namespace = DefaultMetricsNamespace
	}
	if m.Subsystem == "" {
		m.Subsystem = DefaultMetricsSubsystem
	}
	if len(m.RequestDurationBuckets) == 0 {
		m.RequestDurationBuckets = DefaultRequestDurationBuckets
	}
}
