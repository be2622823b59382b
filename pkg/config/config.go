package config

import "time"

// Config is the root configuration structure for the SPARQL gateway.
// It contains all configuration sections: the endpoints the gateway
// knows about, connection defaults, discovery tuning, rate limiting,
// the LLM collaborator used by the intent parser, federation defaults,
// and the telemetry ambient stack.
type Config struct {
	// Endpoints lists the SPARQL endpoints the gateway is configured
	// to query. Each entry may override any field of Connection.
	Endpoints []EndpointConfig `yaml:"endpoints"`

	// Connection contains the default ConnectionConfig fields applied
	// to every endpoint that does not override them.
	Connection ConnectionConfig `yaml:"connection"`

	// Discovery contains tuning for the capability detector.
	Discovery DiscoveryConfig `yaml:"discovery"`

	// RateLimit contains the default token-bucket settings applied to
	// every endpoint that does not override them.
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// LLM contains configuration for the optional LLM-backed intent
	// parser collaborator.
	LLM LLMConfig `yaml:"llm"`

	// Federation contains defaults for the federated planner and
	// orchestrator.
	Federation FederationConfig `yaml:"federation"`

	// Telemetry contains configuration for observability: logging and
	// metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// EndpointConfig describes one SPARQL endpoint known to the gateway.
type EndpointConfig struct {
	// Name is a short human-readable identifier for this endpoint,
	// used in logs and CLI output. Not sent over the wire.
	Name string `yaml:"name"`

	// URL is the SPARQL endpoint's query URL.
	// Example: "https://dbpedia.org/sparql"
	URL string `yaml:"url"`

	// Auth contains the authentication credentials for this endpoint,
	// if any.
	Auth AuthConfig `yaml:"auth"`

	// Connection overrides the process-wide Connection defaults for
	// this endpoint only. Zero-valued fields fall back to the default
	// via ConnectionConfig.WithDefaults.
	Connection ConnectionConfig `yaml:"connection"`

	// RateLimit overrides the process-wide RateLimit defaults for this
	// endpoint only. A zero value means "use the default".
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// AuthConfig contains the authentication credentials for one endpoint.
type AuthConfig struct {
	// Type selects the authentication scheme.
	// Options: "" (none), "basic", "bearer"
	Type string `yaml:"type"`

	// Username is the basic-auth username. Only used when Type is "basic".
	Username string `yaml:"username"`

	// Password is the basic-auth password. Only used when Type is "basic".
	// Should typically be supplied via environment variable override
	// rather than committed to a config file.
	Password string `yaml:"password"`

	// Token is the bearer token. Only used when Type is "bearer".
	Token string `yaml:"token"`
}

// ConnectionConfig mirrors model.ConnectionConfig's YAML-facing fields;
// pkg/model owns the runtime type, this struct is the load-time shape
// the YAML/env layer populates before the two are merged.
type ConnectionConfig struct {
	// Timeout is the per-HTTP-exchange timeout.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// VerifyTLS controls TLS certificate verification.
	// Default: true
	VerifyTLS bool `yaml:"verify_ssl"`

	// RetryAttempts is the maximum number of retry attempts for failed
	// requests.
	// Default: 3
	RetryAttempts int `yaml:"retry_attempts"`

	// RetryDelay is the base delay before the first retry.
	// Default: 1s
	RetryDelay time.Duration `yaml:"retry_delay"`

	// RetryBackoff is the multiplier applied to RetryDelay after each
	// failed attempt.
	// Default: 2.0
	RetryBackoff float64 `yaml:"retry_backoff"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `yaml:"user_agent"`

	// PoolSize is the maximum number of idle connections kept per host
	// in the shared transport pool.
	// Default: 10
	PoolSize int `yaml:"pool_size"`
}

// DiscoveryConfig tunes the capability detector (pkg/discovery).
type DiscoveryConfig struct {
	// FastMode skips the slower, more exhaustive probes (namespace
	// sample, function probes, statistics) in favor of a quick
	// capability sketch. The discover subcommand's --fast flag has the
	// same effect.
	// Default: false
	FastMode bool `yaml:"fast_mode"`

	// MaxSamples bounds how many sample values a single probe query
	// returns.
	// Default: 1000
	MaxSamples int `yaml:"max_samples"`

	// ProgressiveTimeout is loaded and validated but not read by any
	// package in this module: discovery always runs with a fixed
	// per-probe cap unless a caller sets
	// discovery.Options.ProgressiveBudgets directly.
	// Default: false
	ProgressiveTimeout bool `yaml:"progressive_timeout"`

	// OverallDeadlineSec bounds the wall-clock time of an entire
	// discovery run across all probes.
	// Default: 30
	OverallDeadlineSec int `yaml:"overall_deadline_sec"`

	// RefreshSchedule is an optional cron expression (5-field,
	// github.com/robfig/cron/v3 syntax). No package in this module
	// reads it; scheduled refresh runs only when a caller passes a
	// schedule to pkg/knowledge's Scheduler itself.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// RateLimitConfig configures a token bucket.
type RateLimitConfig struct {
	// RequestsPerSecond is the steady-state refill rate. Zero disables
	// rate limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the bucket capacity.
	Burst int `yaml:"burst"`
}

// LLMConfig describes the optional LLM collaborator for the intent
// parser (pkg/intent). It is loaded and validated only: cmd/sparqlate
// never builds a provider from it and always parses questions with the
// rule-based path.
type LLMConfig struct {
	// Enabled marks the LLM section as in use; when true, Validate
	// requires a known Provider and a Model.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Provider selects the LLM collaborator implementation.
	// Options: "openai", "anthropic"
	Provider string `yaml:"provider"`

	// BaseURL is the base URL for the provider's completion API.
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates against the provider.
	// Should typically be loaded from an environment variable.
	APIKey string `yaml:"api_key"`

	// Model is the model identifier to request completions from.
	Model string `yaml:"model"`

	// Timeout is the maximum duration for a single completion call.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`
}

// FederationConfig holds federation settings. Neither field is read by
// pkg/federation or pkg/orchestrator, which take their timeouts and
// subplans from their callers.
type FederationConfig struct {
	// DefaultTimeoutSec is a federated-execution timeout in seconds.
	// Default: 60
	DefaultTimeoutSec int `yaml:"default_timeout_sec"`

	// MaxServices is a limit on SERVICE subplans per federated plan;
	// it is not enforced anywhere.
	MaxServices int `yaml:"max_services"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactCredentials enables automatic redaction of auth headers,
	// bearer tokens, and basic-auth userinfo from logged fields.
	// Default: true
	RedactCredentials bool `yaml:"redact_credentials"`

	// RedactPatterns contains custom redaction patterns, appended to
	// the built-in credential patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address for a Prometheus metrics endpoint.
	// cmd/sparqlate has no long-lived subcommand and never listens on it.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "sparqlgateway"
	Namespace string `yaml:"namespace"`

	// Subsystem further scopes metric names under Namespace.
	// Default: "gateway"
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets defines histogram buckets for request
	// duration (seconds).
	// Default: [0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}
