package config

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific
// configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g.,
	// "connection.timeout").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. It implements the error interface and provides
// access to all field errors.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a
// ValidationError if any validation rules fail. It returns nil if the
// configuration is valid. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateEndpoints(cfg.Endpoints)...)
	errs = append(errs, validateConnection("connection", &cfg.Connection)...)
	errs = append(errs, validateDiscovery(&cfg.Discovery)...)
	errs = append(errs, validateRateLimit("rate_limit", &cfg.RateLimit)...)
	errs = append(errs, validateLLM(&cfg.LLM)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateEndpoints(endpoints []EndpointConfig) []FieldError {
	var errs []FieldError
	seen := make(map[string]bool, len(endpoints))

	for i, ep := range endpoints {
		prefix := fmt.Sprintf("endpoints[%d]", i)

		if ep.URL == "" {
			errs = append(errs, FieldError{Field: prefix + ".url", Message: "url is required"})
		} else if u, err := url.Parse(ep.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, FieldError{Field: prefix + ".url", Message: "must be an absolute http(s) URL"})
		}

		if ep.Name != "" {
			if seen[ep.Name] {
				errs = append(errs, FieldError{Field: prefix + ".name", Message: fmt.Sprintf("duplicate endpoint name %q", ep.Name)})
			}
			seen[ep.Name] = true
		}

		switch ep.Auth.Type {
		case "", "basic", "bearer":
		default:
			errs = append(errs, FieldError{Field: prefix + ".auth.type", Message: fmt.Sprintf("unknown auth type %q, want \"\", \"basic\", or \"bearer\"", ep.Auth.Type)})
		}
		if ep.Auth.Type == "basic" && ep.Auth.Username == "" {
			errs = append(errs, FieldError{Field: prefix + ".auth.username", Message: "required when auth.type is \"basic\""})
		}
		if ep.Auth.Type == "bearer" && ep.Auth.Token == "" {
			errs = append(errs, FieldError{Field: prefix + ".auth.token", Message: "required when auth.type is \"bearer\""})
		}

		errs = append(errs, validateConnection(prefix+".connection", &ep.Connection)...)
		errs = append(errs, validateRateLimit(prefix+".rate_limit", &ep.RateLimit)...)
	}

	return errs
}

func validateConnection(prefix string, c *ConnectionConfig) []FieldError {
	var errs []FieldError

	if c.Timeout < 0 {
		errs = append(errs, FieldError{Field: prefix + ".timeout", Message: "must not be negative"})
	}
	if c.RetryAttempts < 0 {
		errs = append(errs, FieldError{Field: prefix + ".retry_attempts", Message: "must not be negative"})
	}
	if c.RetryDelay < 0 {
		errs = append(errs, FieldError{Field: prefix + ".retry_delay", Message: "must not be negative"})
	}
	if c.RetryBackoff != 0 && c.RetryBackoff < 1.0 {
		errs = append(errs, FieldError{Field: prefix + ".retry_backoff", Message: "must be at least 1.0 or zero (to use the default)"})
	}
	if c.PoolSize < 0 {
		errs = append(errs, FieldError{Field: prefix + ".pool_size", Message: "must not be negative"})
	}

	return errs
}

func validateRateLimit(prefix string, r *RateLimitConfig) []FieldError {
	var errs []FieldError
	if r.RequestsPerSecond < 0 {
		errs = append(errs, FieldError{Field: prefix + ".requests_per_second", Message: "must not be negative"})
	}
	if r.Burst < 0 {
		errs = append(errs, FieldError{Field: prefix + ".burst", Message: "must not be negative"})
	}
	return errs
}

func validateDiscovery(d *DiscoveryConfig) []FieldError {
	var errs []FieldError
	if d.MaxSamples < 0 {
		errs = append(errs, FieldError{Field: "discovery.max_samples", Message: "must not be negative"})
	}
	if d.OverallDeadlineSec < 0 {
		errs = append(errs, FieldError{Field: "discovery.overall_deadline_sec", Message: "must not be negative"})
	}
	return errs
}

func validateLLM(l *LLMConfig) []FieldError {
	var errs []FieldError
	if !l.Enabled {
		return errs
	}
	switch l.Provider {
	case "openai", "anthropic":
	default:
		errs = append(errs, FieldError{Field: "llm.provider", Message: fmt.Sprintf("unknown provider %q", l.Provider)})
	}
	if l.Model == "" {
		errs = append(errs, FieldError{Field: "llm.model", Message: "required when llm.enabled is true"})
	}
	return errs
}

func validateTelemetry(t *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch t.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{Field: "telemetry.logging.level", Message: fmt.Sprintf("unknown level %q", t.Logging.Level)})
	}
	switch t.Logging.Format {
	case "", "json", "text":
	default:
		errs = append(errs, FieldError{Field: "telemetry.logging.format", Message: fmt.Sprintf("unknown format %q", t.Logging.Format)})
	}

	if t.Metrics.Path != "" && !strings.HasPrefix(t.Metrics.Path, "/") {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "must start with /"})
	}

	return errs
}
