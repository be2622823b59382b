package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified
// path, applies defaults, validates the result, and returns it. It
// does not apply environment variable overrides; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// VerifyTLS is seeded before decoding: yaml.v3 leaves fields absent
	// from the file untouched, so an omitted verify_ssl stays true while
	// an explicit `verify_ssl: false` still overrides it.
	cfg := Config{Connection: ConnectionConfig{VerifyTLS: DefaultVerifyTLS}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables
// follow the naming convention SPARQLGATEWAY_SECTION_FIELD (e.g.
// SPARQLGATEWAY_CONNECTION_TIMEOUT). Environment variables always
// take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// process-wide sections of the configuration. Per-endpoint fields are
// not overridable this way, since there is no single "the" endpoint.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("SPARQLGATEWAY_CONNECTION_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Connection.Timeout = d
		}
	}
	if val := os.Getenv("SPARQLGATEWAY_CONNECTION_VERIFY_SSL"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Connection.VerifyTLS = b
		}
	}
	if val := os.Getenv("SPARQLGATEWAY_CONNECTION_RETRY_ATTEMPTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Connection.RetryAttempts = i
		}
	}
	if val := os.Getenv("SPARQLGATEWAY_CONNECTION_RETRY_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Connection.RetryDelay = d
		}
	}
	if val := os.Getenv("SPARQLGATEWAY_CONNECTION_RETRY_BACKOFF"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Connection.RetryBackoff = f
		}
	}
	if val := os.Getenv("SPARQLGATEWAY_CONNECTION_USER_AGENT"); val != "" {
		cfg.Connection.UserAgent = val
	}
	if val := os.Getenv("SPARQLGATEWAY_CONNECTION_POOL_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Connection.PoolSize = i
		}
	}

	if val := os.Getenv("SPARQLGATEWAY_DISCOVERY_FAST_MODE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Discovery.FastMode = b
		}
	}
	if val := os.Getenv("SPARQLGATEWAY_DISCOVERY_MAX_SAMPLES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Discovery.MaxSamples = i
		}
	}
	if val := os.Getenv("SPARQLGATEWAY_DISCOVERY_OVERALL_DEADLINE_SEC"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Discovery.OverallDeadlineSec = i
		}
	}

	if val := os.Getenv("SPARQLGATEWAY_RATE_LIMIT_REQUESTS_PER_SECOND"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.RateLimit.RequestsPerSecond = f
		}
	}
	if val := os.Getenv("SPARQLGATEWAY_RATE_LIMIT_BURST"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.RateLimit.Burst = i
		}
	}

	if val := os.Getenv("SPARQLGATEWAY_LLM_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.LLM.Enabled = b
		}
	}
	if val := os.Getenv("SPARQLGATEWAY_LLM_PROVIDER"); val != "" {
		cfg.LLM.Provider = val
	}
	if val := os.Getenv("SPARQLGATEWAY_LLM_BASE_URL"); val != "" {
		cfg.LLM.BaseURL = val
	}
	if val := os.Getenv("SPARQLGATEWAY_LLM_API_KEY"); val != "" {
		cfg.LLM.APIKey = val
	}
	if val := os.Getenv("SPARQLGATEWAY_LLM_MODEL"); val != "" {
		cfg.LLM.Model = val
	}

	if val := os.Getenv("SPARQLGATEWAY_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SPARQLGATEWAY_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SPARQLGATEWAY_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("SPARQLGATEWAY_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}

	// Endpoint auth credentials are the one per-endpoint exception:
	// SPARQLGATEWAY_ENDPOINT_<NAME>_PASSWORD / _TOKEN let an operator
	// keep secrets out of the YAML file entirely while still naming
	// which configured endpoint they belong to.
	for i := range cfg.Endpoints {
		applyEndpointAuthEnvOverride(&cfg.Endpoints[i])
	}
}

func applyEndpointAuthEnvOverride(ep *EndpointConfig) {
	if ep.Name == "" {
		return
	}
	prefix := fmt.Sprintf("SPARQLGATEWAY_ENDPOINT_%s_", strings.ToUpper(sanitizeEnvName(ep.Name)))
	if val := os.Getenv(prefix + "PASSWORD"); val != "" {
		ep.Auth.Password = val
	}
	if val := os.Getenv(prefix + "TOKEN"); val != "" {
		ep.Auth.Token = val
	}
}

func sanitizeEnvName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
}
