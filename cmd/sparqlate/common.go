package main

import (
	"fmt"

	"sparqlgateway/pkg/config"
	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/telemetry/logging"
	"sparqlgateway/pkg/telemetry/metrics"
	"sparqlgateway/pkg/transport"

	"sparqlgateway/pkg/cli"
)

// loadConfig loads the configuration file named by the --config flag
// (Initialize already validates it), returning a *cli.ConfigError on
// failure so callers can surface it uniformly.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	return config.GetConfig(), nil
}

// newLogger builds the process logger from the configured telemetry
// section, defaulting to info/json when verbose is not set.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:             level,
		Format:            cfg.Telemetry.Logging.Format,
		AddSource:         cfg.Telemetry.Logging.AddSource,
		RedactCredentials: cfg.Telemetry.Logging.RedactCredentials,
		RedactPatterns:    cfg.Telemetry.Logging.RedactPatterns,
	})
}

// newMetrics builds a process-local Prometheus collector. cmd/sparqlate
// never exposes a scrape endpoint (it is a one-shot CLI, not a server);
// the registry exists only so a single invocation's counters can be
// inspected by a caller embedding this package, and so every subcommand
// exercises the same recording path a long-lived deployment would use.
func newMetrics(cfg *config.Config) *metrics.Collector {
	return metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
}

// newTransport builds the shared HTTP transport pool from the
// process-wide connection defaults.
func newTransport(cfg *config.Config) *transport.Transport {
	pool := transport.DefaultPoolConfig()
	poolSize := cfg.Connection.PoolSize
	if poolSize == 0 {
		poolSize = 10
	}
	pool.MaxIdleConnsPerHost = poolSize
	if pool.MaxIdleConns < poolSize {
		pool.MaxIdleConns = poolSize
	}
	return transport.New(pool, poolSize)
}

// resolveEndpointConfig finds the named endpoint's raw config entry. An
// empty name selects the sole configured endpoint; it is an error to
// leave it empty with more than one endpoint configured.
func resolveEndpointConfig(cfg *config.Config, name string) (*config.EndpointConfig, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints configured")
	}

	if name == "" {
		if len(cfg.Endpoints) > 1 {
			return nil, fmt.Errorf("--endpoint is required when more than one endpoint is configured")
		}
		return &cfg.Endpoints[0], nil
	}
	for i := range cfg.Endpoints {
		if cfg.Endpoints[i].Name == name {
			return &cfg.Endpoints[i], nil
		}
	}
	return nil, fmt.Errorf("no endpoint named %q in config", name)
}

// resolveEndpoint finds the named endpoint in cfg and converts it to a
// model.EndpointDescriptor, merging the process-wide connection defaults
// with any per-endpoint override. An empty name selects the sole
// configured endpoint; it is an error to leave it empty with more than
// one endpoint configured.
func resolveEndpoint(cfg *config.Config, name string) (model.EndpointDescriptor, error) {
	match, err := resolveEndpointConfig(cfg, name)
	if err != nil {
		return model.EndpointDescriptor{}, err
	}
	return endpointDescriptor(cfg, *match), nil
}

// connectionFor returns the merged model.ConnectionConfig for the named
// endpoint, the counterpart callers pass to Executor/Orchestrator calls
// alongside the model.EndpointDescriptor from resolveEndpoint.
func connectionFor(cfg *config.Config, name string) (model.ConnectionConfig, error) {
	match, err := resolveEndpointConfig(cfg, name)
	if err != nil {
		return model.ConnectionConfig{}, err
	}
	return mergeConnection(cfg.Connection, match.Connection), nil
}

// allEndpoints converts every configured endpoint to a
// model.EndpointDescriptor, in config order.
func allEndpoints(cfg *config.Config) []model.EndpointDescriptor {
	out := make([]model.EndpointDescriptor, len(cfg.Endpoints))
	for i, ep := range cfg.Endpoints {
		out[i] = endpointDescriptor(cfg, ep)
	}
	return out
}

func endpointDescriptor(cfg *config.Config, ep config.EndpointConfig) model.EndpointDescriptor {
	conn := mergeConnection(cfg.Connection, ep.Connection)

	rl := ep.RateLimit
	if rl.RequestsPerSecond == 0 && rl.Burst == 0 {
		rl = cfg.RateLimit
	}

	return model.EndpointDescriptor{
		URL:  ep.URL,
		Name: ep.Name,
		Auth: endpointAuth(ep.Auth),
		RateLimit: model.RateLimitSpec{
			Rate:  rl.RequestsPerSecond,
			Burst: int64(rl.Burst),
		},
		Timeout: conn.Timeout,
	}
}

func endpointAuth(a config.AuthConfig) model.Auth {
	switch a.Type {
	case "basic":
		return model.Auth{Kind: model.AuthBasic, Username: a.Username, Password: a.Password}
	case "bearer":
		return model.Auth{Kind: model.AuthBearer, Token: a.Token}
	default:
		return model.Auth{Kind: model.AuthNone}
	}
}

// mergeConnection overlays an endpoint's connection override on the
// process-wide default, then fills any still-zero field from
// model.DefaultConnectionConfig.
func mergeConnection(base, override config.ConnectionConfig) model.ConnectionConfig {
	merged := base
	if override.Timeout != 0 {
		merged.Timeout = override.Timeout
	}
	if override.RetryAttempts != 0 {
		merged.RetryAttempts = override.RetryAttempts
	}
	if override.RetryDelay != 0 {
		merged.RetryDelay = override.RetryDelay
	}
	if override.RetryBackoff != 0 {
		merged.RetryBackoff = override.RetryBackoff
	}
	if override.UserAgent != "" {
		merged.UserAgent = override.UserAgent
	}
	// VerifyTLS is a bool, so a per-endpoint override cannot distinguish
	// "explicitly false" from "not set": the process-wide default always
	// wins for this field.

	return model.ConnectionConfig{
		Timeout:       merged.Timeout,
		RetryAttempts: merged.RetryAttempts,
		RetryDelay:    merged.RetryDelay,
		RetryBackoff:  merged.RetryBackoff,
		VerifyTLS:     merged.VerifyTLS,
		UserAgent:     merged.UserAgent,
	}.WithDefaults()
}
