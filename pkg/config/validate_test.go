package config

import (
	"strings"
	"testing"
)

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	cfg := testConfig()
	if err := Validate(&cfg); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsEmptyEndpointURL(t *testing.T) {
	cfg := Config{Endpoints: []EndpointConfig{{Name: "bad"}}}
	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected error for empty endpoint URL")
	}
	if !strings.Contains(err.Error(), "endpoints[0].url") {
		t.Errorf("expected field path in error, got: %v", err)
	}
}

func TestValidateRejectsMalformedEndpointURL(t *testing.T) {
	cfg := Config{Endpoints: []EndpointConfig{{Name: "bad", URL: "not a url"}}}
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for malformed URL")
	}
}

func TestValidateRejectsDuplicateEndpointNames(t *testing.T) {
	cfg := Config{Endpoints: []EndpointConfig{
		{Name: "dup", URL: "https://a/sparql"},
		{Name: "dup", URL: "https://b/sparql"},
	}}
	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected error for duplicate endpoint names")
	}
	if !strings.Contains(err.Error(), "duplicate endpoint name") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestValidateRejectsUnknownAuthType(t *testing.T) {
	cfg := Config{Endpoints: []EndpointConfig{
		{Name: "a", URL: "https://a/sparql", Auth: AuthConfig{Type: "hmac"}},
	}}
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for unknown auth type")
	}
}

func TestValidateRequiresUsernameForBasicAuth(t *testing.T) {
	cfg := Config{Endpoints: []EndpointConfig{
		{Name: "a", URL: "https://a/sparql", Auth: AuthConfig{Type: "basic", Password: "secret"}},
	}}
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for basic auth missing username")
	}
}

func TestValidateRequiresTokenForBearerAuth(t *testing.T) {
	cfg := Config{Endpoints: []EndpointConfig{
		{Name: "a", URL: "https://a/sparql", Auth: AuthConfig{Type: "bearer"}},
	}}
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for bearer auth missing token")
	}
}

func TestValidateRejectsNegativeConnectionFields(t *testing.T) {
	cases := []ConnectionConfig{
		{Timeout: -1},
		{RetryAttempts: -1},
		{RetryDelay: -1},
		{PoolSize: -1},
	}
	for i, c := range cases {
		cfg := Config{Endpoints: []EndpointConfig{{Name: "a", URL: "https://a/sparql"}}, Connection: c}
		if err := Validate(&cfg); err == nil {
			t.Errorf("case %d: expected validation error for %+v", i, c)
		}
	}
}

func TestValidateRejectsSubOneRetryBackoff(t *testing.T) {
	cfg := Config{
		Endpoints:  []EndpointConfig{{Name: "a", URL: "https://a/sparql"}},
		Connection: ConnectionConfig{RetryBackoff: 0.5},
	}
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for retry_backoff below 1.0")
	}
}

func TestValidateRejectsNegativeRateLimitFields(t *testing.T) {
	cfg := Config{
		Endpoints: []EndpointConfig{{Name: "a", URL: "https://a/sparql"}},
		RateLimit: RateLimitConfig{RequestsPerSecond: -1},
	}
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for negative requests_per_second")
	}
}

func TestValidateRejectsEnabledLLMWithoutModel(t *testing.T) {
	cfg := Config{
		Endpoints: []EndpointConfig{{Name: "a", URL: "https://a/sparql"}},
		LLM:       LLMConfig{Enabled: true, Provider: "openai"},
	}
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for enabled LLM config missing model")
	}
}

func TestValidateAcceptsDisabledLLMWithoutModel(t *testing.T) {
	cfg := Config{
		Endpoints: []EndpointConfig{{Name: "a", URL: "https://a/sparql"}},
		LLM:       LLMConfig{Enabled: false},
	}
	if err := Validate(&cfg); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsUnknownLoggingLevel(t *testing.T) {
	cfg := Config{
		Endpoints: []EndpointConfig{{Name: "a", URL: "https://a/sparql"}},
		Telemetry: TelemetryConfig{Logging: LoggingConfig{Level: "verbose"}},
	}
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for unknown logging level")
	}
}

func TestValidateRejectsMetricsPathWithoutLeadingSlash(t *testing.T) {
	cfg := Config{
		Endpoints: []EndpointConfig{{Name: "a", URL: "https://a/sparql"}},
		Telemetry: TelemetryConfig{Metrics: MetricsConfig{Path: "metrics"}},
	}
	if err := Validate(&cfg); err == nil {
		t.Error("expected error for metrics path missing leading slash")
	}
}

func TestValidationErrorAggregatesMultipleFailures(t *testing.T) {
	cfg := Config{Endpoints: []EndpointConfig{{Name: "bad"}, {Name: "bad"}}}
	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected aggregated validation error")
	}
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(ve.Errors) < 2 {
		t.Errorf("expected at least 2 field errors, got %d", len(ve.Errors))
	}
}
