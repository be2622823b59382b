package config

import "testing"

func TestConfigYAMLTagsRoundTrip(t *testing.T) {
	cfg := testConfig()
	if len(cfg.Endpoints) != 1 {
		t.Fatalf("expected 1 endpoint, got %d", len(cfg.Endpoints))
	}
	if cfg.Endpoints[0].URL != "https://dbpedia.org/sparql" {
		t.Errorf("unexpected endpoint URL: %q", cfg.Endpoints[0].URL)
	}
}

func TestEndpointConfigCarriesAuth(t *testing.T) {
	ep := EndpointConfig{
		Name: "secured",
		URL:  "https://secured.example.org/sparql",
		Auth: AuthConfig{Type: "bearer", Token: "abc123"},
	}
	if ep.Auth.Type != "bearer" || ep.Auth.Token != "abc123" {
		t.Errorf("unexpected auth config: %+v", ep.Auth)
	}
}

func TestEndpointConnectionOverridesAreIndependent(t *testing.T) {
	cfg := Config{
		Connection: ConnectionConfig{Timeout: 5},
		Endpoints: []EndpointConfig{
			{Name: "a", URL: "https://a/sparql", Connection: ConnectionConfig{Timeout: 50}},
			{Name: "b", URL: "https://b/sparql"},
		},
	}
	ApplyDefaults(&cfg)
	if cfg.Endpoints[0].Connection.Timeout != 50 {
		t.Errorf("expected endpoint override preserved, got %v", cfg.Endpoints[0].Connection.Timeout)
	}
	if cfg.Endpoints[1].Connection.Timeout != DefaultTimeout {
		t.Errorf("expected endpoint without override to receive the default, got %v", cfg.Endpoints[1].Connection.Timeout)
	}
}
