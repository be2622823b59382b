package config

import (
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkLoadConfig benchmarks loading a typical configuration file.
func BenchmarkLoadConfig(b *testing.B) {
	tmpDir := b.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
endpoints:
  - name: dbpedia
    url: "https://dbpedia.org/sparql"
  - name: wikidata
    url: "https://query.wikidata.org/sparql"
    auth:
      type: bearer
      token: "test-token"

connection:
  timeout: "10s"
  retry_attempts: 3
  retry_delay: "1s"
  retry_backoff: 2.0

discovery:
  max_samples: 50
  overall_deadline_sec: 30

rate_limit:
  requests_per_second: 5
  burst: 10

telemetry:
  logging:
    level: "info"
    format: "json"
  metrics:
    enabled: true
    listen_address: "127.0.0.1:9090"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		b.Fatalf("failed to write config file: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := LoadConfig(configPath)
		if err != nil {
			b.Fatalf("failed to load config: %v", err)
		}
	}
}

// BenchmarkLoadConfigWithEnvOverrides benchmarks loading with environment variable overrides.
func BenchmarkLoadConfigWithEnvOverrides(b *testing.B) {
	tmpDir := b.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
endpoints:
  - name: dbpedia
    url: "https://dbpedia.org/sparql"

telemetry:
  logging:
    level: "info"
    format: "json"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		b.Fatalf("failed to write config file: %v", err)
	}

	os.Setenv("SPARQLGATEWAY_CONNECTION_TIMEOUT", "15s")
	os.Setenv("SPARQLGATEWAY_TELEMETRY_LOGGING_LEVEL", "debug")
	defer func() {
		os.Unsetenv("SPARQLGATEWAY_CONNECTION_TIMEOUT")
		os.Unsetenv("SPARQLGATEWAY_TELEMETRY_LOGGING_LEVEL")
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := LoadConfigWithEnvOverrides(configPath)
		if err != nil {
			b.Fatalf("failed to load config: %v", err)
		}
	}
}

// BenchmarkValidate benchmarks configuration validation.
func BenchmarkValidate(b *testing.B) {
	cfg := Config{
		Endpoints: []EndpointConfig{{Name: "dbpedia", URL: "https://dbpedia.org/sparql"}},
	}
	ApplyDefaults(&cfg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Validate(&cfg); err != nil {
			b.Fatalf("validation failed: %v", err)
		}
	}
}

// BenchmarkApplyDefaults benchmarks applying default values.
func BenchmarkApplyDefaults(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cfg := Config{
			Endpoints: []EndpointConfig{{Name: "dbpedia", URL: "https://dbpedia.org/sparql"}},
		}
		ApplyDefaults(&cfg)
	}
}

// BenchmarkGetConfig benchmarks singleton config access.
func BenchmarkGetConfig(b *testing.B) {
	cfg := Config{
		Endpoints: []EndpointConfig{{Name: "dbpedia", URL: "https://dbpedia.org/sparql"}},
	}
	ApplyDefaults(&cfg)
	SetConfig(&cfg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetConfig()
	}
}
