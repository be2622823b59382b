// Package config provides configuration management for the SPARQL
// gateway.
//
// This package handles loading, validating, and managing configuration
// from YAML files with environment variable overrides. It provides a
// type-safe configuration system with comprehensive validation and
// sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention
// SPARQLGATEWAY_SECTION_FIELD. For example:
//
//   - SPARQLGATEWAY_CONNECTION_TIMEOUT overrides connection.timeout
//   - SPARQLGATEWAY_LLM_API_KEY overrides llm.api_key
//   - SPARQLGATEWAY_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Per-endpoint credentials can be supplied without touching the file at
// all via SPARQLGATEWAY_ENDPOINT_<NAME>_PASSWORD /
// SPARQLGATEWAY_ENDPOINT_<NAME>_TOKEN, where <NAME> is the endpoint's
// configured name, uppercased.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later
// overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton
// pattern:
//
//	// At application startup
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the application
//	cfg := config.GetConfig()
//	fmt.Println(cfg.Endpoints[0].URL)
//
// For testing, prefer dependency injection with explicit Config
// instances rather than the global singleton.
//
// # Hot Reload
//
// Watch starts an fsnotify watch on the config file's directory and
// calls ReloadConfig whenever the file changes, so a long-running
// process can pick up new or edited endpoint descriptors without a
// restart.
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	endpoints:
//	  - name: dbpedia
//	    url: "https://dbpedia.org/sparql"
//
//	connection:
//	  timeout: 10s
//	  retry_attempts: 3
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
