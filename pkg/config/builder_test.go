package config

// testConfig returns a Config with defaults applied and one valid
// endpoint, suitable as a starting point for table-driven tests that
// only need to vary one field.
func testConfig() Config {
	cfg := Config{
		Endpoints: []EndpointConfig{
			{Name: "dbpedia", URL: "https://dbpedia.org/sparql"},
		},
	}
	ApplyDefaults(&cfg)
	return cfg
}
