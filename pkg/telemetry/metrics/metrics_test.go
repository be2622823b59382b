package metrics

import (
	"testing"
	"time"

	"sparqlgateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:                true,
		Namespace:              "test",
		Subsystem:              "metrics",
		RequestDurationBuckets: []float64{0.1, 0.5, 1.0, 5.0},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.registry != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_RecordHTTPRequest(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	tests := []struct {
		name     string
		endpoint string
		method   string
		status   string
		duration time.Duration
	}{
		{"success request", "dbpedia", "POST", "200", 1200 * time.Millisecond},
		{"error request", "wikidata", "POST", "500", 500 * time.Millisecond},
		{"timeout request", "dbpedia", "POST", "timeout", 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordHTTPRequest(tt.endpoint, tt.method, tt.status, tt.duration)

			count := testutil.ToFloat64(collector.transportMetrics.requestsTotal.WithLabelValues(tt.endpoint, tt.method, tt.status))
			if count < 1 {
				t.Errorf("Expected request counter >= 1, got %f", count)
			}
		})
	}
}

func TestCollector_EndpointMetrics(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	t.Run("update health", func(t *testing.T) {
		collector.UpdateEndpointHealth("dbpedia", true)
		health := testutil.ToFloat64(collector.endpointMetrics.health.WithLabelValues("dbpedia"))
		if health != 1.0 {
			t.Errorf("Expected health=1.0, got %f", health)
		}

		collector.UpdateEndpointHealth("dbpedia", false)
		health = testutil.ToFloat64(collector.endpointMetrics.health.WithLabelValues("dbpedia"))
		if health != 0.0 {
			t.Errorf("Expected health=0.0, got %f", health)
		}
	})

	t.Run("record probe latency", func(t *testing.T) {
		collector.RecordEndpointProbeLatency("dbpedia", 0.95)
	})

	t.Run("record error", func(t *testing.T) {
		collector.RecordEndpointError("dbpedia", "timeout")
		count := testutil.ToFloat64(collector.endpointMetrics.errors.WithLabelValues("dbpedia", "timeout"))
		if count < 1 {
			t.Errorf("Expected error count >= 1, got %f", count)
		}
	})
}

func TestCollector_QueryMetrics(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	t.Run("record generated", func(t *testing.T) {
		collector.RecordQueryGenerated("aggregation")
		count := testutil.ToFloat64(collector.queryMetrics.generatedTotal.WithLabelValues("aggregation"))
		if count < 1 {
			t.Errorf("Expected generated count >= 1, got %f", count)
		}
	})

	t.Run("record validation failure", func(t *testing.T) {
		collector.RecordQueryValidationFailure("unbound_variable")
		count := testutil.ToFloat64(collector.queryMetrics.validationFailures.WithLabelValues("unbound_variable"))
		if count < 1 {
			t.Errorf("Expected validation failure count >= 1, got %f", count)
		}
	})

	t.Run("record execution", func(t *testing.T) {
		collector.RecordQueryExecution("dbpedia", 800*time.Millisecond, 42)
	})
}

func TestCollector_OrchestratorMetrics(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	t.Run("record attempt", func(t *testing.T) {
		collector.RecordOrchestratorAttempt("dbpedia", "ok", 2*time.Millisecond)
		count := testutil.ToFloat64(collector.orchestratorMetrics.attemptsTotal.WithLabelValues("dbpedia", "ok"))
		if count < 1 {
			t.Errorf("Expected attempt count >= 1, got %f", count)
		}
	})

	t.Run("record fallback", func(t *testing.T) {
		collector.RecordFallback("dbpedia")
		count := testutil.ToFloat64(collector.orchestratorMetrics.fallbacksTotal.WithLabelValues("dbpedia"))
		if count < 1 {
			t.Errorf("Expected fallback count >= 1, got %f", count)
		}
	})

	t.Run("record federation status", func(t *testing.T) {
		collector.RecordFederationStatus("partial")
		count := testutil.ToFloat64(collector.orchestratorMetrics.federationStatusTotal.WithLabelValues("partial"))
		if count < 1 {
			t.Errorf("Expected federation status count >= 1, got %f", count)
		}
	})
}

func TestCollector_CacheMetrics(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	t.Run("record cache hit", func(t *testing.T) {
		collector.RecordCacheHit("knowledge")
		count := testutil.ToFloat64(collector.cacheMetrics.hitsTotal.WithLabelValues("knowledge"))
		if count < 1 {
			t.Errorf("Expected hit count >= 1, got %f", count)
		}
	})

	t.Run("record cache miss", func(t *testing.T) {
		collector.RecordCacheMiss("knowledge")
		count := testutil.ToFloat64(collector.cacheMetrics.missesTotal.WithLabelValues("knowledge"))
		if count < 1 {
			t.Errorf("Expected miss count >= 1, got %f", count)
		}
	})

	t.Run("update cache size", func(t *testing.T) {
		collector.UpdateCacheSize("knowledge", 42)
		size := testutil.ToFloat64(collector.cacheMetrics.entries.WithLabelValues("knowledge"))
		if size != 42 {
			t.Errorf("Expected size=42, got %f", size)
		}
	})

	t.Run("record eviction", func(t *testing.T) {
		collector.RecordCacheEviction("knowledge")
		count := testutil.ToFloat64(collector.cacheMetrics.evictionsTotal.WithLabelValues("knowledge"))
		if count < 1 {
			t.Errorf("Expected eviction count >= 1, got %f", count)
		}
	})
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	// None of these should panic.
	collector.RecordHTTPRequest("dbpedia", "POST", "200", time.Second)
	collector.UpdateEndpointHealth("dbpedia", true)
	collector.RecordOrchestratorAttempt("dbpedia", "ok", time.Millisecond)
	collector.RecordCacheHit("knowledge")
}

func TestCardinalityLimiter(t *testing.T) {
	limiter := NewCardinalityLimiter(3)

	if !limiter.Allow("label1") {
		t.Error("Expected first label to be allowed")
	}
	if !limiter.Allow("label2") {
		t.Error("Expected second label to be allowed")
	}
	if !limiter.Allow("label3") {
		t.Error("Expected third label to be allowed")
	}
	if limiter.Allow("label4") {
		t.Error("Expected fourth label to be rejected")
	}
	if !limiter.Allow("label1") {
		t.Error("Expected existing label to be allowed")
	}
	if limiter.Count() != 3 {
		t.Errorf("Expected count=3, got %d", limiter.Count())
	}
}

func TestTransportMetrics_RecordSize(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	tm := NewTransportMetrics(cfg, registry)

	tm.RecordSize("dbpedia", "request", 512)
	tm.RecordSize("dbpedia", "response", 10240)
}

func TestEndpointMetrics_RecordLatency(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	em := NewEndpointMetrics(cfg, registry)

	em.RecordProbeLatency("dbpedia", 0.4)
	latencyCount := testutil.CollectAndCount(em.probeLatency)
	if latencyCount == 0 {
		t.Error("expected probe latency histogram to have samples")
	}
}

func TestQueryMetrics_RecordExecution(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	qm := NewQueryMetrics(cfg, registry)

	qm.RecordExecution("dbpedia", 500*time.Millisecond, 17)
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				collector.RecordHTTPRequest("dbpedia", "POST", "200", time.Second)
				collector.UpdateEndpointHealth("dbpedia", true)
				collector.RecordOrchestratorAttempt("dbpedia", "ok", time.Millisecond)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	count := testutil.ToFloat64(collector.transportMetrics.requestsTotal.WithLabelValues("dbpedia", "POST", "200"))
	if count != 1000 {
		t.Errorf("Expected 1000 requests, got %f", count)
	}
}
