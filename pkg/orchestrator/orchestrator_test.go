package orchestrator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"sparqlgateway/pkg/executor"
	"sparqlgateway/pkg/gwerrors"
	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/ratelimit"
	"sparqlgateway/pkg/transport"
)

func newOrchestrator() *Orchestrator {
	tr := transport.New(transport.DefaultPoolConfig(), 4)
	e := executor.New(tr, ratelimit.NewRegistry())
	return New(e)
}

func fastCfg() model.ConnectionConfig {
	return model.ConnectionConfig{RetryAttempts: 2, RetryDelay: time.Millisecond, RetryBackoff: 1.0}
}

func TestExecuteWithFallbackRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"boolean": true}`))
	}))
	defer srv.Close()

	o := newOrchestrator()
	ep := model.EndpointDescriptor{URL: srv.URL}
	res, err := o.ExecuteWithFallback(context.Background(), ep, "ASK { ?s ?p ?o }", nil, time.Second, fastCfg())
	if err != nil {
		t.Fatalf("expected eventual success after retries, got %v", err)
	}
	if res.Rows[0]["boolean"].Value != "true" {
		t.Errorf("unexpected result: %+v", res.Rows)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestExecuteWithFallbackDoesNotRetryFourXX(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	o := newOrchestrator()
	ep := model.EndpointDescriptor{URL: srv.URL}
	_, err := o.ExecuteWithFallback(context.Background(), ep, "ASK { ?s ?p ?o }", nil, time.Second, fastCfg())
	if err == nil {
		t.Fatal("expected error for persistent 4xx")
	}
	if calls != 1 {
		t.Errorf("expected no retries for 4xx, got %d calls", calls)
	}
}

func TestExecuteWithFallbackFallsThroughToSimplerPlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		if q == "primary-fails" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"boolean": true}`))
	}))
	defer srv.Close()

	o := newOrchestrator()
	ep := model.EndpointDescriptor{URL: srv.URL}
	cfg := model.ConnectionConfig{RetryAttempts: 0, RetryDelay: time.Millisecond, RetryBackoff: 1.0}
	res, err := o.ExecuteWithFallback(context.Background(), ep, "primary-fails", []string{"fallback-ok"}, time.Second, cfg)
	if err != nil {
		t.Fatalf("expected fallback plan to succeed, got %v", err)
	}
	if res.Rows[0]["boolean"].Value != "true" {
		t.Errorf("unexpected result: %+v", res.Rows)
	}
}

func TestExecuteFederatedNonSilentFailureIsFatal(t *testing.T) {
	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"head":{"vars":["o"]},"results":{"bindings":[{"o":{"type":"literal","value":"x"}}]}}`))
	}))
	defer okSrv.Close()
	failSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failSrv.Close()

	plan := &model.FederatedPlan{
		Services: []model.ServiceSubplan{
			{EndpointURL: okSrv.URL, Patterns: onePattern(), Silent: false},
			{EndpointURL: failSrv.URL, Patterns: onePattern(), Silent: false},
		},
	}

	o := newOrchestrator()
	res, err := o.ExecuteFederated(context.Background(), plan, nil, time.Second, fastCfg())
	if err == nil {
		t.Fatal("expected fatal error for non-SILENT service failure")
	}
	ge, ok := err.(*gwerrors.Error)
	if !ok || ge.Kind != gwerrors.KindFederationFatal {
		t.Errorf("expected FEDERATION_FATAL, got %v", err)
	}
	if res.Status != StatusFatal {
		t.Errorf("expected status fatal, got %s", res.Status)
	}
}

func TestExecuteFederatedSilentFailureIsPartial(t *testing.T) {
	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"head":{"vars":["o"]},"results":{"bindings":[{"o":{"type":"literal","value":"x"}}]}}`))
	}))
	defer okSrv.Close()
	failSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failSrv.Close()

	plan := &model.FederatedPlan{
		Services: []model.ServiceSubplan{
			{EndpointURL: okSrv.URL, Patterns: onePattern(), Silent: false},
			{EndpointURL: failSrv.URL, Patterns: onePattern(), Silent: true},
		},
	}

	o := newOrchestrator()
	res, err := o.ExecuteFederated(context.Background(), plan, nil, time.Second, fastCfg())
	if err != nil {
		t.Fatalf("expected partial success, got error: %v", err)
	}
	if res.Status != StatusPartial {
		t.Errorf("expected status partial, got %s", res.Status)
	}
	if len(res.Rows) != 1 {
		t.Errorf("expected 1 row from the successful service, got %d", len(res.Rows))
	}
	var sawFailure bool
	for _, svc := range res.PerService {
		if svc.EndpointURL == failSrv.URL {
			sawFailure = true
			if svc.Success {
				t.Error("expected SILENT service outcome to record failure")
			}
		}
	}
	if !sawFailure {
		t.Error("expected per-service status to include the failed SILENT service")
	}
}

func onePattern() []model.TriplePattern {
	return []model.TriplePattern{
		{Subject: model.Var("s"), Predicate: model.Var("p"), Object: model.Var("o")},
	}
}
