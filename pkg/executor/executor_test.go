package executor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sparqlgateway/pkg/gwerrors"
	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/ratelimit"
	"sparqlgateway/pkg/transport"
)

func newExecutor() *Executor {
	tr := transport.New(transport.DefaultPoolConfig(), 4)
	return New(tr, ratelimit.NewRegistry())
}

func TestExecuteSelectParsesBindings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("expected GET for short query, got %s", r.Method)
		}
		w.Write([]byte(`{"head":{"vars":["name"]},"results":{"bindings":[{"name":{"type":"literal","value":"Alice"}}]}}`))
	}))
	defer srv.Close()

	e := newExecutor()
	ep := model.EndpointDescriptor{URL: srv.URL}
	res, err := e.Execute(context.Background(), ep, "SELECT ?name WHERE { ?s ?p ?name }", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalRows != 1 || res.Rows[0]["name"].Value != "Alice" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestExecuteAskParsesBoolean(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"boolean": true}`))
	}))
	defer srv.Close()

	e := newExecutor()
	ep := model.EndpointDescriptor{URL: srv.URL}
	res, err := e.Execute(context.Background(), ep, "ASK { ?s ?p ?o }", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Rows[0]["boolean"].Value != "true" {
		t.Errorf("expected boolean true, got %+v", res.Rows)
	}
}

func TestExecuteUsesPostForLongQuery(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{"boolean": true}`))
	}))
	defer srv.Close()

	e := newExecutor()
	ep := model.EndpointDescriptor{URL: srv.URL}
	longQuery := "ASK { " + strings.Repeat("?s ?p ?o . ", 300) + "}"
	if len(longQuery) <= wireThreshold {
		t.Fatalf("test query too short: %d bytes", len(longQuery))
	}
	if _, err := e.Execute(context.Background(), ep, longQuery, time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != "POST" {
		t.Errorf("expected POST for long query, got %s", gotMethod)
	}
}

func TestExecutePropagatesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	e := newExecutor()
	ep := model.EndpointDescriptor{URL: srv.URL}
	_, err := e.Execute(context.Background(), ep, "ASK { ?s ?p ?o }", time.Second)
	ge, ok := err.(*gwerrors.Error)
	if !ok {
		t.Fatalf("expected *gwerrors.Error, got %T", err)
	}
	if ge.Kind != gwerrors.KindHTTPError {
		t.Errorf("expected HTTP_ERROR, got %s", ge.Kind)
	}
}

func TestExecutePropagatesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{"boolean": true}`))
	}))
	defer srv.Close()

	e := newExecutor()
	ep := model.EndpointDescriptor{URL: srv.URL}
	_, err := e.Execute(context.Background(), ep, "ASK { ?s ?p ?o }", 10*time.Millisecond)
	ge, ok := err.(*gwerrors.Error)
	if !ok {
		t.Fatalf("expected *gwerrors.Error, got %T", err)
	}
	if ge.Kind != gwerrors.KindTimeout {
		t.Errorf("expected TIMEOUT, got %s", ge.Kind)
	}
}
