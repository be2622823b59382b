package knowledge

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"sparqlgateway/pkg/discovery"
	"sparqlgateway/pkg/model"
)

func TestSchedulerRunsRefreshOnInterval(t *testing.T) {
	cache, srv := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"boolean": true})
	})
	defer srv.Close()

	ep := model.EndpointDescriptor{URL: srv.URL}
	opts := discovery.Options{Mode: model.ModeFast, OverallBudget: 2 * time.Second}

	sched := NewScheduler(cache, []model.EndpointDescriptor{ep}, opts)
	if err := sched.Start("@every 50ms"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer sched.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cache.Peek(srv.URL) != nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("expected scheduled refresh to populate the cache within the deadline")
}

func TestSchedulerStartRejectsInvalidSpec(t *testing.T) {
	cache, srv := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {})
	defer srv.Close()
	sched := NewScheduler(cache, nil, discovery.Options{})
	if err := sched.Start("not a cron spec"); err == nil {
		t.Error("expected an error for an invalid cron spec")
	}
}
