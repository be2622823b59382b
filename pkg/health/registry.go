package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sparqlgateway/pkg/model"
)

// Registry stores one HealthHistory ring per endpoint URL and can run a
// background checker loop per endpoint, grounded on the teacher's
// StartHealthChecker/runHealthChecker/calculateBackoff pattern in
// pkg/providers/health.go: periodic ticks at a base interval, switching to
// exponential backoff (capped) while the endpoint stays unhealthy.
type Registry struct {
	pinger *Pinger

	mu        sync.Mutex
	histories map[string]*model.HealthHistory
}

// NewRegistry builds an empty registry backed by pinger.
func NewRegistry(pinger *Pinger) *Registry {
	return &Registry{pinger: pinger, histories: map[string]*model.HealthHistory{}}
}

func (r *Registry) historyFor(url string) *model.HealthHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.histories[url]
	if !ok {
		h = model.NewHealthHistory(model.DefaultHealthHistoryCapacity)
		r.histories[url] = h
	}
	return h
}

// Record appends a snapshot already obtained elsewhere (e.g. from
// PingMany) into the per-endpoint history.
func (r *Registry) Record(snap model.HealthSnapshot) {
	r.historyFor(snap.EndpointURL).Append(snap)
}

// Uptime returns the HEALTHY-and-DEGRADED fraction of samples for url
// within window of now (0 window = all recorded samples).
func (r *Registry) Uptime(url string, window time.Duration) float64 {
	return r.historyFor(url).Uptime(window, time.Now())
}

// MeanLatency returns the arithmetic mean response time for url within
// window of now (0 window = all recorded samples).
func (r *Registry) MeanLatency(url string, window time.Duration) time.Duration {
	return r.historyFor(url).MeanLatency(window, time.Now())
}

// History returns the full recorded snapshot history for url.
func (r *Registry) History(url string) []model.HealthSnapshot {
	return r.historyFor(url).Snapshots()
}

// StartChecker runs a background loop pinging ep at baseInterval, recording
// every result into the registry, and backing off exponentially (capped at
// 5 minutes) while consecutive pings classify as anything worse than
// HEALTHY or DEGRADED. It returns once ctx is cancelled.
func (r *Registry) StartChecker(ctx context.Context, ep model.EndpointDescriptor, baseInterval time.Duration) {
	if baseInterval <= 0 {
		baseInterval = 30 * time.Second
	}
	ticker := time.NewTicker(baseInterval)
	defer ticker.Stop()

	var consecutiveFailures int
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := r.pinger.Ping(ctx, ep, true)
			r.Record(snap)

			if snap.Status == model.StatusHealthy || snap.Status == model.StatusDegraded {
				consecutiveFailures = 0
				ticker.Reset(baseInterval)
				continue
			}
			consecutiveFailures++
			backoff := calculateBackoff(consecutiveFailures, baseInterval)
			slog.Debug("endpoint health check backoff",
				"endpoint", ep.URL,
				"status", snap.Status,
				"consecutive_failures", consecutiveFailures,
				"next_check_in", backoff,
			)
			ticker.Reset(backoff)
		}
	}
}

// calculateBackoff doubles baseInterval per consecutive failure, capped at
// a 10x multiplier and an absolute ceiling of 5 minutes.
func calculateBackoff(consecutiveFailures int, baseInterval time.Duration) time.Duration {
	if consecutiveFailures <= 0 {
		return baseInterval
	}
	multiplier := 1 << uint(consecutiveFailures)
	if multiplier > 10 {
		multiplier = 10
	}
	backoff := baseInterval * time.Duration(multiplier)
	const maxBackoff = 5 * time.Minute
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	return backoff
}
