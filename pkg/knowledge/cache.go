// Package knowledge implements the Knowledge Cache (spec.md §4.F): an
// in-memory, per-endpoint store of the most recent DiscoveryKnowledge,
// refreshed on demand or on a schedule. Grounded on the teacher's
// pkg/config/singleton.go global-singleton pattern (Initialize once,
// GetConfig/SetConfig/ReloadConfig thread-safely swap the whole value),
// generalized from one process-wide value to one value per endpoint URL
// and from a mutex-guarded pointer to an atomic.Pointer swap — the cache
// is read far more often (every Orchestrator call) than it is written
// (only on refresh), which is exactly atomic.Pointer's sweet spot.
package knowledge

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"sparqlgateway/pkg/discovery"
	"sparqlgateway/pkg/model"
	"sparqlgateway/pkg/telemetry/metrics"
)

// cacheMetricName labels every metric this cache records, distinguishing
// it from any other cache a future Collector consumer might register.
const cacheMetricName = "knowledge"

// entry holds one endpoint's cached knowledge plus when it was produced.
type entry struct {
	knowledge atomic.Pointer[model.DiscoveryKnowledge]
	fetchedAt atomic.Pointer[time.Time]
}

// Cache stores one DiscoveryKnowledge per endpoint URL, populated by a
// Detector on miss or forced refresh.
type Cache struct {
	detector *discovery.Detector
	metrics  *metrics.Collector

	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
}

// New builds a Cache that refreshes entries older than ttl. A zero ttl
// means entries never expire on their own (only forceRefresh re-runs
// discovery).
func New(detector *discovery.Detector, ttl time.Duration) *Cache {
	return &Cache{detector: detector, entries: map[string]*entry{}, ttl: ttl}
}

// WithMetrics attaches a Collector that records hits, misses, evictions,
// and current entry count under the "knowledge" cache name. Optional: a
// Cache built without it simply skips recording.
func (c *Cache) WithMetrics(m *metrics.Collector) *Cache {
	c.metrics = m
	return c
}

func (c *Cache) entryFor(url string) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[url]
	if !ok {
		e = &entry{}
		c.entries[url] = e
	}
	return e
}

// Get returns the cached DiscoveryKnowledge for ep, running discovery on a
// cold cache, an expired entry, or when forceRefresh is set (spec.md §4.D:
// "a forceRefresh flag re-runs even on cache hit").
func (c *Cache) Get(ctx context.Context, ep model.EndpointDescriptor, opts discovery.Options, forceRefresh bool) (*model.DiscoveryKnowledge, error) {
	e := c.entryFor(ep.URL)

	if !forceRefresh {
		if k := e.knowledge.Load(); k != nil && !c.expired(e) {
			c.recordHit()
			return k, nil
		}
	}
	c.recordMiss()

	k, err := c.detector.Detect(ctx, ep, opts)
	if err != nil {
		if stale := e.knowledge.Load(); stale != nil {
			return stale, nil // serve stale rather than fail the caller outright
		}
		return nil, err
	}

	now := time.Now()
	e.knowledge.Store(k)
	e.fetchedAt.Store(&now)
	c.recordSize()
	return k, nil
}

func (c *Cache) recordHit() {
	if c.metrics != nil {
		c.metrics.RecordCacheHit(cacheMetricName)
	}
}

func (c *Cache) recordMiss() {
	if c.metrics != nil {
		c.metrics.RecordCacheMiss(cacheMetricName)
	}
}

func (c *Cache) recordSize() {
	if c.metrics == nil {
		return
	}
	c.mu.Lock()
	size := len(c.entries)
	c.mu.Unlock()
	c.metrics.UpdateCacheSize(cacheMetricName, size)
}

// Peek returns the currently cached knowledge for url without triggering a
// refresh, or nil if nothing has been cached yet.
func (c *Cache) Peek(url string) *model.DiscoveryKnowledge {
	return c.entryFor(url).knowledge.Load()
}

// Invalidate drops the cached entry for url, forcing the next Get to run
// discovery regardless of forceRefresh.
func (c *Cache) Invalidate(url string) {
	c.mu.Lock()
	_, existed := c.entries[url]
	delete(c.entries, url)
	c.mu.Unlock()
	if existed && c.metrics != nil {
		c.metrics.RecordCacheEviction(cacheMetricName)
	}
}

func (c *Cache) expired(e *entry) bool {
	if c.ttl <= 0 {
		return false
	}
	fetchedAt := e.fetchedAt.Load()
	if fetchedAt == nil {
		return true
	}
	return time.Since(*fetchedAt) > c.ttl
}
