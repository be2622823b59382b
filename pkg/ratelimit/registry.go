package ratelimit

import (
	"context"
	"sync"
	"time"

	"sparqlgateway/pkg/gwerrors"
	"sparqlgateway/pkg/model"
)

// Registry owns one TokenBucket per endpoint URL, matching spec.md §3's
// ownership rule: "Transport and RateLimiter are process-wide singletons
// per endpoint URL, shared by all callers."
type Registry struct {
	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

// NewRegistry returns an empty registry. Buckets are created lazily on
// first use via ForEndpoint, so endpoints with no configured RateLimitSpec
// never pay for a bucket they don't need.
func NewRegistry() *Registry {
	return &Registry{buckets: map[string]*TokenBucket{}}
}

// ForEndpoint returns the bucket for url, creating it from spec on first
// access. A zero-Rate spec means unlimited: ForEndpoint returns nil, and
// callers must treat a nil bucket as "always allow".
func (r *Registry) ForEndpoint(url string, spec model.RateLimitSpec) *TokenBucket {
	if spec.Rate <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.buckets[url]; ok {
		return b
	}
	burst := spec.Burst
	if burst <= 0 {
		burst = int64(spec.Rate)
		if burst <= 0 {
			burst = 1
		}
	}
	b := NewTokenBucket(burst, spec.Rate)
	r.buckets[url] = b
	return b
}

// TryAcquire is the non-blocking variant: it returns immediately with
// false if n tokens are not currently available. A nil bucket (no rate
// limit configured) always succeeds.
func TryAcquire(b *TokenBucket, n int64) bool {
	if b == nil {
		return true
	}
	return b.Take(n)
}

// Acquire is the cooperatively-suspending variant (spec.md §4.B): it
// polls until n tokens are available or ctx's deadline elapses, whichever
// comes first. A nil bucket always succeeds immediately.
func Acquire(ctx context.Context, b *TokenBucket, n int64) error {
	if b == nil {
		return nil
	}
	if b.Take(n) {
		return nil
	}
	for {
		wait := b.TimeUntilAvailable(n)
		if wait <= 0 {
			wait = time.Millisecond
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return gwerrors.New(gwerrors.KindTimeout, "", "rate limiter wait exceeded caller deadline", gwerrors.WithCause(ctx.Err()))
		case <-timer.C:
		}
		if b.Take(n) {
			return nil
		}
	}
}
