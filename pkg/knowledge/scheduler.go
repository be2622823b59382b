package knowledge

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"sparqlgateway/pkg/discovery"
	"sparqlgateway/pkg/model"
)

// Scheduler periodically forces a knowledge refresh for a fixed set of
// endpoints on a cron schedule, so a long-lived gateway process doesn't
// rely solely on TTL expiry or caller-triggered forceRefresh to notice a
// dataset has changed shape.
type Scheduler struct {
	cache     *Cache
	endpoints []model.EndpointDescriptor
	opts      discovery.Options
	cron      *cron.Cron
}

// NewScheduler builds a Scheduler; call Start to begin running.
func NewScheduler(cache *Cache, endpoints []model.EndpointDescriptor, opts discovery.Options) *Scheduler {
	return &Scheduler{
		cache:     cache,
		endpoints: endpoints,
		opts:      opts,
		cron:      cron.New(),
	}
}

// Start schedules a forced refresh of every configured endpoint at spec
// (standard 5-field cron syntax) and begins running it in the background.
// It returns an error if spec fails to parse.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx := context.Background()
		for _, ep := range s.endpoints {
			if _, err := s.cache.Get(ctx, ep, s.opts, true); err != nil {
				slog.Warn("scheduled knowledge refresh failed", "endpoint", ep.URL, "error", err)
			}
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for any in-flight refresh to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
