package service

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/cache"
	"github.com/sirikagonuguntla/website-analytics-api/internal/queue"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository"
)

const (
	DefaultStoreTimeout  = 5 * time.Second
	DefaultCacheTimeout  = 500 * time.Millisecond
	DefaultMaxFutureSkew = time.Minute
)

// Options tunes the analytics service; zero values fall back to the defaults
type Options struct {
	StoreTimeout  time.Duration
	CacheTimeout  time.Duration
	MaxFutureSkew time.Duration
	Policy        cache.Policy
	Clock         clockwork.Clock
}

func (o Options) withDefaults() Options {
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = DefaultStoreTimeout
	}
	if o.CacheTimeout <= 0 {
		o.CacheTimeout = DefaultCacheTimeout
	}
	if o.MaxFutureSkew <= 0 {
		o.MaxFutureSkew = DefaultMaxFutureSkew
	}
	defaultPolicy := cache.DefaultPolicy()
	if o.Policy.SummaryTTL <= 0 {
		o.Policy.SummaryTTL = defaultPolicy.SummaryTTL
	}
	if o.Policy.VisitorStatsTTL <= 0 {
		o.Policy.VisitorStatsTTL = defaultPolicy.VisitorStatsTTL
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	return o
}

// AnalyticsService ingests events and serves cached aggregates
type AnalyticsService struct {
	store     repository.EventStore
	cache     cache.Store
	publisher queue.QueuePublisher
	opts      Options
	log       *zap.Logger
}

// NewAnalyticsService creates a new analytics service.
// publisher may be nil, in which case bulk submissions are written synchronously.
func NewAnalyticsService(store repository.EventStore, cacheStore cache.Store, publisher queue.QueuePublisher, opts Options, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:     store,
		cache:     cacheStore,
		publisher: publisher,
		opts:      opts.withDefaults(),
		log:       log,
	}
}

// Health pings the event store and the cache.
// Only the event store decides readiness; a cache outage degrades to misses.
func (s *AnalyticsService) Health(ctx context.Context) (bool, map[string]string) {
	report := map[string]string{"event_store": "ok", "cache": "ok"}
	healthy := true

	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()
	if err := s.store.Ping(storeCtx); err != nil {
		s.log.Warn("Event store health check failed", zap.Error(err))
		report["event_store"] = err.Error()
		healthy = false
	}

	cacheCtx, cancelCache := context.WithTimeout(ctx, s.opts.CacheTimeout)
	defer cancelCache()
	if err := s.cache.Ping(cacheCtx); err != nil {
		s.log.Warn("Cache health check failed", zap.Error(err))
		report["cache"] = "degraded: " + err.Error()
	}

	return healthy, report
}
