package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/aggregate"
	"github.com/sirikagonuguntla/website-analytics-api/internal/cache"
	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository"
)

// EventSummary returns the count, unique visitors and device histogram of eventName
func (s *AnalyticsService) EventSummary(ctx context.Context, applicationID, eventName string, timeRange domain.TimeRange) (*domain.EventSummary, error) {
	eventName = strings.TrimSpace(eventName)
	if eventName == "" {
		return nil, domain.InvalidArgument("event_name is required")
	}
	if err := timeRange.Validate(); err != nil {
		return nil, err
	}

	key := cache.SummaryKey(applicationID, eventName, timeRange)
	summary, err := loadThrough(ctx, s, domain.KindEventSummary, key, func(ctx context.Context) (domain.EventSummary, error) {
		events, err := s.query(ctx, repository.EventFilter{
			ApplicationID: applicationID,
			EventName:     eventName,
			TimeRange:     timeRange,
		})
		if err != nil {
			return domain.EventSummary{}, err
		}
		return aggregate.Summarize(events, eventName, timeRange)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// UserStats returns everything visitorID did within the application
func (s *AnalyticsService) UserStats(ctx context.Context, applicationID, visitorID string) (*domain.VisitorStats, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return nil, domain.InvalidArgument("visitor_id is required")
	}

	key := cache.VisitorStatsKey(applicationID, visitorID)
	stats, err := loadThrough(ctx, s, domain.KindUserStats, key, func(ctx context.Context) (domain.VisitorStats, error) {
		events, err := s.query(ctx, repository.EventFilter{
			ApplicationID: applicationID,
			VisitorID:     visitorID,
		})
		if err != nil {
			return domain.VisitorStats{}, err
		}
		return aggregate.VisitorStats(events, visitorID), nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// TimeSeries returns eventName bucketed by interval, newest bucket first; it is never cached
func (s *AnalyticsService) TimeSeries(ctx context.Context, applicationID, eventName string, timeRange domain.TimeRange, interval domain.Interval) ([]domain.TimeSeriesBucket, error) {
	eventName = strings.TrimSpace(eventName)
	if eventName == "" {
		return nil, domain.InvalidArgument("event_name is required")
	}
	if err := timeRange.Validate(); err != nil {
		return nil, err
	}
	if interval == "" {
		interval = domain.IntervalDay
	}

	events, err := s.query(ctx, repository.EventFilter{
		ApplicationID: applicationID,
		EventName:     eventName,
		TimeRange:     timeRange,
	})
	if err != nil {
		return nil, err
	}

	return aggregate.TimeSeries(events, interval), nil
}

// Breakdown counts the application's events per value of dimension; it is never cached
func (s *AnalyticsService) Breakdown(ctx context.Context, applicationID string, dimension domain.Dimension, timeRange domain.TimeRange) ([]domain.BreakdownEntry, error) {
	if err := timeRange.Validate(); err != nil {
		return nil, err
	}

	events, err := s.query(ctx, repository.EventFilter{
		ApplicationID: applicationID,
		TimeRange:     timeRange,
	})
	if err != nil {
		return nil, err
	}

	return aggregate.Breakdown(events, dimension), nil
}

func (s *AnalyticsService) query(ctx context.Context, filter repository.EventFilter) ([]*domain.Event, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	events, err := s.store.Query(storeCtx, filter)
	switch {
	case err == nil:
		return events, nil
	case errors.Is(err, domain.ErrInvalidArgument):
		return nil, err
	case errors.Is(err, repository.ErrMissingApplication):
		return nil, domain.InvalidArgument("application id is required")
	default:
		s.log.Error("Failed to query events",
			zap.String("application_id", filter.ApplicationID),
			zap.String("event_name", filter.EventName),
			zap.Error(err))
		return nil, domain.DependencyUnavailable("event store", err)
	}
}

// loadThrough serves key from the cache or computes, stores and returns it.
// Cache failures of any kind degrade to a miss or a skipped write.
func loadThrough[T any](ctx context.Context, s *AnalyticsService, kind domain.AggregateKind, key string, compute func(context.Context) (T, error)) (T, error) {
	ttl, cacheable := s.opts.Policy.TTL(kind)

	if cacheable {
		if value, ok := cachedValue[T](ctx, s, key); ok {
			return value, nil
		}
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if cacheable {
		s.storeValue(ctx, key, value, ttl)
	}

	return value, nil
}

func cachedValue[T any](ctx context.Context, s *AnalyticsService, key string) (T, bool) {
	var value T

	cacheCtx, cancel := context.WithTimeout(ctx, s.opts.CacheTimeout)
	defer cancel()

	payload, ok, err := s.cache.Get(cacheCtx, key)
	if err != nil {
		s.log.Warn("Cache read failed, treating as miss", zap.String("key", key), zap.Error(err))
		return value, false
	}
	if !ok {
		return value, false
	}

	if err := json.Unmarshal(payload, &value); err != nil {
		s.log.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return value, false
	}

	return value, true
}

func (s *AnalyticsService) storeValue(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("Failed to encode aggregate for cache", zap.String("key", key), zap.Error(err))
		return
	}

	cacheCtx, cancel := context.WithTimeout(ctx, s.opts.CacheTimeout)
	defer cancel()

	if err := s.cache.Put(cacheCtx, key, payload, ttl); err != nil {
		s.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
