package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/cache"
	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/dto"
)

// Ingest validates and durably stores one event, then invalidates the aggregates it affects.
// Invalidation failures are logged and never fail the ingestion.
func (s *AnalyticsService) Ingest(ctx context.Context, applicationID string, req *dto.CollectEventRequest) (string, error) {
	event, err := s.buildEvent(applicationID, req)
	if err != nil {
		s.log.Warn("Event validation failed",
			zap.String("application_id", applicationID),
			zap.String("event_name", req.EventName),
			zap.Error(err))
		return "", err
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	eventID, err := s.store.Append(storeCtx, event)
	if err != nil {
		s.log.Error("Failed to append event",
			zap.String("application_id", applicationID),
			zap.String("event_name", event.EventName),
			zap.Error(err))
		return "", domain.DependencyUnavailable("event store", err)
	}

	// The write is durable; a canceled request must not skip invalidation.
	s.Invalidate(context.WithoutCancel(ctx), applicationID, event.EventName, event.VisitorID)

	return eventID, nil
}

// IngestBulk validates each event independently. Valid events are published to the
// queue for asynchronous storage or, without a queue, written in one batch.
func (s *AnalyticsService) IngestBulk(ctx context.Context, applicationID string, reqs []dto.CollectEventRequest) ([]string, []string, error) {
	var eventIDs []string
	var errs []string
	var events []*domain.Event

	for i := range reqs {
		event, err := s.buildEvent(applicationID, &reqs[i])
		if err != nil {
			errs = append(errs, fmt.Sprintf("event %d: %s", i, err.Error()))
			s.log.Warn("Failed to validate event in bulk",
				zap.Int("index", i),
				zap.String("application_id", applicationID),
				zap.Error(err))
			continue
		}
		events = append(events, event)
	}

	if len(events) == 0 {
		return eventIDs, errs, nil
	}

	if s.publisher == nil {
		return s.appendBulk(ctx, applicationID, events, errs)
	}

	for _, event := range events {
		if err := s.publisher.PublishEvent(ctx, event); err != nil {
			errs = append(errs, fmt.Sprintf("event %s: failed to publish event to queue", event.EventID))
			s.log.Error("Failed to publish event",
				zap.String("event_id", event.EventID),
				zap.String("application_id", applicationID),
				zap.Error(err))
			continue
		}
		eventIDs = append(eventIDs, event.EventID)
	}

	return eventIDs, errs, nil
}

func (s *AnalyticsService) appendBulk(ctx context.Context, applicationID string, events []*domain.Event, errs []string) ([]string, []string, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	if _, err := s.store.AppendBatch(storeCtx, events); err != nil {
		s.log.Error("Failed to append event batch",
			zap.String("application_id", applicationID),
			zap.Int("event_count", len(events)),
			zap.Error(err))
		return nil, errs, domain.DependencyUnavailable("event store", err)
	}

	eventIDs := make([]string, 0, len(events))
	seen := make(map[string]struct{})
	for _, event := range events {
		eventIDs = append(eventIDs, event.EventID)
		scope := event.EventName + "\x00" + event.VisitorID
		if _, ok := seen[scope]; ok {
			continue
		}
		seen[scope] = struct{}{}
		s.Invalidate(context.WithoutCancel(ctx), applicationID, event.EventName, event.VisitorID)
	}

	return eventIDs, errs, nil
}

// Invalidate drops the cached aggregates an event for (applicationID, eventName, visitorID) affects.
// It is best-effort: failures are logged and swallowed.
func (s *AnalyticsService) Invalidate(ctx context.Context, applicationID, eventName, visitorID string) {
	cacheCtx, cancel := context.WithTimeout(ctx, s.opts.CacheTimeout)
	defer cancel()

	keys := cache.IngestionKeys(applicationID, eventName, visitorID)
	if err := s.cache.Invalidate(cacheCtx, keys...); err != nil {
		s.log.Warn("Failed to invalidate cached aggregates",
			zap.String("application_id", applicationID),
			zap.String("event_name", eventName),
			zap.Strings("keys", keys),
			zap.Error(err))
	}
}

func (s *AnalyticsService) buildEvent(applicationID string, req *dto.CollectEventRequest) (*domain.Event, error) {
	eventName := strings.TrimSpace(req.EventName)
	if eventName == "" {
		return nil, domain.InvalidArgument("event_name is required")
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, domain.InvalidArgument("url is required")
	}

	now := s.opts.Clock.Now().UTC()
	timestamp := now
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
		if timestamp.After(now.Add(s.opts.MaxFutureSkew)) {
			return nil, domain.InvalidArgument("timestamp cannot be in the future: %s", timestamp.Format("2006-01-02T15:04:05Z07:00"))
		}
	}

	metadata, err := normalizeMetadata(req.Metadata)
	if err != nil {
		return nil, err
	}

	eventID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event id: %w", err)
	}

	return &domain.Event{
		EventID:       eventID.String(),
		ApplicationID: applicationID,
		EventName:     eventName,
		URL:           url,
		Referrer:      strings.TrimSpace(req.Referrer),
		Device:        strings.TrimSpace(req.Device),
		VisitorID:     strings.TrimSpace(req.VisitorID),
		Timestamp:     timestamp,
		Metadata:      metadata,
	}, nil
}

// normalizeMetadata keeps strings as they are and stores any other JSON value in its JSON form
func normalizeMetadata(raw map[string]interface{}) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	metadata := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			metadata[key] = v
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, domain.InvalidArgument("metadata %q is not serializable", key)
			}
			metadata[key] = string(encoded)
		}
	}
	return metadata, nil
}
