// Package memory implements repository.EventStore in process memory
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository"
)

// Repository keeps events per application behind an RWMutex
type Repository struct {
	mu     sync.RWMutex
	events map[string][]*domain.Event
	log    *zap.Logger
}

// NewRepository creates an empty in-memory event store
func NewRepository(log *zap.Logger) *Repository {
	return &Repository{
		events: make(map[string][]*domain.Event),
		log:    log,
	}
}

// InitSchema is a no-op
func (r *Repository) InitSchema(ctx context.Context) error {
	r.log.Info("In-memory event store ready")
	return nil
}

// Append stores a copy of event
func (r *Repository) Append(ctx context.Context, event *domain.Event) (string, error) {
	if _, err := r.AppendBatch(ctx, []*domain.Event{event}); err != nil {
		return "", err
	}
	return event.EventID, nil
}

// AppendBatch stores copies of events; a batch with an unscoped event is rejected whole
func (r *Repository) AppendBatch(ctx context.Context, events []*domain.Event) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	for _, event := range events {
		if event.ApplicationID == "" {
			return 0, fmt.Errorf("failed to append event %s: %w", event.EventID, repository.ErrMissingApplication)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, event := range events {
		r.events[event.ApplicationID] = append(r.events[event.ApplicationID], clone(event))
	}

	return len(events), nil
}

// Query scans only the filter's application
func (r *Repository) Query(ctx context.Context, filter repository.EventFilter) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var matched []*domain.Event
	for _, event := range r.events[filter.ApplicationID] {
		if filter.Matches(event) {
			matched = append(matched, clone(event))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[j].After(matched[i])
	})

	return matched, nil
}

// Ping reports the context state
func (r *Repository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close drops every stored event
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make(map[string][]*domain.Event)
	return nil
}

func clone(event *domain.Event) *domain.Event {
	copied := *event
	copied.Metadata = maps.Clone(event.Metadata)
	return &copied
}
