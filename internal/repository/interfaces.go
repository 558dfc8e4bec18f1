package repository

import (
	"context"
	"errors"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

// ErrMissingApplication is returned when a filter is not scoped to an application
var ErrMissingApplication = errors.New("event filter requires an application id")

// EventFilter selects events of exactly one application.
// Empty optional fields do not filter.
type EventFilter struct {
	ApplicationID string
	EventName     string
	VisitorID     string
	TimeRange     domain.TimeRange
}

// Validate checks that the filter is scoped to an application
func (f EventFilter) Validate() error {
	if f.ApplicationID == "" {
		return ErrMissingApplication
	}
	return f.TimeRange.Validate()
}

// Matches reports whether event satisfies the filter
func (f EventFilter) Matches(event *domain.Event) bool {
	if event.ApplicationID != f.ApplicationID {
		return false
	}
	if f.EventName != "" && event.EventName != f.EventName {
		return false
	}
	if f.VisitorID != "" && event.VisitorID != f.VisitorID {
		return false
	}
	return f.TimeRange.Contains(event.Timestamp)
}

// EventStore defines the interface for event storage operations
type EventStore interface {
	// Append durably stores one event and returns its ID
	Append(ctx context.Context, event *domain.Event) (string, error)

	// AppendBatch stores a batch of events and returns how many were written
	AppendBatch(ctx context.Context, events []*domain.Event) (int, error)

	// Query returns the events matching filter, oldest first
	Query(ctx context.Context, filter EventFilter) ([]*domain.Event, error)

	// InitSchema initializes the storage schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the storage is reachable
	Ping(ctx context.Context) error

	// Close closes the store and releases resources
	Close() error
}
