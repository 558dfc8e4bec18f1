package consumer

import (
	"context"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

// MessageParser turns a raw queue message body into an event
type MessageParser interface {
	Parse(body []byte) (*domain.Event, error)
}

// Invalidator drops cached aggregates after events become durable.
// It must not fail the batch; implementations log their own errors.
type Invalidator interface {
	Invalidate(ctx context.Context, applicationID, eventName, visitorID string)
}
