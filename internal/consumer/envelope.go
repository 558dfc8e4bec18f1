package consumer

import (
	"context"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
)

// Envelope carries a parsed event together with the way to settle its queue message
type Envelope struct {
	MessageID string
	Event     *domain.Event
	ack       func(context.Context) error
	nack      func(context.Context) error
}

// NewEnvelope creates a new message envelope; nil callbacks are no-ops
func NewEnvelope(messageID string, event *domain.Event, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		MessageID: messageID,
		Event:     event,
		ack:       ack,
		nack:      nack,
	}
}

// Ack removes the message from the queue once its event is stored
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack == nil {
		return nil
	}
	return e.ack(ctx)
}

// Nack hands the message back to the queue for redelivery
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack == nil {
		return nil
	}
	return e.nack(ctx)
}
