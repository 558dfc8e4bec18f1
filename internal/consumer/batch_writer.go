package consumer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/domain"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository"
)

// BatchWriterConfig configures the batch writer
type BatchWriterConfig struct {
	MaxBatchSize int
	FlushTimeout time.Duration
}

// BatchWriter accumulates envelopes and writes them to the event store in batches.
// A batch is acked only when every event in it was stored, otherwise all of it is nacked.
type BatchWriter struct {
	store       repository.EventStore
	invalidator Invalidator
	config      BatchWriterConfig
	log         *zap.Logger
}

// NewBatchWriter creates a new batch writer; invalidator may be nil
func NewBatchWriter(store repository.EventStore, invalidator Invalidator, config BatchWriterConfig, log *zap.Logger) *BatchWriter {
	return &BatchWriter{
		store:       store,
		invalidator: invalidator,
		config:      config,
		log:         log,
	}
}

// Start batches envelopes from in until in is closed or ctx is done, flushing what is pending on the way out
func (w *BatchWriter) Start(ctx context.Context, in <-chan *Envelope) {
	ticker := time.NewTicker(w.config.FlushTimeout)
	defer ticker.Stop()

	batch := make([]*Envelope, 0, w.config.MaxBatchSize)
	flush := func(reason string) {
		if len(batch) == 0 {
			return
		}
		w.log.Debug("Flushing batch", zap.String("reason", reason), zap.Int("envelope_count", len(batch)))
		w.processBatch(ctx, batch)
		batch = make([]*Envelope, 0, w.config.MaxBatchSize)
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Batch writer shutting down")
			flush("shutdown")
			return

		case envelope, ok := <-in:
			if !ok {
				w.log.Info("Batch writer input channel closed")
				flush("input closed")
				return
			}

			batch = append(batch, envelope)
			if len(batch) >= w.config.MaxBatchSize {
				flush("size")
				ticker.Reset(w.config.FlushTimeout)
			}

		case <-ticker.C:
			flush("timeout")
		}
	}
}

func (w *BatchWriter) processBatch(ctx context.Context, envelopes []*Envelope) {
	// A shutdown must not abandon a batch that is already in hand.
	ctx = context.WithoutCancel(ctx)

	events := make([]*domain.Event, len(envelopes))
	for i, env := range envelopes {
		events[i] = env.Event
	}

	written, err := w.store.AppendBatch(ctx, events)
	if err != nil {
		w.log.Error("Failed to append batch",
			zap.Int("event_count", len(events)),
			zap.Error(err))
		w.nackAll(ctx, envelopes)
		return
	}

	if written != len(events) {
		w.log.Warn("Partial batch append",
			zap.Int("written", written),
			zap.Int("expected", len(events)))
		w.nackAll(ctx, envelopes)
		return
	}

	w.invalidate(ctx, events)
	w.ackAll(ctx, envelopes)

	w.log.Info("Stored event batch", zap.Int("count", written))
}

// invalidate runs once per distinct (application, event name, visitor) in the batch
func (w *BatchWriter) invalidate(ctx context.Context, events []*domain.Event) {
	if w.invalidator == nil {
		return
	}

	type scope struct {
		applicationID string
		eventName     string
		visitorID     string
	}

	seen := make(map[scope]struct{}, len(events))
	for _, event := range events {
		s := scope{event.ApplicationID, event.EventName, event.VisitorID}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		w.invalidator.Invalidate(ctx, s.applicationID, s.eventName, s.visitorID)
	}
}

func (w *BatchWriter) ackAll(ctx context.Context, envelopes []*Envelope) {
	for _, env := range envelopes {
		if err := env.Ack(ctx); err != nil {
			w.log.Error("Failed to ack envelope", zap.String("message_id", env.MessageID), zap.Error(err))
		}
	}
}

func (w *BatchWriter) nackAll(ctx context.Context, envelopes []*Envelope) {
	for _, env := range envelopes {
		if err := env.Nack(ctx); err != nil {
			w.log.Error("Failed to nack envelope", zap.String("message_id", env.MessageID), zap.Error(err))
		}
	}
}
