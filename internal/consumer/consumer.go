// Package consumer drains the ingestion queue into the event store.
//
// The pipeline has three stages connected by channels: a Receiver long-polls
// SQS, a ParserStage decodes messages into envelopes, and a BatchWriter stores
// them in batches, invalidates affected cache entries and settles the messages.
package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/sirikagonuguntla/website-analytics-api/internal/config"
	"github.com/sirikagonuguntla/website-analytics-api/internal/queue"
	"github.com/sirikagonuguntla/website-analytics-api/internal/repository"
)

const stageBufferSize = 100

// Consumer wires the receiver, parser and batch writer together
type Consumer struct {
	receiver    *Receiver
	parser      *ParserStage
	batchWriter *BatchWriter
}

// NewConsumer creates the pipeline from the consumer settings in cfg
func NewConsumer(cfg *config.Config, queueConsumer queue.QueueConsumer, store repository.EventStore, invalidator Invalidator, log *zap.Logger) *Consumer {
	return newConsumer(cfg, queueConsumer, NewJSONEventParser(), store, invalidator, log)
}

func newConsumer(cfg *config.Config, queueConsumer queue.QueueConsumer, parser MessageParser, store repository.EventStore, invalidator Invalidator, log *zap.Logger) *Consumer {
	return &Consumer{
		receiver: NewReceiver(queueConsumer, ReceiverConfig{
			MaxMessages:     10,
			WaitTimeSeconds: 20,
		}, log),
		parser: NewParserStage(queueConsumer, parser, log),
		batchWriter: NewBatchWriter(store, invalidator, BatchWriterConfig{
			MaxBatchSize: cfg.Consumer.BatchSizeMax,
			FlushTimeout: time.Duration(cfg.Consumer.BatchTimeoutSec) * time.Second,
		}, log),
	}
}

// Start runs the pipeline until ctx is done and every stage has drained
func (c *Consumer) Start(ctx context.Context) error {
	messages := make(chan types.Message, stageBufferSize)
	envelopes := make(chan *Envelope, stageBufferSize)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		c.receiver.Start(ctx, messages)
	}()

	go func() {
		defer wg.Done()
		c.parser.Start(ctx, messages, envelopes)
	}()

	go func() {
		defer wg.Done()
		c.batchWriter.Start(ctx, envelopes)
	}()

	wg.Wait()
	return nil
}
