package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func message(id, body string) types.Message {
	return types.Message{
		MessageId:     aws.String(id),
		Body:          aws.String(body),
		ReceiptHandle: aws.String("receipt-" + id),
	}
}

func receiptIs(handle string) interface{} {
	return mock.MatchedBy(func(input *sqs.DeleteMessageInput) bool {
		return aws.ToString(input.ReceiptHandle) == handle && aws.ToString(input.QueueUrl) == testQueueURL
	})
}

// drain runs the stage over msgs and collects every envelope it emits
func drain(t *testing.T, stage *ParserStage, msgs ...types.Message) []*Envelope {
	t.Helper()

	in := make(chan types.Message, len(msgs))
	for _, msg := range msgs {
		in <- msg
	}
	close(in)

	out := make(chan *Envelope, len(msgs))
	stage.Start(context.Background(), in, out)

	var envelopes []*Envelope
	for env := range out {
		envelopes = append(envelopes, env)
	}
	return envelopes
}

func TestParserStage_Start_Success(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockParser := new(MockMessageParser)
	event := testEvent("1", "v1")
	mockParser.On("Parse", []byte(`{"event_id":"1"}`)).Return(event, nil)

	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	envelopes := drain(t, stage, message("msg-1", `{"event_id":"1"}`))

	require.Len(t, envelopes, 1)
	assert.Equal(t, "msg-1", envelopes[0].MessageID)
	assert.Same(t, event, envelopes[0].Event)
	mockConsumer.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
}

func TestParserStage_Start_MalformedMessageDeleted(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, receiptIs("receipt-bad")).Return(&sqs.DeleteMessageOutput{}, nil).Once()

	mockParser := new(MockMessageParser)
	mockParser.On("Parse", []byte(`garbage`)).Return(nil, errors.New("failed to unmarshal message body"))
	mockParser.On("Parse", []byte(`{"event_id":"2"}`)).Return(testEvent("2", "v1"), nil)

	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	envelopes := drain(t, stage,
		message("bad", `garbage`),
		message("good", `{"event_id":"2"}`),
	)

	require.Len(t, envelopes, 1)
	assert.Equal(t, "2", envelopes[0].Event.EventID)
	mockConsumer.AssertExpectations(t)
}

func TestParserStage_Start_DeleteFailureDoesNotStopStage(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	mockParser := new(MockMessageParser)
	mockParser.On("Parse", mock.Anything).Return(nil, errors.New("bad message"))

	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())

	envelopes := drain(t, stage, message("a", "x"), message("b", "y"))

	assert.Empty(t, envelopes)
	mockConsumer.AssertNumberOfCalls(t, "DeleteMessage", 2)
}

func TestParserStage_Envelope_AckDeletesAndNackReleases(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("DeleteMessage", mock.Anything, receiptIs("receipt-msg-1")).Return(&sqs.DeleteMessageOutput{}, nil).Once()
	mockConsumer.On("ChangeMessageVisibility", mock.Anything, mock.MatchedBy(func(input *sqs.ChangeMessageVisibilityInput) bool {
		return aws.ToString(input.ReceiptHandle) == "receipt-msg-1" && input.VisibilityTimeout == 0
	})).Return(&sqs.ChangeMessageVisibilityOutput{}, nil).Once()

	mockParser := new(MockMessageParser)
	mockParser.On("Parse", mock.Anything).Return(testEvent("1", "v1"), nil)

	stage := NewParserStage(mockConsumer, mockParser, zap.NewNop())
	envelopes := drain(t, stage, message("msg-1", `{}`))
	require.Len(t, envelopes, 1)

	ctx := context.Background()
	assert.NoError(t, envelopes[0].Nack(ctx))
	assert.NoError(t, envelopes[0].Ack(ctx))
	mockConsumer.AssertExpectations(t)
}

func TestParserStage_Start_ContextCancelled(t *testing.T) {
	stage := NewParserStage(new(MockQueueConsumer), new(MockMessageParser), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan types.Message)
	out := make(chan *Envelope)

	done := make(chan struct{})
	go func() {
		stage.Start(ctx, in, out)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Parser stage did not stop after cancellation")
	}

	_, open := <-out
	assert.False(t, open)
}
