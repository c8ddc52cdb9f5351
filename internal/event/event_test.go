package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	events []ResourceEvent
	err    error
}

func (s *recordingSink) Publish(_ context.Context, ev ResourceEvent) error {
	s.events = append(s.events, ev)
	return s.err
}

type fakeWriter struct {
	messages []kafka.Message
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestBus_FansOutAndSwallowsSinkErrors(t *testing.T) {
	failing := &recordingSink{err: errors.New("broker down")}
	healthy := &recordingSink{}
	bus := NewBus(zap.NewNop(), failing, healthy)

	ev := ResourceEvent{Event: EventCreated, Resource: "products", ID: "507f1f77bcf86cd799439011"}
	require.NoError(t, bus.Publish(context.Background(), ev))

	assert.Equal(t, []ResourceEvent{ev}, failing.events)
	assert.Equal(t, []ResourceEvent{ev}, healthy.events)
}

func TestBus_NilIsNoop(t *testing.T) {
	var bus *Bus
	assert.NoError(t, bus.Publish(context.Background(), ResourceEvent{}))
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &KafkaPublisher{writer: writer}

	ev := ResourceEvent{
		Event:     EventDeleted,
		Resource:  "orders",
		ID:        "507f1f77bcf86cd799439011",
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, publisher.Publish(context.Background(), ev))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, []byte(ev.ID), msg.Key)

	var decoded ResourceEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev, decoded)

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

// stalledWriter behaves like a writer whose broker never answers.
type stalledWriter struct{}

func (stalledWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func (stalledWriter) Close() error { return nil }

func TestKafkaPublisher_UnreachableBrokerDoesNotStall(t *testing.T) {
	publisher := &KafkaPublisher{writer: stalledWriter{}, timeout: 20 * time.Millisecond}
	bus := NewBus(zap.NewNop(), publisher)

	start := time.Now()
	err := publisher.Publish(context.Background(), ResourceEvent{Event: EventCreated, ID: "x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, bus.Publish(context.Background(), ResourceEvent{Event: EventUpdated, ID: "x"}))
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewKafkaWriter_IsAsync(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, TopicResourceEvents, zap.NewNop())
	defer w.Close()

	assert.True(t, w.Async)
	assert.NotNil(t, w.Completion)
	assert.Equal(t, TopicResourceEvents, w.Topic)
}
