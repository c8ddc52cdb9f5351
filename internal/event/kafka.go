package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TopicResourceEvents = "foodhub.resource-events"

	defaultPublishTimeout = 500 * time.Millisecond
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes resource events keyed by document id, so all events
// for one document land on the same partition. Publish never waits longer
// than its timeout.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaWriter creates an async writer. Delivery failures surface through
// the completion callback instead of the caller.
func NewKafkaWriter(brokers []string, topic string, logger *zap.Logger) *kafka.Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		BatchTimeout:           10 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("kafka delivery failed",
					zap.Error(err),
					zap.String("topic", topic),
					zap.Int("messages", len(messages)),
				)
			}
		},
	}
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer:  NewKafkaWriter(brokers, topic, logger),
		timeout: defaultPublishTimeout,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev ResourceEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal resource event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(ev.ID),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "resource", Value: []byte(ev.Resource)},
			{Key: "event", Value: []byte(ev.Event)},
		},
	}

	timeout := p.timeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("write resource event to kafka: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
