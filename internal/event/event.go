package event

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// ResourceEvent announces a committed change to one document.
type ResourceEvent struct {
	Event     string    `json:"event"`
	Resource  string    `json:"resource"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives resource events.
type Sink interface {
	Publish(ctx context.Context, ev ResourceEvent) error
}

// Bus fans events out to every sink. A failing sink is logged and never
// fails the write that produced the event.
type Bus struct {
	sinks  []Sink
	logger *zap.Logger
}

func NewBus(logger *zap.Logger, sinks ...Sink) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{sinks: sinks, logger: logger}
}

func (b *Bus) Publish(ctx context.Context, ev ResourceEvent) error {
	if b == nil {
		return nil
	}
	for _, s := range b.sinks {
		if err := s.Publish(ctx, ev); err != nil {
			b.logger.Warn("event sink failed",
				zap.Error(err),
				zap.String("event", ev.Event),
				zap.String("resource", ev.Resource),
				zap.String("id", ev.ID),
			)
		}
	}
	return nil
}
