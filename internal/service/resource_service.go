package service

import (
	"context"
	"fmt"
	"time"

	"foodhub/internal/event"
	"foodhub/internal/model"
	"foodhub/internal/repo"
	"foodhub/internal/schema"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// UpdateResult mirrors the store's match and modify counts.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// ResourceService runs the validation and persistence rules for one resource.
// Identifier shape is checked before anything else, payload rules before any
// store call, and existence last.
type ResourceService[T any] interface {
	Resource() Resource[T]
	// CheckID rejects identifiers that are not 24 character hex strings.
	CheckID(id string) error
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, payload map[string]any) (string, error)
	Update(ctx context.Context, id string, payload map[string]any) (UpdateResult, error)
	Delete(ctx context.Context, id string) error
}

type resourceService[T any] struct {
	resource   Resource[T]
	collection string
	repo       repo.ResourceRepository[T]
	events     event.Sink
	logger     *zap.Logger
	now        func() time.Time
}

type Option func(*config)

type config struct {
	now func() time.Time
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

func NewResourceService[T any](
	resource Resource[T],
	collection string,
	repository repo.ResourceRepository[T],
	events event.Sink,
	logger *zap.Logger,
	opts ...Option,
) ResourceService[T] {
	cfg := config{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&cfg)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &resourceService[T]{
		resource:   resource,
		collection: collection,
		repo:       repository,
		events:     events,
		logger:     logger.With(zap.String("resource", collection)),
		now:        cfg.now,
	}
}

func (s *resourceService[T]) Resource() Resource[T] {
	return s.resource
}

func (s *resourceService[T]) CheckID(id string) error {
	return s.checkID(id)
}

func (s *resourceService[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.ListAll(ctx)
}

func (s *resourceService[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *resourceService[T]) Create(ctx context.Context, payload map[string]any) (string, error) {
	doc, err := s.resource.Schema.Create(payload)
	if err != nil {
		return "", err
	}

	id, err := s.repo.Insert(ctx, s.resource.Build(doc, s.now()))
	if err != nil {
		return "", err
	}

	s.publish(ctx, event.EventCreated, id)
	return id, nil
}

func (s *resourceService[T]) Update(ctx context.Context, id string, payload map[string]any) (UpdateResult, error) {
	if err := s.checkID(id); err != nil {
		return UpdateResult{}, err
	}

	doc, err := s.resource.Schema.Patch(payload)
	if err != nil {
		return UpdateResult{}, err
	}

	fields := bson.M{"updatedAt": s.now()}
	for k, v := range doc {
		fields[k] = v
	}

	matched, modified, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return UpdateResult{}, err
	}
	if matched == 0 {
		return UpdateResult{}, repo.ErrNotFound
	}

	s.publish(ctx, event.EventUpdated, id)
	return UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}

func (s *resourceService[T]) Delete(ctx context.Context, id string) error {
	if err := s.checkID(id); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return repo.ErrNotFound
	}

	s.publish(ctx, event.EventDeleted, id)
	return nil
}

func (s *resourceService[T]) checkID(id string) error {
	if model.IsValidID(id) {
		return nil
	}
	return &schema.Error{
		Kind:    schema.InvalidIDFormat,
		Field:   "id",
		Message: fmt.Sprintf("Invalid %s ID format", s.resource.Name),
	}
}

func (s *resourceService[T]) publish(ctx context.Context, kind string, id string) {
	if s.events == nil {
		return
	}
	ev := event.ResourceEvent{Event: kind, Resource: s.collection, ID: id, Timestamp: s.now()}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish resource event", zap.Error(err), zap.String("id", id))
	}
}
