package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodhub/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrPersistence  = errors.New("persistence failure")
)

const (
	defaultWriteTimeout = 5 * time.Second
	defaultReadTimeout  = 30 * time.Second
)

// ResourceRepository is the storage contract for one collection. Every call
// touches at most one document, except ListAll.
type ResourceRepository[T any] interface {
	ListAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, document T) (string, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) (matched int64, modified int64, err error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}

type resourceRepository[T any] struct {
	mongoRepo *db.Repository[T]
	logger    *zap.Logger
}

func NewResourceRepository[T any](mongoRepo *db.Repository[T], logger *zap.Logger) ResourceRepository[T] {
	return &resourceRepository[T]{
		mongoRepo: mongoRepo,
		logger:    logger.With(zap.String("collection", mongoRepo.Name())),
	}
}

// -----------------------------------------------------------------------------
// Reads
// -----------------------------------------------------------------------------

func (r *resourceRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	ctx, cancel := r.ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	docs, err := r.mongoRepo.FindAll(ctx, db.Empty())
	if err != nil {
		r.logger.Error("failed to list documents", zap.Error(err))
		return nil, r.wrap("list", err)
	}

	r.logger.Debug("documents listed", zap.Int("count", len(docs)))
	return docs, nil
}

func (r *resourceRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	ctx, cancel := r.ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	doc, err := r.mongoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to read document", zap.Error(err), zap.String("id", id))
		return nil, r.wrap("get", err)
	}
	return doc, nil
}

// -----------------------------------------------------------------------------
// Writes
// -----------------------------------------------------------------------------

func (r *resourceRepository[T]) Insert(ctx context.Context, document T) (string, error) {
	ctx, cancel := r.ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	id, err := r.mongoRepo.Create(ctx, document)
	if err != nil {
		r.logger.Error("failed to insert document", zap.Error(err))
		return "", r.wrap("insert", err)
	}

	r.logger.Info("document inserted", zap.String("inserted_id", id.Hex()))
	return id.Hex(), nil
}

func (r *resourceRepository[T]) UpdateFields(ctx context.Context, id string, fields bson.M) (int64, int64, error) {
	ctx, cancel := r.ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.UpdateByID(ctx, id, fields)
	if err != nil {
		r.logger.Error("failed to update document", zap.Error(err), zap.String("id", id))
		return 0, 0, r.wrap("update", err)
	}

	r.logger.Info("document updated",
		zap.String("id", id),
		zap.Int64("matched", result.MatchedCount),
		zap.Int64("modified", result.ModifiedCount),
	)
	return result.MatchedCount, result.ModifiedCount, nil
}

func (r *resourceRepository[T]) DeleteByID(ctx context.Context, id string) (int64, error) {
	ctx, cancel := r.ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.DeleteByID(ctx, id)
	if err != nil {
		r.logger.Error("failed to delete document", zap.Error(err), zap.String("id", id))
		return 0, r.wrap("delete", err)
	}

	r.logger.Info("document deleted", zap.String("id", id), zap.Int64("deleted", result.DeletedCount))
	return result.DeletedCount, nil
}

// -----------------------------------------------------------------------------
// Private Helper Methods
// -----------------------------------------------------------------------------

func (r *resourceRepository[T]) ensureTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hadDeadline := ctx.Deadline(); hadDeadline {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

// wrap maps driver failures onto the repository taxonomy.
func (r *resourceRepository[T]) wrap(op string, err error) error {
	switch {
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s %s: %w", op, r.mongoRepo.Name(), ErrDuplicateKey)
	case errors.Is(err, db.ErrNotAcknowledged):
		return fmt.Errorf("%s %s: %w", op, r.mongoRepo.Name(), ErrPersistence)
	default:
		return fmt.Errorf("%s %s: %w", op, r.mongoRepo.Name(), err)
	}
}
