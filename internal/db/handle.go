package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrNotInitialized  = errors.New("database not initialized")
	ErrNotAcknowledged = errors.New("write was not acknowledged")
)

// Handle is the process-wide store connection. It is created empty, filled
// once by Init and only read afterwards.
type Handle struct {
	mu       sync.RWMutex
	database *mongo.Database
	logger   *zap.Logger
}

func NewHandle(logger *zap.Logger) *Handle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handle{logger: logger}
}

// Init connects and pings. Calling it again after success is a no-op.
func (h *Handle) Init(ctx context.Context, uri string, database string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.database != nil {
		h.logger.Info("database is already initialized")
		return nil
	}

	con, err := OpenConnection(ctx, uri, database)
	if err != nil {
		h.logger.Error("database connection failed", zap.Error(err))
		return err
	}

	h.database = con
	h.logger.Info("database connection established", zap.String("database", database))
	return nil
}

// Attach installs an already connected database.
func (h *Handle) Attach(database *mongo.Database) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.database = database
}

func (h *Handle) Database() (*mongo.Database, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.database == nil {
		return nil, ErrNotInitialized
	}
	return h.database, nil
}

func (h *Handle) Ping(ctx context.Context) error {
	database, err := h.Database()
	if err != nil {
		return err
	}
	return database.Client().Ping(ctx, nil)
}

// EnsureUniqueIndex creates an ascending unique index on field.
func (h *Handle) EnsureUniqueIndex(ctx context.Context, collection string, field string) error {
	database, err := h.Database()
	if err != nil {
		return err
	}

	_, err = database.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create unique index %s.%s: %w", collection, field, err)
	}
	return nil
}

// Close disconnects the client. It is safe to call on a handle that was never initialized.
func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.database == nil {
		return nil
	}
	if err := h.database.Client().Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close MongoDB connection: %w", err)
	}
	h.database = nil
	return nil
}

func OpenConnection(ctx context.Context, uri string, database string) (*mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client.Database(database), nil
}
