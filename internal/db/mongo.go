package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository provides generic CRUD operations for one MongoDB collection
type Repository[T any] struct {
	handle         *Handle
	collectionName string
}

// NewRepository creates a new generic repository
func NewRepository[T any](handle *Handle, collectionName string) *Repository[T] {
	return &Repository[T]{
		handle:         handle,
		collectionName: collectionName,
	}
}

// Name returns the collection name
func (r *Repository[T]) Name() string {
	return r.collectionName
}

func (r *Repository[T]) collection() (*mongo.Collection, error) {
	database, err := r.handle.Database()
	if err != nil {
		return nil, err
	}
	return database.Collection(r.collectionName), nil
}

// Create inserts a new document and returns the generated identifier
func (r *Repository[T]) Create(ctx context.Context, document T) (primitive.ObjectID, error) {
	collection, err := r.collection()
	if err != nil {
		return primitive.NilObjectID, err
	}

	result, err := collection.InsertOne(ctx, document)
	if err != nil {
		if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
			return primitive.NilObjectID, ErrNotAcknowledged
		}
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: unexpected inserted id %T", ErrNotAcknowledged, result.InsertedID)
	}
	return id, nil
}

// FindByID finds a document by its ObjectID
func (r *Repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	filter, err := ByID(id)
	if err != nil {
		return nil, err
	}
	return r.FindOne(ctx, filter)
}

// FindOne finds a single document matching the filter
func (r *Repository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	collection, err := r.collection()
	if err != nil {
		return nil, err
	}

	var result T
	err = collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindAll finds all documents matching the filter. The result is never nil.
func (r *Repository[T]) FindAll(ctx context.Context, filter bson.M) ([]T, error) {
	collection, err := r.collection()
	if err != nil {
		return nil, err
	}

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateByID sets the given fields on the document with this ObjectID
func (r *Repository[T]) UpdateByID(ctx context.Context, id string, update bson.M) (*mongo.UpdateResult, error) {
	filter, err := ByID(id)
	if err != nil {
		return nil, err
	}

	collection, err := r.collection()
	if err != nil {
		return nil, err
	}

	result, err := collection.UpdateOne(ctx, filter, bson.M{"$set": update})
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return nil, ErrNotAcknowledged
	}
	return result, err
}

// DeleteByID deletes a document by its ObjectID
func (r *Repository[T]) DeleteByID(ctx context.Context, id string) (*mongo.DeleteResult, error) {
	filter, err := ByID(id)
	if err != nil {
		return nil, err
	}

	collection, err := r.collection()
	if err != nil {
		return nil, err
	}

	result, err := collection.DeleteOne(ctx, filter)
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return nil, ErrNotAcknowledged
	}
	return result, err
}
