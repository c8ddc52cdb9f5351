package db

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FilterBuilder helps build MongoDB filters fluently
type FilterBuilder struct {
	filter bson.M
	err    error
}

// NewFilter creates a new FilterBuilder
func NewFilter() *FilterBuilder {
	return &FilterBuilder{filter: bson.M{}}
}

// ObjectID adds an ObjectID equality condition. A malformed id is kept as an
// error for Build instead of being dropped, which would widen the filter.
func (f *FilterBuilder) ObjectID(field string, id string) *FilterBuilder {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		if f.err == nil {
			f.err = fmt.Errorf("filter %s: %w", field, err)
		}
		return f
	}
	f.filter[field] = objectID
	return f
}

// Build returns the final bson.M filter
func (f *FilterBuilder) Build() (bson.M, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.filter, nil
}

// ByID matches a single document by its _id
func ByID(id string) (bson.M, error) {
	return NewFilter().ObjectID("_id", id).Build()
}

// Empty returns an empty filter (matches all documents)
func Empty() bson.M {
	return bson.M{}
}
