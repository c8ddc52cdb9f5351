package model

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsValidID reports whether s is a 24 character hex document identifier.
func IsValidID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// Ref points at a document of kind T in another collection. Only the shape of
// the identifier is checked when it is written; the target may not exist.
type Ref[T any] struct {
	id primitive.ObjectID
}

func NewRef[T any](id primitive.ObjectID) Ref[T] {
	return Ref[T]{id: id}
}

func ParseRef[T any](hex string) (Ref[T], error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return Ref[T]{}, fmt.Errorf("parse reference %q: %w", hex, err)
	}
	return Ref[T]{id: id}, nil
}

func (r Ref[T]) ID() primitive.ObjectID { return r.id }

func (r Ref[T]) Hex() string { return r.id.Hex() }

func (r Ref[T]) IsZero() bool { return r.id.IsZero() }

// Stored as a plain ObjectID so documents written by other clients decode unchanged.
func (r Ref[T]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(r.id)
}

func (r *Ref[T]) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return bson.RawValue{Type: t, Value: data}.Unmarshal(&r.id)
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.id.Hex())
}

func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return err
	}
	parsed, err := ParseRef[T](hex)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
