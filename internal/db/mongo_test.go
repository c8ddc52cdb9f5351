package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type widget struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func newTestRepository(mt *mtest.T) *Repository[widget] {
	handle := NewHandle(nil)
	handle.Attach(mt.DB)
	return NewRepository[widget](handle, mt.Coll.Name())
}

func namespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

func TestRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create returns generated id", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Create(context.Background(), widget{Name: "fries"})
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})

	mt.Run("create surfaces duplicate key", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), widget{Name: "fries"})
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "burger"},
		}))

		found, err := repo.FindByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id, found.ID)
		assert.Equal(mt, "burger", found.Name)
	})

	mt.Run("find by id with no match", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})

	mt.Run("find all across batches", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		first := mtest.CreateCursorResponse(1, namespace(mt), mtest.FirstBatch, bson.D{{Key: "name", Value: "a"}})
		second := mtest.CreateCursorResponse(1, namespace(mt), mtest.NextBatch, bson.D{{Key: "name", Value: "b"}})
		end := mtest.CreateCursorResponse(0, namespace(mt), mtest.NextBatch)
		mt.AddMockResponses(first, second, end)

		all, err := repo.FindAll(context.Background(), Empty())
		require.NoError(mt, err)
		require.Len(mt, all, 2)
		assert.Equal(mt, "a", all[0].Name)
		assert.Equal(mt, "b", all[1].Name)
	})

	mt.Run("find all on empty collection is not nil", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		all, err := repo.FindAll(context.Background(), Empty())
		require.NoError(mt, err)
		assert.NotNil(mt, all)
		assert.Empty(mt, all)
	})

	mt.Run("update by id reports counts", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		result, err := repo.UpdateByID(context.Background(), primitive.NewObjectID().Hex(), bson.M{"name": "x"})
		require.NoError(mt, err)
		assert.EqualValues(mt, 1, result.MatchedCount)
		assert.EqualValues(mt, 1, result.ModifiedCount)
	})

	mt.Run("delete by id with no match", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		result, err := repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.EqualValues(mt, 0, result.DeletedCount)
	})
}

func TestRepository_NotInitialized(t *testing.T) {
	repo := NewRepository[widget](NewHandle(nil), "widgets")

	_, err := repo.FindAll(context.Background(), Empty())
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = repo.Create(context.Background(), widget{})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestRepository_MalformedIDNeverReachesStore(t *testing.T) {
	repo := NewRepository[widget](NewHandle(nil), "widgets")

	_, err := repo.DeleteByID(context.Background(), "not-an-id")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotInitialized))
}

func TestHandle_CloseWithoutInit(t *testing.T) {
	assert.NoError(t, NewHandle(nil).Close(context.Background()))
}

func TestByID(t *testing.T) {
	id := primitive.NewObjectID()

	filter, err := ByID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"_id": id}, filter)

	_, err = ByID("zz")
	assert.Error(t, err)
}
