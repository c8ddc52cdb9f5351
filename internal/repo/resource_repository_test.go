package repo

import (
	"context"
	"testing"

	"foodhub/internal/db"
	"foodhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

func newUserRepository(mt *mtest.T) ResourceRepository[model.User] {
	handle := db.NewHandle(nil)
	handle.Attach(mt.DB)
	return NewResourceRepository(db.NewRepository[model.User](handle, mt.Coll.Name()), zap.NewNop())
}

func TestResourceRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert returns hex id", func(mt *mtest.T) {
		repo := newUserRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Insert(context.Background(), model.User{FirstName: "Ada", Email: "ada@example.com"})
		require.NoError(mt, err)
		assert.True(mt, model.IsValidID(id))
	})

	mt.Run("duplicate email maps to ErrDuplicateKey", func(mt *mtest.T) {
		repo := newUserRepository(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: foodhub.users index: email_1",
		}))

		_, err := repo.Insert(context.Background(), model.User{Email: "ada@example.com"})
		assert.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("missing document maps to ErrNotFound", func(mt *mtest.T) {
		repo := newUserRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+mt.Coll.Name(), mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update reports matched and modified", func(mt *mtest.T) {
		repo := newUserRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		matched, modified, err := repo.UpdateFields(context.Background(), primitive.NewObjectID().Hex(), bson.M{"phone": "1"})
		require.NoError(mt, err)
		assert.EqualValues(mt, 1, matched)
		assert.EqualValues(mt, 0, modified)
	})

	mt.Run("store errors are wrapped", func(mt *mtest.T) {
		repo := newUserRepository(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		_, err := repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrNotFound)
		assert.Contains(mt, err.Error(), "delete")
	})
}

func TestResourceRepository_NotInitialized(t *testing.T) {
	repo := NewResourceRepository(db.NewRepository[model.User](db.NewHandle(nil), "users"), zap.NewNop())

	_, err := repo.ListAll(context.Background())
	assert.ErrorIs(t, err, db.ErrNotInitialized)
}
