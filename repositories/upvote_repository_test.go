package repositories

import (
	"context"
	"testing"

	"cityfix-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUpvoteRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first upvote stored", func(mt *mtest.T) {
		repo := NewUpvoteRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: id}}}},
		))

		stored, err := repo.Add(context.Background(), &models.Upvote{ID: id, IssueID: primitive.NewObjectID(), Email: "a@x.com"})
		require.NoError(mt, err)
		assert.True(mt, stored)
	})

	mt.Run("repeat upvote ignored", func(mt *mtest.T) {
		repo := NewUpvoteRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		stored, err := repo.Add(context.Background(), &models.Upvote{IssueID: primitive.NewObjectID(), Email: "a@x.com"})
		require.NoError(mt, err)
		assert.False(mt, stored)
	})

	mt.Run("racing duplicate ignored", func(mt *mtest.T) {
		repo := NewUpvoteRepository(mt.DB)
		mt.AddMockResponses(duplicateKey())

		stored, err := repo.Add(context.Background(), &models.Upvote{IssueID: primitive.NewObjectID(), Email: "a@x.com"})
		require.NoError(mt, err)
		assert.False(mt, stored)
	})
}
