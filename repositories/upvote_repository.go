package repositories

import (
	"context"

	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UpvoteRepository interface {
	// Add stores the upvote unless the (issue, email) pair already exists and
	// reports whether it was stored.
	Add(ctx context.Context, up *models.Upvote) (bool, error)
	ListByIssue(ctx context.Context, issueID primitive.ObjectID) ([]models.Upvote, error)
	DeleteByIssue(ctx context.Context, issueID primitive.ObjectID) error
}

type upvoteRepository struct {
	coll *mongo.Collection
}

func NewUpvoteRepository(db *mongo.Database) UpvoteRepository {
	return &upvoteRepository{coll: db.Collection(UpvotesCollection)}
}

func (r *upvoteRepository) Add(ctx context.Context, up *models.Upvote) (bool, error) {
	if up.ID.IsZero() {
		up.ID = primitive.NewObjectID()
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"issueId": up.IssueID, "email": up.Email},
		bson.M{"$setOnInsert": up},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

func (r *upvoteRepository) ListByIssue(ctx context.Context, issueID primitive.ObjectID) ([]models.Upvote, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"issueId": issueID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	upvotes := make([]models.Upvote, 0)
	if err := cursor.All(ctx, &upvotes); err != nil {
		return nil, err
	}
	return upvotes, nil
}

func (r *upvoteRepository) DeleteByIssue(ctx context.Context, issueID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"issueId": issueID})
	return err
}
