package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	IssuesCollection     = "issues"
	UsersCollection      = "users"
	StaffCollection      = "staffs"
	UpvotesCollection    = "upvotes"
	PaymentsCollection   = "payments"
	DistrictsCollection  = "districtbyRegion"
	CategoriesCollection = "categories"
	FeaturesCollection   = "features"
	StepsCollection      = "howItWorksSteps"
)

// EnsureIndexes creates the unique indexes the stores rely on:
// one account per email, one upvote per (issue, email) and one ledger row per
// transaction id.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		StaffCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		UpvotesCollection: {
			{Keys: bson.D{{Key: "issueId", Value: 1}, {Key: "email", Value: 1}}, Options: unique},
		},
		PaymentsCollection: {
			{Keys: bson.D{{Key: "transactionId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "customerEmail", Value: 1}, {Key: "paidAt", Value: -1}}},
		},
		IssuesCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "assignedStaff.email", Value: 1}}},
			{Keys: bson.D{{Key: "priority", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
