package repositories

import (
	"context"
	"fmt"

	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReferenceRepository serves the static lookup collections.
type ReferenceRepository interface {
	Districts(ctx context.Context) ([]models.DistrictRegion, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Features(ctx context.Context) ([]models.Feature, error)
	Steps(ctx context.Context) ([]models.HowItWorksStep, error)
	// Replace swaps the content of every reference collection for data.
	Replace(ctx context.Context, data models.ReferenceData) error
}

type referenceRepository struct {
	db *mongo.Database
}

func NewReferenceRepository(db *mongo.Database) ReferenceRepository {
	return &referenceRepository{db: db}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *referenceRepository) Districts(ctx context.Context) ([]models.DistrictRegion, error) {
	return findAll[models.DistrictRegion](ctx, r.db.Collection(DistrictsCollection))
}

func (r *referenceRepository) Categories(ctx context.Context) ([]models.Category, error) {
	return findAll[models.Category](ctx, r.db.Collection(CategoriesCollection))
}

func (r *referenceRepository) Features(ctx context.Context) ([]models.Feature, error) {
	return findAll[models.Feature](ctx, r.db.Collection(FeaturesCollection))
}

func (r *referenceRepository) Steps(ctx context.Context) ([]models.HowItWorksStep, error) {
	return findAll[models.HowItWorksStep](ctx, r.db.Collection(StepsCollection))
}

func (r *referenceRepository) Replace(ctx context.Context, data models.ReferenceData) error {
	sets := []struct {
		name string
		docs []interface{}
	}{
		{DistrictsCollection, toDocs(data.Districts)},
		{CategoriesCollection, toDocs(data.Categories)},
		{FeaturesCollection, toDocs(data.Features)},
		{StepsCollection, toDocs(data.Steps)},
	}

	for _, set := range sets {
		coll := r.db.Collection(set.name)
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("clear %s: %w", set.name, err)
		}
		if len(set.docs) == 0 {
			continue
		}
		if _, err := coll.InsertMany(ctx, set.docs); err != nil {
			return fmt.Errorf("insert %s: %w", set.name, err)
		}
	}
	return nil
}

func toDocs[T any](items []T) []interface{} {
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}
