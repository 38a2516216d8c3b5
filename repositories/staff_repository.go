package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	"cityfix-be/models"
	"cityfix-be/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StaffFilter struct {
	District string
	Region   string
	Category string
	Status   string
	Search   string
}

func (f StaffFilter) BSON() bson.M {
	filter := bson.M{}
	if f.District != "" {
		filter["district"] = f.District
	}
	if f.Region != "" {
		filter["region"] = f.Region
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{bson.M{"name": re}, bson.M{"email": re}}
	}
	return filter
}

type StaffRepository interface {
	Create(ctx context.Context, s *models.Staff) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error)
	FindByEmail(ctx context.Context, email string) (*models.Staff, error)
	List(ctx context.Context, f StaffFilter) ([]models.Staff, error)
	Count(ctx context.Context, f StaffFilter) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type staffRepository struct {
	coll *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) StaffRepository {
	return &staffRepository{coll: db.Collection(StaffCollection)}
}

func (r *staffRepository) Create(ctx context.Context, s *models.Staff) (primitive.ObjectID, error) {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, utils.ErrAlreadyExists
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return s.ID, nil
}

func (r *staffRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *staffRepository) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *staffRepository) findOne(ctx context.Context, filter bson.M) (*models.Staff, error) {
	var s models.Staff
	err := r.coll.FindOne(ctx, filter).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepository) List(ctx context.Context, f StaffFilter) ([]models.Staff, error) {
	cursor, err := r.coll.Find(ctx, f.BSON(), options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	staff := make([]models.Staff, 0)
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *staffRepository) Count(ctx context.Context, f StaffFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, f.BSON())
}

func (r *staffRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *staffRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
