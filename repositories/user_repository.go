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

type UserFilter struct {
	Role          string
	AccountStatus string
	Search        string
	Subscribed    *bool
}

func (f UserFilter) BSON() bson.M {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.AccountStatus != "" {
		filter["accountStatus"] = f.AccountStatus
	}
	if f.Subscribed != nil {
		filter["isSubscribed"] = *f.Subscribed
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{bson.M{"name": re}, bson.M{"email": re}}
	}
	return filter
}

type UserRepository interface {
	// UpsertIfAbsent inserts u unless an account with the same email exists.
	// It returns the new id, or nil when nothing was inserted.
	UpsertIfAbsent(ctx context.Context, u *models.User) (*primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	List(ctx context.Context, f UserFilter) ([]models.User, error)
	Count(ctx context.Context, f UserFilter) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	// ConditionalUpdate sets fields on the account with email when it also
	// matches guard, returning the matched count.
	ConditionalUpdate(ctx context.Context, email string, guard, fields bson.M) (int64, error)
}

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(UsersCollection)}
}

func (r *userRepository) UpsertIfAbsent(ctx context.Context, u *models.User) (*primitive.ObjectID, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": u.Email},
		bson.M{"$setOnInsert": u},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if res.UpsertedCount == 0 {
		return nil, nil
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		return &id, nil
	}
	return &u.ID, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, f UserFilter) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, f.BSON(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, f UserFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, f.BSON())
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	return r.update(ctx, bson.M{"_id": id}, fields)
}

func (r *userRepository) ConditionalUpdate(ctx context.Context, email string, guard, fields bson.M) (int64, error) {
	filter := bson.M{"email": email}
	for k, v := range guard {
		filter[k] = v
	}
	return r.update(ctx, filter, fields)
}

func (r *userRepository) update(ctx context.Context, filter, fields bson.M) (int64, error) {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
