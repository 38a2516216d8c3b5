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

// IssueFilter composes with AND; empty fields are ignored.
type IssueFilter struct {
	Status        string
	Priority      string
	Category      string
	Email         string
	AssignedStaff string
	Search        string
	Limit         int64
	Skip          int64
}

// BSON builds the query document for the filter.
func (f IssueFilter) BSON() bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	if f.AssignedStaff != "" {
		filter["assignedStaff.email"] = f.AssignedStaff
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"category": re},
			bson.M{"region": re},
			bson.M{"district": re},
		}
	}
	return filter
}

// IssueSort orders by the priority string ascending, so "high" lands before
// "low" and "normal", then newest first.
var IssueSort = bson.D{
	{Key: "priority", Value: 1},
	{Key: "createdAt", Value: -1},
}

type IssueRepository interface {
	Create(ctx context.Context, issue *models.Issue) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	List(ctx context.Context, f IssueFilter) ([]models.Issue, error)
	Count(ctx context.Context, f IssueFilter) (int64, error)
	CountByStatus(ctx context.Context, f IssueFilter) (map[string]int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	// ConditionalUpdate applies fields (and pushes entry, if any) only when the
	// document also matches guard. It returns the number of documents matched,
	// which is 0 or 1.
	ConditionalUpdate(ctx context.Context, id primitive.ObjectID, guard, fields bson.M, entry *models.TimelineEntry) (int64, error)
	AppendTimeline(ctx context.Context, id primitive.ObjectID, fields bson.M, entry models.TimelineEntry) (int64, error)
	IncrementUpvotes(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type issueRepository struct {
	coll *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) IssueRepository {
	return &issueRepository{coll: db.Collection(IssuesCollection)}
}

func (r *issueRepository) Create(ctx context.Context, issue *models.Issue) (primitive.ObjectID, error) {
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, issue); err != nil {
		return primitive.NilObjectID, err
	}
	return issue.ID, nil
}

func (r *issueRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	var issue models.Issue
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) List(ctx context.Context, f IssueFilter) ([]models.Issue, error) {
	opts := options.Find().SetSort(IssueSort)
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}

	cursor, err := r.coll.Find(ctx, f.BSON(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	issues := make([]models.Issue, 0)
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (r *issueRepository) Count(ctx context.Context, f IssueFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, f.BSON())
}

func (r *issueRepository) CountByStatus(ctx context.Context, f IssueFilter) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: f.BSON()}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] += row.Count
	}
	return counts, nil
}

func (r *issueRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	return r.ConditionalUpdate(ctx, id, nil, fields, nil)
}

func (r *issueRepository) ConditionalUpdate(ctx context.Context, id primitive.ObjectID, guard, fields bson.M, entry *models.TimelineEntry) (int64, error) {
	filter := bson.M{"_id": id}
	for k, v := range guard {
		filter[k] = v
	}

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	update := bson.M{"$set": set}
	if entry != nil {
		update["$push"] = bson.M{"timeline": entry}
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *issueRepository) AppendTimeline(ctx context.Context, id primitive.ObjectID, fields bson.M, entry models.TimelineEntry) (int64, error) {
	return r.ConditionalUpdate(ctx, id, nil, fields, &entry)
}

func (r *issueRepository) IncrementUpvotes(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"upvoteCount": 1}})
	return err
}

func (r *issueRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
