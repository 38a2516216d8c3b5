package repositories

import (
	"context"
	"errors"

	"cityfix-be/models"
	"cityfix-be/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentFilter struct {
	Email   string
	Purpose models.PaymentPurpose
	IssueID string
	Status  string
	Limit   int64
}

func (f PaymentFilter) BSON() bson.M {
	filter := bson.M{}
	if f.Email != "" {
		filter["customerEmail"] = f.Email
	}
	if f.Purpose != "" {
		filter["purpose"] = string(f.Purpose)
	}
	if f.IssueID != "" {
		filter["issueId"] = f.IssueID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}

// PaymentRepository is the append-only payment ledger.
type PaymentRepository interface {
	// Insert appends a row. A second row with the same transaction id fails
	// with utils.ErrAlreadyExists.
	Insert(ctx context.Context, p *models.Payment) (primitive.ObjectID, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	// List returns rows newest first.
	List(ctx context.Context, f PaymentFilter) ([]models.Payment, error)
	// Totals sums amounts per purpose for the rows matching f.
	Totals(ctx context.Context, f PaymentFilter) (map[models.PaymentPurpose]models.PaymentTotal, error)
}

type paymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &paymentRepository{coll: db.Collection(PaymentsCollection)}
}

func (r *paymentRepository) Insert(ctx context.Context, p *models.Payment) (primitive.ObjectID, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, utils.ErrAlreadyExists
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return p.ID, nil
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var p models.Payment
	err := r.coll.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) List(ctx context.Context, f PaymentFilter) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := r.coll.Find(ctx, f.BSON(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	payments := make([]models.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Totals(ctx context.Context, f PaymentFilter) (map[models.PaymentPurpose]models.PaymentTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: f.BSON()}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$purpose",
			"amount": bson.M{"$sum": "$amount"},
			"count":  bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Purpose string  `bson:"_id"`
		Amount  float64 `bson:"amount"`
		Count   int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	totals := make(map[models.PaymentPurpose]models.PaymentTotal, len(rows))
	for _, row := range rows {
		totals[models.PaymentPurpose(row.Purpose)] = models.PaymentTotal{Amount: row.Amount, Count: row.Count}
	}
	return totals, nil
}
