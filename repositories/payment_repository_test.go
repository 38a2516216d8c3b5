package repositories

import (
	"context"
	"testing"

	"cityfix-be/models"
	"cityfix-be/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func duplicateKey() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error",
	})
}

func TestPaymentFilterBSON(t *testing.T) {
	f := PaymentFilter{Email: "a@x.com", Purpose: models.PurposeIssue, Status: "paid"}.BSON()
	assert.Equal(t, bson.M{"customerEmail": "a@x.com", "purpose": "issue", "status": "paid"}, f)
}

func TestPaymentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		repo := NewPaymentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Insert(context.Background(), &models.Payment{TransactionID: "pi_1", Amount: 100})
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})

	mt.Run("insert duplicate transaction", func(mt *mtest.T) {
		repo := NewPaymentRepository(mt.DB)
		mt.AddMockResponses(duplicateKey())

		_, err := repo.Insert(context.Background(), &models.Payment{TransactionID: "pi_1"})
		assert.ErrorIs(mt, err, utils.ErrAlreadyExists)
	})

	mt.Run("find by transaction id", func(mt *mtest.T) {
		repo := NewPaymentRepository(mt.DB)
		row := models.Payment{ID: primitive.NewObjectID(), TransactionID: "pi_1", Status: "paid", Amount: 100}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "cityFixDB.payments", mtest.FirstBatch, toDoc(mt, row)))

		got, err := repo.FindByTransactionID(context.Background(), "pi_1")
		require.NoError(mt, err)
		assert.Equal(mt, "paid", got.Status)
		assert.Equal(mt, 100.0, got.Amount)
	})

	mt.Run("find by transaction id missing", func(mt *mtest.T) {
		repo := NewPaymentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "cityFixDB.payments", mtest.FirstBatch))

		_, err := repo.FindByTransactionID(context.Background(), "pi_404")
		assert.ErrorIs(mt, err, utils.ErrNotFound)
	})

	mt.Run("totals per purpose", func(mt *mtest.T) {
		repo := NewPaymentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "cityFixDB.payments", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "issue"}, {Key: "amount", Value: 200.0}, {Key: "count", Value: int32(2)}},
			bson.D{{Key: "_id", Value: "profile"}, {Key: "amount", Value: 1000.0}, {Key: "count", Value: int32(1)}},
		))

		totals, err := repo.Totals(context.Background(), PaymentFilter{Status: "paid"})
		require.NoError(mt, err)
		assert.Equal(mt, models.PaymentTotal{Amount: 200, Count: 2}, totals[models.PurposeIssue])
		assert.Equal(mt, models.PaymentTotal{Amount: 1000, Count: 1}, totals[models.PurposeProfile])
	})
}
