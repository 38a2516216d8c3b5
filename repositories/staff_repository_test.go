package repositories

import (
	"context"
	"testing"

	"cityfix-be/models"
	"cityfix-be/utils"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestStaffRepositoryDuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate email", func(mt *mtest.T) {
		repo := NewStaffRepository(mt.DB)
		mt.AddMockResponses(duplicateKey())

		_, err := repo.Create(context.Background(), &models.Staff{Email: "s@x.com"})
		assert.ErrorIs(mt, err, utils.ErrAlreadyExists)
	})
}
