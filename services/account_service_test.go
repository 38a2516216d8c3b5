package services

import (
	"context"
	"testing"

	"cityfix-be/config"
	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/repositories/repotest"
	"cityfix-be/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestRegister_OneAccountPerEmail(t *testing.T) {
	ctx := context.Background()
	users := repotest.NewUsers()
	svc := NewAccountService(users, repotest.NewStaff(), zap.NewNop())

	first, err := svc.Register(ctx, models.CreateUserRequest{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	require.NotNil(t, first.InsertedID)

	second, err := svc.Register(ctx, models.CreateUserRequest{Name: "A again", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Nil(t, second.InsertedID)
	assert.Equal(t, "user already exists", second.Message)

	third, err := svc.Register(ctx, models.CreateUserRequest{Name: "A shouting", Email: " A@X.COM "})
	require.NoError(t, err)
	assert.Nil(t, third.InsertedID)

	found, err := svc.GetByEmail(ctx, "A@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", found.Email)

	all, err := svc.List(ctx, repositories.UserFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, models.RoleCitizen, all[0].Role)
	assert.Equal(t, models.AccountActive, all[0].AccountStatus)
}

func TestRoleOf(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(
		repotest.NewUsers(
			models.User{Email: "admin@x.com", Role: models.RoleAdmin},
			models.User{Email: "citizen@x.com", Role: models.RoleCitizen},
			models.User{Email: "both@x.com", Role: models.RoleCitizen},
		),
		repotest.NewStaff(models.Staff{Email: "both@x.com"}, models.Staff{Email: "staff@x.com"}),
		zap.NewNop(),
	)

	for email, want := range map[string]string{
		"admin@x.com":   models.RoleAdmin,
		"citizen@x.com": models.RoleCitizen,
		"both@x.com":    models.RoleStaff,
		"staff@x.com":   models.RoleStaff,
		"nobody@x.com":  models.RoleCitizen,
	} {
		got, err := svc.RoleOf(ctx, email)
		require.NoError(t, err, email)
		assert.Equal(t, want, got, email)
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	users := repotest.NewUsers(models.User{Email: "a@x.com", AccountStatus: models.AccountActive})
	svc := NewAccountService(users, repotest.NewStaff(), zap.NewNop())
	user, err := svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, user.ID.Hex(), models.AccountBlocked))
	user, err = svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.AccountBlocked, user.AccountStatus)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, user.ID.Hex(), "suspended-ish"), utils.ErrBadRequest)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, "zzz", models.AccountActive), utils.ErrInvalidID)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, primitive.NewObjectID().Hex(), models.AccountActive), utils.ErrUserNotFound)

	_, err = svc.GetByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	citizen := models.User{Email: "a@x.com", Password: "secret1", AccountStatus: models.AccountActive}
	require.NoError(t, citizen.HashPassword())
	blocked := models.User{Email: "b@x.com", Password: "secret2", AccountStatus: models.AccountBlocked}
	require.NoError(t, blocked.HashPassword())
	member := models.Staff{Email: "s@x.com", Password: "secret3"}
	require.NoError(t, member.HashPassword())

	cfg := &config.Config{JWTSecret: "jwt"}
	svc := NewAuthService(repotest.NewUsers(citizen, blocked), repotest.NewStaff(member), cfg, zap.NewNop())

	res, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCitizen, res.Role)
	email, err := utils.ParseToken(res.Token, "jwt")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)

	res, err = svc.Login(ctx, "s@x.com", "secret3")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, res.Role)

	_, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ghost@x.com", "secret1")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "b@x.com", "secret2")
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestStaffService(t *testing.T) {
	ctx := context.Background()
	svc := NewStaffService(repotest.NewStaff(), zap.NewNop())

	created, err := svc.Create(ctx, models.CreateStaffRequest{Name: "Sam", Email: "s@x.com", District: "Dhaka", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.AccountActive, created.Status)
	assert.NotEqual(t, "pw", created.Password)

	_, err = svc.Create(ctx, models.CreateStaffRequest{Email: "s@x.com"})
	assert.ErrorIs(t, err, utils.ErrAlreadyExists)

	region := "Mirpur"
	updated, err := svc.Update(ctx, created.ID.Hex(), models.UpdateStaffRequest{Region: &region})
	require.NoError(t, err)
	assert.Equal(t, "Mirpur", updated.Region)
	assert.Equal(t, "Dhaka", updated.District)

	list, err := svc.List(ctx, repositories.StaffFilter{District: "Dhaka"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID.Hex()))
	_, err = svc.Get(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, utils.ErrStaffNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID.Hex()), utils.ErrStaffNotFound)
}
