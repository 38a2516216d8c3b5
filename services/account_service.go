package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type AccountService interface {
	// Register creates the account unless one with the same email exists.
	Register(ctx context.Context, req models.CreateUserRequest) (*models.UpsertResult, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, f repositories.UserFilter) ([]models.User, error)
	RoleOf(ctx context.Context, email string) (string, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type accountService struct {
	users repositories.UserRepository
	staff repositories.StaffRepository
	log   *zap.Logger
}

func NewAccountService(users repositories.UserRepository, staff repositories.StaffRepository, log *zap.Logger) AccountService {
	return &accountService{users: users, staff: staff, log: log}
}

func (s *accountService) Register(ctx context.Context, req models.CreateUserRequest) (*models.UpsertResult, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	now := time.Now()
	user := &models.User{
		Name:          req.Name,
		Email:         req.Email,
		Photo:         req.Photo,
		Role:          models.RoleCitizen,
		AccountStatus: models.AccountActive,
		Password:      req.Password,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	id, err := s.users.UpsertIfAbsent(ctx, user)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return &models.UpsertResult{Message: "user already exists"}, nil
	}
	s.log.Info("user registered", zap.String("email", req.Email))
	return &models.UpsertResult{InsertedID: id}, nil
}

func (s *accountService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, notFoundAs(err, utils.ErrUserNotFound)
	}
	return user, nil
}

func (s *accountService) List(ctx context.Context, f repositories.UserFilter) ([]models.User, error) {
	return s.users.List(ctx, f)
}

// RoleOf resolves a role in this order: an admin or staff role stored on the
// user, membership of the staff collection, otherwise citizen.
func (s *accountService) RoleOf(ctx context.Context, email string) (string, error) {
	email = utils.NormalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return "", err
	}
	if user != nil && (user.Role == models.RoleAdmin || user.Role == models.RoleStaff) {
		return user.Role, nil
	}

	_, err = s.staff.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return models.RoleStaff, nil
	case errors.Is(err, utils.ErrNotFound):
		return models.RoleCitizen, nil
	default:
		return "", err
	}
}

func (s *accountService) UpdateStatus(ctx context.Context, id string, status string) error {
	if status != models.AccountActive && status != models.AccountBlocked {
		return fmt.Errorf("%w: accountStatus must be %q or %q", utils.ErrBadRequest, models.AccountActive, models.AccountBlocked)
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	matched, err := s.users.Update(ctx, oid, bson.M{"accountStatus": status})
	if err != nil {
		return err
	}
	if matched == 0 {
		return utils.ErrUserNotFound
	}
	return nil
}
