package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cityfix-be/config"
	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/utils"

	"go.uber.org/zap"
)

const tokenTTL = 7 * 24 * time.Hour

// LoginResult is what a successful local login returns to the client.
type LoginResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthService issues tokens for the local identity mode. With Firebase the
// client obtains its token from Firebase directly and this service is unused.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	users repositories.UserRepository
	staff repositories.StaffRepository
	cfg   *config.Config
	log   *zap.Logger
}

func NewAuthService(users repositories.UserRepository, staff repositories.StaffRepository, cfg *config.Config, log *zap.Logger) AuthService {
	return &authService{users: users, staff: staff, cfg: cfg, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = utils.NormalizeEmail(email)
	role, err := s.authenticate(ctx, email, password)
	if err != nil {
		s.log.Info("login rejected", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	token, err := utils.GenerateToken(email, s.cfg.JWTSecret, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Email: email, Role: role}, nil
}

// authenticate checks the user collection first, then staff.
func (s *authService) authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && user.ComparePassword(password):
		if user.AccountStatus == models.AccountBlocked {
			return "", fmt.Errorf("%w: account is blocked", utils.ErrForbidden)
		}
		if user.Role == "" {
			return models.RoleCitizen, nil
		}
		return user.Role, nil
	case err != nil && !errors.Is(err, utils.ErrNotFound):
		return "", err
	}

	member, err := s.staff.FindByEmail(ctx, email)
	switch {
	case err == nil && member.ComparePassword(password):
		if member.Status == models.AccountBlocked {
			return "", fmt.Errorf("%w: account is blocked", utils.ErrForbidden)
		}
		return models.RoleStaff, nil
	case err != nil && !errors.Is(err, utils.ErrNotFound):
		return "", err
	}
	return "", utils.ErrInvalidCredentials
}
