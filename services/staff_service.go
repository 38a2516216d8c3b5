package services

import (
	"context"
	"time"

	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type StaffService interface {
	Create(ctx context.Context, req models.CreateStaffRequest) (*models.Staff, error)
	Get(ctx context.Context, id string) (*models.Staff, error)
	List(ctx context.Context, f repositories.StaffFilter) ([]models.Staff, error)
	Update(ctx context.Context, id string, req models.UpdateStaffRequest) (*models.Staff, error)
	Delete(ctx context.Context, id string) error
}

type staffService struct {
	staff repositories.StaffRepository
	log   *zap.Logger
}

func NewStaffService(staff repositories.StaffRepository, log *zap.Logger) StaffService {
	return &staffService{staff: staff, log: log}
}

func (s *staffService) Create(ctx context.Context, req models.CreateStaffRequest) (*models.Staff, error) {
	now := time.Now()
	member := &models.Staff{
		Name:      req.Name,
		Email:     utils.NormalizeEmail(req.Email),
		Photo:     req.Photo,
		Number:    req.Number,
		District:  req.District,
		Region:    req.Region,
		Category:  req.Category,
		Status:    models.AccountActive,
		Password:  req.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := member.HashPassword(); err != nil {
		return nil, err
	}

	id, err := s.staff.Create(ctx, member)
	if err != nil {
		return nil, err
	}
	member.ID = id
	s.log.Info("staff created", zap.String("email", member.Email))
	return member, nil
}

func (s *staffService) Get(ctx context.Context, id string) (*models.Staff, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	member, err := s.staff.FindByID(ctx, oid)
	if err != nil {
		return nil, notFoundAs(err, utils.ErrStaffNotFound)
	}
	return member, nil
}

func (s *staffService) List(ctx context.Context, f repositories.StaffFilter) ([]models.Staff, error) {
	return s.staff.List(ctx, f)
}

func (s *staffService) Update(ctx context.Context, id string, req models.UpdateStaffRequest) (*models.Staff, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	for key, v := range map[string]*string{
		"name":     req.Name,
		"photo":    req.Photo,
		"number":   req.Number,
		"district": req.District,
		"region":   req.Region,
		"category": req.Category,
		"status":   req.Status,
	} {
		if v != nil {
			fields[key] = *v
		}
	}

	matched, err := s.staff.Update(ctx, oid, fields)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, utils.ErrStaffNotFound
	}
	return s.Get(ctx, id)
}

func (s *staffService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	deleted, err := s.staff.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return utils.ErrStaffNotFound
	}
	return nil
}
