package services

import (
	"context"

	"cityfix-be/models"
	"cityfix-be/repositories"

	"go.uber.org/zap"
)

// ReferenceService serves the static lookup lists the client renders forms
// and landing pages from.
type ReferenceService interface {
	Districts(ctx context.Context) ([]models.DistrictRegion, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Features(ctx context.Context) ([]models.Feature, error)
	Steps(ctx context.Context) ([]models.HowItWorksStep, error)
	Seed(ctx context.Context, data models.ReferenceData) error
}

type referenceService struct {
	repo repositories.ReferenceRepository
	log  *zap.Logger
}

func NewReferenceService(repo repositories.ReferenceRepository, log *zap.Logger) ReferenceService {
	return &referenceService{repo: repo, log: log}
}

func (s *referenceService) Districts(ctx context.Context) ([]models.DistrictRegion, error) {
	return s.repo.Districts(ctx)
}

func (s *referenceService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.Categories(ctx)
}

func (s *referenceService) Features(ctx context.Context) ([]models.Feature, error) {
	return s.repo.Features(ctx)
}

func (s *referenceService) Steps(ctx context.Context) ([]models.HowItWorksStep, error) {
	return s.repo.Steps(ctx)
}

func (s *referenceService) Seed(ctx context.Context, data models.ReferenceData) error {
	if err := s.repo.Replace(ctx, data); err != nil {
		return err
	}
	s.log.Info("reference data seeded",
		zap.Int("districts", len(data.Districts)),
		zap.Int("categories", len(data.Categories)),
		zap.Int("features", len(data.Features)),
		zap.Int("steps", len(data.Steps)))
	return nil
}
