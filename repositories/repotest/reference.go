package repotest

import (
	"context"
	"sync"

	"cityfix-be/models"
	"cityfix-be/repositories"
)

// Reference is an in-memory repositories.ReferenceRepository.
type Reference struct {
	mu   sync.Mutex
	data models.ReferenceData
	Err  error
}

var _ repositories.ReferenceRepository = (*Reference)(nil)

func NewReference(data models.ReferenceData) *Reference {
	return &Reference{data: data}
}

func (r *Reference) Districts(context.Context) ([]models.DistrictRegion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.DistrictRegion{}, r.data.Districts...), r.Err
}

func (r *Reference) Categories(context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Category{}, r.data.Categories...), r.Err
}

func (r *Reference) Features(context.Context) ([]models.Feature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Feature{}, r.data.Features...), r.Err
}

func (r *Reference) Steps(context.Context) ([]models.HowItWorksStep, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.HowItWorksStep{}, r.data.Steps...), r.Err
}

func (r *Reference) Replace(_ context.Context, data models.ReferenceData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.data = data
	return nil
}
