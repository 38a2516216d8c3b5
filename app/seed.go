package app

import (
	"context"
	"fmt"

	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/services"

	"go.uber.org/fx"
)

// Seed replaces the reference collections with data. Only the database side
// of the graph is started.
func Seed(ctx context.Context, data models.ReferenceData) error {
	var svc services.ReferenceService
	app := fx.New(
		Infra,
		fx.Provide(
			repositories.NewReferenceRepository,
			services.NewReferenceService,
		),
		fx.Populate(&svc),
		fx.WithLogger(zapEventLogger),
	)
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	seedErr := svc.Seed(ctx, data)
	if err := app.Stop(context.Background()); err != nil && seedErr == nil {
		return fmt.Errorf("stop: %w", err)
	}
	return seedErr
}
