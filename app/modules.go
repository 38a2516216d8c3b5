package app

import (
	"context"

	"cityfix-be/config"
	"cityfix-be/controllers"
	"cityfix-be/identity"
	"cityfix-be/middlewares"
	"cityfix-be/payments"
	"cityfix-be/repositories"
	"cityfix-be/routes"
	"cityfix-be/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Repositories = fx.Module("repositories",
	fx.Provide(
		repositories.NewIssueRepository,
		repositories.NewUserRepository,
		repositories.NewStaffRepository,
		repositories.NewUpvoteRepository,
		repositories.NewPaymentRepository,
		repositories.NewReferenceRepository,
	),
)

var Services = fx.Module("services",
	fx.Provide(
		newVerifier,
		newGateway,
		services.NewIssueService,
		services.NewAccountService,
		services.NewStaffService,
		services.NewAuthService,
		services.NewUpvoteService,
		services.NewPaymentService,
		services.NewDashboardService,
		services.NewReferenceService,
		func(accounts services.AccountService) middlewares.RoleResolver { return accounts },
	),
)

var Controllers = fx.Module("controllers",
	fx.Provide(
		newAuthController,
		controllers.NewIssueController,
		controllers.NewUserController,
		controllers.NewStaffController,
		controllers.NewUpvoteController,
		controllers.NewPaymentController,
		controllers.NewDashboardController,
		controllers.NewReferenceController,
	),
)

func newVerifier(cfg *config.Config, log *zap.Logger) (identity.Verifier, error) {
	if cfg.IdentityProvider == config.IdentityFirebase {
		v, err := identity.NewFirebaseVerifier(context.Background(), cfg.FirebaseServiceKey, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		log.Info("Verifying tokens with Firebase")
		return v, nil
	}
	log.Info("Verifying tokens with the local signing secret")
	return identity.NewLocalVerifier(cfg.JWTSecret), nil
}

func newGateway(cfg *config.Config, log *zap.Logger) payments.CheckoutGateway {
	if cfg.StripeSecret == "" {
		log.Warn("STRIPE_SECRET not set, checkout endpoints will fail")
		return payments.Unconfigured{}
	}
	return payments.NewStripeGateway(cfg.StripeSecret, nil)
}

// newAuthController returns nil with Firebase; /auth/login is then not routed.
func newAuthController(cfg *config.Config, svc services.AuthService, log *zap.Logger) *controllers.AuthController {
	if cfg.IdentityProvider != config.IdentityLocal {
		return nil
	}
	return controllers.NewAuthController(svc, log)
}

type routerParams struct {
	fx.In

	Config   *config.Config
	Log      *zap.Logger
	Verifier identity.Verifier
	Roles    middlewares.RoleResolver
	Redis    *redis.Client

	Auth       *controllers.AuthController
	Issues     *controllers.IssueController
	Users      *controllers.UserController
	Staff      *controllers.StaffController
	Upvotes    *controllers.UpvoteController
	Payments   *controllers.PaymentController
	Dashboard  *controllers.DashboardController
	References *controllers.ReferenceController
}

func newRouter(p routerParams) *gin.Engine {
	return routes.NewRouter(routes.Deps{
		Config:     p.Config,
		Log:        p.Log,
		Verifier:   p.Verifier,
		Roles:      p.Roles,
		Redis:      p.Redis,
		Auth:       p.Auth,
		Issues:     p.Issues,
		Users:      p.Users,
		Staff:      p.Staff,
		Upvotes:    p.Upvotes,
		Payments:   p.Payments,
		Dashboard:  p.Dashboard,
		References: p.References,
	})
}
