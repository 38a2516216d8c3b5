package routes

import (
	"net/http"
	"time"

	"cityfix-be/config"
	"cityfix-be/controllers"
	"cityfix-be/identity"
	"cityfix-be/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps is everything the route table needs. Auth is nil unless the local
// identity provider is active; Redis is nil when issue limiting is off.
type Deps struct {
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

func (d Deps) verify() gin.HandlerFunc {
	return middlewares.VerifyToken(d.Verifier, d.Log)
}

func (d Deps) require(roles ...string) gin.HandlerFunc {
	return middlewares.RequireRole(d.Roles, d.Log, roles...)
}

func (d Deps) resolveRole() gin.HandlerFunc {
	return middlewares.ResolveRole(d.Roles, d.Log)
}

func NewRouter(d Deps) *gin.Engine {
	if d.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middlewares.TraceID(),
		middlewares.RequestLogger(d.Log),
		cors.New(cors.Config{
			AllowOrigins:     []string{d.Config.SiteDomain},
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Trace-ID"},
			ExposeHeaders:    []string{"X-Trace-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "CityFix server is running")
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	AuthRoutes(r, d)
	IssueRoutes(r, d)
	UserRoutes(r, d)
	PaymentRoutes(r, d)
	ReferenceRoutes(r, d)
	return r
}
