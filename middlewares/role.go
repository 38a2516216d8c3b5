package middlewares

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const RoleKey = "role"

type RoleResolver interface {
	RoleOf(ctx context.Context, email string) (string, error)
}

// RequireRole must run after VerifyToken. It resolves the caller's role and
// answers 403 unless it is one of roles.
func RequireRole(resolver RoleResolver, log *zap.Logger, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := CurrentEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		role, err := resolver.RoleOf(c.Request.Context(), email)
		if err != nil {
			log.Error("role lookup failed", zap.String("email", email), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		if !slices.Contains(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}

		c.Set(RoleKey, role)
		c.Next()
	}
}

// ResolveRole stores the caller's role without restricting access. Handlers
// that allow several roles with different scopes read it with CurrentRole.
func ResolveRole(resolver RoleResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := CurrentEmail(c)
		if email == "" {
			c.Next()
			return
		}
		role, err := resolver.RoleOf(c.Request.Context(), email)
		if err != nil {
			log.Error("role lookup failed", zap.String("email", email), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		c.Set(RoleKey, role)
		c.Next()
	}
}

func CurrentRole(c *gin.Context) string {
	return c.GetString(RoleKey)
}
