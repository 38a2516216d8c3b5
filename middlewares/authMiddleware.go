package middlewares

import (
	"net/http"
	"strings"

	"cityfix-be/identity"
	"cityfix-be/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmailKey is where VerifyToken stores the verified email on the context.
const EmailKey = "email"

// VerifyToken rejects the request with 401 unless it carries a bearer token
// the verifier accepts.
func VerifyToken(verifier identity.Verifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		email, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			log.Info("token verification failed", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		c.Set(EmailKey, utils.NormalizeEmail(email))
		c.Next()
	}
}

// CurrentEmail returns the email VerifyToken stored, or "" on open routes.
func CurrentEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}
