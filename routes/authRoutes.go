package routes

import (
	"github.com/gin-gonic/gin"
)

// AuthRoutes exposes local login. With Firebase the client signs in there and
// no route is registered.
func AuthRoutes(r *gin.Engine, d Deps) {
	if d.Auth == nil {
		return
	}
	auth := r.Group("/auth")
	{
		auth.POST("/login", d.Auth.Login)
	}
}
