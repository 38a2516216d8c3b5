package controllers

import (
	"net/http"

	"cityfix-be/models"
	"cityfix-be/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthController serves local login when no external identity provider is
// configured.
type AuthController struct {
	service services.AuthService
	log     *zap.Logger
}

func NewAuthController(service services.AuthService, log *zap.Logger) *AuthController {
	return &AuthController{service: service, log: log}
}

func (ac *AuthController) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := ac.service.Login(ctx, input.Email, input.Password)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
