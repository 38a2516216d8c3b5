package controllers

import (
	"net/http"

	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	service services.AccountService
	log     *zap.Logger
}

func NewUserController(service services.AccountService, log *zap.Logger) *UserController {
	return &UserController{service: service, log: log}
}

// RegisterUser creates the account on first sign-in and is a no-op after.
func (uc *UserController) RegisterUser(c *gin.Context) {
	var input models.CreateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := uc.service.Register(ctx, input)
	if err != nil {
		respondError(c, uc.log, err)
		return
	}
	if result.InsertedID == nil {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (uc *UserController) GetUsers(c *gin.Context) {
	filter := repositories.UserFilter{
		Role:          c.Query("role"),
		AccountStatus: c.Query("accountStatus"),
		Search:        c.Query("search"),
	}
	switch c.Query("subscribed") {
	case "true":
		v := true
		filter.Subscribed = &v
	case "false":
		v := false
		filter.Subscribed = &v
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := uc.service.List(ctx, filter)
	if err != nil {
		respondError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) GetUser(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := uc.service.GetByEmail(ctx, c.Param("email"))
	if err != nil {
		respondError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) GetUserRole(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	role, err := uc.service.RoleOf(ctx, c.Param("email"))
	if err != nil {
		respondError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

func (uc *UserController) UpdateUserStatus(c *gin.Context) {
	var input models.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := uc.service.UpdateStatus(ctx, c.Param("id"), input.AccountStatus); err != nil {
		respondError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account status updated", "accountStatus": input.AccountStatus})
}
