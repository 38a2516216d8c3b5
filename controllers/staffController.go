package controllers

import (
	"net/http"

	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StaffController struct {
	service services.StaffService
	log     *zap.Logger
}

func NewStaffController(service services.StaffService, log *zap.Logger) *StaffController {
	return &StaffController{service: service, log: log}
}

func (sc *StaffController) CreateStaff(c *gin.Context) {
	var input models.CreateStaffRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	member, err := sc.service.Create(ctx, input)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": member.ID, "staff": member})
}

func (sc *StaffController) GetStaff(c *gin.Context) {
	filter := repositories.StaffFilter{
		District: c.Query("district"),
		Region:   c.Query("region"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	staff, err := sc.service.List(ctx, filter)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (sc *StaffController) GetStaffMember(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	member, err := sc.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (sc *StaffController) UpdateStaff(c *gin.Context) {
	var input models.UpdateStaffRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	member, err := sc.service.Update(ctx, c.Param("id"), input)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (sc *StaffController) DeleteStaff(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := sc.service.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}
