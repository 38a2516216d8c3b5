package controllers

import (
	"net/http"

	"cityfix-be/middlewares"
	"cityfix-be/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardController struct {
	service services.DashboardService
	log     *zap.Logger
}

func NewDashboardController(service services.DashboardService, log *zap.Logger) *DashboardController {
	return &DashboardController{service: service, log: log}
}

func (dc *DashboardController) CitizenStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := dc.service.CitizenStats(ctx, middlewares.CurrentEmail(c))
	if err != nil {
		respondError(c, dc.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (dc *DashboardController) StaffStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := dc.service.StaffStats(ctx, middlewares.CurrentEmail(c))
	if err != nil {
		respondError(c, dc.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (dc *DashboardController) AdminStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := dc.service.AdminStats(ctx)
	if err != nil {
		respondError(c, dc.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
