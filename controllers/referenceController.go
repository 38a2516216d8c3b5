package controllers

import (
	"context"
	"net/http"

	"cityfix-be/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReferenceController struct {
	service services.ReferenceService
	log     *zap.Logger
}

func NewReferenceController(service services.ReferenceService, log *zap.Logger) *ReferenceController {
	return &ReferenceController{service: service, log: log}
}

func (rc *ReferenceController) Districts(c *gin.Context) {
	serveList(c, rc.log, rc.service.Districts)
}

func (rc *ReferenceController) Categories(c *gin.Context) {
	serveList(c, rc.log, rc.service.Categories)
}

func (rc *ReferenceController) Features(c *gin.Context) {
	serveList(c, rc.log, rc.service.Features)
}

func (rc *ReferenceController) Steps(c *gin.Context) {
	serveList(c, rc.log, rc.service.Steps)
}

func serveList[T any](c *gin.Context, log *zap.Logger, load func(context.Context) ([]T, error)) {
	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := load(ctx)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
