package controllers

import (
	"net/http"
	"strings"

	"cityfix-be/middlewares"
	"cityfix-be/models"
	"cityfix-be/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UpvoteController struct {
	service services.UpvoteService
	log     *zap.Logger
}

func NewUpvoteController(service services.UpvoteService, log *zap.Logger) *UpvoteController {
	return &UpvoteController{service: service, log: log}
}

// Upvote records the caller's upvote. The body email must be the caller's.
func (uc *UpvoteController) Upvote(c *gin.Context) {
	var input models.UpvoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	caller := middlewares.CurrentEmail(c)
	if !strings.EqualFold(strings.TrimSpace(input.Email), caller) {
		forbidden(c)
		return
	}
	input.Email = caller

	ctx, cancel := requestContext(c)
	defer cancel()

	added, err := uc.service.Add(ctx, input)
	if err != nil {
		respondError(c, uc.log, err)
		return
	}
	if !added {
		c.JSON(http.StatusOK, gin.H{"added": false, "message": "already upvoted"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"added": true})
}

func (uc *UpvoteController) GetUpvotes(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	upvotes, err := uc.service.ListByIssue(ctx, c.Param("issueId"))
	if err != nil {
		respondError(c, uc.log, err)
		return
	}
	c.JSON(http.StatusOK, upvotes)
}
