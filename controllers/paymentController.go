package controllers

import (
	"net/http"
	"strings"

	"cityfix-be/middlewares"
	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentController struct {
	service services.PaymentService
	log     *zap.Logger
}

func NewPaymentController(service services.PaymentService, log *zap.Logger) *PaymentController {
	return &PaymentController{service: service, log: log}
}

func (pc *PaymentController) CreateCheckoutSession(c *gin.Context) {
	var input models.BoostCheckoutRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	url, err := pc.service.CreateBoostCheckout(ctx, input)
	if err != nil {
		respondError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionUrl": url})
}

func (pc *PaymentController) CreatePremiumSession(c *gin.Context) {
	var input models.PremiumCheckoutRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	url, err := pc.service.CreatePremiumCheckout(ctx, input)
	if err != nil {
		respondError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionUrl": url})
}

// PaymentSuccess is called by the client after the provider redirects back
// with ?session_id. Repeating the call is safe.
func (pc *PaymentController) PaymentSuccess(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := pc.service.ConfirmBoost(ctx, c.Query("session_id"))
	if err != nil {
		respondError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (pc *PaymentController) PremiumSuccess(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := pc.service.ConfirmPremium(ctx, c.Query("session_id"))
	if err != nil {
		respondError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPayments returns the caller's own payments. Admins may list everyone's
// and filter by ?email.
func (pc *PaymentController) GetPayments(c *gin.Context) {
	email := middlewares.CurrentEmail(c)
	requested := c.Query("email")
	filter := repositories.PaymentFilter{
		Purpose: models.PaymentPurpose(c.Query("purpose")),
		IssueID: c.Query("issueId"),
	}

	switch {
	case middlewares.CurrentRole(c) == models.RoleAdmin:
		filter.Email = requested
	case requested == "" || strings.EqualFold(requested, email):
		filter.Email = email
	default:
		forbidden(c)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rows, err := pc.service.List(ctx, filter)
	if err != nil {
		respondError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (pc *PaymentController) GetLatestPayments(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	rows, err := pc.service.Latest(ctx)
	if err != nil {
		respondError(c, pc.log, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
