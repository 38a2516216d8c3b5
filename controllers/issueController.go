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

type IssueController struct {
	service services.IssueService
	log     *zap.Logger
}

func NewIssueController(service services.IssueService, log *zap.Logger) *IssueController {
	return &IssueController{service: service, log: log}
}

// CreateIssue stores the submitted issue under the caller's verified email.
// A body email naming someone else is 403. Content fields are not validated.
func (ic *IssueController) CreateIssue(c *gin.Context) {
	var input models.CreateIssueRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	caller := middlewares.CurrentEmail(c)
	if input.Email != "" && !strings.EqualFold(strings.TrimSpace(input.Email), caller) {
		forbidden(c)
		return
	}
	input.Email = caller

	ctx, cancel := requestContext(c)
	defer cancel()

	issue, err := ic.service.Create(ctx, input)
	if err != nil {
		respondError(c, ic.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": issue.ID, "issue": issue})
}

// GetAllIssues lists issues by priority then newest first, with optional
// status, priority, category, email, assignedStaff and search filters.
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	filter := repositories.IssueFilter{
		Status:        c.Query("status"),
		Priority:      c.Query("priority"),
		Category:      c.Query("category"),
		Email:         c.Query("email"),
		AssignedStaff: c.Query("assignedStaff"),
		Search:        c.Query("search"),
	}
	filter.Limit, filter.Skip = pagination(c)
	ic.list(c, filter)
}

// GetMyIssues lists the caller's own issues. Asking for someone else's is 403.
func (ic *IssueController) GetMyIssues(c *gin.Context) {
	email := middlewares.CurrentEmail(c)
	if requested := c.Query("email"); requested != "" && !strings.EqualFold(requested, email) {
		forbidden(c)
		return
	}
	filter := repositories.IssueFilter{
		Email:    email,
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	filter.Limit, filter.Skip = pagination(c)
	ic.list(c, filter)
}

func (ic *IssueController) list(c *gin.Context, filter repositories.IssueFilter) {
	ctx, cancel := requestContext(c)
	defer cancel()

	issues, err := ic.service.List(ctx, filter)
	if err != nil {
		respondError(c, ic.log, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// GetIssue also serves /payment/:id, the issue a boost payment page is about.
func (ic *IssueController) GetIssue(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	issue, err := ic.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, ic.log, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (ic *IssueController) UpdateIssue(c *gin.Context) {
	var input models.UpdateIssueRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if !ic.ownsIssue(c, c.Param("id")) {
		return
	}
	issue, err := ic.service.Update(ctx, c.Param("id"), input)
	if err != nil {
		respondError(c, ic.log, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (ic *IssueController) DeleteIssue(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if !ic.ownsIssue(c, c.Param("id")) {
		return
	}
	if err := ic.service.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, ic.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}

// UpdateTimeline is for staff and admins; the route enforces the role.
func (ic *IssueController) UpdateTimeline(c *gin.Context) {
	var input models.TimelineRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	actor := models.Actor{Role: middlewares.CurrentRole(c), Email: middlewares.CurrentEmail(c)}
	issue, err := ic.service.UpdateTimeline(ctx, c.Param("id"), actor, input)
	if err != nil {
		respondError(c, ic.log, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// ownsIssue lets the reporter and admins through. It writes the response
// itself when it returns false.
func (ic *IssueController) ownsIssue(c *gin.Context, id string) bool {
	if middlewares.CurrentRole(c) == models.RoleAdmin {
		return true
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	issue, err := ic.service.Get(ctx, id)
	if err != nil {
		respondError(c, ic.log, err)
		return false
	}
	if !strings.EqualFold(issue.Email, middlewares.CurrentEmail(c)) {
		forbidden(c)
		return false
	}
	return true
}
