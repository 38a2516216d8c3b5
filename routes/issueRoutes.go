package routes

import (
	"cityfix-be/middlewares"
	"cityfix-be/models"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up issue, upvote and the issue lookup used by payment pages.
// Submitting an issue needs a token: the free plan quota and the daily limit
// are both keyed on the verified email.
func IssueRoutes(r *gin.Engine, d Deps) {
	limiter := middlewares.IssueRateLimiter(d.Redis, d.Config.IssueLimitQueue, d.Config.IssueDailyLimit, d.Log)

	issues := r.Group("/issues")
	{
		issues.POST("", d.verify(), limiter, d.Issues.CreateIssue)
		issues.GET("", d.Issues.GetAllIssues)
		issues.GET("/:id", d.Issues.GetIssue)
		issues.PATCH("/:id", d.verify(), d.resolveRole(), d.Issues.UpdateIssue)
		issues.DELETE("/:id", d.verify(), d.resolveRole(), d.Issues.DeleteIssue)
		issues.PATCH("/:id/timeline", d.verify(), d.require(models.RoleStaff, models.RoleAdmin), d.Issues.UpdateTimeline)
	}
	r.GET("/my-issues", d.verify(), d.Issues.GetMyIssues)
	r.GET("/payment/:id", d.Issues.GetIssue)

	upvotes := r.Group("/upvotes")
	{
		upvotes.POST("", d.verify(), d.Upvotes.Upvote)
		upvotes.GET("/:issueId", d.Upvotes.GetUpvotes)
	}
}
