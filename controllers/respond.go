package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cityfix-be/middlewares"
	"cityfix-be/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// respondError writes the client-safe body for err. Server-side failures are
// logged with their detail and answered with a generic message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status, msg := utils.StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("trace_id", c.GetString(middlewares.TraceIDKey)),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
}

// pagination reads ?page and ?limit. Without a limit the whole result is
// returned.
func pagination(c *gin.Context) (limit, skip int64) {
	limit, _ = strconv.ParseInt(c.Query("limit"), 10, 64)
	if limit <= 0 {
		return 0, 0
	}
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}
