package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/govbudget/budget-portal/internal/workflow"
)

// workflowErrorStatus maps engine sentinel errors onto HTTP status codes
func workflowErrorStatus(err error) int {
	switch {
	case errors.Is(err, workflow.ErrWorkflowNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrNoTemplate),
		errors.Is(err, workflow.ErrUnsupportedEntityType):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrWorkflowClosed),
		errors.Is(err, workflow.ErrStageMismatch),
		errors.Is(err, workflow.ErrStageNotPending),
		errors.Is(err, workflow.ErrNotRevisable):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrCommentsRequired):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) workflowError(c *gin.Context, err error) {
	status := workflowErrorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("workflow operation failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) internalError(c *gin.Context, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
}

// pagination reads limit/offset query params with sane bounds
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
