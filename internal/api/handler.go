package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"service-logger-backend/internal/logbook"
	"service-logger-backend/internal/store"
	"service-logger-backend/internal/validate"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc    *logbook.Service
	logger *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(svc *logbook.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// StateResponse carries the operator's state back to the client.
type StateResponse struct {
	State logbook.State `json:"state"`
}

// MutationResponse is returned by every operation that stores a record.
type MutationResponse struct {
	State    logbook.State `json:"state"`
	ID       string        `json:"id"`
	Warnings []string      `json:"warnings"`
}

func mutation(st logbook.State, res *logbook.Result) MutationResponse {
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return MutationResponse{State: st, ID: res.ID, Warnings: warnings}
}

// fail writes the response for an operation error.
func (h *Handler) fail(c *gin.Context, st logbook.State, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":      verr.Error(),
			"violations": verr.Violations,
			"state":      st,
		})
	case logbook.IsReferential(err):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error(), "state": st})
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
