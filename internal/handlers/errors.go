package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Policy refusals are
// business outcomes, not client mistakes, so they get 422 with the failed
// rule and its limit spelled out.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	var violation *apperrors.PolicyViolation
	switch {
	case errors.As(err, &violation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "policy violation",
			"rule":  violation.Rule,
			"limit": violation.Limit.String(),
		})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
