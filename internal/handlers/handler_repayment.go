package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/coopec-dev/coopec_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// repaymentHandler handles repayment recording and correction.
type repaymentHandler struct {
	repaymentService portssvc.RepaymentSvcFacade
}

// newRepaymentHandler creates a new repaymentHandler.
func newRepaymentHandler(rs portssvc.RepaymentSvcFacade) *repaymentHandler {
	return &repaymentHandler{
		repaymentService: rs,
	}
}

// registerRepaymentRoutes registers repayment routes.
func registerRepaymentRoutes(rg *gin.RouterGroup, repaymentService portssvc.RepaymentSvcFacade) {
	h := newRepaymentHandler(repaymentService)

	repayments := rg.Group("/repayments")
	{
		repayments.POST("", h.createRepayment)
		repayments.DELETE("/:repaymentID", h.deleteRepayment)
	}
}

func (h *repaymentHandler) createRepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create repayment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	outcome, err := h.repaymentService.CreateRepayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "create repayment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRepaymentOutcomeResponse(outcome))
}

func (h *repaymentHandler) deleteRepayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	repaymentID := c.Param("repaymentID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	outcome, err := h.repaymentService.DeleteRepayment(c.Request.Context(), repaymentID, requestingUserID)
	if err != nil {
		respondError(c, logger, err, "delete repayment")
		return
	}

	c.JSON(http.StatusOK, dto.ToRepaymentOutcomeResponse(outcome))
}
