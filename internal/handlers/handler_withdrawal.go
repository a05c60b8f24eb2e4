package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/coopec-dev/coopec_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// withdrawalHandler handles the policy-checked withdrawal endpoint.
type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

// newWithdrawalHandler creates a new withdrawalHandler.
func newWithdrawalHandler(ws portssvc.WithdrawalSvcFacade) *withdrawalHandler {
	return &withdrawalHandler{
		withdrawalService: ws,
	}
}

// registerWithdrawalRoutes registers withdrawal routes.
func registerWithdrawalRoutes(rg *gin.RouterGroup, withdrawalService portssvc.WithdrawalSvcFacade) {
	h := newWithdrawalHandler(withdrawalService)

	rg.POST("/withdrawals", h.createWithdrawal)
}

func (h *withdrawalHandler) createWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create withdrawal request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.withdrawalService.CreateWithdrawal(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "create withdrawal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWithdrawalResponse(record))
}
