package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/coopec-dev/coopec_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ledgerHandler handles deposit creation and entry listing.
type ledgerHandler struct {
	depositService portssvc.DepositSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ds portssvc.DepositSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		depositService: ds,
	}
}

// registerLedgerRoutes registers deposit and entry-listing routes.
func registerLedgerRoutes(rg *gin.RouterGroup, depositService portssvc.DepositSvcFacade) {
	h := newLedgerHandler(depositService)

	rg.POST("/deposits", h.createDeposit)
	rg.GET("/accounts/:accountNumber/entries", h.listEntries)
}

func (h *ledgerHandler) createDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create deposit request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.depositService.CreateDeposit(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "create deposit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(*entry))
}

func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	currency, err := domain.ParseCurrency(c.DefaultQuery("currency", string(domain.CurrencyFC)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.depositService.ListEntries(c.Request.Context(), accountNumber, currency, limit, offset)
	if err != nil {
		respondError(c, logger, err, "list entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": dto.ToLedgerEntryResponses(entries)})
}
