package handlers

import (
	"net/http"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/coopec-dev/coopec_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// balanceHandler serves the derived balance views.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{
		balanceService: bs,
	}
}

// registerBalanceRoutes registers balance routes.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/balances")
	{
		balances.GET("/account/:accountNumber", h.getAccountBalance)
		balances.GET("/total", h.getTotals)
	}
}

func (h *balanceHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	currency, err := domain.ParseCurrency(c.DefaultQuery("currency", string(domain.CurrencyFC)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.balanceService.GetAccountBalance(c.Request.Context(), accountNumber, currency)
	if err != nil {
		respondError(c, logger, err, "get balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountNumber: accountNumber,
		Currency:      currency,
		Balance:       balance,
	})
}

func (h *balanceHandler) getTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	totals, err := h.balanceService.GetTotals(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "get totals")
		return
	}

	c.JSON(http.StatusOK, dto.TotalsResponse{PerCurrency: totals})
}
