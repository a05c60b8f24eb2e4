package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/coopec-dev/coopec_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// creditHandler handles credit lifecycle requests.
type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

// newCreditHandler creates a new creditHandler.
func newCreditHandler(cs portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{
		creditService: cs,
	}
}

// registerCreditRoutes registers credit routes.
func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	credits := rg.Group("/credits")
	{
		credits.POST("", h.createCredit)
		credits.GET("/:creditID", h.getCredit)
	}
	rg.GET("/accounts/:accountNumber/credits", h.listCreditsByAccount)
}

func (h *creditHandler) createCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for create credit request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	credit, err := h.creditService.CreateCredit(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "create credit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreditResponse(credit))
}

func (h *creditHandler) getCredit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creditID := c.Param("creditID")

	credit, err := h.creditService.GetCredit(c.Request.Context(), creditID)
	if err != nil {
		respondError(c, logger, err, "get credit")
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditResponse(credit))
}

func (h *creditHandler) listCreditsByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	credits, err := h.creditService.ListCreditsByAccount(c.Request.Context(), accountNumber, limit, offset)
	if err != nil {
		respondError(c, logger, err, "list credits")
		return
	}

	out := make([]dto.CreditResponse, len(credits))
	for i := range credits {
		out[i] = dto.ToCreditResponse(&credits[i])
	}
	c.JSON(http.StatusOK, gin.H{"credits": out})
}
