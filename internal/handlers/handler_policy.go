package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/coopec-dev/coopec_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// policyHandler exposes the withdrawal policy for reading and per-parameter
// updates.
type policyHandler struct {
	policyService portssvc.PolicySvcFacade
}

// newPolicyHandler creates a new policyHandler.
func newPolicyHandler(ps portssvc.PolicySvcFacade) *policyHandler {
	return &policyHandler{
		policyService: ps,
	}
}

// registerPolicyRoutes registers policy routes.
func registerPolicyRoutes(rg *gin.RouterGroup, policyService portssvc.PolicySvcFacade) {
	h := newPolicyHandler(policyService)

	policy := rg.Group("/policy")
	{
		policy.GET("", h.getPolicy)
		policy.PUT("/:name", h.updateValue)
	}
}

func (h *policyHandler) getPolicy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	policy, err := h.policyService.GetPolicy(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "get policy")
		return
	}

	c.JSON(http.StatusOK, dto.ToPolicyResponse(policy))
}

func (h *policyHandler) updateValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	var req dto.UpdatePolicyValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for update policy request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	logger.Info("Policy update requested",
		slog.String("parameter", name),
		slog.String("updater_user_id", updaterUserID),
	)

	policy, err := h.policyService.UpdateValue(c.Request.Context(), name, req.Value)
	if err != nil {
		respondError(c, logger, err, "update policy")
		return
	}

	c.JSON(http.StatusOK, dto.ToPolicyResponse(policy))
}
