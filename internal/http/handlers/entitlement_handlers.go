package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidsht/Membership-Model-sub002/domain"
	"github.com/vidsht/Membership-Model-sub002/internal/services"
)

// EntitlementHandlers exposes the derived feature-access matrix
type EntitlementHandlers struct {
	entitlements domain.EntitlementService
}

// NewEntitlementHandlers creates new entitlement handlers
func NewEntitlementHandlers(entitlements domain.EntitlementService) *EntitlementHandlers {
	return &EntitlementHandlers{entitlements: entitlements}
}

// Snapshot returns the full entitlement snapshot for the current session
func (h *EntitlementHandlers) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.entitlements.Snapshot()})
}

// Feature returns the gate decision for one feature
func (h *EntitlementHandlers) Feature(c *gin.Context) {
	feature := domain.Feature(c.Param("feature"))
	decision := services.CheckAccess(h.entitlements.Snapshot(), feature)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"feature": feature,
		"allowed": decision.Allowed,
		"message": decision.Message,
	}})
}
