package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// RequireFeature wraps a plan-restricted capability. The gate is evaluated on
// every request, never cached, so a plan change or renewal takes effect on
// the next call without an invalidation step.
func RequireFeature(entitlements domain.EntitlementService, feature domain.Feature) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		if entitlements.CanAccess(feature) {
			c.Next()
			return
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   entitlements.BlockingMessage(feature),
			"feature": feature,
			"action":  "contact_admin",
		})
		c.Abort()
	})
}
