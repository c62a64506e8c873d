package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidsht/Membership-Model-sub002/domain"
	"github.com/vidsht/Membership-Model-sub002/internal/infrastructure/auth"
)

// RoleGuard enforces the route policy against the live session's role. The
// role is read from the session snapshot on every request; nothing is cached
// across the session boundary.
func RoleGuard(sessions domain.SessionReader, guard *auth.RouteGuard) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		role := ""
		if snap := sessions.Snapshot(); snap.Identity != nil {
			role = string(snap.Identity.Role)
		}

		// Parameterized path for keyMatch2; fall back to the raw path
		// when no route matched.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		allowed, err := guard.Allowed(role, path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}
