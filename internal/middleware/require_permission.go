package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	portssvc "github.com/superhostingvip/portal_backend/internal/core/ports/services"
)

// RequirePermission gates a route on the caller's effective role. The raw
// role claim from the token is resolved fail-closed through the access
// resolver before the permission check, so an unreachable store demotes the
// caller instead of letting a stale admin claim through.
func RequirePermission(resolver portssvc.RoleResolverFacade, permission domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		role := resolver.ResolveRole(c.Request.Context(), GetRoleClaimFromContext(c))
		if !role.HasPermission(permission) {
			logger.Warn("Permission denied",
				slog.String("role", string(role)),
				slog.String("permission", string(permission)),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
