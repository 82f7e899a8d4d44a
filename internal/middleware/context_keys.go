package middleware

import "github.com/gin-gonic/gin"

// contextKey is a private type so context values cannot collide with other
// packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	roleClaimKey = contextKey("roleClaim")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			return v.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetRoleClaimFromContext retrieves the raw role claim stored by the auth
// middleware. The claim is unverified text; resolve it through the access
// resolver before acting on it.
func GetRoleClaimFromContext(c *gin.Context) string {
	if v, exists := c.Get(string(roleClaimKey)); exists {
		if claim, ok := v.(string); ok {
			return claim
		}
	}
	if v := c.Request.Context().Value(roleClaimKey); v != nil {
		if claim, ok := v.(string); ok {
			return claim
		}
	}
	return ""
}
