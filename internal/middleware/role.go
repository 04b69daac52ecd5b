package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farhanak624/kshetra-backend/internal/domain"
	"github.com/farhanak624/kshetra-backend/internal/pkg/response"
)

// RequireRole admits only tokens carrying the given role. It must run after
// Auth, which stores the parsed role in the context.
func RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		role, ok := v.(domain.Role)
		if !ok || role != required {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
