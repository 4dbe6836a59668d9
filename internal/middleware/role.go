package middleware

import (
	"net/http"

	"userboard/internal/domain"
	"userboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures the authenticated caller meets the required
// privilege level (admin passes user-level gates). Runs after
// RequireAuth, so the role is always present in context. Rejection
// mutates nothing. No cookie clearing on 403.
func RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.Role(c.GetString("role"))

		if !role.AtLeast(required) {
			if c.Request.Method == http.MethodGet {
				c.HTML(http.StatusForbidden, "error.html", gin.H{
					"message": "Access denied: insufficient permissions",
					"user":    gin.H{"id": c.GetInt64("user_id"), "role": string(role)},
				})
			} else {
				response.Error(c, http.StatusForbidden, "Access denied: insufficient permissions")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly guards the user management surface.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
