package middleware

import (
	"net/http"

	"userboard/internal/pkg/authcookie"
	"userboard/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// RequireAuth gates every /dashboard request on the access-token cookie.
// No cookie means redirect to login; a cookie that fails verification is
// treated as fully unauthenticated: both cookies are cleared and the
// browser is sent back to login. Refresh is client-initiated, never done
// here. Verification is stateless, no storage round-trip per request.
func RequireAuth(tokens *token.Service, cookies *authcookie.Setter) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(authcookie.AccessName)
		if err != nil || raw == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccess(raw)
		if err != nil {
			cookies.ClearAuth(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
