package middleware

import (
	"net/http"
	"strings"

	"github.com/01moynul/sales-management-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

// SessionCookie carries the admin token for the browser UI.
const SessionCookie = "session"

// AuthMiddleware creates a gin.HandlerFunc that acts as our "security guard".
// A nil Authenticator means login is switched off and every request passes.
// API callers (/v1) get 401 JSON; browser pages are sent to the login form.
func AuthMiddleware(a *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if a == nil {
			c.Next()
			return
		}

		// 1. --- Find the Token ---
		tokenString, ok := bearerToken(c)
		if !ok {
			tokenString, _ = c.Cookie(SessionCookie)
		}

		// 2. --- Validate Token ---
		subject, err := "", auth.ErrInvalidToken
		if tokenString != "" {
			subject, err = a.ValidateToken(tokenString)
		}
		if err != nil {
			deny(c)
			return
		}

		// 3. --- Success ---
		c.Set("adminUser", subject)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func deny(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/v1/") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}
