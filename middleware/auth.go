// Package middleware provides request filters and security checks for the dashboard.
// File: middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"civil-quest-admin/auth"
	"civil-quest-admin/logger"
)

// -------------- authentication middleware --------------

// AuthRequired is the session gate.
// How it works:
// - Decodes the API token kept in the session cookie.
// - A missing, malformed or expired token resets the session and sends the
//   user to "/login" (JSON callers get a 401 instead).
// - Otherwise the claims and raw token are stored in the gin context.
// Usage:
//
//	router.Use(AuthRequired)
func AuthRequired(c *gin.Context) {
	claims, token, err := auth.Current(c)
	if err != nil {
		logger.Warn.Printf("[AuthRequired] %s %s blocked: %v (request %s)", c.Request.Method, c.Request.URL.Path, err, c.GetString(RequestIDKey))
		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Set(auth.ClaimsKey, claims)
	c.Set(auth.TokenKey, token)
	logger.Debug.Printf("[AuthRequired] %s authenticated as %s", claims.Subject, claims.Role)
	c.Next()
}

// WantsJSON reports whether the caller is a script rather than a page load.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/ws" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json") ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
