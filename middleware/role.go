// Package middleware file: middleware/role.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civil-quest-admin/auth"
	"civil-quest-admin/logger"
	"civil-quest-admin/models"
)

// RoleRequired hides a screen from roles not listed. With no roles every
// signed-in user passes. Whether the API checks roles as well is not known
// here, so the gate runs on every matching request.
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	item := auth.MenuItem{Roles: roles}
	return func(c *gin.Context) {
		claims, ok := auth.FromContext(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if !item.Allows(claims.Role) {
			logger.Warn.Printf("[RoleRequired] %s (%s) blocked from %s", claims.Subject, claims.Role, c.Request.URL.Path)
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			auth.AddToast(c, auth.ToastError, "toast.forbidden")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}
