package middleware

import (
	"errors"
	"net/http"

	"timetracker/internal/auth"
	"timetracker/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireAuth sends anonymous visitors to the login page.
func RequireAuth() gin.HandlerFunc {
	return RequireRole(models.RoleNone)
}

// RequireRole admits sessions holding role. Anonymous callers are redirected
// to the login page, logged-in callers with the wrong role get 403.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := auth.Authorize(CurrentIdentity(c), role)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, auth.ErrUnauthenticated):
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		default:
			c.String(http.StatusForbidden, "access denied")
			c.Abort()
		}
	}
}
