package middleware

import (
	"timetracker/internal/auth"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const identityKey = "CurrentIdentity"

// InjectIdentity resolves the session identity once per request.
func InjectIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := auth.Current(sessions.Default(c)); id != nil {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity set by InjectIdentity, or nil.
func CurrentIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}
