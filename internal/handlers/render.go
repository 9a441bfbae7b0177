package handlers

import (
	"net/http"

	"timetracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// render wraps c.HTML and exposes the logged-in identity to every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if id := middleware.CurrentIdentity(c); id != nil {
		data["CurrentUsername"] = id.Username
		data["CurrentUserRole"] = string(id.Role)
		data["IsAdmin"] = id.IsAdmin()
	}

	c.HTML(status, tmpl, data)
}

// fail logs err and shows an opaque message; storage details never reach the client.
func (h *Handler) fail(c *gin.Context, msg string, err error) {
	h.Log.ErrorContext(c.Request.Context(), msg, "err", err, "path", c.Request.URL.Path)
	render(c, http.StatusInternalServerError, "error.html", gin.H{"message": msg})
}
