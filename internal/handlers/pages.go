package handlers

import (
	"net/http"

	"timetracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) IndexPage(c *gin.Context) {
	render(c, http.StatusOK, "index.html", gin.H{
		"isAuthed": middleware.CurrentIdentity(c) != nil,
	})
}
