package handlers

import (
	"errors"
	"net/http"
	"time"

	"timetracker/internal/entries"
	"timetracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Dashboard(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	list, err := h.Entries.ListForUser(c.Request.Context(), id.UserID)
	if err != nil {
		h.fail(c, "Could not load entries", err)
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"entries": list,
	})
}

func (h *Handler) ShowNewEntry(c *gin.Context) {
	render(c, http.StatusOK, "entry_new.html", gin.H{
		"error": "",
		"date":  time.Now().Format("2006-01-02"),
	})
}

// the owner is never read from the form
type entryForm struct {
	Date        string `form:"date"`
	Hours       string `form:"hours"`
	Description string `form:"description"`
}

func (h *Handler) CreateEntry(c *gin.Context) {
	id := middleware.CurrentIdentity(c)

	var form entryForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "entry_new.html", gin.H{"error": "Invalid form data"})
		return
	}

	_, err := h.Entries.Create(c.Request.Context(), id.UserID, form.Date, form.Hours, form.Description)
	if errors.Is(err, entries.ErrInvalidDate) {
		render(c, http.StatusUnprocessableEntity, "entry_new.html", gin.H{
			"error":       "Invalid date format (expected YYYY-MM-DD)",
			"date":        form.Date,
			"hours":       form.Hours,
			"description": form.Description,
		})
		return
	}
	if err != nil {
		h.fail(c, "Could not save entry", err)
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}
