package handlers

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"timetracker/internal/database"
	"timetracker/internal/middleware"
	"timetracker/internal/report"

	"github.com/gin-gonic/gin"
)

var months = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}

func (h *Handler) AdminReport(c *gin.Context) {
	f := report.Filters{
		User:  c.Query("user"),
		Month: c.Query("month"),
		Year:  c.Query("year"),
	}

	rep, err := h.Reports.Build(c.Request.Context(), f)
	if err != nil {
		h.fail(c, "Report is currently unavailable", err)
		return
	}

	render(c, http.StatusOK, "admin_report.html", gin.H{
		"entries":       rep.Rows,
		"users":         rep.Usernames,
		"years":         rep.Years,
		"months":        months,
		"selectedUser":  rep.Filters.User,
		"selectedMonth": rep.Filters.Month,
		"selectedYear":  rep.Filters.Year,
		"totalHours":    rep.TotalString(),
	})
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.PostForm("id")), 10, 64)
	if err != nil || id == 0 {
		c.String(http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.Entries.Delete(c.Request.Context(), uint(id)); err != nil {
		h.fail(c, "Could not delete entry", err)
		return
	}

	h.Log.InfoContext(c.Request.Context(), "entry deleted",
		"entry_id", id, "by", middleware.CurrentIdentity(c).Username)
	c.Redirect(http.StatusFound, "/admin")
}

// ExportStore streams a snapshot of the database. Besides the admin role
// it requires the configured export token.
func (h *Handler) ExportStore(c *gin.Context) {
	token := c.Query("token")
	if h.ExportToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.ExportToken)) != 1 {
		c.String(http.StatusUnauthorized, "invalid or missing token")
		return
	}

	path, cleanup, err := database.Snapshot(c.Request.Context(), h.DB)
	if errors.Is(err, database.ErrSnapshotUnsupported) {
		c.String(http.StatusNotImplemented, "export is not available for this database")
		return
	}
	if err != nil {
		h.fail(c, "Could not export database", err)
		return
	}
	defer cleanup()

	name := fmt.Sprintf("backup-%s.sqlite", time.Now().Format("2006-01-02"))
	h.Log.InfoContext(c.Request.Context(), "database exported",
		"file", name, "by", middleware.CurrentIdentity(c).Username)
	c.FileAttachment(path, name)
}
