// Package handlers implements the HTML endpoints on top of the auth gate,
// the entry store and the report engine.
package handlers

import (
	"log/slog"

	"timetracker/internal/auth"
	"timetracker/internal/entries"
	"timetracker/internal/report"
	"timetracker/internal/users"

	"github.com/gin-contrib/sessions"
	"gorm.io/gorm"
)

type Handler struct {
	Gate     *auth.Gate
	Sessions sessions.Store
	Users    *users.Store
	Entries  *entries.Store
	Reports  *report.Engine
	DB       *gorm.DB
	Log      *slog.Logger

	ExportToken  string
	RegisterPath string
}
