package server

import (
	"html/template"
	"log/slog"
	"net/http"

	"timetracker/internal/auth"
	"timetracker/internal/config"
	"timetracker/internal/handlers"
	"timetracker/internal/middleware"
	"timetracker/internal/models"
	"timetracker/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, h *handlers.Handler, lg *slog.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	tmpl, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(sessions.Sessions(auth.SessionName, h.Sessions))

	r.Use(middleware.InjectIdentity())
	r.Use(middleware.RequestLog(lg))

	r.GET("/", h.IndexPage)

	// AUTH
	r.GET(cfg.RegisterPath, h.ShowRegister)
	r.POST(cfg.RegisterPath, h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/logout", h.Logout)

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth())

	authed.GET("/dashboard", h.Dashboard)
	authed.GET("/entries/new", h.ShowNewEntry)
	authed.POST("/entries/new", h.CreateEntry)

	admin := r.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.GET("", h.AdminReport)
	admin.POST("/entries/delete", h.DeleteEntry)
	admin.GET("/export", h.ExportStore)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r, nil
}
