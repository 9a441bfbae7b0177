package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"timetracker/internal/auth"
	"timetracker/internal/config"
	"timetracker/internal/database"
	"timetracker/internal/entries"
	"timetracker/internal/handlers"
	"timetracker/internal/logging"
	"timetracker/internal/report"
	"timetracker/internal/server"
	"timetracker/internal/users"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.New(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	slog.SetDefault(lg)

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg, lg)
	if err != nil {
		lg.Error("database", "err", err)
		os.Exit(1)
	}
	defer database.Close(db)

	userStore := users.NewStore(db, 0)
	if cfg.AdminUsername != "" {
		created, err := userStore.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		switch {
		case err != nil:
			lg.Error("failed to create admin user", "username", cfg.AdminUsername, "err", err)
		case created:
			lg.Info("created admin user", "username", cfg.AdminUsername)
		}
	}

	h := &handlers.Handler{
		Gate:         auth.NewGate(userStore),
		Sessions:     auth.NewStore(db, []byte(cfg.SessionSecret), cfg.SessionMaxAge),
		Users:        userStore,
		Entries:      entries.NewStore(db),
		Reports:      report.NewEngine(db),
		DB:           db,
		Log:          lg,
		ExportToken:  cfg.ExportToken,
		RegisterPath: cfg.RegisterPath,
	}

	r, err := server.NewRouter(cfg, h, lg)
	if err != nil {
		lg.Error("router", "err", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	lg.Info("starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		lg.Error("server error", "err", err)
		os.Exit(1)
	}
}
