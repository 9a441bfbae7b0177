package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"timetracker/internal/config"
	"timetracker/internal/logging"
	"timetracker/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqliteParams = "_foreign_keys=1&_busy_timeout=5000&_journal_mode=WAL"

// Open connects to the configured store and migrates the schema.
// Postgres connections are retried while the server comes up.
func Open(ctx context.Context, cfg *config.Config, lg *slog.Logger) (*gorm.DB, error) {
	dialector, maxAttempts, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{
		Logger:         logging.Gorm(lg),
		TranslateError: true,
	}

	var db *gorm.DB
	for i := 1; i <= maxAttempts; i++ {
		lg.Info("connecting to database", "driver", cfg.DBDriver, "attempt", i, "max_attempts", maxAttempts)

		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		lg.Warn("failed to connect to database", "err", err)

		if i < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", maxAttempts, err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Entry{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	lg.Info("database ready", "driver", cfg.DBDriver)

	return db, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, int, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DBDSN), 10, nil
	case config.DriverSQLite, "":
		dsn := cfg.DBDSN
		path := strings.TrimPrefix(dsn, "file:")
		if i := strings.IndexByte(path, '?'); i >= 0 {
			path = path[:i]
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, 0, fmt.Errorf("create db directory: %w", err)
			}
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + sqliteParams
		} else {
			dsn += "?" + sqliteParams
		}
		return sqlite.Open(dsn), 1, nil
	default:
		return nil, 0, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
