// Package dbtest opens throwaway sqlite stores for package tests.
package dbtest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"timetracker/internal/config"
	"timetracker/internal/database"

	"gorm.io/gorm"
)

// Open opens a migrated sqlite store under t.TempDir and closes it on cleanup.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBDSN:    filepath.Join(t.TempDir(), "test.sqlite"),
	}
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(context.Background(), cfg, lg)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
