package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"
)

var ErrSnapshotUnsupported = errors.New("snapshot is only supported for sqlite")

// Snapshot writes a consistent copy of a sqlite store into a fresh temp
// directory. The caller must invoke cleanup once the file has been served.
func Snapshot(ctx context.Context, db *gorm.DB) (path string, cleanup func(), err error) {
	if db.Dialector.Name() != "sqlite" {
		return "", nil, ErrSnapshotUnsupported
	}

	dir, err := os.MkdirTemp("", "timetracker-snapshot-")
	if err != nil {
		return "", nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(dir) }

	path = filepath.Join(dir, "snapshot.sqlite")
	if err := db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error; err != nil {
		cleanup()
		return "", nil, fmt.Errorf("vacuum into: %w", err)
	}
	return path, cleanup, nil
}
