// Package backup snapshots the SQLite task database.
package backup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName returns the snapshot name for a backup taken at t,
// e.g. tasks-2024-06-01T10-00-00-000Z.db.
func FileName(t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return "tasks-" + stamp + ".db"
}

// Snapshot writes a consistent copy of db into dir and returns its path.
// VACUUM INTO reads through SQLite, so WAL content is included.
func Snapshot(ctx context.Context, db *sql.DB, dir string, at time.Time) (string, error) {
	if db == nil {
		return "", errors.New("sql db is required")
	}
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("backup dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	dest := filepath.Join(dir, FileName(at))
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("backup %s already exists", dest)
	}
	if _, err := db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return "", fmt.Errorf("vacuum into %s: %w", dest, err)
	}
	return dest, nil
}
