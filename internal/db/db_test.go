package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"checklist/internal/config"
	"checklist/pkg/task"
)

func TestOpenSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite(context.Background(), "  "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestOpenSQLiteCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "tasks.db")
	db, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("expected parent dir to exist: %v", err)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("read journal mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}
}

func TestConnectPostgresRequiresURL(t *testing.T) {
	if _, err := ConnectPostgres(context.Background(), "", 4); err == nil {
		t.Fatal("expected empty url error")
	}
}

func TestConnectPostgresRejectsBadURL(t *testing.T) {
	if _, err := ConnectPostgres(context.Background(), "postgres://%zz", 4); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOpenTaskStoreSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{Store: config.StoreSQLite, DBPath: filepath.Join(t.TempDir(), "tasks.db")}

	ts, err := OpenTaskStore(ctx, cfg)
	if err != nil {
		t.Fatalf("open task store: %v", err)
	}
	defer ts.Close()

	if ts.SQL == nil {
		t.Fatal("expected sqlite handle")
	}
	if _, ok := ts.Store.(*task.SQLiteStore); !ok {
		t.Fatalf("store = %T, want *task.SQLiteStore", ts.Store)
	}
	if err := ts.EnsureTable(ctx); err != nil {
		t.Fatalf("ensure table: %v", err)
	}
	if n, err := ts.Count(ctx); err != nil || n != 0 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

func TestOpenTaskStoreRejectsUnknownBackend(t *testing.T) {
	if _, err := OpenTaskStore(context.Background(), config.Config{Store: "redis"}); err == nil {
		t.Fatal("expected unknown store error")
	}
}
