package backup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"checklist/internal/db"
	"checklist/pkg/task"
)

func TestFileName(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 4, 5, 123_000_000, time.UTC)
	if got, want := FileName(at), "tasks-2024-06-01T10-04-05-123Z.db"; got != want {
		t.Fatalf("FileName = %q, want %q", got, want)
	}
}

func TestSnapshotCopiesTasks(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src, err := db.OpenSQLite(ctx, filepath.Join(dir, "tasks.db"))
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	defer src.Close()
	store := task.NewSQLiteStore(src)
	if err := store.EnsureTable(ctx); err != nil {
		t.Fatalf("ensure table: %v", err)
	}
	created, err := store.Create(ctx, task.CreateInput{Title: "keep", Timeframe: task.Daily, DueDate: "2024-06-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	dest, err := Snapshot(ctx, src, filepath.Join(dir, "backups"), at)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	copyDB, err := db.OpenSQLite(ctx, dest)
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	defer copyDB.Close()
	got, err := task.NewSQLiteStore(copyDB).Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get from backup: %v", err)
	}
	if got == nil || got.Title != "keep" {
		t.Fatalf("backup task = %+v", got)
	}

	if _, err := Snapshot(ctx, src, filepath.Join(dir, "backups"), at); err == nil {
		t.Fatal("expected error when snapshot already exists")
	}
}

func TestSnapshotRequiresDir(t *testing.T) {
	ctx := context.Background()
	src, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()
	if _, err := Snapshot(ctx, src, "", time.Now()); err == nil {
		t.Fatal("expected empty dir error")
	}
}
