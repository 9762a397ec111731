package task_test

import (
	"context"
	"path/filepath"
	"testing"

	"checklist/internal/db"
	"checklist/pkg/task"
)

func openSQLiteStore(t *testing.T, path string) *task.SQLiteStore {
	t.Helper()
	sqlDB, err := db.OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	s := task.NewSQLiteStore(sqlDB)
	if err := s.EnsureTable(context.Background()); err != nil {
		t.Fatalf("ensure table: %v", err)
	}
	return s
}

func TestSQLiteStoreRejectsUnknownTimeframe(t *testing.T) {
	s := openSQLiteStore(t, filepath.Join(t.TempDir(), "tasks.db"))

	_, err := s.Create(context.Background(), task.CreateInput{Title: "x", Timeframe: "weekly", DueDate: "2024-01-01"})
	if err == nil {
		t.Fatal("expected CHECK constraint failure for weekly timeframe")
	}
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	first := openSQLiteStore(t, path)
	created, err := first.Create(ctx, task.CreateInput{Title: "persist me", Timeframe: task.Yearly, DueDate: "2025-12-31"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	second := openSQLiteStore(t, path)
	got, err := second.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Title != "persist me" {
		t.Fatalf("got %+v, want persisted task", got)
	}
}

func TestSQLiteStoreEnsureTableIsIdempotent(t *testing.T) {
	s := openSQLiteStore(t, filepath.Join(t.TempDir(), "tasks.db"))
	if err := s.EnsureTable(context.Background()); err != nil {
		t.Fatalf("second ensure table: %v", err)
	}
}
