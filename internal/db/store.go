package db

import (
	"context"
	"database/sql"
	"fmt"

	"checklist/internal/config"
	"checklist/pkg/task"
)

// TaskStore is the task.Store selected by configuration together with the
// handle that backs it.
type TaskStore struct {
	task.Store
	// SQL is the SQLite handle, nil for the postgres backend.
	SQL   *sql.DB
	close func()
}

// Close releases the underlying handle.
func (s *TaskStore) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenTaskStore opens the backend named by cfg.Store. The schema is not
// touched; callers run EnsureTable.
func OpenTaskStore(ctx context.Context, cfg config.Config) (*TaskStore, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		sqlDB, err := OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return &TaskStore{
			Store: task.NewSQLiteStore(sqlDB),
			SQL:   sqlDB,
			close: func() { _ = sqlDB.Close() },
		}, nil
	case config.StorePostgres:
		pool, err := ConnectPostgres(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return nil, err
		}
		return &TaskStore{Store: task.NewPgStore(pool), close: pool.Close}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
