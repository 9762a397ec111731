package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"checklist/internal/sqlitemigrate"
	"checklist/pkg/task/migrations"
)

const sqliteColumns = `id, title, description, completed, timeframe, due_date, created_at, updated_at`

// SQLiteStore is the default durable Store. Timestamps are kept as Unix
// milliseconds and writes are serialized by SQLite itself.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore over an open handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// EnsureTable applies the embedded schema migrations.
func (s *SQLiteStore) EnsureTable(ctx context.Context) error {
	return sqlitemigrate.Apply(ctx, s.db, migrations.FS, ".")
}

// List returns tasks matching f, oldest first.
func (s *SQLiteStore) List(ctx context.Context, f Filter) ([]Task, error) {
	var where []string
	var args []any
	if f.Timeframe != "" {
		where = append(where, "timeframe = ?")
		args = append(args, string(f.Timeframe))
	}
	if f.Date != "" {
		where = append(where, "due_day = ?")
		args = append(args, DayKey(f.Date))
	}
	query := `SELECT ` + sqliteColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return tasks, nil
}

// Get retrieves a single task by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sqliteColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanSQLiteTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// Create inserts a new task.
func (s *SQLiteStore) Create(ctx context.Context, in CreateInput) (*Task, error) {
	ts := now()
	t := &Task{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Title:       in.Title,
		Description: copyString(in.Description),
		Timeframe:   in.Timeframe,
		DueDate:     in.DueDate,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, completed, timeframe, due_date, due_day, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, nullString(t.Description), string(t.Timeframe), t.DueDate, DayKey(t.DueDate),
		toMillis(t.CreatedAt), toMillis(t.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// Update applies the non-nil fields of in in a single statement. updated_at
// always moves forward by at least one millisecond.
func (s *SQLiteStore) Update(ctx context.Context, id string, in UpdateInput) (*Task, error) {
	var completed any
	if in.Completed != nil {
		completed = boolInt(*in.Completed)
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE tasks SET
			title       = COALESCE(?, title),
			description = COALESCE(?, description),
			completed   = COALESCE(?, completed),
			updated_at  = MAX(?, updated_at + 1)
		WHERE id = ?
		RETURNING `+sqliteColumns,
		nullString(in.Title), nullString(in.Description), completed, toMillis(now()), id)

	t, err := scanSQLiteTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	return t, nil
}

// Delete removes a task and reports whether a row was deleted.
func (s *SQLiteStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete task %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task %s: %w", id, err)
	}
	return n > 0, nil
}

// Count returns total task count.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteTask(row rowScanner) (*Task, error) {
	var (
		t                  Task
		desc               sql.NullString
		completed          int64
		timeframe          string
		createdAt, updated int64
	)
	if err := row.Scan(&t.ID, &t.Title, &desc, &completed, &timeframe, &t.DueDate, &createdAt, &updated); err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	t.Completed = completed != 0
	t.Timeframe = Timeframe(timeframe)
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updated)
	return &t, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
