package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgColumns = `id, title, description, completed, timeframe, due_date, created_at, updated_at`

// PgStore is a PostgreSQL-backed task store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PgStore.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// EnsureTable creates the tasks table if it doesn't exist.
func (s *PgStore) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL DEFAULT '',
			description TEXT,
			completed   BOOLEAN NOT NULL DEFAULT FALSE,
			timeframe   TEXT NOT NULL CHECK (timeframe IN ('daily', 'monthly', 'yearly')),
			due_date    TEXT NOT NULL,
			due_day     TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL CHECK (updated_at >= created_at)
		)`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_timeframe ON tasks(timeframe)`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_due_day ON tasks(due_day)`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_tasks_timeframe_day ON tasks(timeframe, due_day)`)
	return err
}

// Create inserts a new task.
func (s *PgStore) Create(ctx context.Context, in CreateInput) (*Task, error) {
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

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (id, title, description, completed, timeframe, due_date, due_day, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, $5, $6, $7, $8)`,
		t.ID, t.Title, t.Description, string(t.Timeframe), t.DueDate, DayKey(t.DueDate), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// Get retrieves a single task by ID.
func (s *PgStore) Get(ctx context.Context, id string) (*Task, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+pgColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanPgTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// Update modifies the non-nil fields of in. updated_at always advances.
func (s *PgStore) Update(ctx context.Context, id string, in UpdateInput) (*Task, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE tasks SET
			title       = COALESCE($1, title),
			description = COALESCE($2, description),
			completed   = COALESCE($3, completed),
			updated_at  = GREATEST($4, updated_at + INTERVAL '1 millisecond')
		WHERE id = $5
		RETURNING `+pgColumns,
		in.Title, in.Description, in.Completed, now(), id)

	t, err := scanPgTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	return t, nil
}

// Delete removes a task and reports whether it existed.
func (s *PgStore) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete task %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// List returns tasks filtered by timeframe and due day, oldest first.
func (s *PgStore) List(ctx context.Context, f Filter) ([]Task, error) {
	var where []string
	var args []any
	if f.Timeframe != "" {
		args = append(args, string(f.Timeframe))
		where = append(where, fmt.Sprintf("timeframe = $%d", len(args)))
	}
	if f.Date != "" {
		args = append(args, DayKey(f.Date))
		where = append(where, fmt.Sprintf("due_day = $%d", len(args)))
	}
	query := `SELECT ` + pgColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanPgTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return tasks, nil
}

// Count returns total task count.
func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

func scanPgTask(row pgx.Row) (*Task, error) {
	var t Task
	var timeframe string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &timeframe, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Timeframe = Timeframe(timeframe)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}
