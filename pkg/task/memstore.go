package task

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-process Store backed by a map. Nothing survives a
// restart, so it is meant for tests and never selected by the binaries.
type MemStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	order []string
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{tasks: make(map[string]*Task)}
}

// EnsureTable is a no-op.
func (s *MemStore) EnsureTable(context.Context) error { return nil }

// List returns matching tasks in insertion order.
func (s *MemStore) List(_ context.Context, f Filter) ([]Task, error) {
	day := ""
	if f.Date != "" {
		day = DayKey(f.Date)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []Task{}
	for _, id := range s.order {
		t := s.tasks[id]
		if f.Timeframe != "" && t.Timeframe != f.Timeframe {
			continue
		}
		if day != "" && DayKey(t.DueDate) != day {
			continue
		}
		result = append(result, clone(t))
	}
	return result, nil
}

// Get returns a copy of the task, or nil if it does not exist.
func (s *MemStore) Get(_ context.Context, id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := clone(t)
	return &cp, nil
}

// Create stores a new incomplete task.
func (s *MemStore) Create(_ context.Context, in CreateInput) (*Task, error) {
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

	s.mu.Lock()
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	s.mu.Unlock()

	cp := clone(t)
	return &cp, nil
}

// Update applies the non-nil fields of in.
func (s *MemStore) Update(_ context.Context, id string, in UpdateInput) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = copyString(in.Description)
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	t.UpdatedAt = touch(t.UpdatedAt)

	cp := clone(t)
	return &cp, nil
}

// Delete removes the task and reports whether it existed.
func (s *MemStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Count returns the number of stored tasks.
func (s *MemStore) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks), nil
}

func clone(t *Task) Task {
	cp := *t
	cp.Description = copyString(t.Description)
	return cp
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
