package task

import (
	"context"
	"encoding/json"
	"time"
)

// TimestampLayout is the wire form of createdAt and updatedAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timeframe is the granularity bucket a task belongs to.
type Timeframe string

const (
	Daily   Timeframe = "daily"
	Monthly Timeframe = "monthly"
	Yearly  Timeframe = "yearly"
)

// Timeframes lists every accepted timeframe in display order.
var Timeframes = []Timeframe{Daily, Monthly, Yearly}

// Valid reports whether tf is one of the enumerated timeframes.
func (tf Timeframe) Valid() bool {
	switch tf {
	case Daily, Monthly, Yearly:
		return true
	}
	return false
}

// Task is a single checklist entry.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"` // nil when never set
	Completed   bool      `json:"completed"`
	Timeframe   Timeframe `json:"timeframe"`
	DueDate     string    `json:"dueDate"` // YYYY-MM-DD or RFC 3339, stored as given
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MarshalJSON renders timestamps in UTC with fixed millisecond precision.
func (t Task) MarshalJSON() ([]byte, error) {
	type wire Task
	return json.Marshal(struct {
		wire
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	}{
		wire:      wire(t),
		CreatedAt: t.CreatedAt.UTC().Format(TimestampLayout),
		UpdatedAt: t.UpdatedAt.UTC().Format(TimestampLayout),
	})
}

// CreateInput carries the caller-supplied fields of a new task.
type CreateInput struct {
	Title       string
	Description *string
	Timeframe   Timeframe
	DueDate     string
}

// UpdateInput is a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Empty reports whether the update names no field at all.
func (u UpdateInput) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

// Filter narrows List. Zero values mean "no restriction"; both fields AND together.
type Filter struct {
	Timeframe Timeframe
	Date      string
}

// Store is the contract for task persistence.
//
// Absence is not an error: Get and Update return a nil task and a nil error
// when the id does not exist, and Delete reports false.
type Store interface {
	List(ctx context.Context, f Filter) ([]Task, error)
	Get(ctx context.Context, id string) (*Task, error)
	Create(ctx context.Context, in CreateInput) (*Task, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Task, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
	EnsureTable(ctx context.Context) error
}
