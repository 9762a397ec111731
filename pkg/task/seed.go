package task

import (
	"context"
	"fmt"
)

// SampleTasks are the starter entries for a fresh checklist, all daily and
// due on day.
func SampleTasks(day string) []CreateInput {
	titles := []string{"Homework", "sleep at 21:00", "watch", "Eat"}
	inputs := make([]CreateInput, 0, len(titles))
	for _, title := range titles {
		inputs = append(inputs, CreateInput{Title: title, Timeframe: Daily, DueDate: day})
	}
	return inputs
}

// Seed inserts the sample tasks for day. "Eat" is stored already completed.
func Seed(ctx context.Context, store Store, day string) ([]Task, error) {
	done := true
	var created []Task
	for _, in := range SampleTasks(day) {
		t, err := store.Create(ctx, in)
		if err != nil {
			return created, fmt.Errorf("seed %q: %w", in.Title, err)
		}
		if in.Title == "Eat" {
			if t, err = store.Update(ctx, t.ID, UpdateInput{Completed: &done}); err != nil {
				return created, fmt.Errorf("complete %q: %w", in.Title, err)
			}
		}
		created = append(created, *t)
	}
	return created, nil
}
