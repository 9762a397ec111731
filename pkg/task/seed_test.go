package task

import (
	"context"
	"testing"
)

func TestSeed(t *testing.T) {
	store := NewMemStore()
	created, err := Seed(context.Background(), store, "2024-06-01")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(created) != 4 {
		t.Fatalf("seeded %d tasks, want 4", len(created))
	}

	var completed []string
	for _, tk := range created {
		if tk.Timeframe != Daily || tk.DueDate != "2024-06-01" {
			t.Errorf("task %q = %s/%s, want daily/2024-06-01", tk.Title, tk.Timeframe, tk.DueDate)
		}
		if tk.Completed {
			completed = append(completed, tk.Title)
		}
	}
	if len(completed) != 1 || completed[0] != "Eat" {
		t.Fatalf("completed = %v, want [Eat]", completed)
	}

	listed, _ := store.List(context.Background(), Filter{Date: "2024-06-01"})
	if len(listed) != 4 || listed[0].Title != "Homework" {
		t.Fatalf("listed = %+v", listed)
	}
}
