package main

import (
	"strings"
	"testing"

	"checklist/pkg/task"
)

func TestParseFlags(t *testing.T) {
	flags := parseFlags([]string{"--title=Read: ch. 3", "positional", "--force", "--due=2024-06-01"})
	if flags["title"] != "Read: ch. 3" {
		t.Fatalf("title = %q", flags["title"])
	}
	if v, ok := flags["force"]; !ok || v != "" {
		t.Fatalf("force = %q, %v", v, ok)
	}
	if flags["due"] != "2024-06-01" {
		t.Fatalf("due = %q", flags["due"])
	}
	if _, ok := flags["positional"]; ok {
		t.Fatal("positional args must be ignored")
	}
}

func TestCreateInputDefaultsAndLimits(t *testing.T) {
	in, err := createInput(map[string]string{"title": "x"})
	if err != nil {
		t.Fatalf("create input: %v", err)
	}
	if in.Timeframe != task.Daily || !task.ValidDueDate(in.DueDate) || in.Description != nil {
		t.Fatalf("defaults = %+v", in)
	}

	bad := []map[string]string{
		{"title": strings.Repeat("a", 256)},
		{"title": "x", "timeframe": "weekly"},
		{"title": "x", "due": "tomorrow"},
		{"title": "x", "description": strings.Repeat("d", 1001)},
	}
	for _, flags := range bad {
		if _, err := createInput(flags); err == nil {
			t.Errorf("createInput(%v) accepted invalid input", flags)
		}
	}
}

func TestUpdateInput(t *testing.T) {
	in, err := updateInput(map[string]string{"completed": ""})
	if err != nil || in.Completed == nil || !*in.Completed {
		t.Fatalf("bare --completed = %+v, %v", in, err)
	}
	in, err = updateInput(map[string]string{"completed": "false", "title": "new"})
	if err != nil || *in.Completed || *in.Title != "new" {
		t.Fatalf("update = %+v, %v", in, err)
	}
	if _, err := updateInput(map[string]string{"title": ""}); err == nil {
		t.Fatal("expected empty title error")
	}
	if _, err := updateInput(map[string]string{"completed": "maybe"}); err == nil {
		t.Fatal("expected bad bool error")
	}
	if in, _ := updateInput(map[string]string{}); !in.Empty() {
		t.Fatal("no flags must be an empty update")
	}
}
