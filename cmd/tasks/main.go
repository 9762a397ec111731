package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"checklist/internal/backup"
	"checklist/internal/config"
	"checklist/internal/db"
	"checklist/pkg/task"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config: %v", err)
	}

	ctx := context.Background()
	backend, err := db.OpenTaskStore(ctx, cfg)
	if err != nil {
		fatal("open %s store: %v", cfg.Store, err)
	}
	defer backend.Close()

	switch os.Args[1] {
	case "task":
		handleTask(ctx, backend, os.Args[2:])
	case "status":
		handleStatus(ctx, backend)
	case "init":
		handleInit(ctx, backend)
	case "seed":
		handleSeed(ctx, backend, os.Args[2:])
	case "backup":
		handleBackup(ctx, backend, cfg.BackupDir)
	default:
		usage()
		os.Exit(1)
	}
}

func handleTask(ctx context.Context, store task.Store, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: tasks task <create|list|get|update|complete|delete> [--format=short for list]")
		os.Exit(1)
	}

	switch args[0] {
	case "create":
		flags := parseFlags(args[1:])
		in, err := createInput(flags)
		if err != nil {
			fatal("%v", err)
		}
		t, err := store.Create(ctx, in)
		if err != nil {
			fatal("create task: %v", err)
		}
		printJSON(t)

	case "list":
		flags := parseFlags(args[1:])
		tasks, err := store.List(ctx, task.Filter{
			Timeframe: task.Timeframe(flags["timeframe"]),
			Date:      flags["date"],
		})
		if err != nil {
			fatal("list tasks: %v", err)
		}
		if flags["format"] == "short" {
			printShortTasks(tasks)
		} else {
			printJSON(tasks)
		}

	case "get":
		if len(args) < 2 {
			fatal("Usage: tasks task get <id>")
		}
		t, err := store.Get(ctx, args[1])
		if err != nil {
			fatal("get task: %v", err)
		}
		if t == nil {
			fatal("task %s not found", args[1])
		}
		printJSON(t)

	case "update":
		if len(args) < 2 {
			fatal("Usage: tasks task update <id> [--title=...] [--description=...] [--completed=true|false]")
		}
		in, err := updateInput(parseFlags(args[2:]))
		if err != nil {
			fatal("%v", err)
		}
		if in.Empty() {
			fatal("no updates specified")
		}
		updateAndPrint(ctx, store, args[1], in)

	case "complete":
		if len(args) < 2 {
			fatal("Usage: tasks task complete <id>")
		}
		done := true
		updateAndPrint(ctx, store, args[1], task.UpdateInput{Completed: &done})

	case "delete":
		if len(args) < 2 {
			fatal("Usage: tasks task delete <id>")
		}
		ok, err := store.Delete(ctx, args[1])
		if err != nil {
			fatal("delete task: %v", err)
		}
		if !ok {
			fatal("task %s not found", args[1])
		}
		fmt.Println(`{"status":"ok","message":"Task deleted successfully"}`)

	default:
		fatal("unknown task command: %s", args[0])
	}
}

func updateAndPrint(ctx context.Context, store task.Store, id string, in task.UpdateInput) {
	t, err := store.Update(ctx, id, in)
	if err != nil {
		fatal("update task: %v", err)
	}
	if t == nil {
		fatal("task %s not found", id)
	}
	printJSON(t)
}

// createInput applies the same limits the HTTP API enforces.
func createInput(flags map[string]string) (task.CreateInput, error) {
	in := task.CreateInput{
		Title:     flags["title"],
		Timeframe: task.Timeframe(flags["timeframe"]),
		DueDate:   flags["due"],
	}
	if in.Timeframe == "" {
		in.Timeframe = task.Daily
	}
	if in.DueDate == "" {
		in.DueDate = today()
	}
	if d, ok := flags["description"]; ok {
		in.Description = &d
	}

	if utf8.RuneCountInString(in.Title) > 255 {
		return in, fmt.Errorf("--title must be at most 255 characters")
	}
	if in.Description != nil && utf8.RuneCountInString(*in.Description) > 1000 {
		return in, fmt.Errorf("--description must be at most 1000 characters")
	}
	if !in.Timeframe.Valid() {
		return in, fmt.Errorf("--timeframe must be one of daily, monthly, yearly")
	}
	if !task.ValidDueDate(in.DueDate) {
		return in, fmt.Errorf("--due must be YYYY-MM-DD or an RFC 3339 date-time")
	}
	return in, nil
}

func updateInput(flags map[string]string) (task.UpdateInput, error) {
	var in task.UpdateInput
	if v, ok := flags["title"]; ok {
		if v == "" || utf8.RuneCountInString(v) > 255 {
			return in, fmt.Errorf("--title must be 1 to 255 characters")
		}
		in.Title = &v
	}
	if v, ok := flags["description"]; ok {
		if utf8.RuneCountInString(v) > 1000 {
			return in, fmt.Errorf("--description must be at most 1000 characters")
		}
		in.Description = &v
	}
	if v, ok := flags["completed"]; ok {
		b := true
		if v != "" {
			var err error
			if b, err = strconv.ParseBool(v); err != nil {
				return in, fmt.Errorf("--completed must be true or false")
			}
		}
		in.Completed = &b
	}
	return in, nil
}

func handleStatus(ctx context.Context, store task.Store) {
	all, err := store.List(ctx, task.Filter{})
	if err != nil {
		fatal("list tasks: %v", err)
	}
	byTimeframe := make(map[task.Timeframe]int, len(task.Timeframes))
	completed := 0
	for _, t := range all {
		byTimeframe[t.Timeframe]++
		if t.Completed {
			completed++
		}
	}

	status := map[string]any{
		"tasks":     len(all),
		"completed": completed,
		"pending":   len(all) - completed,
	}
	for _, tf := range task.Timeframes {
		status[string(tf)] = byTimeframe[tf]
	}
	printJSON(status)
}

func handleInit(ctx context.Context, store task.Store) {
	if err := store.EnsureTable(ctx); err != nil {
		fatal("ensure tasks table: %v", err)
	}
	fmt.Println(`{"status":"ok","message":"tasks table initialized"}`)
}

func handleSeed(ctx context.Context, store task.Store, args []string) {
	flags := parseFlags(args)
	if err := store.EnsureTable(ctx); err != nil {
		fatal("ensure tasks table: %v", err)
	}
	if _, force := flags["force"]; !force {
		n, err := store.Count(ctx)
		if err != nil {
			fatal("count tasks: %v", err)
		}
		if n > 0 {
			fatal("store already holds %d tasks (use --force to seed anyway)", n)
		}
	}

	day := flags["date"]
	if day == "" {
		day = today()
	}
	created, err := task.Seed(ctx, store, day)
	if err != nil {
		fatal("%v", err)
	}
	printJSON(created)
}

func handleBackup(ctx context.Context, backend *db.TaskStore, dir string) {
	if backend.SQL == nil {
		fatal("backup is only supported for the sqlite store")
	}
	path, err := backup.Snapshot(ctx, backend.SQL, dir, time.Now())
	if err != nil {
		fatal("backup: %v", err)
	}
	printJSON(map[string]string{"status": "ok", "path": path})
}

func today() string {
	return time.Now().UTC().Format(task.DateLayout)
}

// parseFlags parses --key=value and --flag style args into a map.
func parseFlags(args []string) map[string]string {
	flags := make(map[string]string)
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		key, value, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		flags[key] = value
	}
	return flags
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal("encode JSON: %v", err)
	}
}

func truncStr(s string, n int) string {
	if utf8.RuneCountInString(s) > n {
		return string([]rune(s)[:n])
	}
	return s
}

func printShortTasks(tasks []task.Task) {
	for _, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		fmt.Printf("%-8s  %s  %-8s  %-10s  %s\n", truncStr(t.ID, 8), mark, t.Timeframe, task.DayKey(t.DueDate), truncStr(t.Title, 60))
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "tasks: "+format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: tasks <command>

Commands:
  task    Task operations (create, list, get, update, complete, delete)
  status  Show checklist summary
  init    Initialize the tasks table
  seed    Insert the sample daily tasks for today [--date=YYYY-MM-DD] [--force]
  backup  Snapshot the SQLite database into BACKUP_DIR

Configuration is read from the environment (STORE, DB_PATH, DATABASE_URL, BACKUP_DIR).`)
}
