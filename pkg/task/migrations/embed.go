package migrations

import "embed"

// FS holds the SQLite schema for the tasks table.
//
//go:embed *.sql
var FS embed.FS
