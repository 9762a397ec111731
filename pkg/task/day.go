package task

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date form accepted for due dates and filters.
const DateLayout = "2006-01-02"

// DayKey normalizes a due date or date filter to its calendar day.
//
// Plain dates map to themselves and RFC 3339 date-times map to their UTC
// date. Anything else falls back to the leading ten characters so that
// legacy rows still group by their date prefix.
func DayKey(s string) string {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err == nil {
		return s
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(DateLayout)
	}
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}

// ValidDueDate reports whether s is a calendar date or an RFC 3339 date-time.
func ValidDueDate(s string) bool {
	if _, err := time.Parse(DateLayout, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

// now is the store clock. Timestamps keep millisecond precision so that
// every backend round-trips them unchanged.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// touch returns the next updatedAt for a row last stamped at prev. It never
// returns a value at or before prev, even within a single clock tick.
func touch(prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Millisecond)
	}
	return t
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
