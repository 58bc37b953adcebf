// Package repository defines how a day's tasks are persisted. The ledger only
// sees the Store contract and the serialized Record shape; the storage medium
// lives in the subpackages.
package repository

import (
	"context"
	"time"
)

// DayKeyLayout formats the calendar day a ledger belongs to.
const DayKeyLayout = "2006-01-02"

// IntervalRecord is the stored form of an interval. Instants are seconds
// since the Unix epoch; a nil End means the interval is still running.
type IntervalRecord struct {
	Start float64  `json:"start"`
	End   *float64 `json:"end"`
}

// Record is the stored form of a task.
type Record struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Intervals   []IntervalRecord `json:"intervals"`
}

// Store loads and saves the ordered record list of one day.
type Store interface {
	// Load returns the records saved for day, or an empty list if there are none.
	Load(ctx context.Context, day time.Time) ([]Record, error)
	// Save replaces everything stored for day with records, keeping their order.
	Save(ctx context.Context, day time.Time, records []Record) error
	Close() error
}

// DayKey returns the key identifying day in a store.
func DayKey(day time.Time) string {
	return day.Format(DayKeyLayout)
}

// ParseDayKey parses a key produced by DayKey into local midnight.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, key, time.Local)
}

// StartOfDay truncates t to local midnight of its calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
