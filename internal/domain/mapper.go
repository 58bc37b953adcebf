package domain

import (
	"math"
	"time"

	"timelogger/internal/repository"
)

// UnixSeconds converts t to real-valued seconds since the epoch. Stored
// instants keep microseconds; anything finer is dropped.
func UnixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond()/1e3)/1e6
}

// FromUnixSeconds converts real-valued seconds since the epoch to a local
// time, rounded to the microsecond.
func FromUnixSeconds(seconds float64) time.Time {
	whole, frac := math.Modf(seconds)
	micros := int64(math.Round(frac * 1e6))
	return time.Unix(int64(whole), micros*1e3)
}

// IntervalMapper handles conversion between domain and stored intervals.
type IntervalMapper struct{}

// NewIntervalMapper creates a new IntervalMapper instance.
func NewIntervalMapper() *IntervalMapper {
	return &IntervalMapper{}
}

// ToRecord converts a domain Interval to its stored form.
func (m *IntervalMapper) ToRecord(iv Interval) repository.IntervalRecord {
	rec := repository.IntervalRecord{Start: UnixSeconds(iv.Start)}
	if !iv.IsOpen() {
		rec.End = repository.Float64Ptr(UnixSeconds(iv.End))
	}
	return rec
}

// FromRecord converts a stored interval to a domain Interval.
// Stored bounds are taken as-is, without re-validating them.
func (m *IntervalMapper) FromRecord(rec repository.IntervalRecord) Interval {
	iv := Interval{Start: FromUnixSeconds(rec.Start)}
	if rec.End != nil {
		iv.End = FromUnixSeconds(*rec.End)
	}
	return iv
}

// TaskMapper handles conversion between domain tasks and stored records.
type TaskMapper struct {
	intervals *IntervalMapper
}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{intervals: NewIntervalMapper()}
}

// ToRecord converts a domain Task to a stored Record.
func (m *TaskMapper) ToRecord(task *Task) repository.Record {
	rec := repository.Record{
		Name:        task.Name,
		Description: task.Description,
		Intervals:   make([]repository.IntervalRecord, len(task.Intervals)),
	}
	for i, iv := range task.Intervals {
		rec.Intervals[i] = m.intervals.ToRecord(iv)
	}
	return rec
}

// FromRecord converts a stored Record to a domain Task.
func (m *TaskMapper) FromRecord(rec repository.Record) *Task {
	task := &Task{
		Name:        rec.Name,
		Description: rec.Description,
	}
	for _, ir := range rec.Intervals {
		task.Intervals = append(task.Intervals, m.intervals.FromRecord(ir))
	}
	return task
}

// ToRecords converts a slice of domain Tasks to stored Records.
func (m *TaskMapper) ToRecords(tasks []*Task) []repository.Record {
	records := make([]repository.Record, len(tasks))
	for i, task := range tasks {
		records[i] = m.ToRecord(task)
	}
	return records
}

// FromRecords converts a slice of stored Records to domain Tasks.
func (m *TaskMapper) FromRecords(records []repository.Record) []*Task {
	tasks := make([]*Task, len(records))
	for i, rec := range records {
		tasks[i] = m.FromRecord(rec)
	}
	return tasks
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task     *TaskMapper
	Interval *IntervalMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:     NewTaskMapper(),
		Interval: NewIntervalMapper(),
	}
}
