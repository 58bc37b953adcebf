package domain

import (
	"sort"
	"strings"
	"time"
)

// HiddenPrefix marks a task as unpaid. Unpaid tasks stay on the timeline but
// are left out of working-time totals and percentages.
const HiddenPrefix = "."

// Task is a named activity owning a sorted set of non-overlapping intervals.
type Task struct {
	Name        string
	Description string
	Intervals   []Interval
}

// NewTask creates a new Task with the given name.
func NewTask(name string) *Task {
	return &Task{
		Name: name,
	}
}

// IsActive returns true if the last interval is still running.
func (t *Task) IsActive() bool {
	return len(t.Intervals) > 0 && t.Intervals[len(t.Intervals)-1].IsOpen()
}

// IsUnpaid returns true if the task name starts with prefix, the marker
// configured for unpaid tasks.
func (t *Task) IsUnpaid(prefix string) bool {
	return prefix != "" && strings.HasPrefix(t.Name, prefix)
}

// Start opens a new interval at now unless the task is already running.
func (t *Task) Start(now time.Time) {
	if t.IsActive() {
		return
	}
	t.closeOpenIntervals(now)
	t.Intervals = append(t.Intervals, NewOpenInterval(now))
	t.sortIntervals()
}

// Stop ends the running interval at now.
func (t *Task) Stop(now time.Time) {
	if !t.IsActive() {
		return
	}
	last := len(t.Intervals) - 1
	t.Intervals[last] = t.Intervals[last].closeAt(now)
	t.dropInvalid()
}

// closeOpenIntervals ends every running interval that is not the trailing one.
func (t *Task) closeOpenIntervals(now time.Time) {
	for i, iv := range t.Intervals {
		if iv.IsOpen() {
			t.Intervals[i] = iv.closeAt(now)
		}
	}
	t.dropInvalid()
}

// Insert adds iv, trimming, splitting or removing existing intervals so that
// none overlap it. Invalid intervals are ignored.
func (t *Task) Insert(iv Interval) {
	if !iv.IsValid() {
		return
	}
	t.RemoveConflictsWith(iv)
	t.Intervals = append(t.Intervals, iv)
	t.sortIntervals()
}

// RemoveConflictsWith frees the span of iv without adding it.
func (t *Task) RemoveConflictsWith(iv Interval) {
	if !iv.IsValid() {
		return
	}
	kept := make([]Interval, 0, len(t.Intervals)+1)
	for _, cur := range t.Intervals {
		switch cur.Classify(iv) {
		case Removed:
		case Split:
			kept = append(kept, cur.TrimAfterStartOf(iv), cur.TrimBeforeEndOf(iv))
		case CutoffAtStart:
			kept = append(kept, cur.TrimBeforeEndOf(iv))
		case CutoffAtEnd:
			kept = append(kept, cur.TrimAfterStartOf(iv))
		default:
			kept = append(kept, cur)
		}
	}
	t.Intervals = kept
	t.sortIntervals()
}

// MergeWith moves all of other's intervals into t and empties other.
// A running t is stopped first and restarted afterwards so the trailing
// interval of the merged set is the one left running.
func (t *Task) MergeWith(other *Task, now time.Time) {
	if other == nil || other == t {
		return
	}
	wasActive := t.IsActive()
	if wasActive {
		t.Stop(now)
	}
	for _, iv := range other.Intervals {
		t.Insert(iv)
	}
	other.Intervals = nil
	if wasActive {
		t.Start(now)
	}
}

// MergeTouchingIntervals joins intervals where one ends exactly where
// another starts, until no such pair remains.
func (t *Task) MergeTouchingIntervals() {
	for t.mergeOneTouchingPair() {
	}
}

func (t *Task) mergeOneTouchingPair() bool {
	for i, a := range t.Intervals {
		if a.IsOpen() {
			continue
		}
		for j, b := range t.Intervals {
			if i == j || !a.End.Equal(b.Start) {
				continue
			}
			t.Intervals[i] = Interval{Start: a.Start, End: b.End}
			t.Intervals = append(t.Intervals[:j], t.Intervals[j+1:]...)
			t.sortIntervals()
			return true
		}
	}
	return false
}

// TotalDuration sums the durations of all intervals.
func (t *Task) TotalDuration(now time.Time) time.Duration {
	var total time.Duration
	for _, iv := range t.Intervals {
		total += iv.Duration(now)
	}
	return total
}

// TotalHours returns TotalDuration in hours.
func (t *Task) TotalHours(now time.Time) float64 {
	return t.TotalDuration(now).Hours()
}

// EarliestStart returns the first start, or false if there is none.
func (t *Task) EarliestStart() (time.Time, bool) {
	if len(t.Intervals) == 0 {
		return time.Time{}, false
	}
	var earliest time.Time
	for i, iv := range t.Intervals {
		if !iv.IsValid() {
			return time.Time{}, false
		}
		if i == 0 || iv.Start.Before(earliest) {
			earliest = iv.Start
		}
	}
	return earliest, true
}

// LatestEnd returns the last end, or false if any interval is still running.
func (t *Task) LatestEnd() (time.Time, bool) {
	if len(t.Intervals) == 0 {
		return time.Time{}, false
	}
	var latest time.Time
	for _, iv := range t.Intervals {
		if iv.IsOpen() {
			return time.Time{}, false
		}
		if iv.End.After(latest) {
			latest = iv.End
		}
	}
	return latest, true
}

// SpanLabel renders the span from the earliest start to the latest end.
// Spans covering more than one interval use MultiSpanSeparator.
func (t *Task) SpanLabel() string {
	start, ok := t.EarliestStart()
	if !ok {
		return ""
	}
	sep := SpanSeparator
	if len(t.Intervals) > 1 {
		sep = MultiSpanSeparator
	}
	end, _ := t.LatestEnd()
	return Interval{Start: start, End: end}.Format(sep)
}

// ContainsInstant reports whether any interval contains at.
func (t *Task) ContainsInstant(at time.Time) bool {
	for _, iv := range t.Intervals {
		if iv.Contains(at) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	clone := &Task{
		Name:        t.Name,
		Description: t.Description,
	}
	if t.Intervals != nil {
		clone.Intervals = make([]Interval, len(t.Intervals))
		copy(clone.Intervals, t.Intervals)
	}
	return clone
}

// String returns the task name for display purposes.
func (t *Task) String() string {
	return t.Name
}

func (t *Task) sortIntervals() {
	sort.SliceStable(t.Intervals, func(i, j int) bool {
		return t.Intervals[i].Start.Before(t.Intervals[j].Start)
	})
}

func (t *Task) dropInvalid() {
	kept := t.Intervals[:0]
	for _, iv := range t.Intervals {
		if iv.IsValid() {
			kept = append(kept, iv)
		}
	}
	t.Intervals = kept
}

// closeAt ends a running interval at now. Closing at or before the start
// leaves an invalid interval.
func (i Interval) closeAt(now time.Time) Interval {
	return NewInterval(i.Start, now)
}
