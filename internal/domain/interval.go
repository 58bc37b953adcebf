package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// RangeSeparator splits a range string into its start and end tokens.
	RangeSeparator = "-"
	// NowToken as the end of a range means the interval is still running.
	NowToken = "now"
	// ClockLayout is the layout used to render interval bounds.
	ClockLayout = "15:04"
)

// Separators used when rendering a task's span.
const (
	SpanSeparator      = "-->"
	MultiSpanSeparator = "-+>"
)

var clockPattern = regexp.MustCompile(`^(2[0-3]|[0-1]?[0-9])(:[0-5][0-9])?$`)

// farFuture stands in for an absent end when comparing bounds.
var farFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// Conflict describes what happens to an existing interval when another
// interval claims part of its time.
type Conflict int

const (
	Unchanged Conflict = iota + 1
	Split
	CutoffAtStart
	CutoffAtEnd
	Removed
)

// String returns the string representation of the conflict
func (c Conflict) String() string {
	switch c {
	case Unchanged:
		return "unchanged"
	case Split:
		return "split"
	case CutoffAtStart:
		return "cutoff_at_start"
	case CutoffAtEnd:
		return "cutoff_at_end"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Interval is a span of time with a start and an optional end.
// A zero Start marks the interval invalid; a zero End means it is still running.
// Intervals are plain values: trimming returns a new Interval.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates an interval from explicit bounds. Equal or inverted
// bounds, or a missing start, produce an invalid interval.
func NewInterval(start, end time.Time) Interval {
	if start.IsZero() {
		return Interval{}
	}
	if !end.IsZero() && !start.Before(end) {
		return Interval{}
	}
	return Interval{Start: start, End: end}
}

// NewOpenInterval creates a running interval beginning at now.
func NewOpenInterval(now time.Time) Interval {
	return Interval{Start: now}
}

// ParseRange parses strings like "9-17", "10:15-12" or "8:30-now" into an
// interval on the given day. Malformed input yields an invalid interval.
func ParseRange(rangeString string, day time.Time) Interval {
	parts := strings.Split(rangeString, RangeSeparator)
	if len(parts) != 2 {
		return Interval{}
	}
	start, ok := ParseClock(parts[0], day)
	if !ok {
		return Interval{}
	}
	if parts[1] == NowToken {
		return Interval{Start: start}
	}
	end, ok := ParseClock(parts[1], day)
	if !ok {
		return Interval{}
	}
	return NewInterval(start, end)
}

// IsValidRange reports whether s has exactly one separator and both sides
// are clock tokens. The end may be "now".
func IsValidRange(s string) bool {
	parts := strings.Split(s, RangeSeparator)
	if len(parts) != 2 {
		return false
	}
	if _, _, ok := parseClockToken(parts[0]); !ok {
		return false
	}
	if parts[1] == NowToken {
		return true
	}
	_, _, ok := parseClockToken(parts[1])
	return ok
}

// ParseClock resolves an "hour[:minute]" token to an instant on day.
func ParseClock(token string, day time.Time) (time.Time, bool) {
	hour, minute, ok := parseClockToken(token)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), true
}

func parseClockToken(token string) (int, int, bool) {
	matches := clockPattern.FindStringSubmatch(token)
	if matches == nil {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, false
	}
	minute := 0
	if matches[2] != "" {
		minute, err = strconv.Atoi(strings.TrimPrefix(matches[2], ":"))
		if err != nil {
			return 0, 0, false
		}
	}
	return hour, minute, true
}

// IsValid returns true if the interval has a start.
func (i Interval) IsValid() bool {
	return !i.Start.IsZero()
}

// IsOpen returns true if the interval has no end yet.
func (i Interval) IsOpen() bool {
	return i.End.IsZero()
}

func (i Interval) endOrFarFuture() time.Time {
	if i.End.IsZero() {
		return farFuture
	}
	return i.End
}

// Classify reports what would become of i if other were carved out of it.
// An open other never conflicts: running intervals are ended by stopping,
// not by overlap resolution.
func (i Interval) Classify(other Interval) Conflict {
	if !i.IsValid() || !other.IsValid() || other.IsOpen() {
		return Unchanged
	}
	start, end := i.Start, i.endOrFarFuture()
	switch {
	case start.Before(other.Start) && end.After(other.End):
		return Split
	case !start.Before(other.Start) && start.Before(other.End) && end.After(other.End):
		return CutoffAtStart
	case start.Before(other.Start) && end.After(other.Start) && !end.After(other.End):
		return CutoffAtEnd
	case !start.Before(other.Start) && !end.After(other.End):
		return Removed
	default:
		return Unchanged
	}
}

// TrimAfterStartOf returns i ending where other starts.
func (i Interval) TrimAfterStartOf(other Interval) Interval {
	i.End = other.Start
	return i
}

// TrimBeforeEndOf returns i starting where other ends.
func (i Interval) TrimBeforeEndOf(other Interval) Interval {
	i.Start = other.End
	return i
}

// Contains reports whether t lies strictly after the start and before the end.
func (i Interval) Contains(t time.Time) bool {
	if !i.IsValid() || !i.Start.Before(t) {
		return false
	}
	return i.IsOpen() || t.Before(i.End)
}

// Duration returns the length of the interval, measuring running intervals up to now.
func (i Interval) Duration(now time.Time) time.Duration {
	if !i.IsValid() {
		return 0
	}
	end := i.End
	if i.IsOpen() {
		end = now
	}
	if d := end.Sub(i.Start); d > 0 {
		return d
	}
	return 0
}

// Hours returns Duration in hours.
func (i Interval) Hours(now time.Time) float64 {
	return i.Duration(now).Hours()
}

// Format renders the interval as HH:MM<sep>HH:MM or HH:MM<sep>now.
func (i Interval) Format(sep string) string {
	if !i.IsValid() {
		return "invalid"
	}
	end := NowToken
	if !i.IsOpen() {
		end = i.End.Format(ClockLayout)
	}
	return i.Start.Format(ClockLayout) + sep + end
}

// String renders the interval with the range separator.
func (i Interval) String() string {
	return i.Format(RangeSeparator)
}

// Equal reports whether both bounds are the same instants.
func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}
