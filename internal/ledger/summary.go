package ledger

import "time"

// Row is one task as shown in the summary.
type Row struct {
	Index       int
	Name        string
	Description string
	Active      bool
	Unpaid      bool
	TotalHours  float64
	SpanLabel   string
}

// Summary is the presentation view of a ledger at one instant.
type Summary struct {
	Day            time.Time
	Now            time.Time
	Rows           []Row
	TotalHoursAll  float64
	TotalHoursPaid float64
	// ActiveSince is the start of the running interval, zero when no task runs.
	ActiveSince time.Time
	CanUndo     bool
	CanRedo     bool
}

// Summary measures the tasks at the ledger clock's current time.
func (l *Ledger) Summary() Summary {
	return l.SummaryAt(l.clock())
}

// SummaryAt measures the tasks with running intervals ending at now.
func (l *Ledger) SummaryAt(now time.Time) Summary {
	s := Summary{
		Day:     l.day,
		Now:     now,
		Rows:    make([]Row, 0, len(l.tasks)),
		CanUndo: l.CanUndo(),
		CanRedo: l.CanRedo(),
	}
	for i, t := range l.tasks {
		if t.IsActive() {
			s.ActiveSince = t.Intervals[len(t.Intervals)-1].Start
		}
		row := Row{
			Index:       i,
			Name:        t.Name,
			Description: t.Description,
			Active:      t.IsActive(),
			Unpaid:      t.IsUnpaid(l.hiddenPrefix),
			TotalHours:  t.TotalHours(now),
			SpanLabel:   t.SpanLabel(),
		}
		s.Rows = append(s.Rows, row)
		s.TotalHoursAll += row.TotalHours
		if !row.Unpaid {
			s.TotalHoursPaid += row.TotalHours
		}
	}
	return s
}

// ActiveTask returns the name of the running task, if any.
func (s Summary) ActiveTask() (string, bool) {
	for _, r := range s.Rows {
		if r.Active {
			return r.Name, true
		}
	}
	return "", false
}
