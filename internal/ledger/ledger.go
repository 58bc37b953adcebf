// Package ledger holds the tasks of one day and applies text commands to
// them, keeping every recorded instant owned by exactly one task.
package ledger

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"timelogger/internal/domain"
	"timelogger/internal/errors"
	"timelogger/internal/logging"
	"timelogger/internal/repository"
	"timelogger/internal/validation"
)

// Clock returns the current instant.
type Clock func() time.Time

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock replaces time.Now.
func WithClock(clock Clock) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithValidator sets the validator used for new and renamed task names.
func WithValidator(v *validation.TaskValidator) Option {
	return func(l *Ledger) {
		l.validator = v
	}
}

// WithMaxHistory caps the number of undo snapshots. Zero keeps all of them.
func WithMaxHistory(n int) Option {
	return func(l *Ledger) {
		l.history.max = n
	}
}

// WithHiddenPrefix sets the name prefix that marks a task as unpaid.
func WithHiddenPrefix(prefix string) Option {
	return func(l *Ledger) {
		if prefix != "" {
			l.hiddenPrefix = prefix
		}
	}
}

// Ledger is the set of tasks for one day plus its undo and redo history.
// It is not safe for concurrent use.
type Ledger struct {
	store        repository.Store
	mapper       *domain.Mapper
	validator    *validation.TaskValidator
	clock        Clock
	hiddenPrefix string

	day     time.Time
	tasks   []*domain.Task
	history *history
}

// Open loads day from store.
func Open(ctx context.Context, store repository.Store, day time.Time, opts ...Option) (*Ledger, error) {
	if store == nil {
		return nil, errors.NewInvalidInputError("store", "", "a store is required")
	}
	l := &Ledger{
		store:        store,
		mapper:       domain.NewMapper(),
		validator:    validation.NewTaskValidator(),
		clock:        time.Now,
		hiddenPrefix: domain.HiddenPrefix,
		history:      &history{},
	}
	for _, opt := range opts {
		opt(l)
	}
	// stored instants keep microseconds, so sampled ones do too
	sample := l.clock
	l.clock = func() time.Time { return sample().Truncate(time.Microsecond) }
	if err := l.load(ctx, day); err != nil {
		return nil, err
	}
	return l, nil
}

// Day returns the midnight of the loaded day.
func (l *Ledger) Day() time.Time {
	return l.day
}

// Now samples the ledger clock.
func (l *Ledger) Now() time.Time {
	return l.clock()
}

// Tasks returns copies of the tasks in display order.
func (l *Ledger) Tasks() []*domain.Task {
	return cloneTasks(l.tasks)
}

// Task returns a copy of the named task.
func (l *Ledger) Task(name string) (*domain.Task, bool) {
	if t := l.find(name); t != nil {
		return t.Clone(), true
	}
	return nil, false
}

// IsUnpaid reports whether name carries the hidden prefix.
func (l *Ledger) IsUnpaid(name string) bool {
	return strings.HasPrefix(name, l.hiddenPrefix)
}

// CanUndo reports whether there is a snapshot to go back to.
func (l *Ledger) CanUndo() bool {
	return len(l.history.undo) > 0
}

// CanRedo reports whether an undone command can be reapplied.
func (l *Ledger) CanRedo() bool {
	return len(l.history.redo) > 0
}

// Save writes the current tasks to the store.
func (l *Ledger) Save(ctx context.Context) error {
	return l.store.Save(ctx, l.day, l.mapper.Task.ToRecords(l.tasks))
}

// load replaces the tasks with day's stored records and forgets all history.
func (l *Ledger) load(ctx context.Context, day time.Time) error {
	day = repository.StartOfDay(day)
	records, err := l.store.Load(ctx, day)
	if err != nil {
		return err
	}
	l.day = day
	l.tasks = l.mapper.Task.FromRecords(records)
	l.normalize()
	l.history.reset()
	logging.Debugf("ledger: loaded %d tasks for %s\n", len(l.tasks), repository.DayKey(day))
	return nil
}

func (l *Ledger) find(name string) *domain.Task {
	for _, t := range l.tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (l *Ledger) indexOf(name string) int {
	for i, t := range l.tasks {
		if t.Name == name {
			return i
		}
	}
	return -1
}

func (l *Ledger) exists(name string) bool {
	return l.find(name) != nil
}

// resolve maps a reference to a task name. An existing name wins, then a
// display index, then the reference itself.
func (l *Ledger) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if l.exists(ref) || !isDigits(ref) {
		return ref
	}
	i, err := strconv.Atoi(ref)
	if err != nil || i >= len(l.tasks) {
		return ref
	}
	return l.tasks[i].Name
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalize joins touching intervals and orders tasks by their first start.
// Tasks without a start keep their relative order after the others.
func (l *Ledger) normalize() {
	for _, t := range l.tasks {
		t.MergeTouchingIntervals()
	}
	sort.SliceStable(l.tasks, func(i, j int) bool {
		a, aok := l.tasks[i].EarliestStart()
		b, bok := l.tasks[j].EarliestStart()
		switch {
		case aok && bok:
			return a.Before(b)
		default:
			return aok && !bok
		}
	})
}

func cloneTasks(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
