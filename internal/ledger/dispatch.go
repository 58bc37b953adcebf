package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timelogger/internal/domain"
	"timelogger/internal/logging"
	"timelogger/internal/repository"
)

// Command words understood by Execute.
const (
	CmdStop      = "stop"
	CmdStopShort = "x"
	CmdRemove    = "rm"
	CmdDescribe  = "desc"
	CmdUndo      = "undo"
	CmdRedo      = "redo"
	CmdPrev      = "prev"
	CmdPrevShort = "<"
	CmdNext      = "next"
	CmdNextShort = ">"

	// Delimiter joins the references of a compound command like a=b=c.
	Delimiter = "="
)

// Op identifies what a command did.
type Op int

const (
	OpNone Op = iota
	OpRefresh
	OpSwitch
	OpInsert
	OpMerge
	OpRename
	OpRemove
	OpStop
	OpDescribe
	OpUndo
	OpRedo
	OpPrevDay
	OpNextDay
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpRefresh:
		return "refresh"
	case OpSwitch:
		return "switch"
	case OpInsert:
		return "insert"
	case OpMerge:
		return "merge"
	case OpRename:
		return "rename"
	case OpRemove:
		return "remove"
	case OpStop:
		return "stop"
	case OpDescribe:
		return "describe"
	case OpUndo:
		return "undo"
	case OpRedo:
		return "redo"
	case OpPrevDay:
		return "prev_day"
	case OpNextDay:
		return "next_day"
	default:
		return "unknown"
	}
}

// Result describes the outcome of one command.
type Result struct {
	Op      Op
	Message string
	// Changed is true when the task list differs from before the command.
	Changed bool
}

// Execute applies one command line to the ledger. Commands that change the
// tasks are recorded for undo and saved. Malformed commands return OpNone
// and leave the ledger untouched; errors come only from name validation and
// the store.
func (l *Ledger) Execute(ctx context.Context, line string) (Result, error) {
	line = strings.TrimSpace(line)
	now := l.clock()

	var (
		res Result
		err error
	)
	switch line {
	case "":
		res = Result{Op: OpRefresh}
	case CmdUndo:
		res, err = l.undo(ctx)
	case CmdRedo:
		res, err = l.redo(ctx)
	case CmdPrev, CmdPrevShort:
		res, err = l.navigate(ctx, -1, OpPrevDay)
	case CmdNext, CmdNextShort:
		res, err = l.navigate(ctx, 1, OpNextDay)
	default:
		res, err = l.mutate(ctx, func() (Result, error) {
			return l.apply(line, now)
		})
	}
	logging.Debugf("ledger: %q -> %s changed=%t\n", line, res.Op, res.Changed)
	return res, err
}

// mutate runs fn, then normalizes, records and saves if anything changed.
func (l *Ledger) mutate(ctx context.Context, fn func() (Result, error)) (Result, error) {
	before := cloneTasks(l.tasks)
	res, err := fn()
	if err != nil {
		l.tasks = before
		return Result{Op: OpNone}, err
	}
	l.normalize()
	if sameTasks(before, l.tasks) {
		return res, nil
	}
	res.Changed = true
	l.history.record(before)
	return res, l.Save(ctx)
}

func (l *Ledger) apply(line string, now time.Time) (Result, error) {
	switch {
	case line == CmdStop || line == CmdStopShort:
		l.stopAll(now)
		return Result{Op: OpStop, Message: "stopped"}, nil
	case strings.HasPrefix(line, CmdRemove+" "):
		return l.remove(l.resolve(strings.TrimPrefix(line, CmdRemove+" "))), nil
	case strings.HasPrefix(line, CmdDescribe+" "):
		return l.describe(strings.TrimPrefix(line, CmdDescribe+" ")), nil
	}

	parts := strings.Split(line, Delimiter)
	refs := make([]string, len(parts))
	for i, p := range parts {
		refs[i] = l.resolve(p)
	}
	return l.dispatch(line, refs, now)
}

// dispatch applies a compound a[=b[=c...]] command.
func (l *Ledger) dispatch(line string, refs []string, now time.Time) (Result, error) {
	if len(refs) > 1 {
		for _, ref := range refs {
			if strings.TrimSpace(ref) == "" {
				return notUnderstood(line), nil
			}
		}
	}
	if len(refs) == 1 {
		return l.switchTo(refs[0], now)
	}
	if len(refs) == 2 && domain.IsValidRange(refs[1]) {
		return l.insertRange(refs[0], refs[1], now)
	}

	last := len(refs) - 1
	for _, ref := range refs[:last] {
		if !l.exists(ref) {
			return notUnderstood(line), nil
		}
	}
	if l.exists(refs[last]) {
		return l.merge(line, refs, now), nil
	}
	return l.mergeAndRename(refs[:last], refs[last], now)
}

func notUnderstood(line string) Result {
	return Result{Op: OpNone, Message: fmt.Sprintf("nothing to do for %q", line)}
}

// switchTo stops the running task and starts name, creating it if needed.
func (l *Ledger) switchTo(name string, now time.Time) (Result, error) {
	target := l.find(name)
	if target == nil {
		valid, err := l.validator.GetValidTaskName(name)
		if err != nil {
			return Result{}, err
		}
		target = domain.NewTask(valid)
		l.tasks = append(l.tasks, target)
	}
	for _, t := range l.tasks {
		if t != target {
			t.Stop(now)
		}
	}
	target.Start(now)
	return Result{Op: OpSwitch, Message: "started " + target.Name}, nil
}

// insertRange gives name the span of rangeString, taking it away from every
// task that held part of it. A range ending in "now" also stops the running
// task and claims the time up to now.
func (l *Ledger) insertRange(name, rangeString string, now time.Time) (Result, error) {
	if !l.exists(name) {
		valid, err := l.validator.GetValidTaskName(name)
		if err != nil {
			return Result{}, err
		}
		name = valid
	}
	iv := domain.ParseRange(rangeString, l.day)
	if !iv.IsValid() {
		return Result{Op: OpNone, Message: fmt.Sprintf("%s is not a forward range", rangeString)}, nil
	}

	claim := iv
	if iv.IsOpen() {
		l.stopAll(now)
		claim = domain.NewInterval(iv.Start, now)
	}
	for _, t := range l.tasks {
		t.RemoveConflictsWith(claim)
	}

	target := l.find(name)
	if target == nil {
		target = domain.NewTask(name)
		l.tasks = append(l.tasks, target)
	}
	target.Insert(iv)
	return Result{Op: OpInsert, Message: fmt.Sprintf("%s %s", target.Name, iv)}, nil
}

// merge folds every named task into the first one, left to right.
func (l *Ledger) merge(line string, refs []string, now time.Time) Result {
	names := distinct(refs)
	if len(names) < 2 {
		return notUnderstood(line)
	}
	keep := l.mergeInto(names, now)
	return Result{Op: OpMerge, Message: fmt.Sprintf("merged %s into %s", strings.Join(names[1:], ", "), keep.Name)}
}

// mergeAndRename merges the existing tasks and gives the result newName.
func (l *Ledger) mergeAndRename(existing []string, newName string, now time.Time) (Result, error) {
	valid, err := l.validator.GetValidTaskName(newName)
	if err != nil {
		return Result{}, err
	}
	names := distinct(existing)
	keep := l.mergeInto(names, now)
	old := keep.Name
	keep.Name = valid
	if len(names) > 1 {
		return Result{Op: OpRename, Message: fmt.Sprintf("merged %s into %s", strings.Join(names, ", "), valid)}, nil
	}
	return Result{Op: OpRename, Message: fmt.Sprintf("renamed %s to %s", old, valid)}, nil
}

func (l *Ledger) mergeInto(names []string, now time.Time) *domain.Task {
	keep := l.find(names[0])
	for _, name := range names[1:] {
		other := l.find(name)
		keep.MergeWith(other, now)
		l.delete(name)
	}
	return keep
}

func (l *Ledger) remove(name string) Result {
	if !l.exists(name) {
		return Result{Op: OpNone, Message: fmt.Sprintf("no task %q", name)}
	}
	l.delete(name)
	return Result{Op: OpRemove, Message: "removed " + name}
}

func (l *Ledger) delete(name string) {
	if i := l.indexOf(name); i >= 0 {
		l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	}
}

// describe handles "desc <ref> <text>"; empty text clears the description.
func (l *Ledger) describe(args string) Result {
	ref, text, _ := strings.Cut(strings.TrimSpace(args), " ")
	name := l.resolve(ref)
	t := l.find(name)
	if t == nil {
		return Result{Op: OpNone, Message: fmt.Sprintf("no task %q", name)}
	}
	t.Description = strings.TrimSpace(text)
	return Result{Op: OpDescribe, Message: "described " + name}
}

func (l *Ledger) stopAll(now time.Time) {
	for _, t := range l.tasks {
		t.Stop(now)
	}
}

func (l *Ledger) undo(ctx context.Context) (Result, error) {
	prev, ok := l.history.back(cloneTasks(l.tasks))
	if !ok {
		return Result{Op: OpUndo, Message: "nothing to undo"}, nil
	}
	l.tasks = prev
	return Result{Op: OpUndo, Message: "undone", Changed: true}, l.Save(ctx)
}

func (l *Ledger) redo(ctx context.Context) (Result, error) {
	next, ok := l.history.forward(cloneTasks(l.tasks))
	if !ok {
		return Result{Op: OpRedo, Message: "nothing to redo"}, nil
	}
	l.tasks = next
	return Result{Op: OpRedo, Message: "redone", Changed: true}, l.Save(ctx)
}

// navigate loads the day delta days away. History does not carry over.
func (l *Ledger) navigate(ctx context.Context, delta int, op Op) (Result, error) {
	if err := l.load(ctx, l.day.AddDate(0, 0, delta)); err != nil {
		return Result{Op: OpNone}, err
	}
	return Result{Op: op, Message: repository.DayKey(l.day)}, nil
}

func distinct(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
