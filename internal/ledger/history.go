package ledger

import "timelogger/internal/domain"

// history keeps full copies of the task list. Snapshots never share
// intervals with the live tasks.
type history struct {
	undo [][]*domain.Task
	redo [][]*domain.Task
	max  int
}

// record stores the state before a changing command and drops the redo stack.
func (h *history) record(before []*domain.Task) {
	h.undo = append(h.undo, before)
	if h.max > 0 && len(h.undo) > h.max {
		h.undo = h.undo[len(h.undo)-h.max:]
	}
	h.redo = nil
}

// back returns the previous state and remembers current for redo.
func (h *history) back(current []*domain.Task) ([]*domain.Task, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return last, true
}

// forward returns the state undone last and remembers current for undo.
func (h *history) forward(current []*domain.Task) ([]*domain.Task, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return last, true
}

func (h *history) reset() {
	h.undo = nil
	h.redo = nil
}

func sameTasks(a, b []*domain.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Description != b[i].Description {
			return false
		}
		if len(a[i].Intervals) != len(b[i].Intervals) {
			return false
		}
		for j := range a[i].Intervals {
			if !a[i].Intervals[j].Equal(b[i].Intervals[j]) {
				return false
			}
		}
	}
	return true
}
