package planner

// DefaultHistoryLimit bounds the undo stack when no explicit limit is set;
// the oldest snapshot is dropped first.
const DefaultHistoryLimit = 100

// History keeps bounded past/future snapshot stacks for undo/redo. Snapshots
// are whole deep-copied State values, so restoring one can never alias live
// structures.
type History struct {
	Limit  int
	past   []*State
	future []*State
}

// Record pushes the pre-mutation state onto the past stack and clears the
// redo stack, as any new command invalidates previously undone futures.
func (h *History) Record(prev *State) {
	limit := h.Limit
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	h.past = append(h.past, prev)
	if len(h.past) > limit {
		h.past = h.past[len(h.past)-limit:]
	}
	h.future = nil
}

// Undo exchanges the current state for the most recent past snapshot,
// keeping the current one on the redo stack. Returns nil when there is
// nothing to undo.
func (h *History) Undo(current *State) *State {
	if len(h.past) == 0 {
		return nil
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return prev
}

// Redo is the mirror of Undo.
func (h *History) Redo(current *State) *State {
	if len(h.future) == 0 {
		return nil
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return next
}

// CanUndo reports whether a past snapshot is available.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether an undone snapshot is available.
func (h *History) CanRedo() bool { return len(h.future) > 0 }
