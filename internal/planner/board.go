package planner

import "time"

// Board is the single owner of the live planner state. Every mutating
// command runs against a deep copy of the current state, with the previous
// value pushed into history, and the result committed atomically. Callers
// must treat the state returned by State() as immutable.
type Board struct {
	current *State
	history History
}

// NewBoard creates a board over an empty state for the week containing now.
func NewBoard(now time.Time) *Board {
	return &Board{current: NewState(now)}
}

// NewBoardFromState creates a board over a previously persisted state, with
// empty history.
func NewBoardFromState(s *State) *Board {
	return &Board{current: s}
}

// State returns the current committed state.
func (b *Board) State() *State { return b.current }

// SetHistoryLimit overrides the undo stack depth.
func (b *Board) SetHistoryLimit(n int) { b.history.Limit = n }

// Apply runs one mutating command. The command receives a private deep copy;
// if it returns an error nothing is committed and no history is recorded.
func (b *Board) Apply(cmd func(*State) error) error {
	next := b.current.Clone()
	if err := cmd(next); err != nil {
		return err
	}
	b.history.Record(b.current)
	b.current = next
	return nil
}

// Navigate runs a command that moves around the plan without being a history
// event (week switching and other pure navigation).
func (b *Board) Navigate(cmd func(*State)) {
	next := b.current.Clone()
	cmd(next)
	b.current = next
}

// Undo restores the previous snapshot. Returns false when history is empty.
func (b *Board) Undo() bool {
	prev := b.history.Undo(b.current)
	if prev == nil {
		return false
	}
	b.current = prev
	return true
}

// Redo reapplies the most recently undone snapshot.
func (b *Board) Redo() bool {
	next := b.history.Redo(b.current)
	if next == nil {
		return false
	}
	b.current = next
	return true
}

// CanUndo reports whether Undo would do anything.
func (b *Board) CanUndo() bool { return b.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (b *Board) CanRedo() bool { return b.history.CanRedo() }
