// Package history keeps bounded undo and redo stacks of dungeon snapshots.
package history

import "github.com/samdwyer/dungeondesigner/internal/world"

// DefaultDepth is the number of undo steps kept when none is configured.
const DefaultDepth = 64

// Entry is a labelled snapshot.
type Entry struct {
	Label    string
	Snapshot world.Snapshot
}

// History records the state before each edit.
type History struct {
	depth int
	undo  []Entry
	redo  []Entry
}

// New creates a history that keeps at most depth undo steps.
// A depth of zero or less uses DefaultDepth.
func New(depth int) *History {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &History{depth: depth}
}

// Record saves the state before an edit named label. Any redo steps are dropped.
func (h *History) Record(label string, before world.Snapshot) {
	h.undo = append(h.undo, Entry{Label: label, Snapshot: before})
	if len(h.undo) > h.depth {
		h.undo = h.undo[len(h.undo)-h.depth:]
	}
	h.redo = h.redo[:0]
}

// Undo pops the last edit. current is kept for Redo.
func (h *History) Undo(current world.Snapshot) (world.Snapshot, string, bool) {
	if len(h.undo) == 0 {
		return world.Snapshot{}, "", false
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, Entry{Label: e.Label, Snapshot: current})
	return e.Snapshot, e.Label, true
}

// Redo re-applies the last undone edit. current is kept for Undo.
func (h *History) Redo(current world.Snapshot) (world.Snapshot, string, bool) {
	if len(h.redo) == 0 {
		return world.Snapshot{}, "", false
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, Entry{Label: e.Label, Snapshot: current})
	return e.Snapshot, e.Label, true
}

// CanUndo reports whether an undo step exists.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo step exists.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of undo steps.
func (h *History) Len() int { return len(h.undo) }

// Reset drops every step.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}
