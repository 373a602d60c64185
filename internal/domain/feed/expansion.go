package feed

import "github.com/google/uuid"

// ExpandMode controls how many comment threads may be open at once.
type ExpandMode int

const (
	// ExpandSingle keeps at most one thread open; expanding a photo
	// collapses whichever one was open before.
	ExpandSingle ExpandMode = iota
	// ExpandMulti lets threads open and close independently.
	ExpandMulti
)

// ExpansionState tracks which photos have their comment thread open.
// It is presentation state, scoped to one view, and survives likes and
// comment writes but not a reload of the view.
type ExpansionState struct {
	mode     ExpandMode
	expanded map[uuid.UUID]bool
}

// NewExpansionState creates expansion state in the given mode.
func NewExpansionState(mode ExpandMode) *ExpansionState {
	return &ExpansionState{mode: mode, expanded: make(map[uuid.UUID]bool)}
}

// Toggle flips the thread for a photo and returns its new state.
func (e *ExpansionState) Toggle(id uuid.UUID) bool {
	if e.expanded[id] {
		delete(e.expanded, id)
		return false
	}
	if e.mode == ExpandSingle {
		for k := range e.expanded {
			delete(e.expanded, k)
		}
	}
	e.expanded[id] = true
	return true
}

// IsExpanded reports whether a photo's thread is open.
func (e *ExpansionState) IsExpanded(id uuid.UUID) bool {
	return e.expanded[id]
}

// Reset collapses every thread.
func (e *ExpansionState) Reset() {
	e.expanded = make(map[uuid.UUID]bool)
}
