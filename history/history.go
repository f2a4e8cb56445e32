// Package history keeps a bounded stack of snapshots of the user-editable
// state, with a cursor supporting undo and redo. It has no GPU dependency;
// the engine captures entries and replays them through its own pipeline.
package history

import "github.com/richinsley/goshaderpaint/transform"

// Capacity is the maximum number of retained entries. Pushing beyond it
// evicts the oldest entry.
const Capacity = 50

// Canvas is the view state captured alongside the shader and transform:
// the canvas rectangle, zoom factor, background color and transparency flag.
type Canvas struct {
	X      int
	Y      int
	Width  int
	Height int

	Zoom        float64
	Background  [3]float32
	Transparent bool
}

// Entry is an immutable snapshot of everything undo/redo restores.
type Entry struct {
	ShaderText string
	Transform  transform.State
	Canvas     Canvas
}

// Stack is a bounded snapshot stack with a cursor. The cursor always points
// at the entry representing the current state; it stays within
// [0, Len()-1] whenever the stack is non-empty.
//
// Pushing while the cursor is behind the tip truncates the forward (redo)
// entries first, so an edit made mid-undo starts a fresh branch. This is the
// standard undo-tree resolution of the ambiguity left by mixing undo chains
// and new edits.
type Stack struct {
	entries  []Entry
	cursor   int
	capacity int
}

// NewStack returns an empty stack bounded to the given capacity.
// Non-positive capacities use the package default.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = Capacity
	}
	return &Stack{cursor: -1, capacity: capacity}
}

// Len returns the number of retained entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Cursor returns the current cursor index, -1 when empty.
func (s *Stack) Cursor() int {
	return s.cursor
}

// Current returns the entry at the cursor.
func (s *Stack) Current() (Entry, bool) {
	if s.cursor < 0 || s.cursor >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[s.cursor], true
}

// Push appends an entry at the tip, truncating any redo entries past the
// cursor and evicting the oldest entry if the stack is full. The cursor
// moves to the new tip.
func (s *Stack) Push(e Entry) {
	if s.cursor < len(s.entries)-1 {
		s.entries = s.entries[:s.cursor+1]
	}
	s.entries = append(s.entries, e)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[1:]
	}
	s.cursor = len(s.entries) - 1
}

// CanUndo reports whether an older entry exists.
func (s *Stack) CanUndo() bool {
	return s.cursor > 0
}

// CanRedo reports whether a newer entry exists.
func (s *Stack) CanRedo() bool {
	return s.cursor >= 0 && s.cursor < len(s.entries)-1
}

// Undo moves the cursor one entry back and returns the entry there. At the
// bottom of the stack it is a no-op and reports false.
func (s *Stack) Undo() (Entry, bool) {
	if !s.CanUndo() {
		return Entry{}, false
	}
	s.cursor--
	return s.entries[s.cursor], true
}

// Redo moves the cursor one entry forward and returns the entry there. At
// the tip it is a no-op and reports false.
func (s *Stack) Redo() (Entry, bool) {
	if !s.CanRedo() {
		return Entry{}, false
	}
	s.cursor++
	return s.entries[s.cursor], true
}
