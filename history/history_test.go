package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(n int) Entry {
	return Entry{ShaderText: fmt.Sprintf("shader-%d", n)}
}

func TestUndoRedo(t *testing.T) {
	s := NewStack(50)
	const n = 5
	for i := 1; i <= n; i++ {
		s.Push(entry(i))
	}

	// undo returns the entry pushed at step N-1
	e, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, entry(n-1), e)

	// redo returns to the entry pushed at step N
	e, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, entry(n), e)

	// redo at the tip is a no-op
	_, ok = s.Redo()
	assert.False(t, ok)
}

func TestUndoAtBottomIsNoOp(t *testing.T) {
	s := NewStack(50)

	_, ok := s.Undo()
	assert.False(t, ok)

	s.Push(entry(1))
	_, ok = s.Undo()
	assert.False(t, ok, "single entry: cursor 0 has nothing older")
	assert.Equal(t, 0, s.Cursor())
}

func TestEviction(t *testing.T) {
	s := NewStack(50)
	for i := 1; i <= 51; i++ {
		s.Push(entry(i))
	}

	assert.Equal(t, 50, s.Len())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, entry(51), cur)

	// walk back to the oldest remaining entry: entry 1 was evicted
	for s.CanUndo() {
		s.Undo()
	}
	oldest, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, entry(2), oldest)
}

func TestPushTruncatesForwardHistory(t *testing.T) {
	s := NewStack(50)
	for i := 1; i <= 3; i++ {
		s.Push(entry(i))
	}
	s.Undo() // cursor at entry 2

	s.Push(entry(4))

	assert.Equal(t, 3, s.Len(), "entry 3 was discarded")
	assert.False(t, s.CanRedo())
	cur, _ := s.Current()
	assert.Equal(t, entry(4), cur)

	e, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, entry(2), e)
}

func TestCursorStaysInRange(t *testing.T) {
	s := NewStack(3)
	for i := 1; i <= 10; i++ {
		s.Push(entry(i))
		assert.GreaterOrEqual(t, s.Cursor(), 0)
		assert.Less(t, s.Cursor(), s.Len())
	}
	assert.Equal(t, 3, s.Len())
}

func TestCurrentOnEmpty(t *testing.T) {
	s := NewStack(50)
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, -1, s.Cursor())
}
