package save

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.json")

	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(2, "glow", "void main() {}"))

	// reopen from disk
	s2, err := Open(path)
	require.NoError(t, err)

	rec, err := s2.Load(2)
	require.NoError(t, err)
	assert.Equal(t, "glow", rec.Name)
	assert.Equal(t, "void main() {}", rec.ShaderText)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestEmptySlot(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "slots.json"))
	require.NoError(t, err)

	_, err = s.Load(0)
	assert.Error(t, err)
}

func TestSlotIndexBounds(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "slots.json"))
	require.NoError(t, err)

	assert.Error(t, s.Save(-1, "x", "y"))
	assert.Error(t, s.Save(SlotCount, "x", "y"))
	_, err = s.Load(SlotCount)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(0, "a", "b"))
	require.NoError(t, s.Clear(0))

	s2, err := Open(path)
	require.NoError(t, err)
	_, err = s2.Load(0)
	assert.Error(t, err)
}
