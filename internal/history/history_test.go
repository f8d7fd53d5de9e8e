package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitResetsHistory(t *testing.T) {
	e := NewEngine()
	e.Init("# One")

	assert.False(t, e.CanUndo(), "a single entry cannot be undone")
	assert.False(t, e.CanRedo())
	assert.Nil(t, e.Undo())
	assert.Nil(t, e.Redo())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e := NewEngine()
	e.Init("X")
	e.PushImmediate("Y")

	require.True(t, e.CanUndo())

	entry := e.Undo()
	require.NotNil(t, entry)
	assert.Equal(t, "X", entry.Markdown)

	require.True(t, e.CanRedo())
	entry = e.Redo()
	require.NotNil(t, entry)
	assert.Equal(t, "Y", entry.Markdown)
	assert.False(t, e.CanRedo())
}

func TestDuplicatePushIsNoop(t *testing.T) {
	e := NewEngine()
	e.Init("X")
	e.PushImmediate("Y")
	before := e.Len()

	e.PushImmediate("Y")
	assert.Equal(t, before, e.Len(), "pushing the current state must not grow the stack")
}

func TestNewEditClearsRedo(t *testing.T) {
	e := NewEngine()
	e.Init("A")
	e.PushImmediate("B")
	e.Undo()
	require.True(t, e.CanRedo())

	e.PushImmediate("C")
	assert.False(t, e.CanRedo(), "a fresh edit invalidates redo history")
}

func TestMaxDepthTrimsOldest(t *testing.T) {
	e := NewEngine(WithMaxDepth(3))
	e.Init("0")
	for i := 1; i <= 10; i++ {
		e.PushImmediate(fmt.Sprintf("%d", i))
	}

	assert.Equal(t, 3, e.Len())

	// The most recent states survive
	entry := e.Undo()
	require.NotNil(t, entry)
	assert.Equal(t, "9", entry.Markdown)
	entry = e.Undo()
	require.NotNil(t, entry)
	assert.Equal(t, "8", entry.Markdown)
	assert.False(t, e.CanUndo(), "oldest entries are gone")
}

func TestDebouncedPushCollapsesBurst(t *testing.T) {
	e := NewEngine(WithDebounce(10 * time.Millisecond))
	e.Init("start")

	e.Push("a")
	e.Push("ab")
	e.Push("abc")
	e.Flush()

	assert.Equal(t, 2, e.Len(), "a typing burst should produce one checkpoint")
	entry := e.Undo()
	require.NotNil(t, entry)
	assert.Equal(t, "start", entry.Markdown)
}

func TestImmediateCancelsPendingDebounce(t *testing.T) {
	e := NewEngine(WithDebounce(time.Hour))
	e.Init("start")

	e.Push("typed")
	e.PushImmediate("structural")
	e.Flush() // the debounced "typed" push must not fire afterwards

	assert.Equal(t, 2, e.Len())
	entry := e.Undo()
	require.NotNil(t, entry)
	assert.Equal(t, "start", entry.Markdown)
}

func TestClear(t *testing.T) {
	e := NewEngine()
	e.Init("X")
	e.PushImmediate("Y")
	e.Clear()

	assert.Equal(t, 0, e.Len())
	assert.False(t, e.CanUndo())
	assert.False(t, e.CanRedo())
}
