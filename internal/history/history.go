// Package history implements the undo/redo checkpoint engine. The
// canonical markdown string is checkpointed either immediately (before
// structural edits) or debounced (during continuous typing).
package history

import (
	"time"

	"github.com/editkit/mdsurface/internal/debounce"
)

// DefaultMaxDepth is the default bound on the undo stack
const DefaultMaxDepth = 100

// DefaultDebounce is the default quiet period before a typed edit is
// checkpointed
const DefaultDebounce = 300 * time.Millisecond

// Entry is one checkpoint. The shape is plain data so a host can
// persist it across sessions if it wants to.
type Entry struct {
	Markdown       string `json:"markdown" toml:"markdown"`
	Timestamp      int64  `json:"timestamp" toml:"timestamp"`
	SelectionStart *int   `json:"selectionStart,omitempty" toml:"selection_start,omitempty"`
	SelectionEnd   *int   `json:"selectionEnd,omitempty" toml:"selection_end,omitempty"`
}

// Engine holds the undo and redo stacks. The top of the undo stack is
// always the current state, so stepping back needs at least two
// entries.
type Engine struct {
	undo     []Entry
	redo     []Entry
	maxDepth int
	window   time.Duration
	deb      *debounce.Debouncer
}

// Option configures an Engine
type Option func(*Engine)

// WithMaxDepth bounds the undo stack; oldest entries are dropped first
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithDebounce sets the quiet period for debounced pushes
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.window = d
		}
	}
}

// NewEngine creates an engine with an empty history
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		maxDepth: DefaultMaxDepth,
		window:   DefaultDebounce,
		deb:      debounce.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init resets the history to a single entry holding the given state
func (e *Engine) Init(markdown string) {
	e.deb.Cancel()
	e.undo = []Entry{{Markdown: markdown, Timestamp: time.Now().UnixMilli()}}
	e.redo = nil
}

// Push checkpoints markdown after the debounce window elapses. A
// following Push restarts the window, so a typing burst produces one
// checkpoint.
func (e *Engine) Push(markdown string) {
	e.deb.Schedule(e.window, func() {
		e.push(markdown)
	})
}

// PushImmediate cancels any pending debounced push and checkpoints
// synchronously. Used before destructive or structural actions so each
// is individually undoable.
func (e *Engine) PushImmediate(markdown string) {
	e.deb.Cancel()
	e.push(markdown)
}

// Flush forces a pending debounced push to run now
func (e *Engine) Flush() {
	e.deb.Flush()
}

func (e *Engine) push(markdown string) {
	// Duplicate of the current state: no checkpoint
	if len(e.undo) > 0 && e.undo[len(e.undo)-1].Markdown == markdown {
		return
	}
	e.undo = append(e.undo, Entry{Markdown: markdown, Timestamp: time.Now().UnixMilli()})
	if len(e.undo) > e.maxDepth {
		e.undo = e.undo[len(e.undo)-e.maxDepth:]
	}
	// A fresh edit invalidates redo history
	e.redo = nil
}

// CanUndo reports whether a previous state exists
func (e *Engine) CanUndo() bool {
	return len(e.undo) > 1
}

// CanRedo reports whether an undone state can be reapplied
func (e *Engine) CanRedo() bool {
	return len(e.redo) > 0
}

// Undo steps back one checkpoint and returns the new current entry, or
// nil when there is nothing to undo
func (e *Engine) Undo() *Entry {
	if !e.CanUndo() {
		return nil
	}
	top := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, top)
	cur := e.undo[len(e.undo)-1]
	return &cur
}

// Redo reapplies the most recently undone checkpoint, or returns nil
func (e *Engine) Redo() *Entry {
	if !e.CanRedo() {
		return nil
	}
	top := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, top)
	return &top
}

// Clear empties both stacks and drops any pending debounced push
func (e *Engine) Clear() {
	e.deb.Cancel()
	e.undo = nil
	e.redo = nil
}

// Len returns the number of entries on the undo stack
func (e *Engine) Len() int {
	return len(e.undo)
}
