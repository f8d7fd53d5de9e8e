// Package editor ties the codec, selection engine, command layer and
// history together behind one facade. The facade owns the document
// tree and the canonical markdown value, and keeps the two in sync
// through debounced channels so bursts of edits collapse into single
// serialize, history and rehighlight passes.
package editor

import (
	"sync"
	"time"

	"github.com/editkit/mdsurface/internal/command"
	"github.com/editkit/mdsurface/internal/debounce"
	"github.com/editkit/mdsurface/internal/dom"
	"github.com/editkit/mdsurface/internal/history"
	"github.com/editkit/mdsurface/internal/markdown"
	"github.com/editkit/mdsurface/internal/sanitize"
	"github.com/editkit/mdsurface/internal/selection"
)

// Mode selects the editing surface
type Mode string

const (
	ModeWYSIWYG  Mode = "wysiwyg"
	ModeMarkdown Mode = "markdown"
)

// Default debounce windows
const (
	DefaultSyncDebounce      = 100 * time.Millisecond
	DefaultHistoryDebounce   = 300 * time.Millisecond
	DefaultHighlightDebounce = 300 * time.Millisecond
)

// Options configures an Editor. Zero values pick the defaults.
type Options struct {
	HistoryDepth      int
	SyncDebounce      time.Duration
	HistoryDebounce   time.Duration
	HighlightDebounce time.Duration
	Highlight         markdown.HighlightFunc
	Prompter          command.Prompter
}

func (o Options) withDefaults() Options {
	if o.HistoryDepth <= 0 {
		o.HistoryDepth = history.DefaultMaxDepth
	}
	if o.SyncDebounce <= 0 {
		o.SyncDebounce = DefaultSyncDebounce
	}
	if o.HistoryDebounce <= 0 {
		o.HistoryDebounce = DefaultHistoryDebounce
	}
	if o.HighlightDebounce <= 0 {
		o.HighlightDebounce = DefaultHighlightDebounce
	}
	return o
}

// Editor is the facade over one document. Tree mutations run on the
// host's event loop; the mutex guards the canonical value and history
// against the debounce timer goroutines.
type Editor struct {
	mu   sync.Mutex
	opts Options
	mode Mode

	root   *dom.Node
	engine *selection.Engine
	cmd    *command.Commander
	hist   *history.Engine

	canonical string
	isSyncing bool
	onChange  func(string)

	syncDeb      *debounce.Debouncer
	highlightDeb *debounce.Debouncer
}

// New creates an editor over an initial markdown document
func New(md string, opts Options) *Editor {
	e := &Editor{
		opts:         opts.withDefaults(),
		mode:         ModeWYSIWYG,
		syncDeb:      debounce.New(),
		highlightDeb: debounce.New(),
	}
	e.hist = history.NewEngine(
		history.WithMaxDepth(e.opts.HistoryDepth),
		history.WithDebounce(e.opts.HistoryDebounce),
	)
	e.mu.Lock()
	e.attachLocked(md)
	e.hist.Init(e.canonical)
	e.mu.Unlock()
	return e
}

// attachLocked rebuilds the tree and its collaborators from markdown.
// Callers hold e.mu.
func (e *Editor) attachLocked(md string) {
	e.root = markdown.Render(md, &markdown.Options{Highlight: e.opts.Highlight})
	e.engine = selection.NewEngine(e.root)
	e.cmd = command.New(e.engine, e.root, e.opts.Prompter)
	e.cmd.SetHighlight(e.opts.Highlight)
	e.cmd.UndoFn = e.undo
	e.cmd.RedoFn = e.redo
	e.canonical = markdown.Serialize(e.root)
}

// Root exposes the document tree for rendering. The tree is owned by
// the editor; hosts must not mutate it directly.
func (e *Editor) Root() *dom.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// Mode returns the current editing surface
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// SetMode switches the editing surface, resyncing the document through
// the codec toward the destination mode
func (e *Editor) SetMode(mode Mode) {
	e.syncDeb.Flush()
	e.mu.Lock()
	defer e.mu.Unlock()
	if mode == e.mode {
		return
	}
	if mode == ModeWYSIWYG {
		// Coming back from raw markdown: re-render the canonical value
		e.isSyncing = true
		e.attachLocked(e.canonical)
		e.isSyncing = false
	}
	e.mode = mode
}

// SetMarkdown replaces the document from outside. The refresh is
// synchronous and does not emit a change: the content came from the
// host, echoing it back would loop.
func (e *Editor) SetMarkdown(md string) {
	e.syncDeb.Cancel()
	e.highlightDeb.Cancel()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.isSyncing = true
	e.attachLocked(md)
	e.isSyncing = false
	e.hist.PushImmediate(e.canonical)
}

// Markdown flushes any pending serialize pass and returns the
// canonical markdown value
func (e *Editor) Markdown() string {
	e.syncDeb.Flush()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canonical
}

// OnChange registers the debounced change callback. It receives the
// canonical markdown after each quiet period.
func (e *Editor) OnChange(fn func(md string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// SetSelection feeds a selection change into the command layer
func (e *Editor) SetSelection(sel selection.Selection) {
	e.cmd.SetSelection(sel)
}

// Selection returns the selection after the last operation
func (e *Editor) Selection() selection.Selection {
	return e.cmd.Selection()
}

// IsActive reports whether a format is active at the cursor
func (e *Editor) IsActive(tag string) bool {
	return e.cmd.IsActive(tag)
}

// CanUndo reports whether an undo step is available
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanUndo()
}

// CanRedo reports whether a redo step is available
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanRedo()
}

// Exec runs a named action. Structural actions checkpoint the current
// state first so a single undo reverts exactly one action.
func (e *Editor) Exec(action string) bool {
	if action == "undo" || action == "redo" {
		return e.cmd.Exec(action)
	}

	e.syncDeb.Flush()
	e.mu.Lock()
	e.hist.PushImmediate(e.canonical)
	e.mu.Unlock()

	ok := e.cmd.Exec(action)
	if ok {
		e.changed()
	}
	return ok
}

// InsertText inserts plain text at the cursor, replacing any selected
// content
func (e *Editor) InsertText(s string) bool {
	sel, ok := e.engine.InsertNodesAtCursor(e.cmd.Selection(), []*dom.Node{dom.NewText(s)})
	if !ok {
		return false
	}
	e.cmd.SetSelection(sel)
	e.changed()
	return true
}

// PasteHTML sanitizes an HTML fragment and inserts it at the cursor
func (e *Editor) PasteHTML(fragment string) bool {
	clean := sanitize.HTML(fragment)
	nodes := markdown.ParseFragment(clean)
	if len(nodes) == 0 {
		return false
	}
	sel, ok := e.engine.InsertNodesAtCursor(e.cmd.Selection(), nodes)
	if !ok {
		return false
	}
	e.cmd.SetSelection(sel)
	e.changed()
	return true
}

// PastePlain inserts multi-line plain text, line breaks preserved
func (e *Editor) PastePlain(s string) bool {
	nodes := plainNodes(s)
	if len(nodes) == 0 {
		return false
	}
	sel, ok := e.engine.InsertNodesAtCursor(e.cmd.Selection(), nodes)
	if !ok {
		return false
	}
	e.cmd.SetSelection(sel)
	e.changed()
	return true
}

// changed schedules the debounced serialize and rehighlight passes
func (e *Editor) changed() {
	e.syncDeb.Schedule(e.opts.SyncDebounce, e.syncNow)
	if e.opts.Highlight != nil {
		e.highlightDeb.Schedule(e.opts.HighlightDebounce, e.rehighlightNow)
	}
}

// syncNow serializes the tree and, when the canonical value moved,
// records history and emits the change
func (e *Editor) syncNow() {
	e.mu.Lock()
	if e.isSyncing {
		e.mu.Unlock()
		return
	}
	s := markdown.Serialize(e.root)
	moved := s != e.canonical
	if moved {
		e.canonical = s
		e.hist.Push(s)
	}
	fn := e.onChange
	e.mu.Unlock()

	if moved && fn != nil {
		fn(s)
	}
}

// rehighlightNow rebuilds every code block through the highlighter,
// preserving the selection across the node replacement
func (e *Editor) rehighlightNow() {
	e.mu.Lock()
	defer e.mu.Unlock()

	var pres []*dom.Node
	e.root.Walk(func(n *dom.Node) bool {
		if n.Type == dom.ElementNode && n.Tag == "pre" {
			pres = append(pres, n)
			return false
		}
		return true
	})
	if len(pres) == 0 {
		return
	}

	saved := e.engine.Save(e.cmd.Selection())
	for _, pre := range pres {
		lang := markdown.CodeLang(pre)
		code := markdown.CodeText(pre)
		pre.ReplaceWith(markdown.CodeBlockNode(lang, code, e.opts.Highlight))
	}
	if sel, ok := e.engine.Restore(saved); ok {
		e.cmd.SetSelection(sel)
	}
}

// undo rolls the document back one history step
func (e *Editor) undo() bool {
	e.syncDeb.Flush()
	e.mu.Lock()
	e.hist.Flush()
	entry := e.hist.Undo()
	if entry == nil {
		e.mu.Unlock()
		return false
	}
	e.applyEntryLocked(entry)
	fn, s := e.onChange, e.canonical
	e.mu.Unlock()

	if fn != nil {
		fn(s)
	}
	return true
}

// redo reapplies the last undone step
func (e *Editor) redo() bool {
	e.syncDeb.Flush()
	e.mu.Lock()
	e.hist.Flush()
	entry := e.hist.Redo()
	if entry == nil {
		e.mu.Unlock()
		return false
	}
	e.applyEntryLocked(entry)
	fn, s := e.onChange, e.canonical
	e.mu.Unlock()

	if fn != nil {
		fn(s)
	}
	return true
}

func (e *Editor) applyEntryLocked(entry *history.Entry) {
	e.isSyncing = true
	e.attachLocked(entry.Markdown)
	e.isSyncing = false
}

// plainNodes converts multi-line text into text nodes separated by
// line breaks
func plainNodes(s string) []*dom.Node {
	var nodes []*dom.Node
	line := ""
	flush := func() {
		if line != "" {
			nodes = append(nodes, dom.NewText(line))
			line = ""
		}
	}
	for _, r := range s {
		if r == '\n' {
			flush()
			nodes = append(nodes, dom.NewElement("br"))
			continue
		}
		line += string(r)
	}
	flush()
	// Trailing break carries no content
	if n := len(nodes); n > 0 && nodes[n-1].Tag == "br" && line == "" {
		nodes = nodes[:n-1]
	}
	return nodes
}
