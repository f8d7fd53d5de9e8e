package app

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"
	"github.com/editkit/mdsurface/internal/config"
	"github.com/editkit/mdsurface/internal/dom"
	"github.com/editkit/mdsurface/internal/editor"
	"github.com/editkit/mdsurface/internal/highlight"
	"github.com/editkit/mdsurface/internal/markdown"
	"github.com/editkit/mdsurface/internal/selection"
	"github.com/editkit/mdsurface/internal/storage"
	"github.com/editkit/mdsurface/internal/ui"
)

// activeFormatTags are the inline marks shown in the status line when
// the cursor sits inside them
var activeFormatTags = []string{"strong", "em", "del", "code"}

// App is the main application controller
type App struct {
	screen   *ui.Screen
	editor   *editor.Editor
	store    *storage.FileStore
	backups  *storage.BackupManager
	docView  *ui.DocView
	textArea *ui.TextArea
	prompt   *ui.Prompt

	activeBlock int

	mu         sync.Mutex
	dirty      bool
	statusMsg  string
	statusTime time.Time

	autoSaveTime time.Time
	quit         bool
	debugMode    bool
	sessionID    string

	currentBackupPath string

	events      chan tcell.Event
	keybindings []KeyBinding
}

// NewApp creates a new App instance
func NewApp(filePath string, cfg *config.Config) (*App, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	store := storage.NewFileStore(filePath)
	doc, err := store.Load()
	if err != nil {
		screen.Close()
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	backups, err := storage.NewBackupManager()
	if err != nil {
		screen.Close()
		return nil, fmt.Errorf("failed to create backup manager: %w", err)
	}

	prompt := ui.NewPrompt(screen)

	ed := editor.New(doc, editor.Options{
		HistoryDepth:      cfg.Editor.HistoryDepth,
		SyncDebounce:      time.Duration(cfg.Editor.SyncDebounceMs) * time.Millisecond,
		HistoryDebounce:   time.Duration(cfg.Editor.HistoryDebounceMs) * time.Millisecond,
		HighlightDebounce: time.Duration(cfg.Editor.HighlightDebounceMs) * time.Millisecond,
		Highlight:         markdown.HighlightFunc(highlight.New(cfg.HighlightStyle)),
		Prompter:          prompt,
	})

	a := &App{
		screen:       screen,
		editor:       ed,
		store:        store,
		backups:      backups,
		docView:      ui.NewDocView(screen),
		textArea:     ui.NewTextArea(""),
		prompt:       prompt,
		statusMsg:    "Ready",
		statusTime:   time.Now(),
		autoSaveTime: time.Now(),
		sessionID:    generateSessionID(),
		events:       make(chan tcell.Event),
	}

	prompt.SetCandidates(a.headingAnchors)
	// The prompt's modal loop must not compete with Run's poller
	prompt.SetEventSource(func() tcell.Event { return <-a.events })
	ed.OnChange(func(md string) {
		a.mu.Lock()
		a.dirty = true
		a.mu.Unlock()
	})
	a.keybindings = a.InitializeKeybindings()
	a.setActiveBlock(0)

	return a, nil
}

// SetDebugMode enables debug mode
func (a *App) SetDebugMode(enabled bool) {
	a.debugMode = enabled
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	go func() {
		for {
			event := a.screen.PollEvent()
			a.events <- event
			if event == nil {
				break
			}
		}
	}()

	// Ticker drives rendering and the auto-save check
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-a.events:
			if ev != nil {
				a.handleEvent(ev)
			}
		case <-ticker.C:
			a.render()

			if a.isDirty() && time.Since(a.autoSaveTime) > 5*time.Second {
				if a.store.FilePath == "" {
					break
				}
				if err := a.Save(); err != nil {
					a.SetStatus("Failed to save: " + err.Error())
				} else {
					a.SetStatus("Saved")
				}
			}
		}
	}

	return nil
}

// Close closes the application
func (a *App) Close() error {
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// Save writes a backup and then the document itself
func (a *App) Save() error {
	md := a.editor.Markdown()

	if a.store.FileExists() {
		if err := a.backups.CreateBackup(md, a.store.FilePath, a.sessionID); err != nil {
			log.Printf("backup failed: %v", err)
		}
	}

	if err := a.store.Save(md); err != nil {
		return err
	}

	a.mu.Lock()
	a.dirty = false
	a.mu.Unlock()
	a.autoSaveTime = time.Now()
	a.currentBackupPath = ""
	return nil
}

// SetStatus sets a transient status message
func (a *App) SetStatus(msg string) {
	a.mu.Lock()
	a.statusMsg = msg
	a.statusTime = time.Now()
	a.mu.Unlock()
}

func (a *App) isDirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()

	width, height := a.screen.Size()

	// Header: filename and mode
	name := a.store.FilePath
	if name == "" {
		name = "[no file]"
	}
	header := " " + ui.TruncateToWidthWithEllipsis(name, width-2) + " "
	a.screen.DrawString(0, 0, header, a.screen.HeadingStyle())

	bodyY := 1
	bodyH := height - 2

	if a.editor.Mode() == editor.ModeMarkdown {
		a.textArea.Draw(a.screen, 0, bodyY, width, bodyH)
	} else {
		root := a.editor.Root()
		a.docView.Layout(root, width-2)
		a.docView.EnsureVisible(a.currentBlock(), bodyH)
		a.docView.Draw(0, bodyY, width, bodyH, a.currentBlock())
	}

	a.renderStatusLine(width, height-1)
	a.screen.Show()
}

// renderStatusLine draws the mode, active formats, transient message
// and modified flag
func (a *App) renderStatusLine(width, y int) {
	x := 0

	mode := "-- WYSIWYG --"
	if a.editor.Mode() == editor.ModeMarkdown {
		mode = "-- MARKDOWN --"
	}
	a.screen.DrawString(x, y, mode, a.screen.StatusModeStyle())
	x += ui.StringWidth(mode)

	if a.editor.Mode() == editor.ModeWYSIWYG {
		var active []string
		for _, tag := range activeFormatTags {
			if a.editor.IsActive(tag) {
				active = append(active, tag)
			}
		}
		if len(active) > 0 {
			formats := " [" + strings.Join(active, ",") + "]"
			a.screen.DrawString(x, y, formats, a.screen.StatusFormatsStyle())
			x += ui.StringWidth(formats)
		}
	}

	a.mu.Lock()
	msg := a.statusMsg
	msgTime := a.statusTime
	dirty := a.dirty
	a.mu.Unlock()

	if msg != "Ready" && time.Since(msgTime) <= 3*time.Second {
		a.screen.DrawStringLimited(x+1, y, msg, width-x-1, a.screen.StatusMessageStyle())
		x += ui.StringWidth(msg) + 1
	}

	if dirty {
		a.screen.DrawString(x+1, y, "(modified)", a.screen.StatusModifiedStyle())
	}
}

// handleEvent processes raw input events
func (a *App) handleEvent(ev tcell.Event) {
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	if a.debugMode {
		log.Printf("key event: %v mods=%v rune=%q", keyEv.Key(), keyEv.Modifiers(), keyEv.Rune())
	}

	// Global chords available in both modes
	switch keyEv.Key() {
	case tcell.KeyCtrlS:
		a.syncMarkdownMode()
		if err := a.Save(); err != nil {
			a.SetStatus("Failed to save: " + err.Error())
		} else {
			a.SetStatus("Saved")
		}
		return
	case tcell.KeyCtrlQ:
		a.syncMarkdownMode()
		if a.isDirty() && a.store.FilePath != "" {
			if err := a.Save(); err != nil {
				a.SetStatus("Failed to save: " + err.Error())
				return
			}
		}
		a.quit = true
		return
	case tcell.KeyCtrlT:
		a.toggleMode()
		return
	case tcell.KeyF12:
		if a.debugMode {
			log.Printf("document tree:\n%s", spew.Sdump(a.editor.Root()))
			a.SetStatus("Dumped tree to log")
		}
		return
	}

	if a.editor.Mode() == editor.ModeMarkdown {
		a.handleMarkdownKey(keyEv)
		return
	}
	a.handleWYSIWYGKey(keyEv)
}

// handleMarkdownKey routes keys to the raw textarea
func (a *App) handleMarkdownKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		a.toggleMode()
		return
	}
	if a.textArea.HandleKey(ev) && a.textArea.Modified() {
		a.mu.Lock()
		a.dirty = true
		a.mu.Unlock()
	}
}

// handleWYSIWYGKey handles block navigation and the action bindings
func (a *App) handleWYSIWYGKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		a.setActiveBlock(a.activeBlock - 1)
		return
	case tcell.KeyDown:
		a.setActiveBlock(a.activeBlock + 1)
		return
	case tcell.KeyPgUp:
		a.setActiveBlock(a.activeBlock - 5)
		return
	case tcell.KeyPgDn:
		a.setActiveBlock(a.activeBlock + 5)
		return
	case tcell.KeyHome:
		a.setActiveBlock(0)
		return
	case tcell.KeyEnd:
		a.setActiveBlock(len(a.editor.Root().Children) - 1)
		return
	case tcell.KeyRune:
		// fall through to rune bindings
	default:
		return
	}

	r := ev.Rune()
	switch r {
	case 'j':
		a.setActiveBlock(a.activeBlock + 1)
		return
	case 'k':
		a.setActiveBlock(a.activeBlock - 1)
		return
	case 'g':
		a.setActiveBlock(0)
		return
	case 'G':
		a.setActiveBlock(len(a.editor.Root().Children) - 1)
		return
	}

	for i := range a.keybindings {
		if a.keybindings[i].Key == r {
			a.keybindings[i].Handler(a)
			return
		}
	}
}

// toggleMode switches between the document view and the raw textarea
func (a *App) toggleMode() {
	if a.editor.Mode() == editor.ModeWYSIWYG {
		a.editor.SetMode(editor.ModeMarkdown)
		a.textArea.SetText(a.editor.Markdown())
		return
	}
	a.syncMarkdownMode()
	a.editor.SetMode(editor.ModeWYSIWYG)
	a.setActiveBlock(a.activeBlock)
}

// syncMarkdownMode pushes textarea edits back into the editor
func (a *App) syncMarkdownMode() {
	if a.editor.Mode() != editor.ModeMarkdown || !a.textArea.Modified() {
		return
	}
	a.editor.SetMarkdown(a.textArea.Text())
	a.textArea.ClearModified()
	a.mu.Lock()
	a.dirty = true
	a.mu.Unlock()
}

// currentBlock returns the active top-level block, or nil for an empty
// document
func (a *App) currentBlock() *dom.Node {
	root := a.editor.Root()
	if a.activeBlock < 0 || a.activeBlock >= len(root.Children) {
		return nil
	}
	return root.Children[a.activeBlock]
}

// setActiveBlock moves the block cursor and selects the block's text
// so format actions apply to it
func (a *App) setActiveBlock(idx int) {
	root := a.editor.Root()
	if len(root.Children) == 0 {
		a.activeBlock = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(root.Children) {
		idx = len(root.Children) - 1
	}
	a.activeBlock = idx

	block := root.Children[idx]
	first := firstTextIn(block)
	if first == nil {
		a.editor.SetSelection(selection.Collapse(selection.Point{Node: block, Offset: 0}))
		return
	}
	last := lastTextIn(block)
	a.editor.SetSelection(selection.Selection{
		Anchor: selection.Point{Node: first, Offset: 0},
		Focus:  selection.Point{Node: last, Offset: len([]rune(last.Data))},
	})
}

// execAction runs a named editor action and reports refusals
func (a *App) execAction(action string) {
	if a.editor.Exec(action) {
		a.mu.Lock()
		a.dirty = true
		a.mu.Unlock()
		a.SetStatus(action)
	} else {
		a.SetStatus("Cannot " + action + " here")
	}
}

// headingAnchors returns the anchor targets for every heading in the
// document, used as link prompt suggestions
func (a *App) headingAnchors() []string {
	var anchors []string
	a.editor.Root().Walk(func(n *dom.Node) bool {
		if n.HeadingLevel() > 0 {
			anchors = append(anchors, "#"+markdown.Slug(n.TextContent()))
			return false
		}
		return true
	})
	return anchors
}

func firstTextIn(n *dom.Node) *dom.Node {
	var found *dom.Node
	n.Walk(func(c *dom.Node) bool {
		if found != nil {
			return false
		}
		if c.Type == dom.TextNode {
			found = c
			return false
		}
		return true
	})
	return found
}

func lastTextIn(n *dom.Node) *dom.Node {
	var found *dom.Node
	n.Walk(func(c *dom.Node) bool {
		if c.Type == dom.TextNode {
			found = c
		}
		return true
	})
	return found
}
