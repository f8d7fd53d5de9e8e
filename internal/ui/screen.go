package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/editkit/mdsurface/internal/config"
	"github.com/editkit/mdsurface/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a new Screen instance with the configured theme
func NewScreen() (*Screen, error) {
	// Load config to get the theme name
	cfg, err := config.Load()
	if err != nil {
		// If config fails to load, use Default as fallback
		return NewScreenWithTheme(theme.Default())
	}

	// Try to load from TOML files first, fall back to built-in themes
	t := theme.LoadThemeOrDefault(cfg.Theme)
	return NewScreenWithTheme(t)
}

// NewScreenWithTheme creates a new Screen instance with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Suspend releases terminal control temporarily
func (s *Screen) Suspend() error {
	return s.tcellScreen.Suspend()
}

// Resume restores terminal control after suspension
func (s *Screen) Resume() error {
	return s.tcellScreen.Resume()
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position with the given style
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.SetCell(col, y, r, style)
		col += RuneWidth(r)
	}
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) {
	if maxWidth <= 0 {
		return
	}
	s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// PollEvent polls for the next event (key press, mouse, resize)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// HasMouse returns true if mouse is supported
func (s *Screen) HasMouse() bool {
	return s.tcellScreen.HasMouse()
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// DefaultStyle returns the default terminal style
func DefaultStyle() tcell.Style {
	return tcell.StyleDefault
}

// Theme-aware style methods

// DocStyle returns the style for regular document text
func (s *Screen) DocStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.DocText)
}

// HeadingStyle returns the style for heading text
func (s *Screen) HeadingStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Heading).Bold(true)
}

// HeadingAnchorStyle returns the dim style for the heading marker
func (s *Screen) HeadingAnchorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeadingAnchor).Dim(true)
}

// LinkStyle returns the style for links
func (s *Screen) LinkStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Link).Underline(true)
}

// CodeInlineStyle returns the style for inline code spans
func (s *Screen) CodeInlineStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CodeInline)
}

// CodeStyle returns the style for code block text
func (s *Screen) CodeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CodeText)
}

// CodeLabelStyle returns the style for the code block language label
func (s *Screen) CodeLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CodeLangLabel).Dim(true)
}

// BlockquoteStyle returns the style for quoted text
func (s *Screen) BlockquoteStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Blockquote).Italic(true)
}

// BlockquoteBarStyle returns the style for the quote bar
func (s *Screen) BlockquoteBarStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.BlockquoteBar)
}

// ListBulletStyle returns the style for list bullets and numbers
func (s *Screen) ListBulletStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.ListBullet)
}

// TableBorderStyle returns the style for table grid lines
func (s *Screen) TableBorderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TableBorder)
}

// TableHeaderStyle returns the style for table header cells
func (s *Screen) TableHeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.TableHeader).Bold(true)
}

// RuleStyle returns the style for horizontal rules
func (s *Screen) RuleStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Rule).Dim(true)
}

// CursorStyle returns the style for the document cursor
func (s *Screen) CursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.Cursor).Reverse(true)
}

// RawStyle returns the style for raw markdown text
func (s *Screen) RawStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.RawText)
}

// RawCursorStyle returns the style for the raw mode cursor
func (s *Screen) RawCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.RawCursor).Reverse(true)
}

// PromptLabelStyle returns the style for the prompt label
func (s *Screen) PromptLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.PromptLabel).Bold(true)
}

// PromptTextStyle returns the style for prompt input text
func (s *Screen) PromptTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.PromptText)
}

// PromptCursorStyle returns the style for the prompt cursor
func (s *Screen) PromptCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.PromptCursor).Reverse(true)
}

// PromptMatchStyle returns the style for fuzzy match suggestions
func (s *Screen) PromptMatchStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.PromptMatch)
}

// StatusModeStyle returns the style for the mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusModifiedStyle returns the style for the modified indicator
func (s *Screen) StatusModifiedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusModified)
}

// StatusFormatsStyle returns the style for the active format list
func (s *Screen) StatusFormatsStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusFormats)
}
