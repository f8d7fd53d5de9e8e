package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// TextArea is the raw markdown editing surface. It edits logical lines
// with a rune-indexed cursor; rendering and scrolling happen in Draw.
type TextArea struct {
	lines    []string
	cx, cy   int // cursor: rune column, line row
	top      int // first visible line
	modified bool
}

// NewTextArea creates a text area holding the given text
func NewTextArea(text string) *TextArea {
	ta := &TextArea{}
	ta.SetText(text)
	return ta
}

// SetText replaces the content and moves the cursor to the start
func (ta *TextArea) SetText(text string) {
	ta.lines = strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(ta.lines) == 0 {
		ta.lines = []string{""}
	}
	ta.cx, ta.cy, ta.top = 0, 0, 0
	ta.modified = false
}

// Text returns the content with a trailing newline
func (ta *TextArea) Text() string {
	return strings.Join(ta.lines, "\n") + "\n"
}

// Modified reports whether the content changed since the last SetText
// or ClearModified
func (ta *TextArea) Modified() bool {
	return ta.modified
}

// ClearModified resets the modified flag
func (ta *TextArea) ClearModified() {
	ta.modified = false
}

// CursorPosition returns the cursor's (line, column)
func (ta *TextArea) CursorPosition() (int, int) {
	return ta.cy, ta.cx
}

func (ta *TextArea) line() []rune {
	return []rune(ta.lines[ta.cy])
}

func (ta *TextArea) clampX() {
	if n := len(ta.line()); ta.cx > n {
		ta.cx = n
	}
	if ta.cx < 0 {
		ta.cx = 0
	}
}

// HandleKey processes one key event. Returns true when the event was
// consumed.
func (ta *TextArea) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		ta.insertRune(ev.Rune())
	case tcell.KeyTab:
		ta.insertRune(' ')
		ta.insertRune(' ')
	case tcell.KeyEnter:
		ta.splitLine()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ta.backspace()
	case tcell.KeyDelete:
		ta.deleteForward()
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			ta.wordMove(false)
		} else {
			ta.moveLeft()
		}
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			ta.wordMove(true)
		} else {
			ta.moveRight()
		}
	case tcell.KeyUp:
		if ta.cy > 0 {
			ta.cy--
			ta.clampX()
		}
	case tcell.KeyDown:
		if ta.cy < len(ta.lines)-1 {
			ta.cy++
			ta.clampX()
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		ta.cx = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		ta.cx = len(ta.line())
	case tcell.KeyPgUp:
		ta.cy -= 10
		if ta.cy < 0 {
			ta.cy = 0
		}
		ta.clampX()
	case tcell.KeyPgDn:
		ta.cy += 10
		if ta.cy > len(ta.lines)-1 {
			ta.cy = len(ta.lines) - 1
		}
		ta.clampX()
	case tcell.KeyCtrlK:
		ta.killToEnd()
	default:
		return false
	}
	return true
}

func (ta *TextArea) insertRune(r rune) {
	line := ta.line()
	out := make([]rune, 0, len(line)+1)
	out = append(out, line[:ta.cx]...)
	out = append(out, r)
	out = append(out, line[ta.cx:]...)
	ta.lines[ta.cy] = string(out)
	ta.cx++
	ta.modified = true
}

func (ta *TextArea) splitLine() {
	line := ta.line()
	head, tail := string(line[:ta.cx]), string(line[ta.cx:])
	ta.lines[ta.cy] = head
	rest := append([]string{}, ta.lines[ta.cy+1:]...)
	ta.lines = append(ta.lines[:ta.cy+1], tail)
	ta.lines = append(ta.lines, rest...)
	ta.cy++
	ta.cx = 0
	ta.modified = true
}

func (ta *TextArea) backspace() {
	if ta.cx > 0 {
		line := ta.line()
		ta.lines[ta.cy] = string(line[:ta.cx-1]) + string(line[ta.cx:])
		ta.cx--
		ta.modified = true
		return
	}
	if ta.cy == 0 {
		return
	}
	// Join with the previous line
	prev := []rune(ta.lines[ta.cy-1])
	ta.cx = len(prev)
	ta.lines[ta.cy-1] = string(prev) + ta.lines[ta.cy]
	ta.lines = append(ta.lines[:ta.cy], ta.lines[ta.cy+1:]...)
	ta.cy--
	ta.modified = true
}

func (ta *TextArea) deleteForward() {
	line := ta.line()
	if ta.cx < len(line) {
		ta.lines[ta.cy] = string(line[:ta.cx]) + string(line[ta.cx+1:])
		ta.modified = true
		return
	}
	if ta.cy == len(ta.lines)-1 {
		return
	}
	ta.lines[ta.cy] += ta.lines[ta.cy+1]
	ta.lines = append(ta.lines[:ta.cy+1], ta.lines[ta.cy+2:]...)
	ta.modified = true
}

func (ta *TextArea) killToEnd() {
	line := ta.line()
	if ta.cx < len(line) {
		ta.lines[ta.cy] = string(line[:ta.cx])
		ta.modified = true
	}
}

func (ta *TextArea) moveLeft() {
	if ta.cx > 0 {
		ta.cx--
		return
	}
	if ta.cy > 0 {
		ta.cy--
		ta.cx = len(ta.line())
	}
}

func (ta *TextArea) moveRight() {
	if ta.cx < len(ta.line()) {
		ta.cx++
		return
	}
	if ta.cy < len(ta.lines)-1 {
		ta.cy++
		ta.cx = 0
	}
}

func (ta *TextArea) wordMove(next bool) {
	line := ta.lines[ta.cy]
	if next {
		ta.cx = WordBoundaryIndex(line, ta.cx, true)
		return
	}
	// Step over any spaces first so moving from a word start lands on
	// the previous word, not back where it started
	runes := []rune(line)
	pos := ta.cx
	for pos > 0 && (runes[pos-1] == ' ' || runes[pos-1] == '\t') {
		pos--
	}
	ta.cx = WordBoundaryIndex(line, pos, false)
}

// Draw renders the visible lines and the cursor
func (ta *TextArea) Draw(s *Screen, x, y, w, h int) {
	if h <= 0 || w <= 0 {
		return
	}

	// Keep the cursor row visible
	if ta.cy < ta.top {
		ta.top = ta.cy
	}
	if ta.cy >= ta.top+h {
		ta.top = ta.cy - h + 1
	}

	style := s.RawStyle()
	for row := 0; row < h; row++ {
		idx := ta.top + row
		if idx >= len(ta.lines) {
			break
		}
		s.DrawStringLimited(x, y+row, ta.lines[idx], w, style)
	}

	// Cursor cell
	line := ta.line()
	cursorCol := StringWidth(string(line[:ta.cx]))
	var under rune = ' '
	if ta.cx < len(line) {
		under = line[ta.cx]
	}
	if cursorCol < w {
		s.SetCell(x+cursorCol, y+ta.cy-ta.top, under, s.RawCursorStyle())
	}
}
