package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestions = 5

// Prompt is a modal single-line input drawn over the bottom of the
// screen. It runs its own event loop until the user accepts with Enter
// or cancels with Escape, so it can serve synchronous input requests.
type Prompt struct {
	screen     *Screen
	events     func() tcell.Event
	candidates func() []string
}

// NewPrompt creates a prompt bound to a screen
func NewPrompt(screen *Screen) *Prompt {
	return &Prompt{screen: screen, events: screen.PollEvent}
}

// SetEventSource replaces the event source. A host that polls the
// screen from its own goroutine must route events through here so the
// prompt does not compete for PollEvent.
func (p *Prompt) SetEventSource(fn func() tcell.Event) {
	p.events = fn
}

// SetCandidates installs a source of completion candidates. The
// candidates are fuzzy-matched against the typed text and offered as
// suggestions; Tab cycles through them.
func (p *Prompt) SetCandidates(fn func() []string) {
	p.candidates = fn
}

// Input asks the user for a line of text. Returns the entered text and
// true, or "" and false when the user cancels.
func (p *Prompt) Input(label, initial string) (string, bool) {
	text := []rune(initial)
	cursor := len(text)
	selected := -1

	for {
		matches := p.match(string(text))
		if selected >= len(matches) {
			selected = -1
		}
		p.draw(label, text, cursor, matches, selected)
		p.screen.Show()

		ev := p.events()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		switch key.Key() {
		case tcell.KeyEnter:
			if selected >= 0 {
				return matches[selected], true
			}
			return string(text), true
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return "", false
		case tcell.KeyTab:
			if len(matches) > 0 {
				selected = (selected + 1) % len(matches)
			}
		case tcell.KeyBacktab:
			if len(matches) > 0 {
				selected--
				if selected < 0 {
					selected = len(matches) - 1
				}
			}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if cursor > 0 {
				text = append(text[:cursor-1], text[cursor:]...)
				cursor--
				selected = -1
			}
		case tcell.KeyDelete:
			if cursor < len(text) {
				text = append(text[:cursor], text[cursor+1:]...)
				selected = -1
			}
		case tcell.KeyLeft:
			if cursor > 0 {
				cursor--
			}
		case tcell.KeyRight:
			if cursor < len(text) {
				cursor++
			}
		case tcell.KeyHome, tcell.KeyCtrlA:
			cursor = 0
		case tcell.KeyEnd, tcell.KeyCtrlE:
			cursor = len(text)
		case tcell.KeyCtrlU:
			text = text[:0]
			cursor = 0
			selected = -1
		case tcell.KeyRune:
			out := make([]rune, 0, len(text)+1)
			out = append(out, text[:cursor]...)
			out = append(out, key.Rune())
			out = append(out, text[cursor:]...)
			text = out
			cursor++
			selected = -1
		}
	}
}

// match returns candidates fuzzy-matching the typed text, capped at
// maxSuggestions
func (p *Prompt) match(term string) []string {
	if p.candidates == nil || term == "" {
		return nil
	}
	var out []string
	for _, cand := range p.candidates() {
		if fuzzy.MatchFold(term, strings.ToLower(cand)) {
			out = append(out, cand)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func (p *Prompt) draw(label string, text []rune, cursor int, matches []string, selected int) {
	w, h := p.screen.Size()
	promptRow := h - 1
	firstRow := promptRow - len(matches)

	// Suggestion rows above the input line
	for i, m := range matches {
		row := firstRow + i
		clearRow(p.screen, row, w)
		style := p.screen.PromptMatchStyle()
		prefix := "  "
		if i == selected {
			style = style.Reverse(true)
			prefix = "> "
		}
		p.screen.DrawStringLimited(0, row, prefix+m, w, style)
	}

	clearRow(p.screen, promptRow, w)
	labelText := label + ": "
	p.screen.DrawString(0, promptRow, labelText, p.screen.PromptLabelStyle())

	x := StringWidth(labelText)
	p.screen.DrawStringLimited(x, promptRow, string(text), w-x, p.screen.PromptTextStyle())

	// Cursor cell
	cursorCol := x + StringWidth(string(text[:cursor]))
	var under rune = ' '
	if cursor < len(text) {
		under = text[cursor]
	}
	if cursorCol < w {
		p.screen.SetCell(cursorCol, promptRow, under, p.screen.PromptCursorStyle())
	}
}

func clearRow(s *Screen, y, w int) {
	for x := 0; x < w; x++ {
		s.SetCell(x, y, ' ', DefaultStyle())
	}
}
