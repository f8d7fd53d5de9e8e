package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/editkit/mdsurface/internal/dom"
	"github.com/editkit/mdsurface/internal/markdown"
)

// Span is a run of text drawn with one style
type Span struct {
	Text  string
	Style tcell.Style
}

// Line is one screen row of the laid-out document. Block points at the
// top-level element the row belongs to, so the caller can map a
// selection to its rows.
type Line struct {
	Spans []Span
	Block *dom.Node
}

// DocView lays a document tree out into styled terminal lines and
// draws a scrolling viewport over them
type DocView struct {
	screen *Screen
	top    int
	lines  []Line
}

// NewDocView creates a view bound to a screen
func NewDocView(screen *Screen) *DocView {
	return &DocView{screen: screen}
}

// Layout recomputes the line layout for the given width
func (v *DocView) Layout(root *dom.Node, width int) {
	if width < 4 {
		width = 4
	}
	v.lines = v.lines[:0]
	for _, block := range root.Children {
		v.lines = append(v.lines, v.layoutBlock(block, block, width)...)
		v.lines = append(v.lines, Line{Block: block}) // blank separator
	}
	if n := len(v.lines); n > 0 {
		v.lines = v.lines[:n-1]
	}
}

// LineCount returns the number of laid-out lines
func (v *DocView) LineCount() int {
	return len(v.lines)
}

// EnsureVisible scrolls so that the first line of block is inside a
// viewport of height h
func (v *DocView) EnsureVisible(block *dom.Node, h int) {
	if block == nil || h <= 0 {
		return
	}
	for i, ln := range v.lines {
		if ln.Block == block || (ln.Block != nil && ln.Block.Contains(block)) {
			if i < v.top {
				v.top = i
			}
			if i >= v.top+h {
				v.top = i - h + 1
			}
			return
		}
	}
}

// Scroll moves the viewport by delta lines, clamped to the document
func (v *DocView) Scroll(delta, h int) {
	v.top += delta
	max := len(v.lines) - h
	if max < 0 {
		max = 0
	}
	if v.top > max {
		v.top = max
	}
	if v.top < 0 {
		v.top = 0
	}
}

// Draw renders the viewport. Lines belonging to activeBlock get a
// cursor bar in column zero.
func (v *DocView) Draw(x, y, w, h int, activeBlock *dom.Node) {
	for row := 0; row < h; row++ {
		idx := v.top + row
		if idx >= len(v.lines) {
			break
		}
		ln := v.lines[idx]
		col := x + 2
		for _, sp := range ln.Spans {
			v.screen.DrawStringLimited(col, y+row, sp.Text, x+w-col, sp.Style)
			col += StringWidth(sp.Text)
			if col >= x+w {
				break
			}
		}
		if activeBlock != nil && ln.Block != nil &&
			(ln.Block == activeBlock || ln.Block.Contains(activeBlock)) {
			v.screen.SetCell(x, y+row, '▎', v.screen.CursorStyle())
		}
	}
}

func (v *DocView) layoutBlock(n, top *dom.Node, width int) []Line {
	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		marker := strings.Repeat("#", n.HeadingLevel()) + " "
		spans := []Span{{Text: marker, Style: v.screen.HeadingAnchorStyle()}}
		spans = append(spans, v.inlineSpans(n, v.screen.HeadingStyle())...)
		return tagLines(wrapSpans(spans, width), top)

	case "pre":
		return v.layoutCodeBlock(n, top, width)

	case "blockquote":
		var out []Line
		for _, c := range n.Children {
			for _, ln := range v.layoutBlock(c, top, width-2) {
				bar := Line{Block: top}
				bar.Spans = append(bar.Spans, Span{Text: "│ ", Style: v.screen.BlockquoteBarStyle()})
				bar.Spans = append(bar.Spans, restyle(ln.Spans, v.screen.BlockquoteStyle())...)
				out = append(out, bar)
			}
		}
		return out

	case "ul", "ol":
		return v.layoutList(n, top, width, 0)

	case "table":
		return v.layoutTable(n, top)

	case "hr":
		w := width
		if w > 40 {
			w = 40
		}
		return []Line{{
			Spans: []Span{{Text: strings.Repeat("─", w), Style: v.screen.RuleStyle()}},
			Block: top,
		}}

	default:
		return tagLines(wrapSpans(v.inlineSpans(n, v.screen.DocStyle()), width), top)
	}
}

func (v *DocView) layoutCodeBlock(pre, top *dom.Node, width int) []Line {
	label := markdown.CodeLang(pre)
	if label == "" {
		label = markdown.PlainLangLabel
	}
	out := []Line{{
		Spans: []Span{{Text: "· " + label, Style: v.screen.CodeLabelStyle()}},
		Block: top,
	}}
	code := strings.TrimRight(markdown.CodeText(pre), "\n")
	for _, raw := range strings.Split(code, "\n") {
		out = append(out, Line{
			Spans: []Span{{Text: "  " + TruncateToWidth(raw, width-2), Style: v.screen.CodeStyle()}},
			Block: top,
		})
	}
	return out
}

func (v *DocView) layoutList(list, top *dom.Node, width, depth int) []Line {
	var out []Line
	indent := strings.Repeat("  ", depth)
	idx := 0
	for _, li := range list.Children {
		if li.Tag != "li" {
			continue
		}
		idx++
		marker := indent + "• "
		if list.Tag == "ol" {
			marker = indent + fmt.Sprintf("%d. ", idx)
		}

		spans := []Span{{Text: marker, Style: v.screen.ListBulletStyle()}}
		var sublists []*dom.Node
		for _, c := range li.Children {
			if c.Tag == "ul" || c.Tag == "ol" {
				sublists = append(sublists, c)
				continue
			}
			spans = append(spans, v.inlineSpans(c, v.screen.DocStyle())...)
		}
		out = append(out, tagLines(wrapSpans(spans, width), top)...)
		for _, sub := range sublists {
			out = append(out, v.layoutList(sub, top, width, depth+1)...)
		}
	}
	return out
}

func (v *DocView) layoutTable(table, top *dom.Node) []Line {
	var rows [][]*dom.Node
	table.Walk(func(n *dom.Node) bool {
		if n != table && n.Tag == "table" {
			return false
		}
		if n.Tag == "tr" {
			var cells []*dom.Node
			for _, c := range n.Children {
				if c.IsCell() {
					cells = append(cells, c)
				}
			}
			rows = append(rows, cells)
			return false
		}
		return true
	})
	if len(rows) == 0 {
		return nil
	}

	// Column widths from the widest cell text
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			w := StringWidth(cellDisplayText(cell))
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}

	border := v.screen.TableBorderStyle()
	var out []Line
	for ri, row := range rows {
		ln := Line{Block: top}
		for i, cell := range row {
			style := v.screen.DocStyle()
			if cell.Tag == "th" {
				style = v.screen.TableHeaderStyle()
			}
			ln.Spans = append(ln.Spans,
				Span{Text: "│ ", Style: border},
				Span{Text: PadStringToWidth(cellDisplayText(cell), widths[i]) + " ", Style: style},
			)
		}
		ln.Spans = append(ln.Spans, Span{Text: "│", Style: border})
		out = append(out, ln)

		// Separator under the header row
		if ri == 0 {
			sep := Line{Block: top}
			for i := range row {
				sep.Spans = append(sep.Spans, Span{
					Text:  "├─" + strings.Repeat("─", widths[i]) + "─",
					Style: border,
				})
			}
			sep.Spans = append(sep.Spans, Span{Text: "┤", Style: border})
			out = append(out, sep)
		}
	}
	return out
}

func cellDisplayText(cell *dom.Node) string {
	text := strings.TrimSpace(strings.ReplaceAll(cell.TextContent(), "\n", " "))
	return strings.ReplaceAll(text, "\u00a0", " ")
}

// inlineSpans flattens the inline content of a node into styled spans.
// Line breaks come through as newline spans for wrapSpans to honor.
func (v *DocView) inlineSpans(n *dom.Node, base tcell.Style) []Span {
	var spans []Span
	var walk func(c *dom.Node, style tcell.Style)
	walk = func(c *dom.Node, style tcell.Style) {
		if c.Type == dom.TextNode {
			if c.Data != "" {
				spans = append(spans, Span{Text: c.Data, Style: style})
			}
			return
		}
		next := style
		switch c.Tag {
		case "strong", "b":
			next = style.Bold(true)
		case "em", "i":
			next = style.Italic(true)
		case "del", "s", "strike":
			next = style.StrikeThrough(true)
		case "code":
			next = v.screen.CodeInlineStyle()
		case "a":
			next = v.screen.LinkStyle()
		case "img":
			alt := c.Attr("alt")
			if alt == "" {
				alt = c.Attr("src")
			}
			spans = append(spans, Span{Text: "[" + alt + "]", Style: v.screen.LinkStyle()})
			return
		case "br":
			spans = append(spans, Span{Text: "\n", Style: style})
			return
		case "span":
			if c.HasClass(markdown.LangLabelClass) {
				return
			}
		}
		for _, gc := range c.Children {
			walk(gc, next)
		}
	}
	if n.Type == dom.TextNode {
		walk(n, base)
	} else {
		for _, c := range n.Children {
			walk(c, base)
		}
	}
	return spans
}

// wrapSpans greedily wraps styled spans into lines of at most width
// columns, breaking at word boundaries and honoring explicit newlines
func wrapSpans(spans []Span, width int) [][]Span {
	var lines [][]Span
	var cur []Span
	col := 0

	newline := func() {
		lines = append(lines, cur)
		cur = nil
		col = 0
	}

	emit := func(text string, style tcell.Style) {
		for text != "" {
			remaining := width - col
			if remaining <= 0 {
				newline()
				continue
			}
			if StringWidth(text) <= remaining {
				cur = append(cur, Span{Text: text, Style: style})
				col += StringWidth(text)
				return
			}
			breakIdx, _ := CalculateBreakPoint(text, remaining)
			if breakIdx == 0 {
				if col > 0 {
					newline()
					continue
				}
				// A rune wider than the whole line: take it anyway
				r := []rune(text)
				cur = append(cur, Span{Text: string(r[0]), Style: style})
				col += RuneWidth(r[0])
				text = string(r[1:])
				continue
			}
			if head := strings.TrimRight(text[:breakIdx], " "); head != "" {
				cur = append(cur, Span{Text: head, Style: style})
			}
			newline()
			text = strings.TrimLeft(text[breakIdx:], " ")
		}
	}

	for _, sp := range spans {
		text := sp.Text
		for {
			nl := strings.IndexByte(text, '\n')
			if nl < 0 {
				emit(text, sp.Style)
				break
			}
			emit(text[:nl], sp.Style)
			newline()
			text = text[nl+1:]
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		newline()
	}
	return lines
}

func tagLines(rows [][]Span, block *dom.Node) []Line {
	out := make([]Line, 0, len(rows))
	for _, spans := range rows {
		out = append(out, Line{Spans: spans, Block: block})
	}
	return out
}

func restyle(spans []Span, style tcell.Style) []Span {
	out := make([]Span, len(spans))
	for i, sp := range spans {
		out[i] = Span{Text: sp.Text, Style: style}
	}
	return out
}
