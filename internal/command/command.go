// Package command maps the stable action vocabulary onto the selection
// engine and the table/markdown building blocks. Every action returns a
// plain success bool; guard violations refuse without mutating the
// tree.
package command

import (
	"strconv"

	"github.com/editkit/mdsurface/internal/dom"
	"github.com/editkit/mdsurface/internal/markdown"
	"github.com/editkit/mdsurface/internal/selection"
	"github.com/editkit/mdsurface/internal/table"
)

// Prompter supplies user input for actions that need a value (link and
// image URLs). Input returns false when the user declines.
type Prompter interface {
	Input(prompt, initial string) (string, bool)
}

// Commander executes named actions against one editable tree. It keeps
// the current selection between calls; hosts feed selection changes in
// through SetSelection and read the result back with Selection.
type Commander struct {
	engine    *selection.Engine
	root      *dom.Node
	prompter  Prompter
	highlight markdown.HighlightFunc
	sel       selection.Selection
	active    map[string]bool

	// Undo and redo are owned by the editor above; the commander only
	// routes the actions upward.
	UndoFn func() bool
	RedoFn func() bool
}

// New creates a commander over the given tree. prompter may be nil;
// link and image actions then refuse.
func New(engine *selection.Engine, root *dom.Node, prompter Prompter) *Commander {
	return &Commander{
		engine:   engine,
		root:     root,
		prompter: prompter,
		active:   map[string]bool{},
	}
}

// SetHighlight installs the code highlighter used for new code blocks
func (c *Commander) SetHighlight(fn markdown.HighlightFunc) {
	c.highlight = fn
}

// SetSelection replaces the current selection and refreshes the active
// format set
func (c *Commander) SetSelection(sel selection.Selection) {
	c.RefreshActive(sel)
}

// Selection returns the selection after the last executed action
func (c *Commander) Selection() selection.Selection {
	return c.sel
}

// Exec runs one named action. Unknown actions and guard refusals
// return false.
func (c *Commander) Exec(action string) bool {
	var ok bool
	switch action {
	case "bold":
		ok = c.inline("strong")
	case "italic":
		ok = c.inline("em")
	case "strikethrough":
		ok = c.inline("del")
	case "codeInline":
		ok = c.inline("code")
	case "heading1":
		ok = c.heading(1)
	case "heading2":
		ok = c.heading(2)
	case "heading3":
		ok = c.heading(3)
	case "bulletList":
		ok = c.toggleList("ul")
	case "orderedList":
		ok = c.toggleList("ol")
	case "indentList":
		ok = c.indentList()
	case "outdentList":
		ok = c.outdentList()
	case "blockquote":
		ok = c.blockquote()
	case "codeBlock":
		ok = c.CodeBlock("")
	case "link":
		ok = c.link()
	case "image":
		ok = c.image()
	case "horizontalRule":
		ok = c.horizontalRule()
	case "table":
		ok = c.InsertTable(3, 3)
	case "undo":
		return c.UndoFn != nil && c.UndoFn()
	case "redo":
		return c.RedoFn != nil && c.RedoFn()
	default:
		return false
	}
	if ok {
		c.RefreshActive(c.sel)
	}
	return ok
}

// IsActive reports whether the cursor currently sits inside an element
// of tag. Alias tags (b, i, s, strike) normalize to their canonical
// forms.
func (c *Commander) IsActive(tag string) bool {
	return c.active[canonicalTag(tag)]
}

// RefreshActive recomputes the active format set from the selection
// anchor's ancestor chain
func (c *Commander) RefreshActive(sel selection.Selection) {
	c.sel = sel
	set := map[string]bool{}
	if n := sel.Anchor.Node; n != nil && n != c.root {
		if n.Type == dom.ElementNode {
			set[canonicalTag(n.Tag)] = true
		}
		for _, anc := range n.Ancestors(c.root) {
			if anc.Type == dom.ElementNode {
				set[canonicalTag(anc.Tag)] = true
			}
		}
	}
	c.active = set
}

func canonicalTag(tag string) string {
	switch tag {
	case "b":
		return "strong"
	case "i":
		return "em"
	case "s", "strike":
		return "del"
	}
	return tag
}

func (c *Commander) inline(tag string) bool {
	sel, ok := c.engine.WrapSelection(c.sel, tag)
	if ok {
		c.sel = sel
	}
	return ok
}

func (c *Commander) blockquote() bool {
	sel, ok := c.engine.WrapBlock(c.sel, "blockquote", c.root)
	if ok {
		c.sel = sel
	}
	return ok
}

// heading toggles the enclosing paragraph or heading to level. With no
// enclosing block a placeholder heading is inserted at the cursor with
// its text selected, ready to be typed over.
func (c *Commander) heading(level int) bool {
	if !c.sel.Valid() || c.inCell() {
		return false
	}
	tag := "h" + strconv.Itoa(level)

	block := c.blockAt(c.sel.Anchor)
	if block == nil {
		h := dom.NewElement(tag)
		t := dom.NewText("Heading")
		h.AppendChild(t)
		if _, ok := c.engine.InsertNodesAtCursor(c.sel, []*dom.Node{h}); !ok {
			return false
		}
		c.sel = selection.Selection{
			Anchor: selection.Point{Node: t, Offset: 0},
			Focus:  selection.Point{Node: t, Offset: len([]rune(t.Data))},
		}
		return true
	}

	switch {
	case block.HeadingLevel() == level:
		block.Tag = "p"
	case block.Tag == "p" || block.HeadingLevel() > 0:
		block.Tag = tag
		block.SetAttr("id", markdown.Slug(block.TextContent()))
	default:
		// Lists, code blocks and tables do not retag into headings
		return false
	}
	return true
}

// CodeBlock toggles a fenced code block at the cursor. Inside a pre the
// block unwraps back to a paragraph, line breaks preserved; otherwise
// the enclosing block's text becomes the code content.
func (c *Commander) CodeBlock(lang string) bool {
	if !c.sel.Valid() || c.inCell() {
		return false
	}

	if pre := c.sel.Anchor.Node.ClosestTag("pre", c.root); pre != nil {
		p := paragraphFromCode(markdown.CodeText(pre))
		pre.ReplaceWith(p)
		c.sel = selection.Collapse(selection.Point{Node: p, Offset: 0})
		return true
	}

	block := c.blockAt(c.sel.Anchor)
	node := markdown.CodeBlockNode(lang, blockText(block), c.highlight)
	if block == nil {
		c.root.AppendChild(node)
	} else {
		block.ReplaceWith(node)
	}

	focus := node.ClosestTag("pre", nil)
	if code := findTag(node, "code"); code != nil {
		focus = code
	}
	c.sel = selection.Collapse(selection.Point{Node: focus, Offset: 0})
	return true
}

// link edits the enclosing link, or wraps the selection in a new one.
// An empty URL on an existing link removes it; a declined prompt
// abandons the action.
func (c *Commander) link() bool {
	if c.prompter == nil || !c.sel.Valid() {
		return false
	}

	if a := c.sel.Anchor.Node.ClosestTag("a", c.root); a != nil {
		href, ok := c.prompter.Input("Link URL", a.Attr("href"))
		if !ok {
			return false
		}
		if href == "" {
			a.Unwrap()
			return true
		}
		a.SetAttr("href", href)
		return true
	}

	href, ok := c.prompter.Input("Link URL", "")
	if !ok || href == "" {
		return false
	}

	if c.sel.Collapsed() {
		a := dom.NewElement("a").SetAttr("href", href)
		a.AppendChild(dom.NewText(href))
		sel, ok := c.engine.InsertNodesAtCursor(c.sel, []*dom.Node{a})
		if !ok {
			return false
		}
		c.sel = sel
		return true
	}

	sel, ok := c.engine.WrapSelection(c.sel, "a")
	if !ok {
		return false
	}
	if w := sel.Anchor.Node; w != nil && w.Tag == "a" {
		w.SetAttr("href", href)
	}
	c.sel = sel
	return true
}

func (c *Commander) image() bool {
	if c.prompter == nil || !c.sel.Valid() {
		return false
	}
	src, ok := c.prompter.Input("Image URL", "")
	if !ok || src == "" {
		return false
	}
	alt, _ := c.prompter.Input("Alt text", "")

	img := dom.NewElement("img").SetAttr("src", src)
	if alt != "" {
		img.SetAttr("alt", alt)
	}
	sel, ok := c.engine.InsertNodesAtCursor(c.sel, []*dom.Node{img})
	if !ok {
		return false
	}
	c.sel = sel
	return true
}

func (c *Commander) horizontalRule() bool {
	if !c.sel.Valid() || c.inCell() {
		return false
	}
	hr := dom.NewElement("hr")
	block := c.blockAt(c.sel.Anchor)
	if block == nil {
		c.root.AppendChild(hr)
	} else {
		c.root.InsertAfter(hr, block)
	}
	c.sel = selection.Collapse(selection.Point{Node: c.root, Offset: hr.Index() + 1})
	return true
}

// InsertTable inserts a fresh table skeleton after the current block
// and moves the cursor into its first header cell. Nested tables are
// refused.
func (c *Commander) InsertTable(rows, cols int) bool {
	if !c.sel.Valid() {
		return false
	}
	if c.sel.Anchor.Node.ClosestTag("table", c.root) != nil {
		return false
	}

	tbl := table.New(rows, cols)
	block := c.blockAt(c.sel.Anchor)
	if block == nil {
		c.root.AppendChild(tbl)
	} else {
		c.root.InsertAfter(tbl, block)
	}

	if cell := firstCell(tbl); cell != nil {
		if t := firstText(cell); t != nil {
			c.sel = selection.Selection{
				Anchor: selection.Point{Node: t, Offset: 0},
				Focus:  selection.Point{Node: t, Offset: len([]rune(t.Data))},
			}
		} else {
			c.sel = selection.Collapse(selection.Point{Node: cell, Offset: 0})
		}
	}
	return true
}

// inCell reports whether the selection anchor sits inside a table cell
func (c *Commander) inCell() bool {
	n := c.sel.Anchor.Node
	if n == nil {
		return false
	}
	return n.Closest(func(x *dom.Node) bool { return x.IsCell() }, c.root) != nil
}

// blockAt resolves a point to the top-level block under the root that
// contains it, or nil when the point is the root with no usable child
func (c *Commander) blockAt(p selection.Point) *dom.Node {
	n := p.Node
	if n == nil {
		return nil
	}
	if n == c.root {
		if len(c.root.Children) == 0 {
			return nil
		}
		idx := p.Offset
		if idx >= len(c.root.Children) {
			idx = len(c.root.Children) - 1
		}
		if idx < 0 {
			idx = 0
		}
		return c.root.Children[idx]
	}
	for n != nil && n.Parent != c.root {
		n = n.Parent
	}
	return n
}

func blockText(block *dom.Node) string {
	if block == nil {
		return ""
	}
	return block.TextContent()
}

func paragraphFromCode(code string) *dom.Node {
	p := dom.NewElement("p")
	line := ""
	flush := func() {
		if line != "" {
			p.AppendChild(dom.NewText(line))
			line = ""
		}
	}
	for _, r := range code {
		if r == '\n' {
			flush()
			if p.LastChild() != nil {
				p.AppendChild(dom.NewElement("br"))
			}
			continue
		}
		line += string(r)
	}
	flush()
	// A trailing br carries no content
	if last := p.LastChild(); last != nil && last.Tag == "br" {
		last.Detach()
	}
	return p
}

func findTag(n *dom.Node, tag string) *dom.Node {
	var found *dom.Node
	n.Walk(func(c *dom.Node) bool {
		if found != nil {
			return false
		}
		if c.Type == dom.ElementNode && c.Tag == tag {
			found = c
			return false
		}
		return true
	})
	return found
}

func firstCell(n *dom.Node) *dom.Node {
	var found *dom.Node
	n.Walk(func(c *dom.Node) bool {
		if found != nil {
			return false
		}
		if c.IsCell() {
			found = c
			return false
		}
		return true
	})
	return found
}

func firstText(n *dom.Node) *dom.Node {
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
