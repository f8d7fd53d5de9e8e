// Package markdown is the bidirectional codec between the canonical
// markdown string and the document tree. Parsing is delegated to
// goldmark with the GFM extensions; serialization walks the tree.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/editkit/mdsurface/internal/dom"
)

// HighlightFunc renders code in a language to an HTML fragment, or
// returns "" when the language is not supported. Failures degrade to
// the codec's own escaped rendering.
type HighlightFunc func(code, lang string) string

// Options configures Render
type Options struct {
	// Highlight, when set, is used for fenced code block content
	Highlight HighlightFunc
}

var parser = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,          // tables, strikethrough, autolinks, task lists
		extension.Typographer,  // smart quotes and dashes
	),
)

// Render converts markdown to a document tree rooted at a div. Raw HTML
// in the source is rendered as literal text, never passed through.
// Malformed input degrades to plain text and never fails.
func Render(md string, opts *Options) *dom.Node {
	if opts == nil {
		opts = &Options{}
	}
	source := []byte(md)
	doc := parser.Parser().Parse(text.NewReader(source))

	root := dom.NewElement("div")
	r := &renderer{source: source, opts: opts}
	r.blocks(root, doc)
	return root
}

type renderer struct {
	source []byte
	opts   *Options
}

// blocks appends the converted block-level children of gm to parent
func (r *renderer) blocks(parent *dom.Node, gm gmast.Node) {
	for c := gm.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(parent, c)
	}
}

func (r *renderer) block(parent *dom.Node, gm gmast.Node) {
	switch n := gm.(type) {
	case *gmast.Heading:
		h := dom.NewElement("h" + string(rune('0'+n.Level)))
		h.SetAttr("id", Slug(r.text(n)))
		r.inlines(h, n)
		parent.AppendChild(h)

	case *gmast.Paragraph:
		p := dom.NewElement("p")
		r.inlines(p, n)
		parent.AppendChild(p)

	case *gmast.TextBlock:
		// Tight list item content: inline straight into the parent
		r.inlines(parent, n)

	case *gmast.Blockquote:
		q := dom.NewElement("blockquote")
		r.blocks(q, n)
		parent.AppendChild(q)

	case *gmast.List:
		tag := "ul"
		if n.IsOrdered() {
			tag = "ol"
		}
		list := dom.NewElement(tag)
		r.blocks(list, n)
		parent.AppendChild(list)

	case *gmast.ListItem:
		li := dom.NewElement("li")
		r.blocks(li, n)
		parent.AppendChild(li)

	case *gmast.FencedCodeBlock:
		lang := string(n.Language(r.source))
		parent.AppendChild(CodeBlockNode(lang, r.lines(n), r.opts.Highlight))

	case *gmast.CodeBlock:
		parent.AppendChild(CodeBlockNode("", r.lines(n), r.opts.Highlight))

	case *gmast.ThematicBreak:
		parent.AppendChild(dom.NewElement("hr"))

	case *gmast.HTMLBlock:
		// Raw HTML is untrusted: keep it as literal text
		var sb strings.Builder
		for i := 0; i < n.Lines().Len(); i++ {
			seg := n.Lines().At(i)
			sb.Write(seg.Value(r.source))
		}
		if n.HasClosure() {
			sb.Write(n.ClosureLine.Value(r.source))
		}
		if s := strings.TrimRight(sb.String(), "\n"); s != "" {
			p := dom.NewElement("p")
			p.AppendChild(dom.NewText(s))
			parent.AppendChild(p)
		}

	case *extast.Table:
		parent.AppendChild(r.table(n))

	default:
		// Unknown block: degrade to its literal text
		if s := r.text(n); s != "" {
			p := dom.NewElement("p")
			p.AppendChild(dom.NewText(s))
			parent.AppendChild(p)
		}
	}
}

// inlines appends the converted inline children of gm to parent
func (r *renderer) inlines(parent *dom.Node, gm gmast.Node) {
	for c := gm.FirstChild(); c != nil; c = c.NextSibling() {
		r.inline(parent, c)
	}
}

func (r *renderer) inline(parent *dom.Node, gm gmast.Node) {
	switch n := gm.(type) {
	case *gmast.Text:
		if s := string(n.Segment.Value(r.source)); s != "" {
			parent.AppendChild(dom.NewText(s))
		}
		// A single newline inside a paragraph renders as a line break
		if n.SoftLineBreak() || n.HardLineBreak() {
			parent.AppendChild(dom.NewElement("br"))
		}

	case *gmast.String:
		// Typographer substitutions arrive as String nodes
		parent.AppendChild(dom.NewText(string(n.Value)))

	case *gmast.Emphasis:
		tag := "em"
		if n.Level >= 2 {
			tag = "strong"
		}
		el := dom.NewElement(tag)
		r.inlines(el, n)
		parent.AppendChild(el)

	case *extast.Strikethrough:
		el := dom.NewElement("del")
		r.inlines(el, n)
		parent.AppendChild(el)

	case *gmast.CodeSpan:
		code := dom.NewElement("code")
		code.AppendChild(dom.NewText(r.text(n)))
		parent.AppendChild(code)

	case *gmast.Link:
		a := dom.NewElement("a")
		a.SetAttr("href", string(n.Destination))
		if len(n.Title) > 0 {
			a.SetAttr("title", string(n.Title))
		}
		r.inlines(a, n)
		parent.AppendChild(a)

	case *gmast.AutoLink:
		a := dom.NewElement("a")
		a.SetAttr("href", string(n.URL(r.source)))
		a.AppendChild(dom.NewText(string(n.Label(r.source))))
		parent.AppendChild(a)

	case *gmast.Image:
		img := dom.NewElement("img")
		img.SetAttr("src", string(n.Destination))
		img.SetAttr("alt", r.text(n))
		if len(n.Title) > 0 {
			img.SetAttr("title", string(n.Title))
		}
		parent.AppendChild(img)

	case *gmast.RawHTML:
		// Inline raw HTML is kept as literal text
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(r.source))
		}
		parent.AppendChild(dom.NewText(sb.String()))

	default:
		if s := r.text(n); s != "" {
			parent.AppendChild(dom.NewText(s))
		}
	}
}

func (r *renderer) table(n *extast.Table) *dom.Node {
	table := dom.NewElement("table")
	thead := dom.NewElement("thead")
	tbody := dom.NewElement("tbody")

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch row := c.(type) {
		case *extast.TableHeader:
			thead.AppendChild(r.tableRow(row, "th"))
		case *extast.TableRow:
			tbody.AppendChild(r.tableRow(row, "td"))
		}
	}

	if thead.FirstChild() != nil {
		table.AppendChild(thead)
	}
	if tbody.FirstChild() != nil {
		table.AppendChild(tbody)
	}
	return table
}

func (r *renderer) tableRow(row gmast.Node, cellTag string) *dom.Node {
	tr := dom.NewElement("tr")
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		cell := dom.NewElement(cellTag)
		r.inlines(cell, c)
		tr.AppendChild(cell)
	}
	return tr
}

// text collects the literal text of a goldmark node and its descendants
func (r *renderer) text(gm gmast.Node) string {
	var sb strings.Builder
	var walk func(n gmast.Node)
	walk = func(n gmast.Node) {
		switch t := n.(type) {
		case *gmast.Text:
			sb.Write(t.Segment.Value(r.source))
		case *gmast.String:
			sb.Write(t.Value)
		default:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
		}
	}
	walk(gm)
	return sb.String()
}

// lines collects the source lines of a block node (code block bodies)
func (r *renderer) lines(gm gmast.Node) string {
	var sb strings.Builder
	l := gm.Lines()
	for i := 0; i < l.Len(); i++ {
		seg := l.At(i)
		sb.Write(seg.Value(r.source))
	}
	return sb.String()
}
