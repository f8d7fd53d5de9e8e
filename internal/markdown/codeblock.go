package markdown

import (
	"strings"

	"github.com/editkit/mdsurface/internal/dom"
)

// LangLabelClass marks the non-editable language label rendered over a
// fenced code block
const LangLabelClass = "code-lang-label"

// PlainLangLabel is the label text for an untagged code block
const PlainLangLabel = "plain text"

// CodeBlockNode builds the tree form of a fenced code block: a pre
// carrying the language both as a machine-readable attribute and as a
// visible label element, followed by the code element.
//
// When highlight returns a non-empty fragment for the language, that
// fragment is used with the label spliced in front and the
// language-<lang> class kept on the code element. Otherwise the code is
// kept as plain text.
func CodeBlockNode(lang, code string, highlight HighlightFunc) *dom.Node {
	pre := dom.NewElement("pre")
	pre.SetAttr("data-lang", lang)
	pre.AppendChild(langLabel(lang))

	if lang != "" && highlight != nil {
		if frag := safeHighlight(highlight, code, lang); frag != "" {
			spliceHighlighted(pre, frag, lang)
			return pre
		}
	}

	codeEl := dom.NewElement("code")
	if lang != "" {
		codeEl.SetAttr("class", "language-"+lang)
	}
	codeEl.AppendChild(dom.NewText(code))
	pre.AppendChild(codeEl)
	return pre
}

// langLabel builds the label element. It is marked non-editable so the
// selection engine and serializer can recognize and skip it.
func langLabel(lang string) *dom.Node {
	label := dom.NewElement("span")
	label.SetAttr("class", LangLabelClass)
	label.SetAttr("contenteditable", "false")
	label.SetAttr("data-lang", lang)
	display := lang
	if display == "" {
		display = PlainLangLabel
	}
	label.AppendChild(dom.NewText(display))
	return label
}

// spliceHighlighted parses the highlighter's HTML fragment and installs
// it under pre, after the label. The highlighter wraps its output in
// its own pre/code shell in some configurations; that shell is peeled
// off so the block keeps a single pre root.
func spliceHighlighted(pre *dom.Node, frag, lang string) {
	nodes := ParseFragment(frag)
	for len(nodes) == 1 && nodes[0].Type == dom.ElementNode && nodes[0].Tag == "pre" {
		inner := nodes[0]
		nodes = append([]*dom.Node(nil), inner.Children...)
		for _, c := range nodes {
			c.Parent = nil
		}
		inner.Children = nil
	}

	var codeEl *dom.Node
	for _, n := range nodes {
		if n.Type == dom.ElementNode && n.Tag == "code" {
			codeEl = n
			break
		}
	}
	if codeEl == nil {
		// No code shell in the fragment: wrap it in one
		codeEl = dom.NewElement("code")
		for _, n := range nodes {
			codeEl.AppendChild(n)
		}
		nodes = []*dom.Node{codeEl}
	}
	addClass(codeEl, "language-"+lang)

	for _, n := range nodes {
		pre.AppendChild(n)
	}
}

func addClass(n *dom.Node, class string) {
	if n.HasClass(class) {
		return
	}
	cur := n.Attr("class")
	if cur == "" {
		n.SetAttr("class", class)
		return
	}
	n.SetAttr("class", cur+" "+class)
}

// safeHighlight shields the codec from a panicking collaborator; any
// failure reads as "not available"
func safeHighlight(highlight HighlightFunc, code, lang string) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	return highlight(code, lang)
}

// CodeText extracts the code content of a pre node, skipping the
// language label. A degraded block with no code element yields the
// remaining text nodes.
func CodeText(pre *dom.Node) string {
	var codeEl *dom.Node
	pre.Walk(func(n *dom.Node) bool {
		if codeEl != nil {
			return false
		}
		if n.Type == dom.ElementNode && n.Tag == "code" {
			codeEl = n
			return false
		}
		return true
	})
	if codeEl != nil {
		return codeEl.TextContent()
	}
	var b strings.Builder
	pre.Walk(func(n *dom.Node) bool {
		if n.HasClass(LangLabelClass) {
			return false
		}
		if n.Type == dom.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

// CodeLang extracts the language of a pre node: language-* class on the
// code element first, then the label's stored attribute, then the pre's
// own attribute.
func CodeLang(pre *dom.Node) string {
	for _, c := range pre.Children {
		if c.Type == dom.ElementNode && c.Tag == "code" {
			for _, cls := range strings.Fields(c.Attr("class")) {
				if lang, ok := strings.CutPrefix(cls, "language-"); ok {
					return lang
				}
			}
		}
	}
	for _, c := range pre.Children {
		if c.Type == dom.ElementNode && c.HasClass(LangLabelClass) {
			return c.Attr("data-lang")
		}
	}
	return pre.Attr("data-lang")
}
