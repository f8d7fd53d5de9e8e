package markdown

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/editkit/mdsurface/internal/dom"
)

// ParseFragment parses an HTML fragment into detached document tree
// nodes. Comments and other non-content nodes are dropped. Malformed
// input parses to whatever the tokenizer can recover; it never fails.
func ParseFragment(fragment string) []*dom.Node {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return []*dom.Node{dom.NewText(fragment)}
	}

	var out []*dom.Node
	for _, n := range parsed {
		if converted := convertHTMLNode(n); converted != nil {
			out = append(out, converted)
		}
	}
	return out
}

func convertHTMLNode(n *html.Node) *dom.Node {
	switch n.Type {
	case html.TextNode:
		return dom.NewText(n.Data)
	case html.ElementNode:
		el := dom.NewElement(strings.ToLower(n.Data))
		for _, attr := range n.Attr {
			el.SetAttr(strings.ToLower(attr.Key), attr.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if converted := convertHTMLNode(c); converted != nil {
				el.AppendChild(converted)
			}
		}
		return el
	}
	return nil
}
