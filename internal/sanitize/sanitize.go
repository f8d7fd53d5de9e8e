// Package sanitize cleans pasted HTML before it is inserted into the
// document tree. Pasted content is untrusted: active elements are
// dropped with their content, attributes are reduced to an allow-list
// and script-bearing URI schemes are neutralized.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// dropWithContent lists elements removed entirely, including children
var dropWithContent = map[string]bool{
	"script": true, "style": true, "iframe": true, "object": true,
	"embed": true, "form": true, "input": true, "button": true,
	"select": true, "textarea": true, "option": true, "noscript": true,
}

// allowedAttrs is the attribute allow-list; everything else is stripped
var allowedAttrs = map[string]bool{
	"href": true, "src": true, "alt": true, "title": true,
	"width": true, "height": true, "colspan": true, "rowspan": true,
	"class": true,
}

// HTML returns a safe version of dirty. Malformed input is cleaned on a
// best-effort basis; the function never fails.
func HTML(dirty string) string {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	nodes, err := html.ParseFragment(strings.NewReader(dirty), ctx)
	if err != nil {
		return html.EscapeString(dirty)
	}

	var sb strings.Builder
	for _, n := range nodes {
		cleanNode(&sb, n)
	}
	return sb.String()
}

// PlainText converts pasted plain text to safe HTML: escaped, with
// newlines as line breaks
func PlainText(text string) string {
	escaped := html.EscapeString(text)
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

func cleanNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(html.EscapeString(n.Data))

	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if dropWithContent[tag] {
			return
		}

		sb.WriteString("<")
		sb.WriteString(tag)
		for _, attr := range n.Attr {
			key := strings.ToLower(attr.Key)
			if !allowedAttrs[key] {
				continue
			}
			val := attr.Val
			if key == "href" || key == "src" {
				val = safeURI(val)
				if val == "" {
					continue
				}
			}
			sb.WriteString(" ")
			sb.WriteString(key)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(val))
			sb.WriteString(`"`)
		}
		sb.WriteString(">")

		if !voidElements[tag] {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				cleanNode(sb, c)
			}
			sb.WriteString("</")
			sb.WriteString(tag)
			sb.WriteString(">")
		}
	}
	// Comments, doctypes and the rest are dropped
}

var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "col": true, "wbr": true,
	"area": true, "source": true, "track": true,
}

// safeURI neutralizes URI schemes that smuggle executable content.
// Returns "" when the URI must be removed.
func safeURI(uri string) string {
	trimmed := strings.TrimSpace(uri)
	// Scheme comparison ignores case and embedded whitespace/control
	// characters, which browsers tolerate
	normalized := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, strings.ToLower(trimmed))

	if strings.HasPrefix(normalized, "javascript:") {
		return ""
	}
	if strings.HasPrefix(normalized, "data:text/html") {
		return ""
	}
	if strings.HasPrefix(normalized, "vbscript:") {
		return ""
	}
	return trimmed
}
