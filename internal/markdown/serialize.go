package markdown

import (
	"fmt"
	"strings"

	"github.com/editkit/mdsurface/internal/dom"
)

// Serialize converts a document tree back to canonical markdown.
// Unknown structure degrades to its literal text; serialization never
// fails.
func Serialize(root *dom.Node) string {
	if root == nil {
		return ""
	}
	blocks := serializeBlocks(root.Children)
	out := strings.Join(blocks, "\n\n")
	if out != "" {
		out += "\n"
	}
	return out
}

func serializeBlocks(nodes []*dom.Node) []string {
	var blocks []string
	for _, n := range nodes {
		if s := serializeBlock(n); s != "" {
			blocks = append(blocks, s)
		}
	}
	return blocks
}

func serializeBlock(n *dom.Node) string {
	if n.Type == dom.TextNode {
		return strings.TrimSpace(n.Data)
	}

	switch n.Tag {
	case "p", "div":
		return strings.TrimSpace(inlineContent(n))

	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := n.HeadingLevel()
		text := strings.TrimSpace(inlineContent(n))
		if text == "" {
			return ""
		}
		return strings.Repeat("#", level) + " " + text

	case "blockquote":
		inner := strings.Join(serializeBlocks(n.Children), "\n\n")
		if inner == "" {
			inner = strings.TrimSpace(inlineContent(n))
		}
		if inner == "" {
			return ""
		}
		lines := strings.Split(inner, "\n")
		for i, line := range lines {
			if line == "" {
				lines[i] = ">"
			} else {
				lines[i] = "> " + line
			}
		}
		return strings.Join(lines, "\n")

	case "ul", "ol":
		return strings.Join(serializeList(n, 0), "\n")

	case "li":
		// A stray item outside a list serializes as plain text
		return strings.TrimSpace(inlineContent(n))

	case "pre":
		return serializeCodeBlock(n)

	case "table":
		return serializeTable(n)

	case "hr":
		return "---"

	default:
		return strings.TrimSpace(inlineContent(n))
	}
}

// serializeList emits one line per item, nested sub-lists indented by
// two spaces per level through normal recursive block handling
func serializeList(list *dom.Node, depth int) []string {
	indent := strings.Repeat("  ", depth)
	ordered := list.Tag == "ol"
	var lines []string
	idx := 0

	for _, child := range list.Children {
		if child.Type != dom.ElementNode || child.Tag != "li" {
			continue
		}
		idx++

		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", idx)
		}

		// Item text comes from everything except nested sub-lists
		var textParts []string
		var sublists []*dom.Node
		for _, c := range child.Children {
			if c.Type == dom.ElementNode && (c.Tag == "ul" || c.Tag == "ol") {
				sublists = append(sublists, c)
				continue
			}
			if c.Type == dom.ElementNode && c.IsBlock() {
				textParts = append(textParts, strings.TrimSpace(inlineContent(c)))
				continue
			}
			textParts = append(textParts, inlineNode(c))
		}
		text := strings.TrimSpace(strings.Join(textParts, ""))
		text = strings.ReplaceAll(text, "\n", " ")
		lines = append(lines, indent+marker+text)

		for _, sub := range sublists {
			lines = append(lines, serializeList(sub, depth+1)...)
		}
	}
	return lines
}

// serializeCodeBlock handles a pre that contains a code element, or
// only a lingering language label when all code content was deleted but
// the block shell remains
func serializeCodeBlock(pre *dom.Node) string {
	var codeEl *dom.Node
	hasLabel := false
	for _, c := range pre.Children {
		if c.Type != dom.ElementNode {
			continue
		}
		if c.Tag == "code" && codeEl == nil {
			codeEl = c
		}
		if c.HasClass(LangLabelClass) {
			hasLabel = true
		}
	}
	if codeEl == nil && !hasLabel {
		// Not one of ours; treat as plain preformatted text
		text := strings.TrimRight(pre.TextContent(), "\n")
		return "```\n" + text + "\n```"
	}

	lang := CodeLang(pre)
	code := ""
	if codeEl != nil {
		code = strings.TrimRight(codeEl.TextContent(), "\n")
	}
	return "```" + lang + "\n" + code + "\n```"
}

func serializeTable(table *dom.Node) string {
	rows := tableRows(table)
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, row := range rows {
		cells := rowCells(row)
		sb.WriteString("|")
		for _, cell := range cells {
			sb.WriteString(" " + cellText(cell) + " |")
		}
		sb.WriteString("\n")

		// Separator line directly after the header row
		if i == 0 {
			sb.WriteString("|")
			for range cells {
				sb.WriteString(" --- |")
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// cellText flattens a cell to a single line: inner newlines collapse
// to spaces and the result is trimmed
func cellText(cell *dom.Node) string {
	text := inlineContent(cell)
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}

func tableRows(table *dom.Node) []*dom.Node {
	var rows []*dom.Node
	table.Walk(func(n *dom.Node) bool {
		if n.Type == dom.ElementNode && n.Tag == "tr" {
			rows = append(rows, n)
			return false
		}
		return true
	})
	return rows
}

func rowCells(row *dom.Node) []*dom.Node {
	var cells []*dom.Node
	for _, c := range row.Children {
		if c.IsCell() {
			cells = append(cells, c)
		}
	}
	return cells
}

// inlineContent serializes the inline children of a node
func inlineContent(n *dom.Node) string {
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(inlineNode(c))
	}
	return sb.String()
}

func inlineNode(n *dom.Node) string {
	if n.Type == dom.TextNode {
		return n.Data
	}

	switch n.Tag {
	case "strong", "b":
		inner := inlineContent(n)
		if inner == "" {
			return ""
		}
		return "**" + inner + "**"
	case "em", "i":
		inner := inlineContent(n)
		if inner == "" {
			return ""
		}
		return "*" + inner + "*"
	case "del", "s", "strike":
		inner := inlineContent(n)
		if inner == "" {
			return ""
		}
		return "~~" + inner + "~~"
	case "code":
		return "`" + n.TextContent() + "`"
	case "a":
		return "[" + inlineContent(n) + "](" + n.Attr("href") + ")"
	case "img":
		return "![" + n.Attr("alt") + "](" + n.Attr("src") + ")"
	case "br":
		return "\n"
	case "span":
		if n.HasClass(LangLabelClass) {
			return ""
		}
		return inlineContent(n)
	default:
		return inlineContent(n)
	}
}
