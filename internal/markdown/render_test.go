package markdown

import (
	"strings"
	"testing"

	"github.com/editkit/mdsurface/internal/dom"
)

func findFirst(root *dom.Node, tag string) *dom.Node {
	var found *dom.Node
	root.Walk(func(n *dom.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == dom.ElementNode && n.Tag == tag {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestRenderHeadingGetsSlugID(t *testing.T) {
	root := Render("## Hello, World!", nil)
	h := findFirst(root, "h2")
	if h == nil {
		t.Fatalf("expected an h2 node")
	}
	if got := h.Attr("id"); got != "hello-world" {
		t.Errorf("heading id = %q, want %q", got, "hello-world")
	}
	if got := h.TextContent(); got != "Hello, World!" {
		t.Errorf("heading text = %q", got)
	}
}

func TestRenderInlineMarks(t *testing.T) {
	root := Render("**bold** and *italic* and ~~gone~~", nil)
	for _, tag := range []string{"strong", "em", "del"} {
		if findFirst(root, tag) == nil {
			t.Errorf("expected a %s node", tag)
		}
	}
	if got := root.TextContent(); got != "bold and italic and gone" {
		t.Errorf("text content = %q", got)
	}
}

func TestRenderTableShape(t *testing.T) {
	root := Render("| A | B |\n| --- | --- |\n| 1 | 2 |\n", nil)
	table := findFirst(root, "table")
	if table == nil {
		t.Fatalf("expected a table node")
	}
	if findFirst(table, "thead") == nil || findFirst(table, "tbody") == nil {
		t.Fatalf("expected thead and tbody sections")
	}

	var th, td int
	table.Walk(func(n *dom.Node) bool {
		switch n.Tag {
		case "th":
			th++
		case "td":
			td++
		}
		return true
	})
	if th != 2 || td != 2 {
		t.Errorf("got %d header cells and %d data cells, want 2 and 2", th, td)
	}
}

func TestRenderFencedCodeCarriesLanguage(t *testing.T) {
	root := Render("```python\nprint(1)\n```\n", nil)
	pre := findFirst(root, "pre")
	if pre == nil {
		t.Fatalf("expected a pre node")
	}
	if got := pre.Attr("data-lang"); got != "python" {
		t.Errorf("pre data-lang = %q, want python", got)
	}

	code := findFirst(pre, "code")
	if code == nil {
		t.Fatalf("expected a code node")
	}
	if !code.HasClass("language-python") {
		t.Errorf("code class = %q, want language-python", code.Attr("class"))
	}
	if got := strings.TrimRight(code.TextContent(), "\n"); got != "print(1)" {
		t.Errorf("code text = %q", got)
	}

	label := findFirst(pre, "span")
	if label == nil || !label.HasClass(LangLabelClass) {
		t.Fatalf("expected a language label element")
	}
	if got := label.TextContent(); got != "python" {
		t.Errorf("label text = %q, want python", got)
	}
}

func TestRenderUntaggedCodeLabelSaysPlainText(t *testing.T) {
	root := Render("```\nx\n```\n", nil)
	label := findFirst(root, "span")
	if label == nil {
		t.Fatalf("expected a label element")
	}
	if got := label.TextContent(); got != PlainLangLabel {
		t.Errorf("label text = %q, want %q", got, PlainLangLabel)
	}
}

func TestRenderHighlighterOutputIsSpliced(t *testing.T) {
	highlight := func(code, lang string) string {
		return `<pre><code><span class="tok">print</span>(1)</code></pre>`
	}
	root := Render("```python\nprint(1)\n```\n", &Options{Highlight: highlight})
	pre := findFirst(root, "pre")
	if pre == nil {
		t.Fatalf("expected a pre node")
	}
	// Label first, then the highlighted code
	first := pre.FirstChild()
	if first == nil || !first.HasClass(LangLabelClass) {
		t.Fatalf("expected the label as the first child of pre")
	}
	code := findFirst(pre, "code")
	if code == nil {
		t.Fatalf("expected a code node from the highlighter fragment")
	}
	if !code.HasClass("language-python") {
		t.Errorf("highlighted code must keep the language class, got %q", code.Attr("class"))
	}
	if findFirst(code, "span") == nil {
		t.Errorf("expected the highlighter's span markup to survive")
	}
}

func TestRenderHighlighterFailureFallsBack(t *testing.T) {
	cases := map[string]HighlightFunc{
		"empty output": func(code, lang string) string { return "" },
		"panic":        func(code, lang string) string { panic("boom") },
	}
	for name, fn := range cases {
		root := Render("```python\nprint(1)\n```\n", &Options{Highlight: fn})
		code := findFirst(root, "code")
		if code == nil {
			t.Fatalf("%s: expected a fallback code node", name)
		}
		if got := strings.TrimRight(code.TextContent(), "\n"); got != "print(1)" {
			t.Errorf("%s: fallback code text = %q", name, got)
		}
	}
}

func TestRenderRawHTMLIsNeverPassedThrough(t *testing.T) {
	root := Render("before\n\n<script>alert(1)</script>\n\nafter", nil)
	if findFirst(root, "script") != nil {
		t.Fatalf("raw HTML must not produce live nodes")
	}
	if !strings.Contains(root.TextContent(), "<script>alert(1)</script>") {
		t.Errorf("raw HTML should be kept as literal text, got %q", root.TextContent())
	}
}

func TestRenderSoftBreakBecomesLineBreak(t *testing.T) {
	root := Render("line one\nline two", nil)
	p := findFirst(root, "p")
	if p == nil {
		t.Fatalf("expected a paragraph")
	}
	if findFirst(p, "br") == nil {
		t.Errorf("single newline inside a paragraph should render as a br")
	}
}

func TestRenderAutoLink(t *testing.T) {
	root := Render("see https://example.com for more", nil)
	a := findFirst(root, "a")
	if a == nil {
		t.Fatalf("expected bare URL to auto-link")
	}
	if got := a.Attr("href"); got != "https://example.com" {
		t.Errorf("href = %q", got)
	}
}

func TestRenderNestedList(t *testing.T) {
	root := Render("- a\n  - b\n- c\n", nil)
	outer := findFirst(root, "ul")
	if outer == nil {
		t.Fatalf("expected a list")
	}
	inner := findFirst(outer.FirstChild(), "ul")
	if inner == nil {
		t.Fatalf("expected the nested list inside the first item")
	}
	if got := inner.TextContent(); got != "b" {
		t.Errorf("nested item text = %q", got)
	}
}

func TestRenderMalformedInputDoesNotPanic(t *testing.T) {
	inputs := []string{
		"",
		"| broken | table\n| ---",
		"```\nunclosed fence",
		"[link with no target](",
		strings.Repeat(">", 50) + " deep quote",
	}
	for _, in := range inputs {
		root := Render(in, nil)
		if root == nil {
			t.Errorf("Render(%q) returned nil", in)
		}
	}
}
