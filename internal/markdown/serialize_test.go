package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editkit/mdsurface/internal/dom"
)

func TestRoundTripInlineMarks(t *testing.T) {
	md := "**bold** and *italic* and ~~gone~~"
	got := Serialize(Render(md, nil))
	assert.Equal(t, md+"\n", got)
}

func TestRoundTripHeadingAndParagraph(t *testing.T) {
	md := "# Title\n\nSome text with `code` and a [link](https://example.com).\n"
	got := Serialize(Render(md, nil))
	assert.Equal(t, md, got)
}

func TestRoundTripTable(t *testing.T) {
	md := "| A | B |\n| --- | --- |\n| 1 | 2 |\n"
	got := Serialize(Render(md, nil))
	assert.Equal(t, md, got)

	// Stability: a second trip must not drift
	assert.Equal(t, got, Serialize(Render(got, nil)))
}

func TestRoundTripFencedCode(t *testing.T) {
	md := "```python\nprint(1)\n```\n"
	got := Serialize(Render(md, nil))
	assert.Equal(t, md, got)
}

func TestRoundTripNestedList(t *testing.T) {
	md := "- a\n  - b\n  - c\n- d\n"
	got := Serialize(Render(md, nil))
	assert.Equal(t, md, got)
}

func TestRoundTripOrderedList(t *testing.T) {
	md := "1. first\n2. second\n3. third\n"
	got := Serialize(Render(md, nil))
	assert.Equal(t, md, got)
}

func TestRoundTripBlockquoteAndRule(t *testing.T) {
	md := "> quoted text\n\n---\n\nafter\n"
	got := Serialize(Render(md, nil))
	assert.Equal(t, md, got)
}

func TestRoundTripImage(t *testing.T) {
	md := "![alt text](https://example.com/x.png)\n"
	got := Serialize(Render(md, nil))
	assert.Equal(t, md, got)
}

func TestSerializeTableCollapsesCellNewlines(t *testing.T) {
	table := dom.NewElement("table")
	tr := dom.NewElement("tr")
	cell := dom.NewElement("th")
	cell.AppendChild(dom.NewText("two"))
	cell.AppendChild(dom.NewElement("br"))
	cell.AppendChild(dom.NewText("lines"))
	tr.AppendChild(cell)
	table.AppendChild(tr)

	root := dom.NewElement("div")
	root.AppendChild(table)

	got := Serialize(root)
	require.Contains(t, got, "| two lines |")
	assert.Contains(t, got, "| --- |")
}

func TestSerializeDegradedCodeBlockKeepsLanguage(t *testing.T) {
	// All code content deleted, only the pre shell and the label remain
	pre := dom.NewElement("pre")
	pre.SetAttr("data-lang", "go")
	label := dom.NewElement("span")
	label.SetAttr("class", LangLabelClass)
	label.SetAttr("data-lang", "go")
	label.AppendChild(dom.NewText("go"))
	pre.AppendChild(label)

	root := dom.NewElement("div")
	root.AppendChild(pre)

	got := Serialize(root)
	assert.Equal(t, "```go\n\n```\n", got)
}

func TestSerializeCodeLangPrefersClassOverLabel(t *testing.T) {
	pre := dom.NewElement("pre")
	label := dom.NewElement("span")
	label.SetAttr("class", LangLabelClass)
	label.SetAttr("data-lang", "ruby")
	pre.AppendChild(label)
	code := dom.NewElement("code")
	code.SetAttr("class", "language-python")
	code.AppendChild(dom.NewText("print(1)\n"))
	pre.AppendChild(code)

	assert.Equal(t, "python", CodeLang(pre))
}

func TestSerializeEmptyTree(t *testing.T) {
	assert.Equal(t, "", Serialize(dom.NewElement("div")))
	assert.Equal(t, "", Serialize(nil))
}

func TestSerializeSkipsLanguageLabelText(t *testing.T) {
	got := Serialize(Render("```python\nprint(1)\n```\n", nil))
	assert.False(t, strings.Contains(got, "plain text") || strings.Contains(got, "pythonprint"),
		"label text must not leak into markdown, got %q", got)
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":        "hello-world",
		"  multiple   spaces ": "multiple-spaces",
		"Already-Hyphenated":   "already-hyphenated",
		"a -- b":               "a-b",
		"":                     "",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugIsDeterministic(t *testing.T) {
	if Slug("Repeat Me") != Slug("Repeat Me") {
		t.Errorf("identical heading text must yield identical slugs")
	}
}
