package command

import (
	"strings"
	"testing"

	"github.com/editkit/mdsurface/internal/dom"
	"github.com/editkit/mdsurface/internal/markdown"
	"github.com/editkit/mdsurface/internal/selection"
)

// stubPrompter answers prompts from a canned map; declined refuses all
type stubPrompter struct {
	answers  map[string]string
	declined bool
}

func (s stubPrompter) Input(prompt, initial string) (string, bool) {
	if s.declined {
		return "", false
	}
	return s.answers[prompt], true
}

func setup(t *testing.T, md string) (*dom.Node, *Commander) {
	t.Helper()
	root := markdown.Render(md, nil)
	c := New(selection.NewEngine(root), root, stubPrompter{answers: map[string]string{
		"Link URL":  "https://example.com",
		"Image URL": "https://example.com/x.png",
		"Alt text":  "an image",
	}})
	return root, c
}

func locate(root *dom.Node, tag string) *dom.Node {
	return findTag(root, tag)
}

func textIn(root *dom.Node) *dom.Node {
	return firstText(root)
}

func cursorIn(n *dom.Node) selection.Selection {
	return selection.Collapse(selection.Point{Node: n, Offset: 0})
}

func countTag(root *dom.Node, tag string) int {
	count := 0
	root.Walk(func(n *dom.Node) bool {
		if n.Type == dom.ElementNode && n.Tag == tag {
			count++
		}
		return true
	})
	return count
}

func TestExecUnknownActionRefuses(t *testing.T) {
	_, c := setup(t, "hello")
	if c.Exec("transmogrify") {
		t.Errorf("unknown action must refuse")
	}
}

func TestBoldTogglesAndTracksActive(t *testing.T) {
	root, c := setup(t, "hello world")
	text := textIn(root)
	c.SetSelection(selection.Selection{
		Anchor: selection.Point{Node: text, Offset: 0},
		Focus:  selection.Point{Node: text, Offset: 5},
	})

	if !c.Exec("bold") {
		t.Fatalf("bold should succeed")
	}
	if locate(root, "strong") == nil {
		t.Fatalf("expected a strong wrapper")
	}
	if !c.IsActive("strong") {
		t.Errorf("strong should be active after wrapping")
	}

	if !c.Exec("bold") {
		t.Fatalf("bold toggle off should succeed")
	}
	if locate(root, "strong") != nil {
		t.Errorf("strong wrapper should be gone after toggle")
	}
}

func TestIsActiveNormalizesAliasTags(t *testing.T) {
	root, c := setup(t, "~~gone~~")
	c.SetSelection(cursorIn(textIn(locate(root, "del"))))
	if !c.IsActive("s") || !c.IsActive("del") {
		t.Errorf("del and its s alias should both report active")
	}
}

func TestHeadingTogglesParagraph(t *testing.T) {
	root, c := setup(t, "hello world")
	c.SetSelection(cursorIn(textIn(root)))

	if !c.Exec("heading2") {
		t.Fatalf("heading should succeed")
	}
	h := locate(root, "h2")
	if h == nil {
		t.Fatalf("expected an h2")
	}
	if h.Attr("id") != "hello-world" {
		t.Errorf("heading id = %q, want hello-world", h.Attr("id"))
	}

	if !c.Exec("heading2") {
		t.Fatalf("heading toggle off should succeed")
	}
	if locate(root, "h2") != nil {
		t.Errorf("h2 should revert to a paragraph")
	}
}

func TestHeadingSwitchesLevels(t *testing.T) {
	root, c := setup(t, "# title")
	c.SetSelection(cursorIn(textIn(root)))

	if !c.Exec("heading3") {
		t.Fatalf("level switch should succeed")
	}
	if locate(root, "h1") != nil || locate(root, "h3") == nil {
		t.Errorf("h1 should have become h3")
	}
}

func TestHeadingRefusesInsideTableCell(t *testing.T) {
	root, c := setup(t, "| A |\n| --- |\n| 1 |\n")
	cell := findTag(root, "td")
	c.SetSelection(cursorIn(textIn(cell)))
	if c.Exec("heading1") {
		t.Errorf("heading inside a table cell must refuse")
	}
}

func TestBulletListFromSingleBlockSplitsLines(t *testing.T) {
	root, c := setup(t, "a\nb")
	c.SetSelection(cursorIn(textIn(root)))

	if !c.Exec("bulletList") {
		t.Fatalf("bulletList should succeed")
	}
	if got := markdown.Serialize(root); got != "- a\n- b\n" {
		t.Errorf("serialized list = %q", got)
	}
}

func TestOrderedListFromMultipleBlocks(t *testing.T) {
	root, c := setup(t, "one\n\ntwo")
	first := textIn(root.Children[0])
	second := textIn(root.Children[1])
	c.SetSelection(selection.Selection{
		Anchor: selection.Point{Node: first, Offset: 0},
		Focus:  selection.Point{Node: second, Offset: 3},
	})

	if !c.Exec("orderedList") {
		t.Fatalf("orderedList should succeed")
	}
	if got := markdown.Serialize(root); got != "1. one\n2. two\n" {
		t.Errorf("serialized list = %q", got)
	}
}

func TestSameTypeListUnwrapsToParagraphs(t *testing.T) {
	root, c := setup(t, "- a\n- b\n")
	c.SetSelection(cursorIn(textIn(root)))

	if !c.Exec("bulletList") {
		t.Fatalf("unwrap should succeed")
	}
	if locate(root, "ul") != nil {
		t.Fatalf("list should be gone")
	}
	if got := markdown.Serialize(root); got != "a\n\nb\n" {
		t.Errorf("unwrapped form = %q", got)
	}
}

func TestOppositeTypeRetagsEveryNestingLevel(t *testing.T) {
	root, c := setup(t, "- a\n  - b\n")
	c.SetSelection(cursorIn(textIn(root)))

	if !c.Exec("orderedList") {
		t.Fatalf("retag should succeed")
	}
	if countTag(root, "ul") != 0 {
		t.Errorf("every ul should have retagged")
	}
	if countTag(root, "ol") != 2 {
		t.Errorf("both nesting levels should now be ol, got %d", countTag(root, "ol"))
	}
	// Retag keeps the items in place
	if got := markdown.Serialize(root); got != "1. a\n  1. b\n" {
		t.Errorf("retagged form = %q", got)
	}
}

func TestIndentNeedsPrecedingSibling(t *testing.T) {
	root, c := setup(t, "- a\n- b\n")
	firstItem := locate(root, "li")
	c.SetSelection(cursorIn(textIn(firstItem)))
	if c.Exec("indentList") {
		t.Errorf("indenting the first item must refuse")
	}
}

func TestIndentThenOutdentRoundTrips(t *testing.T) {
	root, c := setup(t, "- a\n- b\n")
	before := markdown.Serialize(root)

	list := locate(root, "ul")
	second := list.Children[1]
	c.SetSelection(cursorIn(textIn(second)))

	if !c.Exec("indentList") {
		t.Fatalf("indent should succeed")
	}
	if got := markdown.Serialize(root); got != "- a\n  - b\n" {
		t.Errorf("indented form = %q", got)
	}

	if !c.Exec("outdentList") {
		t.Fatalf("outdent should succeed")
	}
	if got := markdown.Serialize(root); got != before {
		t.Errorf("outdent did not restore the list: %q", got)
	}
}

func TestOutdentMovesTrailingSiblingsIntoSublist(t *testing.T) {
	root, c := setup(t, "- a\n  - b\n  - c\n")
	sub := locate(root, "ul").Children[0] // li "a"
	inner := lastSublist(sub)
	b := inner.Children[0]
	c.SetSelection(cursorIn(textIn(b)))

	if !c.Exec("outdentList") {
		t.Fatalf("outdent should succeed")
	}
	// b is now a top-level item carrying c as its sublist
	if got := markdown.Serialize(root); got != "- a\n- b\n  - c\n" {
		t.Errorf("outdented form = %q", got)
	}
}

func TestOutdentAtTopLevelRefuses(t *testing.T) {
	root, c := setup(t, "- a\n")
	c.SetSelection(cursorIn(textIn(root)))
	if c.Exec("outdentList") {
		t.Errorf("outdenting a top-level item must refuse")
	}
}

func TestBlockquoteToggle(t *testing.T) {
	root, c := setup(t, "quoted")
	c.SetSelection(cursorIn(textIn(root)))

	if !c.Exec("blockquote") {
		t.Fatalf("blockquote should succeed")
	}
	if locate(root, "blockquote") == nil {
		t.Fatalf("expected a blockquote")
	}
}

func TestCodeBlockToggle(t *testing.T) {
	root, c := setup(t, "some code")
	c.SetSelection(cursorIn(textIn(root)))

	if !c.Exec("codeBlock") {
		t.Fatalf("codeBlock should succeed")
	}
	pre := locate(root, "pre")
	if pre == nil {
		t.Fatalf("expected a pre")
	}
	if code := findTag(pre, "code"); code == nil || code.TextContent() != "some code" {
		t.Errorf("code content lost")
	}

	c.SetSelection(cursorIn(findTag(pre, "code")))
	if !c.Exec("codeBlock") {
		t.Fatalf("codeBlock toggle off should succeed")
	}
	if locate(root, "pre") != nil {
		t.Errorf("pre should unwrap to a paragraph")
	}
	if !strings.Contains(root.TextContent(), "some code") {
		t.Errorf("unwrapped text lost: %q", root.TextContent())
	}
}

func TestCodeBlockUnwrapPreservesLineBreaks(t *testing.T) {
	root, c := setup(t, "```\nfirst\nsecond\n```\n")
	pre := locate(root, "pre")
	c.SetSelection(cursorIn(findTag(pre, "code")))

	if !c.Exec("codeBlock") {
		t.Fatalf("unwrap should succeed")
	}
	p := locate(root, "p")
	if p == nil || countTag(p, "br") != 1 {
		t.Errorf("expected one br between the two lines")
	}
}

func TestLinkWrapsSelection(t *testing.T) {
	root, c := setup(t, "click here")
	text := textIn(root)
	c.SetSelection(selection.Selection{
		Anchor: selection.Point{Node: text, Offset: 0},
		Focus:  selection.Point{Node: text, Offset: 5},
	})

	if !c.Exec("link") {
		t.Fatalf("link should succeed")
	}
	a := locate(root, "a")
	if a == nil || a.Attr("href") != "https://example.com" {
		t.Fatalf("expected a link with the prompted href")
	}
	if a.TextContent() != "click" {
		t.Errorf("link text = %q, want click", a.TextContent())
	}
}

func TestLinkDeclinedPromptAbandons(t *testing.T) {
	root := markdown.Render("hello", nil)
	c := New(selection.NewEngine(root), root, stubPrompter{declined: true})
	c.SetSelection(cursorIn(textIn(root)))

	if c.Exec("link") {
		t.Errorf("a declined prompt must abandon the action")
	}
	if locate(root, "a") != nil {
		t.Errorf("abandoned link must not mutate the tree")
	}
}

func TestLinkEmptyURLRemovesExistingLink(t *testing.T) {
	root := markdown.Render("[here](https://old.example)", nil)
	c := New(selection.NewEngine(root), root, stubPrompter{answers: map[string]string{}})
	c.SetSelection(cursorIn(textIn(locate(root, "a"))))

	if !c.Exec("link") {
		t.Fatalf("clearing a link should succeed")
	}
	if locate(root, "a") != nil {
		t.Errorf("link should be removed")
	}
	if !strings.Contains(root.TextContent(), "here") {
		t.Errorf("link text should survive removal")
	}
}

func TestImageInsertsAtCursor(t *testing.T) {
	root, c := setup(t, "before")
	c.SetSelection(cursorIn(textIn(root)))

	if !c.Exec("image") {
		t.Fatalf("image should succeed")
	}
	img := locate(root, "img")
	if img == nil || img.Attr("src") != "https://example.com/x.png" || img.Attr("alt") != "an image" {
		t.Errorf("image attributes wrong")
	}
}

func TestHorizontalRuleInsertsAfterBlock(t *testing.T) {
	root, c := setup(t, "para")
	c.SetSelection(cursorIn(textIn(root)))

	if !c.Exec("horizontalRule") {
		t.Fatalf("horizontalRule should succeed")
	}
	if len(root.Children) != 2 || root.Children[1].Tag != "hr" {
		t.Errorf("hr should follow the paragraph")
	}
}

func TestTableInsertsSkeletonAndSelectsFirstCell(t *testing.T) {
	root, c := setup(t, "para")
	c.SetSelection(cursorIn(textIn(root)))

	if !c.Exec("table") {
		t.Fatalf("table should succeed")
	}
	tbl := locate(root, "table")
	if tbl == nil {
		t.Fatalf("expected a table")
	}
	if countTag(tbl, "tr") != 3 || countTag(tbl, "th") != 3 {
		t.Errorf("expected a 3x3 skeleton")
	}
	sel := c.Selection()
	if sel.Anchor.Node == nil || firstCell(tbl).Contains(sel.Anchor.Node) == false {
		t.Errorf("selection should land in the first header cell")
	}
}

func TestTableRefusesInsideTable(t *testing.T) {
	root, c := setup(t, "| A |\n| --- |\n| 1 |\n")
	c.SetSelection(cursorIn(textIn(findTag(root, "td"))))
	if c.Exec("table") {
		t.Errorf("nested table insertion must refuse")
	}
}

func TestUndoRedoDelegateUpward(t *testing.T) {
	_, c := setup(t, "x")
	if c.Exec("undo") || c.Exec("redo") {
		t.Errorf("undo/redo with no handlers must refuse")
	}
	called := false
	c.UndoFn = func() bool { called = true; return true }
	if !c.Exec("undo") || !called {
		t.Errorf("undo should route to the installed handler")
	}
}
