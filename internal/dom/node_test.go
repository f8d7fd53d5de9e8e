package dom

import "testing"

func TestAppendChildMovesAttachedNode(t *testing.T) {
	a := NewElement("p")
	b := NewElement("p")
	text := NewText("hello")

	a.AppendChild(text)
	b.AppendChild(text)

	if len(a.Children) != 0 {
		t.Errorf("expected node to be moved out of first parent, still has %d children", len(a.Children))
	}
	if len(b.Children) != 1 || text.Parent != b {
		t.Errorf("expected node to be owned by second parent")
	}
}

func TestInsertBefore(t *testing.T) {
	p := NewElement("p")
	first := NewText("a")
	second := NewText("b")
	p.AppendChild(second)
	p.InsertBefore(first, second)

	if p.Children[0] != first || p.Children[1] != second {
		t.Errorf("expected [a b] order, got [%s %s]", p.Children[0].Data, p.Children[1].Data)
	}
}

func TestUnwrapSplicesChildren(t *testing.T) {
	p := NewElement("p")
	p.AppendChild(NewText("before "))
	strong := NewElement("strong")
	strong.AppendChild(NewText("bold"))
	p.AppendChild(strong)
	p.AppendChild(NewText(" after"))

	strong.Unwrap()

	if got := p.TextContent(); got != "before bold after" {
		t.Errorf("TextContent = %q, want %q", got, "before bold after")
	}
	if len(p.Children) != 3 {
		t.Errorf("expected 3 children after unwrap, got %d", len(p.Children))
	}
	if p.Children[1].Type != TextNode || p.Children[1].Parent != p {
		t.Errorf("spliced child not reparented correctly")
	}
}

func TestClosestTagStopsAtBoundary(t *testing.T) {
	root := NewElement("div")
	quote := NewElement("blockquote")
	para := NewElement("p")
	text := NewText("x")
	root.AppendChild(quote)
	quote.AppendChild(para)
	para.AppendChild(text)

	if got := text.ClosestTag("blockquote", root); got != quote {
		t.Errorf("expected to find blockquote ancestor")
	}
	if got := text.ClosestTag("table", root); got != nil {
		t.Errorf("expected nil for missing ancestor, got %v", got)
	}
	// Boundary below the match hides it
	if got := text.ClosestTag("blockquote", para); got != nil {
		t.Errorf("expected boundary to stop the walk, got %v", got)
	}
}

func TestCloneIsDeepAndDetached(t *testing.T) {
	p := NewElement("p")
	p.SetAttr("id", "x")
	p.AppendChild(NewText("hi"))

	cp := p.Clone()
	cp.Children[0].Data = "changed"
	cp.SetAttr("id", "y")

	if p.Children[0].Data != "hi" || p.Attr("id") != "x" {
		t.Errorf("clone mutation leaked into original")
	}
	if cp.Parent != nil {
		t.Errorf("clone should be detached")
	}
}

func TestHeadingLevel(t *testing.T) {
	cases := map[string]int{"h1": 1, "h3": 3, "h6": 6, "h7": 0, "hr": 0, "p": 0}
	for tag, want := range cases {
		if got := NewElement(tag).HeadingLevel(); got != want {
			t.Errorf("HeadingLevel(%s) = %d, want %d", tag, got, want)
		}
	}
}

func TestReplaceWithKeepsPosition(t *testing.T) {
	root := NewElement("div")
	a := NewElement("p")
	b := NewElement("p")
	c := NewElement("p")
	root.AppendChild(a)
	root.AppendChild(b)
	root.AppendChild(c)

	repl := NewElement("h1")
	b.ReplaceWith(repl)

	if root.Children[1] != repl {
		t.Errorf("replacement not at original index")
	}
	if b.Parent != nil {
		t.Errorf("replaced node should be detached")
	}
}

func TestAncestorsNearestFirstUpToBoundary(t *testing.T) {
	root := NewElement("div")
	quote := NewElement("blockquote")
	para := NewElement("p")
	text := NewText("x")
	root.AppendChild(quote)
	quote.AppendChild(para)
	para.AppendChild(text)

	chain := text.Ancestors(root)
	if len(chain) != 2 {
		t.Fatalf("got %d ancestors, want 2", len(chain))
	}
	if chain[0] != para || chain[1] != quote {
		t.Errorf("chain not nearest-first: %v", chain)
	}

	if got := text.Ancestors(nil); len(got) != 3 {
		t.Errorf("nil boundary chain length = %d, want 3", len(got))
	}
}

func TestWalkFalseSkipsChildrenNotSiblings(t *testing.T) {
	table := NewElement("table")
	for i := 0; i < 3; i++ {
		tr := NewElement("tr")
		td := NewElement("td")
		td.AppendChild(NewText("x"))
		tr.AppendChild(td)
		table.AppendChild(tr)
	}

	// Collect rows without descending into them: all three siblings
	// must be visited even though each visit returns false
	var rows []*Node
	table.Walk(func(n *Node) bool {
		if n.Tag == "tr" {
			rows = append(rows, n)
			return false
		}
		return true
	})
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	// Skipped subtrees are really skipped
	cells := 0
	table.Walk(func(n *Node) bool {
		if n.Tag == "tr" {
			return false
		}
		if n.Tag == "td" {
			cells++
		}
		return true
	})
	if cells != 0 {
		t.Errorf("visited %d cells under skipped rows, want 0", cells)
	}
}

func TestWalkVisitsInDocumentOrder(t *testing.T) {
	root := NewElement("div")
	a := NewElement("p")
	a.AppendChild(NewText("one"))
	b := NewElement("p")
	b.AppendChild(NewText("two"))
	root.AppendChild(a)
	root.AppendChild(b)

	var order []string
	root.Walk(func(n *Node) bool {
		if n.Type == TextNode {
			order = append(order, n.Data)
		}
		return true
	})
	if len(order) != 2 || order[0] != "one" || order[1] != "two" {
		t.Errorf("visit order = %v, want [one two]", order)
	}
}
