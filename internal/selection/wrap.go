package selection

import "github.com/editkit/mdsurface/internal/dom"

// WrapSelection toggles an inline wrapper element around the selection.
// If the selection already sits inside an element of tag, that wrapper
// is removed and its children spliced into its place. Otherwise the
// selected content is moved into a fresh wrapper and the returned
// selection spans the wrapper's contents.
//
// The operation refuses when the selection spans multiple table cells;
// wrapping across a cell boundary would corrupt the table.
func (e *Engine) WrapSelection(sel Selection, tag string) (Selection, bool) {
	if !sel.Valid() {
		return sel, false
	}

	ca := lowestCommonAncestor(sel.Anchor.Node, sel.Focus.Node)
	if ca == nil || !e.Root.Contains(ca) {
		return sel, false
	}

	// Toggle off: unwrap an existing wrapper of this tag
	if existing := ca.ClosestTag(tag, e.Root); existing != nil && existing != e.Root {
		parent := existing.Parent
		idx := existing.Index()
		count := len(existing.Children)
		existing.Unwrap()
		return Selection{
			Anchor: Point{Node: parent, Offset: idx},
			Focus:  Point{Node: parent, Offset: idx + count},
		}, true
	}

	if e.IsCrossCell(sel) {
		return sel, false
	}

	parent, i, j := e.normalizeRange(sel)
	if parent == nil {
		return sel, false
	}
	if i == j {
		// Nothing bracketed; wrapping an empty range is a no-op
		return sel, false
	}

	wrapper := dom.NewElement(tag)
	parent.InsertChildAt(wrapper, i)
	// Children shifted right by one; the range is now [i+1, j+1)
	for k := 0; k < j-i; k++ {
		wrapper.AppendChild(parent.Children[i+1])
	}

	return Selection{
		Anchor: Point{Node: wrapper, Offset: 0},
		Focus:  Point{Node: wrapper, Offset: len(wrapper.Children)},
	}, true
}

// WrapBlock toggles a wrapper at block granularity: the nearest
// block-level element enclosing the selection anchor, bounded by
// boundary, is wrapped in (or unwrapped from) an element of tag. When
// no block is found the boundary itself is treated as the block.
//
// Refuses inside a table cell; block structure inside cells is not
// supported.
func (e *Engine) WrapBlock(sel Selection, tag string, boundary *dom.Node) (Selection, bool) {
	if !sel.Valid() {
		return sel, false
	}
	if boundary == nil {
		boundary = e.Root
	}
	if !boundary.Contains(sel.Anchor.Node) {
		return sel, false
	}
	if sel.Anchor.Node.Closest(func(n *dom.Node) bool { return n.IsCell() }, boundary) != nil {
		return sel, false
	}

	// Toggle off first: any enclosing wrapper of this tag
	if existing := sel.Anchor.Node.ClosestTag(tag, boundary); existing != nil && existing != boundary {
		parent := existing.Parent
		idx := existing.Index()
		count := len(existing.Children)
		existing.Unwrap()
		return Selection{
			Anchor: Point{Node: parent, Offset: idx},
			Focus:  Point{Node: parent, Offset: idx + count},
		}, true
	}

	block := sel.Anchor.Node.Closest(func(n *dom.Node) bool {
		return n != boundary && n.IsBlock()
	}, boundary)

	wrapper := dom.NewElement(tag)
	if block == nil {
		// No block between the anchor and the boundary: wrap the
		// boundary's whole content
		for len(boundary.Children) > 0 {
			wrapper.AppendChild(boundary.Children[0])
		}
		boundary.AppendChild(wrapper)
	} else {
		block.ReplaceWith(wrapper)
		wrapper.AppendChild(block)
	}

	return sel, true
}

// InsertNodesAtCursor deletes the current selection content, inserts
// nodes at the cursor and returns a collapsed selection immediately
// after the inserted content.
func (e *Engine) InsertNodesAtCursor(sel Selection, nodes []*dom.Node) (Selection, bool) {
	if !sel.Valid() || len(nodes) == 0 {
		return sel, false
	}

	cursor := sel.Anchor
	if !sel.Collapsed() {
		var ok bool
		cursor, ok = e.DeleteRange(sel)
		if !ok {
			return sel, false
		}
	}

	parent, idx := insertionSlot(cursor)
	if parent == nil {
		return sel, false
	}
	for i, n := range nodes {
		parent.InsertChildAt(n, idx+i)
	}

	after := Point{Node: parent, Offset: idx + len(nodes)}
	return Collapse(after), true
}

// DeleteRange removes the content between the selection endpoints and
// returns the resulting collapsed cursor position
func (e *Engine) DeleteRange(sel Selection) (Point, bool) {
	if !sel.Valid() {
		return Point{}, false
	}
	if sel.Collapsed() {
		return sel.Anchor, true
	}
	parent, i, j := e.normalizeRange(sel)
	if parent == nil {
		return Point{}, false
	}
	for k := i; k < j && i < len(parent.Children); k++ {
		parent.Children[i].Detach()
	}
	return Point{Node: parent, Offset: i}, true
}

// normalizeRange reduces a selection to a child-index range [i, j)
// within a single parent. Text endpoints are split at their offsets so
// the range brackets whole nodes; endpoints deeper than the common
// ancestor fall back to their whole branch subtree (the extract
// fallback for selections spanning irregular boundaries).
func (e *Engine) normalizeRange(sel Selection) (parent *dom.Node, i, j int) {
	start, end, _ := sel.Ordered()

	// Same text node: split twice, the middle piece is the range
	if start.Node == end.Node && start.Node.Type == dom.TextNode {
		t := start.Node
		p := t.Parent
		if p == nil {
			return nil, 0, 0
		}
		mid := splitText(t, start.Offset)
		splitText(mid, end.Offset-start.Offset)
		idx := mid.Index()
		return p, idx, idx + 1
	}

	// Same element node: the offsets are already a child range
	if start.Node == end.Node && start.Node.Type == dom.ElementNode {
		n := start.Node
		return n, clampOffset(n, start.Offset), clampOffset(n, end.Offset)
	}

	ca := lowestCommonAncestor(start.Node, end.Node)
	if ca == nil {
		return nil, 0, 0
	}
	if ca.Type == dom.TextNode {
		ca = ca.Parent
		if ca == nil {
			return nil, 0, 0
		}
	}

	i = rangeEdge(ca, start, true)
	j = rangeEdge(ca, end, false)
	if j < i {
		j = i
	}
	return ca, i, j
}

// rangeEdge maps an endpoint to a child index of ca. An endpoint that
// is a direct text child of ca is split at its offset; a deeper
// endpoint contributes its whole branch subtree.
func rangeEdge(ca *dom.Node, p Point, isStart bool) int {
	if p.Node == ca {
		return clampOffset(ca, p.Offset)
	}

	// Direct text child: split so the edge falls on a node boundary
	if p.Node.Parent == ca && p.Node.Type == dom.TextNode {
		after := splitText(p.Node, p.Offset)
		if isStart {
			return after.Index()
		}
		return after.Index()
	}

	// Deeper endpoint: use the branch under ca that contains it
	branch := p.Node
	for branch.Parent != ca {
		branch = branch.Parent
		if branch == nil {
			return 0
		}
	}
	if isStart {
		return branch.Index()
	}
	return branch.Index() + 1
}

// splitText splits a text node at a rune offset and returns the node
// that starts at the offset. Offsets at the edges avoid creating empty
// text nodes.
func splitText(t *dom.Node, offset int) *dom.Node {
	runes := []rune(t.Data)
	if offset <= 0 {
		return t
	}
	if offset >= len(runes) {
		// The point after the node: a following empty split would be
		// useless, return the next sibling position via a new node only
		// when needed
		next := dom.NewText("")
		t.Parent.InsertAfter(next, t)
		return next
	}
	rest := dom.NewText(string(runes[offset:]))
	t.Data = string(runes[:offset])
	t.Parent.InsertAfter(rest, t)
	return rest
}

// insertionSlot maps a cursor point to a (parent, child-index) slot,
// splitting a text node when the cursor sits inside one
func insertionSlot(cursor Point) (*dom.Node, int) {
	n := cursor.Node
	if n == nil {
		return nil, 0
	}
	if n.Type == dom.ElementNode {
		return n, clampOffset(n, cursor.Offset)
	}
	p := n.Parent
	if p == nil {
		return nil, 0
	}
	runes := []rune(n.Data)
	switch {
	case cursor.Offset <= 0:
		return p, n.Index()
	case cursor.Offset >= len(runes):
		return p, n.Index() + 1
	default:
		splitText(n, cursor.Offset)
		return p, n.Index() + 1
	}
}
