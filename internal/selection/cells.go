package selection

import "github.com/editkit/mdsurface/internal/dom"

// FindClosestCell resolves the table cell for a point. Two modes:
//
// A node physically inside a cell resolves by ascending until a cell is
// found or the editable root is hit.
//
// A structural table node (table, thead, tbody, tr) resolves through
// the point's child-index offset, with an off-by-one fallback: some
// selection directions report the index of a sibling rather than the
// cell itself, so the neighbouring index is tried before giving up.
func (e *Engine) FindClosestCell(p Point) *dom.Node {
	n := p.Node
	if n == nil {
		return nil
	}

	if n.Type != dom.ElementNode || !n.IsTablePart() {
		return n.Closest(func(c *dom.Node) bool { return c.IsCell() }, e.Root)
	}

	child := childAtWithFallback(n, p.Offset)
	if child == nil {
		return nil
	}
	if child.IsCell() {
		return child
	}
	return firstCellIn(child)
}

func childAtWithFallback(n *dom.Node, idx int) *dom.Node {
	pick := func(i int) *dom.Node {
		if i >= 0 && i < len(n.Children) {
			return n.Children[i]
		}
		return nil
	}
	if c := pick(idx); c != nil {
		return c
	}
	if c := pick(idx - 1); c != nil {
		return c
	}
	return pick(len(n.Children) - 1)
}

func firstCellIn(n *dom.Node) *dom.Node {
	var cell *dom.Node
	n.Walk(func(c *dom.Node) bool {
		if cell != nil {
			return false
		}
		if c.IsCell() {
			cell = c
			return false
		}
		return true
	})
	return cell
}

// IsCrossCell reports whether the selection spans more than one table
// cell. The decision runs in four branches:
//
//  1. the common ancestor resolves to a single cell: not cross-cell
//  2. the selection is not inside a table at all: not cross-cell
//  3. both endpoints resolve to cells: cross-cell iff they differ
//  4. exactly one endpoint resolves: treated as NOT cross-cell — a
//     structural-level boundary artifact of directional selections,
//     tolerated to avoid breaking legitimate single-cell edits; when
//     neither resolves the selection covers the table wholesale and is
//     treated as cross-cell
func (e *Engine) IsCrossCell(sel Selection) bool {
	if !sel.Valid() {
		return false
	}
	ca := lowestCommonAncestor(sel.Anchor.Node, sel.Focus.Node)
	if ca == nil {
		return false
	}

	if ca.Closest(func(n *dom.Node) bool { return n.IsCell() }, e.Root) != nil {
		return false
	}
	if ca.ClosestTag("table", e.Root) == nil {
		return false
	}

	start := e.FindClosestCell(sel.Anchor)
	end := e.FindClosestCell(sel.Focus)
	switch {
	case start != nil && end != nil:
		return start != end
	case start == nil && end == nil:
		return true
	default:
		return false
	}
}

// CrossCellDelete clears the content of every cell the selection
// intersects. Cell boundaries are preserved — cells are emptied, never
// merged or removed. The returned selection is collapsed at the start
// of the anchor cell.
func (e *Engine) CrossCellDelete(sel Selection) (Selection, bool) {
	if !sel.Valid() {
		return sel, false
	}
	ca := lowestCommonAncestor(sel.Anchor.Node, sel.Focus.Node)
	if ca == nil {
		return sel, false
	}
	table := ca.ClosestTag("table", nil)
	if table == nil {
		return sel, false
	}

	cells := cellsInReadingOrder(table)
	if len(cells) == 0 {
		return sel, false
	}

	start, end, _ := sel.Ordered()
	from := cellIndexOf(cells, e.FindClosestCell(start))
	to := cellIndexOf(cells, e.FindClosestCell(end))
	if from < 0 {
		from = 0
	}
	if to < 0 {
		to = len(cells) - 1
	}

	for i := from; i <= to && i < len(cells); i++ {
		cells[i].Empty()
	}

	anchorCell := e.FindClosestCell(sel.Anchor)
	if anchorCell == nil {
		anchorCell = cells[from]
	}
	return Collapse(Point{Node: anchorCell, Offset: 0}), true
}

// AdjacentCell returns the next or previous cell in reading order, or
// nil at the table boundary. There is no wraparound.
func (e *Engine) AdjacentCell(cell *dom.Node, dir string) *dom.Node {
	if cell == nil || !cell.IsCell() {
		return nil
	}
	table := cell.ClosestTag("table", nil)
	if table == nil {
		return nil
	}
	cells := cellsInReadingOrder(table)
	idx := cellIndexOf(cells, cell)
	if idx < 0 {
		return nil
	}
	switch dir {
	case "next":
		if idx+1 < len(cells) {
			return cells[idx+1]
		}
	case "prev":
		if idx > 0 {
			return cells[idx-1]
		}
	}
	return nil
}

func cellsInReadingOrder(table *dom.Node) []*dom.Node {
	var cells []*dom.Node
	table.Walk(func(n *dom.Node) bool {
		if n != table && n.Tag == "table" {
			return false // nested tables keep their own cells
		}
		if n.IsCell() {
			cells = append(cells, n)
			return false
		}
		return true
	})
	return cells
}

func cellIndexOf(cells []*dom.Node, cell *dom.Node) int {
	if cell == nil {
		return -1
	}
	for i, c := range cells {
		if c == cell {
			return i
		}
	}
	return -1
}
