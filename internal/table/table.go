// Package table implements the table editing operations. Table state
// is implicit in tree shape; every operation preserves the structural
// invariants (a header row plus at least one body row, at least one
// column) and refuses silently rather than violating them.
//
// Each mutating operation returns the cell the cursor should land in,
// so the caller never ends up focused on a removed node.
package table

import (
	"github.com/editkit/mdsurface/internal/dom"
)

// Placeholder is the initial content of a fresh data cell
const Placeholder = "\u00a0"

// HeaderPlaceholder is the initial content of a fresh header cell
const HeaderPlaceholder = "Header"

// New builds a table skeleton: a header row of cols labelled header
// cells and rows-1 body rows of placeholder data cells. Dimensions are
// clamped to at least 1.
func New(rows, cols int) *dom.Node {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	table := dom.NewElement("table")
	thead := dom.NewElement("thead")
	headRow := dom.NewElement("tr")
	for c := 0; c < cols; c++ {
		th := dom.NewElement("th")
		th.AppendChild(dom.NewText(HeaderPlaceholder))
		headRow.AppendChild(th)
	}
	thead.AppendChild(headRow)
	table.AppendChild(thead)

	tbody := dom.NewElement("tbody")
	for r := 1; r < rows; r++ {
		tbody.AppendChild(newDataRow(cols))
	}
	if tbody.FirstChild() == nil {
		tbody.AppendChild(newDataRow(cols))
	}
	table.AppendChild(tbody)
	return table
}

func newDataRow(cols int) *dom.Node {
	tr := dom.NewElement("tr")
	for c := 0; c < cols; c++ {
		td := dom.NewElement("td")
		td.AppendChild(dom.NewText(Placeholder))
		tr.AppendChild(td)
	}
	return tr
}

// AddRowAbove inserts a data row above the row containing cell.
// Insertion above the header row is redirected to the start of the
// body: a row is never a sibling of the header. Returns the first cell
// of the new row.
func AddRowAbove(cell *dom.Node) (*dom.Node, bool) {
	return addRow(cell, true)
}

// AddRowBelow inserts a data row below the row containing cell, with
// the same header redirection. Returns the first cell of the new row.
func AddRowBelow(cell *dom.Node) (*dom.Node, bool) {
	return addRow(cell, false)
}

func addRow(cell *dom.Node, above bool) (*dom.Node, bool) {
	row := rowOf(cell)
	table := tableOf(cell)
	if row == nil || table == nil {
		return nil, false
	}

	cols := columnCount(table)
	newRow := newDataRow(cols)

	if isHeaderRow(row) {
		// Redirect into the start of the body section
		tbody := bodySection(table, true)
		tbody.InsertChildAt(newRow, 0)
	} else {
		parent := row.Parent
		if above {
			parent.InsertBefore(newRow, row)
		} else {
			parent.InsertAfter(newRow, row)
		}
	}
	return newRow.FirstChild(), true
}

// RemoveRow removes the row containing cell. Refused for the header
// row and for the last remaining body row: a table always keeps its
// header and at least one body row. Returns the first cell of the next
// row, falling back to the previous row.
func RemoveRow(cell *dom.Node) (*dom.Node, bool) {
	row := rowOf(cell)
	table := tableOf(cell)
	if row == nil || table == nil {
		return nil, false
	}
	if isHeaderRow(row) {
		return nil, false
	}

	body := bodyRows(table)
	if len(body) <= 1 {
		return nil, false
	}

	idx := -1
	for i, r := range body {
		if r == row {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	row.Detach()
	body = append(body[:idx], body[idx+1:]...)

	var focusRow *dom.Node
	if idx < len(body) {
		focusRow = body[idx]
	} else {
		focusRow = body[len(body)-1]
	}
	return focusRow.FirstChild(), true
}

// AddColumnLeft inserts a column to the left of the column containing
// cell. Returns the originally active cell.
func AddColumnLeft(cell *dom.Node) (*dom.Node, bool) {
	return addColumn(cell, 0)
}

// AddColumnRight inserts a column to the right. Returns the originally
// active cell.
func AddColumnRight(cell *dom.Node) (*dom.Node, bool) {
	return addColumn(cell, 1)
}

func addColumn(cell *dom.Node, delta int) (*dom.Node, bool) {
	table := tableOf(cell)
	if table == nil || !cell.IsCell() {
		return nil, false
	}
	col := cellIndex(cell)
	if col < 0 {
		return nil, false
	}
	insertAt := col + delta

	for _, row := range allRows(table) {
		tag := "td"
		text := Placeholder
		if isHeaderRow(row) {
			tag = "th"
			text = HeaderPlaceholder
		}
		fresh := dom.NewElement(tag)
		fresh.AppendChild(dom.NewText(text))

		// Ragged rows: an index at or past the row width appends
		if insertAt >= len(row.Children) {
			row.AppendChild(fresh)
		} else {
			row.InsertChildAt(fresh, insertAt)
		}
	}
	return cell, true
}

// RemoveColumn removes the column containing cell from every row that
// has a cell at that index (ragged-row tolerant). Refused when only
// one column remains. Returns the cell at min(original, new last)
// index in the original row.
func RemoveColumn(cell *dom.Node) (*dom.Node, bool) {
	table := tableOf(cell)
	row := rowOf(cell)
	if table == nil || row == nil || !cell.IsCell() {
		return nil, false
	}
	if columnCount(table) <= 1 {
		return nil, false
	}

	col := cellIndex(cell)
	if col < 0 {
		return nil, false
	}

	for _, r := range allRows(table) {
		if col < len(r.Children) {
			r.Children[col].Detach()
		}
	}

	focusIdx := col
	if last := len(row.Children) - 1; focusIdx > last {
		focusIdx = last
	}
	if focusIdx < 0 {
		return nil, false
	}
	return row.Children[focusIdx], true
}

// Delete replaces the whole table with a single empty paragraph and
// returns that paragraph for cursor placement
func Delete(table *dom.Node) (*dom.Node, bool) {
	if table == nil || table.Tag != "table" || table.Parent == nil {
		return nil, false
	}
	p := dom.NewElement("p")
	table.ReplaceWith(p)
	return p, true
}

// tableOf returns the enclosing table of a node
func tableOf(n *dom.Node) *dom.Node {
	if n == nil {
		return nil
	}
	return n.ClosestTag("table", nil)
}

// rowOf returns the enclosing row of a node
func rowOf(n *dom.Node) *dom.Node {
	if n == nil {
		return nil
	}
	return n.ClosestTag("tr", nil)
}

// allRows lists every row of the table in reading order
func allRows(table *dom.Node) []*dom.Node {
	var rows []*dom.Node
	table.Walk(func(n *dom.Node) bool {
		if n != table && n.Tag == "table" {
			return false
		}
		if n.Tag == "tr" {
			rows = append(rows, n)
			return false
		}
		return true
	})
	return rows
}

// isHeaderRow reports whether the row is the table's first row
func isHeaderRow(row *dom.Node) bool {
	table := tableOf(row)
	if table == nil {
		return false
	}
	rows := allRows(table)
	return len(rows) > 0 && rows[0] == row
}

// bodyRows lists the rows after the header
func bodyRows(table *dom.Node) []*dom.Node {
	rows := allRows(table)
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

// bodySection returns the tbody, creating one when asked and absent
func bodySection(table *dom.Node, create bool) *dom.Node {
	for _, c := range table.Children {
		if c.Tag == "tbody" {
			return c
		}
	}
	if !create {
		return nil
	}
	tbody := dom.NewElement("tbody")
	table.AppendChild(tbody)
	return tbody
}

// columnCount is the width of the header row
func columnCount(table *dom.Node) int {
	rows := allRows(table)
	if len(rows) == 0 {
		return 0
	}
	count := 0
	for _, c := range rows[0].Children {
		if c.IsCell() {
			count++
		}
	}
	return count
}

// cellIndex returns the cell's column position within its row
func cellIndex(cell *dom.Node) int {
	return cell.Index()
}
