package command

import (
	"github.com/editkit/mdsurface/internal/dom"
	"github.com/editkit/mdsurface/internal/selection"
)

// placeholder fills list items created without content so the cursor
// has somewhere to land
const placeholder = "\u00a0"

// toggleList runs the three-case list logic:
//
//   - cursor in a list of the same type: the list unwraps back to
//     paragraphs
//   - cursor in a list of the opposite type: the enclosing list
//     structure retags in place, every nesting level included
//   - cursor outside any list: the selected blocks become a new list,
//     one item per block, or one item per line for a single block
func (c *Commander) toggleList(tag string) bool {
	if !c.sel.Valid() || c.inCell() {
		return false
	}

	li := c.sel.Anchor.Node.ClosestTag("li", c.root)
	if li == nil {
		return c.makeList(tag)
	}

	list := li.Parent
	if list == nil || !isList(list) {
		return false
	}

	if list.Tag == tag {
		parent := list.Parent
		idx := list.Index()
		unwrapList(list)
		c.sel = selection.Collapse(selection.Point{Node: parent, Offset: idx})
		return true
	}

	// Opposite type: retag from the outermost enclosing list down
	top := list
	for p := list.Parent; p != nil && p != c.root; p = p.Parent {
		if isList(p) {
			top = p
		}
	}
	retagLists(top, tag)
	return true
}

// indentList nests the current item one level deeper. The item needs a
// preceding sibling item whose sublist it can join; the sublist is
// created when absent.
func (c *Commander) indentList() bool {
	if !c.sel.Valid() {
		return false
	}
	li := c.sel.Anchor.Node.ClosestTag("li", c.root)
	if li == nil {
		return false
	}
	prev := li.PrevSibling()
	if prev == nil || prev.Tag != "li" {
		return false
	}
	list := li.Parent
	if list == nil || !isList(list) {
		return false
	}

	sub := lastSublist(prev)
	if sub == nil {
		sub = dom.NewElement(list.Tag)
		prev.AppendChild(sub)
	}
	sub.AppendChild(li)
	c.sel = selection.Collapse(selection.Point{Node: li, Offset: 0})
	return true
}

// outdentList lifts the current item one level up: it becomes the next
// sibling of the grandparent item, and any items that followed it move
// into a new sublist attached to it. Lists emptied by the move are
// removed.
func (c *Commander) outdentList() bool {
	if !c.sel.Valid() {
		return false
	}
	li := c.sel.Anchor.Node.ClosestTag("li", c.root)
	if li == nil {
		return false
	}
	list := li.Parent
	if list == nil || !isList(list) {
		return false
	}
	grand := list.Parent
	if grand == nil || grand.Tag != "li" {
		return false
	}

	var trailing []*dom.Node
	for s := li.NextSibling(); s != nil; s = s.NextSibling() {
		trailing = append(trailing, s)
	}

	outer := grand.Parent
	if outer == nil {
		return false
	}
	li.Detach()
	outer.InsertAfter(li, grand)

	if len(trailing) > 0 {
		sub := dom.NewElement(list.Tag)
		for _, t := range trailing {
			sub.AppendChild(t)
		}
		li.AppendChild(sub)
	}
	if len(list.Children) == 0 {
		list.Detach()
	}

	c.sel = selection.Collapse(selection.Point{Node: li, Offset: 0})
	return true
}

// makeList converts the blocks covered by the selection into a list
func (c *Commander) makeList(tag string) bool {
	start, end, _ := c.sel.Ordered()
	first := c.blockAt(start)
	last := c.blockAt(end)
	if first == nil || last == nil {
		return false
	}

	if first.Tag == "table" || last.Tag == "table" {
		return false
	}

	i, j := first.Index(), last.Index()
	if j < i {
		i, j = j, i
	}

	list := dom.NewElement(tag)
	if i == j {
		// Single block: one item per line, split at line breaks
		block := c.root.Children[i]
		for _, item := range lineItems(block) {
			list.AppendChild(item)
		}
		block.ReplaceWith(list)
	} else {
		blocks := append([]*dom.Node(nil), c.root.Children[i:j+1]...)
		c.root.InsertChildAt(list, i)
		for _, b := range blocks {
			item := dom.NewElement("li")
			moveChildren(b, item)
			list.AppendChild(item)
			b.Detach()
		}
	}

	if li := list.FirstChild(); li != nil {
		c.sel = selection.Collapse(selection.Point{Node: li, Offset: 0})
	}
	return true
}

// lineItems splits a block's inline content at br nodes into list
// items. An empty block yields a single placeholder item.
func lineItems(block *dom.Node) []*dom.Node {
	var items []*dom.Node
	current := dom.NewElement("li")
	flush := func() {
		if len(current.Children) == 0 {
			current.AppendChild(dom.NewText(placeholder))
		}
		items = append(items, current)
		current = dom.NewElement("li")
	}

	kids := append([]*dom.Node(nil), block.Children...)
	for _, k := range kids {
		if k.Tag == "br" {
			k.Detach()
			flush()
			continue
		}
		current.AppendChild(k)
	}
	flush()
	return items
}

// unwrapList replaces a list with its content as paragraph blocks,
// flattening nested sublists in document order
func unwrapList(list *dom.Node) {
	parent := list.Parent
	idx := list.Index()
	blocks := listBlocks(list)
	list.Detach()
	for k, b := range blocks {
		parent.InsertChildAt(b, idx+k)
	}
}

func listBlocks(list *dom.Node) []*dom.Node {
	var out []*dom.Node
	items := append([]*dom.Node(nil), list.Children...)
	for _, li := range items {
		p := dom.NewElement("p")
		var nested []*dom.Node
		kids := append([]*dom.Node(nil), li.Children...)
		for _, k := range kids {
			if isList(k) {
				nested = append(nested, listBlocks(k)...)
			} else {
				p.AppendChild(k)
			}
		}
		if len(p.Children) > 0 || len(nested) == 0 {
			out = append(out, p)
		}
		out = append(out, nested...)
	}
	return out
}

// retagLists renames a list and every list nested under it
func retagLists(list *dom.Node, tag string) {
	list.Walk(func(n *dom.Node) bool {
		if isList(n) {
			n.Tag = tag
		}
		return true
	})
}

func isList(n *dom.Node) bool {
	return n != nil && n.Type == dom.ElementNode && (n.Tag == "ul" || n.Tag == "ol")
}

// lastSublist returns the trailing sublist of a list item, if present
func lastSublist(li *dom.Node) *dom.Node {
	if last := li.LastChild(); isList(last) {
		return last
	}
	return nil
}

func moveChildren(from, to *dom.Node) {
	for from.FirstChild() != nil {
		to.AppendChild(from.FirstChild())
	}
}
