// Package dom contains the structured document tree that the editor
// manipulates in place between markdown round trips.
package dom

import "strings"

// NodeType distinguishes element nodes from text nodes
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is a single node in the document tree. A node is owned by exactly
// one parent; inserting an attached node elsewhere moves it.
type Node struct {
	Type     NodeType
	Tag      string // element tag, lowercase ("p", "strong", "td", ...)
	Data     string // text content for TextNode
	Attrs    map[string]string
	Parent   *Node
	Children []*Node
}

// NewElement creates a detached element node with the given tag
func NewElement(tag string) *Node {
	return &Node{
		Type: ElementNode,
		Tag:  tag,
	}
}

// NewText creates a detached text node
func NewText(data string) *Node {
	return &Node{
		Type: TextNode,
		Data: data,
	}
}

// SetAttr sets an attribute, allocating the map on first use
func (n *Node) SetAttr(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// Attr returns an attribute value, or "" when absent
func (n *Node) Attr(key string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// HasClass reports whether the node's class attribute contains name
func (n *Node) HasClass(name string) bool {
	for _, c := range strings.Fields(n.Attr("class")) {
		if c == name {
			return true
		}
	}
	return false
}

// Detach removes the node from its parent, if any
func (n *Node) Detach() {
	if n.Parent == nil {
		return
	}
	p := n.Parent
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// AppendChild appends child as the last child. An attached child is
// moved, not copied.
func (n *Node) AppendChild(child *Node) {
	child.Detach()
	child.Parent = n
	n.Children = append(n.Children, child)
}

// InsertBefore inserts child immediately before ref. When ref is nil or
// not a child of n, child is appended.
func (n *Node) InsertBefore(child, ref *Node) {
	child.Detach()
	if ref == nil {
		n.AppendChild(child)
		return
	}
	for i, c := range n.Children {
		if c == ref {
			child.Parent = n
			n.Children = append(n.Children[:i], append([]*Node{child}, n.Children[i:]...)...)
			return
		}
	}
	n.AppendChild(child)
}

// InsertAfter inserts child immediately after ref
func (n *Node) InsertAfter(child, ref *Node) {
	if ref == nil {
		n.AppendChild(child)
		return
	}
	n.InsertBefore(child, ref.NextSibling())
}

// InsertChildAt inserts child at the given child index, clamped to the
// valid range
func (n *Node) InsertChildAt(child *Node, index int) {
	child.Detach()
	if index < 0 {
		index = 0
	}
	if index >= len(n.Children) {
		n.AppendChild(child)
		return
	}
	child.Parent = n
	n.Children = append(n.Children[:index], append([]*Node{child}, n.Children[index:]...)...)
}

// ReplaceWith replaces the node with other at the same position
func (n *Node) ReplaceWith(other *Node) {
	p := n.Parent
	if p == nil {
		return
	}
	idx := n.Index()
	n.Detach()
	p.InsertChildAt(other, idx)
}

// Unwrap replaces the node with its own children, spliced into the
// former position. The node ends up detached and empty.
func (n *Node) Unwrap() {
	p := n.Parent
	if p == nil {
		return
	}
	idx := n.Index()
	children := n.Children
	n.Children = nil
	n.Detach()
	for i, c := range children {
		c.Parent = nil
		p.InsertChildAt(c, idx+i)
	}
}

// Index returns the node's position among its parent's children, or -1
// for a detached node
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// FirstChild returns the first child or nil
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LastChild returns the last child or nil
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// NextSibling returns the following sibling or nil
func (n *Node) NextSibling() *Node {
	idx := n.Index()
	if idx < 0 || idx+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[idx+1]
}

// PrevSibling returns the preceding sibling or nil
func (n *Node) PrevSibling() *Node {
	idx := n.Index()
	if idx <= 0 {
		return nil
	}
	return n.Parent.Children[idx-1]
}

// Closest walks from the node upward (including the node itself) and
// returns the first node matching pred, or nil. The walk stops after
// visiting boundary when boundary is non-nil.
func (n *Node) Closest(pred func(*Node) bool, boundary *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if pred(cur) {
			return cur
		}
		if boundary != nil && cur == boundary {
			return nil
		}
	}
	return nil
}

// ClosestTag is Closest specialized to a tag match
func (n *Node) ClosestTag(tag string, boundary *Node) *Node {
	return n.Closest(func(c *Node) bool {
		return c.Type == ElementNode && c.Tag == tag
	}, boundary)
}

// Ancestors returns the chain of parents from n up to but excluding
// boundary (or the whole chain when boundary is nil), nearest first
func (n *Node) Ancestors(boundary *Node) []*Node {
	var out []*Node
	for cur := n.Parent; cur != nil && cur != boundary; cur = cur.Parent {
		out = append(out, cur)
	}
	return out
}

// Contains reports whether other is n or a descendant of n
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Clone returns a deep, detached copy of the node
func (n *Node) Clone() *Node {
	cp := &Node{
		Type: n.Type,
		Tag:  n.Tag,
		Data: n.Data,
	}
	if n.Attrs != nil {
		cp.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			cp.Attrs[k] = v
		}
	}
	for _, c := range n.Children {
		cc := c.Clone()
		cc.Parent = cp
		cp.Children = append(cp.Children, cc)
	}
	return cp
}

// Walk visits the node and its descendants in document order. The
// callback's return controls descent: returning false skips the node's
// children, siblings are still visited.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// TextContent returns the concatenated text of the node and its
// descendants
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// SetTextContent replaces all children with a single text node. An
// empty string leaves the node with no children.
func (n *Node) SetTextContent(text string) {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	if text != "" {
		n.AppendChild(NewText(text))
	}
}

// Empty removes all children
func (n *Node) Empty() {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
}

// Root returns the topmost ancestor of the node
func (n *Node) Root() *Node {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

var blockTags = map[string]bool{
	"p": true, "div": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "ul": true, "ol": true, "li": true, "pre": true,
	"table": true, "hr": true,
}

// IsBlock reports whether the node is a block-level element
func (n *Node) IsBlock() bool {
	return n.Type == ElementNode && blockTags[n.Tag]
}

// IsCell reports whether the node is a table cell
func (n *Node) IsCell() bool {
	return n.Type == ElementNode && (n.Tag == "td" || n.Tag == "th")
}

// IsTablePart reports whether the node is a structural table element
// (not a cell): table, thead, tbody or tr
func (n *Node) IsTablePart() bool {
	if n.Type != ElementNode {
		return false
	}
	switch n.Tag {
	case "table", "thead", "tbody", "tr":
		return true
	}
	return false
}

// HeadingLevel returns 1..6 for h1..h6 nodes and 0 otherwise
func (n *Node) HeadingLevel() int {
	if n.Type != ElementNode || len(n.Tag) != 2 || n.Tag[0] != 'h' {
		return 0
	}
	if n.Tag[1] < '1' || n.Tag[1] > '6' {
		return 0
	}
	return int(n.Tag[1] - '0')
}
