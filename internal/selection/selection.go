// Package selection implements the low-level selection and range
// operations on the document tree. Selections are explicit values
// passed into and returned from every operation; they are never cached
// across a structural mutation, which invalidates node references.
package selection

import "github.com/editkit/mdsurface/internal/dom"

// Point addresses a position in the tree: a rune offset inside a text
// node, or a child index inside an element node.
type Point struct {
	Node   *dom.Node
	Offset int
}

// Selection is an ordered anchor/focus pair. Anchor may precede or
// follow focus; the order carries the selection direction.
type Selection struct {
	Anchor Point
	Focus  Point
}

// Collapsed reports whether anchor and focus are the same point
func (s Selection) Collapsed() bool {
	return s.Anchor == s.Focus
}

// Valid reports whether both endpoints reference a node
func (s Selection) Valid() bool {
	return s.Anchor.Node != nil && s.Focus.Node != nil
}

// Collapse returns a collapsed selection at p
func Collapse(p Point) Selection {
	return Selection{Anchor: p, Focus: p}
}

// Ordered returns the endpoints in document order plus whether the
// selection runs backwards (focus before anchor)
func (s Selection) Ordered() (start, end Point, backwards bool) {
	if comparePoints(s.Anchor, s.Focus) > 0 {
		return s.Focus, s.Anchor, true
	}
	return s.Anchor, s.Focus, false
}

// comparePoints orders two points in document order. Points in
// disjoint trees compare equal (no meaningful order).
func comparePoints(a, b Point) int {
	if a == b {
		return 0
	}
	ka := pointKey(a)
	kb := pointKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if ka[i] != kb[i] {
			if ka[i] < kb[i] {
				return -1
			}
			return 1
		}
	}
	if len(ka) < len(kb) {
		return -1
	}
	if len(ka) > len(kb) {
		return 1
	}
	return 0
}

// pointKey is the path of child indices from the root down to the
// point's node, ending in the point offset
func pointKey(p Point) []int {
	var rev []int
	for n := p.Node; n.Parent != nil; n = n.Parent {
		rev = append(rev, n.Index())
	}
	key := make([]int, 0, len(rev)+1)
	for i := len(rev) - 1; i >= 0; i-- {
		key = append(key, rev[i])
	}
	return append(key, p.Offset)
}

// lowestCommonAncestor returns the deepest node containing both a and
// b, or nil when they live in different trees
func lowestCommonAncestor(a, b *dom.Node) *dom.Node {
	seen := make(map[*dom.Node]bool)
	for n := a; n != nil; n = n.Parent {
		seen[n] = true
	}
	for n := b; n != nil; n = n.Parent {
		if seen[n] {
			return n
		}
	}
	return nil
}

// Saved is a position snapshot that survives tree refreshes: node
// references are replaced with child-index paths from the root.
type Saved struct {
	anchorPath []int
	anchorOff  int
	focusPath  []int
	focusOff   int
	valid      bool
}

// Engine performs range operations against one editable tree
type Engine struct {
	Root *dom.Node
}

// NewEngine creates an engine bound to the given editable root
func NewEngine(root *dom.Node) *Engine {
	return &Engine{Root: root}
}

// Save captures a selection snapshot. An invalid selection saves as an
// empty snapshot that Restore reports as absent.
func (e *Engine) Save(sel Selection) Saved {
	if !sel.Valid() || !e.Root.Contains(sel.Anchor.Node) || !e.Root.Contains(sel.Focus.Node) {
		return Saved{}
	}
	return Saved{
		anchorPath: nodePath(e.Root, sel.Anchor.Node),
		anchorOff:  sel.Anchor.Offset,
		focusPath:  nodePath(e.Root, sel.Focus.Node),
		focusOff:   sel.Focus.Offset,
		valid:      true,
	}
}

// Restore reinstates a saved selection. Returns false when the
// snapshot is absent or no longer resolves in the current tree.
func (e *Engine) Restore(saved Saved) (Selection, bool) {
	if !saved.valid {
		return Selection{}, false
	}
	anchor := resolvePath(e.Root, saved.anchorPath)
	focus := resolvePath(e.Root, saved.focusPath)
	if anchor == nil || focus == nil {
		return Selection{}, false
	}
	return Selection{
		Anchor: Point{Node: anchor, Offset: clampOffset(anchor, saved.anchorOff)},
		Focus:  Point{Node: focus, Offset: clampOffset(focus, saved.focusOff)},
	}, true
}

func nodePath(root, n *dom.Node) []int {
	var rev []int
	for cur := n; cur != root && cur.Parent != nil; cur = cur.Parent {
		rev = append(rev, cur.Index())
	}
	path := make([]int, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}

func resolvePath(root *dom.Node, path []int) *dom.Node {
	cur := root
	for _, idx := range path {
		if idx < 0 || idx >= len(cur.Children) {
			return nil
		}
		cur = cur.Children[idx]
	}
	return cur
}

func clampOffset(n *dom.Node, off int) int {
	max := len(n.Children)
	if n.Type == dom.TextNode {
		max = len([]rune(n.Data))
	}
	if off < 0 {
		return 0
	}
	if off > max {
		return max
	}
	return off
}
