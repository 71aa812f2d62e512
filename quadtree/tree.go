// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quadtree

import "math"

// Tree is a point quadtree of items positioned by two accessor functions.
type Tree[T comparable] struct {
	xf, yf func(T) float64

	// Root extent. All NaN until the first point is covered.
	x0, y0, x1, y1 float64

	root *Node[T]
	size int
}

// New returns an empty tree using x and y to position items.
func New[T comparable](x, y func(T) float64) *Tree[T] {
	return &Tree[T]{
		xf: x,
		yf: y,
		x0: math.NaN(),
		y0: math.NaN(),
		x1: math.NaN(),
		y1: math.NaN(),
	}
}

// Build returns a tree holding items. It runs in O(n log n) for
// well-distributed points.
func Build[T comparable](items []T, x, y func(T) float64) *Tree[T] {
	t := New(x, y)
	t.Add(items...)
	return t
}

// Root returns the root node, or nil if the tree is empty.
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// Size returns the number of items in the tree.
func (t *Tree[T]) Size() int {
	return t.size
}

// Extent returns the square covered by the root. ok is false until the
// first point has been added.
func (t *Tree[T]) Extent() (b Box, ok bool) {
	if math.IsNaN(t.x0) {
		return Box{}, false
	}
	return Box{X0: t.x0, Y0: t.y0, X1: t.x1, Y1: t.y1}, true
}

// Add inserts items into the tree. Items whose coordinates are NaN or
// infinite are skipped.
func (t *Tree[T]) Add(items ...T) {
	if len(items) == 0 {
		return
	}
	xs := make([]float64, len(items))
	ys := make([]float64, len(items))
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)

	for i, d := range items {
		x, y := t.xf(d), t.yf(d)
		xs[i], ys[i] = x, y
		if !finite(x) || !finite(y) {
			continue
		}
		x0, x1 = math.Min(x0, x), math.Max(x1, x)
		y0, y1 = math.Min(y0, y), math.Max(y1, y)
	}
	if x0 > x1 || y0 > y1 {
		return
	}

	t.cover(x0, y0)
	t.cover(x1, y1)

	for i, d := range items {
		t.insert(d, xs[i], ys[i])
	}
}

// cover grows the root extent until it contains (x, y). The extent
// doubles in the direction of the point, wrapping the current root.
func (t *Tree[T]) cover(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	if math.IsNaN(t.x0) {
		t.x0, t.y0 = math.Floor(x), math.Floor(y)
		t.x1, t.y1 = t.x0+1, t.y0+1
		return
	}

	x0, y0, x1, y1 := t.x0, t.y0, t.x1, t.y1
	z := x1 - x0
	if z == 0 {
		z = 1
	}
	node := t.root
	for x0 > x || x >= x1 || y0 > y || y >= y1 {
		i := quadrant(x < x0, y < y0)
		parent := &Node[T]{}
		parent.quads[i] = node
		node = parent
		z *= 2
		switch i {
		case 0:
			x1, y1 = x0+z, y0+z
		case 1:
			x0, y1 = x1-z, y0+z
		case 2:
			x1, y0 = x0+z, y1-z
		case 3:
			x0, y0 = x1-z, y1-z
		}
	}
	if t.root != nil && !t.root.leaf {
		t.root = node
	}
	t.x0, t.y0, t.x1, t.y1 = x0, y0, x1, y1
}

// insert places one item. The extent must already cover (x, y).
func (t *Tree[T]) insert(d T, x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	leaf := &Node[T]{leaf: true, x: x, y: y, item: d}
	t.size++

	node := t.root
	if node == nil {
		t.root = leaf
		return
	}

	x0, y0, x1, y1 := t.x0, t.y0, t.x1, t.y1
	var parent *Node[T]
	var i int
	for !node.leaf {
		xm, ym := (x0+x1)/2, (y0+y1)/2
		right, bottom := x >= xm, y >= ym
		if right {
			x0 = xm
		} else {
			x1 = xm
		}
		if bottom {
			y0 = ym
		} else {
			y1 = ym
		}
		parent, i = node, quadrant(right, bottom)
		if node = node.quads[i]; node == nil {
			parent.quads[i] = leaf
			return
		}
	}

	// Same position: chain onto the existing leaf.
	if x == node.x && y == node.y {
		leaf.next = node
		if parent != nil {
			parent.quads[i] = leaf
		} else {
			t.root = leaf
		}
		return
	}

	// Split until the new point and the existing leaf separate.
	for {
		n := &Node[T]{}
		if parent != nil {
			parent.quads[i] = n
		} else {
			t.root = n
		}
		parent = n

		xm, ym := (x0+x1)/2, (y0+y1)/2
		right, bottom := x >= xm, y >= ym
		if right {
			x0 = xm
		} else {
			x1 = xm
		}
		if bottom {
			y0 = ym
		} else {
			y1 = ym
		}
		i = quadrant(right, bottom)
		j := quadrant(node.x >= xm, node.y >= ym)
		if i != j {
			parent.quads[j] = node
			parent.quads[i] = leaf
			return
		}
	}
}

// Remove deletes item from the tree. It reports whether the item was found.
// Internal nodes left with a single leaf child are collapsed.
func (t *Tree[T]) Remove(item T) bool {
	x, y := t.xf(item), t.yf(item)
	if !finite(x) || !finite(y) {
		return false
	}
	node := t.root
	if node == nil {
		return false
	}

	x0, y0, x1, y1 := t.x0, t.y0, t.x1, t.y1
	var parent, retainer *Node[T]
	var i, j int

	if !node.leaf {
		for {
			xm, ym := (x0+x1)/2, (y0+y1)/2
			right, bottom := x >= xm, y >= ym
			if right {
				x0 = xm
			} else {
				x1 = xm
			}
			if bottom {
				y0 = ym
			} else {
				y1 = ym
			}
			parent, i = node, quadrant(right, bottom)
			if node = node.quads[i]; node == nil {
				return false
			}
			if node.leaf {
				break
			}
			if parent.quads[(i+1)&3] != nil || parent.quads[(i+2)&3] != nil || parent.quads[(i+3)&3] != nil {
				retainer, j = parent, i
			}
		}
	}

	var previous *Node[T]
	for node.item != item {
		previous, node = node, node.next
		if node == nil {
			return false
		}
	}
	t.size--

	next := node.next
	node.next = nil
	if previous != nil {
		previous.next = next
		return true
	}
	if parent == nil {
		t.root = next
		return true
	}
	parent.quads[i] = next

	if only := parent.soleChild(); only != nil && only.leaf {
		if retainer != nil {
			retainer.quads[j] = only
		} else {
			t.root = only
		}
	}
	return true
}

// RemoveAll deletes every item in items that is present in the tree.
func (t *Tree[T]) RemoveAll(items []T) {
	for _, d := range items {
		t.Remove(d)
	}
}

// soleChild returns the only non-nil child of n, or nil if n has zero or
// several children.
func (n *Node[T]) soleChild() *Node[T] {
	var only *Node[T]
	for _, q := range n.quads {
		if q == nil {
			continue
		}
		if only != nil {
			return nil
		}
		only = q
	}
	return only
}

// Visit walks the tree depth-first in pre-order, calling fn with each node
// and its bounding box. Returning false from fn skips the node's subtree.
func (t *Tree[T]) Visit(fn func(n *Node[T], b Box) bool) {
	if t.root == nil {
		return
	}
	type quad struct {
		n *Node[T]
		b Box
	}
	stack := make([]quad, 0, 64)
	stack = append(stack, quad{t.root, Box{t.x0, t.y0, t.x1, t.y1}})
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(q.n, q.b) || q.n.leaf {
			continue
		}
		b := q.b
		xm, ym := (b.X0+b.X1)/2, (b.Y0+b.Y1)/2
		if c := q.n.quads[3]; c != nil {
			stack = append(stack, quad{c, Box{xm, ym, b.X1, b.Y1}})
		}
		if c := q.n.quads[2]; c != nil {
			stack = append(stack, quad{c, Box{b.X0, ym, xm, b.Y1}})
		}
		if c := q.n.quads[1]; c != nil {
			stack = append(stack, quad{c, Box{xm, b.Y0, b.X1, ym}})
		}
		if c := q.n.quads[0]; c != nil {
			stack = append(stack, quad{c, Box{b.X0, b.Y0, xm, ym}})
		}
	}
}

// Items returns every item in visit order.
func (t *Tree[T]) Items() []T {
	out := make([]T, 0, t.size)
	t.Visit(func(n *Node[T], _ Box) bool {
		for d := range n.Items() {
			out = append(out, d)
		}
		return true
	})
	return out
}
