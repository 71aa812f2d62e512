// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quadtree

import (
	"iter"
	"math"
)

// Node is a quadtree node. Internal nodes have up to four children;
// leaf nodes carry an item and a chain of further items at the same point.
type Node[T any] struct {
	quads [4]*Node[T]

	leaf bool
	x, y float64
	item T
	next *Node[T] // next item at the same coordinates
}

// IsLeaf reports whether n holds items rather than children.
func (n *Node[T]) IsLeaf() bool {
	return n.leaf
}

// Child returns the child in quadrant i (0..3), or nil.
// Leaves have no children.
func (n *Node[T]) Child(i int) *Node[T] {
	if n.leaf || i < 0 || i > 3 {
		return nil
	}
	return n.quads[i]
}

// Item returns the head item of a leaf. It returns the zero value for
// internal nodes.
func (n *Node[T]) Item() T {
	return n.item
}

// Point returns the coordinates shared by every item of a leaf.
func (n *Node[T]) Point() (x, y float64) {
	return n.x, n.y
}

// Items iterates over every item chained on a leaf.
func (n *Node[T]) Items() iter.Seq[T] {
	return func(yield func(T) bool) {
		if !n.leaf {
			return
		}
		for l := n; l != nil; l = l.next {
			if !yield(l.item) {
				return
			}
		}
	}
}

// Len returns the number of items chained on a leaf, or 0 for internal nodes.
func (n *Node[T]) Len() int {
	if !n.leaf {
		return 0
	}
	c := 0
	for l := n; l != nil; l = l.next {
		c++
	}
	return c
}

// First returns the first leaf of the subtree rooted at n in visit order.
func (n *Node[T]) First() *Node[T] {
	for n != nil && !n.leaf {
		var next *Node[T]
		for _, q := range n.quads {
			if q != nil {
				next = q
				break
			}
		}
		n = next
	}
	return n
}

// Box is an axis-aligned rectangle with X0 <= X1 and Y0 <= Y1.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of b.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of b.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// Contains reports whether (x, y) lies in b, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Intersects reports whether b and o overlap, touching edges included.
func (b Box) Intersects(o Box) bool {
	return b.X0 <= o.X1 && o.X0 <= b.X1 && b.Y0 <= o.Y1 && o.Y0 <= b.Y1
}

// Valid reports whether every bound is finite and the box is not inverted.
func (b Box) Valid() bool {
	return finite(b.X0) && finite(b.Y0) && finite(b.X1) && finite(b.Y1) &&
		b.X0 <= b.X1 && b.Y0 <= b.Y1
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// quadrant returns the child index for a point relative to a midpoint.
func quadrant(right, bottom bool) int {
	i := 0
	if right {
		i |= 1
	}
	if bottom {
		i |= 2
	}
	return i
}
