// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package lod walks a quadtree for rendering and hit-testing.
//
// A walk combines two predicates. The visibility predicate prunes subtrees
// that cannot contribute (off-screen for rendering, outside the test region
// for hit-testing). The aggregation predicate collapses subtrees whose
// projected size is at most a pixel threshold into one representative item:
// the first leaf of the subtree, not a centroid. That is the only
// approximation made, and it bounds the number of draw calls by the number
// of on-screen, visually separable points.
package lod

import (
	"math"

	"github.com/gogpu/scatter/quadtree"
	"github.com/gogpu/scatter/scale"
)

// DefaultThreshold is the default aggregation size in pixels.
const DefaultThreshold = 5.0

// Renderer receives one call per emitted point or aggregate, then Done
// exactly once when the walk ends.
type Renderer[T any] interface {
	Render(px, py float64, item T)
	Done()
}

// Viewport holds the live normalized-to-pixel scales of one render pass
// and the pixel size of the plot area.
type Viewport struct {
	X, Y          scale.Scale
	Width, Height float64
}

// Project maps a normalized point to pixels.
func (v Viewport) Project(x, y float64) (px, py float64) {
	return v.X.Apply(x), v.Y.Apply(y)
}

// Unproject maps a pixel to normalized space.
func (v Viewport) Unproject(px, py float64) (x, y float64) {
	return v.X.Invert(px), v.Y.Invert(py)
}

// Window returns the normalized region visible on the canvas, found by
// inverse-mapping its four pixel corners. ok is false for a zero-size or
// otherwise degenerate viewport.
func (v Viewport) Window() (b quadtree.Box, ok bool) {
	if !(v.Width > 0 && v.Height > 0) || v.X == nil || v.Y == nil {
		return quadtree.Box{}, false
	}
	x0, x1 := v.X.Invert(0), v.X.Invert(v.Width)
	y0, y1 := v.Y.Invert(v.Height), v.Y.Invert(0)
	b = quadtree.Box{
		X0: math.Min(x0, x1), Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1), Y1: math.Max(y0, y1),
	}
	return b, b.Valid()
}

// Extent returns the pixel width and height b covers on screen.
func (v Viewport) Extent(b quadtree.Box) (w, h float64) {
	w = math.Abs(v.X.Apply(b.X1) - v.X.Apply(b.X0))
	h = math.Abs(v.Y.Apply(b.Y1) - v.Y.Apply(b.Y0))
	return w, h
}

// Collapses reports whether b projects to at most threshold pixels on its
// longer side.
func (v Viewport) Collapses(b quadtree.Box, threshold float64) bool {
	w, h := v.Extent(b)
	return math.Max(w, h) <= threshold
}

// Stats counts what a walk did.
type Stats struct {
	Visited    int // nodes passed to the predicates
	Culled     int // subtrees rejected by visibility
	Aggregated int // subtrees collapsed to one representative
	Rendered   int // items emitted
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Visited:    s.Visited + o.Visited,
		Culled:     s.Culled + o.Culled,
		Aggregated: s.Aggregated + o.Aggregated,
		Rendered:   s.Rendered + o.Rendered,
	}
}

// Pass is one depth-first walk over a tree.
//
// For each node: if Visible is set and returns false the subtree is
// skipped; if Aggregate is set and returns true the first item of the
// subtree is emitted and the subtree is skipped; leaves emit every chained
// item; internal nodes are descended.
type Pass[T comparable] struct {
	Visible   func(b quadtree.Box) bool
	Aggregate func(b quadtree.Box) bool
	Emit      func(x, y float64, item T)
}

// Run walks t and returns the walk statistics.
func (p Pass[T]) Run(t *quadtree.Tree[T]) Stats {
	var st Stats
	t.Visit(func(n *quadtree.Node[T], b quadtree.Box) bool {
		st.Visited++
		if p.Visible != nil && !p.Visible(b) {
			st.Culled++
			return false
		}
		if p.Aggregate != nil && p.Aggregate(b) {
			if f := n.First(); f != nil {
				x, y := f.Point()
				p.Emit(x, y, f.Item())
				st.Aggregated++
				st.Rendered++
			}
			return false
		}
		if n.IsLeaf() {
			x, y := n.Point()
			for d := range n.Items() {
				p.Emit(x, y, d)
				st.Rendered++
			}
			return false
		}
		return true
	})
	return st
}

// Draw renders the visible part of t through r. Subtrees no larger than
// threshold pixels on their longer side are drawn as one point.
// r.Done is called exactly once, even when nothing is visible.
func Draw[T comparable](t *quadtree.Tree[T], r Renderer[T], vp Viewport, threshold float64) Stats {
	defer r.Done()
	win, ok := vp.Window()
	if !ok || t == nil {
		return Stats{}
	}
	pass := Pass[T]{
		Visible: win.Intersects,
		Emit: func(x, y float64, item T) {
			px, py := vp.Project(x, y)
			r.Render(px, py, item)
		},
	}
	if threshold > 0 {
		pass.Aggregate = func(b quadtree.Box) bool { return vp.Collapses(b, threshold) }
	}
	return pass.Run(t)
}

// Region is a hit-test area in normalized space.
type Region interface {
	// Bounds returns a box enclosing the region.
	Bounds() quadtree.Box
	// Contains reports whether a normalized point lies in the region.
	Contains(x, y float64) bool
}

// Collect returns the items of t inside region, in walk order. The walk
// never aggregates. An invalid region yields nil.
func Collect[T comparable](t *quadtree.Tree[T], region Region) []T {
	if t == nil || region == nil {
		return nil
	}
	bounds := region.Bounds()
	if !bounds.Valid() {
		return nil
	}
	var out []T
	Pass[T]{
		Visible: bounds.Intersects,
		Emit: func(x, y float64, item T) {
			if region.Contains(x, y) {
				out = append(out, item)
			}
		},
	}.Run(t)
	return out
}
