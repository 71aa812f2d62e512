// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lod

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/scatter/quadtree"
	"github.com/gogpu/scatter/scale"
)

type item struct {
	x, y float64
}

func ix(p *item) float64 { return p.x }
func iy(p *item) float64 { return p.y }

type countingRenderer struct {
	calls []*item
	done  int
}

func (r *countingRenderer) Render(_, _ float64, it *item) { r.calls = append(r.calls, it) }
func (r *countingRenderer) Done()                         { r.done++ }

// viewport100 maps normalized [0,100]^2 onto a 100x100 pixel canvas.
func viewport100(tr scale.Transform) Viewport {
	nx := scale.Linear(0, 100).WithRange(0, 100)
	ny := scale.Linear(0, 100).WithRange(100, 0)
	return Viewport{
		X:      tr.RescaleX(nx),
		Y:      tr.RescaleY(ny),
		Width:  100,
		Height: 100,
	}
}

func scatter(r *rand.Rand, n int, x0, x1, y0, y1 float64) []*item {
	out := make([]*item, n)
	for i := range out {
		out[i] = &item{x: x0 + r.Float64()*(x1-x0), y: y0 + r.Float64()*(y1-y0)}
	}
	return out
}

func TestDrawReachesEveryVisibleItemOnce(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	items := scatter(r, 2000, 0, 100, 0, 100)
	tree := quadtree.Build(items, ix, iy)

	rr := &countingRenderer{}
	st := Draw(tree, rr, viewport100(scale.Identity), 0)

	if rr.done != 1 {
		t.Errorf("Done() called %d times, want 1", rr.done)
	}
	if st.Rendered != len(items) || len(rr.calls) != len(items) {
		t.Fatalf("rendered %d (stats %d), want %d", len(rr.calls), st.Rendered, len(items))
	}
	seen := make(map[*item]bool, len(items))
	for _, it := range rr.calls {
		if seen[it] {
			t.Fatalf("item %+v rendered twice", *it)
		}
		seen[it] = true
	}
}

func TestAggregationCollapsesDenseCluster(t *testing.T) {
	for _, n := range []int{1, 10, 10000} {
		r := rand.New(rand.NewPCG(uint64(n), 3))
		items := scatter(r, n, 10.1, 10.4, 10.1, 10.4)
		tree := quadtree.Build(items, ix, iy)

		rr := &countingRenderer{}
		st := Draw(tree, rr, viewport100(scale.Identity), DefaultThreshold)
		if len(rr.calls) != 1 {
			t.Errorf("n=%d: %d render calls, want 1", n, len(rr.calls))
		}
		if st.Aggregated != 1 {
			t.Errorf("n=%d: Aggregated = %d, want 1", n, st.Aggregated)
		}
		if rr.calls[0] != tree.Root().First().Item() {
			t.Errorf("n=%d: representative is not the first leaf", n)
		}
	}
}

func TestAggregationNextToSeparatePoint(t *testing.T) {
	r := rand.New(rand.NewPCG(4, 4))
	items := append(scatter(r, 500, 10.1, 10.4, 10.1, 10.4), &item{x: 90, y: 90})
	tree := quadtree.Build(items, ix, iy)

	rr := &countingRenderer{}
	Draw(tree, rr, viewport100(scale.Identity), DefaultThreshold)
	if len(rr.calls) != 2 {
		t.Errorf("%d render calls, want 2 (cluster + lone point)", len(rr.calls))
	}

	// Zoomed far enough in, the cluster separates into individual points.
	zoom := scale.Identity.ScaleAround(400, 10.25, 89.75)
	rr = &countingRenderer{}
	Draw(tree, rr, viewport100(zoom), DefaultThreshold)
	if len(rr.calls) <= 2 {
		t.Errorf("zoomed in: %d render calls, want more than 2", len(rr.calls))
	}
}

func TestCullingSkipsOffscreenSubtrees(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	visible := scatter(r, 300, 5, 95, 5, 95)
	hidden := scatter(r, 3000, 400, 500, 400, 500)
	tree := quadtree.Build(append(visible, hidden...), ix, iy)

	full := Pass[*item]{Emit: func(float64, float64, *item) {}}.Run(tree)

	rr := &countingRenderer{}
	st := Draw(tree, rr, viewport100(scale.Identity), 0)

	if st.Rendered != len(visible) {
		t.Errorf("Rendered = %d, want %d", st.Rendered, len(visible))
	}
	for _, it := range rr.calls {
		if it.x > 100 || it.y > 100 {
			t.Fatalf("offscreen item %+v rendered", *it)
		}
	}
	if st.Culled == 0 {
		t.Error("Culled = 0, want at least one pruned subtree")
	}
	// The hidden cluster must not be descended into: the walk touches far
	// fewer nodes than the 3000 hidden points would need.
	if st.Visited >= full.Visited-len(hidden) {
		t.Errorf("Visited = %d with culling, full walk %d", st.Visited, full.Visited)
	}
}

func TestPassVisibilityAbortAtRoot(t *testing.T) {
	tree := quadtree.Build(scatter(rand.New(rand.NewPCG(7, 7)), 100, 0, 100, 0, 100), ix, iy)
	emitted := 0
	st := Pass[*item]{
		Visible: func(quadtree.Box) bool { return false },
		Emit:    func(float64, float64, *item) { emitted++ },
	}.Run(tree)
	if st.Visited != 1 || st.Culled != 1 || emitted != 0 {
		t.Errorf("stats = %+v, emitted %d; want 1 visited, 1 culled, 0 emitted", st, emitted)
	}
}

func TestDegenerateViewport(t *testing.T) {
	tree := quadtree.Build([]*item{{1, 1}, {2, 2}}, ix, iy)
	vp := viewport100(scale.Identity)
	vp.Width = 0

	rr := &countingRenderer{}
	st := Draw(tree, rr, vp, DefaultThreshold)
	if st != (Stats{}) || len(rr.calls) != 0 {
		t.Errorf("zero-width viewport rendered %d items, stats %+v", len(rr.calls), st)
	}
	if rr.done != 1 {
		t.Errorf("Done() called %d times, want 1", rr.done)
	}
	if _, ok := vp.Window(); ok {
		t.Error("Window() ok for zero-width viewport")
	}
}

func TestWindowFollowsZoom(t *testing.T) {
	vp := viewport100(scale.Transform{K: 2, X: -50, Y: -50})
	w, ok := vp.Window()
	if !ok {
		t.Fatal("Window() not ok")
	}
	want := quadtree.Box{X0: 25, Y0: 25, X1: 75, Y1: 75}
	if w != want {
		t.Errorf("Window() = %+v, want %+v", w, want)
	}
}

type boxRegion quadtree.Box

func (b boxRegion) Bounds() quadtree.Box       { return quadtree.Box(b) }
func (b boxRegion) Contains(x, y float64) bool { return quadtree.Box(b).Contains(x, y) }

func TestCollect(t *testing.T) {
	items := []*item{{10, 10}, {20, 20}, {30, 30}, {80, 80}}
	tree := quadtree.Build(items, ix, iy)

	got := Collect(tree, boxRegion{X0: 15, Y0: 15, X1: 35, Y1: 35})
	if len(got) != 2 {
		t.Fatalf("Collect() = %d items, want 2", len(got))
	}
	for _, it := range got {
		if it != items[1] && it != items[2] {
			t.Errorf("Collect() returned unexpected %+v", *it)
		}
	}

	if got := Collect(tree, boxRegion{X0: 1, Y0: 1, X1: 0, Y1: 0}); got != nil {
		t.Errorf("Collect() with inverted region = %v, want nil", got)
	}
}

func TestStatsAdd(t *testing.T) {
	a := Stats{Visited: 1, Culled: 2, Aggregated: 3, Rendered: 4}
	if got := a.Add(a); got != (Stats{2, 4, 6, 8}) {
		t.Errorf("Add() = %+v", got)
	}
}

// viewport64 maps normalized [0,64]^2 onto 64x64 pixels, so box edges on
// integers project without rounding.
func viewport64(tr scale.Transform) Viewport {
	return Viewport{
		X:      tr.RescaleX(scale.Linear(0, 64).WithRange(0, 64)),
		Y:      tr.RescaleY(scale.Linear(0, 64).WithRange(64, 0)),
		Width:  64,
		Height: 64,
	}
}

func TestCollapsesAtThreshold(t *testing.T) {
	vp := viewport64(scale.Identity)
	tests := []struct {
		name string
		box  quadtree.Box
		want bool
	}{
		{"smaller", quadtree.Box{X0: 8, Y0: 8, X1: 11, Y1: 12}, true},
		{"exactly the threshold", quadtree.Box{X0: 8, Y0: 8, X1: 13, Y1: 13}, true},
		{"one side over", quadtree.Box{X0: 8, Y0: 8, X1: 14, Y1: 9}, false},
		{"point", quadtree.Box{X0: 8, Y0: 8, X1: 8, Y1: 8}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vp.Collapses(tt.box, DefaultThreshold); got != tt.want {
				t.Errorf("Collapses(%+v) = %v, want %v", tt.box, got, tt.want)
			}
		})
	}

	// Zoom doubles the projected size: the 5px box becomes 10px.
	zoomed := viewport64(scale.Identity.ScaleAround(2, 0, 0))
	if zoomed.Collapses(quadtree.Box{X0: 8, Y0: 8, X1: 13, Y1: 13}, DefaultThreshold) {
		t.Error("Collapses() ignored the zoom factor")
	}
}
