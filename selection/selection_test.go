// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package selection

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/scatter/lod"
	"github.com/gogpu/scatter/quadtree"
	"github.com/gogpu/scatter/scale"
)

type pt struct{ x, y float64 }

func fx(p *pt) float64 { return p.x }
func fy(p *pt) float64 { return p.y }

func indexed(s *Set[*pt]) map[*pt]bool {
	m := make(map[*pt]bool)
	for _, d := range s.Index().Items() {
		m[d] = true
	}
	return m
}

func TestReplaceDiffs(t *testing.T) {
	a, b, c := &pt{1, 1}, &pt{2, 2}, &pt{3, 3}
	s := NewSet(fx, fy)

	added, removed := s.Replace([]*pt{a, b})
	if len(added) != 2 || len(removed) != 0 {
		t.Fatalf("first Replace() = +%d -%d, want +2 -0", len(added), len(removed))
	}

	added, removed = s.Replace([]*pt{b, a, a})
	if added != nil || removed != nil {
		t.Errorf("Replace() with the same set = +%v -%v, want no change", added, removed)
	}

	added, removed = s.Replace([]*pt{b, c})
	if len(added) != 1 || added[0] != c || len(removed) != 1 || removed[0] != a {
		t.Errorf("Replace() = +%v -%v, want +c -a", added, removed)
	}
	if got := indexed(s); len(got) != 2 || !got[b] || !got[c] {
		t.Errorf("index holds %v, want {b, c}", got)
	}
	if s.Len() != 2 || !s.Has(b) || s.Has(a) {
		t.Errorf("membership wrong: Len=%d Has(b)=%v Has(a)=%v", s.Len(), s.Has(b), s.Has(a))
	}
	if items := s.Items(); items[0] != b || items[1] != c {
		t.Errorf("Items() not in selection order: %v", items)
	}
}

func TestClearRebuilds(t *testing.T) {
	s := NewSet(fx, fy)
	s.Replace([]*pt{{1, 1}, {2, 2}})
	before := s.Index()

	removed := s.Clear()
	if len(removed) != 2 {
		t.Errorf("Clear() removed %d, want 2", len(removed))
	}
	if s.Index() == before {
		t.Error("Clear() should rebuild the index")
	}
	if s.Index().Size() != 0 || s.Len() != 0 {
		t.Error("selection not empty after Clear()")
	}
	if removed := s.Clear(); removed != nil {
		t.Errorf("Clear() on empty set = %v, want nil", removed)
	}

	_, removed = s.Replace([]*pt{{5, 5}})
	if removed != nil {
		t.Errorf("Replace() after Clear() removed %v", removed)
	}
	_, removed = s.Replace(nil)
	if len(removed) != 1 {
		t.Errorf("Replace(nil) removed %d, want 1", len(removed))
	}
}

func TestRebase(t *testing.T) {
	a, b := &pt{1, 1}, &pt{2, 2}
	s := NewSet(fx, fy)
	s.Replace([]*pt{a, b})

	double := func(p *pt) float64 { return p.x * 2 }
	removed := s.Rebase(double, double, func(p *pt) bool { return p == b })
	if len(removed) != 1 || removed[0] != a {
		t.Errorf("Rebase() removed %v, want [a]", removed)
	}
	ext, ok := s.Index().Extent()
	if !ok || !ext.Contains(4, 4) {
		t.Errorf("rebased index extent %+v should cover (4, 4)", ext)
	}
}

func viewport(tr scale.Transform) lod.Viewport {
	return lod.Viewport{
		X:      tr.RescaleX(scale.Linear(0, 100).WithRange(0, 100)),
		Y:      tr.RescaleY(scale.Linear(0, 100).WithRange(100, 0)),
		Width:  100,
		Height: 100,
	}
}

func TestClickEllipse(t *testing.T) {
	e, ok := ClickEllipse(viewport(scale.Identity), 10, 90, 10)
	if !ok {
		t.Fatal("ClickEllipse() not ok")
	}
	if e.CX != 10 || e.CY != 10 || e.RX != 10 || e.RY != 10 {
		t.Errorf("ClickEllipse() = %+v, want centre (10,10) radii 10", e)
	}

	// Zooming in by 4 shrinks the normalized radius by 4.
	e, _ = ClickEllipse(viewport(scale.Transform{K: 4}), 0, 0, 10)
	if math.Abs(e.RX-2.5) > 1e-12 || math.Abs(e.RY-2.5) > 1e-12 {
		t.Errorf("zoomed radii = (%v, %v), want 2.5", e.RX, e.RY)
	}

	// A wider canvas shrinks only the horizontal radius.
	wide := lod.Viewport{
		X:      scale.Linear(0, 100).WithRange(0, 200),
		Y:      scale.Linear(0, 100).WithRange(100, 0),
		Width:  200,
		Height: 100,
	}
	e, _ = ClickEllipse(wide, 0, 0, 10)
	if e.RX != 5 || e.RY != 10 {
		t.Errorf("wide canvas radii = (%v, %v), want (5, 10)", e.RX, e.RY)
	}

	degenerate := viewport(scale.Identity)
	degenerate.Height = 0
	if _, ok := ClickEllipse(degenerate, 1, 1, 10); ok {
		t.Error("ClickEllipse() ok on degenerate viewport")
	}
}

func TestEllipseHitTest(t *testing.T) {
	near, far := &pt{10, 10}, &pt{90, 90}
	tree := quadtree.Build([]*pt{near, far}, fx, fy)

	e, _ := ClickEllipse(viewport(scale.Identity), 10, 90, 10)
	got := lod.Collect(tree, e)
	if len(got) != 1 || got[0] != near {
		t.Errorf("Collect() = %v, want [near]", got)
	}
	if d, ok := Nearest(tree, e); !ok || d != near {
		t.Errorf("Nearest() = %v, %v, want near", d, ok)
	}
	miss, _ := ClickEllipse(viewport(scale.Identity), 50, 50, 10)
	if _, ok := Nearest(tree, miss); ok {
		t.Error("Nearest() found an item outside the ellipse")
	}
}

func TestPolygonContains(t *testing.T) {
	square := Polygon{{20, 20}, {60, 20}, {60, 60}, {20, 60}}
	tests := []struct {
		x, y float64
		want bool
	}{
		{40, 40, true},
		{21, 59, true},
		{10, 40, false},
		{40, 61, false},
	}
	for _, tt := range tests {
		if got := square.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if (Polygon{{0, 0}, {1, 1}}).Contains(0.5, 0.5) {
		t.Error("two-vertex polygon should contain nothing")
	}
	if (Polygon{{0, 0}, {1, 1}}).Bounds().Valid() {
		t.Error("two-vertex polygon bounds should be invalid")
	}
}

func TestPolygonSelectsExactlyInside(t *testing.T) {
	r := rand.New(rand.NewPCG(8, 9))
	pts := make([]*pt, 2000)
	for i := range pts {
		pts[i] = &pt{r.Float64() * 100, r.Float64() * 100}
	}
	tree := quadtree.Build(pts, fx, fy)

	// Convex pixel outline; y pixels grow downwards.
	pixels := []Point{{20, 20}, {70, 30}, {80, 80}, {30, 70}}
	poly := PolygonFromPixels(viewport(scale.Identity), pixels)
	got := lod.Collect(tree, poly)

	want := 0
	inside := make(map[*pt]bool)
	for _, p := range pts {
		if poly.Contains(p.x, p.y) {
			want++
			inside[p] = true
		}
	}
	if len(got) != want {
		t.Fatalf("Collect() = %d items, want %d", len(got), want)
	}
	for _, p := range got {
		if !inside[p] {
			t.Errorf("point %+v selected but outside", *p)
		}
	}
}

func TestPolygonFromPixelsDegenerate(t *testing.T) {
	vp := viewport(scale.Identity)
	if p := PolygonFromPixels(vp, []Point{{1, 1}, {2, 2}}); p != nil {
		t.Errorf("two points gave %v, want nil", p)
	}
	vp.Width = 0
	if p := PolygonFromPixels(vp, []Point{{1, 1}, {2, 2}, {3, 1}}); p != nil {
		t.Errorf("degenerate viewport gave %v, want nil", p)
	}
}

func TestLasso(t *testing.T) {
	l := NewLasso(Point{0, 0})
	if l.Commit() {
		t.Error("Commit() with nothing pending = true")
	}
	l.Append(Point{10, 0})
	l.Append(Point{10, 10})
	if got := len(l.Polygon()); got != 1 {
		t.Errorf("Polygon() before commit has %d points, want 1", got)
	}
	if got := len(l.Preview()); got != 3 {
		t.Errorf("Preview() has %d points, want 3", got)
	}
	if !l.Commit() {
		t.Error("Commit() = false with pending points")
	}
	if l.Pending() != 0 || len(l.Polygon()) != 3 {
		t.Errorf("after Commit(): pending %d, polygon %d", l.Pending(), len(l.Polygon()))
	}
}
