// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quadtree

import (
	"math"
	"math/rand/v2"
	"testing"
)

type pt struct {
	id   int
	x, y float64
}

func px(p *pt) float64 { return p.x }
func py(p *pt) float64 { return p.y }

func randomPoints(n int, seed uint64) []*pt {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b9))
	pts := make([]*pt, n)
	for i := range pts {
		pts[i] = &pt{id: i, x: r.Float64() * 100, y: r.Float64() * 100}
	}
	return pts
}

// countVisits returns how many times each item is reachable in a full walk.
func countVisits(tr *Tree[*pt]) map[*pt]int {
	seen := make(map[*pt]int)
	tr.Visit(func(n *Node[*pt], _ Box) bool {
		for d := range n.Items() {
			seen[d]++
		}
		return true
	})
	return seen
}

func TestBuildReachesEveryItemOnce(t *testing.T) {
	for _, n := range []int{0, 1, 2, 17, 1000} {
		pts := randomPoints(n, uint64(n)+1)
		tr := Build(pts, px, py)

		if tr.Size() != n {
			t.Errorf("n=%d: Size() = %d, want %d", n, tr.Size(), n)
		}
		seen := countVisits(tr)
		if len(seen) != n {
			t.Errorf("n=%d: reached %d distinct items, want %d", n, len(seen), n)
		}
		for p, c := range seen {
			if c != 1 {
				t.Errorf("n=%d: item %d reached %d times, want 1", n, p.id, c)
			}
		}
	}
}

func TestItemsLieInsideTheirBox(t *testing.T) {
	tr := Build(randomPoints(500, 7), px, py)
	tr.Visit(func(n *Node[*pt], b Box) bool {
		if n.IsLeaf() {
			x, y := n.Point()
			if x < b.X0 || x > b.X1 || y < b.Y0 || y > b.Y1 {
				t.Errorf("leaf (%v, %v) outside its box %+v", x, y, b)
			}
		}
		return true
	})
}

func TestDuplicateCoordinatesChain(t *testing.T) {
	a := &pt{id: 1, x: 5, y: 5}
	b := &pt{id: 2, x: 5, y: 5}
	c := &pt{id: 3, x: 5, y: 5}
	far := &pt{id: 4, x: 50, y: 50}
	tr := Build([]*pt{a, b, c, far}, px, py)

	var leaf *Node[*pt]
	tr.Visit(func(n *Node[*pt], _ Box) bool {
		if n.IsLeaf() && n.Len() > 1 {
			leaf = n
		}
		return true
	})
	if leaf == nil {
		t.Fatal("no chained leaf found")
	}
	if leaf.Len() != 3 {
		t.Errorf("chained leaf Len() = %d, want 3", leaf.Len())
	}
	if tr.Size() != 4 {
		t.Errorf("Size() = %d, want 4", tr.Size())
	}
}

func TestAddIncremental(t *testing.T) {
	pts := randomPoints(200, 3)
	tr := New(px, py)
	for _, p := range pts {
		tr.Add(p)
	}
	// Points far outside the original extent force the root to grow.
	outside := []*pt{{id: 1000, x: -500, y: 20}, {id: 1001, x: 900, y: -300}}
	tr.Add(outside...)

	want := len(pts) + len(outside)
	if got := len(countVisits(tr)); got != want {
		t.Errorf("reached %d items, want %d", got, want)
	}
	ext, ok := tr.Extent()
	if !ok {
		t.Fatal("Extent() not ok after Add")
	}
	for _, p := range outside {
		if !ext.Contains(p.x, p.y) {
			t.Errorf("extent %+v does not cover (%v, %v)", ext, p.x, p.y)
		}
	}
}

func TestAddSkipsNonFinite(t *testing.T) {
	tr := Build([]*pt{
		{id: 1, x: math.NaN(), y: 1},
		{id: 2, x: 1, y: math.Inf(1)},
		{id: 3, x: 2, y: 2},
	}, px, py)
	if tr.Size() != 1 {
		t.Errorf("Size() = %d, want 1", tr.Size())
	}
}

func TestRemove(t *testing.T) {
	pts := randomPoints(300, 11)
	tr := Build(pts, px, py)

	removed := pts[:150]
	tr.RemoveAll(removed)

	if tr.Size() != 150 {
		t.Errorf("Size() = %d, want 150", tr.Size())
	}
	seen := countVisits(tr)
	for _, p := range removed {
		if seen[p] != 0 {
			t.Errorf("removed item %d still reachable", p.id)
		}
	}
	for _, p := range pts[150:] {
		if seen[p] != 1 {
			t.Errorf("kept item %d reached %d times, want 1", p.id, seen[p])
		}
	}

	if tr.Remove(pts[0]) {
		t.Error("Remove() of an absent item = true, want false")
	}
}

func TestRemoveChained(t *testing.T) {
	a := &pt{id: 1, x: 5, y: 5}
	b := &pt{id: 2, x: 5, y: 5}
	c := &pt{id: 3, x: 70, y: 70}
	tr := Build([]*pt{a, b, c}, px, py)

	if !tr.Remove(a) {
		t.Fatal("Remove(a) = false")
	}
	seen := countVisits(tr)
	if seen[a] != 0 || seen[b] != 1 || seen[c] != 1 {
		t.Errorf("after Remove(a) visits = %v", seen)
	}
	if !tr.Remove(b) || !tr.Remove(c) {
		t.Fatal("Remove(b/c) = false")
	}
	if tr.Root() != nil {
		t.Error("Root() should be nil after removing every item")
	}
	if tr.Size() != 0 {
		t.Errorf("Size() = %d, want 0", tr.Size())
	}
}

func TestRemoveCollapsesSingleLeafBranch(t *testing.T) {
	a := &pt{id: 1, x: 1, y: 1}
	b := &pt{id: 2, x: 1.01, y: 1.01}
	tr := Build([]*pt{a, b}, px, py)
	if tr.Root().IsLeaf() {
		t.Fatal("root should be internal with two distinct points")
	}
	tr.Remove(b)
	if !tr.Root().IsLeaf() {
		t.Error("root should collapse to the remaining leaf")
	}
	if tr.Root().Item() != a {
		t.Error("remaining leaf should hold a")
	}
}

func TestVisitPrune(t *testing.T) {
	tr := Build(randomPoints(1000, 5), px, py)
	visited := 0
	tr.Visit(func(n *Node[*pt], _ Box) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("pruning at the root visited %d nodes, want 1", visited)
	}
}

func TestFirst(t *testing.T) {
	pts := randomPoints(64, 9)
	tr := Build(pts, px, py)
	first := tr.Root().First()
	if first == nil || !first.IsLeaf() {
		t.Fatal("First() did not return a leaf")
	}
	var want *pt
	tr.Visit(func(n *Node[*pt], _ Box) bool {
		if want == nil && n.IsLeaf() {
			want = n.Item()
		}
		return want == nil
	})
	if first.Item() != want {
		t.Errorf("First() = %d, want first visited leaf %d", first.Item().id, want.id)
	}
}

func TestBox(t *testing.T) {
	b := Box{0, 0, 10, 10}
	tests := []struct {
		o    Box
		want bool
	}{
		{Box{5, 5, 15, 15}, true},
		{Box{10, 10, 20, 20}, true},
		{Box{11, 0, 20, 10}, false},
		{Box{0, -5, 10, -1}, false},
	}
	for _, tt := range tests {
		if got := b.Intersects(tt.o); got != tt.want {
			t.Errorf("%+v.Intersects(%+v) = %v, want %v", b, tt.o, got, tt.want)
		}
	}
	if (Box{0, 0, math.NaN(), 1}).Valid() {
		t.Error("box with NaN bound should not be valid")
	}
	if (Box{2, 0, 1, 1}).Valid() {
		t.Error("inverted box should not be valid")
	}
}
