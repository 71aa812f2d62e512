// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package selection

import (
	"math"

	"github.com/gogpu/scatter/lod"
	"github.com/gogpu/scatter/quadtree"
)

// Point is a 2D position, in pixels or normalized units depending on use.
type Point struct {
	X, Y float64
}

// Ellipse is an axis-aligned elliptical region in normalized space.
type Ellipse struct {
	CX, CY float64
	RX, RY float64
}

var _ lod.Region = Ellipse{}

// ClickEllipse converts a circle of radius pixels around (px, py) into a
// normalized-space ellipse under the live viewport.
//
// The radii are radius divided by the live pixels-per-unit slope of each
// axis, which folds in both the zoom factor of the masked axes and the
// normalized-to-pixel ratio of the plot area. The result depends on the
// current zoom level, so it must be recomputed for every query. ok is
// false when the viewport is degenerate.
func ClickEllipse(vp lod.Viewport, px, py, radius float64) (e Ellipse, ok bool) {
	if !(radius > 0) || !(vp.Width > 0 && vp.Height > 0) {
		return Ellipse{}, false
	}
	sx := math.Abs(vp.X.Apply(1) - vp.X.Apply(0))
	sy := math.Abs(vp.Y.Apply(1) - vp.Y.Apply(0))
	if !(sx > 0) || !(sy > 0) || math.IsInf(sx, 0) || math.IsInf(sy, 0) {
		return Ellipse{}, false
	}
	cx, cy := vp.Unproject(px, py)
	e = Ellipse{CX: cx, CY: cy, RX: radius / sx, RY: radius / sy}
	return e, e.Bounds().Valid()
}

// Bounds implements lod.Region.
func (e Ellipse) Bounds() quadtree.Box {
	return quadtree.Box{X0: e.CX - e.RX, Y0: e.CY - e.RY, X1: e.CX + e.RX, Y1: e.CY + e.RY}
}

// Contains implements lod.Region.
func (e Ellipse) Contains(x, y float64) bool {
	return e.Distance(x, y) <= 1
}

// Distance returns the squared normalized distance of (x, y) from the
// centre: 1 on the boundary, less inside.
func (e Ellipse) Distance(x, y float64) float64 {
	dx, dy := (x-e.CX)/e.RX, (y-e.CY)/e.RY
	return dx*dx + dy*dy
}

// Polygon is a closed polygon in normalized space.
type Polygon []Point

var _ lod.Region = Polygon(nil)

// PolygonFromPixels maps a pixel-space outline into normalized space.
// Polygons with fewer than three vertices, or with vertices that do not
// map to finite coordinates, are returned empty.
func PolygonFromPixels(vp lod.Viewport, pixels []Point) Polygon {
	if len(pixels) < 3 || !(vp.Width > 0 && vp.Height > 0) {
		return nil
	}
	poly := make(Polygon, len(pixels))
	for i, p := range pixels {
		x, y := vp.Unproject(p.X, p.Y)
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return nil
		}
		poly[i] = Point{X: x, Y: y}
	}
	return poly
}

// Bounds implements lod.Region. An empty polygon has an invalid box.
func (p Polygon) Bounds() quadtree.Box {
	if len(p) < 3 {
		return quadtree.Box{X0: 1, Y0: 1}
	}
	b := quadtree.Box{X0: p[0].X, Y0: p[0].Y, X1: p[0].X, Y1: p[0].Y}
	for _, v := range p[1:] {
		b.X0, b.X1 = math.Min(b.X0, v.X), math.Max(b.X1, v.X)
		b.Y0, b.Y1 = math.Min(b.Y0, v.Y), math.Max(b.Y1, v.Y)
	}
	return b
}

// Contains implements lod.Region using the even-odd rule.
func (p Polygon) Contains(x, y float64) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := range p {
		xi, yi := p[i].X, p[i].Y
		xj, yj := p[j].X, p[j].Y
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Nearest returns the item of t inside e closest to its centre.
func Nearest[T comparable](t *quadtree.Tree[T], e Ellipse) (item T, ok bool) {
	bounds := e.Bounds()
	if t == nil || !bounds.Valid() {
		return item, false
	}
	best := math.Inf(1)
	lod.Pass[T]{
		Visible: bounds.Intersects,
		Emit: func(x, y float64, d T) {
			if dist := e.Distance(x, y); dist <= 1 && dist < best {
				best, item, ok = dist, d, true
			}
		},
	}.Run(t)
	return item, ok
}
