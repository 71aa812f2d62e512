// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// discSegments is the number of edges used to approximate a circle.
const discSegments = 24

// Disc returns an anti-aliased alpha mask of a filled circle of the given
// radius, centred in a square of side 2*ceil(radius)+2. The second result
// is the offset from the mask origin to its centre pixel.
func Disc(radius float64) (*image.Alpha, image.Point) {
	if !(radius > 0) {
		radius = 0.5
	}
	half := int(math.Ceil(radius)) + 1
	side := 2 * half
	z := vector.NewRasterizer(side, side)
	c := float32(half)
	for i := range discSegments {
		a := 2 * math.Pi * float64(i) / discSegments
		x := c + float32(radius*math.Cos(a))
		y := c + float32(radius*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	mask := image.NewAlpha(image.Rect(0, 0, side, side))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, image.Pt(half, half)
}

// Stamp draws mask onto dst in colour c, placing the mask centre at the
// pixel (px, py).
func Stamp(dst draw.Image, mask *image.Alpha, centre image.Point, px, py float64, c color.Color) {
	at := image.Pt(int(math.Round(px)), int(math.Round(py))).Sub(centre)
	r := mask.Bounds().Add(at)
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// FillPolygon fills the closed outline pts on dst.
func FillPolygon(dst draw.Image, pts []image.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].X-b.Min.X), float32(pts[0].Y-b.Min.Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-b.Min.X), float32(p.Y-b.Min.Y))
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// StrokePolyline strokes the segments joining pts with lines of the given
// width. When closed is set the last point is joined back to the first.
func StrokePolyline(dst draw.Image, pts []image.Point, width float64, c color.Color, closed bool) {
	if len(pts) < 2 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	hw := math.Max(width, 1) / 2
	seg := func(a, e image.Point) {
		ax, ay := float64(a.X-b.Min.X), float64(a.Y-b.Min.Y)
		ex, ey := float64(e.X-b.Min.X), float64(e.Y-b.Min.Y)
		dx, dy := ex-ax, ey-ay
		l := math.Hypot(dx, dy)
		if l == 0 {
			return
		}
		// Unit normal scaled to half the width.
		nx, ny := -dy/l*hw, dx/l*hw
		z.MoveTo(float32(ax+nx), float32(ay+ny))
		z.LineTo(float32(ex+nx), float32(ey+ny))
		z.LineTo(float32(ex-nx), float32(ey-ny))
		z.LineTo(float32(ax-nx), float32(ay-ny))
		z.ClosePath()
	}
	for i := 1; i < len(pts); i++ {
		seg(pts[i-1], pts[i])
	}
	if closed && len(pts) > 2 {
		seg(pts[len(pts)-1], pts[0])
	}
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}
