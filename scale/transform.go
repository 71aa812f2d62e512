// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scale

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Axis is a bit mask selecting the axes a zoom transform applies to.
type Axis uint8

const (
	// AxisX restricts zooming to the horizontal axis.
	AxisX Axis = 1 << iota
	// AxisY restricts zooming to the vertical axis.
	AxisY
	// AxisXY zooms both axes.
	AxisXY = AxisX | AxisY
)

// Has reports whether every axis in o is selected by a.
func (a Axis) Has(o Axis) bool {
	return a&o == o
}

// String returns "x", "y" or "xy".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisXY:
		return "xy"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// ParseAxis parses "x", "y" or "xy".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "xy", "yx":
		return AxisXY, nil
	}
	return 0, fmt.Errorf("scale: unknown axis %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(b []byte) error {
	v, err := ParseAxis(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Transform is a pixel-space zoom: uniform scale K followed by a
// translation (X, Y).
//
//	x' = x*K + X
//	y' = y*K + Y
type Transform struct {
	K, X, Y float64
}

// Identity is the transform that leaves pixels unchanged.
var Identity = Transform{K: 1}

// ApplyX maps a base pixel x to its zoomed position.
func (t Transform) ApplyX(x float64) float64 { return x*t.K + t.X }

// ApplyY maps a base pixel y to its zoomed position.
func (t Transform) ApplyY(y float64) float64 { return y*t.K + t.Y }

// InvertX maps a zoomed pixel x back to its base position.
func (t Transform) InvertX(x float64) float64 { return (x - t.X) / t.K }

// InvertY maps a zoomed pixel y back to its base position.
func (t Transform) InvertY(y float64) float64 { return (y - t.Y) / t.K }

// Translate returns t moved by (dx, dy) pixels.
func (t Transform) Translate(dx, dy float64) Transform {
	return Transform{K: t.K, X: t.X + dx, Y: t.Y + dy}
}

// ScaleAround returns t with K multiplied by f, keeping the pixel
// (cx, cy) fixed.
func (t Transform) ScaleAround(f, cx, cy float64) Transform {
	return Transform{
		K: t.K * f,
		X: cx - (cx-t.X)*f,
		Y: cy - (cy-t.Y)*f,
	}
}

// Clamp limits K to [lo, hi] while keeping the pixel (cx, cy) fixed.
func (t Transform) Clamp(lo, hi, cx, cy float64) Transform {
	k := math.Min(math.Max(t.K, lo), hi)
	if k == t.K {
		return t
	}
	return t.ScaleAround(k/t.K, cx, cy)
}

// Masked returns t with the components of unselected axes reset to identity.
// K is kept whenever any axis is selected.
func (t Transform) Masked(mask Axis) Transform {
	if !mask.Has(AxisX) {
		t.X = 0
	}
	if !mask.Has(AxisY) {
		t.Y = 0
	}
	if mask&AxisXY == 0 {
		t.K = 1
	}
	return t
}

// RescaleX returns a copy of s whose domain reflects the transform on the
// horizontal axis, so that the copy maps values directly to zoomed pixels.
func (t Transform) RescaleX(s Scale) Scale {
	r0, r1 := s.Range()
	c := s.Copy()
	c.SetDomain(s.Invert(t.InvertX(r0)), s.Invert(t.InvertX(r1)))
	return c
}

// RescaleY is RescaleX for the vertical axis.
func (t Transform) RescaleY(s Scale) Scale {
	r0, r1 := s.Range()
	c := s.Copy()
	c.SetDomain(s.Invert(t.InvertY(r0)), s.Invert(t.InvertY(r1)))
	return c
}

// Rescale rescales s along the given axis when mask selects it and returns
// an unmodified copy otherwise.
func (t Transform) Rescale(s Scale, along, mask Axis) Scale {
	if !mask.Has(along) {
		return s.Copy()
	}
	if along == AxisY {
		return t.RescaleY(s)
	}
	return t.RescaleX(s)
}

// DeltaTo returns the pixel-space delta that carries content rendered
// under t to where it belongs under next, restricted to mask.
func (t Transform) DeltaTo(next Transform, mask Axis) Delta {
	d := NoDelta
	k := next.K / t.K
	if mask.Has(AxisX) {
		d.KX = k
		d.X = next.X - t.X*k
	}
	if mask.Has(AxisY) {
		d.KY = k
		d.Y = next.Y - t.Y*k
	}
	return d
}

// Delta is an incremental pixel-space translation and scale applied
// between two renders during a gesture. It is consumed once per frame.
//
//	x' = x*KX + X
//	y' = y*KY + Y
type Delta struct {
	X, Y   float64
	KX, KY float64
}

// NoDelta is the identity delta.
var NoDelta = Delta{KX: 1, KY: 1}

// IsIdentity reports whether d moves nothing. A zero scale counts as 1.
func (d Delta) IsIdentity() bool {
	d = d.normalized()
	return d.X == 0 && d.Y == 0 && d.KX == 1 && d.KY == 1
}

// Aff3 returns d as an affine matrix mapping source pixels to
// destination pixels.
func (d Delta) Aff3() f64.Aff3 {
	d = d.normalized()
	return f64.Aff3{
		d.KX, 0, d.X,
		0, d.KY, d.Y,
	}
}

// IsTranslation reports whether d has unit scale on both axes.
func (d Delta) IsTranslation() bool {
	d = d.normalized()
	return d.KX == 1 && d.KY == 1
}

func (d Delta) normalized() Delta {
	if d.KX == 0 {
		d.KX = 1
	}
	if d.KY == 0 {
		d.KY = 1
	}
	return d
}
