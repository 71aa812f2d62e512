// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/scatter/layer"
	"github.com/gogpu/scatter/lod"
	"github.com/gogpu/scatter/scale"
)

// Mode tells a renderer which layer it is drawing.
type Mode uint8

const (
	// ModeNormal draws the data layer.
	ModeNormal Mode = iota
	// ModeSelected draws selected items on the selection layer.
	ModeSelected
	// ModeHover draws the item under the pointer on the selection layer.
	ModeHover
)

// String returns "NORMAL", "SELECTED" or "HOVER".
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeSelected:
		return "SELECTED"
	case ModeHover:
		return "HOVER"
	}
	return "Mode(?)"
}

// RenderInfo describes the pass a renderer is created for.
type RenderInfo struct {
	Series    string
	Reason    Reason
	Transform scale.Transform
	Viewport  lod.Viewport
}

// Renderer receives one Render call per emitted point or aggregate, in
// plot-area pixels, then Done exactly once.
type Renderer[T any] = lod.Renderer[T]

// RendererFactory creates the renderer for one traversal. dst is the layer
// to draw into; it is only valid until Done returns.
type RendererFactory[T any] func(dst draw.Image, mode Mode, info RenderInfo) Renderer[T]

// DotStyle configures NewDotRenderer.
type DotStyle struct {
	Radius   float64
	Normal   color.Color
	Selected color.Color
	Hover    color.Color
}

// DefaultDotStyle is the style used when a series has no renderer.
func DefaultDotStyle() DotStyle {
	return DotStyle{
		Radius:   2.5,
		Normal:   color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xcc},
		Selected: color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
		Hover:    color.NRGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	}
}

// secondaryDotStyle distinguishes the secondary series by default.
func secondaryDotStyle() DotStyle {
	s := DefaultDotStyle()
	s.Normal = color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xcc}
	return s
}

// NewDotRenderer returns a factory drawing every point as a filled disc.
// The disc mask is rasterized once and stamped per point.
func NewDotRenderer[T any](style DotStyle) RendererFactory[T] {
	mask, centre := layer.Disc(style.Radius)
	hoverMask, hoverCentre := layer.Disc(style.Radius * 2)
	return func(dst draw.Image, mode Mode, _ RenderInfo) Renderer[T] {
		r := &dotRenderer[T]{dst: dst, mask: mask, centre: centre}
		switch mode {
		case ModeSelected:
			r.src = image.NewUniform(style.Selected)
		case ModeHover:
			r.src = image.NewUniform(style.Hover)
			r.mask, r.centre = hoverMask, hoverCentre
		default:
			r.src = image.NewUniform(style.Normal)
		}
		return r
	}
}

type dotRenderer[T any] struct {
	dst    draw.Image
	src    *image.Uniform
	mask   *image.Alpha
	centre image.Point
}

func (r *dotRenderer[T]) Render(px, py float64, _ T) {
	layer.Stamp(r.dst, r.mask, r.centre, px, py, r.src.C)
}

func (r *dotRenderer[T]) Done() {}
