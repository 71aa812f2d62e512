// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import (
	"fmt"
	"math"

	"github.com/gogpu/scatter/layer"
	"github.com/gogpu/scatter/lod"
	"github.com/gogpu/scatter/quadtree"
	"github.com/gogpu/scatter/scale"
)

// normExtent is the vertical extent of normalized space. The horizontal
// extent is normExtent times the aspect ratio.
const normExtent = 100

// Series describes how one dataset is positioned and drawn.
type Series[T any] struct {
	// Name is passed to renderers in RenderInfo.
	Name string

	// X and Y project an item to raw domain values.
	X, Y func(T) float64

	// XScale and YScale map raw values to the plot. The view works on
	// copies and never modifies them. A secondary series may leave XScale
	// nil to share the primary x scale.
	XScale, YScale scale.Scale

	// Renderer draws the series. Nil uses NewDotRenderer.
	Renderer RendererFactory[T]
}

// indexed is one dataset with its scales, index and layers. A view holds
// one for the primary series and optionally one for the secondary.
type indexed[T comparable] struct {
	name    string
	x, y    func(T) float64
	xs, ys  scale.Scale // domain scales, range set to the plot pixels
	factory RendererFactory[T]

	// normX and normY are the coordinate closures of the current index:
	// raw value -> domain scale with the normalized range -> normalized.
	normX, normY func(T) float64

	index  *quadtree.Tree[T]
	items  []T
	layers *layer.Pair
}

func newIndexed[T comparable](s Series[T], fallback DotStyle, aspect float64) (*indexed[T], error) {
	if s.X == nil || s.Y == nil {
		return nil, fmt.Errorf("%w: series %q", ErrNilAccessor, s.Name)
	}
	for _, sc := range []scale.Scale{s.XScale, s.YScale} {
		if sc == nil {
			return nil, fmt.Errorf("%w: series %q", ErrNilScale, s.Name)
		}
		if err := scale.Validate(sc); err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
	}
	ix := &indexed[T]{
		name:    s.Name,
		x:       s.X,
		y:       s.Y,
		xs:      s.XScale.Copy(),
		ys:      s.YScale.Copy(),
		factory: s.Renderer,
		layers:  layer.NewPair(0, 0),
	}
	if ix.factory == nil {
		ix.factory = NewDotRenderer[T](fallback)
	}
	ix.rebuildCoords(aspect)
	ix.index = quadtree.New(ix.normX, ix.normY)
	return ix, nil
}

// rebuildCoords precomputes the normalized coordinate closures from copies
// of the domain scales whose range is swapped to normalized space.
func (ix *indexed[T]) rebuildCoords(aspect float64) {
	toX := ix.xs.Copy()
	toX.SetRange(0, normExtent*aspect)
	toY := ix.ys.Copy()
	toY.SetRange(0, normExtent)
	x, y := ix.x, ix.y
	ix.normX = func(d T) float64 { return toX.Apply(x(d)) }
	ix.normY = func(d T) float64 { return toY.Apply(y(d)) }
}

// setItems validates items and rebuilds the index. On error the previous
// index is kept.
func (ix *indexed[T]) setItems(items []T) error {
	for i, d := range items {
		x, y := ix.x(d), ix.y(d)
		if !finite(x) || !finite(y) {
			return fmt.Errorf("%w: series %q item %d has raw position (%v, %v)",
				ErrInvalidCoordinate, ix.name, i, x, y)
		}
		if nx, ny := ix.normX(d), ix.normY(d); !finite(nx) || !finite(ny) {
			return fmt.Errorf("%w: series %q item %d maps to (%v, %v)",
				ErrInvalidCoordinate, ix.name, i, nx, ny)
		}
	}
	ix.items = items
	ix.index = quadtree.Build(items, ix.normX, ix.normY)
	return nil
}

// setPixelRange gives the domain scales the plot pixel extent, y inverted.
func (ix *indexed[T]) setPixelRange(w, h float64) {
	ix.xs.SetRange(0, w)
	ix.ys.SetRange(h, 0)
}

// draw redraws the data layer from the index.
func (ix *indexed[T]) draw(vp lod.Viewport, info RenderInfo, threshold float64) lod.Stats {
	dst := ix.layers.Data()
	layer.Clear(dst)
	info.Series = ix.name
	return lod.Draw(ix.index, ix.factory(dst, ModeNormal, info), vp, threshold)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
