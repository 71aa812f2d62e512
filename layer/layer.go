// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layer holds the raster surfaces a view draws into.
//
// A Pair owns two equally sized RGBA buffers. One is the data layer, the
// other the overlay (selection, lasso, hover). Their roles rotate: a fast
// pan copies the data layer onto the overlay shifted by the gesture delta
// and then swaps the two, so the shifted copy becomes the new data layer
// without walking the index. Callers must re-resolve Data and Overlay after
// any Shift or Swap rather than caching the images.
package layer

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/scatter/scale"
)

// Pair is a two-buffer ownership rotation.
type Pair struct {
	bufs  [2]*image.RGBA
	front int // index of the data layer
}

// NewPair allocates a pair of transparent width x height buffers.
func NewPair(width, height int) *Pair {
	p := &Pair{}
	p.alloc(width, height)
	return p
}

func (p *Pair) alloc(width, height int) {
	width, height = max(width, 0), max(height, 0)
	r := image.Rect(0, 0, width, height)
	p.bufs[0] = image.NewRGBA(r)
	p.bufs[1] = image.NewRGBA(r)
	p.front = 0
}

// Data returns the current data layer.
func (p *Pair) Data() *image.RGBA {
	return p.bufs[p.front]
}

// Overlay returns the current overlay layer.
func (p *Pair) Overlay() *image.RGBA {
	return p.bufs[1-p.front]
}

// Swap exchanges the roles of the two buffers. It copies no pixels.
func (p *Pair) Swap() {
	p.front = 1 - p.front
}

// Size returns the buffer dimensions.
func (p *Pair) Size() (width, height int) {
	b := p.bufs[0].Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates both buffers when the size changed and reports
// whether it did. Content is discarded.
func (p *Pair) Resize(width, height int) bool {
	if w, h := p.Size(); w == max(width, 0) && h == max(height, 0) {
		return false
	}
	p.alloc(width, height)
	return true
}

// Shift copies the data layer onto the overlay transformed by d, swaps the
// roles and clears the new overlay. Afterwards Data holds the shifted
// pixels and Overlay is empty, ready for the selection redraw.
//
// Pure translations use nearest-neighbour sampling so pixels stay crisp;
// scaled copies are bilinear.
func (p *Pair) Shift(d scale.Delta) {
	src, dst := p.Data(), p.Overlay()
	Clear(dst)
	var interp draw.Transformer = draw.NearestNeighbor
	if !d.IsTranslation() {
		interp = draw.ApproxBiLinear
	}
	interp.Transform(dst, d.Aff3(), src, src.Bounds(), draw.Src, nil)
	p.Swap()
	Clear(p.Overlay())
}

// Clear makes every pixel of img transparent.
func Clear(img *image.RGBA) {
	clear(img.Pix)
}

// Composite draws the data layer and then the overlay onto dst with its
// top-left corner at at.
func (p *Pair) Composite(dst draw.Image, at image.Point) {
	Over(dst, at, p.Data())
	Over(dst, at, p.Overlay())
}

// Over alpha-composites src onto dst with its top-left corner at at.
func Over(dst draw.Image, at image.Point, src image.Image) {
	b := src.Bounds()
	draw.Draw(dst, b.Sub(b.Min).Add(at), src, b.Min, draw.Over)
}

// SavePNG writes img to a PNG file.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
