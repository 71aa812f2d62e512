// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package axes provides a reference axis drawer for scatter views: axis
// lines, tick marks and localized tick labels.
package axes

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gogpu/scatter"
	"github.com/gogpu/scatter/cache"
	"github.com/gogpu/scatter/scale"
)

const (
	tickLength = 5
	labelGap   = 3

	// labelCapacity bounds the rasterized labels kept between frames.
	labelCapacity = 512
)

// Basic draws a bottom x axis, a left y axis and, with a secondary
// series, a right y axis.
type Basic struct {
	// Face renders labels. Nil uses Go Regular at 10pt.
	Face font.Face
	// Color of lines and labels. Nil is black.
	Color color.Color
	// Ticks is the approximate number of ticks per axis. Zero means 5.
	Ticks int

	printer *message.Printer

	// labels holds rasterized labels for labelFace.
	labels    *cache.Cache[string, label]
	labelFace font.Face
}

// label is a rasterized string. off is the mask's top-left corner
// relative to the text origin.
type label struct {
	mask  *image.Alpha
	off   image.Point
	width int
}

var _ scatter.AxisDrawer = (*Basic)(nil)

// NewBasic returns a drawer formatting labels for the given language.
func NewBasic(tag language.Tag) *Basic {
	return &Basic{printer: message.NewPrinter(tag)}
}

var (
	defaultFaceOnce sync.Once
	defaultFace     font.Face
)

// DefaultFace returns Go Regular at 10pt, or the 7x13 bitmap face if the
// embedded font cannot be parsed.
func DefaultFace() font.Face {
	defaultFaceOnce.Do(func() {
		defaultFace = basicfont.Face7x13
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 10, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return
		}
		defaultFace = face
	})
	return defaultFace
}

func (b *Basic) face() font.Face {
	if b.Face != nil {
		return b.Face
	}
	return DefaultFace()
}

func (b *Basic) color() color.Color {
	if b.Color != nil {
		return b.Color
	}
	return color.Black
}

func (b *Basic) ticks() int {
	if b.Ticks > 0 {
		return b.Ticks
	}
	return 5
}

// DrawAxes implements scatter.AxisDrawer.
func (b *Basic) DrawAxes(dst draw.Image, a scatter.Axes) {
	p := a.Plot
	if p.Empty() || a.X == nil || a.Y == nil {
		return
	}
	src := image.NewUniform(b.color())
	face := b.face()
	ascent := face.Metrics().Ascent.Ceil()

	// Bottom axis.
	draw.Draw(dst, image.Rect(p.Min.X, p.Max.Y, p.Max.X, p.Max.Y+1), src, image.Point{}, draw.Over)
	ticks := scale.Ticks(a.X, b.ticks())
	for _, t := range ticks {
		x := p.Min.X + int(math.Round(a.X.Apply(t)))
		if x < p.Min.X || x > p.Max.X {
			continue
		}
		draw.Draw(dst, image.Rect(x, p.Max.Y, x+1, p.Max.Y+tickLength), src, image.Point{}, draw.Over)
		text := b.Format(t, ticks)
		w := b.label(face, text).width
		b.text(dst, src, face, text, x-w/2, p.Max.Y+tickLength+labelGap+ascent)
	}

	b.vertical(dst, src, face, a.Y, p, p.Min.X, -1)
	if a.Y2 != nil {
		b.vertical(dst, src, face, a.Y2, p, p.Max.X, 1)
	}
}

// vertical draws a y axis at column x with ticks pointing to side
// (-1 left, 1 right).
func (b *Basic) vertical(dst draw.Image, src image.Image, face font.Face, s scale.Scale, p image.Rectangle, x, side int) {
	if side < 0 {
		x--
	}
	draw.Draw(dst, image.Rect(x, p.Min.Y, x+1, p.Max.Y), src, image.Point{}, draw.Over)
	half := face.Metrics().Ascent.Ceil() / 2
	ticks := scale.Ticks(s, b.ticks())
	for _, t := range ticks {
		y := p.Min.Y + int(math.Round(s.Apply(t)))
		if y < p.Min.Y || y > p.Max.Y {
			continue
		}
		text := b.Format(t, ticks)
		w := b.label(face, text).width
		if side < 0 {
			draw.Draw(dst, image.Rect(x-tickLength, y, x, y+1), src, image.Point{}, draw.Over)
			b.text(dst, src, face, text, x-tickLength-labelGap-w, y+half)
		} else {
			draw.Draw(dst, image.Rect(x, y, x+tickLength, y+1), src, image.Point{}, draw.Over)
			b.text(dst, src, face, text, x+tickLength+labelGap, y+half)
		}
	}
}

func (b *Basic) text(dst draw.Image, src image.Image, face font.Face, s string, x, y int) {
	l := b.label(face, s)
	if l.mask == nil {
		return
	}
	r := l.mask.Bounds().Sub(l.mask.Bounds().Min).Add(image.Pt(x, y).Add(l.off))
	draw.DrawMask(dst, r, src, image.Point{}, l.mask, l.mask.Bounds().Min, draw.Over)
}

// label returns s rasterized with face, from the cache when possible.
func (b *Basic) label(face font.Face, s string) label {
	if b.labels == nil || b.labelFace != face {
		b.labels = cache.New[string, label](labelCapacity)
		b.labelFace = face
	}
	return b.labels.GetOrCreate(s, func() label { return rasterize(face, s) })
}

func rasterize(face font.Face, s string) label {
	bounds, advance := font.BoundString(face, s)
	r := image.Rect(bounds.Min.X.Floor(), bounds.Min.Y.Floor(), bounds.Max.X.Ceil(), bounds.Max.Y.Ceil())
	if r.Empty() {
		return label{width: advance.Ceil()}
	}
	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(-r.Min.X, -r.Min.Y),
	}
	d.DrawString(s)
	return label{mask: mask, off: r.Min, width: advance.Ceil()}
}

// Format renders tick v with as many fraction digits as the spacing of
// ticks needs, grouped and localized for the drawer's language.
func (b *Basic) Format(v float64, ticks []float64) string {
	p := b.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(fractionDigits(ticks))))
}

// fractionDigits returns the digits needed to tell adjacent ticks apart.
func fractionDigits(ticks []float64) int {
	step := math.Inf(1)
	for i := 1; i < len(ticks); i++ {
		step = math.Min(step, math.Abs(ticks[i]-ticks[i-1]))
	}
	if math.IsInf(step, 0) || step == 0 {
		return 0
	}
	return max(0, int(math.Ceil(-math.Log10(step)-1e-9)))
}
