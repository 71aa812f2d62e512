// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/scatter/layer"
	"github.com/gogpu/scatter/lod"
	"github.com/gogpu/scatter/scale"
	"github.com/gogpu/scatter/schedule"
	"github.com/gogpu/scatter/selection"
)

// View is an interactive scatter plot of one primary and an optional
// secondary dataset. T identifies items; it must be comparable so that
// selections can be diffed.
//
// A View is not safe for concurrent use.
type View[T comparable] struct {
	cfg     Config
	sched   schedule.Scheduler
	axes    AxisDrawer
	overlay OverlayDrawer
	tooltip Tooltip[T]

	sizeFunc      func() (int, int)
	width, height int // canvas size, margins included

	// Normalized-to-pixel scales, shared by both series.
	nx, ny *scale.Continuous
	zoom   scale.Transform

	primary   *indexed[T]
	secondary *indexed[T]
	selection *selection.Set[T]
	chrome    *image.RGBA // axes, canvas-sized

	gesture gesture
	hover   hoverState[T]

	listeners  []func(SelectionEvent[T])
	lastReason Reason
	stats      lod.Stats
}

// New creates a view of the primary series and performs the first DIRTY
// render. It fails fast on a missing accessor, an invalid scale or an
// invalid configuration.
func New[T comparable](primary Series[T], opts ...Option) (*View[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	if primary.Name == "" {
		primary.Name = "primary"
	}
	p, err := newIndexed(primary, DefaultDotStyle(), o.config.AspectRatio)
	if err != nil {
		return nil, err
	}

	v := &View[T]{
		cfg:       o.config,
		sched:     o.scheduler,
		axes:      o.axes,
		overlay:   o.overlay,
		sizeFunc:  o.sizeFunc,
		nx:        scale.Linear(0, normExtent*o.config.AspectRatio),
		ny:        scale.Linear(0, normExtent),
		zoom:      scale.Identity,
		primary:   p,
		selection: selection.NewSet(p.normX, p.normY),
		chrome:    image.NewRGBA(image.Rectangle{}),
	}
	if v.sched == nil {
		v.sched = schedule.NewManual()
	}
	v.layout(o.width, o.height)
	v.Render(ReasonDirty, scale.NoDelta)
	return v, nil
}

// Config returns the effective configuration.
func (v *View[T]) Config() Config {
	return v.cfg
}

// SetData replaces the primary dataset, rebuilds its index and renders
// DIRTY. Selected items that are still present stay selected; the others
// are dropped and reported in a selection event.
func (v *View[T]) SetData(items []T) error {
	if err := v.primary.setItems(items); err != nil {
		Logger().Warn("scatter: rejected dataset", "series", v.primary.name, "err", err)
		return err
	}
	Logger().Info("scatter: dataset replaced", "series", v.primary.name, "size", len(items))

	present := make(map[T]struct{}, len(items))
	for _, d := range items {
		present[d] = struct{}{}
	}
	removed := v.selection.Rebase(v.primary.normX, v.primary.normY, func(d T) bool {
		_, ok := present[d]
		return ok
	})
	v.dropHover()
	v.Render(ReasonDirty, scale.NoDelta)
	if len(removed) > 0 {
		v.emit(nil, removed, ReasonDirty, scale.NoDelta)
	}
	return nil
}

// Data returns the primary dataset.
func (v *View[T]) Data() []T {
	return v.primary.items
}

// SetSecondary attaches a secondary series drawn against its own y scale.
// A nil XScale shares the primary x scale. It replaces any previous
// secondary series and renders SECONDARY_DIRTY.
func (v *View[T]) SetSecondary(s Series[T]) error {
	if s.XScale == nil {
		s.XScale = v.primary.xs
	}
	if s.Name == "" {
		s.Name = "secondary"
	}
	ix, err := newIndexed(s, secondaryDotStyle(), v.cfg.AspectRatio)
	if err != nil {
		return err
	}
	w, h := v.plotSize()
	ix.layers.Resize(w, h)
	ix.setPixelRange(float64(w), float64(h))
	v.secondary = ix
	v.Render(ReasonSecondaryDirty, scale.NoDelta)
	return nil
}

// SetSecondaryData replaces the secondary dataset and renders
// SECONDARY_DIRTY. The primary index and data layer are not touched.
func (v *View[T]) SetSecondaryData(items []T) error {
	if v.secondary == nil {
		return ErrNoSecondary
	}
	if err := v.secondary.setItems(items); err != nil {
		Logger().Warn("scatter: rejected dataset", "series", v.secondary.name, "err", err)
		return err
	}
	Logger().Info("scatter: dataset replaced", "series", v.secondary.name, "size", len(items))
	v.Render(ReasonSecondaryDirty, scale.NoDelta)
	return nil
}

// Resize sets the canvas size, margins included, and renders DIRTY.
func (v *View[T]) Resize(width, height int) {
	v.layout(width, height)
	v.Render(ReasonDirty, scale.NoDelta)
}

// Invalidate renders DIRTY.
func (v *View[T]) Invalidate() {
	v.Render(ReasonDirty, scale.NoDelta)
}

// Size returns the canvas size, margins included.
func (v *View[T]) Size() (width, height int) {
	return v.width, v.height
}

// Plot returns the plot area within the canvas.
func (v *View[T]) Plot() image.Rectangle {
	w, h := v.plotSize()
	return image.Rect(0, 0, w, h).Add(image.Pt(v.cfg.Margin.Left, v.cfg.Margin.Top))
}

func (v *View[T]) plotSize() (w, h int) {
	m := v.cfg.Margin
	return max(v.width-m.Left-m.Right, 0), max(v.height-m.Top-m.Bottom, 0)
}

// layout adopts a canvas size and reallocates the layers to match.
func (v *View[T]) layout(width, height int) {
	v.width, v.height = max(width, 0), max(height, 0)
	w, h := v.plotSize()
	v.primary.layers.Resize(w, h)
	if v.secondary != nil {
		v.secondary.layers.Resize(w, h)
	}
	if b := v.chrome.Bounds(); b.Dx() != v.width || b.Dy() != v.height {
		v.chrome = image.NewRGBA(image.Rect(0, 0, v.width, v.height))
	}
}

// Transform returns the current zoom transform.
func (v *View[T]) Transform() scale.Transform {
	return v.zoom
}

// LastReason returns the reason of the most recent render.
func (v *View[T]) LastReason() Reason {
	return v.lastReason
}

// Stats returns the traversal counts of the most recent render that
// walked a data index.
func (v *View[T]) Stats() lod.Stats {
	return v.stats
}

// Settling reports whether a pan is waiting for its settle redraw.
func (v *View[T]) Settling() bool {
	return v.gesture.kind == gesturePanning && v.gesture.task != nil
}

// Viewport returns the live normalized-to-pixel viewport.
func (v *View[T]) Viewport() lod.Viewport {
	w, h := v.plotSize()
	mask := v.cfg.ZoomAxis
	return lod.Viewport{
		X:      v.zoom.Rescale(v.nx, scale.AxisX, mask),
		Y:      v.zoom.Rescale(v.ny, scale.AxisY, mask),
		Width:  float64(w),
		Height: float64(h),
	}
}

// Axes returns the live domain scales for axis drawing.
func (v *View[T]) Axes() Axes {
	mask := v.cfg.ZoomAxis
	a := Axes{
		X:         v.zoom.Rescale(v.primary.xs, scale.AxisX, mask),
		Y:         v.zoom.Rescale(v.primary.ys, scale.AxisY, mask),
		Plot:      v.Plot(),
		Transform: v.zoom,
	}
	if v.secondary != nil {
		a.Y2 = v.zoom.Rescale(v.secondary.ys, scale.AxisY, mask)
	}
	return a
}

// Composite draws the view onto dst with the canvas origin at at: primary
// data, secondary data, selection layer, then axes.
func (v *View[T]) Composite(dst draw.Image, at image.Point) {
	plot := at.Add(image.Pt(v.cfg.Margin.Left, v.cfg.Margin.Top))
	layer.Over(dst, plot, v.primary.layers.Data())
	if v.secondary != nil {
		layer.Over(dst, plot, v.secondary.layers.Data())
	}
	layer.Over(dst, plot, v.primary.layers.Overlay())
	layer.Over(dst, at, v.chrome)
}

// Image returns a fresh composite of the view.
func (v *View[T]) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, v.width, v.height))
	v.Composite(img, image.Point{})
	return img
}

// DataLayer returns the current primary data layer. The identity of the
// layer changes when a pan shifts it, so the result must not be cached.
func (v *View[T]) DataLayer() *image.RGBA {
	return v.primary.layers.Data()
}

// SelectionLayer returns the current selection layer. Like DataLayer it
// must be re-resolved after every render.
func (v *View[T]) SelectionLayer() *image.RGBA {
	return v.primary.layers.Overlay()
}

// OnSelectionChange registers f to receive selection events.
func (v *View[T]) OnSelectionChange(f func(SelectionEvent[T])) {
	v.listeners = append(v.listeners, f)
}

// SetTooltip sets the tooltip collaborator.
func (v *View[T]) SetTooltip(t Tooltip[T]) {
	v.tooltip = t
}

func (v *View[T]) String() string {
	return fmt.Sprintf("View(%dx%d, %d items, %d selected)",
		v.width, v.height, v.primary.index.Size(), v.selection.Len())
}
