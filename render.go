// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/gogpu/scatter/layer"
	"github.com/gogpu/scatter/lod"
	"github.com/gogpu/scatter/scale"
)

var (
	lassoFill   = color.NRGBA{R: 0x33, G: 0x66, B: 0xcc, A: 0x30}
	lassoStroke = color.NRGBA{R: 0x33, G: 0x66, B: 0xcc, A: 0xc0}
)

// Render redraws the layers selected by reason. d is the pixel-space delta
// of a PERFORM_TRANSLATE and is ignored by every other reason.
//
// Within one call axes are always drawn after the data layers, and the
// selection layer after any layer swap.
func (v *View[T]) Render(reason Reason, d scale.Delta) {
	if v.sizeFunc != nil {
		if w, h := v.sizeFunc(); w != v.width || h != v.height {
			Logger().Warn("scatter: canvas size changed during render",
				"reason", reason.String(), "from", image.Pt(v.width, v.height), "to", image.Pt(w, h))
			v.layout(w, h)
			reason, d = ReasonDirty, scale.NoDelta
		}
	}

	var st lod.Stats
	walked := false
	switch reason {
	case ReasonPerformTranslate:
		v.primary.layers.Shift(d)
		if v.secondary != nil {
			v.secondary.layers.Shift(d)
		}
		v.drawAxes()
		v.drawSelection(reason)
		v.armSettle()

	case ReasonAfterTranslate:
		v.endPan()
		st = v.drawData(reason)
		walked = true

	case ReasonSelectionChanged:
		v.drawSelection(reason)

	case ReasonSecondaryDirty:
		if v.secondary != nil {
			st = v.secondary.draw(v.Viewport(), v.info(reason), v.cfg.LODThreshold)
			walked = true
		}
		v.drawAxes()
		v.drawSelection(reason)

	case ReasonAfterScale, ReasonAfterScaleAndTranslate:
		// No incremental zoom path: draw everything.
		fallthrough

	default:
		v.endPan()
		v.updateRanges()
		st = v.drawData(reason)
		walked = true
		v.drawAxes()
		v.drawSelection(reason)
	}

	v.lastReason = reason
	if walked {
		v.stats = st
	}
	Logger().Debug("scatter: render",
		slog.String("reason", reason.String()),
		slog.Int("visited", st.Visited),
		slog.Int("culled", st.Culled),
		slog.Int("aggregated", st.Aggregated),
		slog.Int("rendered", st.Rendered))
}

// updateRanges gives every scale the current plot pixel extent.
func (v *View[T]) updateRanges() {
	w, h := v.plotSize()
	fw, fh := float64(w), float64(h)
	v.nx.SetRange(0, fw)
	v.ny.SetRange(fh, 0)
	v.primary.setPixelRange(fw, fh)
	if v.secondary != nil {
		v.secondary.setPixelRange(fw, fh)
	}
}

func (v *View[T]) info(reason Reason) RenderInfo {
	return RenderInfo{Reason: reason, Transform: v.zoom, Viewport: v.Viewport()}
}

// drawData redraws the primary and secondary data layers.
func (v *View[T]) drawData(reason Reason) lod.Stats {
	vp, info := v.Viewport(), v.info(reason)
	st := v.primary.draw(vp, info, v.cfg.LODThreshold)
	if v.secondary != nil {
		st = st.Add(v.secondary.draw(vp, info, v.cfg.LODThreshold))
	}
	return st
}

func (v *View[T]) drawAxes() {
	layer.Clear(v.chrome)
	if v.axes != nil {
		v.axes.DrawAxes(v.chrome, v.Axes())
	}
}

// drawSelection redraws the selection layer: selected items, the hover
// highlight, the lasso preview and the extra overlay, in that order.
func (v *View[T]) drawSelection(reason Reason) {
	dst := v.primary.layers.Overlay()
	layer.Clear(dst)
	vp, info := v.Viewport(), v.info(reason)
	info.Series = v.primary.name

	if v.selection.Len() > 0 {
		r := v.primary.factory(dst, ModeSelected, info)
		lod.Draw(v.selection.Index(), r, vp, v.cfg.LODThreshold)
	}

	if v.hover.shown {
		r := v.primary.factory(dst, ModeHover, info)
		px, py := vp.Project(v.primary.normX(v.hover.item), v.primary.normY(v.hover.item))
		r.Render(px, py, v.hover.item)
		r.Done()
	}

	if l := v.gesture.lasso; l != nil {
		preview := l.Preview()
		pts := make([]image.Point, len(preview))
		for i, p := range preview {
			pts[i] = image.Pt(int(p.X), int(p.Y))
		}
		layer.FillPolygon(dst, pts, lassoFill)
		layer.StrokePolyline(dst, pts, 1.5, lassoStroke, true)
	}

	if v.overlay != nil {
		a := v.Axes()
		a.Plot = dst.Bounds()
		v.overlay.DrawOverlay(dst, a)
	}
}
