// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import (
	"github.com/gogpu/scatter/lod"
	"github.com/gogpu/scatter/scale"
	"github.com/gogpu/scatter/schedule"
	"github.com/gogpu/scatter/selection"
)

type gestureKind uint8

const (
	gestureIdle gestureKind = iota
	gesturePanning
	gestureLassoing
)

// gesture is the pointer gesture in progress. It owns the scheduled task of
// that gesture: the settle timer while panning, the commit ticker while
// lassoing. Replacing the gesture cancels the task, so a callback can never
// outlive the gesture that armed it.
type gesture struct {
	kind  gestureKind
	task  schedule.Handle
	lasso *selection.Lasso
}

// hoverState is the tooltip debounce and the item currently highlighted.
type hoverState[T any] struct {
	task   schedule.Handle
	item   T
	shown  bool
	px, py float64
}

// setGesture cancels the current gesture's task, then installs the gesture
// built by next. The old task is always cancelled before the new one is
// armed.
func (v *View[T]) setGesture(next func() gesture) {
	v.gesture.task = schedule.Cancel(v.gesture.task)
	v.gesture = gesture{}
	if next != nil {
		v.gesture = next()
	}
}

// armSettle (re)starts the settle timer of a pan.
func (v *View[T]) armSettle() {
	v.setGesture(func() gesture {
		return gesture{
			kind: gesturePanning,
			task: v.sched.AfterFunc(v.cfg.SettleDelay, v.settle),
		}
	})
}

func (v *View[T]) settle() {
	v.Render(ReasonAfterTranslate, scale.NoDelta)
}

// endPan cancels a pending settle. Other gestures are left alone.
func (v *View[T]) endPan() {
	if v.gesture.kind == gesturePanning {
		v.setGesture(nil)
	}
}

// flushPan performs a pending settle redraw immediately.
func (v *View[T]) flushPan() {
	if v.gesture.kind == gesturePanning {
		v.Render(ReasonAfterTranslate, scale.NoDelta)
	}
}

// Pan translates the view by (dx, dy) pixels on the zoom axes and renders
// PERFORM_TRANSLATE. A lasso in progress is abandoned without a final
// hit-test.
func (v *View[T]) Pan(dx, dy float64) {
	v.moveTo(v.zoom.Translate(dx, dy))
}

// Zoom multiplies the zoom factor by factor around the plot pixel
// (cx, cy), clamped to the configured extent, and renders
// PERFORM_TRANSLATE.
func (v *View[T]) Zoom(factor, cx, cy float64) {
	if !(factor > 0) {
		return
	}
	lo, hi := v.cfg.ScaleExtent[0], v.cfg.ScaleExtent[1]
	v.moveTo(v.zoom.ScaleAround(factor, cx, cy).Clamp(lo, hi, cx, cy))
}

func (v *View[T]) moveTo(next scale.Transform) {
	next = next.Masked(v.cfg.ZoomAxis)
	if next == v.zoom {
		return
	}
	d := v.zoom.DeltaTo(next, v.cfg.ZoomAxis)
	v.zoom = next
	v.dropHover()
	if v.gesture.kind == gestureLassoing {
		// Abandoned: no hit-test, and no outline on the redrawn layer.
		v.setGesture(nil)
	}
	v.Render(ReasonPerformTranslate, d)
}

// SetTransform jumps to a zoom transform and redraws everything: AFTER_SCALE
// when only the zoom factor changed, AFTER_SCALE_AND_TRANSLATE when both
// changed and OTHER for a pure translation.
func (v *View[T]) SetTransform(t scale.Transform) {
	if !(t.K > 0) {
		return
	}
	lo, hi := v.cfg.ScaleExtent[0], v.cfg.ScaleExtent[1]
	t = t.Clamp(lo, hi, 0, 0).Masked(v.cfg.ZoomAxis)
	if t == v.zoom {
		return
	}
	prev := v.zoom
	v.zoom = t
	v.dropHover()

	d := prev.DeltaTo(t, v.cfg.ZoomAxis)
	switch scaled, moved := t.K != prev.K, t.X != prev.X || t.Y != prev.Y; {
	case scaled && !moved:
		v.Render(ReasonAfterScale, d)
	case scaled:
		v.Render(ReasonAfterScaleAndTranslate, d)
	default:
		v.Render(ReasonOther, d)
	}
}

// ResetZoom returns to the identity transform.
func (v *View[T]) ResetZoom() {
	v.SetTransform(scale.Identity)
}

// Click hit-tests the plot pixel (px, py). The primary button replaces the
// selection with every primary item within the click radius; the
// secondary button clears the selection.
func (v *View[T]) Click(px, py float64, button Button) {
	if button == ButtonSecondary {
		v.ClearSelection()
		return
	}
	var hits []T
	if e, ok := selection.ClickEllipse(v.Viewport(), px, py, v.cfg.ClickRadius); ok {
		hits = lod.Collect(v.primary.index, e)
	}
	v.replaceSelection(hits)
}

// StartLasso begins a lasso anchored at the plot pixel (px, py). A pending
// pan settle is flushed first.
func (v *View[T]) StartLasso(px, py float64) {
	v.flushPan()
	v.setGesture(func() gesture {
		return gesture{
			kind:  gestureLassoing,
			lasso: selection.NewLasso(selection.Point{X: px, Y: py}),
			task:  v.sched.Every(v.cfg.LassoInterval, v.commitLasso),
		}
	})
	v.Render(ReasonSelectionChanged, scale.NoDelta)
}

// MoveLasso extends the lasso to (px, py) and redraws the preview. The
// selection is updated on the commit cadence, not here.
func (v *View[T]) MoveLasso(px, py float64) {
	if v.gesture.kind != gestureLassoing {
		return
	}
	v.gesture.lasso.Append(selection.Point{X: px, Y: py})
	v.Render(ReasonSelectionChanged, scale.NoDelta)
}

// EndLasso commits the remaining points, hit-tests the final polygon and
// ends the gesture.
func (v *View[T]) EndLasso() {
	if v.gesture.kind != gestureLassoing {
		return
	}
	l := v.gesture.lasso
	l.Commit()
	v.setGesture(nil)
	if !v.hitLasso(l) {
		v.Render(ReasonSelectionChanged, scale.NoDelta)
	}
}

// Lassoing reports whether a lasso gesture is in progress.
func (v *View[T]) Lassoing() bool {
	return v.gesture.kind == gestureLassoing
}

func (v *View[T]) commitLasso() {
	if v.gesture.kind != gestureLassoing || !v.gesture.lasso.Commit() {
		return
	}
	v.hitLasso(v.gesture.lasso)
}

// hitLasso replaces the selection with the primary items inside the
// committed lasso and reports whether the selection changed. Outlines with
// fewer than three vertices change nothing.
func (v *View[T]) hitLasso(l *selection.Lasso) bool {
	pixels := l.Polygon()
	if len(pixels) < 3 {
		return false
	}
	poly := selection.PolygonFromPixels(v.Viewport(), pixels)
	return v.replaceSelection(lod.Collect(v.primary.index, poly))
}

// Select replaces the selection with items.
func (v *View[T]) Select(items []T) {
	v.replaceSelection(items)
}

// ClearSelection empties the selection.
func (v *View[T]) ClearSelection() {
	v.replaceSelection(nil)
}

// Selection returns the selected items in selection order.
func (v *View[T]) Selection() []T {
	return v.selection.Items()
}

// replaceSelection diffs items against the selection and, if anything
// changed, redraws the selection layer and emits an event.
func (v *View[T]) replaceSelection(items []T) bool {
	added, removed := v.selection.Replace(items)
	if len(added) == 0 && len(removed) == 0 {
		return false
	}
	v.Render(ReasonSelectionChanged, scale.NoDelta)
	v.emit(added, removed, ReasonSelectionChanged, scale.NoDelta)
	return true
}

func (v *View[T]) emit(added, removed []T, reason Reason, d scale.Delta) {
	if len(v.listeners) == 0 {
		return
	}
	ev := SelectionEvent[T]{
		Selection: v.selection.Items(),
		Added:     added,
		Removed:   removed,
		Reason:    reason,
		Delta:     d,
	}
	for _, f := range v.listeners {
		f(ev)
	}
}

// Hover records the pointer at the plot pixel (px, py). After the tooltip
// delay without further movement the nearest primary item within the click
// radius is highlighted and shown in the tooltip.
func (v *View[T]) Hover(px, py float64) {
	v.hover.task = schedule.Cancel(v.hover.task)
	if v.hover.shown {
		v.dropHover()
		v.Render(ReasonSelectionChanged, scale.NoDelta)
	}
	v.hover.px, v.hover.py = px, py
	v.hover.task = v.sched.AfterFunc(v.cfg.TooltipDelay, v.showHover)
}

// Leave cancels a pending tooltip and hides a shown one.
func (v *View[T]) Leave() {
	v.hover.task = schedule.Cancel(v.hover.task)
	if v.hover.shown {
		v.dropHover()
		v.Render(ReasonSelectionChanged, scale.NoDelta)
	}
}

// Hovered returns the highlighted item, if any.
func (v *View[T]) Hovered() (item T, ok bool) {
	return v.hover.item, v.hover.shown
}

func (v *View[T]) showHover() {
	v.hover.task = nil
	vp := v.Viewport()
	e, ok := selection.ClickEllipse(vp, v.hover.px, v.hover.py, v.cfg.ClickRadius)
	if !ok {
		return
	}
	item, ok := selection.Nearest(v.primary.index, e)
	if !ok {
		return
	}
	v.hover.item, v.hover.shown = item, true
	v.Render(ReasonSelectionChanged, scale.NoDelta)
	if v.tooltip != nil {
		px, py := vp.Project(v.primary.normX(item), v.primary.normY(item))
		v.tooltip.Show(item, px, py)
	}
}

// dropHover forgets the highlighted item and hides the tooltip. It does not
// render.
func (v *View[T]) dropHover() {
	v.hover.task = schedule.Cancel(v.hover.task)
	if !v.hover.shown {
		return
	}
	var zero T
	v.hover.item, v.hover.shown = zero, false
	if v.tooltip != nil {
		v.tooltip.Hide()
	}
}
