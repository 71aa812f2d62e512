// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/scatter/scale"
)

// Axes carries the live scales of a finished render to the axis and
// overlay collaborators.
type Axes struct {
	// X and Y are the primary domain scales, rescaled by the zoom, with
	// ranges in canvas pixels relative to Plot.Min.
	X, Y scale.Scale
	// Y2 is the secondary y scale, or nil without a secondary series.
	Y2 scale.Scale
	// Plot is the plot area within the destination image.
	Plot image.Rectangle
	// Transform is the zoom transform in effect.
	Transform scale.Transform
}

// AxisDrawer draws axes and labels. It is called after the data layers of
// every render that redraws axes, onto a transparent canvas-sized image.
type AxisDrawer interface {
	DrawAxes(dst draw.Image, a Axes)
}

// OverlayDrawer draws extra content over the selection layer. It is called
// whenever the selection layer is redrawn, after selection and lasso.
// dst covers the plot area only.
type OverlayDrawer interface {
	DrawOverlay(dst draw.Image, a Axes)
}

// Tooltip shows information about the item under the pointer.
type Tooltip[T any] interface {
	// Show is called once the pointer has rested near item. (px, py) is the
	// item position in plot-area pixels.
	Show(item T, px, py float64)
	// Hide is called when the pointer moves away or leaves the view.
	Hide()
}

// SelectionEvent reports a change of the selection. It is emitted after
// the render that displays the change, and only if the set changed.
type SelectionEvent[T any] struct {
	// Selection is the new selection, in selection order.
	Selection []T
	Added     []T
	Removed   []T
	// Reason is the render reason that displayed the change.
	Reason Reason
	// Delta is the transform delta of that render.
	Delta scale.Delta
}

// Button identifies the pointer button of a click.
type Button uint8

const (
	// ButtonPrimary selects.
	ButtonPrimary Button = iota
	// ButtonSecondary clears the selection.
	ButtonSecondary
)
