// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scatter renders large point datasets in an interactive 2D view.
//
// # Overview
//
// A [View] draws one primary dataset, and optionally a secondary dataset
// on an independent y axis, into raster layers. It supports pan and zoom,
// click and freehand lasso selection, and hover tooltips, and stays
// responsive into the tens of thousands of points by indexing every
// dataset in a quadtree and walking only the visible part of it.
//
// # Quick Start
//
//	v, err := scatter.New(scatter.Series[Sample]{
//	    X:      func(s Sample) float64 { return s.Time },
//	    Y:      func(s Sample) float64 { return s.Value },
//	    XScale: scale.Linear(0, 100),
//	    YScale: scale.Log(10, 1, 1e6),
//	}, scatter.WithSize(800, 600))
//	if err != nil {
//	    return err
//	}
//	if err := v.SetData(samples); err != nil {
//	    return err
//	}
//	v.Pan(20, 0)
//	layer.SavePNG(v.Image(), "out.png")
//
// # Coordinate Spaces
//
// Raw values pass through three stages on their way to the screen:
//   - the domain scale maps a value into normalized space, [0, 100*aspect]
//     horizontally and [0, 100] vertically
//   - the normalized-to-pixel scale maps normalized space onto the plot
//     area, with y pointing down
//   - the zoom [scale.Transform] rescales the normalized-to-pixel scale
//     on the axes selected by the zoom mask
//
// The quadtree is built on normalized coordinates once per dataset, so
// neither resizing nor zooming touches it.
//
// # Rendering
//
// Every render carries a [Reason] that decides which layers are redrawn.
// Continuous pans shift the existing raster instead of walking the index,
// and a settle timer schedules one full data redraw after the gesture
// pauses.
//
// # Threading
//
// A View is not safe for concurrent use. All input methods and scheduler
// callbacks must run on one goroutine; [schedule.Loop] provides one.
package scatter
