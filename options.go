// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import "github.com/gogpu/scatter/schedule"

// Option configures a View during creation.
//
// Example:
//
//	// Defaults: 300x150 canvas, real-time timers on the caller's loop
//	v, _ := scatter.New(series, scatter.WithScheduler(loop))
//
//	// Deterministic timers for tests
//	v, _ := scatter.New(series, scatter.WithScheduler(schedule.NewManual()))
type Option func(*viewOptions)

// viewOptions holds optional configuration for View creation.
type viewOptions struct {
	config    Config
	scheduler schedule.Scheduler
	width     int
	height    int
	sizeFunc  func() (int, int)
	axes      AxisDrawer
	overlay   OverlayDrawer
}

// defaultOptions returns the default view options.
func defaultOptions() viewOptions {
	return viewOptions{
		config: DefaultConfig(),
		width:  300,
		height: 150,
	}
}

// WithConfig overlays c onto the defaults. Zero fields of c keep their
// default values.
func WithConfig(c Config) Option {
	return func(o *viewOptions) {
		o.config = o.config.Merge(c)
	}
}

// WithScheduler sets the scheduler used for the settle, lasso and tooltip
// timers. Callbacks must be delivered on the goroutine that drives the
// view. Without a scheduler the view uses a private [schedule.Manual] that
// nothing advances, so settle, lasso ticks and tooltips never fire on
// their own.
func WithScheduler(s schedule.Scheduler) Option {
	return func(o *viewOptions) {
		o.scheduler = s
	}
}

// WithSize sets the initial canvas size in pixels, margins included.
func WithSize(width, height int) Option {
	return func(o *viewOptions) {
		o.width, o.height = width, height
	}
}

// WithSizeFunc sets a function reporting the actual canvas size. It is
// consulted at the start of every render; when it disagrees with the size
// the view last laid out, the render is abandoned and redone from DIRTY at
// the reported size.
func WithSizeFunc(f func() (width, height int)) Option {
	return func(o *viewOptions) {
		o.sizeFunc = f
	}
}

// WithAxes sets the axis collaborator.
func WithAxes(a AxisDrawer) Option {
	return func(o *viewOptions) {
		o.axes = a
	}
}

// WithOverlay sets the extra-overlay collaborator.
func WithOverlay(d OverlayDrawer) Option {
	return func(o *viewOptions) {
		o.overlay = d
	}
}
