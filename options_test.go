// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import (
	"image"
	"testing"

	"golang.org/x/image/draw"

	"github.com/gogpu/scatter/scale"
	"github.com/gogpu/scatter/schedule"
)

type recordingAxes struct {
	calls []Axes
}

func (a *recordingAxes) DrawAxes(_ draw.Image, ax Axes) { a.calls = append(a.calls, ax) }

type recordingOverlay struct {
	bounds []image.Rectangle
}

func (o *recordingOverlay) DrawOverlay(dst draw.Image, _ Axes) {
	o.bounds = append(o.bounds, dst.Bounds())
}

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.width != 300 || o.height != 150 {
		t.Errorf("default size = (%d, %d), want (300, 150)", o.width, o.height)
	}
	if o.config != DefaultConfig() {
		t.Error("default options do not carry DefaultConfig()")
	}
	if o.scheduler != nil || o.sizeFunc != nil || o.axes != nil || o.overlay != nil {
		t.Error("default options should have no collaborators")
	}
}

func TestWithConfigMerges(t *testing.T) {
	o := defaultOptions()
	WithConfig(Config{ClickRadius: 9})(&o)
	WithConfig(Config{SettleDelay: 1})(&o)
	if o.config.ClickRadius != 9 || o.config.SettleDelay != 1 {
		t.Errorf("config = %+v, want both overrides", o.config)
	}
	if o.config.TooltipDelay != DefaultConfig().TooltipDelay {
		t.Error("WithConfig() replaced an unset default")
	}
}

func TestWithScheduler(t *testing.T) {
	m := schedule.NewManual()
	v, err := New(Series[*point]{X: px, Y: py, XScale: scale.Linear(0, 1), YScale: scale.Linear(0, 1)},
		WithScheduler(m))
	if err != nil {
		t.Fatal(err)
	}
	v.Pan(1, 0)
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want the settle timer on the injected scheduler", m.Pending())
	}
}

func TestAxesCollaborator(t *testing.T) {
	ax := &recordingAxes{}
	f := newFixture(t, []*point{{50, 50}},
		WithAxes(ax),
		WithConfig(Config{Margin: Margin{Left: 20, Bottom: 10}}),
		WithSize(120, 110))
	calls := len(ax.calls)
	if calls == 0 {
		t.Fatal("axes not drawn on DIRTY")
	}
	last := ax.calls[calls-1]
	if last.Plot != image.Rect(20, 0, 120, 100) {
		t.Errorf("Plot = %v", last.Plot)
	}
	if got := last.X.Apply(50); got != 50 {
		t.Errorf("X.Apply(50) = %v, want 50", got)
	}
	if last.Y2 != nil {
		t.Error("Y2 set without a secondary series")
	}

	f.v.Select(f.v.Data())
	if len(ax.calls) != calls {
		t.Error("SELECTION_CHANGED redrew the axes")
	}

	f.v.Pan(10, 0)
	last = ax.calls[len(ax.calls)-1]
	if last.Transform.X != 10 {
		t.Errorf("axes drawn with transform %+v, want the panned one", last.Transform)
	}
	if got := last.X.Apply(50); got != 60 {
		t.Errorf("panned X.Apply(50) = %v, want 60", got)
	}
}

func TestOverlayCollaborator(t *testing.T) {
	ov := &recordingOverlay{}
	f := newFixture(t, []*point{{50, 50}}, WithOverlay(ov))
	n := len(ov.bounds)
	f.v.Select(f.v.Data())
	if len(ov.bounds) != n+1 {
		t.Errorf("overlay drawn %d times on a selection change, want 1", len(ov.bounds)-n)
	}
	if b := ov.bounds[len(ov.bounds)-1]; b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("overlay bounds = %v, want the plot area", b)
	}
}
