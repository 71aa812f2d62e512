// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command scatterdemo renders a synthetic dataset headlessly, drives a pan,
// a zoom and a lasso through a real event loop, and writes the result as a
// PNG.
package main

import (
	"context"
	"flag"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/scatter"
	"github.com/gogpu/scatter/axes"
	"github.com/gogpu/scatter/layer"
	"github.com/gogpu/scatter/scale"
	"github.com/gogpu/scatter/schedule"
)

type sample struct {
	T, V float64
}

// printTooltip logs the hovered sample.
type printTooltip struct {
	p *message.Printer
}

func (t printTooltip) Show(s *sample, _, _ float64) {
	log.Print(t.p.Sprintf("tooltip: t=%.2f v=%.1f", s.T, s.V))
}

func (t printTooltip) Hide() {}

func main() {
	var (
		n         = flag.Int("n", 20000, "number of points")
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 600, "image height")
		config    = flag.String("config", "", "config file (.toml, or .yaml/.yml)")
		output    = flag.String("output", "scatter.png", "output file")
		secondary = flag.Bool("secondary", false, "add a secondary series on a log axis")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		scatter.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := scatter.Config{Margin: scatter.Margin{Top: 10, Right: 50, Bottom: 30, Left: 50}}
	if *config != "" {
		f, err := os.Open(*config)
		if err != nil {
			log.Fatalf("Failed to open config: %v", err)
		}
		load := scatter.LoadConfig
		if ext := filepath.Ext(*config); ext == ".yaml" || ext == ".yml" {
			load = scatter.LoadConfigYAML
		}
		cfg, err = load(f)
		_ = f.Close()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := schedule.NewLoop(64)
	go func() { _ = loop.Run(ctx) }()

	var v *scatter.View[*sample]
	err := loop.Do(ctx, func() {
		var err error
		v, err = scatter.New(scatter.Series[*sample]{
			Name:   "samples",
			X:      func(s *sample) float64 { return s.T },
			Y:      func(s *sample) float64 { return s.V },
			XScale: scale.Linear(0, 10),
			YScale: scale.Linear(-50, 150),
		},
			scatter.WithSize(*width, *height),
			scatter.WithConfig(cfg),
			scatter.WithScheduler(loop),
			scatter.WithAxes(axes.NewBasic(language.English)),
		)
		if err != nil {
			log.Fatalf("Failed to create view: %v", err)
		}
		v.SetTooltip(printTooltip{p: message.NewPrinter(language.English)})
		v.OnSelectionChange(func(e scatter.SelectionEvent[*sample]) {
			log.Printf("selection: %d items (+%d -%d) on %v", len(e.Selection), len(e.Added), len(e.Removed), e.Reason)
		})
		if err := v.SetData(generate(*n, 1)); err != nil {
			log.Fatalf("Failed to set data: %v", err)
		}
		if *secondary {
			err := v.SetSecondary(scatter.Series[*sample]{
				Name:   "rate",
				X:      func(s *sample) float64 { return s.T },
				Y:      func(s *sample) float64 { return math.Abs(s.V) + 1 },
				YScale: scale.Log(10, 1, 1000),
			})
			if err == nil {
				err = v.SetSecondaryData(generate(*n/4, 2))
			}
			if err != nil {
				log.Fatalf("Failed to set secondary series: %v", err)
			}
		}
	})
	if err != nil {
		log.Fatalf("Event loop stopped: %v", err)
	}

	// A short pan, left to settle on the loop's timers.
	step := func(f func()) {
		if err := loop.Do(ctx, f); err != nil {
			log.Fatalf("Event loop stopped: %v", err)
		}
	}
	for range 10 {
		step(func() { v.Pan(-4, 0) })
		time.Sleep(10 * time.Millisecond)
	}
	step(func() { v.Zoom(1.5, 200, 200) })
	time.Sleep(2 * v.Config().SettleDelay)

	// A lasso around the middle of the plot.
	step(func() {
		p := v.Plot()
		cx, cy := float64(p.Dx())/2, float64(p.Dy())/2
		v.StartLasso(cx+100, cy)
		for i := 1; i <= 36; i++ {
			a := float64(i) * math.Pi / 18
			v.MoveLasso(cx+100*math.Cos(a), cy+70*math.Sin(a))
		}
		v.EndLasso()
		v.Hover(cx, cy)
	})
	time.Sleep(v.Config().TooltipDelay + 50*time.Millisecond)

	var img *image.RGBA
	step(func() { img = v.Image() })
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	layer.Over(out, image.Point{}, img)

	if err := layer.SavePNG(out, *output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Scatter saved to %s (%dx%d)\n", *output, *width, *height)
}

// generate returns n samples of a noisy sine.
func generate(n int, seed uint64) []*sample {
	r := rand.New(rand.NewPCG(seed, seed*7+1))
	out := make([]*sample, n)
	for i := range out {
		t := r.Float64() * 10
		out[i] = &sample{T: t, V: 50 + 40*math.Sin(t) + r.NormFloat64()*10}
	}
	return out
}
