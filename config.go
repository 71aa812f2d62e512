// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/scatter/lod"
	"github.com/gogpu/scatter/scale"
)

// Margin is the space in pixels between the canvas edge and the plot area.
type Margin struct {
	Top    int `toml:"top" yaml:"top"`
	Right  int `toml:"right" yaml:"right"`
	Bottom int `toml:"bottom" yaml:"bottom"`
	Left   int `toml:"left" yaml:"left"`
}

// Config holds the tunables of a View. The zero value of any field means
// "use the default"; see DefaultConfig.
type Config struct {
	// Margin around the plot area. Default none.
	Margin Margin

	// ZoomAxis selects which axes pan and zoom affect. Default xy.
	ZoomAxis scale.Axis

	// ScaleExtent bounds the zoom factor. Default [0.5, 1000].
	ScaleExtent [2]float64

	// ClickRadius is the hit-test radius of a click in pixels. Default 5.
	ClickRadius float64

	// TooltipDelay is the hover debounce. Default 500ms.
	TooltipDelay time.Duration

	// LassoInterval is the lasso commit and hit-test cadence. Default 100ms.
	LassoInterval time.Duration

	// SettleDelay is how long a pan must pause before the data layer is
	// redrawn from the index. Default 150ms.
	SettleDelay time.Duration

	// AspectRatio stretches the normalized x extent to 100*AspectRatio.
	// Default 1.
	AspectRatio float64

	// LODThreshold is the on-screen size in pixels up to which a subtree
	// is drawn as one point. Default 5. Zero disables aggregation in a
	// Config used directly, but in an override passed to Merge or
	// WithConfig zero means "keep the default"; use a sub-pixel value such
	// as 0.01 there to draw every point.
	LODThreshold float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ZoomAxis:      scale.AxisXY,
		ScaleExtent:   [2]float64{0.5, 1000},
		ClickRadius:   5,
		TooltipDelay:  500 * time.Millisecond,
		LassoInterval: 100 * time.Millisecond,
		SettleDelay:   150 * time.Millisecond,
		AspectRatio:   1,
		LODThreshold:  lod.DefaultThreshold,
	}
}

// Merge returns c overlaid with the non-zero fields of override.
func (c Config) Merge(override Config) Config {
	out := c
	if err := copier.CopyWithOption(&out, &override, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
		// Both sides are Config values; copier only fails on mismatched kinds.
		panic(fmt.Sprintf("scatter: merging config: %v", err))
	}
	return out
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	m := c.Margin
	switch {
	case m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0:
		return fmt.Errorf("%w: negative margin %+v", ErrInvalidConfig, m)
	case c.ZoomAxis == 0 || c.ZoomAxis&^scale.AxisXY != 0:
		return fmt.Errorf("%w: zoom axis %v", ErrInvalidConfig, c.ZoomAxis)
	case !(c.ScaleExtent[0] > 0) || !(c.ScaleExtent[1] >= c.ScaleExtent[0]) || math.IsInf(c.ScaleExtent[1], 0):
		return fmt.Errorf("%w: scale extent %v", ErrInvalidConfig, c.ScaleExtent)
	case !(c.ClickRadius > 0):
		return fmt.Errorf("%w: click radius %v", ErrInvalidConfig, c.ClickRadius)
	case c.TooltipDelay < 0 || c.LassoInterval <= 0 || c.SettleDelay < 0:
		return fmt.Errorf("%w: timings tooltip=%v lasso=%v settle=%v",
			ErrInvalidConfig, c.TooltipDelay, c.LassoInterval, c.SettleDelay)
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0):
		return fmt.Errorf("%w: aspect ratio %v", ErrInvalidConfig, c.AspectRatio)
	case c.LODThreshold < 0:
		return fmt.Errorf("%w: LOD threshold %v", ErrInvalidConfig, c.LODThreshold)
	}
	return nil
}

// fileConfig is the file form of Config, shared by the TOML and YAML
// loaders. Durations are Go duration strings such as "150ms".
type fileConfig struct {
	Margin        *Margin    `toml:"margin" yaml:"margin"`
	ZoomAxis      scale.Axis `toml:"zoom_axis" yaml:"zoom_axis"`
	ScaleExtent   []float64  `toml:"scale_extent" yaml:"scale_extent"`
	ClickRadius   float64    `toml:"click_radius" yaml:"click_radius"`
	TooltipDelay  string     `toml:"tooltip_delay" yaml:"tooltip_delay"`
	LassoInterval string     `toml:"lasso_interval" yaml:"lasso_interval"`
	SettleDelay   string     `toml:"settle_delay" yaml:"settle_delay"`
	AspectRatio   float64    `toml:"aspect_ratio" yaml:"aspect_ratio"`
	LODThreshold  float64    `toml:"lod_threshold" yaml:"lod_threshold"`
}

// LoadConfig reads a TOML configuration from r and merges it over
// DefaultConfig. Unknown keys are rejected.
//
// Example file:
//
//	zoom_axis = "x"
//	scale_extent = [1, 50]
//	settle_delay = "200ms"
//
//	[margin]
//	top = 10
//	left = 40
func LoadConfig(r io.Reader) (Config, error) {
	var fc fileConfig
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return fc.config()
}

// LoadConfigYAML is LoadConfig for YAML files with the same keys.
func LoadConfigYAML(r io.Reader) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return fc.config()
}

// config converts fc to a validated Config over the defaults.
func (fc *fileConfig) config() (Config, error) {
	var override Config
	if fc.Margin != nil {
		override.Margin = *fc.Margin
	}
	override.ZoomAxis = fc.ZoomAxis
	switch len(fc.ScaleExtent) {
	case 0:
	case 2:
		override.ScaleExtent = [2]float64{fc.ScaleExtent[0], fc.ScaleExtent[1]}
	default:
		return Config{}, fmt.Errorf("%w: scale_extent needs 2 values, got %d", ErrInvalidConfig, len(fc.ScaleExtent))
	}
	override.ClickRadius = fc.ClickRadius
	override.AspectRatio = fc.AspectRatio
	override.LODThreshold = fc.LODThreshold

	durations := []struct {
		key string
		src string
		dst *time.Duration
	}{
		{"tooltip_delay", fc.TooltipDelay, &override.TooltipDelay},
		{"lasso_interval", fc.LassoInterval, &override.LassoInterval},
		{"settle_delay", fc.SettleDelay, &override.SettleDelay},
	}
	for _, d := range durations {
		if d.src == "" {
			continue
		}
		v, err := time.ParseDuration(d.src)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, d.key, err)
		}
		*d.dst = v
	}

	c := DefaultConfig().Merge(override)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
