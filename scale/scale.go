// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scale provides the coordinate transform pipeline: continuous
// domain scales, the live zoom transform and the per-frame render delta.
//
// A point's pixel position is always obtained by composing
//
//	raw value -> domain scale -> normalized -> zoomed normalized-to-pixel scale
//
// where the first step is fixed when the spatial index is built and the
// last step changes with every pan or zoom.
package scale

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDomain is returned when a scale cannot map its domain.
var ErrInvalidDomain = errors.New("scale: invalid domain")

// Scale is a bidirectional mapping between a domain and a range.
//
// Implementations must be copyable so that the pipeline can repurpose a
// scale's range without mutating the caller's instance.
type Scale interface {
	// Apply maps a domain value to the range.
	Apply(v float64) float64

	// Invert maps a range value back to the domain.
	Invert(p float64) float64

	// Domain returns the domain endpoints.
	Domain() (d0, d1 float64)

	// Range returns the range endpoints.
	Range() (r0, r1 float64)

	// SetDomain replaces the domain endpoints.
	SetDomain(d0, d1 float64)

	// SetRange replaces the range endpoints.
	SetRange(r0, r1 float64)

	// Copy returns an independent scale with the same state.
	Copy() Scale
}

// Validate reports whether s can be used for coordinate mapping.
// Scales that implement Validate() error are asked as well.
func Validate(s Scale) error {
	if s == nil {
		return fmt.Errorf("%w: nil scale", ErrInvalidDomain)
	}
	d0, d1 := s.Domain()
	if !finite(d0) || !finite(d1) {
		return fmt.Errorf("%w: non-finite domain [%v, %v]", ErrInvalidDomain, d0, d1)
	}
	if d0 == d1 {
		return fmt.Errorf("%w: empty domain [%v, %v]", ErrInvalidDomain, d0, d1)
	}
	if v, ok := s.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

type kind uint8

const (
	kindLinear kind = iota
	kindLog
	kindPow
)

// Continuous is a scale whose mapping is linear after a monotonic
// transform of the domain: identity (linear), logarithm (log) or a signed
// power (pow).
//
// The zero value is not usable; construct with Linear, Log or Pow.
type Continuous struct {
	kind  kind
	param float64 // log base or pow exponent
	d0    float64
	d1    float64
	r0    float64
	r1    float64
}

var _ Scale = (*Continuous)(nil)

// Linear returns a linear scale over [d0, d1] with range [0, 1].
func Linear(d0, d1 float64) *Continuous {
	return &Continuous{kind: kindLinear, d0: d0, d1: d1, r1: 1}
}

// Log returns a logarithmic scale over [d0, d1] with range [0, 1].
// The domain must not include zero; a negative domain is mapped by
// reflection. The base only affects tick placement.
func Log(base, d0, d1 float64) *Continuous {
	return &Continuous{kind: kindLog, param: base, d0: d0, d1: d1, r1: 1}
}

// Pow returns a power scale with the given exponent over [d0, d1] with
// range [0, 1]. Negative values map as -|v|^exponent.
func Pow(exponent, d0, d1 float64) *Continuous {
	return &Continuous{kind: kindPow, param: exponent, d0: d0, d1: d1, r1: 1}
}

// Sqrt returns a power scale with exponent 0.5.
func Sqrt(d0, d1 float64) *Continuous {
	return Pow(0.5, d0, d1)
}

// WithRange sets the range and returns s for chaining.
func (s *Continuous) WithRange(r0, r1 float64) *Continuous {
	s.r0, s.r1 = r0, r1
	return s
}

// Validate checks the transform-specific domain constraints.
func (s *Continuous) Validate() error {
	switch s.kind {
	case kindLog:
		if s.d0*s.d1 <= 0 {
			return fmt.Errorf("%w: log domain [%v, %v] includes zero", ErrInvalidDomain, s.d0, s.d1)
		}
		if !(s.param > 0) || s.param == 1 {
			return fmt.Errorf("%w: log base %v", ErrInvalidDomain, s.param)
		}
	case kindPow:
		if s.param == 0 || !finite(s.param) {
			return fmt.Errorf("%w: pow exponent %v", ErrInvalidDomain, s.param)
		}
	}
	return nil
}

// Base returns the logarithm base, or 0 for non-log scales.
func (s *Continuous) Base() float64 {
	if s.kind != kindLog {
		return 0
	}
	return s.param
}

// Domain implements Scale.
func (s *Continuous) Domain() (float64, float64) { return s.d0, s.d1 }

// Range implements Scale.
func (s *Continuous) Range() (float64, float64) { return s.r0, s.r1 }

// SetDomain implements Scale.
func (s *Continuous) SetDomain(d0, d1 float64) { s.d0, s.d1 = d0, d1 }

// SetRange implements Scale.
func (s *Continuous) SetRange(r0, r1 float64) { s.r0, s.r1 = r0, r1 }

// Copy implements Scale.
func (s *Continuous) Copy() Scale {
	c := *s
	return &c
}

func (s *Continuous) forward(v float64) float64 {
	switch s.kind {
	case kindLog:
		if s.d0 < 0 {
			return -math.Log(-v)
		}
		return math.Log(v)
	case kindPow:
		return math.Copysign(math.Pow(math.Abs(v), s.param), v)
	}
	return v
}

func (s *Continuous) inverse(v float64) float64 {
	switch s.kind {
	case kindLog:
		if s.d0 < 0 {
			return -math.Exp(-v)
		}
		return math.Exp(v)
	case kindPow:
		return math.Copysign(math.Pow(math.Abs(v), 1/s.param), v)
	}
	return v
}

// Apply implements Scale. A degenerate domain maps to the range midpoint.
func (s *Continuous) Apply(v float64) float64 {
	t0, t1 := s.forward(s.d0), s.forward(s.d1)
	if t1 == t0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (s.forward(v)-t0)/(t1-t0)*(s.r1-s.r0)
}

// Invert implements Scale. A degenerate range maps to the domain midpoint.
func (s *Continuous) Invert(p float64) float64 {
	t0, t1 := s.forward(s.d0), s.forward(s.d1)
	t := 0.5
	if s.r1 != s.r0 {
		t = (p - s.r0) / (s.r1 - s.r0)
	}
	return s.inverse(t0 + t*(t1-t0))
}

// Ticks implements Ticker. Log scales tick at powers of the base when the
// domain spans enough of them.
func (s *Continuous) Ticks(n int) []float64 {
	if s.kind == kindLog {
		if ticks := logTicks(s.Base(), s.d0, s.d1); len(ticks) >= 2 {
			return ticks
		}
	}
	return LinearTicks(s.d0, s.d1, n)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
