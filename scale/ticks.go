// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scale

import "math"

// Ticker is implemented by scales that choose their own tick values.
type Ticker interface {
	Ticks(n int) []float64
}

// Ticks returns roughly n human-friendly values inside the domain of s.
func Ticks(s Scale, n int) []float64 {
	if t, ok := s.(Ticker); ok {
		return t.Ticks(n)
	}
	d0, d1 := s.Domain()
	return LinearTicks(d0, d1, n)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// LinearTicks returns about count values between start and stop spaced by
// 1, 2 or 5 times a power of ten. The result follows the direction of
// [start, stop].
func LinearTicks(start, stop float64, count int) []float64 {
	if count <= 0 || !finite(start) || !finite(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	var i1, i2, inc float64
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1, i2 = math.Round(start*inc), math.Round(stop*inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
	} else {
		inc = math.Pow(10, power) * factor
		i1, i2 = math.Round(start/inc), math.Round(stop/inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := range ticks {
		v := i1 + float64(i)
		if power < 0 {
			ticks[i] = v / inc
		} else {
			ticks[i] = v * inc
		}
	}
	if reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// logTicks returns the integer powers of base inside [d0, d1].
func logTicks(base, d0, d1 float64) []float64 {
	if d0*d1 <= 0 || !(base > 1) {
		return nil
	}
	sign := 1.0
	lo, hi := math.Min(d0, d1), math.Max(d0, d1)
	if lo < 0 {
		sign = -1
		lo, hi = -hi, -lo
	}
	lb := math.Log(base)
	p0 := math.Ceil(math.Log(lo)/lb - 1e-9)
	p1 := math.Floor(math.Log(hi)/lb + 1e-9)
	var ticks []float64
	for p := p0; p <= p1; p++ {
		ticks = append(ticks, sign*math.Pow(base, p))
	}
	return ticks
}
