// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package selection

// Lasso buffers a freehand polygon while it is being dragged.
//
// Pointer moves are appended cheaply to a pending buffer. Commit moves
// them into the committed outline, which is what hit-testing uses; this
// lets the caller hit-test on its own cadence rather than per event.
type Lasso struct {
	committed []Point
	pending   []Point
}

// NewLasso starts a lasso anchored at the pixel start.
func NewLasso(start Point) *Lasso {
	return &Lasso{committed: []Point{start}}
}

// Append buffers a pixel position.
func (l *Lasso) Append(p Point) {
	l.pending = append(l.pending, p)
}

// Pending returns the number of buffered, uncommitted points.
func (l *Lasso) Pending() int {
	return len(l.pending)
}

// Commit moves buffered points into the outline. It reports whether the
// outline changed.
func (l *Lasso) Commit() bool {
	if len(l.pending) == 0 {
		return false
	}
	l.committed = append(l.committed, l.pending...)
	l.pending = l.pending[:0]
	return true
}

// Polygon returns the committed pixel outline.
func (l *Lasso) Polygon() []Point {
	return l.committed
}

// Preview returns the committed outline followed by the pending points,
// for drawing.
func (l *Lasso) Preview() []Point {
	out := make([]Point, 0, len(l.committed)+len(l.pending))
	out = append(out, l.committed...)
	return append(out, l.pending...)
}
