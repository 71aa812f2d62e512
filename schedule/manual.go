// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package schedule

import (
	"slices"
	"time"
)

// Manual is a Scheduler driven by an explicit clock. Nothing fires until
// Advance is called, and then callbacks run synchronously on the caller's
// goroutine in deadline order. It is not safe for concurrent use.
type Manual struct {
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	m         *Manual
	at        time.Duration
	every     time.Duration // 0 for one-shot
	seq       uint64
	f         func()
	cancelled bool
}

func (t *manualTask) Cancel() {
	if t.cancelled {
		return
	}
	t.cancelled = true
	t.m.tasks = slices.DeleteFunc(t.m.tasks, func(o *manualTask) bool { return o == t })
}

// NewManual returns a scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the time elapsed since the scheduler was created.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of armed tasks.
func (m *Manual) Pending() int {
	return len(m.tasks)
}

func (m *Manual) arm(d, every time.Duration, f func()) *manualTask {
	m.seq++
	t := &manualTask{m: m, at: m.now + max(d, 0), every: every, seq: m.seq, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, f func()) Handle {
	return m.arm(d, 0, f)
}

// Every implements Scheduler. A non-positive period is treated as one
// nanosecond.
func (m *Manual) Every(d time.Duration, f func()) Handle {
	d = max(d, time.Nanosecond)
	return m.arm(d, d, f)
}

// next returns the earliest task due at or before deadline.
func (m *Manual) next(deadline time.Duration) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.at > deadline {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// Advance moves the clock forward by d, firing every task that falls due
// in order. Tasks armed by callbacks fire too if they fall due within the
// window. It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	deadline := m.now + max(d, 0)
	fired := 0
	for {
		t := m.next(deadline)
		if t == nil {
			break
		}
		m.now = t.at
		if t.every > 0 {
			m.seq++
			t.at += t.every
			t.seq = m.seq
		} else {
			t.Cancel()
		}
		t.f()
		fired++
	}
	m.now = deadline
	return fired
}

var _ Scheduler = (*Manual)(nil)
