// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package schedule

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned by Do once the loop has stopped.
var ErrClosed = errors.New("schedule: loop closed")

// Loop is a single-goroutine event loop. Functions posted to it, and the
// callbacks of timers it arms, run one at a time on the goroutine executing
// Run.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop returns a loop with a queue of the given depth.
func NewLoop(depth int) *Loop {
	return &Loop{
		queue: make(chan func(), max(depth, 1)),
		done:  make(chan struct{}),
	}
}

// Run executes posted functions until ctx is cancelled. It must be called
// exactly once.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.queue:
			f()
		}
	}
}

// Post queues f to run on the loop. It reports false when the loop has
// stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- f:
		return true
	case <-l.done:
		return false
	}
}

// Do runs f on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, f func()) error {
	ran := make(chan struct{})
	if !l.Post(func() { f(); close(ran) }) {
		return ErrClosed
	}
	select {
	case <-ran:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// loopTask is a timer whose callback is posted to the loop. The cancelled
// flag is checked on the loop itself, so a callback already queued when
// Cancel is called does not run.
type loopTask struct {
	cancelled atomic.Bool
	mu        sync.Mutex
	timer     *time.Timer
	ticker    *time.Ticker
	stop      chan struct{}
}

func (t *loopTask) Cancel() {
	if t.cancelled.Swap(true) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.ticker != nil {
		t.ticker.Stop()
		close(t.stop)
	}
}

func (l *Loop) guard(t *loopTask, f func()) func() {
	return func() {
		if !t.cancelled.Load() {
			f()
		}
	}
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, f func()) Handle {
	t := &loopTask{}
	run := l.guard(t, func() {
		t.cancelled.Store(true)
		f()
	})
	t.mu.Lock()
	t.timer = time.AfterFunc(d, func() { l.Post(run) })
	t.mu.Unlock()
	return t
}

// Every implements Scheduler.
func (l *Loop) Every(d time.Duration, f func()) Handle {
	t := &loopTask{stop: make(chan struct{})}
	run := l.guard(t, f)
	t.mu.Lock()
	t.ticker = time.NewTicker(d)
	ticker := t.ticker
	t.mu.Unlock()
	go func() {
		for {
			select {
			case <-ticker.C:
				l.Post(run)
			case <-t.stop:
				return
			case <-l.done:
				return
			}
		}
	}()
	return t
}

var _ Scheduler = (*Loop)(nil)
