// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package schedule provides the timers a view uses for settle, lasso
// commit and tooltip debounce.
//
// A view is single-threaded: every callback must run on the same logical
// thread as the view's input handlers. Loop provides that thread for real
// programs; Manual fires callbacks synchronously under an explicit clock
// for deterministic tests.
package schedule

import "time"

// Handle is a scheduled task. Cancel is idempotent and safe to call after
// the task has fired.
type Handle interface {
	Cancel()
}

// Scheduler arms one-shot and periodic tasks.
type Scheduler interface {
	// AfterFunc runs f once after d.
	AfterFunc(d time.Duration, f func()) Handle
	// Every runs f every d until cancelled.
	Every(d time.Duration, f func()) Handle
}

// Cancel cancels h if it is not nil and returns nil, so that a field
// holding a handle can be cleared in one statement:
//
//	v.settle = schedule.Cancel(v.settle)
func Cancel(h Handle) Handle {
	if h != nil {
		h.Cancel()
	}
	return nil
}
