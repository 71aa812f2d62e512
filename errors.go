// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import "errors"

// Sentinel errors returned by View construction and data replacement.
var (
	// ErrNilScale is returned when a series has no domain scale.
	ErrNilScale = errors.New("scatter: nil scale")

	// ErrNilAccessor is returned when a series has no x or y accessor.
	ErrNilAccessor = errors.New("scatter: nil accessor")

	// ErrInvalidCoordinate is returned when a datum maps to a non-finite
	// position, either as a raw value or through its domain scale.
	ErrInvalidCoordinate = errors.New("scatter: invalid coordinate")

	// ErrNoSecondary is returned by secondary-dataset operations on a view
	// without a secondary series.
	ErrNoSecondary = errors.New("scatter: no secondary series")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("scatter: invalid config")
)
