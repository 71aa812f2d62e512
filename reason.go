// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scatter

import "fmt"

// Reason classifies a render trigger and decides which layers it redraws.
type Reason uint8

const (
	// ReasonDirty recomputes pixel ranges and redraws everything. It
	// follows data replacement, resize and Invalidate, and is the reason
	// of the first paint.
	ReasonDirty Reason = iota

	// ReasonPerformTranslate shifts the existing data raster by the
	// gesture delta instead of walking the index, redraws axes and the
	// selection layer, and arms the settle timer.
	ReasonPerformTranslate

	// ReasonAfterTranslate redraws the data layers once a pan has settled.
	ReasonAfterTranslate

	// ReasonSelectionChanged redraws the selection layer only.
	ReasonSelectionChanged

	// ReasonAfterScale follows a discrete zoom change. There is no
	// incremental path; it redraws everything.
	ReasonAfterScale

	// ReasonAfterScaleAndTranslate follows a discrete zoom and translate.
	// Like ReasonAfterScale it redraws everything.
	ReasonAfterScaleAndTranslate

	// ReasonSecondaryDirty follows replacement of the secondary dataset.
	// It redraws the secondary layer, axes and selection, leaving the
	// primary data layer alone.
	ReasonSecondaryDirty

	// ReasonOther is any unclassified trigger. It redraws everything.
	ReasonOther
)

var reasonNames = [...]string{
	ReasonDirty:                  "DIRTY",
	ReasonPerformTranslate:       "PERFORM_TRANSLATE",
	ReasonAfterTranslate:         "AFTER_TRANSLATE",
	ReasonSelectionChanged:       "SELECTION_CHANGED",
	ReasonAfterScale:             "AFTER_SCALE",
	ReasonAfterScaleAndTranslate: "AFTER_SCALE_AND_TRANSLATE",
	ReasonSecondaryDirty:         "SECONDARY_DIRTY",
	ReasonOther:                  "OTHER",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", uint8(r))
}
