// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package selection implements the selection engine: the selection index,
// click and lasso hit-test regions and the lasso gesture buffer.
package selection

import (
	"slices"

	"github.com/gogpu/scatter/quadtree"
)

// Set is the set of selected items, mirrored in its own quadtree so that
// selected points can be drawn with the same culling walk as the data.
//
// The index uses the same coordinate functions as the primary index but
// only ever holds selected items.
type Set[T comparable] struct {
	x, y    func(T) float64
	index   *quadtree.Tree[T]
	members map[T]uint64 // item -> insertion sequence
	seq     uint64
}

// NewSet returns an empty selection positioned by x and y.
func NewSet[T comparable](x, y func(T) float64) *Set[T] {
	return &Set[T]{
		x:       x,
		y:       y,
		index:   quadtree.New(x, y),
		members: make(map[T]uint64),
	}
}

// Index returns the selection quadtree.
func (s *Set[T]) Index() *quadtree.Tree[T] {
	return s.index
}

// Len returns the number of selected items.
func (s *Set[T]) Len() int {
	return len(s.members)
}

// Has reports whether item is selected.
func (s *Set[T]) Has(item T) bool {
	_, ok := s.members[item]
	return ok
}

// Items returns the selected items in the order they were selected.
func (s *Set[T]) Items() []T {
	out := make([]T, 0, len(s.members))
	for d := range s.members {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b T) int {
		sa, sb := s.members[a], s.members[b]
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	})
	return out
}

// Replace makes items the selection. The old and new sets are diffed first
// and only the difference touches the index; replacing a set with itself
// changes nothing. Replacing with an empty set is a Clear.
func (s *Set[T]) Replace(items []T) (added, removed []T) {
	if len(items) == 0 {
		return nil, s.Clear()
	}

	next := make(map[T]struct{}, len(items))
	for _, d := range items {
		if _, dup := next[d]; dup {
			continue
		}
		next[d] = struct{}{}
		if _, ok := s.members[d]; !ok {
			added = append(added, d)
		}
	}
	for _, d := range s.Items() {
		if _, ok := next[d]; !ok {
			removed = append(removed, d)
		}
	}
	if len(added) == 0 && len(removed) == 0 {
		return nil, nil
	}

	for _, d := range removed {
		delete(s.members, d)
	}
	s.index.RemoveAll(removed)
	for _, d := range added {
		s.seq++
		s.members[d] = s.seq
	}
	s.index.Add(added...)
	return added, removed
}

// Clear empties the selection, rebuilding the index from scratch.
// It returns the items that were selected.
func (s *Set[T]) Clear() (removed []T) {
	if len(s.members) == 0 {
		return nil
	}
	removed = s.Items()
	s.members = make(map[T]uint64)
	s.index = quadtree.New(s.x, s.y)
	return removed
}

// Rebase rebuilds the index with new coordinate functions, keeping only the
// items for which keep returns true. It returns the items dropped.
func (s *Set[T]) Rebase(x, y func(T) float64, keep func(T) bool) (removed []T) {
	kept := make([]T, 0, len(s.members))
	for _, d := range s.Items() {
		if keep == nil || keep(d) {
			kept = append(kept, d)
		} else {
			removed = append(removed, d)
			delete(s.members, d)
		}
	}
	s.x, s.y = x, y
	s.index = quadtree.Build(kept, x, y)
	return removed
}
