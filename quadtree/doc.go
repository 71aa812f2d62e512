// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package quadtree implements a point quadtree over a 2D coordinate space.
//
// The tree stores opaque items of any comparable type. Two accessor
// functions project each item to its (x, y) position; the tree never
// interprets items beyond that. Items with identical coordinates share one
// leaf and are chained together.
//
// # Structure
//
// Every node is either internal (exactly four child slots, at least one
// non-nil) or a leaf (one or more chained items). The root extent is a
// square that grows by doubling whenever a point outside it is added, so
// the tree always covers every stored point and each point is reachable
// by exactly one path determined by its coordinates.
//
// Quadrants are numbered in the order they are visited:
//
//	0 | 1
//	--+--
//	2 | 3
//
// where 0 holds x < xm, y < ym and 3 holds x >= xm, y >= ym.
//
// # Thread Safety
//
// A Tree is not safe for concurrent use.
package quadtree
