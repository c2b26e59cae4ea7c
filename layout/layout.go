// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package layout exposes the storage layouts of ndarray.
//
// A layout maps an index tuple to a position in a flat buffer:
//   - Dense: every tuple is stored, axis 0 contiguous
//   - PackedIncreasing: only tuples with i0 <= i1 <= ... are stored
//   - PackedDecreasing: only tuples with i0 >= i1 >= ... are stored
//
// Example:
//
//	n := layout.Size(layout.PackedIncreasing, 2, []int{4}) // 10
//	off := layout.Offset(layout.PackedIncreasing, 2, []int{4}, 1, 3)
package layout

import "github.com/born-ml/ndarray/internal/layout"

// Kind selects a storage layout.
type Kind = layout.Kind

// Layout constants.
const (
	Dense            Kind = layout.Dense
	PackedIncreasing Kind = layout.PackedIncreasing
	PackedDecreasing Kind = layout.PackedDecreasing
)

// Shape lists the extents of an array, axis 0 first.
type Shape = layout.Shape

// Strategy computes sizes and offsets for one layout kind.
type Strategy = layout.Strategy

// For returns the strategy of kind.
func For(kind Kind) (Strategy, error) { return layout.For(kind) }

// ParseKind parses a layout name such as "dense" or "packed_increasing".
func ParseKind(s string) (Kind, error) { return layout.ParseKind(s) }

// Size returns the number of stored elements.
func Size(kind Kind, order int, extents []int) int { return layout.Size(kind, order, extents) }

// Offset returns the buffer position of idx. Fewer indices than the order
// address the leading axes as zero.
func Offset(kind Kind, order int, extents []int, idx ...int) int {
	return layout.Offset(kind, order, extents, idx...)
}

// Contains reports whether idx is stored by the layout.
func Contains(kind Kind, order int, extents []int, idx ...int) bool {
	return layout.Contains(kind, order, extents, idx...)
}

// Walk calls fn for every stored index tuple in storage order.
func Walk(kind Kind, order int, extents []int, fn func(idx []int, off int) bool) {
	layout.Walk(kind, order, extents, fn)
}
