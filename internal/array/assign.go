package array

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/layout"
)

// Assign writes a deep initializer list into the array.
//
// Level k of the list (0 being the outermost) runs over axis order-1-k.
// A list shorter than its axis leaves the remaining elements unmodified.
// On packed layouts each level only runs over stored positions: for
// increasing layouts 0..i where i is the enclosing index, for decreasing
// layouts i..n-1.
//
// The list is validated before anything is written.
func (v *View[T]) Assign(list Nested[T]) error {
	if depth := list.Depth(); depth > v.order {
		return fmt.Errorf("%w: depth %d for order %d", ErrInitListDepth, depth, v.order)
	}
	if v.data == nil && v.size > 0 {
		return ErrNoBuffer
	}

	shape := v.shape()
	idx := make([]int, v.order)
	if err := v.assign(list, v.order-1, shape, idx, true); err != nil {
		return err
	}
	return v.assign(list, v.order-1, shape, idx, false)
}

func (v *View[T]) assign(node Nested[T], axis int, shape, idx []int, dry bool) error {
	lo, hi := v.bounds(axis, shape, idx)
	if n := node.Len(); n > hi-lo {
		return fmt.Errorf("%w: %d items for axis %d of extent %d", ErrInitListTooLong, n, axis, hi-lo)
	}

	if node.leaf {
		if dry {
			return nil
		}
		for k, value := range node.values {
			idx[axis] = lo + k
			v.fill(axis-1, shape, idx, value)
		}
		return nil
	}

	for k, item := range node.items {
		idx[axis] = lo + k
		if err := v.assign(item, axis-1, shape, idx, dry); err != nil {
			return err
		}
	}
	return nil
}

// fill writes value to every stored element below axis, with the indices
// of the higher axes taken from idx.
func (v *View[T]) fill(axis int, shape, idx []int, value T) {
	if axis < 0 {
		v.data[v.strategy.Offset(v.order, v.extents, idx)] = value
		return
	}
	lo, hi := v.bounds(axis, shape, idx)
	for i := lo; i < hi; i++ {
		idx[axis] = i
		v.fill(axis-1, shape, idx, value)
	}
}

// bounds returns the stored index range [lo, hi) of axis given the indices
// of the higher axes.
func (v *View[T]) bounds(axis int, shape, idx []int) (lo, hi int) {
	top := axis+1 == v.order
	switch v.strategy.Kind() {
	case layout.PackedIncreasing:
		if top {
			return 0, shape[0]
		}
		return 0, idx[axis+1] + 1
	case layout.PackedDecreasing:
		if top {
			return 0, shape[0]
		}
		return idx[axis+1], shape[0]
	default:
		return 0, shape[axis]
	}
}
