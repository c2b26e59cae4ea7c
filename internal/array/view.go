// Package array implements the array storage variants: Fixed (embedded,
// static shape), Heap (heap buffer, static shape, owning or wrapping) and
// Dynamic (runtime extents). All of them index through a View.
package array

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/layout"
	"github.com/born-ml/ndarray/internal/parallel"
	"github.com/born-ml/ndarray/internal/property"
)

// fillConfig splits scalar fills of large buffers across CPUs.
var fillConfig = parallel.DefaultConfig()

// Array is the read/write surface shared by every storage variant.
type Array[T property.Element] interface {
	Order() int
	Extent(axis int) int
	HasExtent(axis int) bool
	Extents() []int
	Layout() layout.Kind
	DType() property.DataType
	Size() int
	Data() []T
	Offset(idx ...int) int
	At(idx ...int) T
	Set(v T, idx ...int)
	Ptr(idx ...int) *T
	Fill(v T)
	Assign(list Nested[T]) error
	Walk(fn func(idx []int, off int) bool)
	Sub(i int) (*View[T], error)
}

// View indexes a flat buffer through a layout strategy. It holds no
// ownership; the storage variants embed it and manage its buffer.
//
// Indices are given axis 0 first. Fewer indices than the order address the
// element whose missing leading indices are 0, so At(j) == At(0, j) on an
// order-2 array.
type View[T property.Element] struct {
	order    int
	extents  []int // stored extents; order-1 of them for efficient shapes
	size     int
	strategy layout.Strategy
	checked  bool
	data     []T
}

// newView builds a view over data. extents holds the stored extents.
func newView[T property.Element](cfg property.Config, extents []int, size int, data []T) View[T] {
	return View[T]{
		order:    cfg.Order(),
		extents:  extents,
		size:     size,
		strategy: cfg.Strategy(),
		checked:  cfg.Checked(),
		data:     data,
	}
}

// Order returns the number of axes.
func (v *View[T]) Order() int { return v.order }

// Extent returns the extent of axis. It panics with ErrAxisRange for an
// axis outside [0, order) and with ErrExtentNotStored for the last axis of
// an efficient-shape array.
func (v *View[T]) Extent(axis int) int {
	if axis < 0 || axis >= v.order {
		panic(fmt.Errorf("%w: axis %d of order %d", ErrAxisRange, axis, v.order))
	}
	if axis >= len(v.extents) {
		panic(fmt.Errorf("%w: axis %d", ErrExtentNotStored, axis))
	}
	return v.extents[axis]
}

// HasExtent reports whether Extent(axis) can be read.
func (v *View[T]) HasExtent(axis int) bool {
	return axis >= 0 && axis < len(v.extents)
}

// Extents returns a copy of the stored extents.
func (v *View[T]) Extents() []int {
	return layout.Shape(v.extents).Clone()
}

// Layout returns the storage layout.
func (v *View[T]) Layout() layout.Kind { return v.strategy.Kind() }

// DType returns the element type.
func (v *View[T]) DType() property.DataType { return property.DataTypeOf[T]() }

// Size returns the number of stored elements.
func (v *View[T]) Size() int { return v.size }

// Data returns the flat buffer in storage order. It is nil for a wrapping
// array without a buffer.
func (v *View[T]) Data() []T { return v.data }

// Offset returns the storage offset of idx.
// Checked arrays panic with ErrIndexOutOfRange for indices outside the
// stored elements.
func (v *View[T]) Offset(idx ...int) int {
	if len(idx) > v.order {
		panic(fmt.Errorf("%w: %d indices for order %d", ErrIndexArity, len(idx), v.order))
	}
	if v.checked && !v.strategy.Contains(v.order, v.extents, idx) {
		panic(fmt.Errorf("%w: %v in %v %v", ErrIndexOutOfRange, idx, v.strategy.Kind(), v.extents))
	}
	off := v.strategy.Offset(v.order, v.extents, idx)
	if v.checked && off >= v.size {
		panic(fmt.Errorf("%w: %v (offset %d of %d)", ErrIndexOutOfRange, idx, off, v.size))
	}
	return off
}

// At returns the element at idx.
func (v *View[T]) At(idx ...int) T {
	return v.data[v.Offset(idx...)]
}

// Set writes value at idx.
func (v *View[T]) Set(value T, idx ...int) {
	v.data[v.Offset(idx...)] = value
}

// Ptr returns a pointer to the element at idx.
func (v *View[T]) Ptr(idx ...int) *T {
	return &v.data[v.Offset(idx...)]
}

// Fill assigns value to every stored element.
func (v *View[T]) Fill(value T) {
	data := v.data
	parallel.Range(len(data), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			data[i] = value
		}
	}, fillConfig)
}

// Walk calls fn for every stored index tuple in storage order. See
// layout.Walk.
func (v *View[T]) Walk(fn func(idx []int, off int) bool) {
	layout.Walk(v.strategy.Kind(), v.order, v.shape(), fn)
}

// Sub returns the order-1 sub-array at index i of the last axis. The view
// shares the buffer. Only dense arrays of order 2 or more have sub-arrays.
func (v *View[T]) Sub(i int) (*View[T], error) {
	if v.strategy.Kind() != layout.Dense {
		return nil, fmt.Errorf("%w: sub-array of %v", ErrNotDense, v.strategy.Kind())
	}
	if v.order < 2 {
		return nil, fmt.Errorf("%w: sub-array of order %d", ErrAxisRange, v.order)
	}
	if v.data == nil {
		return nil, ErrNoBuffer
	}
	shape := v.shape()
	if i < 0 || i >= shape[v.order-1] {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, shape[v.order-1])
	}

	inner := layout.Shape(shape[:v.order-1]).Clone()
	stride := inner.NumElements()
	return &View[T]{
		order:    v.order - 1,
		extents:  inner,
		size:     stride,
		strategy: v.strategy,
		checked:  v.checked,
		data:     v.data[i*stride : (i+1)*stride : (i+1)*stride],
	}, nil
}

// shape returns one extent per axis. The extent an efficient-shape array
// does not store is inferred from its size.
func (v *View[T]) shape() []int {
	if len(v.extents) == v.order {
		return v.extents
	}
	full := make([]int, v.order)
	copy(full, v.extents)

	last := 0
	switch {
	case v.strategy.Kind().IsPacked() && len(v.extents) > 0:
		last = v.extents[0]
	case len(v.extents) == 0:
		last = v.size
	default:
		if inner := layout.Shape(v.extents).NumElements(); inner > 0 {
			last = v.size / inner
		}
	}
	full[v.order-1] = last
	return full
}
