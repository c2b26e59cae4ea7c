// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides multidimensional arrays over a configurable
// layout.
//
// Three storage variants share the Array interface:
//   - Fixed: static shape, elements held inline
//   - Heap: static shape, buffer owned through an allocator or wrapped
//   - Dynamic: runtime extents, resizable, owned or wrapped
//
// Example:
//
//	cfg := property.MustResolve(property.ShapeOf[float64](2, 3))
//	a, _ := array.NewFixedFrom(cfg, array.List(array.Leaf(1.0, 2.0), array.Leaf(3.0, 4.0)))
//	a.Set(5, 1, 2)
package array

import (
	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/property"
)

// Array is the element access interface shared by all variants.
type Array[T property.Element] = array.Array[T]

// View is the indexing core embedded by every variant.
type View[T property.Element] = array.View[T]

// Fixed is a static-shape array holding its elements inline.
type Fixed[T property.Element] = array.Fixed[T]

// Heap is a static-shape array with an owned or wrapped buffer.
type Heap[T property.Element] = array.Heap[T]

// Dynamic is an array with runtime extents.
type Dynamic[T property.Element] = array.Dynamic[T]

// Nested is a deep initializer list.
type Nested[T any] = array.Nested[T]

// Errors returned by constructors and accessors.
var (
	ErrUnresolved      = array.ErrUnresolved
	ErrElementType     = array.ErrElementType
	ErrShapeNotStatic  = array.ErrShapeNotStatic
	ErrShapeStatic     = array.ErrShapeStatic
	ErrExtentArity     = array.ErrExtentArity
	ErrWrapOwning      = array.ErrWrapOwning
	ErrIndexArity      = array.ErrIndexArity
	ErrIndexOutOfRange = array.ErrIndexOutOfRange
	ErrAxisRange       = array.ErrAxisRange
	ErrExtentNotStored = array.ErrExtentNotStored
	ErrOwned           = array.ErrOwned
	ErrBufferTooSmall  = array.ErrBufferTooSmall
	ErrNoBuffer        = array.ErrNoBuffer
	ErrNotDense        = array.ErrNotDense
	ErrInitListDepth   = array.ErrInitListDepth
	ErrInitListTooLong = array.ErrInitListTooLong
)

// Leaf returns an initializer list of values.
func Leaf[T any](values ...T) Nested[T] { return array.Leaf(values...) }

// List returns an initializer list of nested lists.
func List[T any](items ...Nested[T]) Nested[T] { return array.List(items...) }

// NewFixed returns a zeroed Fixed array.
func NewFixed[T property.Element](cfg property.Config) (*Fixed[T], error) {
	return array.NewFixed[T](cfg)
}

// NewFixedFrom returns a Fixed array initialized from list.
func NewFixedFrom[T property.Element](cfg property.Config, list Nested[T]) (*Fixed[T], error) {
	return array.NewFixedFrom(cfg, list)
}

// NewHeap returns a Heap array. Owning configurations allocate a zeroed
// buffer; wrapping ones start without a buffer.
func NewHeap[T property.Element](cfg property.Config) (*Heap[T], error) {
	return array.NewHeap[T](cfg)
}

// NewHeapFrom returns an owning Heap array initialized from list.
func NewHeapFrom[T property.Element](cfg property.Config, list Nested[T]) (*Heap[T], error) {
	return array.NewHeapFrom(cfg, list)
}

// WrapHeap returns a Heap array over data.
func WrapHeap[T property.Element](cfg property.Config, data []T) (*Heap[T], error) {
	return array.WrapHeap(cfg, data)
}

// ResolveExtents validates extents for a runtime-shape configuration.
func ResolveExtents(cfg property.Config, extents ...int) ([]int, error) {
	return array.ResolveExtents(cfg, extents...)
}

// NewDynamic returns a Dynamic array with the given extents.
func NewDynamic[T property.Element](cfg property.Config, extents ...int) (*Dynamic[T], error) {
	return array.NewDynamic[T](cfg, extents...)
}

// NewDynamicFrom returns a Dynamic array initialized from list.
func NewDynamicFrom[T property.Element](cfg property.Config, list Nested[T], extents ...int) (*Dynamic[T], error) {
	return array.NewDynamicFrom(cfg, list, extents...)
}

// WrapDynamic returns a Dynamic array over data.
func WrapDynamic[T property.Element](cfg property.Config, data []T, extents ...int) (*Dynamic[T], error) {
	return array.WrapDynamic(cfg, data, extents...)
}
