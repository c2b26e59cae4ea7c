// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package property declares and resolves array configurations.
//
// Properties are independent options, one per axis (shape, layout, index
// type, allocation and so on). Resolve combines them, fills in defaults and
// rejects two properties of the same axis.
//
// Example:
//
//	cfg, err := property.Resolve(
//	    property.OrderOf[float32](2),
//	    property.WithLayout(layout.PackedIncreasing),
//	    property.WithChecked(true),
//	)
package property

import (
	"github.com/born-ml/ndarray/alloc"
	"github.com/born-ml/ndarray/internal/property"
	"github.com/born-ml/ndarray/layout"
)

// Element is the constraint satisfied by supported element types.
type Element = property.Element

// DataType identifies an element type at run time.
type DataType = property.DataType

// Data type constants.
const (
	Float32    DataType = property.Float32
	Float64    DataType = property.Float64
	Int8       DataType = property.Int8
	Int16      DataType = property.Int16
	Int32      DataType = property.Int32
	Int64      DataType = property.Int64
	Uint8      DataType = property.Uint8
	Uint16     DataType = property.Uint16
	Uint32     DataType = property.Uint32
	Uint64     DataType = property.Uint64
	Complex64  DataType = property.Complex64
	Complex128 DataType = property.Complex128
	Bool       DataType = property.Bool
)

// Property is one configuration option.
type Property = property.Property

// Config is a resolved configuration.
type Config = property.Config

// MajorAxis is the axis ordering convention.
type MajorAxis = property.MajorAxis

// ColumnMajor makes axis 0 contiguous.
const ColumnMajor MajorAxis = property.ColumnMajor

// IndexType is the unsigned width used for extents.
type IndexType = property.IndexType

// Index types.
const (
	Uint        IndexType = property.Uint
	Uint8Index  IndexType = property.Uint8Index
	Uint16Index IndexType = property.Uint16Index
	Uint32Index IndexType = property.Uint32Index
	Uint64Index IndexType = property.Uint64Index
)

// Resolution errors.
var (
	ErrDuplicateProperty = property.ErrDuplicateProperty
	ErrNilProperty       = property.ErrNilProperty
	ErrMalformedShape    = property.ErrMalformedShape
	ErrNonSquare         = property.ErrNonSquare
	ErrNegativeExtent    = property.ErrNegativeExtent
	ErrExtentOverflow    = property.ErrExtentOverflow
	ErrUnsupported       = property.ErrUnsupported
)

// Resolve combines props into a configuration.
func Resolve(props ...Property) (Config, error) { return property.Resolve(props...) }

// MustResolve is like Resolve but panics on error.
func MustResolve(props ...Property) Config { return property.MustResolve(props...) }

// DataTypeOf returns the DataType of T.
func DataTypeOf[T Element]() DataType { return property.DataTypeOf[T]() }

// ShapeOf declares a static shape with element type T.
func ShapeOf[T Element](dims ...int) Property { return property.ShapeOf[T](dims...) }

// OrderOf declares a runtime shape of order n with element type T.
func OrderOf[T Element](n int) Property { return property.OrderOf[T](n) }

// WithLayout selects the storage layout.
func WithLayout(kind layout.Kind) Property { return property.WithLayout(kind) }

// WithMajorAxis selects the axis ordering.
func WithMajorAxis(m MajorAxis) Property { return property.WithMajorAxis(m) }

// WithIndexType selects the index width.
func WithIndexType(t IndexType) Property { return property.WithIndexType(t) }

// WithAllocate selects between owning and wrapping arrays.
func WithAllocate(allocate bool) Property { return property.WithAllocate(allocate) }

// WithEfficientShape drops the last extent of runtime shapes.
func WithEfficientShape(efficient bool) Property { return property.WithEfficientShape(efficient) }

// WithAllocator sets the allocator of owning heap arrays.
func WithAllocator(a alloc.Allocator) Property { return property.WithAllocator(a) }

// WithChecked enables bounds checking on element access.
func WithChecked(checked bool) Property { return property.WithChecked(checked) }
