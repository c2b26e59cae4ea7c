package array

import "errors"

// Construction errors.
var (
	// ErrUnresolved is returned for a Config that did not come from
	// property.Resolve.
	ErrUnresolved = errors.New("array: configuration not resolved")

	// ErrElementType is returned when the Go element type does not match
	// the configured element type.
	ErrElementType = errors.New("array: element type does not match configuration")

	// ErrShapeNotStatic is returned when a fixed-shape array is built from a
	// runtime-shape configuration.
	ErrShapeNotStatic = errors.New("array: configuration has no static shape")

	// ErrShapeStatic is returned when a runtime-shape array is built from a
	// static-shape configuration.
	ErrShapeStatic = errors.New("array: configuration has a static shape")

	// ErrExtentArity is returned when the number of extents does not suit
	// the layout: dense arrays need one per axis, packed arrays at most one.
	ErrExtentArity = errors.New("array: wrong number of extents")

	// ErrWrapOwning is returned when an owning configuration is used to wrap
	// a caller buffer.
	ErrWrapOwning = errors.New("array: cannot wrap a buffer with an owning configuration")
)

// Access and ownership errors.
var (
	// ErrIndexArity is raised (as a panic) when more indices than axes are
	// given.
	ErrIndexArity = errors.New("array: too many indices")

	// ErrIndexOutOfRange is raised (as a panic) by checked arrays for an
	// index outside the stored elements.
	ErrIndexOutOfRange = errors.New("array: index out of range")

	// ErrAxisRange is raised (as a panic) for an axis outside [0, order).
	ErrAxisRange = errors.New("array: axis out of range")

	// ErrExtentNotStored is raised (as a panic) when reading the extent an
	// efficient-shape array does not store, and returned when setting it.
	ErrExtentNotStored = errors.New("array: extent not stored (efficient shape)")

	// ErrOwned is returned when replacing the buffer of an owning array.
	ErrOwned = errors.New("array: array owns its buffer")

	// ErrBufferTooSmall is returned for a caller buffer shorter than the
	// layout size.
	ErrBufferTooSmall = errors.New("array: buffer too small")

	// ErrNoBuffer is returned when writing through an array without a
	// buffer.
	ErrNoBuffer = errors.New("array: no buffer")

	// ErrNotDense is returned by operations only defined on dense layouts.
	ErrNotDense = errors.New("array: operation requires dense layout")

	// ErrInitListDepth is returned for an initializer list nested deeper
	// than the array order.
	ErrInitListDepth = errors.New("array: initializer list deeper than array order")

	// ErrInitListTooLong is returned for an initializer list with more items
	// than the axis it initializes.
	ErrInitListTooLong = errors.New("array: initializer list longer than extent")
)
