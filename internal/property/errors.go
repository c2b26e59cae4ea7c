package property

import "errors"

// Configuration errors. They are reported by Resolve, before any array can
// be built from the configuration.
var (
	// ErrDuplicateProperty is returned when two properties share an axis.
	ErrDuplicateProperty = errors.New("property: multiple properties of the same axis not allowed")

	// ErrNilProperty is returned for a nil entry in the property list.
	ErrNilProperty = errors.New("property: nil property")

	// ErrMalformedShape is returned for an empty shape, a non-positive
	// static extent or an order below 1.
	ErrMalformedShape = errors.New("property: malformed shape")

	// ErrNonSquare is returned when a packed layout is combined with a
	// static shape whose extents differ.
	ErrNonSquare = errors.New("property: packed layout requires equal extents")

	// ErrNegativeExtent is returned for an extent below zero.
	ErrNegativeExtent = errors.New("property: negative extent")

	// ErrExtentOverflow is returned when an extent does not fit the index type.
	ErrExtentOverflow = errors.New("property: extent overflows index type")

	// ErrUnsupported is returned for an unknown enum value.
	ErrUnsupported = errors.New("property: unsupported value")
)
