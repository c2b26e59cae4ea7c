// Package layout implements the index arithmetic shared by every array
// storage variant: element counts and linear offsets for dense and packed
// (triangular) storage of arbitrary order.
package layout

import "fmt"

// Kind selects how index tuples map onto linear storage.
type Kind int

// Supported layouts.
const (
	// Dense stores every index combination. Axis 0 is contiguous and the
	// last axis is outermost (column major "append" convention).
	Dense Kind = iota

	// PackedIncreasing stores one triangle of a symmetric tensor with an
	// increasing number of elements per section: for order 2, column j
	// holds rows 0..j (upper triangle, column major).
	PackedIncreasing

	// PackedDecreasing is the mirror convention: for order 2, column j
	// holds rows j..n-1 (lower triangle, column major).
	PackedDecreasing
)

// String returns the configuration name of the layout.
func (k Kind) String() string {
	switch k {
	case Dense:
		return "dense"
	case PackedIncreasing:
		return "packed_increasing"
	case PackedDecreasing:
		return "packed_decreasing"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsPacked reports whether k stores a single triangle.
func (k Kind) IsPacked() bool {
	return k == PackedIncreasing || k == PackedDecreasing
}

// Valid reports whether k is one of the supported layouts.
func (k Kind) Valid() bool {
	return k >= Dense && k <= PackedDecreasing
}

// ParseKind parses a layout name as produced by Kind.String.
// "conventional", "packed_inc" and "packed_dec" are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "dense", "conventional":
		return Dense, nil
	case "packed_increasing", "packed_inc":
		return PackedIncreasing, nil
	case "packed_decreasing", "packed_dec":
		return PackedDecreasing, nil
	default:
		return 0, fmt.Errorf("layout: unknown layout %q", s)
	}
}
