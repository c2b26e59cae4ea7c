package property

import (
	"fmt"
	"math"
)

// Axis is one orthogonal dimension of array configuration. A property list
// may hold at most one property per axis.
type Axis int

// Configuration axes.
const (
	ShapeAxis Axis = iota
	LayoutAxis
	MajorAxisAxis
	IndexTypeAxis
	AllocateAxis
	EfficientShapeAxis
	AllocatorAxis
	CheckedAxis
)

func (a Axis) String() string {
	switch a {
	case ShapeAxis:
		return "shape"
	case LayoutAxis:
		return "layout"
	case MajorAxisAxis:
		return "major_axis"
	case IndexTypeAxis:
		return "index_type"
	case AllocateAxis:
		return "allocate"
	case EfficientShapeAxis:
		return "efficient_shape"
	case AllocatorAxis:
		return "allocator"
	case CheckedAxis:
		return "checked"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// MajorAxis is the memory "append" convention: which axis is contiguous.
type MajorAxis int

// ColumnMajor makes axis 0 contiguous and the last axis outermost. It is
// the only supported convention.
const ColumnMajor MajorAxis = 0

func (m MajorAxis) String() string {
	if m == ColumnMajor {
		return "column"
	}
	return fmt.Sprintf("MajorAxis(%d)", int(m))
}

// ParseMajorAxis parses "column" (or "column_major").
func ParseMajorAxis(s string) (MajorAxis, error) {
	switch s {
	case "column", "column_major":
		return ColumnMajor, nil
	default:
		return 0, fmt.Errorf("%w: major axis %q", ErrUnsupported, s)
	}
}

// IndexType is the unsigned integer width used for extents and indices.
type IndexType int

// Supported index types. Uint is the platform's natural size type.
const (
	Uint IndexType = iota
	Uint8Index
	Uint16Index
	Uint32Index
	Uint64Index
)

// Valid reports whether t is a supported index type.
func (t IndexType) Valid() bool {
	return t >= Uint && t <= Uint64Index
}

// Max returns the largest extent representable by t.
func (t IndexType) Max() uint64 {
	switch t {
	case Uint8Index:
		return math.MaxUint8
	case Uint16Index:
		return math.MaxUint16
	case Uint32Index:
		return math.MaxUint32
	case Uint64Index:
		return math.MaxUint64
	default:
		return uint64(math.MaxUint)
	}
}

func (t IndexType) String() string {
	switch t {
	case Uint:
		return "uint"
	case Uint8Index:
		return "uint8"
	case Uint16Index:
		return "uint16"
	case Uint32Index:
		return "uint32"
	case Uint64Index:
		return "uint64"
	default:
		return fmt.Sprintf("IndexType(%d)", int(t))
	}
}

// ParseIndexType parses a name produced by IndexType.String.
func ParseIndexType(s string) (IndexType, error) {
	for t := Uint; t <= Uint64Index; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: index type %q", ErrUnsupported, s)
}

// Check verifies that extent is non-negative and representable by t.
func (t IndexType) Check(extent int) error {
	if extent < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeExtent, extent)
	}
	if uint64(extent) > t.Max() {
		return fmt.Errorf("%w: %d > %d (%s)", ErrExtentOverflow, extent, t.Max(), t)
	}
	return nil
}
