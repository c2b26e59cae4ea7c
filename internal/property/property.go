// Package property models array configuration as a list of properties, one
// per configuration axis, and resolves such a list into a Config.
//
// Example:
//
//	cfg, err := property.Resolve(
//		property.ShapeOf[float64](4, 4),
//		property.WithLayout(layout.PackedIncreasing),
//	)
package property

import (
	"fmt"
	"strings"

	"github.com/born-ml/ndarray/internal/alloc"
	"github.com/born-ml/ndarray/internal/layout"
)

// Property is one configuration choice. It belongs to exactly one Axis.
type Property interface {
	// Axis returns the configuration axis the property sets.
	Axis() Axis

	apply(c *Config) error
}

// prop is the single Property implementation.
type prop struct {
	axis Axis
	desc string
	set  func(c *Config) error
}

func (p prop) Axis() Axis { return p.axis }

func (p prop) String() string { return p.desc }

func (p prop) apply(c *Config) error { return p.set(c) }

// ShapeOf declares a static shape with element type T. Extents are listed
// axis 0 first; all must be positive.
func ShapeOf[T Element](dims ...int) Property {
	return ShapeWith(DataTypeOf[T](), dims...)
}

// ShapeWith is ShapeOf with a runtime element type.
func ShapeWith(dtype DataType, dims ...int) Property {
	dims = layout.Shape(dims).Clone()
	return prop{
		axis: ShapeAxis,
		desc: fmt.Sprintf("shape(%s%v)", dtype, dims),
		set: func(c *Config) error {
			if !dtype.Valid() {
				return fmt.Errorf("%w: element type %d", ErrUnsupported, int(dtype))
			}
			if err := layout.Shape(dims).Validate(); err != nil {
				return fmt.Errorf("%w: %w", ErrMalformedShape, err)
			}
			c.dtype = dtype
			c.order = len(dims)
			c.dims = dims
			c.shape = ShapeStatic
			return nil
		},
	}
}

// OrderOf declares a runtime-shape array of element type T with order n.
// Extents are supplied when the array is constructed.
func OrderOf[T Element](n int) Property {
	return OrderWith(DataTypeOf[T](), n)
}

// OrderWith is OrderOf with a runtime element type.
func OrderWith(dtype DataType, n int) Property {
	return prop{
		axis: ShapeAxis,
		desc: fmt.Sprintf("order(%s, %d)", dtype, n),
		set: func(c *Config) error {
			if !dtype.Valid() {
				return fmt.Errorf("%w: element type %d", ErrUnsupported, int(dtype))
			}
			if n < 1 {
				return fmt.Errorf("%w: order %d (must be >= 1)", ErrMalformedShape, n)
			}
			c.dtype = dtype
			c.order = n
			c.dims = nil
			c.shape = ShapeOrder
			return nil
		},
	}
}

// WithLayout selects the storage layout.
func WithLayout(kind layout.Kind) Property {
	return prop{
		axis: LayoutAxis,
		desc: "layout(" + kind.String() + ")",
		set: func(c *Config) error {
			s, err := layout.For(kind)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUnsupported, err)
			}
			c.layout = kind
			c.strategy = s
			return nil
		},
	}
}

// WithMajorAxis selects the memory append convention.
func WithMajorAxis(m MajorAxis) Property {
	return prop{
		axis: MajorAxisAxis,
		desc: "major_axis(" + m.String() + ")",
		set: func(c *Config) error {
			if m != ColumnMajor {
				return fmt.Errorf("%w: major axis %v", ErrUnsupported, m)
			}
			c.major = m
			return nil
		},
	}
}

// WithIndexType selects the integer width of extents and indices.
func WithIndexType(t IndexType) Property {
	return prop{
		axis: IndexTypeAxis,
		desc: "index_type(" + t.String() + ")",
		set: func(c *Config) error {
			if !t.Valid() {
				return fmt.Errorf("%w: index type %v", ErrUnsupported, t)
			}
			c.index = t
			return nil
		},
	}
}

// WithAllocate selects owning (true) or wrapping (false) heap arrays.
func WithAllocate(allocate bool) Property {
	return prop{
		axis: AllocateAxis,
		desc: fmt.Sprintf("allocate(%t)", allocate),
		set: func(c *Config) error {
			c.allocate = allocate
			return nil
		},
	}
}

// WithEfficientShape makes runtime-shape arrays omit their last extent.
func WithEfficientShape(efficient bool) Property {
	return prop{
		axis: EfficientShapeAxis,
		desc: fmt.Sprintf("efficient_shape(%t)", efficient),
		set: func(c *Config) error {
			c.efficient = efficient
			return nil
		},
	}
}

// WithAllocator selects the allocator of owning heap arrays.
func WithAllocator(a alloc.Allocator) Property {
	name := "<nil>"
	if a != nil {
		name = a.Name()
	}
	return prop{
		axis: AllocatorAxis,
		desc: "allocator(" + name + ")",
		set: func(c *Config) error {
			if a == nil {
				return fmt.Errorf("%w: nil allocator", ErrUnsupported)
			}
			c.allocator = a
			return nil
		},
	}
}

// WithChecked enables bounds and triangle checks on element access.
func WithChecked(checked bool) Property {
	return prop{
		axis: CheckedAxis,
		desc: fmt.Sprintf("checked(%t)", checked),
		set: func(c *Config) error {
			c.checked = checked
			return nil
		},
	}
}

// describe formats a property list for error messages.
func describe(props []Property) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		if s, ok := p.(fmt.Stringer); ok {
			parts = append(parts, s.String())
		} else {
			parts = append(parts, p.Axis().String())
		}
	}
	return strings.Join(parts, ", ")
}
