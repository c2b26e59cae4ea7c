package property

import (
	"fmt"
	"math"
	"strings"

	"github.com/born-ml/ndarray/internal/alloc"
	"github.com/born-ml/ndarray/internal/layout"
)

// Defaults applied to axes without a property.
const (
	DefaultLayout         = layout.Dense
	DefaultMajorAxis      = ColumnMajor
	DefaultIndexType      = Uint
	DefaultAllocate       = true
	DefaultEfficientShape = false
	DefaultChecked        = false
	DefaultElement        = Float64
)

// ShapeKind tells how the shape axis was resolved.
type ShapeKind int

// Shape kinds.
const (
	// ShapeDefault is a single axis of extent 1 (no shape property given).
	ShapeDefault ShapeKind = iota
	// ShapeStatic is a shape with every extent fixed (ShapeOf).
	ShapeStatic
	// ShapeOrder fixes the order only (OrderOf).
	ShapeOrder
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeDefault:
		return "default"
	case ShapeStatic:
		return "static"
	case ShapeOrder:
		return "order"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Config is a resolved array configuration: one value per axis.
// A Config is immutable and may be shared by any number of arrays.
type Config struct {
	dtype     DataType
	order     int
	dims      []int
	shape     ShapeKind
	layout    layout.Kind
	strategy  layout.Strategy
	major     MajorAxis
	index     IndexType
	allocate  bool
	efficient bool
	checked   bool
	allocator alloc.Allocator
}

func defaultConfig() Config {
	return Config{
		dtype:     DefaultElement,
		order:     1,
		dims:      []int{1},
		shape:     ShapeDefault,
		layout:    DefaultLayout,
		strategy:  layout.MustFor(DefaultLayout),
		major:     DefaultMajorAxis,
		index:     DefaultIndexType,
		allocate:  DefaultAllocate,
		efficient: DefaultEfficientShape,
		checked:   DefaultChecked,
		allocator: alloc.Default,
	}
}

// Resolve builds a Config from props. Axes without a property take their
// default. Two properties on the same axis fail with ErrDuplicateProperty.
//
// Example:
//
//	cfg, err := property.Resolve(property.OrderOf[float32](2), property.WithAllocate(false))
func Resolve(props ...Property) (Config, error) {
	seen := make(map[Axis]Property, len(props))
	for i, p := range props {
		if p == nil {
			return Config{}, fmt.Errorf("%w: at position %d", ErrNilProperty, i)
		}
		if prev, dup := seen[p.Axis()]; dup {
			return Config{}, fmt.Errorf("%w: axis %s (%s)", ErrDuplicateProperty, p.Axis(), describe([]Property{prev, p}))
		}
		seen[p.Axis()] = p
	}

	c := defaultConfig()
	for _, p := range props {
		if err := p.apply(&c); err != nil {
			return Config{}, fmt.Errorf("%s: %w", p.Axis(), err)
		}
	}

	if c.shape != ShapeOrder {
		if c.layout.IsPacked() && !layout.Shape(c.dims).Square() {
			return Config{}, fmt.Errorf("%w: %v", ErrNonSquare, c.dims)
		}
		for _, d := range c.dims {
			if err := c.index.Check(d); err != nil {
				return Config{}, fmt.Errorf("shape: %w", err)
			}
		}
		if _, err := CheckSize(c.dtype, c.layout, c.order, c.dims); err != nil {
			return Config{}, fmt.Errorf("shape: %w", err)
		}
	}
	return c, nil
}

// CheckSize returns the number of elements stored for the given layout,
// order and extents. It fails with ErrExtentOverflow when the count, or its
// size in bytes for dtype, does not fit in an int.
func CheckSize(dtype DataType, kind layout.Kind, order int, extents []int) (int, error) {
	n, err := layout.CheckedSize(kind, order, extents)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExtentOverflow, err)
	}
	if n > math.MaxInt/dtype.Size() {
		return 0, fmt.Errorf("%w: %d elements of %s exceed the addressable bytes", ErrExtentOverflow, n, dtype)
	}
	return n, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve(props ...Property) Config {
	c, err := Resolve(props...)
	if err != nil {
		panic(err)
	}
	return c
}

// Resolved reports whether c was produced by Resolve. The zero Config is
// not resolved.
func (c Config) Resolved() bool { return c.strategy != nil }

// DType returns the element type.
func (c Config) DType() DataType { return c.dtype }

// Order returns the number of axes.
func (c Config) Order() int { return c.order }

// Dims returns a copy of the static extents, or nil for runtime shapes.
func (c Config) Dims() []int {
	if c.shape == ShapeOrder {
		return nil
	}
	return layout.Shape(c.dims).Clone()
}

// Static reports whether every extent is known from the configuration.
func (c Config) Static() bool { return c.shape != ShapeOrder }

// ShapeKind tells how the shape axis was resolved.
func (c Config) ShapeKind() ShapeKind { return c.shape }

// Layout returns the storage layout.
func (c Config) Layout() layout.Kind { return c.layout }

// Strategy returns the layout strategy selected for the configuration.
func (c Config) Strategy() layout.Strategy { return c.strategy }

// MajorAxis returns the memory append convention.
func (c Config) MajorAxis() MajorAxis { return c.major }

// IndexType returns the extent and index width.
func (c Config) IndexType() IndexType { return c.index }

// Allocate reports whether heap arrays own their buffer.
func (c Config) Allocate() bool { return c.allocate }

// EfficientShape reports whether runtime-shape arrays omit the last extent.
func (c Config) EfficientShape() bool { return c.efficient }

// Checked reports whether element access is bounds checked.
func (c Config) Checked() bool { return c.checked }

// Allocator returns the allocator of owning heap arrays.
func (c Config) Allocator() alloc.Allocator { return c.allocator }

// Size returns the number of stored elements of a static shape, and 0 for
// runtime shapes.
func (c Config) Size() int {
	if c.shape == ShapeOrder {
		return 0
	}
	return c.strategy.Size(c.order, c.dims)
}

// String describes the configuration, e.g.
// "float64(3x4) layout=dense axis=column index=uint allocate=true".
func (c Config) String() string {
	var b strings.Builder
	b.WriteString(c.dtype.String())
	if c.shape == ShapeOrder {
		fmt.Fprintf(&b, "(order %d)", c.order)
	} else {
		dims := make([]string, len(c.dims))
		for i, d := range c.dims {
			dims[i] = fmt.Sprint(d)
		}
		fmt.Fprintf(&b, "(%s)", strings.Join(dims, "x"))
	}
	fmt.Fprintf(&b, " layout=%s axis=%s index=%s allocate=%t", c.layout, c.major, c.index, c.allocate)
	if c.efficient {
		b.WriteString(" efficient_shape=true")
	}
	if c.checked {
		b.WriteString(" checked=true")
	}
	if c.allocator != nil && c.allocator != alloc.Default {
		fmt.Fprintf(&b, " allocator=%s", c.allocator.Name())
	}
	return b.String()
}
