package array

import (
	"fmt"
	"slices"

	"github.com/born-ml/ndarray/internal/property"
)

// Dynamic is an array whose order comes from the configuration and whose
// extents are given at construction. The buffer is allocated and owned as
// for Heap, or wrapped with property.WithAllocate(false).
//
// With property.WithEfficientShape(true) the last extent is not stored:
// Extent panics for it and HasExtent reports false. Operations that need it
// infer it from Size().
//
// Example:
//
//	cfg := property.MustResolve(property.OrderOf[float32](2))
//	a, _ := array.NewDynamic[float32](cfg, 3, 4)
//	defer a.Release()
type Dynamic[T property.Element] struct {
	View[T]
	cfg property.Config
	buf buffer
}

// ResolveExtents validates extents for cfg and returns one extent per axis.
//
// No extents yields all zeros. Dense layouts need exactly one extent per
// axis. Packed layouts take at most one, the shared side length. Every
// extent must be representable by the configured index type, and the
// element count and its byte size must fit in an int.
func ResolveExtents(cfg property.Config, extents ...int) ([]int, error) {
	if !cfg.Resolved() {
		return nil, ErrUnresolved
	}
	if cfg.ShapeKind() == property.ShapeStatic {
		return nil, fmt.Errorf("%w: %s", ErrShapeStatic, cfg)
	}

	order := cfg.Order()
	full := make([]int, order)
	switch {
	case len(extents) == 0:
		return full, nil
	case cfg.Layout().IsPacked():
		if len(extents) > 1 {
			return nil, fmt.Errorf("%w: %d extents for packed layout (at most 1)", ErrExtentArity, len(extents))
		}
		for a := range full {
			full[a] = extents[0]
		}
	default:
		if len(extents) != order {
			return nil, fmt.Errorf("%w: %d extents for order %d", ErrExtentArity, len(extents), order)
		}
		copy(full, extents)
	}

	for a, e := range full {
		if err := cfg.IndexType().Check(e); err != nil {
			return nil, fmt.Errorf("axis %d: %w", a, err)
		}
	}
	if _, err := property.CheckSize(cfg.DType(), cfg.Layout(), order, full); err != nil {
		return nil, err
	}
	return full, nil
}

// NewDynamic returns a Dynamic array with the given extents, see
// ResolveExtents. Owning configurations allocate a zeroed buffer.
func NewDynamic[T property.Element](cfg property.Config, extents ...int) (*Dynamic[T], error) {
	if err := checkElement[T](cfg); err != nil {
		return nil, err
	}
	full, err := ResolveExtents(cfg, extents...)
	if err != nil {
		return nil, err
	}

	d := &Dynamic[T]{cfg: cfg, buf: borrowedBuffer{}}
	d.View = newView[T](cfg, d.stored(full), cfg.Strategy().Size(cfg.Order(), full), nil)
	if !cfg.Allocate() {
		return d, nil
	}

	buf, data, err := allocate[T](cfg, d.size)
	if err != nil {
		return nil, err
	}
	d.buf = buf
	d.data = data
	return d, nil
}

// NewDynamicFrom returns an owning Dynamic array initialized from list.
func NewDynamicFrom[T property.Element](cfg property.Config, list Nested[T], extents ...int) (*Dynamic[T], error) {
	if !cfg.Allocate() {
		return nil, fmt.Errorf("%w: initializer list needs an owning configuration", ErrNoBuffer)
	}
	d, err := NewDynamic[T](cfg, extents...)
	if err != nil {
		return nil, err
	}
	if err := d.Assign(list); err != nil {
		d.Release()
		return nil, err
	}
	return d, nil
}

// WrapDynamic returns a wrapping Dynamic array over data. cfg must not
// allocate.
func WrapDynamic[T property.Element](cfg property.Config, data []T, extents ...int) (*Dynamic[T], error) {
	if cfg.Resolved() && cfg.Allocate() {
		return nil, ErrWrapOwning
	}
	d, err := NewDynamic[T](cfg, extents...)
	if err != nil {
		return nil, err
	}
	if err := d.SetData(data); err != nil {
		return nil, err
	}
	return d, nil
}

// Config returns the configuration the array was built from.
func (d *Dynamic[T]) Config() property.Config { return d.cfg }

// Owns reports whether the array frees its buffer on Release.
func (d *Dynamic[T]) Owns() bool { return d.buf.owned() }

// SetExtent changes the extent of one axis, as Resize with every other
// extent kept. On packed layouts all axes share the new extent.
func (d *Dynamic[T]) SetExtent(axis, extent int) error {
	if axis < 0 || axis >= d.order {
		return fmt.Errorf("%w: axis %d of order %d", ErrAxisRange, axis, d.order)
	}
	if !d.HasExtent(axis) {
		return fmt.Errorf("%w: axis %d", ErrExtentNotStored, axis)
	}
	if d.Layout().IsPacked() {
		return d.Resize(extent)
	}
	full := slices.Clone(d.shape())
	full[axis] = extent
	return d.Resize(full...)
}

// Resize changes the extents, validated as by NewDynamic.
//
// An owning array moves to a new zeroed allocation and keeps every element
// whose index exists in both shapes. A wrapping array keeps its buffer,
// which must hold the new size (ErrBufferTooSmall otherwise).
func (d *Dynamic[T]) Resize(extents ...int) error {
	full, err := ResolveExtents(d.cfg, extents...)
	if err != nil {
		return err
	}
	next := newView[T](d.cfg, d.stored(full), d.cfg.Strategy().Size(d.order, full), nil)

	if !d.buf.owned() {
		data, err := checkBuffer(d.data, next.size)
		if err != nil {
			return err
		}
		next.data = data
		d.View = next
		return nil
	}

	buf, data, err := allocate[T](d.cfg, next.size)
	if err != nil {
		return err
	}
	next.data = data

	if d.data != nil {
		prev := d.View
		prevShape := prev.shape()
		next.Walk(func(idx []int, off int) bool {
			if prev.strategy.Contains(prev.order, prevShape, idx) {
				data[off] = prev.data[prev.strategy.Offset(prev.order, prevShape, idx)]
			}
			return true
		})
	}

	d.buf.release()
	d.buf = buf
	d.View = next
	return nil
}

// SetData points a wrapping array at data, which must hold at least Size()
// elements. A nil data leaves the array without a buffer. Owning arrays
// return ErrOwned.
func (d *Dynamic[T]) SetData(data []T) error {
	if d.buf.owned() {
		return ErrOwned
	}
	data, err := checkBuffer(data, d.size)
	if err != nil {
		return err
	}
	d.data = data
	return nil
}

// Release frees an owned buffer. A wrapped buffer is only dropped.
func (d *Dynamic[T]) Release() {
	d.buf.release()
	d.data = nil
}

// Clone returns a copy of the array: a new allocation for owning arrays,
// another wrapper over the same buffer for wrapping arrays.
func (d *Dynamic[T]) Clone() (*Dynamic[T], error) {
	if !d.buf.owned() {
		return &Dynamic[T]{View: d.View, cfg: d.cfg, buf: borrowedBuffer{}}, nil
	}

	clone := &Dynamic[T]{View: d.View, cfg: d.cfg}
	buf, data, err := allocate[T](d.cfg, d.size)
	if err != nil {
		return nil, err
	}
	copy(data, d.data)
	clone.buf = buf
	clone.data = data
	clone.extents = slices.Clone(d.extents)
	return clone, nil
}

// stored returns the extents the array keeps: all of them, or all but the
// last for efficient shapes.
func (d *Dynamic[T]) stored(full []int) []int {
	if d.cfg.EfficientShape() {
		return full[:len(full)-1 : len(full)-1]
	}
	return full
}
