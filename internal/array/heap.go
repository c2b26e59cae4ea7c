package array

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/property"
)

// Heap is a fixed-shape array whose buffer is one heap block. With
// property.WithAllocate(true) (the default) the array allocates the block
// from the configured allocator and frees it on Release. With
// WithAllocate(false) it wraps a caller buffer, or none, and never frees.
//
// Element access goes through a Fixed placed over the current buffer.
type Heap[T property.Element] struct {
	Fixed[T]
	buf buffer
}

// NewHeap returns a Heap array. Owning configurations allocate a zeroed
// buffer; an allocation failure wraps alloc.ErrOutOfMemory and no array is
// returned. Wrapping configurations start without a buffer (Data() == nil).
func NewHeap[T property.Element](cfg property.Config) (*Heap[T], error) {
	if err := checkElement[T](cfg); err != nil {
		return nil, err
	}
	if !cfg.Static() {
		return nil, fmt.Errorf("%w: %s", ErrShapeNotStatic, cfg)
	}

	h := &Heap[T]{
		Fixed: Fixed[T]{View: newView[T](cfg, cfg.Dims(), cfg.Size(), nil), cfg: cfg},
		buf:   borrowedBuffer{},
	}
	if !cfg.Allocate() {
		return h, nil
	}

	buf, data, err := allocate[T](cfg, h.size)
	if err != nil {
		return nil, err
	}
	h.buf = buf
	h.data = data
	return h, nil
}

// NewHeapFrom returns an owning Heap array initialized from list.
func NewHeapFrom[T property.Element](cfg property.Config, list Nested[T]) (*Heap[T], error) {
	if !cfg.Allocate() {
		return nil, fmt.Errorf("%w: initializer list needs an owning configuration", ErrNoBuffer)
	}
	h, err := NewHeap[T](cfg)
	if err != nil {
		return nil, err
	}
	if err := h.Assign(list); err != nil {
		h.Release()
		return nil, err
	}
	return h, nil
}

// WrapHeap returns a wrapping Heap array over data. cfg must not allocate.
func WrapHeap[T property.Element](cfg property.Config, data []T) (*Heap[T], error) {
	if cfg.Resolved() && cfg.Allocate() {
		return nil, ErrWrapOwning
	}
	h, err := NewHeap[T](cfg)
	if err != nil {
		return nil, err
	}
	if err := h.SetData(data); err != nil {
		return nil, err
	}
	return h, nil
}

// Owns reports whether the array frees its buffer on Release.
func (h *Heap[T]) Owns() bool { return h.buf.owned() }

// SetData points a wrapping array at data, which must hold at least Size()
// elements. A nil data leaves the array without a buffer. Owning arrays
// return ErrOwned.
func (h *Heap[T]) SetData(data []T) error {
	if h.buf.owned() {
		return ErrOwned
	}
	data, err := checkBuffer(data, h.size)
	if err != nil {
		return err
	}
	h.data = data
	return nil
}

// Release frees an owned buffer. A wrapped buffer is only dropped, its
// contents are left untouched. Release is idempotent.
func (h *Heap[T]) Release() {
	h.buf.release()
	h.data = nil
}

// Clone returns a copy of the array. An owning array is copied into a new
// allocation; a wrapping array is cloned as another wrapper over the same
// buffer.
func (h *Heap[T]) Clone() (*Heap[T], error) {
	if !h.buf.owned() {
		return &Heap[T]{Fixed: h.Fixed, buf: borrowedBuffer{}}, nil
	}
	clone, err := NewHeap[T](h.cfg)
	if err != nil {
		return nil, err
	}
	copy(clone.data, h.data)
	return clone, nil
}
