package array

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/born-ml/ndarray/internal/alloc"
	"github.com/born-ml/ndarray/internal/property"
)

// buffer is the storage behind a heap array: either owned (allocated from
// an allocator and freed on release) or borrowed (supplied by the caller
// and never freed).
type buffer interface {
	owned() bool
	release()
}

// ownedBuffer is an allocation the array must return to its allocator.
type ownedBuffer struct {
	raw       []byte
	allocator alloc.Allocator
}

func (b *ownedBuffer) owned() bool { return true }

func (b *ownedBuffer) release() {
	if b.raw == nil {
		return
	}
	b.allocator.Free(b.raw)
	b.raw = nil
}

// borrowedBuffer marks a caller-supplied (or absent) buffer.
type borrowedBuffer struct{}

func (borrowedBuffer) owned() bool { return false }

func (borrowedBuffer) release() {}

// allocate returns a zeroed buffer of n elements from the allocator of cfg.
// Failures wrap alloc.ErrOutOfMemory.
func allocate[T property.Element](cfg property.Config, n int) (*ownedBuffer, []T, error) {
	a := cfg.Allocator()
	nbytes, err := alloc.SizeOf[T](n)
	if err != nil {
		return nil, nil, fmt.Errorf("array: allocating %d elements of %s: %w", n, cfg.DType(), err)
	}
	raw, err := a.Allocate(nbytes)
	if err != nil {
		return nil, nil, fmt.Errorf("array: allocating %d elements of %s: %w", n, cfg.DType(), err)
	}
	log.Debug().Str("allocator", a.Name()).Int("elements", n).Str("dtype", cfg.DType().String()).Msg("array buffer allocated")
	return &ownedBuffer{raw: raw, allocator: a}, alloc.SliceOf[T](raw, n), nil
}

// checkElement verifies that cfg is resolved and holds elements of type T.
func checkElement[T property.Element](cfg property.Config) error {
	if !cfg.Resolved() {
		return ErrUnresolved
	}
	if want := property.DataTypeOf[T](); cfg.DType() != want {
		return fmt.Errorf("%w: configured %s, got %s", ErrElementType, cfg.DType(), want)
	}
	return nil
}

// checkBuffer verifies that data can back size elements. A nil buffer is
// accepted as "no buffer".
func checkBuffer[T any](data []T, size int) ([]T, error) {
	if data == nil {
		return nil, nil
	}
	if len(data) < size {
		return nil, fmt.Errorf("%w: %d elements, need %d", ErrBufferTooSmall, len(data), size)
	}
	return data[:size:size], nil
}
