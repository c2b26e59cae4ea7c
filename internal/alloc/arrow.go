package alloc

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ArrowAllocator adapts an Apache Arrow memory allocator. Arrow allocators
// return 64-byte aligned buffers and may be backed by C memory, checked
// wrappers or pools.
type ArrowAllocator struct {
	*tracker
	mem memory.Allocator
}

// Arrow wraps mem. A nil mem selects memory.DefaultAllocator.
//
// Example:
//
//	checked := memory.NewCheckedAllocator(memory.NewGoAllocator())
//	a := alloc.Arrow(checked)
func Arrow(mem memory.Allocator) *ArrowAllocator {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &ArrowAllocator{tracker: newTracker("arrow"), mem: mem}
}

// Name implements Allocator.
func (a *ArrowAllocator) Name() string { return a.name }

// Allocate implements Allocator. Arrow allocators signal exhaustion by
// panicking; the panic is reported as ErrOutOfMemory.
func (a *ArrowAllocator) Allocate(nbytes int) (buf []byte, err error) {
	if nbytes < 0 {
		err = fmt.Errorf("%w: %d", ErrNegativeSize, nbytes)
		a.failed(nbytes, err)
		return nil, err
	}
	if nbytes == 0 {
		return []byte{}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("%w: arrow allocator: %v", ErrOutOfMemory, r)
			a.failed(nbytes, err)
		}
	}()

	buf = a.mem.Allocate(nbytes)
	if len(buf) < nbytes {
		err = fmt.Errorf("%w: arrow allocator returned %d of %d bytes", ErrOutOfMemory, len(buf), nbytes)
		a.failed(nbytes, err)
		return nil, err
	}
	clear(buf)
	a.allocated(nbytes)
	return buf, nil
}

// Free implements Allocator.
func (a *ArrowAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	a.mem.Free(buf)
	a.freed(len(buf))
}
