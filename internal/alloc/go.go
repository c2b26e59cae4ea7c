package alloc

import "fmt"

// GoAllocator allocates from the Go runtime heap. Freed buffers are left
// to the garbage collector.
type GoAllocator struct {
	*tracker
}

// Go returns a new runtime heap allocator.
func Go() *GoAllocator {
	return &GoAllocator{tracker: newTracker("go")}
}

// Name implements Allocator.
func (g *GoAllocator) Name() string { return g.name }

// Allocate implements Allocator. Requests the runtime refuses to make (larger
// than the heap can address) are reported as ErrOutOfMemory.
func (g *GoAllocator) Allocate(nbytes int) (buf []byte, err error) {
	if nbytes < 0 {
		err = fmt.Errorf("%w: %d", ErrNegativeSize, nbytes)
		g.failed(nbytes, err)
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("%w: go allocator: %v", ErrOutOfMemory, r)
			g.failed(nbytes, err)
		}
	}()

	buf = make([]byte, nbytes)
	g.allocated(nbytes)
	return buf, nil
}

// Free implements Allocator.
func (g *GoAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	g.freed(len(buf))
}
