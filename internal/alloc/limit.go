package alloc

import (
	"fmt"
	"sync"
)

// LimitAllocator rejects requests that would raise the bytes held through
// it above a fixed budget.
type LimitAllocator struct {
	*tracker
	inner Allocator
	max   int

	mu   sync.Mutex
	used int
}

// Limit returns an allocator that forwards to inner while at most maxBytes
// are outstanding. A nil inner selects Default.
func Limit(inner Allocator, maxBytes int) *LimitAllocator {
	if inner == nil {
		inner = Default
	}
	return &LimitAllocator{
		tracker: newTracker("limit(" + inner.Name() + ")"),
		inner:   inner,
		max:     maxBytes,
	}
}

// Name implements Allocator.
func (l *LimitAllocator) Name() string { return l.name }

// Max returns the budget in bytes.
func (l *LimitAllocator) Max() int { return l.max }

// Used returns the bytes currently held through l.
func (l *LimitAllocator) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// Allocate implements Allocator.
func (l *LimitAllocator) Allocate(nbytes int) ([]byte, error) {
	if nbytes < 0 {
		err := fmt.Errorf("%w: %d", ErrNegativeSize, nbytes)
		l.failed(nbytes, err)
		return nil, err
	}

	l.mu.Lock()
	if l.used+nbytes > l.max {
		used := l.used
		l.mu.Unlock()
		err := fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, nbytes, used, l.max)
		l.failed(nbytes, err)
		return nil, err
	}
	l.used += nbytes
	l.mu.Unlock()

	buf, err := l.inner.Allocate(nbytes)
	if err != nil {
		l.mu.Lock()
		l.used -= nbytes
		l.mu.Unlock()
		l.failed(nbytes, err)
		return nil, err
	}
	l.allocated(nbytes)
	return buf, nil
}

// Free implements Allocator.
func (l *LimitAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	l.inner.Free(buf)

	l.mu.Lock()
	l.used -= len(buf)
	l.mu.Unlock()
	l.freed(len(buf))
}
