// Package alloc provides the byte allocators that back owning heap arrays.
//
// An Allocator hands out zeroed byte buffers and takes them back. The
// array package reinterprets those buffers as element slices with SliceOf.
// Every allocator in this package records Stats and exports Prometheus
// metrics labelled with its name.
package alloc

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// Errors returned by allocators.
var (
	// ErrOutOfMemory is returned when an allocator cannot satisfy a request.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrNegativeSize is returned for a negative request size.
	ErrNegativeSize = errors.New("alloc: negative allocation size")
)

// Allocator is a source of zeroed byte buffers.
//
// Free must only be called with a buffer returned by Allocate on the same
// allocator, exactly once. Freeing a nil or empty buffer is a no-op.
type Allocator interface {
	// Name identifies the allocator in logs and metrics.
	Name() string

	// Allocate returns a zeroed buffer of exactly nbytes bytes. Failures
	// wrap ErrOutOfMemory.
	Allocate(nbytes int) ([]byte, error)

	// Free returns buf to the allocator.
	Free(buf []byte)
}

// StatsReporter is implemented by allocators that track their usage.
type StatsReporter interface {
	Stats() Stats
}

// Default is the allocator used when none is configured.
var Default Allocator = Go()

// SizeOf returns the number of bytes needed to store n values of type T.
// A byte count that does not fit in an int fails with ErrOutOfMemory.
func SizeOf[T any](n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %d values", ErrNegativeSize, n)
	}
	var zero T
	if size := int(unsafe.Sizeof(zero)); size > 0 && n > math.MaxInt/size {
		return 0, fmt.Errorf("%w: %d values of %d bytes overflow int", ErrOutOfMemory, n, size)
	}
	return sizeOf[T](n), nil
}

func sizeOf[T any](n int) int {
	var zero T
	return n * int(unsafe.Sizeof(zero))
}

// SliceOf reinterprets buf as a slice of n values of type T.
// It panics if buf holds fewer than n values.
//
// Example:
//
//	n, _ := alloc.SizeOf[float64](6)
//	buf, _ := alloc.Default.Allocate(n)
//	data := alloc.SliceOf[float64](buf, 6)
func SliceOf[T any](buf []byte, n int) []T {
	if n == 0 {
		return []T{}
	}
	if need := sizeOf[T](n); len(buf) < need {
		panic(fmt.Sprintf("alloc: buffer of %d bytes cannot hold %d", len(buf), need))
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation, length checked above
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
}

// BytesOf reinterprets data as its backing bytes.
func BytesOf[T any](data []T) []byte {
	if len(data) == 0 {
		return []byte{}
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation of the same memory
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), sizeOf[T](len(data)))
}
