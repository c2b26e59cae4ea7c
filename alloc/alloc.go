// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package alloc provides the allocators behind owning heap arrays.
//
// Every allocator keeps statistics and exports Prometheus metrics labelled
// with its name.
package alloc

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/born-ml/ndarray/internal/alloc"
)

// Allocator hands out and takes back byte buffers.
type Allocator = alloc.Allocator

// Stats is a snapshot of allocator activity.
type Stats = alloc.Stats

// ErrOutOfMemory is returned when an allocation cannot be satisfied.
var ErrOutOfMemory = alloc.ErrOutOfMemory

// Default returns the allocator used when none is configured.
func Default() Allocator { return alloc.Default }

// Go returns an allocator backed by the Go heap.
func Go() *alloc.GoAllocator { return alloc.Go() }

// Arrow returns an allocator backed by an Arrow memory allocator. A nil mem
// selects memory.DefaultAllocator.
func Arrow(mem memory.Allocator) *alloc.ArrowAllocator { return alloc.Arrow(mem) }

// Limit caps the live bytes handed out by inner.
func Limit(inner Allocator, maxBytes int) *alloc.LimitAllocator { return alloc.Limit(inner, maxBytes) }
