// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/born-ml/ndarray/alloc"
	"github.com/born-ml/ndarray/array"
	"github.com/born-ml/ndarray/codec"
	"github.com/born-ml/ndarray/layout"
	"github.com/born-ml/ndarray/property"
)

// TestVariantsImplementArray verifies that every variant satisfies Array.
func TestVariantsImplementArray(_ *testing.T) {
	var _ array.Array[float32] = (*array.Fixed[float32])(nil)
	var _ array.Array[float32] = (*array.Heap[float32])(nil)
	var _ array.Array[float32] = (*array.Dynamic[float32])(nil)
}

// TestPublicAPI exercises construction, access and serialization through
// the public packages.
func TestPublicAPI(t *testing.T) {
	cfg, err := property.Resolve(
		property.OrderOf[int32](2),
		property.WithLayout(layout.PackedIncreasing),
		property.WithAllocator(alloc.Limit(alloc.Go(), 1024)),
	)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	a, err := array.NewDynamic[int32](cfg, 3)
	if err != nil {
		t.Fatalf("NewDynamic failed: %v", err)
	}
	defer a.Release()

	if got := a.Size(); got != layout.Size(layout.PackedIncreasing, 2, []int{3}) {
		t.Errorf("Size() = %d, want 6", got)
	}
	a.Set(7, 1, 2)
	if got := a.At(1, 2); got != 7 {
		t.Errorf("At(1, 2) = %d, want 7", got)
	}

	var buf bytes.Buffer
	if err := codec.Write[int32](&buf, a); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	back, err := codec.ReadDynamic[int32](&buf)
	if err != nil {
		t.Fatalf("ReadDynamic failed: %v", err)
	}
	defer back.Release()
	if got := back.At(1, 2); got != 7 {
		t.Errorf("decoded At(1, 2) = %d, want 7", got)
	}
}

// TestPublicErrors verifies that sentinel errors are shared with the
// implementation.
func TestPublicErrors(t *testing.T) {
	_, err := property.Resolve(property.WithChecked(true), property.WithChecked(false))
	if !errors.Is(err, property.ErrDuplicateProperty) {
		t.Errorf("Resolve error = %v, want ErrDuplicateProperty", err)
	}

	cfg := property.MustResolve(property.ShapeOf[float64](2, 2))
	if _, err := array.NewDynamic[float64](cfg, 2, 2); !errors.Is(err, array.ErrShapeStatic) {
		t.Errorf("NewDynamic error = %v, want ErrShapeStatic", err)
	}

	owning := property.MustResolve(property.ShapeOf[float64](2))
	if _, err := array.WrapHeap(owning, make([]float64, 2)); !errors.Is(err, array.ErrWrapOwning) {
		t.Errorf("WrapHeap error = %v, want ErrWrapOwning", err)
	}
}
