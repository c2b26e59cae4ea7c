// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package codec serializes arrays as CBOR snapshots.
package codec

import (
	"io"

	"github.com/born-ml/ndarray/array"
	"github.com/born-ml/ndarray/internal/codec"
	"github.com/born-ml/ndarray/property"
)

// Header describes a snapshot without its elements.
type Header = codec.Header

// Codec errors.
var (
	ErrCorrupt       = codec.ErrCorrupt
	ErrDTypeMismatch = codec.ErrDTypeMismatch
	ErrShapeMismatch = codec.ErrShapeMismatch
	ErrNoData        = codec.ErrNoData

	ErrChecksumMismatch = codec.ErrChecksumMismatch
)

// Encode returns the snapshot of a.
func Encode[T property.Element](a array.Array[T]) ([]byte, error) { return codec.Encode[T](a) }

// Write writes the snapshot of a to w.
func Write[T property.Element](w io.Writer, a array.Array[T]) error { return codec.Write[T](w, a) }

// Describe decodes and validates the header of a snapshot.
func Describe(b []byte) (Header, error) { return codec.Describe(b) }

// DecodeDynamic decodes a snapshot into a new Dynamic array.
func DecodeDynamic[T property.Element](b []byte, props ...property.Property) (*array.Dynamic[T], error) {
	return codec.DecodeDynamic[T](b, props...)
}

// ReadDynamic is DecodeDynamic reading from r.
func ReadDynamic[T property.Element](r io.Reader, props ...property.Property) (*array.Dynamic[T], error) {
	return codec.ReadDynamic[T](r, props...)
}

// DecodeInto decodes a snapshot into an existing array.
func DecodeInto[T property.Element](b []byte, a array.Array[T]) error { return codec.DecodeInto[T](b, a) }
