// Package codec serializes arrays as CBOR snapshots.
//
// A snapshot records the element type, layout, order and stored extents of
// an array together with its buffer in storage order. Elements are packed
// little-endian into a single CBOR byte string, so every element type,
// complex and bool included, round-trips bit for bit.
package codec

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/layout"
	"github.com/born-ml/ndarray/internal/property"
)

// Errors returned by the codec.
var (
	// ErrCorrupt is returned for snapshots that do not decode or are
	// inconsistent with themselves.
	ErrCorrupt = errors.New("codec: corrupt snapshot")

	// ErrDTypeMismatch is returned when decoding into a different element
	// type than the one recorded.
	ErrDTypeMismatch = errors.New("codec: element type mismatch")

	// ErrShapeMismatch is returned when decoding into an array of another
	// layout or shape.
	ErrShapeMismatch = errors.New("codec: shape mismatch")

	// ErrNoData is returned when encoding an array without a buffer.
	ErrNoData = errors.New("codec: array has no buffer")

	// ErrChecksumMismatch is returned when the element bytes do not match
	// the recorded checksum.
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
)

// Header describes a snapshot without its elements.
type Header struct {
	DType     string `cbor:"dtype"`
	Layout    string `cbor:"layout"`
	Order     int    `cbor:"order"`
	Extents   []int  `cbor:"extents"`
	Efficient bool   `cbor:"efficient,omitempty"`
	Size      int    `cbor:"size"`
}

type snapshot struct {
	Header
	Data     []byte `cbor:"data"`
	Checksum []byte `cbor:"sha256,omitempty"`
}

var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// Encode returns the snapshot of a.
func Encode[T property.Element](a array.Array[T]) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes the snapshot of a to w.
func Write[T property.Element](w io.Writer, a array.Array[T]) error {
	data := a.Data()
	if data == nil && a.Size() > 0 {
		return ErrNoData
	}

	raw, err := binary.Append(nil, binary.LittleEndian, data[:a.Size()])
	if err != nil {
		return fmt.Errorf("codec: packing elements: %w", err)
	}

	extents := a.Extents()
	snap := snapshot{
		Header: Header{
			DType:     a.DType().String(),
			Layout:    a.Layout().String(),
			Order:     a.Order(),
			Extents:   extents,
			Efficient: len(extents) < a.Order(),
			Size:      a.Size(),
		},
		Data:     raw,
		Checksum: checksum(raw),
	}
	if err := encMode.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("codec: encoding snapshot: %w", err)
	}
	return nil
}

// Describe decodes the header of a snapshot and checks its consistency.
func Describe(b []byte) (Header, error) {
	snap, err := decode(bytes.NewReader(b))
	if err != nil {
		return Header{}, err
	}
	return snap.Header, nil
}

// DecodeDynamic decodes a snapshot into a new Dynamic array. The order,
// layout and efficient-shape setting come from the snapshot; props may add
// any other property (allocator, checked, index type, allocate). A
// wrapping configuration receives a Go-allocated buffer.
func DecodeDynamic[T property.Element](b []byte, props ...property.Property) (*array.Dynamic[T], error) {
	return ReadDynamic[T](bytes.NewReader(b), props...)
}

// ReadDynamic is DecodeDynamic reading from r.
func ReadDynamic[T property.Element](r io.Reader, props ...property.Property) (*array.Dynamic[T], error) {
	snap, err := decode(r)
	if err != nil {
		return nil, err
	}
	if want := property.DataTypeOf[T]().String(); snap.DType != want {
		return nil, fmt.Errorf("%w: snapshot holds %s, decoding %s", ErrDTypeMismatch, snap.DType, want)
	}
	kind, err := layout.ParseKind(snap.Layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	all := append([]property.Property{
		property.OrderOf[T](snap.Order),
		property.WithLayout(kind),
		property.WithEfficientShape(snap.Efficient),
	}, props...)
	cfg, err := property.Resolve(all...)
	if err != nil {
		return nil, err
	}

	extents, err := constructionExtents(kind, snap.Header)
	if err != nil {
		return nil, err
	}
	d, err := array.NewDynamic[T](cfg, extents...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if !d.Owns() {
		if err := d.SetData(make([]T, d.Size())); err != nil {
			return nil, err
		}
	}
	if err := unpack(snap.Data, d.Data()); err != nil {
		d.Release()
		return nil, err
	}
	return d, nil
}

// DecodeInto decodes a snapshot into an existing array of the same element
// type, layout and size.
func DecodeInto[T property.Element](b []byte, a array.Array[T]) error {
	snap, err := decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	if snap.DType != a.DType().String() {
		return fmt.Errorf("%w: snapshot holds %s, array holds %s", ErrDTypeMismatch, snap.DType, a.DType())
	}
	if snap.Layout != a.Layout().String() || snap.Order != a.Order() || snap.Size != a.Size() ||
		!sameExtents(snap.Extents, a.Extents()) {
		return fmt.Errorf("%w: snapshot %s order %d extents %v, array %s order %d extents %v", ErrShapeMismatch,
			snap.Layout, snap.Order, snap.Extents, a.Layout(), a.Order(), a.Extents())
	}
	if a.Data() == nil && a.Size() > 0 {
		return array.ErrNoBuffer
	}
	return unpack(snap.Data, a.Data()[:a.Size()])
}

// sameExtents reports whether two extent lists of arrays with equal order
// and size describe the same shape. One of them may omit the last extent.
func sameExtents(a, b layout.Shape) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(b)-len(a) > 1 {
		return false
	}
	return a.Equal(b[:len(a)])
}

func decode(r io.Reader) (snapshot, error) {
	var snap snapshot
	if err := decMode.NewDecoder(r).Decode(&snap); err != nil {
		return snapshot{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	dtype, err := property.ParseDataType(snap.DType)
	if err != nil {
		return snapshot{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if snap.Order < 1 {
		return snapshot{}, fmt.Errorf("%w: order %d", ErrCorrupt, snap.Order)
	}
	if n := len(snap.Extents); n != snap.Order && !(snap.Efficient && n == snap.Order-1) {
		return snapshot{}, fmt.Errorf("%w: %d extents for order %d", ErrCorrupt, n, snap.Order)
	}
	if snap.Size < 0 || snap.Size > len(snap.Data) || len(snap.Data) != snap.Size*dtype.Size() {
		return snapshot{}, fmt.Errorf("%w: %d data bytes for %d elements of %s", ErrCorrupt, len(snap.Data), snap.Size, dtype)
	}
	if err := checkGeometry(snap.Header); err != nil {
		return snapshot{}, err
	}
	if snap.Checksum != nil && !bytes.Equal(snap.Checksum, checksum(snap.Data)) {
		return snapshot{}, ErrChecksumMismatch
	}
	return snap, nil
}

// checkGeometry verifies that the layout and extents of h describe exactly
// h.Size elements, so that decoding never allocates more than the snapshot
// carries.
func checkGeometry(h Header) error {
	kind, err := layout.ParseKind(h.Layout)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	for a, e := range h.Extents {
		if e < 0 {
			return fmt.Errorf("%w: extent %d of axis %d", ErrCorrupt, e, a)
		}
	}
	if kind.IsPacked() && !layout.Shape(h.Extents).Square() {
		return fmt.Errorf("%w: packed extents %v differ", ErrCorrupt, h.Extents)
	}

	full, err := constructionExtents(kind, h)
	if err != nil {
		return err
	}
	n, err := layout.CheckedSize(kind, h.Order, full)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if n != h.Size {
		return fmt.Errorf("%w: size %d, %v extents %v give %d", ErrCorrupt, h.Size, kind, h.Extents, n)
	}
	return nil
}

func checksum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// constructionExtents returns the extents to build a Dynamic array from a
// header, restoring the extent an efficient-shape snapshot omits.
func constructionExtents(kind layout.Kind, h Header) ([]int, error) {
	if kind.IsPacked() {
		if len(h.Extents) > 0 {
			return h.Extents[:1], nil
		}
		return []int{h.Size}, nil
	}
	if len(h.Extents) == h.Order {
		return h.Extents, nil
	}

	inner := 1
	if len(h.Extents) > 0 {
		var err error
		if inner, err = layout.CheckedSize(layout.Dense, len(h.Extents), h.Extents); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}
	last := 0
	if inner > 0 {
		last = h.Size / inner
	}
	return append(layout.Shape(h.Extents).Clone(), last), nil
}

func unpack[T property.Element](raw []byte, data []T) error {
	if len(data) == 0 {
		return nil
	}
	if _, err := binary.Decode(raw, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("%w: unpacking elements: %w", ErrCorrupt, err)
	}
	return nil
}
