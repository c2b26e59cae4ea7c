package codec

import (
	"bytes"
	"testing"

	"github.com/born-ml/ndarray/internal/alloc"
	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/layout"
	"github.com/born-ml/ndarray/internal/property"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripFixed(t *testing.T) {
	cfg := property.MustResolve(property.ShapeOf[float64](2, 3))
	a, err := array.NewFixedFrom(cfg, array.List(array.Leaf(1.0, 2.0), array.Leaf(3.0, 4.0), array.Leaf(5.0, 6.0)))
	require.NoError(t, err)

	b, err := Encode[float64](a)
	require.NoError(t, err)

	h, err := Describe(b)
	require.NoError(t, err)
	assert.Equal(t, Header{DType: "float64", Layout: "dense", Order: 2, Extents: []int{2, 3}, Size: 6}, h)

	d, err := DecodeDynamic[float64](b)
	require.NoError(t, err)
	defer d.Release()
	assert.Equal(t, []int{2, 3}, d.Extents())
	assert.Equal(t, a.Data(), d.Data())

	into, err := array.NewFixed[float64](cfg)
	require.NoError(t, err)
	require.NoError(t, DecodeInto[float64](b, into))
	assert.Equal(t, a.Data(), into.Data())
}

func TestRoundTripPackedComplex(t *testing.T) {
	cfg := property.MustResolve(property.OrderOf[complex64](2), property.WithLayout(layout.PackedDecreasing))
	a, err := array.NewDynamic[complex64](cfg, 3)
	require.NoError(t, err)
	defer a.Release()
	a.Walk(func(idx []int, off int) bool {
		a.Data()[off] = complex(float32(idx[0]), float32(idx[1]))
		return true
	})

	b, err := Encode[complex64](a)
	require.NoError(t, err)

	d, err := DecodeDynamic[complex64](b, property.WithChecked(true))
	require.NoError(t, err)
	defer d.Release()
	assert.Equal(t, layout.PackedDecreasing, d.Layout())
	assert.True(t, d.Config().Checked())
	assert.Equal(t, complex64(complex(2, 1)), d.At(2, 1))
	assert.Panics(t, func() { d.At(1, 2) })
}

func TestRoundTripEfficientShape(t *testing.T) {
	cfg := property.MustResolve(property.OrderOf[int16](3), property.WithEfficientShape(true))
	a, err := array.NewDynamic[int16](cfg, 2, 2, 3)
	require.NoError(t, err)
	defer a.Release()
	for i := range a.Data() {
		a.Data()[i] = int16(i * 3)
	}

	b, err := Encode[int16](a)
	require.NoError(t, err)
	h, err := Describe(b)
	require.NoError(t, err)
	assert.True(t, h.Efficient)
	assert.Equal(t, []int{2, 2}, h.Extents)

	d, err := DecodeDynamic[int16](b, property.WithAllocate(false))
	require.NoError(t, err)
	assert.False(t, d.Owns())
	assert.False(t, d.HasExtent(2))
	assert.Equal(t, 12, d.Size())
	assert.Equal(t, a.Data(), d.Data())
}

func TestRoundTripBool(t *testing.T) {
	cfg := property.MustResolve(property.ShapeOf[bool](3))
	a, err := array.NewHeapFrom(cfg, array.Leaf(true, false, true))
	require.NoError(t, err)
	defer a.Release()

	var buf bytes.Buffer
	require.NoError(t, Write[bool](&buf, a))
	d, err := ReadDynamic[bool](&buf, property.WithAllocator(alloc.Go()))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, d.Data())
}

func TestDecodeErrors(t *testing.T) {
	cfg := property.MustResolve(property.ShapeOf[float32](2, 2))
	a, err := array.NewFixed[float32](cfg)
	require.NoError(t, err)
	b, err := Encode[float32](a)
	require.NoError(t, err)

	_, err = DecodeDynamic[float64](b)
	require.ErrorIs(t, err, ErrDTypeMismatch)

	_, err = DecodeDynamic[float32](b[:len(b)-3])
	require.ErrorIs(t, err, ErrCorrupt)

	_, err = DecodeDynamic[float32](b, property.WithLayout(layout.Dense))
	require.ErrorIs(t, err, property.ErrDuplicateProperty)

	other, err := array.NewFixed[float32](property.MustResolve(property.ShapeOf[float32](4)))
	require.NoError(t, err)
	require.ErrorIs(t, DecodeInto[float32](b, other), ErrShapeMismatch)

	bad := snapshot{
		Header: Header{DType: "float32", Layout: "dense", Order: 2, Extents: []int{2, 2}, Size: 4},
		Data:   make([]byte, 15),
	}
	raw, err := cbor.Marshal(bad)
	require.NoError(t, err)
	_, err = Describe(raw)
	require.ErrorIs(t, err, ErrCorrupt)

	bad.Data = make([]byte, 16)
	bad.Size = 4
	bad.Extents = []int{2, 3}
	raw, err = cbor.Marshal(bad)
	require.NoError(t, err)
	_, err = DecodeDynamic[float32](raw)
	require.ErrorIs(t, err, ErrCorrupt)

	bad.Extents = []int{2}
	raw, err = cbor.Marshal(bad)
	require.NoError(t, err)
	_, err = Describe(raw)
	require.ErrorIs(t, err, ErrCorrupt)

	bad.Layout = "sparse"
	bad.Extents = []int{2, 2}
	raw, err = cbor.Marshal(bad)
	require.NoError(t, err)
	_, err = DecodeDynamic[float32](raw)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestDecodeOversizedExtents(t *testing.T) {
	tests := []struct {
		name   string
		header Header
	}{
		{"dense empty data", Header{DType: "float64", Layout: "dense", Order: 2, Extents: []int{1 << 24, 1 << 24}}},
		{"dense wrapping count", Header{DType: "float64", Layout: "dense", Order: 2, Extents: []int{1 << 32, 1 << 32}}},
		{"packed empty data", Header{DType: "float64", Layout: "packed_increasing", Order: 2, Extents: []int{1 << 24, 1 << 24}}},
		{"packed unequal extents", Header{DType: "float64", Layout: "packed_increasing", Order: 2, Extents: []int{0, 1 << 24}}},
		{"negative extent", Header{DType: "float64", Layout: "dense", Order: 2, Extents: []int{-1, 0}}},
		{"efficient wrapping count", Header{DType: "float64", Layout: "dense", Order: 3, Extents: []int{1 << 32, 1 << 32}, Efficient: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := cbor.Marshal(snapshot{Header: tt.header, Data: []byte{}})
			require.NoError(t, err)

			_, err = Describe(raw)
			require.ErrorIs(t, err, ErrCorrupt)
			d, err := DecodeDynamic[float64](raw, property.WithAllocator(alloc.Go()))
			require.ErrorIs(t, err, ErrCorrupt)
			assert.Nil(t, d)
		})
	}
}

func TestDecodeIntoTransposed(t *testing.T) {
	src, err := array.NewFixedFrom(property.MustResolve(property.ShapeOf[float64](2, 3)),
		array.List(array.Leaf(1.0, 2.0), array.Leaf(3.0, 4.0), array.Leaf(5.0, 6.0)))
	require.NoError(t, err)
	b, err := Encode[float64](src)
	require.NoError(t, err)

	dst, err := array.NewFixed[float64](property.MustResolve(property.ShapeOf[float64](3, 2)))
	require.NoError(t, err)
	require.ErrorIs(t, DecodeInto[float64](b, dst), ErrShapeMismatch)
	assert.Equal(t, make([]float64, 6), dst.Data())

	same, err := array.NewFixed[float64](property.MustResolve(property.ShapeOf[float64](2, 3)))
	require.NoError(t, err)
	require.NoError(t, DecodeInto[float64](b, same))
	assert.Equal(t, src.Data(), same.Data())
}

func TestSameExtents(t *testing.T) {
	assert.True(t, sameExtents([]int{2, 3}, []int{2, 3}))
	assert.True(t, sameExtents([]int{2}, []int{2, 3}))
	assert.True(t, sameExtents([]int{2, 3}, []int{2}))
	assert.False(t, sameExtents([]int{3, 2}, []int{2, 3}))
	assert.False(t, sameExtents([]int{3}, []int{2, 3}))
	assert.False(t, sameExtents(nil, []int{2, 3}))
}

func TestEncodeWithoutBuffer(t *testing.T) {
	cfg := property.MustResolve(property.ShapeOf[float64](2), property.WithAllocate(false))
	h, err := array.NewHeap[float64](cfg)
	require.NoError(t, err)

	_, err = Encode[float64](h)
	require.ErrorIs(t, err, ErrNoData)
}

func TestChecksum(t *testing.T) {
	cfg := property.MustResolve(property.ShapeOf[int64](3))
	a, err := array.NewFixedFrom(cfg, array.Leaf[int64](1, 2, 3))
	require.NoError(t, err)
	b, err := Encode[int64](a)
	require.NoError(t, err)

	var snap snapshot
	require.NoError(t, cbor.Unmarshal(b, &snap))
	require.Len(t, snap.Checksum, 32)

	snap.Data[0] ^= 0xff
	raw, err := cbor.Marshal(snap)
	require.NoError(t, err)
	_, err = Describe(raw)
	require.ErrorIs(t, err, ErrChecksumMismatch)
	require.ErrorIs(t, err, ErrCorrupt)
}
