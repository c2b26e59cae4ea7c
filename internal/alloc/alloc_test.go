package alloc

import (
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoAllocator(t *testing.T) {
	g := Go()
	assert.Equal(t, "go", g.Name())

	before := testutil.ToFloat64(allocBytes.WithLabelValues("go"))

	buf, err := g.Allocate(64)
	require.NoError(t, err)
	require.Len(t, buf, 64)
	for _, b := range buf {
		require.Zero(t, b)
	}
	assert.Equal(t, before+64, testutil.ToFloat64(allocBytes.WithLabelValues("go")))

	g.Free(buf)
	g.Free(nil)

	stats := g.Stats()
	assert.Equal(t, uint64(1), stats.Allocations)
	assert.Equal(t, uint64(1), stats.Frees)
	assert.Equal(t, uint64(64), stats.LargestAlloc)
	assert.Zero(t, stats.LiveBytes())

	_, err = g.Allocate(-1)
	require.ErrorIs(t, err, ErrNegativeSize)
	assert.Equal(t, uint64(1), g.Stats().Failures)
}

func TestArrowAllocatorFreesEverything(t *testing.T) {
	checked := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer checked.AssertSize(t, 0)

	a := Arrow(checked)
	assert.Equal(t, "arrow", a.Name())

	buf, err := a.Allocate(100)
	require.NoError(t, err)
	require.Len(t, buf, 100)
	assert.Equal(t, 100, checked.CurrentAlloc())

	empty, err := a.Allocate(0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	a.Free(buf)
	a.Free(empty)
	assert.Equal(t, 0, checked.CurrentAlloc())
	assert.Equal(t, uint64(100), a.Stats().BytesFreed)
}

type exhaustedAllocator struct {
	memory.Allocator
}

func (exhaustedAllocator) Allocate(int) []byte {
	panic("no memory left")
}

func TestArrowAllocatorOutOfMemory(t *testing.T) {
	a := Arrow(exhaustedAllocator{memory.NewGoAllocator()})

	before := testutil.ToFloat64(failures.WithLabelValues("arrow"))
	buf, err := a.Allocate(32)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Nil(t, buf)
	assert.Equal(t, before+1, testutil.ToFloat64(failures.WithLabelValues("arrow")))
	assert.Equal(t, uint64(1), a.Stats().Failures)
}

func TestLimitAllocator(t *testing.T) {
	l := Limit(Go(), 128)
	assert.Equal(t, "limit(go)", l.Name())
	assert.Equal(t, 128, l.Max())

	a, err := l.Allocate(100)
	require.NoError(t, err)
	assert.Equal(t, 100, l.Used())

	_, err = l.Allocate(29)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 100, l.Used())

	b, err := l.Allocate(28)
	require.NoError(t, err)
	assert.Equal(t, 128, l.Used())

	l.Free(a)
	l.Free(b)
	assert.Zero(t, l.Used())
	assert.Equal(t, uint64(1), l.Stats().Failures)
	assert.Equal(t, uint64(2), l.Stats().Frees)
}

func TestLimitAllocatorInnerFailure(t *testing.T) {
	l := Limit(Arrow(exhaustedAllocator{memory.NewGoAllocator()}), 1024)

	_, err := l.Allocate(16)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Zero(t, l.Used())
}

func TestSliceOf(t *testing.T) {
	n, err := SizeOf[float64](4)
	require.NoError(t, err)
	buf, err := Default.Allocate(n)
	require.NoError(t, err)

	data := SliceOf[float64](buf, 4)
	require.Len(t, data, 4)
	data[2] = 1.5
	assert.Equal(t, data, SliceOf[float64](BytesOf(data), 4))
	assert.Len(t, BytesOf(data), 32)

	assert.Empty(t, SliceOf[int32](nil, 0))
	assert.Empty(t, BytesOf[int32](nil))
	assert.Panics(t, func() { SliceOf[complex128](buf, 3) })
}

func TestGoAllocatorOutOfMemory(t *testing.T) {
	g := Go()

	buf, err := g.Allocate(1 << 62)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Nil(t, buf)

	stats := g.Stats()
	assert.Equal(t, uint64(1), stats.Failures)
	assert.Zero(t, stats.Allocations)
}

func TestSizeOf(t *testing.T) {
	n, err := SizeOf[complex128](3)
	require.NoError(t, err)
	assert.Equal(t, 48, n)

	n, err = SizeOf[struct{}](math.MaxInt)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = SizeOf[float64](math.MaxInt/8 + 1)
	require.ErrorIs(t, err, ErrOutOfMemory)

	_, err = SizeOf[float64](-1)
	require.ErrorIs(t, err, ErrNegativeSize)
}
