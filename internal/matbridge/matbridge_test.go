package matbridge

import (
	"testing"

	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/layout"
	"github.com/born-ml/ndarray/internal/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestToDense(t *testing.T) {
	cfg := property.MustResolve(property.ShapeOf[float64](2, 3))
	a, err := array.NewFixedFrom(cfg, array.List(array.Leaf(1.0, 4.0), array.Leaf(2.0, 5.0), array.Leaf(3.0, 6.0)))
	require.NoError(t, err)

	m, err := ToDense(a)
	require.NoError(t, err)
	want := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	assert.True(t, mat.Equal(want, m))

	back, err := FromMatrix(m)
	require.NoError(t, err)
	defer back.Release()
	assert.Equal(t, a.Data(), back.Data())
}

func TestToSymDense(t *testing.T) {
	for _, kind := range []layout.Kind{layout.PackedIncreasing, layout.PackedDecreasing} {
		t.Run(kind.String(), func(t *testing.T) {
			sym := mat.NewSymDense(3, []float64{
				1, 2, 3,
				2, 4, 5,
				3, 5, 6,
			})

			a, err := FromSymmetric(sym, kind)
			require.NoError(t, err)
			defer a.Release()
			assert.Equal(t, 6, a.Size())

			s, err := ToSymDense(a)
			require.NoError(t, err)
			assert.True(t, mat.Equal(sym, s))
		})
	}
}

func TestFromSymmetricTriangles(t *testing.T) {
	sym := mat.NewSymDense(2, []float64{1, 2, 2, 3})

	upper, err := FromSymmetric(sym, layout.PackedIncreasing)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, upper.Data())

	lower, err := FromSymmetric(sym, layout.PackedDecreasing, property.WithAllocate(false))
	require.NoError(t, err)
	assert.False(t, lower.Owns())
	assert.Equal(t, []float64{1, 2, 3}, lower.Data())

	_, err = FromSymmetric(sym, layout.Dense)
	require.ErrorIs(t, err, ErrLayout)
}

func TestBridgeErrors(t *testing.T) {
	vec, err := array.NewFixed[float64](property.MustResolve(property.ShapeOf[float64](4)))
	require.NoError(t, err)
	_, err = ToDense(vec)
	require.ErrorIs(t, err, ErrOrder)

	packed, err := array.NewFixed[float64](property.MustResolve(property.ShapeOf[float64](2, 2),
		property.WithLayout(layout.PackedIncreasing)))
	require.NoError(t, err)
	_, err = ToDense(packed)
	require.ErrorIs(t, err, ErrLayout)

	dense, err := array.NewFixed[float64](property.MustResolve(property.ShapeOf[float64](2, 2)))
	require.NoError(t, err)
	_, err = ToSymDense(dense)
	require.ErrorIs(t, err, ErrLayout)

	unset, err := array.NewHeap[float64](property.MustResolve(property.ShapeOf[float64](2, 2), property.WithAllocate(false)))
	require.NoError(t, err)
	_, err = ToDense(unset)
	require.ErrorIs(t, err, array.ErrNoBuffer)

	_, err = FromMatrix(mat.NewDense(1, 1, nil), property.WithLayout(layout.PackedIncreasing))
	require.ErrorIs(t, err, property.ErrDuplicateProperty)
}
