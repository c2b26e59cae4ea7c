package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/ndarray/internal/alloc"
	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/layout"
	"github.com/born-ml/ndarray/internal/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
array "covariance" {
  element = "float64"
  order   = 2
  layout  = "packed_decreasing"
  extents = [16]
}

array "image" {
  element    = "uint8"
  shape      = [64, 48, 3]
  index_type = "uint16"
  checked    = true
  max_bytes  = 1048576
}

array "borrowed" {
  order    = 3
  allocate = false
  extents  = [2, 3, 4]
}
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)
	require.Len(t, f.Arrays, 3)

	cov, ok := f.Lookup("covariance")
	require.True(t, ok)
	cfg, err := cov.Resolve()
	require.NoError(t, err)
	assert.Equal(t, property.Float64, cfg.DType())
	assert.Equal(t, 2, cfg.Order())
	assert.False(t, cfg.Static())
	assert.Equal(t, layout.PackedDecreasing, cfg.Layout())
	n, err := cov.Size()
	require.NoError(t, err)
	assert.Equal(t, 136, n)

	img, ok := f.Lookup("image")
	require.True(t, ok)
	cfg, err = img.Resolve()
	require.NoError(t, err)
	assert.Equal(t, property.Uint8, cfg.DType())
	assert.Equal(t, []int{64, 48, 3}, cfg.Dims())
	assert.Equal(t, property.Uint16Index, cfg.IndexType())
	assert.True(t, cfg.Checked())
	assert.Equal(t, "limit(go)", cfg.Allocator().Name())
	n, err = img.Size()
	require.NoError(t, err)
	assert.Equal(t, 64*48*3, n)

	b, ok := f.Lookup("borrowed")
	require.True(t, ok)
	cfg, err = b.Resolve()
	require.NoError(t, err)
	assert.Equal(t, property.DefaultElement, cfg.DType())
	assert.False(t, cfg.Allocate())
	n, err = b.Size()
	require.NoError(t, err)
	assert.Equal(t, 24, n)

	_, ok = f.Lookup("missing")
	assert.False(t, ok)
}

func TestDeclBuildsArray(t *testing.T) {
	f, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)
	cov, _ := f.Lookup("covariance")
	cfg, err := cov.Resolve()
	require.NoError(t, err)

	d, err := array.NewDynamic[float64](cfg, cov.Extents...)
	require.NoError(t, err)
	defer d.Release()
	assert.True(t, d.Owns())
	assert.Equal(t, 136, d.Size())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrays.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Arrays, 3)

	_, err = Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.ErrorIs(t, err, ErrParse)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`array "a" {`), "broken.hcl")
	require.ErrorIs(t, err, ErrParse)

	_, err = Parse([]byte(`array "a" { colour = "red" }`), "schema.hcl")
	require.ErrorIs(t, err, ErrParse)

	_, err = Parse([]byte(`
array "a" { order = 1 }
array "a" { order = 2 }
`), "dup.hcl")
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestDeclErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"element alone", `array "x" { element = "int32" }`, ErrElementWithoutShape},
		{"shape and order", `array "x" {
  shape = [2, 2]
  order = 2
}`, property.ErrDuplicateProperty},
		{"bad element", `array "x" {
  element = "float16"
  order   = 1
}`, property.ErrUnsupported},
		{"bad layout", `array "x" { layout = "sparse" }`, property.ErrUnsupported},
		{"bad major axis", `array "x" { major_axis = "row" }`, property.ErrUnsupported},
		{"bad index type", `array "x" { index_type = "uint128" }`, property.ErrUnsupported},
		{"bad allocator", `array "x" { allocator = "mmap" }`, ErrUnknownAllocator},
		{"non-square packed", `array "x" {
  shape  = [2, 3]
  layout = "packed_increasing"
}`, property.ErrNonSquare},
		{"index overflow", `array "x" {
  shape      = [300]
  index_type = "uint8"
}`, property.ErrExtentOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.src), "x.hcl")
			require.NoError(t, err)
			_, err = f.Arrays[0].Resolve()
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSizeExtentErrors(t *testing.T) {
	f, err := Parse([]byte(`array "x" {
  order   = 2
  extents = [1, 2, 3]
}`), "x.hcl")
	require.NoError(t, err)
	_, err = f.Arrays[0].Size()
	require.ErrorIs(t, err, array.ErrExtentArity)
}

func TestAllocatorSelection(t *testing.T) {
	f, err := Parse([]byte(`array "x" {
  order     = 1
  allocator = "arrow"
}`), "x.hcl")
	require.NoError(t, err)
	cfg, err := f.Arrays[0].Resolve()
	require.NoError(t, err)
	_, ok := cfg.Allocator().(*alloc.ArrowAllocator)
	assert.True(t, ok)
}
