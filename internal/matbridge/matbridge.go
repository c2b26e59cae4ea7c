// Package matbridge converts order-2 arrays to and from gonum matrices.
//
// Dense arrays map to *mat.Dense and packed arrays to *mat.SymDense: a
// packed array stores one triangle, which is exactly the data of a
// symmetric matrix.
package matbridge

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/layout"
	"github.com/born-ml/ndarray/internal/property"
)

// Errors returned by the bridge.
var (
	// ErrOrder is returned for arrays that are not of order 2.
	ErrOrder = errors.New("matbridge: order 2 array required")

	// ErrLayout is returned when the array layout does not suit the matrix
	// kind.
	ErrLayout = errors.New("matbridge: unsupported layout")
)

// ToDense copies a dense order-2 array into a new matrix. Element (i, j)
// of the array becomes row i, column j.
func ToDense(a array.Array[float64]) (*mat.Dense, error) {
	if err := check(a); err != nil {
		return nil, err
	}
	if a.Layout() != layout.Dense {
		return nil, fmt.Errorf("%w: %v to dense matrix", ErrLayout, a.Layout())
	}
	rows := a.Extent(0)
	if rows == 0 || a.Size() == 0 {
		return &mat.Dense{}, nil
	}

	m := mat.NewDense(rows, a.Size()/rows, nil)
	data := a.Data()
	a.Walk(func(idx []int, off int) bool {
		m.Set(idx[0], idx[1], data[off])
		return true
	})
	return m, nil
}

// ToSymDense copies a packed order-2 array into a new symmetric matrix.
func ToSymDense(a array.Array[float64]) (*mat.SymDense, error) {
	if err := check(a); err != nil {
		return nil, err
	}
	if !a.Layout().IsPacked() {
		return nil, fmt.Errorf("%w: %v to symmetric matrix", ErrLayout, a.Layout())
	}
	n := a.Extent(0)
	if n == 0 {
		return &mat.SymDense{}, nil
	}

	s := mat.NewSymDense(n, nil)
	data := a.Data()
	a.Walk(func(idx []int, off int) bool {
		s.SetSym(idx[0], idx[1], data[off])
		return true
	})
	return s, nil
}

// FromMatrix copies m into a new dense Dynamic array. props may add any
// property other than shape and layout.
func FromMatrix(m mat.Matrix, props ...property.Property) (*array.Dynamic[float64], error) {
	rows, cols := m.Dims()
	d, err := build(layout.Dense, props, rows, cols)
	if err != nil {
		return nil, err
	}
	data := d.Data()
	d.Walk(func(idx []int, off int) bool {
		data[off] = m.At(idx[0], idx[1])
		return true
	})
	return d, nil
}

// FromSymmetric copies one triangle of s into a new packed Dynamic array.
// kind selects the triangle: PackedIncreasing stores the upper one,
// PackedDecreasing the lower one.
func FromSymmetric(s mat.Symmetric, kind layout.Kind, props ...property.Property) (*array.Dynamic[float64], error) {
	if !kind.IsPacked() {
		return nil, fmt.Errorf("%w: %v for symmetric matrix", ErrLayout, kind)
	}
	d, err := build(kind, props, s.SymmetricDim())
	if err != nil {
		return nil, err
	}
	data := d.Data()
	d.Walk(func(idx []int, off int) bool {
		data[off] = s.At(idx[0], idx[1])
		return true
	})
	return d, nil
}

func check(a array.Array[float64]) error {
	if a.Order() != 2 {
		return fmt.Errorf("%w: order %d", ErrOrder, a.Order())
	}
	if a.Data() == nil && a.Size() > 0 {
		return array.ErrNoBuffer
	}
	return nil
}

// build returns an order-2 Dynamic array with a buffer, owned or not.
func build(kind layout.Kind, props []property.Property, extents ...int) (*array.Dynamic[float64], error) {
	all := append([]property.Property{property.OrderOf[float64](2), property.WithLayout(kind)}, props...)
	cfg, err := property.Resolve(all...)
	if err != nil {
		return nil, err
	}
	d, err := array.NewDynamic[float64](cfg, extents...)
	if err != nil {
		return nil, err
	}
	if !d.Owns() {
		if err := d.SetData(make([]float64, d.Size())); err != nil {
			return nil, err
		}
	}
	return d, nil
}
