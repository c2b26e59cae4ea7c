package layout

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"slices"
)

// ErrSizeOverflow is returned when an element count does not fit in an int.
var ErrSizeOverflow = errors.New("layout: element count overflows int")

// Strategy computes sizes and offsets for one layout kind.
//
// All methods take the array order and its extents, axis 0 first. Extents
// may be one shorter than order when the last extent is not stored (efficient
// shapes): the offset of dense and packed layouts never depends on it.
//
// Offset and Contains accept up to order indices. Missing leading axes are
// index 0, so Offset(order, e, []int{j}) == Offset(order, e, []int{0, ..., 0, j}).
type Strategy interface {
	// Kind returns the layout implemented by the strategy.
	Kind() Kind

	// Size returns the number of stored elements. It returns 0 when no
	// extents are given.
	Size(order int, extents []int) int

	// Offset returns the linear storage offset of the index tuple.
	// Indices are not validated.
	Offset(order int, extents []int, idx []int) int

	// Contains reports whether the index tuple addresses a stored element.
	Contains(order int, extents []int, idx []int) bool
}

var strategies = [...]Strategy{
	Dense:            dense{},
	PackedIncreasing: packedIncreasing{},
	PackedDecreasing: packedDecreasing{},
}

// For returns the strategy implementing kind.
func For(kind Kind) (Strategy, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("layout: unsupported layout %v", kind)
	}
	return strategies[kind], nil
}

// MustFor is like For but panics on an unsupported kind.
func MustFor(kind Kind) Strategy {
	s, err := For(kind)
	if err != nil {
		panic(err)
	}
	return s
}

// Size returns the number of elements stored by an array of the given
// layout, order and extents.
//
// Example:
//
//	layout.Size(layout.Dense, 3, []int{3, 4, 5})           // 60
//	layout.Size(layout.PackedIncreasing, 2, []int{4, 4})   // 10
func Size(kind Kind, order int, extents []int) int {
	return MustFor(kind).Size(order, extents)
}

// Offset returns the linear offset of idx in an array of the given layout,
// order and extents.
func Offset(kind Kind, order int, extents []int, idx ...int) int {
	return MustFor(kind).Offset(order, extents, idx)
}

// Contains reports whether idx addresses a stored element.
func Contains(kind Kind, order int, extents []int, idx ...int) bool {
	return MustFor(kind).Contains(order, extents, idx)
}

// CheckedSize is Size with overflow detection: it fails with
// ErrSizeOverflow when the element count does not fit in an int.
func CheckedSize(kind Kind, order int, extents []int) (int, error) {
	var (
		n  int
		ok bool
	)
	switch {
	case !kind.IsPacked():
		n, ok = product(extents)
	case len(extents) == 0:
		n, ok = 0, true
	default:
		n, ok = combinations(order+extents[0]-1, order)
	}
	if !ok {
		return 0, fmt.Errorf("%w: %v order %d extents %v", ErrSizeOverflow, kind, order, extents)
	}
	return n, nil
}

// Combinations returns n choose k. It panics with ErrSizeOverflow when the
// result does not fit in an int.
//
// It is evaluated iteratively (result = result*(n-i+1)/i for i in 1..k) so
// every intermediate value is itself a binomial coefficient and the division
// is exact. The products are formed in 128 bits.
func Combinations(n, k int) int {
	c, ok := combinations(n, k)
	if !ok {
		panic(fmt.Errorf("%w: C(%d, %d)", ErrSizeOverflow, n, k))
	}
	return c
}

func combinations(n, k int) (int, bool) {
	result := uint64(1)
	for i := 1; i <= k; i++ {
		hi, lo := bits.Mul64(result, uint64(n-i+1))
		if hi >= uint64(i) {
			return 0, false
		}
		result, _ = bits.Div64(hi, lo, uint64(i))
	}
	if result > math.MaxInt {
		return 0, false
	}
	return int(result), true
}

// product returns the product of the extents, 0 for none.
func product(extents []int) (int, bool) {
	if len(extents) == 0 || slices.Contains(extents, 0) {
		return 0, true
	}
	n := uint64(1)
	for _, e := range extents {
		hi, lo := bits.Mul64(n, uint64(e))
		if hi != 0 || lo > math.MaxInt {
			return 0, false
		}
		n = lo
	}
	return int(n), true
}

// at returns index position a of the tuple idx extended with leading zeros
// to order positions.
func at(order int, idx []int, a int) int {
	p := a - (order - len(idx))
	if p < 0 {
		return 0
	}
	return idx[p]
}

// side returns the shared extent of a packed array, or 0 when it is not
// stored.
func side(extents []int) int {
	if len(extents) == 0 {
		return 0
	}
	return extents[0]
}
