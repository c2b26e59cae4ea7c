package layout

// packedSize returns C(order+n-1, order), the number of index tuples of
// length order over [0, n) taken without regard to their order.
func packedSize(order int, extents []int) int {
	if len(extents) == 0 {
		return 0
	}
	return Combinations(order+extents[0]-1, order)
}

// packedIncreasing stores tuples with i0 <= i1 <= ... <= i_{order-1}. The
// last index is outermost; the section of last index j holds C(j+order-1,
// order-1) elements.
type packedIncreasing struct{}

func (packedIncreasing) Kind() Kind { return PackedIncreasing }

func (packedIncreasing) Size(order int, extents []int) int {
	return packedSize(order, extents)
}

// Offset evaluates
//
//	  i
//	+ j * (j + 1) / 2
//	+ k * (k + 1) * (k + 2) / (2 * 3)
//	+ ...
//
// where the term of axis a is C(i_a + a, a + 1). Leading zeros add nothing.
func (packedIncreasing) Offset(order int, _ []int, idx []int) int {
	lead := order - len(idx)
	off := 0
	for p, i := range idx {
		a := lead + p
		off += Combinations(i+a, a+1)
	}
	return off
}

func (packedIncreasing) Contains(order int, extents []int, idx []int) bool {
	if len(idx) > order {
		return false
	}
	n := side(extents)
	for a := 0; a < order; a++ {
		i := at(order, idx, a)
		if i < 0 || (len(extents) > 0 && i >= n) {
			return false
		}
		if a > 0 && at(order, idx, a-1) > i {
			return false
		}
	}
	return true
}

// packedDecreasing stores tuples with i0 >= i1 >= ... >= i_{order-1}. The
// last index is outermost; the section of last index j holds the tuples
// whose remaining indices lie in [j, n).
type packedDecreasing struct{}

func (packedDecreasing) Kind() Kind { return PackedDecreasing }

func (packedDecreasing) Size(order int, extents []int) int {
	return packedSize(order, extents)
}

// Offset counts the stored tuples preceding idx. Section a contributes the
// tuples whose index at axis a lies in [i_{a+1}, i_a), which telescopes to
//
//	C(n - i_{a+1} + a, a + 1) - C(n - i_a + a, a + 1)
//
// with i_order = 0. For order 2 this is i + j * (2n - j - 1) / 2. For order
// 1 the shared extent cancels, so it may be unknown.
func (packedDecreasing) Offset(order int, extents []int, idx []int) int {
	if order == 1 {
		if len(idx) == 0 {
			return 0
		}
		return idx[0]
	}
	n := side(extents)
	off := 0
	for a := 0; a < order; a++ {
		outer := 0
		if a+1 < order {
			outer = at(order, idx, a+1)
		}
		off += Combinations(n-outer+a, a+1) - Combinations(n-at(order, idx, a)+a, a+1)
	}
	return off
}

func (packedDecreasing) Contains(order int, extents []int, idx []int) bool {
	if len(idx) > order {
		return false
	}
	n := side(extents)
	for a := 0; a < order; a++ {
		i := at(order, idx, a)
		if i < 0 || (len(extents) > 0 && i >= n) {
			return false
		}
		if a > 0 && at(order, idx, a-1) < i {
			return false
		}
	}
	return true
}
