package layout

// dense is the conventional layout: one slot per index combination.
type dense struct{}

func (dense) Kind() Kind { return Dense }

// Size returns the product of the extents.
func (dense) Size(_ int, extents []int) int {
	return Shape(extents).NumElements()
}

// Offset evaluates i0 + e0*(i1 + e1*(i2 + ...)) with the extent of each
// axis, innermost term last. Leading axes missing from idx contribute the
// product of their extents.
func (dense) Offset(order int, extents []int, idx []int) int {
	if len(idx) == 0 {
		return 0
	}
	lead := order - len(idx)

	off := idx[len(idx)-1]
	for p := len(idx) - 2; p >= 0; p-- {
		off = off*extents[lead+p] + idx[p]
	}
	for a := lead - 1; a >= 0; a-- {
		off *= extents[a]
	}
	return off
}

// Contains checks every index against its extent. An axis without a stored
// extent is only checked for negativity.
func (dense) Contains(order int, extents []int, idx []int) bool {
	if len(idx) > order {
		return false
	}
	for a := 0; a < order; a++ {
		i := at(order, idx, a)
		if i < 0 {
			return false
		}
		if a < len(extents) && i >= extents[a] {
			return false
		}
	}
	return true
}
