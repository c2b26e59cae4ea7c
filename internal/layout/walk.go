package layout

// Walk calls fn for every stored index tuple in storage order, together with
// its offset. Axis 0 varies fastest and the last axis is outermost.
//
// Dense layouts need one extent per axis. Packed layouts only read
// extents[0]. The idx slice is reused between calls and must not be
// retained by fn. Walk stops early when fn returns false.
//
// Example:
//
//	layout.Walk(layout.PackedIncreasing, 2, []int{3}, func(idx []int, off int) bool {
//		fmt.Println(idx, off) // [0 0] 0, [0 1] 1, [1 1] 2, [0 2] 3, ...
//		return true
//	})
func Walk(kind Kind, order int, extents []int, fn func(idx []int, off int) bool) {
	if order <= 0 || MustFor(kind).Size(order, extents) == 0 {
		return
	}
	if kind == Dense && len(extents) < order {
		return
	}
	n := side(extents)

	lower := func(idx []int, a int) int {
		if kind == PackedDecreasing && a+1 < order {
			return idx[a+1]
		}
		return 0
	}
	upper := func(idx []int, a int) int {
		switch {
		case kind == Dense:
			return extents[a] - 1
		case kind == PackedIncreasing && a+1 < order:
			return idx[a+1]
		default:
			return n - 1
		}
	}

	idx := make([]int, order)
	for a := order - 1; a >= 0; a-- {
		idx[a] = lower(idx, a)
	}

	for off := 0; ; off++ {
		if !fn(idx, off) {
			return
		}
		// Advance the odometer: bump the fastest axis that still has room
		// and reset every faster axis to its lower bound.
		a := 0
		for a < order && idx[a] >= upper(idx, a) {
			a++
		}
		if a == order {
			return
		}
		idx[a]++
		for b := a - 1; b >= 0; b-- {
			idx[b] = lower(idx, b)
		}
	}
}
