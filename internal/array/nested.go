package array

// Nested is a deep initializer list. The outermost list initializes the
// last axis of the array, its items the next axis, and so on down to axis 0.
//
// Example:
//
//	// 2x2 dense: (0,0)=1, (1,0)=2, (0,1)=3, (1,1) untouched.
//	a.Assign(array.List(array.Leaf(1.0, 2.0), array.Leaf(3.0)))
type Nested[T any] struct {
	leaf   bool
	values []T
	items  []Nested[T]
}

// Leaf returns a list of values. Given at a level above axis 0, each value
// is broadcast to the whole sub-array it initializes.
func Leaf[T any](values ...T) Nested[T] {
	return Nested[T]{leaf: true, values: values}
}

// List returns a list of nested lists.
func List[T any](items ...Nested[T]) Nested[T] {
	return Nested[T]{items: items}
}

// Depth returns the number of list levels.
func (n Nested[T]) Depth() int {
	if n.leaf {
		return 1
	}
	depth := 0
	for _, item := range n.items {
		depth = max(depth, item.Depth())
	}
	return depth + 1
}

// Len returns the number of values or items at the top level.
func (n Nested[T]) Len() int {
	if n.leaf {
		return len(n.values)
	}
	return len(n.items)
}
