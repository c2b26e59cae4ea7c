package layout

import "fmt"

// Shape is a list of extents, axis 0 first.
type Shape []int

// NumElements returns the product of the extents.
// An empty shape has no elements: arrays always have order >= 1.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every extent is positive.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("layout: shape must have at least one dimension")
	}
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("layout: invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Square reports whether all extents are equal.
func (s Shape) Square() bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}
