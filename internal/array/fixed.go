package array

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/property"
)

// Fixed is an array whose shape comes from the configuration and whose
// elements live in the array value itself.
//
// Example:
//
//	cfg := property.MustResolve(property.ShapeOf[float64](2, 2))
//	a, _ := array.NewFixed[float64](cfg)
//	a.Set(1, 1, 0)
type Fixed[T property.Element] struct {
	View[T]
	cfg property.Config
}

// NewFixed returns a zeroed Fixed array. cfg must carry a static shape
// with element type T.
func NewFixed[T property.Element](cfg property.Config) (*Fixed[T], error) {
	if err := checkElement[T](cfg); err != nil {
		return nil, err
	}
	if !cfg.Static() {
		return nil, fmt.Errorf("%w: %s", ErrShapeNotStatic, cfg)
	}
	size := cfg.Size()
	return &Fixed[T]{
		View: newView(cfg, cfg.Dims(), size, make([]T, size)),
		cfg:  cfg,
	}, nil
}

// NewFixedFrom returns a Fixed array initialized from list.
func NewFixedFrom[T property.Element](cfg property.Config, list Nested[T]) (*Fixed[T], error) {
	f, err := NewFixed[T](cfg)
	if err != nil {
		return nil, err
	}
	if err := f.Assign(list); err != nil {
		return nil, err
	}
	return f, nil
}

// Config returns the configuration the array was built from.
func (f *Fixed[T]) Config() property.Config { return f.cfg }

// Clone returns a deep copy of the array.
func (f *Fixed[T]) Clone() *Fixed[T] {
	clone := &Fixed[T]{View: f.View, cfg: f.cfg}
	if f.data != nil {
		clone.data = make([]T, len(f.data))
		copy(clone.data, f.data)
	}
	return clone
}
