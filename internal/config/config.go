// Package config reads array configurations declared in HCL.
//
// Example file:
//
//	array "covariance" {
//	  element = "float64"
//	  order   = 2
//	  layout  = "packed_decreasing"
//	  extents = [16]
//	}
//
//	array "image" {
//	  element   = "uint8"
//	  shape     = [640, 480, 3]
//	  max_bytes = 1048576
//	}
package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog/log"

	"github.com/born-ml/ndarray/internal/alloc"
	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/layout"
	"github.com/born-ml/ndarray/internal/property"
)

// Errors returned while reading configurations.
var (
	// ErrParse is returned for files that are not valid HCL or do not match
	// the schema.
	ErrParse = errors.New("config: invalid file")

	// ErrDuplicateName is returned when two arrays share a name.
	ErrDuplicateName = errors.New("config: duplicate array name")

	// ErrElementWithoutShape is returned for an element type given without a
	// shape or order to attach it to.
	ErrElementWithoutShape = errors.New("config: element requires shape or order")

	// ErrUnknownAllocator is returned for an allocator name other than "go"
	// or "arrow".
	ErrUnknownAllocator = errors.New("config: unknown allocator")
)

// File is the content of one configuration file.
type File struct {
	Arrays []Decl `hcl:"array,block"`
}

// Decl declares one array configuration. Unset attributes take the
// property defaults.
type Decl struct {
	Name string `hcl:"name,label"`

	Element *string `hcl:"element,optional"`
	Shape   []int   `hcl:"shape,optional"`
	Order   *int    `hcl:"order,optional"`

	Layout         *string `hcl:"layout,optional"`
	MajorAxis      *string `hcl:"major_axis,optional"`
	IndexType      *string `hcl:"index_type,optional"`
	Allocate       *bool   `hcl:"allocate,optional"`
	EfficientShape *bool   `hcl:"efficient_shape,optional"`
	Checked        *bool   `hcl:"checked,optional"`

	Allocator *string `hcl:"allocator,optional"`
	MaxBytes  *int    `hcl:"max_bytes,optional"`

	// Extents of runtime-shape arrays.
	Extents []int `hcl:"extents,optional"`
}

// Parse decodes an HCL configuration. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrParse, diags.Error())
	}
	return decode(f.Body, filename)
}

// Load reads and decodes an HCL configuration file.
func Load(path string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrParse, diags.Error())
	}
	return decode(f.Body, path)
}

func decode(body hcl.Body, filename string) (*File, error) {
	var file File
	if diags := gohcl.DecodeBody(body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrParse, diags.Error())
	}

	seen := make(map[string]bool, len(file.Arrays))
	for _, d := range file.Arrays {
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateName, d.Name, filename)
		}
		seen[d.Name] = true
	}

	log.Debug().Str("path", filename).Int("arrays", len(file.Arrays)).Msg("configuration decoded")
	return &file, nil
}

// Lookup returns the declaration called name.
func (f *File) Lookup(name string) (*Decl, bool) {
	for i := range f.Arrays {
		if f.Arrays[i].Name == name {
			return &f.Arrays[i], true
		}
	}
	return nil, false
}

// Properties translates the declaration into a property list.
func (d *Decl) Properties() ([]property.Property, error) {
	var props []property.Property

	dtype := property.DefaultElement
	if d.Element != nil {
		if d.Shape == nil && d.Order == nil {
			return nil, fmt.Errorf("%w: array %q", ErrElementWithoutShape, d.Name)
		}
		var err error
		if dtype, err = property.ParseDataType(*d.Element); err != nil {
			return nil, fmt.Errorf("array %q: %w", d.Name, err)
		}
	}
	if d.Shape != nil {
		props = append(props, property.ShapeWith(dtype, d.Shape...))
	}
	if d.Order != nil {
		props = append(props, property.OrderWith(dtype, *d.Order))
	}

	if d.Layout != nil {
		kind, err := layout.ParseKind(*d.Layout)
		if err != nil {
			return nil, fmt.Errorf("array %q: %w: %w", d.Name, property.ErrUnsupported, err)
		}
		props = append(props, property.WithLayout(kind))
	}
	if d.MajorAxis != nil {
		m, err := property.ParseMajorAxis(*d.MajorAxis)
		if err != nil {
			return nil, fmt.Errorf("array %q: %w", d.Name, err)
		}
		props = append(props, property.WithMajorAxis(m))
	}
	if d.IndexType != nil {
		it, err := property.ParseIndexType(*d.IndexType)
		if err != nil {
			return nil, fmt.Errorf("array %q: %w", d.Name, err)
		}
		props = append(props, property.WithIndexType(it))
	}
	if d.Allocate != nil {
		props = append(props, property.WithAllocate(*d.Allocate))
	}
	if d.EfficientShape != nil {
		props = append(props, property.WithEfficientShape(*d.EfficientShape))
	}
	if d.Checked != nil {
		props = append(props, property.WithChecked(*d.Checked))
	}

	if d.Allocator != nil || d.MaxBytes != nil {
		a, err := d.allocator()
		if err != nil {
			return nil, err
		}
		props = append(props, property.WithAllocator(a))
	}
	return props, nil
}

func (d *Decl) allocator() (alloc.Allocator, error) {
	var a alloc.Allocator = alloc.Default
	if d.Allocator != nil {
		switch *d.Allocator {
		case "go":
			a = alloc.Go()
		case "arrow":
			a = alloc.Arrow(nil)
		default:
			return nil, fmt.Errorf("%w: %q for array %q", ErrUnknownAllocator, *d.Allocator, d.Name)
		}
	}
	if d.MaxBytes != nil {
		a = alloc.Limit(a, *d.MaxBytes)
	}
	return a, nil
}

// Resolve resolves the declaration into a configuration.
func (d *Decl) Resolve() (property.Config, error) {
	props, err := d.Properties()
	if err != nil {
		return property.Config{}, err
	}
	cfg, err := property.Resolve(props...)
	if err != nil {
		return property.Config{}, fmt.Errorf("array %q: %w", d.Name, err)
	}
	return cfg, nil
}

// Size returns the number of elements an array built from the declaration
// stores: the static size, or the size given by Extents for runtime shapes.
func (d *Decl) Size() (int, error) {
	cfg, err := d.Resolve()
	if err != nil {
		return 0, err
	}
	if cfg.Static() {
		return cfg.Size(), nil
	}
	full, err := array.ResolveExtents(cfg, d.Extents...)
	if err != nil {
		return 0, fmt.Errorf("array %q: %w", d.Name, err)
	}
	return cfg.Strategy().Size(cfg.Order(), full), nil
}
