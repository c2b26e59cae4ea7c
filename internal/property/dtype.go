package property

import (
	"fmt"
	"reflect"
)

// Element is the constraint for array element types. Only fixed-size,
// bit-copyable kinds are allowed, including named types over them.
type Element interface {
	~float32 | ~float64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~complex64 | ~complex128 |
		~bool
}

// DataType represents runtime type information for array elements.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
	Int8
	Int16
	Uint16
	Uint32
	Uint64
	Complex64
	Complex128
)

var dataTypeNames = [...]string{
	Float32:    "float32",
	Float64:    "float64",
	Int32:      "int32",
	Int64:      "int64",
	Uint8:      "uint8",
	Bool:       "bool",
	Int8:       "int8",
	Int16:      "int16",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Complex64:  "complex64",
	Complex128: "complex128",
}

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Uint8, Int8, Bool:
		return 1
	case Int16, Uint16:
		return 2
	case Float32, Int32, Uint32:
		return 4
	case Float64, Int64, Uint64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// Valid reports whether dt is a supported data type.
func (dt DataType) Valid() bool {
	return dt >= Float32 && dt <= Complex128
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	if !dt.Valid() {
		return "unknown"
	}
	return dataTypeNames[dt]
}

// ParseDataType parses a name produced by DataType.String.
func ParseDataType(s string) (DataType, error) {
	for dt, name := range dataTypeNames {
		if name == s {
			return DataType(dt), nil
		}
	}
	return 0, fmt.Errorf("%w: element type %q", ErrUnsupported, s)
}

// DataTypeOf returns the DataType of T. Named types resolve through their
// underlying kind.
func DataTypeOf[T Element]() DataType {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Complex64:
		return Complex64
	case reflect.Complex128:
		return Complex128
	case reflect.Bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
