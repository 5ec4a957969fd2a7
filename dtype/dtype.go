package dtype

import (
	"errors"
	"fmt"
)

// Type is the element type carried by a place node. Implementations are small
// comparable values, so two Type values compare equal with == exactly when
// they describe the same storage layout.
type Type interface {
	// Bits is the storage width of the type in bits.
	Bits() int
	String() string
}

var ErrBitWidth = errors.New("dtype: unsupported bit width")

// PrimitiveKind discriminates the built in scalar families.
type PrimitiveKind uint8

const (
	// KindGen is the placeholder kind carried by nodes that do not hold values.
	KindGen PrimitiveKind = iota
	KindInt
	KindUint
	KindFloat
)

// PrimitiveType is a machine scalar type.
type PrimitiveType struct {
	Kind  PrimitiveKind
	Width int
}

func (t PrimitiveType) Bits() int { return t.Width }

func (t PrimitiveType) String() string {
	switch t.Kind {
	case KindInt:
		return fmt.Sprintf("i%d", t.Width)
	case KindUint:
		return fmt.Sprintf("u%d", t.Width)
	case KindFloat:
		return fmt.Sprintf("f%d", t.Width)
	default:
		return "gen"
	}
}

// The standard scalar types.
var (
	Gen = PrimitiveType{}
	I8  = PrimitiveType{KindInt, 8}
	I16 = PrimitiveType{KindInt, 16}
	I32 = PrimitiveType{KindInt, 32}
	I64 = PrimitiveType{KindInt, 64}
	U8  = PrimitiveType{KindUint, 8}
	U16 = PrimitiveType{KindUint, 16}
	U32 = PrimitiveType{KindUint, 32}
	U64 = PrimitiveType{KindUint, 64}
	F32 = PrimitiveType{KindFloat, 32}
	F64 = PrimitiveType{KindFloat, 64}
)

// Int returns the machine integer type with the requested width and
// signedness. Widths without a hardware representation are rejected; callers
// needing arbitrary widths want CustomInt.
func Int(bits int, signed bool) (Type, error) {
	switch bits {
	case 8, 16, 32, 64:
	default:
		return nil, fmt.Errorf("dtype: no %d bit machine integer: %w", bits, ErrBitWidth)
	}
	if signed {
		return PrimitiveType{KindInt, bits}, nil
	}
	return PrimitiveType{KindUint, bits}, nil
}

// Float returns the machine float type with the requested width.
func Float(bits int) (Type, error) {
	switch bits {
	case 32:
		return F32, nil
	case 64:
		return F64, nil
	}
	return nil, fmt.Errorf("dtype: no %d bit machine float: %w", bits, ErrBitWidth)
}

// IsReal reports whether t carries real values. Gradient placement applies
// only to real fields.
func IsReal(t Type) bool {
	switch v := t.(type) {
	case PrimitiveType:
		return v.Kind == KindFloat
	case CustomFloatType:
		return true
	}
	return false
}
