package dtype

import "fmt"

// CustomIntType is an integer type of arbitrary bit width, for packing into
// bit struct and bit array containers.
type CustomIntType struct {
	Width  int
	Signed bool
}

func CustomInt(bits int, signed bool) CustomIntType {
	return CustomIntType{Width: bits, Signed: signed}
}

func (t CustomIntType) Bits() int { return t.Width }

func (t CustomIntType) String() string {
	if t.Signed {
		return fmt.Sprintf("ci%d", t.Width)
	}
	return fmt.Sprintf("cu%d", t.Width)
}

// CustomFloatType is a real type stored as a custom width significand,
// optionally paired with a stored exponent, and decoded by scaling in the
// compute type.
type CustomFloatType struct {
	// Digits is the stored significand type.
	Digits Type
	// Exponent is the stored exponent type. It is nil for plain fixed point
	// types, where Scale alone fixes the value of one significand step.
	Exponent Type
	// Compute is the type arithmetic is performed in after decoding.
	Compute Type
	// Scale multiplies the decoded significand on load.
	Scale float64
}

// CustomFloat returns a fixed point real type with no stored exponent.
func CustomFloat(digits, compute Type, scale float64) CustomFloatType {
	return CustomFloatType{Digits: digits, Compute: compute, Scale: scale}
}

// CustomFloatWithExponent returns a real type whose exponent is stored
// separately from the significand. Fields of such a type may share one stored
// exponent, see the shared exponent placement session on the snode tree.
func CustomFloatWithExponent(digits, exponent, compute Type, scale float64) CustomFloatType {
	return CustomFloatType{Digits: digits, Exponent: exponent, Compute: compute, Scale: scale}
}

// Bits is the total stored width, exponent included.
func (t CustomFloatType) Bits() int {
	b := t.Digits.Bits()
	if t.Exponent != nil {
		b += t.Exponent.Bits()
	}
	return b
}

// StorageBits is the width of the significand alone. The exponent, when
// present, lives on its own place node and is accounted for there.
func (t CustomFloatType) StorageBits() int { return t.Digits.Bits() }

// ExponentType returns the stored exponent type, nil when there is none.
func (t CustomFloatType) ExponentType() Type { return t.Exponent }

func (t CustomFloatType) String() string {
	if t.Exponent != nil {
		return fmt.Sprintf("cf(%s,%s)", t.Digits, t.Exponent)
	}
	return fmt.Sprintf("cf(%s)", t.Digits)
}
