package dtype

import (
	"fmt"
	"math"
)

// Class is the numeric family of a Type.
type Class uint8

// Numeric classes.
const (
	ClassInvalid Class = iota
	ClassBit
	ClassUnsigned
	ClassSigned
	ClassFloat
)

// Type is a numeric representation: a class and a precision in bits.
type Type struct {
	Class     Class
	Precision int
}

// The Vista numeric representations.
var (
	Bit    = Type{ClassBit, 1}
	UByte  = Type{ClassUnsigned, 8}
	SByte  = Type{ClassSigned, 8}
	Short  = Type{ClassSigned, 16}
	Long   = Type{ClassSigned, 32}
	Float  = Type{ClassFloat, 32}
	Double = Type{ClassFloat, 64}

	// Int64 is not a file representation. It describes Go int and int64
	// values handed to the converters.
	Int64 = Type{ClassSigned, 64}
)

// Valid reports whether t is one of the supported representations.
func (t Type) Valid() bool {
	switch t {
	case Bit, UByte, SByte, Short, Long, Float, Double, Int64:
		return true
	}
	return false
}

// Size returns the in-memory size of one element in bytes.
// Bits occupy one byte each in memory.
func (t Type) Size() int {
	if t.Class == ClassBit {
		return 1
	}
	return t.Precision / 8
}

// PackedLen returns the number of bytes n packed elements occupy.
func (t Type) PackedLen(n int) int {
	return (n*t.Precision + 7) / 8
}

// Min returns the smallest value representable by t.
func (t Type) Min() float64 {
	switch t.Class {
	case ClassBit, ClassUnsigned:
		return 0
	case ClassSigned:
		return -math.Ldexp(1, t.Precision-1)
	case ClassFloat:
		if t.Precision == 32 {
			return -math.MaxFloat32
		}
		return -math.MaxFloat64
	}
	return 0
}

// Max returns the largest value representable by t.
func (t Type) Max() float64 {
	switch t.Class {
	case ClassBit:
		return 1
	case ClassUnsigned:
		return math.Ldexp(1, t.Precision) - 1
	case ClassSigned:
		return math.Ldexp(1, t.Precision-1) - 1
	case ClassFloat:
		if t.Precision == 32 {
			return math.MaxFloat32
		}
		return math.MaxFloat64
	}
	return 0
}

// IsInteger reports whether t holds only integral values.
func (t Type) IsInteger() bool {
	return t.Class == ClassBit || t.Class == ClassUnsigned || t.Class == ClassSigned
}

func (t Type) String() string {
	switch t {
	case Bit:
		return "bit"
	case UByte:
		return "ubyte"
	case SByte:
		return "sbyte"
	case Short:
		return "short"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case Int64:
		return "int64"
	}
	return fmt.Sprintf("dtype(%d,%d)", t.Class, t.Precision)
}
