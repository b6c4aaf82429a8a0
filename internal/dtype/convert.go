package dtype

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cockroachdb/errors"

	vbin "github.com/robert-malhotra/go-vista/internal/binary"
)

// ErrRange is returned when a value cannot be represented by a type.
var ErrRange = errors.New("value out of range for representation")

// Unpack converts n packed elements of t from src into the host-order
// buffer dst, which must hold n*t.Size() bytes. The bytes are copied as
// stored and then swapped in place when the host is little-endian.
func Unpack(dst, src []byte, t Type, host binary.ByteOrder, n int) error {
	if len(src) < t.PackedLen(n) {
		return errors.Newf("unpack: source holds %d bytes, need %d", len(src), t.PackedLen(n))
	}
	if len(dst) != n*t.Size() {
		return errors.Newf("unpack: destination holds %d bytes, need %d", len(dst), n*t.Size())
	}
	if t.Class == ClassBit {
		for i := 0; i < n; i++ {
			dst[i] = (src[i/8] >> uint(7-i%8)) & 1
		}
		return nil
	}
	copy(dst, src[:len(dst)])
	return vbin.Normalize(dst, t.Size(), host)
}

// UnpackValues reads n packed elements of t from src and returns them
// along with the number of bytes consumed.
func UnpackValues(src []byte, t Type, n int) ([]float64, int, error) {
	size := t.PackedLen(n)
	if len(src) < size {
		return nil, 0, errors.Newf("unpack: source holds %d bytes, need %d", len(src), size)
	}
	vals := make([]float64, n)
	if t.Class == ClassBit {
		for i := range vals {
			vals[i] = float64((src[i/8] >> uint(7-i%8)) & 1)
		}
		return vals, size, nil
	}
	for i := range vals {
		vals[i] = Get(src, t, vbin.FileOrder, i)
	}
	return vals, size, nil
}

// Convert checks that v is representable by t and returns it rounded to
// t's precision. Integer types reject fractional values.
func Convert(v float64, t Type) (float64, error) {
	if t.Class == ClassFloat {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return v, nil
		}
		if v < t.Min() || v > t.Max() {
			return 0, errors.Wrapf(ErrRange, "%g as %s", v, t)
		}
		if t.Precision == 32 {
			return float64(float32(v)), nil
		}
		return v, nil
	}
	if math.IsNaN(v) || v != math.Trunc(v) || v < t.Min() || v > t.Max() {
		return 0, errors.Wrapf(ErrRange, "%g as %s", v, t)
	}
	return v, nil
}

// Parse parses the textual form of a value of type t.
func Parse(s string, t Type) (float64, error) {
	if t.IsInteger() {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Convert(float64(i), t)
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Newf("cannot parse %q as %s", s, t)
	}
	return Convert(f, t)
}

// Format returns the textual form of v as written in a file header.
func Format(v float64, t Type) string {
	switch t.Class {
	case ClassFloat:
		return strconv.FormatFloat(v, 'g', -1, t.Precision)
	default:
		return strconv.FormatInt(int64(v), 10)
	}
}

// FromGo returns the numeric value and natural type of a Go value.
func FromGo(v interface{}) (float64, Type, bool) {
	switch x := v.(type) {
	case uint8:
		return float64(x), UByte, true
	case int8:
		return float64(x), SByte, true
	case int16:
		return float64(x), Short, true
	case int32:
		return float64(x), Long, true
	case float32:
		return float64(x), Float, true
	case float64:
		return x, Double, true
	case int:
		return float64(x), Int64, true
	case int64:
		return float64(x), Int64, true
	case bool:
		if x {
			return 1, Bit, true
		}
		return 0, Bit, true
	}
	return 0, Type{}, false
}

// ToGo returns v as the Go type that holds values of t.
func ToGo(v float64, t Type) interface{} {
	switch t {
	case Bit, UByte:
		return uint8(v)
	case SByte:
		return int8(v)
	case Short:
		return int16(v)
	case Long:
		return int32(v)
	case Float:
		return float32(v)
	case Double:
		return v
	case Int64:
		return int64(v)
	}
	panic(errors.AssertionFailedf("dtype: ToGo on unsupported type %s", t))
}
