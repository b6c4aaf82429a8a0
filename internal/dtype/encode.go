package dtype

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"

	vbin "github.com/robert-malhotra/go-vista/internal/binary"
)

// Get returns element i of a host-order buffer of t elements.
func Get(buf []byte, t Type, order binary.ByteOrder, i int) float64 {
	switch t {
	case Bit:
		if buf[i] != 0 {
			return 1
		}
		return 0
	case UByte:
		return float64(buf[i])
	case SByte:
		return float64(int8(buf[i]))
	case Short:
		return float64(int16(order.Uint16(buf[2*i:])))
	case Long:
		return float64(int32(order.Uint32(buf[4*i:])))
	case Float:
		return float64(math.Float32frombits(order.Uint32(buf[4*i:])))
	case Double:
		return math.Float64frombits(order.Uint64(buf[8*i:]))
	}
	panic(errors.AssertionFailedf("dtype: Get on unsupported type %s", t))
}

// Put stores v as element i of a host-order buffer of t elements.
// The caller is responsible for v being representable by t.
func Put(buf []byte, t Type, order binary.ByteOrder, i int, v float64) {
	switch t {
	case Bit:
		if v != 0 {
			buf[i] = 1
		} else {
			buf[i] = 0
		}
	case UByte:
		buf[i] = uint8(v)
	case SByte:
		buf[i] = uint8(int8(v))
	case Short:
		order.PutUint16(buf[2*i:], uint16(int16(v)))
	case Long:
		order.PutUint32(buf[4*i:], uint32(int32(v)))
	case Float:
		order.PutUint32(buf[4*i:], math.Float32bits(float32(v)))
	case Double:
		order.PutUint64(buf[8*i:], math.Float64bits(v))
	default:
		panic(errors.AssertionFailedf("dtype: Put on unsupported type %s", t))
	}
}

// Pack converts n elements of t from the host-order buffer src into the
// packed file layout in dst. dst must hold exactly t.PackedLen(n) bytes.
func Pack(dst, src []byte, t Type, host binary.ByteOrder, n int) error {
	if len(src) < n*t.Size() {
		return errors.Newf("pack: source holds %d bytes, need %d", len(src), n*t.Size())
	}
	if len(dst) != t.PackedLen(n) {
		return errors.Newf("pack: destination holds %d bytes, need %d", len(dst), t.PackedLen(n))
	}
	if t.Class == ClassBit {
		clear(dst)
		for i := 0; i < n; i++ {
			if src[i] != 0 {
				dst[i/8] |= 0x80 >> uint(i%8)
			}
		}
		return nil
	}
	copy(dst, src[:n*t.Size()])
	return vbin.Normalize(dst, t.Size(), host)
}

// PackValues writes vals into dst in the packed file layout of t and
// returns the number of bytes written.
func PackValues(dst []byte, t Type, vals []float64) (int, error) {
	n := t.PackedLen(len(vals))
	if len(dst) < n {
		return 0, errors.Newf("pack: destination holds %d bytes, need %d", len(dst), n)
	}
	if t.Class == ClassBit {
		clear(dst[:n])
		for i, v := range vals {
			if v != 0 {
				dst[i/8] |= 0x80 >> uint(i%8)
			}
		}
		return n, nil
	}
	for i, v := range vals {
		Put(dst, t, vbin.FileOrder, i, v)
	}
	return n, nil
}
