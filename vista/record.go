package vista

import (
	"math"

	"github.com/cockroachdb/errors"

	vbin "github.com/robert-malhotra/go-vista/internal/binary"
	"github.com/robert-malhotra/go-vista/internal/dtype"
)

func putLong(buf []byte, off, v int) int {
	vbin.FileOrder.PutUint32(buf[off:], uint32(int32(v)))
	return off + 4
}

func putFloat(buf []byte, off int, v float32) int {
	vbin.FileOrder.PutUint32(buf[off:], math.Float32bits(v))
	return off + 4
}

// recordReader reads the fields of packed records, remembering the first
// short read.
type recordReader struct {
	data []byte
	off  int
	err  error
}

func (r *recordReader) more() bool {
	return r.err == nil && r.off < len(r.data)
}

// remaining returns the number of unread bytes.
func (r *recordReader) remaining() int {
	return len(r.data) - r.off
}

func (r *recordReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > r.remaining() {
		r.err = errors.Newf("record truncated at byte %d: need %d more, have %d", r.off, n, len(r.data)-r.off)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *recordReader) long() int32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return int32(vbin.FileOrder.Uint32(b))
}

func (r *recordReader) float() float32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(vbin.FileOrder.Uint32(b))
}

func (r *recordReader) values(dt dtype.Type, n int) []float64 {
	if r.err == nil && int64(n)*int64(dt.Precision) > int64(r.remaining())*8 {
		r.take(r.remaining() + 1)
	}
	b := r.take(dt.PackedLen(n))
	if b == nil {
		return nil
	}
	vals, _, err := dtype.UnpackValues(b, dt, n)
	if err != nil {
		r.err = err
	}
	return vals
}

func (r *recordReader) floats(n int) []float32 {
	if r.err == nil && n > r.remaining()/4 {
		r.take(r.remaining() + 1)
	}
	if r.err != nil {
		return nil
	}
	vals := make([]float32, n)
	for i := range vals {
		vals[i] = r.float()
	}
	return vals
}
