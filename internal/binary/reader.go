package binary

import (
	"io"

	"github.com/cockroachdb/errors"
)

// Reader reads byte regions from an io.ReaderAt at an explicit position.
type Reader struct {
	r   io.ReaderAt
	pos int64
}

// NewReader creates a reader positioned at the start of r.
func NewReader(r io.ReaderAt) *Reader {
	return &Reader{r: r}
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{r: r.r, pos: offset}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ReadBytes reads exactly n bytes from the current position.
// A short read is reported as io.ErrUnexpectedEOF.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if err := r.ReadFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadFull fills buf from the current position and advances past it.
func (r *Reader) ReadFull(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	n, err := r.r.ReadAt(buf, r.pos)
	if n == len(buf) {
		// io.ReaderAt may return io.EOF together with a full buffer.
		r.pos += int64(n)
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return errors.Wrapf(err, "reading %d bytes at offset %d", len(buf), r.pos)
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) {
	r.pos += n
}
