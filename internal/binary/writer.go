package binary

import (
	"io"
)

// Writer writes sequentially to an io.Writer, counting bytes and keeping
// the first error. Once an error occurs every later write is a no-op.
type Writer struct {
	w   io.Writer
	pos int64
	err error
}

// NewWriter creates a writer whose position starts at zero.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int64 {
	return w.pos
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// WriteBytes writes data at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if w.err != nil {
		return w.err
	}
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.Write(data)
	w.pos += int64(n)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	w.err = err
	return err
}

// WriteString writes s at the current position.
func (w *Writer) WriteString(s string) error {
	return w.WriteBytes([]byte(s))
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) error {
	if n <= 0 {
		return nil
	}
	return w.WriteBytes(make([]byte, n))
}

// PadTo writes zero bytes until the position reaches off. It does nothing
// when the writer is already at or beyond off.
func (w *Writer) PadTo(off int64) error {
	if off <= w.pos {
		return w.err
	}
	return w.WriteZeros(int(off - w.pos))
}
