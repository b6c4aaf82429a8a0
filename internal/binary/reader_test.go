package binary

import (
	"io"
	"testing"

	"github.com/cockroachdb/errors"
)

// bytesReaderAt wraps a byte slice to implement io.ReaderAt.
type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestReaderReadBytes(t *testing.T) {
	data := bytesReaderAt{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(data)

	buf, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if string(buf) != "\x00\x01\x02" {
		t.Errorf("unexpected bytes %x", buf)
	}
	if r.Pos() != 3 {
		t.Errorf("expected pos 3, got %d", r.Pos())
	}
}

func TestReaderAt(t *testing.T) {
	data := bytesReaderAt{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(data)

	// Read from offset 3
	r2 := r.At(3)
	v, err := r2.ReadBytes(1)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if v[0] != 0x03 {
		t.Errorf("expected 0x03, got 0x%02x", v[0])
	}

	// Original reader should be unaffected
	if r.Pos() != 0 {
		t.Errorf("expected original pos 0, got %d", r.Pos())
	}
}

func TestReaderSkip(t *testing.T) {
	data := bytesReaderAt{0x00, 0x01, 0x02, 0x03, 0x04}
	r := NewReader(data)

	r.Skip(2)
	v, err := r.ReadBytes(1)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if v[0] != 0x02 {
		t.Errorf("expected 0x02, got 0x%02x", v[0])
	}
}

func TestReaderFullBufferWithEOF(t *testing.T) {
	// The last bytes of a file come back with io.EOF.
	data := bytesReaderAt{0x0A, 0x0B}
	r := NewReader(data)
	buf, err := r.ReadBytes(2)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if buf[1] != 0x0B {
		t.Errorf("expected 0x0B, got 0x%02x", buf[1])
	}
}

func TestReaderShortRead(t *testing.T) {
	data := bytesReaderAt{0x00, 0x01}
	r := NewReader(data).At(1)

	_, err := r.ReadBytes(4)
	if err == nil {
		t.Fatal("expected error for short read")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	if r.Pos() != 1 {
		t.Errorf("position must not advance on failure, got %d", r.Pos())
	}
}

func TestReaderZeroLength(t *testing.T) {
	r := NewReader(bytesReaderAt{})
	buf, err := r.ReadBytes(0)
	if err != nil || buf != nil {
		t.Errorf("expected nil, nil; got %v, %v", buf, err)
	}
}
