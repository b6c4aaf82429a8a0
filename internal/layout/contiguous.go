package layout

import (
	"github.com/cockroachdb/errors"

	"github.com/robert-malhotra/go-vista/internal/binary"
)

// Contiguous represents one object's data stored in a single block.
type Contiguous struct {
	address uint64
	size    uint64
	reader  *binary.Reader
}

// NewContiguous creates a handler for size bytes at the absolute file
// offset address.
func NewContiguous(address, size uint64, reader *binary.Reader) *Contiguous {
	return &Contiguous{
		address: address,
		size:    size,
		reader:  reader,
	}
}

// Read reads all of the object's data.
func (c *Contiguous) Read() ([]byte, error) {
	return c.ReadExtents([]Extent{{Offset: 0, Length: int64(c.size)}})
}

// ReadExtents reads each extent in turn and returns their concatenation.
func (c *Contiguous) ReadExtents(exts []Extent) ([]byte, error) {
	var total int64
	for _, e := range exts {
		if e.Offset < 0 || e.Length < 0 || uint64(e.Offset+e.Length) > c.size {
			return nil, errors.Wrapf(ErrOutOfRange, "extent [%d, %d) of %d bytes", e.Offset, e.Offset+e.Length, c.size)
		}
		total += e.Length
	}

	buf := make([]byte, total)
	off := int64(0)
	for _, e := range exts {
		r := c.reader.At(int64(c.address) + e.Offset)
		if err := r.ReadFull(buf[off : off+e.Length]); err != nil {
			return nil, errors.Wrap(err, "reading contiguous data")
		}
		off += e.Length
	}
	return buf, nil
}

// Address returns the data address.
func (c *Contiguous) Address() uint64 {
	return c.address
}

// Size returns the data size in bytes.
func (c *Contiguous) Size() uint64 {
	return c.size
}
