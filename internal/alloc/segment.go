package alloc

import (
	"github.com/cockroachdb/errors"
)

// Block is the place of one payload in the data segment.
type Block struct {
	Name   string // attribute name of the object owning the payload
	Offset uint64
	Length uint64
}

// End returns the offset just past the block.
func (b Block) End() uint64 { return b.Offset + b.Length }

// Segment lays out the payloads of a file back to back.
type Segment struct {
	end    uint64
	blocks []Block
}

// NewSegment returns an empty segment.
func NewSegment() *Segment {
	return &Segment{}
}

// Reserve places a payload of the given length at the end of the segment
// and returns its offset. Empty payloads are not recorded; they get the
// current end.
func (s *Segment) Reserve(name string, length uint64) uint64 {
	off := s.end
	if length == 0 {
		return off
	}
	s.blocks = append(s.blocks, Block{Name: name, Offset: off, Length: length})
	s.end += length
	return off
}

// Len returns the size of the segment in bytes.
func (s *Segment) Len() uint64 {
	return s.end
}

// Blocks returns the reserved blocks in order.
func (s *Segment) Blocks() []Block {
	return append([]Block(nil), s.blocks...)
}

// Validate checks that the blocks tile the segment exactly, each starting
// where the previous one ended.
func (s *Segment) Validate() error {
	var next uint64
	for _, b := range s.blocks {
		switch {
		case b.Offset < next:
			return errors.Newf("payload %q at %d overlaps the previous one ending at %d", b.Name, b.Offset, next)
		case b.Offset > next:
			return errors.Newf("gap of %d bytes before payload %q", b.Offset-next, b.Name)
		}
		next = b.End()
	}
	if next != s.end {
		return errors.Newf("payloads end at %d, segment at %d", next, s.end)
	}
	return nil
}
