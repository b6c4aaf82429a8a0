package layout

import (
	"github.com/cockroachdb/errors"
)

// ErrOutOfRange is returned for regions that fall outside the array.
var ErrOutOfRange = errors.New("region out of range")

// Extent is a byte range relative to the start of an object's data.
type Extent struct {
	Offset int64
	Length int64
}

// Planar describes a band-major, row-major array of fixed-size pixels.
type Planar struct {
	NBands    int
	NRows     int
	NColumns  int
	PixelSize int
}

// RowSize returns the number of bytes in one row.
func (p Planar) RowSize() int64 {
	return int64(p.NColumns) * int64(p.PixelSize)
}

// BandSize returns the number of bytes in one band.
func (p Planar) BandSize() int64 {
	return int64(p.NRows) * p.RowSize()
}

// Size returns the number of bytes in the whole array.
func (p Planar) Size() int64 {
	return int64(p.NBands) * p.BandSize()
}

// NPixels returns the number of pixels in the array.
func (p Planar) NPixels() int {
	return p.NBands * p.NRows * p.NColumns
}

// Index returns the element index of pixel (band, row, column).
func (p Planar) Index(band, row, column int) int {
	return (band*p.NRows+row)*p.NColumns + column
}

// Contains reports whether (band, row, column) lies inside the array.
func (p Planar) Contains(band, row, column int) bool {
	return band >= 0 && band < p.NBands &&
		row >= 0 && row < p.NRows &&
		column >= 0 && column < p.NColumns
}

// RowExtents returns, for every band, the extent covering count rows
// starting at row start.
func (p Planar) RowExtents(start, count int) ([]Extent, error) {
	if start < 0 || count <= 0 || start > p.NRows || count > p.NRows-start {
		return nil, errors.Wrapf(ErrOutOfRange, "%d rows from row %d of %d", count, start, p.NRows)
	}
	exts := make([]Extent, p.NBands)
	for band := range exts {
		exts[band] = Extent{
			Offset: int64(band)*p.BandSize() + int64(start)*p.RowSize(),
			Length: int64(count) * p.RowSize(),
		}
	}
	return exts, nil
}

// BandExtent returns the single extent covering count bands starting at
// band start.
func (p Planar) BandExtent(start, count int) (Extent, error) {
	if start < 0 || count <= 0 || start > p.NBands || count > p.NBands-start {
		return Extent{}, errors.Wrapf(ErrOutOfRange, "%d bands from band %d of %d", count, start, p.NBands)
	}
	return Extent{
		Offset: int64(start) * p.BandSize(),
		Length: int64(count) * p.BandSize(),
	}, nil
}
