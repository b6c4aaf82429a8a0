package vista

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"

	vbin "github.com/robert-malhotra/go-vista/internal/binary"
	"github.com/robert-malhotra/go-vista/internal/layout"
)

// ImageInfo describes where an image's pixels are stored in a file.
type ImageInfo struct {
	Name      string
	NBands    int
	NRows     int
	NColumns  int
	Repn      RepnKind
	PixelSize int

	// Data is the offset of the pixels within the data segment and
	// Length their size in bytes.
	Data   int64
	Length int64
	// OffsetHdr is the file offset of the data segment.
	OffsetHdr int64

	OriNBands   int
	OriNRows    int
	OriNColumns int
	TopMargin   int
	LeftMargin  int
}

// Address returns the file offset of the image's first pixel.
func (info ImageInfo) Address() int64 {
	return info.OffsetHdr + info.Data
}

func (info ImageInfo) planar() layout.Planar {
	return layout.Planar{
		NBands:    info.NBands,
		NRows:     info.NRows,
		NColumns:  info.NColumns,
		PixelSize: info.PixelSize,
	}
}

// ScanImageInfo reads only the header of a file and describes each of
// its top-level images. A missing nbands is taken to be 1. A missing
// nrows, ncolumns or repn is logged and recorded as zero, and the block
// reader then refuses the image.
func ScanImageInfo(r io.Reader, reg *Registry) ([]ImageInfo, error) {
	hdr, err := parseHeader(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	defer hdr.list.Destroy()

	var infos []ImageInfo
	for c := hdr.list.First(); c.Exists(); c.Next() {
		b, ok := c.Value().(*Bundle)
		if !ok || c.Kind() != BundleRepn || b.TypeName != ImageTypeName {
			continue
		}
		info := ImageInfo{
			Name:      c.Name(),
			NBands:    1,
			Data:      b.offset,
			Length:    int64(b.Length),
			OffsetHdr: hdr.dataOffset,
		}
		if info.Data < 0 {
			info.Data = 0
		}
		logger := reg.Logger().With("image", info.Name)

		for _, a := range []struct {
			name string
			dest *int
			warn bool
		}{
			{NBandsAttr, &info.NBands, false},
			{NRowsAttr, &info.NRows, true},
			{NColumnsAttr, &info.NColumns, true},
			{OriNBandsAttr, &info.OriNBands, false},
			{OriNRowsAttr, &info.OriNRows, false},
			{OriNColsAttr, &info.OriNColumns, false},
			{TopMarginAttr, &info.TopMargin, false},
			{LeftMarginAttr, &info.LeftMargin, false},
		} {
			switch res := b.List.GetAttr(a.name, nil, LongRepn, a.dest); {
			case res == AttrBadValue:
				logger.Warn("bad attribute value", "name", a.name)
			case res == AttrNotFound && a.warn:
				logger.Warn("attribute missing", "name", a.name)
			}
		}

		var repn int
		if res := b.List.GetAttr(RepnAttr, NumericRepnDict, LongRepn, &repn); res != AttrFound {
			logger.Warn("attribute missing or bad", "name", RepnAttr, "result", res)
		} else if _, ok := numericType(RepnKind(repn)); ok {
			info.Repn = RepnKind(repn)
			info.PixelSize = reg.Size(info.Repn)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// BlockReader reads parts of an image's pixels directly from a file,
// without decoding the whole image.
type BlockReader struct {
	r     *vbin.Reader
	order binary.ByteOrder
}

// NewBlockReader creates a block reader over r. Pixels are returned in
// the registry's host byte order.
func NewBlockReader(r io.ReaderAt, reg *Registry) *BlockReader {
	return &BlockReader{r: vbin.NewReader(r), order: reg.HostOrder()}
}

// region returns the contiguous region holding an image's pixels.
func (br *BlockReader) region(info ImageInfo) (*layout.Contiguous, layout.Planar, error) {
	p := info.planar()
	switch {
	case info.Repn == BitRepn:
		return nil, p, errors.Wrapf(ErrUnsupported, "%s: block reads of bit images", info.Name)
	case info.PixelSize <= 0:
		return nil, p, errors.Wrapf(ErrUnsupported, "%s: pixel repn %d", info.Name, info.Repn)
	case info.NBands <= 0 || info.NRows <= 0 || info.NColumns <= 0:
		return nil, p, errors.Wrapf(ErrBadValue, "%s: image size %dx%dx%d", info.Name, info.NBands, info.NRows, info.NColumns)
	case info.Length != p.Size():
		return nil, p, errors.Wrapf(ErrBadValue, "%s: length %d, image size %d", info.Name, info.Length, p.Size())
	}
	return layout.NewContiguous(uint64(info.Address()), uint64(info.Length), br.r), p, nil
}

func (br *BlockReader) read(c *layout.Contiguous, exts []layout.Extent, info ImageInfo) ([]byte, error) {
	buf, err := c.ReadExtents(exts)
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, errors.Mark(errors.Wrap(err, info.Name), ErrTruncated)
	case err != nil:
		return nil, errors.Wrap(err, info.Name)
	}
	if err := vbin.Normalize(buf, info.PixelSize, br.order); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadRows returns count rows starting at row start, of every band. The
// rows of each band follow those of the previous band.
func (br *BlockReader) ReadRows(info ImageInfo, start, count int) ([]byte, error) {
	c, p, err := br.region(info)
	if err != nil {
		return nil, err
	}
	exts, err := p.RowExtents(start, count)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, info.Name), ErrOutOfRange)
	}
	return br.read(c, exts, info)
}

// ReadBands returns count whole bands starting at band start.
func (br *BlockReader) ReadBands(info ImageInfo, start, count int) ([]byte, error) {
	c, p, err := br.region(info)
	if err != nil {
		return nil, err
	}
	ext, err := p.BandExtent(start, count)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, info.Name), ErrOutOfRange)
	}
	return br.read(c, []layout.Extent{ext}, info)
}

// RowsImage is ReadRows returning the rows as an image.
func (br *BlockReader) RowsImage(info ImageInfo, start, count int) (*Image, error) {
	buf, err := br.ReadRows(info, start, count)
	if err != nil {
		return nil, err
	}
	return br.wrap(buf, info.NBands, count, info)
}

// BandsImage is ReadBands returning the bands as an image.
func (br *BlockReader) BandsImage(info ImageInfo, start, count int) (*Image, error) {
	buf, err := br.ReadBands(info, start, count)
	if err != nil {
		return nil, err
	}
	return br.wrap(buf, count, info.NRows, info)
}

func (br *BlockReader) wrap(buf []byte, nbands, nrows int, info ImageInfo) (*Image, error) {
	img, err := NewImageOrder(br.order, nbands, nrows, info.NColumns, info.Repn)
	if err != nil {
		return nil, err
	}
	img.data = buf
	return img, nil
}
