package vista

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"

	vbin "github.com/robert-malhotra/go-vista/internal/binary"
	"github.com/robert-malhotra/go-vista/internal/dtype"
	"github.com/robert-malhotra/go-vista/internal/layout"
)

// Image attribute names.
const (
	NBandsAttr     = "nbands"
	NRowsAttr      = "nrows"
	NColumnsAttr   = "ncolumns"
	RepnAttr       = "repn"
	OriNBandsAttr  = "ori_nbands"
	OriNRowsAttr   = "ori_nrows"
	OriNColsAttr   = "ori_ncolumns"
	TopMarginAttr  = "top_margin"
	LeftMarginAttr = "left_margin"
)

// Image is a multi-band array of pixels. Pixels are held band by band,
// each band row by row, in the host byte order of the registry that
// created the image. Bit pixels take one byte each.
type Image struct {
	shape layout.Planar
	repn  RepnKind
	dt    dtype.Type
	order binary.ByteOrder
	data  []byte
	attrs *List
}

// NewImage creates a zero-filled image in the machine's byte order.
func NewImage(nbands, nrows, ncolumns int, repn RepnKind) (*Image, error) {
	return NewImageOrder(binary.NativeEndian, nbands, nrows, ncolumns, repn)
}

// NewImageOrder creates a zero-filled image whose pixels are held in
// the given byte order.
func NewImageOrder(order binary.ByteOrder, nbands, nrows, ncolumns int, repn RepnKind) (*Image, error) {
	dt, ok := numericType(repn)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupported, "image pixel repn %d", repn)
	}
	if _, ok := pixelCount(math.MaxInt/8, nbands, nrows, ncolumns); !ok {
		return nil, errors.Wrapf(ErrBadValue, "image size %dx%dx%d", nbands, nrows, ncolumns)
	}
	shape := layout.Planar{NBands: nbands, NRows: nrows, NColumns: ncolumns, PixelSize: dt.Size()}
	return &Image{
		shape: shape,
		repn:  repn,
		dt:    dt,
		order: order,
		data:  make([]byte, shape.Size()),
		attrs: NewList(),
	}, nil
}

// NBands returns the number of bands.
func (img *Image) NBands() int { return img.shape.NBands }

// NRows returns the number of rows.
func (img *Image) NRows() int { return img.shape.NRows }

// NColumns returns the number of columns.
func (img *Image) NColumns() int { return img.shape.NColumns }

// Repn returns the pixel representation.
func (img *Image) Repn() RepnKind { return img.repn }

// PixelSize returns the in-memory size of one pixel in bytes.
func (img *Image) PixelSize() int { return img.shape.PixelSize }

// NPixels returns the number of pixels in all bands.
func (img *Image) NPixels() int { return img.shape.NPixels() }

// ByteOrder returns the byte order of the pixel data.
func (img *Image) ByteOrder() binary.ByteOrder { return img.order }

// Data returns the pixel buffer. It is shared with the image.
func (img *Image) Data() []byte { return img.data }

// Band returns the pixels of one band, shared with the image.
func (img *Image) Band(band int) []byte {
	size := img.shape.BandSize()
	return img.data[int64(band)*size : int64(band+1)*size]
}

// Attrs returns the image's attribute list.
func (img *Image) Attrs() *List { return img.attrs }

// Pixel returns the value of a pixel. It panics if the pixel is outside
// the image.
func (img *Image) Pixel(band, row, column int) float64 {
	img.check(band, row, column)
	return dtype.Get(img.data, img.dt, img.order, img.shape.Index(band, row, column))
}

// SetPixel sets the value of a pixel. It panics if the pixel is outside
// the image and fails if v cannot be represented by the image's repn.
func (img *Image) SetPixel(band, row, column int, v float64) error {
	img.check(band, row, column)
	cv, err := dtype.Convert(v, img.dt)
	if err != nil {
		return errors.Mark(err, ErrBadValue)
	}
	dtype.Put(img.data, img.dt, img.order, img.shape.Index(band, row, column), cv)
	return nil
}

func (img *Image) check(band, row, column int) {
	if !img.shape.Contains(band, row, column) {
		panic(errors.AssertionFailedf("pixel (%d, %d, %d) outside %dx%dx%d image",
			band, row, column, img.shape.NBands, img.shape.NRows, img.shape.NColumns))
	}
}

// SameShape reports whether img and o have the same size and repn.
func (img *Image) SameShape(o *Image) bool {
	return img.shape == o.shape && img.repn == o.repn
}

// Equal reports whether img and o have the same shape and pixel values.
// Attributes are not compared.
func (img *Image) Equal(o *Image) bool {
	if !img.SameShape(o) {
		return false
	}
	if img.shape.PixelSize == 1 || vbin.IsBigEndian(img.order) == vbin.IsBigEndian(o.order) {
		return bytes.Equal(img.data, o.data)
	}
	for i, n := 0, img.NPixels(); i < n; i++ {
		if dtype.Get(img.data, img.dt, img.order, i) != dtype.Get(o.data, o.dt, o.order, i) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the image.
func (img *Image) Copy() Object {
	out := *img
	out.data = append([]byte(nil), img.data...)
	out.attrs = img.attrs.Copy()
	return &out
}

// Expand returns the full image an image cropped on writing was taken
// from. The stored pixels are placed at top_margin and left_margin in a
// zero-filled image of ori_nbands by ori_nrows by ori_ncolumns; the
// cropping attributes are dropped from the result. An image without
// ori_nrows and ori_ncolumns is copied as is.
func (img *Image) Expand() (*Image, error) {
	var oriRows, oriCols int
	rr := img.attrs.GetAttr(OriNRowsAttr, nil, LongRepn, &oriRows)
	cr := img.attrs.GetAttr(OriNColsAttr, nil, LongRepn, &oriCols)
	if rr == AttrNotFound && cr == AttrNotFound {
		return img.Copy().(*Image), nil
	}
	if rr != AttrFound || cr != AttrFound {
		return nil, errors.Wrapf(ErrBadValue, "%s/%s: %s/%s", OriNRowsAttr, OriNColsAttr, rr, cr)
	}

	oriBands := img.NBands()
	var top, left int
	for _, a := range []struct {
		name string
		dest *int
	}{
		{OriNBandsAttr, &oriBands},
		{TopMarginAttr, &top},
		{LeftMarginAttr, &left},
	} {
		if img.attrs.GetAttr(a.name, nil, LongRepn, a.dest) == AttrBadValue {
			return nil, errors.Wrapf(ErrBadValue, "%q", a.name)
		}
	}
	if top < 0 || left < 0 || oriBands < img.NBands() ||
		top+img.NRows() > oriRows || left+img.NColumns() > oriCols {
		return nil, errors.Wrapf(ErrOutOfRange, "%dx%dx%d image at (%d, %d) in %dx%dx%d",
			img.NBands(), img.NRows(), img.NColumns(), top, left, oriBands, oriRows, oriCols)
	}

	out, err := NewImageOrder(img.order, oriBands, oriRows, oriCols, img.repn)
	if err != nil {
		return nil, err
	}
	rowSize := img.shape.RowSize()
	ps := int64(img.shape.PixelSize)
	for b := 0; b < img.NBands(); b++ {
		for r := 0; r < img.NRows(); r++ {
			src := int64(img.shape.Index(b, r, 0)) * ps
			dst := int64(out.shape.Index(b, r+top, left)) * ps
			copy(out.data[dst:dst+rowSize], img.data[src:src+rowSize])
		}
	}

	out.attrs = img.attrs.Copy()
	for _, name := range []string{OriNBandsAttr, OriNRowsAttr, OriNColsAttr, TopMarginAttr, LeftMarginAttr} {
		if c, ok := out.attrs.Lookup(name); ok {
			c.Delete()
		}
	}
	return out, nil
}

// imageCodec encodes and decodes images.
type imageCodec struct{}

var imageShapeAttrs = []string{NBandsAttr, NRowsAttr, NColumnsAttr, RepnAttr}

func (imageCodec) Decode(reg *Registry, typeName string, b *Bundle) (Object, error) {
	attrs := b.List
	nbands, nrows, ncolumns := 1, 0, 0
	var repn int
	for _, a := range []struct {
		name     string
		dict     Dict
		dest     *int
		required bool
	}{
		{NBandsAttr, nil, &nbands, false},
		{NRowsAttr, nil, &nrows, true},
		{NColumnsAttr, nil, &ncolumns, true},
		{RepnAttr, NumericRepnDict, &repn, true},
	} {
		if err := attrs.ExtractAttr(a.name, a.dict, LongRepn, a.dest, a.required); err != nil {
			warnBadValue(reg, typeName, err)
			return nil, decodeErrorf(typeName, "%v", err)
		}
	}

	dt, ok := numericType(RepnKind(repn))
	if !ok {
		return nil, decodeErrorf(typeName, "pixel repn %d", repn)
	}
	// No pixel takes less than one bit.
	n, ok := pixelCount(int64(b.Length)*8, nbands, nrows, ncolumns)
	if !ok || dt.PackedLen(int(n)) != b.Length || len(b.Data) != b.Length {
		return nil, decodeErrorf(typeName, "%dx%dx%d %s image does not match %d bytes of data",
			nbands, nrows, ncolumns, reg.Name(RepnKind(repn)), len(b.Data))
	}
	img, err := NewImageOrder(reg.HostOrder(), nbands, nrows, ncolumns, RepnKind(repn))
	if err != nil {
		return nil, decodeErrorf(typeName, "%v", err)
	}
	if err := dtype.Unpack(img.data, b.Data, img.dt, img.order, int(n)); err != nil {
		return nil, decodeErrorf(typeName, "%v", err)
	}
	img.attrs = attrs
	b.List, b.Data = nil, nil
	return img, nil
}

func (imageCodec) EncodeAttrs(reg *Registry, obj Object) (*List, int, error) {
	img := obj.(*Image)
	attrs := img.attrs
	attrs.PrependAttr(RepnAttr, nil, StringRepn, reg.Name(img.repn))
	attrs.PrependAttr(NColumnsAttr, nil, LongRepn, int32(img.NColumns()))
	attrs.PrependAttr(NRowsAttr, nil, LongRepn, int32(img.NRows()))
	attrs.PrependAttr(NBandsAttr, nil, LongRepn, int32(img.NBands()))
	return attrs, img.dt.PackedLen(img.NPixels()), nil
}

func (imageCodec) EncodeData(reg *Registry, obj Object, attrs *List, length int) (Payload, error) {
	img := obj.(*Image)
	stripAttrs(attrs, imageShapeAttrs)
	if length == 0 {
		return Borrowed(nil), nil
	}
	if img.dt != dtype.Bit && (img.shape.PixelSize == 1 || vbin.IsBigEndian(img.order)) {
		return Borrowed(img.data), nil
	}
	buf := make([]byte, length)
	if err := dtype.Pack(buf, img.data, img.dt, img.order, img.NPixels()); err != nil {
		return Payload{}, err
	}
	return Owned(buf), nil
}

// pixelCount returns the product of the dimensions if all are positive
// and it does not exceed limit.
func pixelCount(limit int64, dims ...int) (int64, bool) {
	n := int64(1)
	for _, d := range dims {
		if d <= 0 || int64(d) > limit/n {
			return 0, false
		}
		n *= int64(d)
	}
	return n, true
}

// stripAttrs deletes the first attribute of each name from l.
func stripAttrs(l *List, names []string) {
	for _, name := range names {
		if c, ok := l.Lookup(name); ok {
			c.Delete()
		}
	}
}

// warnBadValue logs err if it reports an attribute with a bad value.
func warnBadValue(reg *Registry, typeName string, err error) {
	if errors.Is(err, ErrBadValue) {
		reg.Logger().Warn("bad attribute value", "type", typeName, "err", err)
	}
}
