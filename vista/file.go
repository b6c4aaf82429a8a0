package vista

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/robert-malhotra/go-vista/internal/alloc"
	"github.com/robert-malhotra/go-vista/internal/binary"
	"github.com/robert-malhotra/go-vista/internal/header"
)

// ReadFile reads a Vista data file from r.
//
// Payloads are read in order of their offsets, so r may be a pipe.
// Bundles of types registered in reg are replaced in place by decoded
// objects; bundles of other types stay in the list holding their data.
// If the header is malformed, the data segment is truncated or a
// registered type fails to decode, ReadFile returns a nil list.
func ReadFile(r io.Reader, reg *Registry, opts ...ReadOption) (*List, error) {
	o := defaultReadOptions()
	for _, opt := range opts {
		opt(o)
	}

	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	hdr, err := parseHeader(br)
	if err != nil {
		return nil, err
	}
	if o.headerOnly {
		return hdr.list, nil
	}

	if err := readPayloads(br, hdr.refs); err != nil {
		hdr.list.Destroy()
		return nil, err
	}
	if !o.decode {
		return hdr.list, nil
	}
	if err := decodeBundles(reg, hdr.refs); err != nil {
		hdr.list.Destroy()
		return nil, err
	}
	return hdr.list, nil
}

// readPayloads fills in the data of every bundle from the data segment.
func readPayloads(r io.Reader, refs []bundleRef) error {
	byOffset := make([]*Bundle, 0, len(refs))
	for _, ref := range refs {
		if ref.bundle.Length > 0 {
			byOffset = append(byOffset, ref.bundle)
		}
	}
	sort.SliceStable(byOffset, func(i, j int) bool {
		return byOffset[i].offset < byOffset[j].offset
	})

	var pos int64
	for _, b := range byOffset {
		if b.offset < pos {
			return errors.Wrapf(ErrBadHeader, "%s payload at offset %d overlaps the previous payload ending at %d",
				b.TypeName, b.offset, pos)
		}
		if gap := b.offset - pos; gap > 0 {
			n, err := io.CopyN(io.Discard, r, gap)
			pos += n
			if err != nil {
				return truncated(err, b, pos)
			}
		}
		var data bytes.Buffer
		n, err := data.ReadFrom(io.LimitReader(r, int64(b.Length)))
		pos += n
		if err != nil {
			return truncated(err, b, pos)
		}
		if n != int64(b.Length) {
			return truncated(io.ErrUnexpectedEOF, b, pos)
		}
		b.Data = data.Bytes()
	}
	return nil
}

func truncated(err error, b *Bundle, pos int64) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrTruncated, "%s payload [%d, %d) ends at %d",
			b.TypeName, b.offset, b.offset+int64(b.Length), pos)
	}
	return errors.Wrap(err, "reading data segment")
}

// decodeBundles replaces bundles of registered types by their objects.
// Nested bundles are decoded before the bundles containing them.
func decodeBundles(reg *Registry, refs []bundleRef) error {
	for _, ref := range refs {
		b := ref.bundle
		kind, ok := reg.LookupByName(b.TypeName)
		if !ok || !reg.IsComposite(kind) {
			continue
		}
		ti, _ := reg.LookupByKind(kind)
		obj, err := ti.Codec.Decode(reg, b.TypeName, b)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "decoding %q", ref.attr.Name), ErrDecode)
		}
		ref.attr.Kind, ref.attr.Value = kind, obj
	}
	return nil
}

// ReadObjects reads a file and returns its list together with the
// top-level objects of the given kind, in list order.
func ReadObjects(r io.Reader, reg *Registry, kind RepnKind) (*List, []Object, error) {
	list, err := ReadFile(r, reg)
	if err != nil {
		return nil, nil, err
	}
	var objs []Object
	for c := list.First(); c.Exists(); c.Next() {
		if c.Kind() != kind {
			continue
		}
		if obj, ok := c.Value().(Object); ok {
			objs = append(objs, obj)
		}
	}
	return list, objs, nil
}

// ReadFileNamed opens, reads and closes the named file. The path "-"
// reads standard input.
func ReadFileNamed(path string, reg *Registry, opts ...ReadOption) (*List, error) {
	if path == "-" {
		return ReadFile(os.Stdin, reg, opts...)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()
	list, err := ReadFile(f, reg, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return list, nil
}

// WriteFileNamed creates the named file and writes list to it. The path
// "-" writes standard output.
func WriteFileNamed(path string, reg *Registry, list *List) error {
	if path == "-" {
		return WriteFile(os.Stdout, reg, list)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating file")
	}
	if err := WriteFile(f, reg, list); err != nil {
		f.Close()
		return errors.Wrapf(err, "%s", path)
	}
	return errors.Wrap(f.Close(), "closing file")
}

// pendingObject is an object whose attributes have been encoded and
// whose payload is still to be produced.
type pendingObject struct {
	name   string
	codec  Codec
	obj    Object
	attrs  *List
	length int
	offset uint64
}

// fileWriter holds the state of one WriteFile call.
type fileWriter struct {
	reg     *Registry
	enc     *header.Encoder
	alloc   *alloc.Segment
	pending []*pendingObject
	// raw holds the data of bundles written as they are, keyed by their
	// position in pending.
	raw map[int][]byte
}

// WriteFile writes list to w as a Vista data file.
//
// Objects are encoded in two phases: every object's attributes are
// written into the header first, then the payloads follow in the same
// order. The objects themselves are left unchanged, including on error.
func WriteFile(w io.Writer, reg *Registry, list *List) (err error) {
	var hdr bytes.Buffer
	fw := &fileWriter{
		reg:   reg,
		enc:   header.NewEncoder(&hdr),
		alloc: alloc.NewSegment(),
		raw:   make(map[int][]byte),
	}

	payloads := make([]Payload, 0)
	defer func() {
		// Restore the attribute lists of objects not yet through
		// EncodeData.
		for _, p := range fw.pending[len(payloads):] {
			if p.codec != nil {
				_, _ = p.codec.EncodeData(reg, p.obj, p.attrs, p.length)
			}
		}
	}()

	fw.enc.Begin()
	if err := fw.writeList(1, list); err != nil {
		return err
	}
	fw.enc.End()
	if err := fw.enc.Err(); err != nil {
		return errors.Wrap(err, "encoding header")
	}

	var encErr error
	for i, p := range fw.pending {
		var pl Payload
		if p.codec == nil {
			pl = Borrowed(fw.raw[i])
		} else {
			pl, err = p.codec.EncodeData(reg, p.obj, p.attrs, p.length)
			switch {
			case err != nil:
				err = errors.Mark(errors.Wrapf(err, "encoding %q", p.name), ErrEncode)
			case pl.Len() != p.length:
				err = errors.Wrapf(ErrEncode, "%q: payload is %d bytes, header says %d", p.name, pl.Len(), p.length)
			}
			if err != nil && encErr == nil {
				encErr = err
			}
		}
		payloads = append(payloads, pl)
	}
	if encErr != nil {
		return encErr
	}

	if err := fw.alloc.Validate(); err != nil {
		return errors.Mark(err, ErrEncode)
	}

	bw := binary.NewWriter(w)
	_ = bw.WriteBytes(hdr.Bytes())
	base := bw.Pos()
	for i, p := range fw.pending {
		if p.length == 0 {
			continue
		}
		_ = bw.PadTo(base + int64(p.offset))
		if bw.Err() == nil && bw.Pos() != base+int64(p.offset) {
			return errors.AssertionFailedf("%q: payload at %d, want %d", p.name, bw.Pos()-base, p.offset)
		}
		_ = bw.WriteBytes(payloads[i].Bytes())
	}
	return errors.Wrap(bw.Err(), "writing file")
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// writeList writes the attributes of l at the given depth.
func (fw *fileWriter) writeList(depth int, l *List) error {
	for c := l.First(); c.Exists(); c.Next() {
		a := c.Attr()
		switch {
		case a.Kind == AttrListRepn:
			fw.enc.Open(depth, a.Name, "")
			if err := fw.writeList(depth+1, a.Value.(*List)); err != nil {
				return err
			}
			fw.enc.Close(depth)

		case a.Kind == BundleRepn:
			if err := fw.writeBundle(depth, a.Name, a.Value.(*Bundle)); err != nil {
				return err
			}

		case a.Kind == PointerRepn:
			fw.reg.Logger().Warn("attribute has pointer value; not written", "name", a.Name)

		case isPrimitive(a.Kind):
			text, _ := scalarText(a.Kind, a.Value)
			fw.enc.Scalar(depth, a.Name, text)

		default:
			if err := fw.writeObject(depth, a); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeBundle writes a bundle whose data is copied verbatim.
func (fw *fileWriter) writeBundle(depth int, name string, b *Bundle) error {
	length := len(b.Data)
	if b.Data == nil && b.Length > 0 {
		return errors.Wrapf(ErrEncode, "%q: %s bundle has no data", name, b.TypeName)
	}
	fw.enc.Open(depth, name, b.TypeName)
	if length > 0 {
		offset := fw.alloc.Reserve(name, uint64(length))
		fw.raw[len(fw.pending)] = b.Data
		fw.pending = append(fw.pending, &pendingObject{name: name, length: length, offset: offset})
		fw.enc.Scalar(depth+1, dataAttr, formatUint(offset))
		fw.enc.Scalar(depth+1, lengthAttr, formatUint(uint64(length)))
	}
	if b.List != nil {
		if err := fw.writeList(depth+1, b.List); err != nil {
			return err
		}
	}
	fw.enc.Close(depth)
	return nil
}

// writeObject encodes the attributes of a composite object and reserves
// space for its payload.
func (fw *fileWriter) writeObject(depth int, a *Attribute) error {
	ti, ok := fw.reg.LookupByKind(a.Kind)
	if !ok || ti.Codec == nil {
		return errors.Wrapf(ErrUnknownType, "%q has kind %d", a.Name, a.Kind)
	}
	obj := a.Value.(Object)
	attrs, length, err := ti.Codec.EncodeAttrs(fw.reg, obj)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "encoding %q", a.Name), ErrEncode)
	}
	p := &pendingObject{name: a.Name, codec: ti.Codec, obj: obj, attrs: attrs, length: length}
	fw.pending = append(fw.pending, p)

	fw.enc.Open(depth, a.Name, ti.Name)
	if length > 0 {
		p.offset = fw.alloc.Reserve(a.Name, uint64(length))
		fw.enc.Scalar(depth+1, dataAttr, formatUint(p.offset))
		fw.enc.Scalar(depth+1, lengthAttr, formatUint(uint64(length)))
	}
	if err := fw.writeList(depth+1, attrs); err != nil {
		return err
	}
	fw.enc.Close(depth)
	return nil
}
