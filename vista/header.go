package vista

import (
	"bufio"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/robert-malhotra/go-vista/internal/dtype"
	"github.com/robert-malhotra/go-vista/internal/header"
)

// Attributes of a typed record that locate its payload.
const (
	dataAttr   = "data"
	lengthAttr = "length"
)

// bundleRef is a bundle found while parsing a header, together with the
// attribute holding it.
type bundleRef struct {
	attr   *Attribute
	bundle *Bundle
}

// parsedHeader is the result of parsing the textual part of a file.
type parsedHeader struct {
	list *List
	// refs lists every bundle in depth-first post-order, so a bundle
	// nested in another's attributes comes before its container.
	refs []bundleRef
	// dataOffset is the file offset of the binary data segment.
	dataOffset int64
}

// parseHeader reads a header from br, leaving br positioned at the
// start of the data segment.
func parseHeader(br *bufio.Reader) (*parsedHeader, error) {
	s := header.NewScanner(br)
	version, err := s.ReadMagic()
	if err != nil {
		return nil, errors.Mark(err, ErrNotVista)
	}
	if version != header.Version {
		return nil, errors.Wrapf(ErrNotVista, "unsupported file version %d", version)
	}

	p := &headerParser{s: s}
	list, err := p.parseList()
	if err != nil {
		return nil, errors.Mark(err, ErrBadHeader)
	}
	if err := s.ReadDelimiter(); err != nil {
		return nil, errors.Mark(err, ErrBadHeader)
	}
	return &parsedHeader{list: list, refs: p.refs, dataOffset: s.Offset()}, nil
}

type headerParser struct {
	s    *header.Scanner
	refs []bundleRef
}

// parseList parses attributes up to and including the closing brace.
func (p *headerParser) parseList() (*List, error) {
	list := NewList()
	for {
		tok, err := p.s.Next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case header.RBrace:
			return list, nil
		case header.Word, header.String:
		default:
			return nil, errors.Newf("line %d: expected attribute name, found %s", tok.Line, tok.Kind)
		}
		if _, err := p.s.Expect(header.Colon); err != nil {
			return nil, err
		}
		if err := p.parseValue(list, tok.Text); err != nil {
			return nil, errors.Wrapf(err, "attribute %q", tok.Text)
		}
	}
}

// parseValue parses the value of attribute name and appends it to list.
func (p *headerParser) parseValue(list *List, name string) error {
	tok, err := p.s.Next()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case header.LBrace:
		sub, err := p.parseList()
		if err != nil {
			return err
		}
		list.Append(name, AttrListRepn, sub)
		return nil
	case header.String:
		list.Append(name, StringRepn, tok.Text)
		return nil
	case header.Word:
	default:
		return errors.Newf("line %d: expected value, found %s", tok.Line, tok.Kind)
	}

	next, err := p.s.Peek()
	if err != nil {
		return err
	}
	if next.Kind != header.LBrace {
		list.Append(name, StringRepn, tok.Text)
		return nil
	}

	// "name: type { ... }" is a typed record.
	_, _ = p.s.Next()
	sub, err := p.parseList()
	if err != nil {
		return err
	}
	b, err := newBundleFromHeader(tok.Text, sub)
	if err != nil {
		return errors.Wrapf(err, "line %d", tok.Line)
	}
	attr := list.Append(name, BundleRepn, b)
	p.refs = append(p.refs, bundleRef{attr: attr, bundle: b})
	return nil
}

// newBundleFromHeader moves the data and length attributes of a typed
// record into a new bundle.
func newBundleFromHeader(typeName string, attrs *List) (*Bundle, error) {
	b := &Bundle{TypeName: typeName, List: attrs, offset: -1}

	length, ok, err := extractSize(attrs, lengthAttr)
	if err != nil {
		return nil, err
	}
	if ok {
		if length > math.MaxInt32 {
			return nil, errors.Newf("payload length %d too large", length)
		}
		b.Length = int(length)
	}

	offset, ok, err := extractSize(attrs, dataAttr)
	if err != nil {
		return nil, err
	}
	switch {
	case ok:
		b.offset = offset
	case b.Length > 0:
		return nil, errors.Newf("%s record of length %d has no %q attribute", typeName, b.Length, dataAttr)
	}
	return b, nil
}

// extractSize removes attribute name from l and returns it as a
// non-negative integer.
func extractSize(l *List, name string) (int64, bool, error) {
	var v float64
	switch l.GetAttr(name, nil, DoubleRepn, &v) {
	case AttrNotFound:
		return 0, false, nil
	case AttrBadValue:
		c, _ := l.Lookup(name)
		return 0, false, errors.Wrapf(ErrBadValue, "%q: %v", name, c.Value())
	}
	if v < 0 || v != math.Trunc(v) || v > math.MaxInt64/2 {
		return 0, false, errors.Wrapf(ErrBadValue, "%q: %g", name, v)
	}
	c, _ := l.Lookup(name)
	c.Delete()
	return int64(v), true, nil
}

// scalarText returns the header text of a numeric or string value.
func scalarText(kind RepnKind, value interface{}) (string, bool) {
	if kind == StringRepn {
		return value.(string), true
	}
	dt, ok := numericType(kind)
	if !ok {
		return "", false
	}
	v, _, _ := dtype.FromGo(value)
	return dtype.Format(v, dt), true
}
