package vista

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Edge set attribute names.
const (
	NEdgeFieldsAttr  = "nedge_fields"
	NPointFieldsAttr = "npoint_fields"
	NEdgesAttr       = "nedges"
	NPointsAttr      = "npoints"
)

// Edge is a chain of points, optionally closed into a loop.
type Edge struct {
	Fields []float32
	Points [][]float32
	Closed bool
}

func (e *Edge) copy() *Edge {
	out := &Edge{Fields: slices.Clone(e.Fields), Closed: e.Closed}
	out.Points = make([][]float32, len(e.Points))
	for i, p := range e.Points {
		out.Points[i] = slices.Clone(p)
	}
	return out
}

func (e *Edge) equal(o *Edge) bool {
	if e.Closed != o.Closed || !slices.Equal(e.Fields, o.Fields) || len(e.Points) != len(o.Points) {
		return false
	}
	for i := range e.Points {
		if !slices.Equal(e.Points[i], o.Points[i]) {
			return false
		}
	}
	return true
}

// Edges is a set of edges traced in an image of NRows by NColumns.
// Every edge carries NEdgeFields values and every point NPointFields.
type Edges struct {
	nrows, ncolumns           int
	nedgeFields, npointFields int
	edges                     []*Edge
	attrs                     *List
}

// NewEdges creates an empty edge set. Points carry at least one field.
func NewEdges(nrows, ncolumns, nedgeFields, npointFields int) (*Edges, error) {
	if nrows < 0 || ncolumns < 0 || nedgeFields < 0 || npointFields < 1 {
		return nil, errors.Wrapf(ErrBadValue, "edge set %dx%d with %d edge and %d point fields",
			nrows, ncolumns, nedgeFields, npointFields)
	}
	return &Edges{
		nrows:        nrows,
		ncolumns:     ncolumns,
		nedgeFields:  nedgeFields,
		npointFields: npointFields,
		attrs:        NewList(),
	}, nil
}

// NRows returns the number of rows of the image the edges belong to.
func (e *Edges) NRows() int { return e.nrows }

// NColumns returns the number of columns of the image the edges belong to.
func (e *Edges) NColumns() int { return e.ncolumns }

// NEdgeFields returns the number of values per edge.
func (e *Edges) NEdgeFields() int { return e.nedgeFields }

// NPointFields returns the number of values per point.
func (e *Edges) NPointFields() int { return e.npointFields }

// NEdges returns the number of edges.
func (e *Edges) NEdges() int { return len(e.edges) }

// NPoints returns the number of points in all edges.
func (e *Edges) NPoints() int {
	n := 0
	for _, edge := range e.edges {
		n += len(edge.Points)
	}
	return n
}

// Edges returns the edges in order. The slice is shared with e.
func (e *Edges) Edges() []*Edge { return e.edges }

// Attrs returns the edge set's attribute list.
func (e *Edges) Attrs() *List { return e.attrs }

// AddEdge appends an edge after checking its field counts.
func (e *Edges) AddEdge(fields []float32, points [][]float32, closed bool) (*Edge, error) {
	if len(fields) != e.nedgeFields {
		return nil, errors.Wrapf(ErrBadValue, "edge has %d fields, want %d", len(fields), e.nedgeFields)
	}
	for i, p := range points {
		if len(p) != e.npointFields {
			return nil, errors.Wrapf(ErrBadValue, "point %d has %d fields, want %d", i, len(p), e.npointFields)
		}
	}
	edge := &Edge{Fields: fields, Points: points, Closed: closed}
	e.edges = append(e.edges, edge)
	return edge, nil
}

// Equal reports whether e and o have the same shape and edges.
// Attributes are not compared.
func (e *Edges) Equal(o *Edges) bool {
	if e.nrows != o.nrows || e.ncolumns != o.ncolumns ||
		e.nedgeFields != o.nedgeFields || e.npointFields != o.npointFields ||
		len(e.edges) != len(o.edges) {
		return false
	}
	for i := range e.edges {
		if !e.edges[i].equal(o.edges[i]) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the edge set.
func (e *Edges) Copy() Object {
	out := *e
	out.edges = make([]*Edge, len(e.edges))
	for i, edge := range e.edges {
		out.edges[i] = edge.copy()
	}
	out.attrs = e.attrs.Copy()
	return &out
}

func (e *Edges) recordSize(edge *Edge) int {
	return 4 * (2 + e.nedgeFields + len(edge.Points)*e.npointFields)
}

// edgesCodec encodes and decodes edge sets.
//
// Each edge is written as its number of points, a closed flag, the edge
// fields and then the fields of every point, all as 4-byte values.
type edgesCodec struct{}

var edgesShapeAttrs = []string{NRowsAttr, NColumnsAttr, NEdgeFieldsAttr, NPointFieldsAttr, NEdgesAttr, NPointsAttr}

func (edgesCodec) Decode(reg *Registry, typeName string, b *Bundle) (Object, error) {
	attrs := b.List
	var nrows, ncolumns, nedgeFields, npointFields, nedges, npoints int
	for _, a := range []struct {
		name string
		dest *int
	}{
		{NRowsAttr, &nrows},
		{NColumnsAttr, &ncolumns},
		{NEdgeFieldsAttr, &nedgeFields},
		{NPointFieldsAttr, &npointFields},
		{NEdgesAttr, &nedges},
		{NPointsAttr, &npoints},
	} {
		if err := attrs.ExtractAttr(a.name, nil, LongRepn, a.dest, true); err != nil {
			warnBadValue(reg, typeName, err)
			return nil, decodeErrorf(typeName, "%v", err)
		}
	}

	e, err := NewEdges(nrows, ncolumns, nedgeFields, npointFields)
	if err != nil {
		return nil, decodeErrorf(typeName, "%v", err)
	}
	if nedges < 0 || npoints < 0 {
		return nil, decodeErrorf(typeName, "%d edges with %d points", nedges, npoints)
	}
	// Edges take at least 8 bytes and points at least 4.
	words := int64(b.Length) / 4
	if int64(nedges) > words/2 || int64(npoints) > words ||
		int64(nedges)*int64(2+nedgeFields)+int64(npoints)*int64(npointFields) != words ||
		b.Length%4 != 0 || len(b.Data) != b.Length {
		return nil, decodeErrorf(typeName, "%d edges with %d points do not match %d bytes of data",
			nedges, npoints, len(b.Data))
	}

	rd := recordReader{data: b.Data}
	seen := 0
	for i := 0; i < nedges; i++ {
		np, closed := rd.long(), rd.long()
		if rd.err != nil {
			break
		}
		if np < 0 || seen+int(np) > npoints || int(np) > rd.remaining()/(4*npointFields) {
			return nil, decodeErrorf(typeName, "edge %d has %d points; %d of %d already read", i, np, seen, npoints)
		}
		seen += int(np)
		edge := &Edge{Closed: closed != 0, Fields: rd.floats(nedgeFields)}
		edge.Points = make([][]float32, np)
		for j := range edge.Points {
			edge.Points[j] = rd.floats(npointFields)
		}
		e.edges = append(e.edges, edge)
	}
	if rd.err != nil {
		return nil, decodeErrorf(typeName, "%v", rd.err)
	}
	if seen != npoints {
		return nil, decodeErrorf(typeName, "edges hold %d points, header says %d", seen, npoints)
	}

	e.attrs = attrs
	b.List, b.Data = nil, nil
	return e, nil
}

func (edgesCodec) EncodeAttrs(reg *Registry, obj Object) (*List, int, error) {
	e := obj.(*Edges)
	attrs := e.attrs
	attrs.PrependAttr(NPointsAttr, nil, LongRepn, int32(e.NPoints()))
	attrs.PrependAttr(NEdgesAttr, nil, LongRepn, int32(len(e.edges)))
	attrs.PrependAttr(NPointFieldsAttr, nil, LongRepn, int32(e.npointFields))
	attrs.PrependAttr(NEdgeFieldsAttr, nil, LongRepn, int32(e.nedgeFields))
	attrs.PrependAttr(NColumnsAttr, nil, LongRepn, int32(e.ncolumns))
	attrs.PrependAttr(NRowsAttr, nil, LongRepn, int32(e.nrows))

	length := 0
	for _, edge := range e.edges {
		length += e.recordSize(edge)
	}
	return attrs, length, nil
}

func (edgesCodec) EncodeData(reg *Registry, obj Object, attrs *List, length int) (Payload, error) {
	e := obj.(*Edges)
	stripAttrs(attrs, edgesShapeAttrs)
	if length == 0 {
		return Borrowed(nil), nil
	}

	buf := make([]byte, length)
	off := 0
	for i, edge := range e.edges {
		if off+e.recordSize(edge) > length {
			return Payload{}, errors.Newf("edge %d does not fit in %d bytes", i, length)
		}
		closed := 0
		if edge.Closed {
			closed = 1
		}
		off = putLong(buf, off, len(edge.Points))
		off = putLong(buf, off, closed)
		for _, v := range edge.Fields {
			off = putFloat(buf, off, v)
		}
		for _, p := range edge.Points {
			for _, v := range p {
				off = putFloat(buf, off, v)
			}
		}
	}
	if off != length {
		return Payload{}, errors.Newf("encoded %d bytes, expected %d", off, length)
	}
	return Owned(buf), nil
}
