package vista

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// encode runs both encoding phases on obj and checks that the payload
// has the announced length and the attributes are restored.
func encode(t *testing.T, reg *Registry, kind RepnKind, obj Object) ([]byte, *List) {
	t.Helper()
	ti, ok := reg.LookupByKind(kind)
	require.True(t, ok)
	before := names(obj.Attrs())

	attrs, length, err := ti.Codec.EncodeAttrs(reg, obj)
	require.NoError(t, err)
	shape := attrs.Copy()
	payload, err := ti.Codec.EncodeData(reg, obj, attrs, length)
	require.NoError(t, err)
	require.Equal(t, length, payload.Len())
	require.Equal(t, before, names(obj.Attrs()))
	return payload.Bytes(), shape
}

// decode builds the bundle a reader would see and decodes it.
func decode(reg *Registry, kind RepnKind, attrs *List, data []byte) (Object, error) {
	ti, _ := reg.LookupByKind(kind)
	b := NewBundle(ti.Name, stringify(attrs), data)
	return ti.Codec.Decode(reg, ti.Name, b)
}

// stringify converts scalar attributes to strings, as reading them from a
// header would.
func stringify(l *List) *List {
	out := NewList()
	for c := l.First(); c.Exists(); c.Next() {
		if text, ok := scalarText(c.Kind(), c.Value()); ok {
			out.Append(c.Name(), StringRepn, text)
			continue
		}
		out.Append(c.Name(), c.Kind(), copyValue(c.Kind(), c.Value()))
	}
	return out
}

func TestGraphLengthAccounting(t *testing.T) {
	reg := NewStandardRegistry()
	const maxFields = 64

	tests := []struct {
		name    string
		nfields int
		repn    RepnKind
		weights bool
		build   func(g *Graph) error
		want    int
	}{
		{
			name: "zero nodes", nfields: 1, repn: LongRepn,
			build: func(g *Graph) error { return nil },
			want:  0,
		},
		{
			name: "one node", nfields: 2, repn: ShortRepn,
			build: func(g *Graph) error { _, err := g.AddNode(&Node{Fields: []float64{1, 2}}); return err },
			want:  8 + 4,
		},
		{
			name: "one weighted node", nfields: 2, repn: ShortRepn, weights: true,
			build: func(g *Graph) error { _, err := g.AddNode(&Node{Fields: []float64{1, 2}}); return err },
			want:  8 + 4 + 4,
		},
		{
			name: "node without links beside linked node", nfields: 1, repn: UByteRepn, weights: true,
			build: func(g *Graph) error {
				for i := 0; i < 2; i++ {
					if _, err := g.AddNode(&Node{Fields: []float64{1}}); err != nil {
						return err
					}
				}
				if err := g.Link(1, 2, 0.5); err != nil {
					return err
				}
				return g.Link(1, 1, 1.5)
			},
			want: (8 + 2*8 + 4 + 1) + (8 + 4 + 1),
		},
		{
			name: "maximal field count", nfields: maxFields, repn: DoubleRepn,
			build: func(g *Graph) error {
				_, err := g.AddNode(&Node{Fields: make([]float64, maxFields)})
				return err
			},
			want: 8 + maxFields*8,
		},
		{
			name: "bit fields", nfields: 9, repn: BitRepn,
			build: func(g *Graph) error {
				_, err := g.AddNode(&Node{Fields: []float64{1, 0, 1, 0, 1, 0, 1, 0, 1}})
				return err
			},
			want: 8 + 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(4, tt.nfields, tt.repn, tt.weights)
			require.NoError(t, err)
			require.NoError(t, tt.build(g))

			data, shape := encode(t, reg, GraphRepn, g)
			require.Len(t, data, tt.want)
			require.Equal(t, graphShapeAttrs, names(shape))

			obj, err := decode(reg, GraphRepn, shape, data)
			require.NoError(t, err)
			require.True(t, g.Equal(obj.(*Graph)))
		})
	}
}

func TestImagePayloadOwnership(t *testing.T) {
	tests := []struct {
		repn     RepnKind
		order    binary.ByteOrder
		borrowed bool
	}{
		{UByteRepn, binary.LittleEndian, true},
		{SByteRepn, binary.LittleEndian, true},
		{BitRepn, binary.BigEndian, false},
		{ShortRepn, binary.BigEndian, true},
		{ShortRepn, binary.LittleEndian, false},
		{DoubleRepn, binary.BigEndian, true},
		{FloatRepn, binary.LittleEndian, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", primitives[tt.repn].Name, tt.order), func(t *testing.T) {
			reg := NewStandardRegistry(WithHostOrder(tt.order))
			img := makeImage(t, tt.order, 1, 3, 3, tt.repn)
			attrs, length, err := imageCodec{}.EncodeAttrs(reg, img)
			require.NoError(t, err)
			require.Equal(t, imageShapeAttrs, names(attrs)[:4])
			p, err := imageCodec{}.EncodeData(reg, img, attrs, length)
			require.NoError(t, err)
			require.Equal(t, !tt.borrowed, p.IsOwned())
			require.Equal(t, length, p.Len())
			if tt.borrowed {
				require.Same(t, &img.Data()[0], &p.Bytes()[0])
			}
		})
	}
}

func TestImageLengthAccounting(t *testing.T) {
	reg := NewStandardRegistry()
	for _, repn := range numericRepns {
		for _, shape := range [][3]int{{1, 1, 1}, {1, 1, 7}, {3, 5, 2}, {2, 1, 9}} {
			t.Run(fmt.Sprintf("%s/%v", primitives[repn].Name, shape), func(t *testing.T) {
				img := makeImage(t, reg.HostOrder(), shape[0], shape[1], shape[2], repn)
				data, attrs := encode(t, reg, ImageRepn, img)
				n := img.NPixels()
				want := n * reg.Size(repn)
				if repn == BitRepn {
					want = (n + 7) / 8
				}
				require.Len(t, data, want)

				obj, err := decode(reg, ImageRepn, attrs, data)
				require.NoError(t, err)
				require.True(t, img.Equal(obj.(*Image)))
			})
		}
	}
}

func TestEdgesLengthAccounting(t *testing.T) {
	reg := NewStandardRegistry()
	e, err := NewEdges(10, 10, 2, 3)
	require.NoError(t, err)

	data, attrs := encode(t, reg, EdgesRepn, e)
	require.Empty(t, data)
	obj, err := decode(reg, EdgesRepn, attrs, data)
	require.NoError(t, err)
	require.Equal(t, 0, obj.(*Edges).NEdges())

	_, err = e.AddEdge([]float32{1, 2}, [][]float32{{1, 2, 3}, {4, 5, 6}}, true)
	require.NoError(t, err)
	data, attrs = encode(t, reg, EdgesRepn, e)
	require.Len(t, data, 4*(2+2+2*3))
	obj, err = decode(reg, EdgesRepn, attrs, data)
	require.NoError(t, err)
	require.True(t, e.Equal(obj.(*Edges)))

	// A point count disagreeing with the records fails.
	attrs.SetAttr(NPointsAttr, nil, LongRepn, 1)
	_, err = decode(reg, EdgesRepn, attrs, data)
	require.True(t, errors.Is(err, ErrDecode), "%v", err)
}

func graphRecord(id, nadj int32, rest ...int32) []byte {
	buf := make([]byte, 0, 8+4*len(rest))
	for _, v := range append([]int32{id, nadj}, rest...) {
		buf = binary.BigEndian.AppendUint32(buf, uint32(v))
	}
	return buf
}

func TestGraphDecodeRecords(t *testing.T) {
	reg := NewStandardRegistry()
	attrs := func() *List {
		l := NewList()
		l.Append(NNodesAttr, StringRepn, "3")
		l.Append(NFieldsAttr, StringRepn, "1")
		l.Append(NodeRepnAttr, StringRepn, "long")
		return l
	}

	// Records: index, link count, links, one long field.
	tests := []struct {
		name string
		data []byte
		ok   bool
	}{
		{"two nodes", append(graphRecord(1, 1, 2, 10), graphRecord(2, 0, 20)...), true},
		{"duplicate index", append(graphRecord(1, 0, 10), graphRecord(1, 0, 20)...), false},
		{"index zero", graphRecord(0, 0, 10), false},
		{"index past size", graphRecord(4, 0, 10), false},
		{"link out of range", graphRecord(1, 1, 9, 10), false},
		{"negative link count", graphRecord(1, -1, 10), false},
		{"truncated fields", graphRecord(1, 0), false},
		{"truncated links", graphRecord(1, 2, 2), false},
		{"trailing bytes", append(graphRecord(1, 0, 10), 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBundle(GraphTypeName, attrs(), tt.data)
			obj, err := graphCodec{}.Decode(reg, GraphTypeName, b)
			if tt.ok {
				require.NoError(t, err)
				g := obj.(*Graph)
				require.Equal(t, []int{1, 2}, g.IDs())
				require.Equal(t, []float64{20}, g.Node(2).Fields)
				require.Equal(t, 0, g.Attrs().Len())
				return
			}
			require.True(t, errors.Is(err, ErrDecode), "%v", err)
		})
	}
}
