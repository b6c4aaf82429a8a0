package vista

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/robert-malhotra/go-vista/internal/dtype"
)

// Graph attribute names.
const (
	NNodesAttr     = "nnodes"
	NFieldsAttr    = "nfields"
	NodeRepnAttr   = "node_repn"
	UseWeightsAttr = "useWeights"
)

// Adjacency is a directed link to another node.
type Adjacency struct {
	ID     int
	Weight float32
}

// Node is a graph node. Fields holds exactly as many values as the
// graph has fields, each representable by the graph's node repn.
type Node struct {
	Weight float32
	Fields []float64
	Adj    []Adjacency
}

func (n *Node) copy() *Node {
	return &Node{
		Weight: n.Weight,
		Fields: slices.Clone(n.Fields),
		Adj:    slices.Clone(n.Adj),
	}
}

// Graph is a set of nodes with numeric IDs from 1 to Size, each holding
// a fixed number of fields and a list of links to other nodes.
type Graph struct {
	size       int
	nodes      map[int]*Node
	nfields    int
	repn       RepnKind
	dt         dtype.Type
	useWeights bool
	attrs      *List
}

// NewGraph creates an empty graph with room for size nodes.
func NewGraph(size, nfields int, repn RepnKind, useWeights bool) (*Graph, error) {
	dt, ok := numericType(repn)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupported, "graph node repn %d", repn)
	}
	if size <= 0 || nfields <= 0 {
		return nil, errors.Wrapf(ErrBadValue, "graph of %d nodes with %d fields", size, nfields)
	}
	return &Graph{
		size:       size,
		nodes:      make(map[int]*Node),
		nfields:    nfields,
		repn:       repn,
		dt:         dt,
		useWeights: useWeights,
		attrs:      NewList(),
	}, nil
}

// Size returns the largest node ID the graph can hold.
func (g *Graph) Size() int { return g.size }

// NFields returns the number of fields per node.
func (g *Graph) NFields() int { return g.nfields }

// NodeRepn returns the representation of node fields.
func (g *Graph) NodeRepn() RepnKind { return g.repn }

// UseWeights reports whether nodes and links carry weights.
func (g *Graph) UseWeights() bool { return g.useWeights }

// Attrs returns the graph's attribute list.
func (g *Graph) Attrs() *List { return g.attrs }

// NNodes returns the number of nodes present.
func (g *Graph) NNodes() int { return len(g.nodes) }

// IDs returns the IDs of the nodes present, in increasing order.
func (g *Graph) IDs() []int {
	ids := make([]int, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id int) *Node {
	return g.nodes[id]
}

func (g *Graph) checkNode(n *Node) error {
	if len(n.Fields) != g.nfields {
		return errors.Wrapf(ErrBadValue, "node has %d fields, graph has %d", len(n.Fields), g.nfields)
	}
	for i, v := range n.Fields {
		cv, err := dtype.Convert(v, g.dt)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "field %d", i), ErrBadValue)
		}
		n.Fields[i] = cv
	}
	return nil
}

// AddNode stores n under the lowest free ID, doubling the size of the
// graph when it is full, and returns the ID.
func (g *Graph) AddNode(n *Node) (int, error) {
	if err := g.checkNode(n); err != nil {
		return 0, err
	}
	id := 1
	for g.nodes[id] != nil {
		id++
	}
	if id > g.size {
		g.size *= 2
	}
	g.nodes[id] = n
	return id, nil
}

// AddNodeAt stores n under the given ID.
func (g *Graph) AddNodeAt(id int, n *Node) error {
	if id < 1 || id > g.size {
		return errors.Wrapf(ErrOutOfRange, "node %d of %d", id, g.size)
	}
	if g.nodes[id] != nil {
		return errors.Newf("node %d already present", id)
	}
	if err := g.checkNode(n); err != nil {
		return err
	}
	g.nodes[id] = n
	return nil
}

// DeleteNode removes a node and every link pointing to it.
func (g *Graph) DeleteNode(id int) {
	if g.nodes[id] == nil {
		return
	}
	delete(g.nodes, id)
	for _, node := range g.nodes {
		node.Adj = slices.DeleteFunc(node.Adj, func(a Adjacency) bool { return a.ID == id })
	}
}

// Link adds a link from node a to node b.
func (g *Graph) Link(a, b int, weight float32) error {
	from := g.Node(a)
	if from == nil || g.Node(b) == nil {
		return errors.Wrapf(ErrNotFound, "link %d -> %d", a, b)
	}
	from.Adj = append(from.Adj, Adjacency{ID: b, Weight: weight})
	return nil
}

// Unlink removes the links from node a to node b.
func (g *Graph) Unlink(a, b int) {
	if from := g.Node(a); from != nil {
		from.Adj = slices.DeleteFunc(from.Adj, func(adj Adjacency) bool { return adj.ID == b })
	}
}

// Equal reports whether g and o have the same shape and the same nodes
// and links, and the same weights if the graphs use them. Attributes are
// not compared.
func (g *Graph) Equal(o *Graph) bool {
	if g.size != o.size || len(g.nodes) != len(o.nodes) || g.nfields != o.nfields ||
		g.repn != o.repn || g.useWeights != o.useWeights {
		return false
	}
	for id, a := range g.nodes {
		b := o.nodes[id]
		if b == nil {
			return false
		}
		if !slices.Equal(a.Fields, b.Fields) || len(a.Adj) != len(b.Adj) {
			return false
		}
		for j, adj := range a.Adj {
			if adj.ID != b.Adj[j].ID || (g.useWeights && adj.Weight != b.Adj[j].Weight) {
				return false
			}
		}
		if g.useWeights && a.Weight != b.Weight {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the graph.
func (g *Graph) Copy() Object {
	out := *g
	out.nodes = make(map[int]*Node, len(g.nodes))
	for id, n := range g.nodes {
		out.nodes[id] = n.copy()
	}
	out.attrs = g.attrs.Copy()
	return &out
}

// recordSize returns the encoded size of node n.
func (g *Graph) recordSize(n *Node) int {
	adjSize := 4
	size := 8 + g.dt.PackedLen(g.nfields)
	if g.useWeights {
		adjSize += 4
		size += 4
	}
	return size + len(n.Adj)*adjSize
}

// graphCodec encodes and decodes graphs.
//
// Each node present is written as its ID and number of links, the ID
// and, with weights, the weight of each link, the node weight if the
// graph uses weights, and then the node's fields.
type graphCodec struct{}

var graphShapeAttrs = []string{NNodesAttr, NFieldsAttr, NodeRepnAttr, UseWeightsAttr}

func (graphCodec) Decode(reg *Registry, typeName string, b *Bundle) (Object, error) {
	attrs := b.List

	var size, nfields, repn int
	switch attrs.GetAttr(NNodesAttr, nil, LongRepn, &size) {
	case AttrNotFound:
		size = reg.DefaultGraphSize()
		reg.Logger().Warn("graph has no nnodes attribute; assuming default size",
			"type", typeName, "nnodes", size)
	case AttrBadValue:
		err := errors.Wrapf(ErrBadValue, "%q", NNodesAttr)
		warnBadValue(reg, typeName, err)
		return nil, decodeErrorf(typeName, "%v", err)
	default:
		stripAttrs(attrs, []string{NNodesAttr})
	}
	var useWeights uint8
	for _, a := range []struct {
		name     string
		dict     Dict
		kind     RepnKind
		dest     interface{}
		required bool
	}{
		{NFieldsAttr, nil, LongRepn, &nfields, true},
		{NodeRepnAttr, NumericRepnDict, LongRepn, &repn, true},
		{UseWeightsAttr, BooleanDict, BitRepn, &useWeights, false},
	} {
		if err := attrs.ExtractAttr(a.name, a.dict, a.kind, a.dest, a.required); err != nil {
			warnBadValue(reg, typeName, err)
			return nil, decodeErrorf(typeName, "%v", err)
		}
	}

	g, err := NewGraph(size, nfields, RepnKind(repn), useWeights != 0)
	if err != nil {
		return nil, decodeErrorf(typeName, "%v", err)
	}
	if len(b.Data) != b.Length {
		return nil, decodeErrorf(typeName, "have %d bytes of data, header says %d", len(b.Data), b.Length)
	}

	rd := recordReader{data: b.Data}
	for rd.more() {
		id, nadj := rd.long(), rd.long()
		if rd.err != nil {
			break
		}
		if id < 1 || int(id) > size {
			return nil, decodeErrorf(typeName, "node index %d out of range [1, %d]", id, size)
		}
		if g.nodes[int(id)] != nil {
			return nil, decodeErrorf(typeName, "duplicate node index %d", id)
		}
		if nadj < 0 || int(nadj) > rd.remaining()/4 {
			return nil, decodeErrorf(typeName, "node %d has %d links", id, nadj)
		}
		n := &Node{Adj: make([]Adjacency, nadj)}
		for i := range n.Adj {
			adjID := rd.long()
			if rd.err == nil && (adjID < 1 || int(adjID) > size) {
				return nil, decodeErrorf(typeName, "node %d links to node %d out of range [1, %d]", id, adjID, size)
			}
			n.Adj[i].ID = int(adjID)
			if g.useWeights {
				n.Adj[i].Weight = rd.float()
			}
		}
		if g.useWeights {
			n.Weight = rd.float()
		}
		n.Fields = rd.values(g.dt, nfields)
		if rd.err != nil {
			break
		}
		g.nodes[int(id)] = n
	}
	if rd.err != nil {
		return nil, decodeErrorf(typeName, "%v", rd.err)
	}

	g.attrs = attrs
	b.List, b.Data = nil, nil
	return g, nil
}

func (graphCodec) EncodeAttrs(reg *Registry, obj Object) (*List, int, error) {
	g := obj.(*Graph)
	attrs := g.attrs
	var useWeights uint8
	if g.useWeights {
		useWeights = 1
	}
	attrs.PrependAttr(UseWeightsAttr, nil, BitRepn, useWeights)
	attrs.PrependAttr(NodeRepnAttr, nil, StringRepn, reg.Name(g.repn))
	attrs.PrependAttr(NFieldsAttr, nil, LongRepn, int32(g.nfields))
	attrs.PrependAttr(NNodesAttr, nil, LongRepn, int32(g.size))

	length := 0
	for _, n := range g.nodes {
		length += g.recordSize(n)
	}
	return attrs, length, nil
}

func (graphCodec) EncodeData(reg *Registry, obj Object, attrs *List, length int) (Payload, error) {
	g := obj.(*Graph)
	stripAttrs(attrs, graphShapeAttrs)
	if length == 0 {
		return Borrowed(nil), nil
	}

	buf := make([]byte, length)
	off := 0
	for _, id := range g.IDs() {
		n := g.nodes[id]
		if off+g.recordSize(n) > length {
			return Payload{}, errors.Newf("node %d does not fit in %d bytes", id, length)
		}
		off = putLong(buf, off, id)
		off = putLong(buf, off, len(n.Adj))
		for _, a := range n.Adj {
			off = putLong(buf, off, a.ID)
			if g.useWeights {
				off = putFloat(buf, off, a.Weight)
			}
		}
		if g.useWeights {
			off = putFloat(buf, off, n.Weight)
		}
		k, err := dtype.PackValues(buf[off:], g.dt, n.Fields)
		if err != nil {
			return Payload{}, errors.Wrapf(err, "node %d", id)
		}
		off += k
	}
	if off != length {
		return Payload{}, errors.Newf("encoded %d bytes, expected %d", off, length)
	}
	return Owned(buf), nil
}
