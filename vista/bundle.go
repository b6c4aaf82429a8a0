package vista

// Bundle is a composite value in its file form: a type name, the
// attributes written with it and its raw payload.
//
// The reader produces bundles for every typed record of a header and
// replaces those of registered types with decoded objects. Bundles of
// unregistered types, or all bundles when reading WithoutDecode, stay in
// the list and are written back unchanged.
type Bundle struct {
	TypeName string
	List     *List

	// Data is the payload, or nil when it has not been read.
	Data []byte
	// Length is the payload length recorded in the header.
	Length int

	// offset is the payload position recorded in the header, relative to
	// the start of the data segment. It is -1 for bundles built in memory.
	offset int64
}

// NewBundle creates a bundle holding data.
func NewBundle(typeName string, attrs *List, data []byte) *Bundle {
	if attrs == nil {
		attrs = NewList()
	}
	return &Bundle{
		TypeName: typeName,
		List:     attrs,
		Data:     data,
		Length:   len(data),
		offset:   -1,
	}
}

// Offset returns the payload offset recorded in the file header, or -1.
func (b *Bundle) Offset() int64 {
	return b.offset
}

// Copy returns a deep copy of b.
func (b *Bundle) Copy() *Bundle {
	out := &Bundle{
		TypeName: b.TypeName,
		List:     NewList(),
		Length:   b.Length,
		offset:   b.offset,
	}
	if b.List != nil {
		out.List = b.List.Copy()
	}
	if b.Data != nil {
		out.Data = append([]byte(nil), b.Data...)
	}
	return out
}

// Destroy releases the bundle's attributes and data.
func (b *Bundle) Destroy() {
	if b.List != nil {
		b.List.Destroy()
	}
	b.Data = nil
}
