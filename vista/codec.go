package vista

// Object is the in-memory form of a composite value.
type Object interface {
	// Attrs returns the object's own attribute list. Attributes the
	// object's codec does not recognize live here and survive a
	// decode/encode round trip.
	Attrs() *List

	// Copy returns a deep copy of the object and its attributes.
	Copy() Object
}

// Codec converts between a composite type's Bundle and its Object.
//
// A file is written in two phases. EncodeAttrs prepends the shape
// attributes Decode will need to the object's attribute list and returns
// that list together with the exact payload length. EncodeData then
// strips the prepended attributes again and produces the payload. The
// writer calls EncodeData for every object it called EncodeAttrs on,
// even when writing fails, so object attribute lists are always
// restored.
type Codec interface {
	// Decode builds an object from b. It extracts the shape attributes
	// from b.List and reuses what remains as the object's attribute list.
	Decode(reg *Registry, typeName string, b *Bundle) (Object, error)

	// EncodeAttrs returns the attribute list to write for obj and the
	// length of the payload EncodeData will produce.
	EncodeAttrs(reg *Registry, obj Object) (*List, int, error)

	// EncodeData removes the attributes added by EncodeAttrs and returns
	// exactly length bytes of payload.
	EncodeData(reg *Registry, obj Object, attrs *List, length int) (Payload, error)
}

// Payload is the encoded data of one object. An owned payload was built
// for the caller; a borrowed one aliases memory of the object and must
// not be modified or retained.
type Payload struct {
	b     []byte
	owned bool
}

// Owned returns a payload the caller may keep.
func Owned(b []byte) Payload {
	return Payload{b: b, owned: true}
}

// Borrowed returns a payload aliasing an object's memory. A nil slice
// means there is nothing to write.
func Borrowed(b []byte) Payload {
	return Payload{b: b}
}

// Bytes returns the payload bytes.
func (p Payload) Bytes() []byte {
	return p.b
}

// IsOwned reports whether the payload was allocated for the caller.
func (p Payload) IsOwned() bool {
	return p.owned
}

// Len returns the payload length.
func (p Payload) Len() int {
	return len(p.b)
}
