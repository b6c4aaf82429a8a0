package vista

import (
	"encoding/binary"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/robert-malhotra/go-vista/internal/dtype"
)

// RepnKind identifies the representation of an attribute value.
type RepnKind int

// Representation kinds. Kinds from ImageRepn on are composite types
// registered by NewStandardRegistry; further composites registered with
// RegisterType receive the following kinds.
const (
	UnknownRepn RepnKind = iota
	BitRepn
	UByteRepn
	SByteRepn
	ShortRepn
	LongRepn
	FloatRepn
	DoubleRepn
	AttrListRepn
	BundleRepn
	PointerRepn
	StringRepn
	ImageRepn
	GraphRepn
	EdgesRepn
)

// FirstCompositeRepn is the first kind available to composite types.
const FirstCompositeRepn = ImageRepn

// Composite type names registered by NewStandardRegistry.
const (
	ImageTypeName = "image"
	GraphTypeName = "graph"
	EdgesTypeName = "edges"
)

// TypeInfo is a registry entry.
type TypeInfo struct {
	Kind      RepnKind
	Name      string
	Size      int   // bytes per in-memory element, 0 if not numeric
	Precision int   // bits per packed element, 0 if not numeric
	Codec     Codec // nil for primitive kinds

	dt dtype.Type
}

// Numeric reports whether values of this kind are numbers.
func (ti TypeInfo) Numeric() bool {
	return ti.dt.Valid()
}

// Registry maps representation kinds to their names, sizes and codecs.
//
// A Registry is populated once, before any file is read or written, and
// is not safe for concurrent registration.
type Registry struct {
	types  []TypeInfo
	byName map[string]RepnKind

	order            binary.ByteOrder
	logger           *log.Logger
	defaultGraphSize int
}

var primitives = []TypeInfo{
	{Kind: UnknownRepn, Name: "unknown"},
	{Kind: BitRepn, Name: "bit", Size: 1, Precision: 1, dt: dtype.Bit},
	{Kind: UByteRepn, Name: "ubyte", Size: 1, Precision: 8, dt: dtype.UByte},
	{Kind: SByteRepn, Name: "sbyte", Size: 1, Precision: 8, dt: dtype.SByte},
	{Kind: ShortRepn, Name: "short", Size: 2, Precision: 16, dt: dtype.Short},
	{Kind: LongRepn, Name: "long", Size: 4, Precision: 32, dt: dtype.Long},
	{Kind: FloatRepn, Name: "float", Size: 4, Precision: 32, dt: dtype.Float},
	{Kind: DoubleRepn, Name: "double", Size: 8, Precision: 64, dt: dtype.Double},
	{Kind: AttrListRepn, Name: "attr-list"},
	{Kind: BundleRepn, Name: "bundle"},
	{Kind: PointerRepn, Name: "pointer"},
	{Kind: StringRepn, Name: "string"},
}

// NewRegistry creates a registry holding only the primitive kinds.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := defaultRegistryOptions()
	for _, opt := range opts {
		opt(o)
	}

	r := &Registry{
		types:            make([]TypeInfo, len(primitives)),
		byName:           make(map[string]RepnKind, len(primitives)),
		order:            o.order,
		logger:           o.logger,
		defaultGraphSize: o.defaultGraphSize,
	}
	copy(r.types, primitives)
	for _, ti := range primitives[1:] {
		r.byName[ti.Name] = ti.Kind
	}
	return r
}

// NewStandardRegistry creates a registry with the primitive kinds and the
// image, graph and edges composite types.
func NewStandardRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	for _, std := range []struct {
		name  string
		codec Codec
		kind  RepnKind
	}{
		{ImageTypeName, imageCodec{}, ImageRepn},
		{GraphTypeName, graphCodec{}, GraphRepn},
		{EdgesTypeName, edgesCodec{}, EdgesRepn},
	} {
		if k := r.RegisterType(std.name, std.codec); k != std.kind {
			panic(errors.AssertionFailedf("type %s registered as kind %d, want %d", std.name, k, std.kind))
		}
	}
	return r
}

// RegisterType adds a composite type and returns its kind. Registering a
// name that is already present returns the existing kind unchanged.
func (r *Registry) RegisterType(name string, codec Codec) RepnKind {
	if k, ok := r.byName[name]; ok {
		return k
	}
	if codec == nil {
		panic(errors.AssertionFailedf("RegisterType(%q): nil codec", name))
	}
	k := RepnKind(len(r.types))
	r.types = append(r.types, TypeInfo{Kind: k, Name: name, Codec: codec})
	r.byName[name] = k
	return k
}

// LookupByName returns the kind registered under name.
func (r *Registry) LookupByName(name string) (RepnKind, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// LookupByKind returns the registry entry for kind.
func (r *Registry) LookupByKind(kind RepnKind) (TypeInfo, bool) {
	if kind <= UnknownRepn || int(kind) >= len(r.types) {
		return TypeInfo{}, false
	}
	return r.types[kind], true
}

// Name returns the canonical name of kind.
func (r *Registry) Name(kind RepnKind) string {
	if ti, ok := r.LookupByKind(kind); ok {
		return ti.Name
	}
	return fmt.Sprintf("repn(%d)", int(kind))
}

// Size returns the in-memory size in bytes of one value of a numeric kind.
func (r *Registry) Size(kind RepnKind) int {
	ti, _ := r.LookupByKind(kind)
	return ti.Size
}

// Precision returns the packed size in bits of one value of a numeric kind.
func (r *Registry) Precision(kind RepnKind) int {
	ti, _ := r.LookupByKind(kind)
	return ti.Precision
}

// IsComposite reports whether kind is a registered composite type.
func (r *Registry) IsComposite(kind RepnKind) bool {
	ti, ok := r.LookupByKind(kind)
	return ok && ti.Codec != nil
}

// HostOrder returns the byte order used for values held in memory.
func (r *Registry) HostOrder() binary.ByteOrder {
	return r.order
}

// Logger returns the logger that receives warnings.
func (r *Registry) Logger() *log.Logger {
	return r.logger
}

// DefaultGraphSize returns the graph size assumed when a graph bundle has
// no "nnodes" attribute.
func (r *Registry) DefaultGraphSize() int {
	return r.defaultGraphSize
}

// numericType returns the numeric representation of a primitive kind.
func numericType(kind RepnKind) (dtype.Type, bool) {
	if kind <= UnknownRepn || int(kind) >= len(primitives) {
		return dtype.Type{}, false
	}
	dt := primitives[kind].dt
	return dt, dt.Valid()
}

// kindOfType is the inverse of numericType.
func kindOfType(dt dtype.Type) RepnKind {
	for _, ti := range primitives {
		if ti.dt == dt && dt.Valid() {
			return ti.Kind
		}
	}
	return UnknownRepn
}

// isPrimitive reports whether kind is one of the built-in kinds.
func isPrimitive(kind RepnKind) bool {
	return kind > UnknownRepn && kind < FirstCompositeRepn
}
