package vista

import (
	"github.com/cockroachdb/errors"

	"github.com/robert-malhotra/go-vista/internal/dtype"
)

// Result is the outcome of an attribute lookup.
type Result int

const (
	// AttrFound means the attribute exists and its value was converted.
	AttrFound Result = iota
	// AttrNotFound means no attribute has the requested name.
	AttrNotFound
	// AttrBadValue means the attribute exists but its value cannot be
	// converted to the requested kind.
	AttrBadValue
)

func (r Result) String() string {
	switch r {
	case AttrFound:
		return "found"
	case AttrNotFound:
		return "not found"
	case AttrBadValue:
		return "bad value"
	}
	return "unknown result"
}

// DictEntry maps a keyword to a number.
type DictEntry struct {
	Keyword string
	Value   float64
}

// Dict is a table of keywords that may stand for numeric attribute
// values in a header.
type Dict []DictEntry

// Value returns the number for keyword.
func (d Dict) Value(keyword string) (float64, bool) {
	for _, e := range d {
		if e.Keyword == keyword {
			return e.Value, true
		}
	}
	return 0, false
}

// Keyword returns the first keyword for v.
func (d Dict) Keyword(v float64) (string, bool) {
	for _, e := range d {
		if e.Value == v {
			return e.Keyword, true
		}
	}
	return "", false
}

// NumericRepnDict maps the names of the numeric kinds to their kinds.
var NumericRepnDict = Dict{
	{"bit", float64(BitRepn)},
	{"ubyte", float64(UByteRepn)},
	{"sbyte", float64(SByteRepn)},
	{"short", float64(ShortRepn)},
	{"long", float64(LongRepn)},
	{"float", float64(FloatRepn)},
	{"double", float64(DoubleRepn)},
}

// BooleanDict accepts the usual spellings of true and false.
var BooleanDict = Dict{
	{"false", 0},
	{"true", 1},
	{"no", 0},
	{"yes", 1},
	{"off", 0},
	{"on", 1},
}

// Lookup returns a cursor on the first attribute named name.
func (l *List) Lookup(name string) (Cursor, bool) {
	for a := l.head; a != nil; a = a.next {
		if a.Name == name {
			return Cursor{list: l, node: a}, true
		}
	}
	return Cursor{list: l}, false
}

// GetAttr finds the first attribute named name, converts its value to
// kind and stores it in dest. dict, if not nil, lists keywords accepted
// for numeric values.
//
// dest must point to the Go type of kind: *uint8 for bit and ubyte,
// *int8, *int16, *int32, *float32, *float64, *string, **List, **Bundle,
// *Object or the concrete object pointer. Numeric kinds also accept
// *int and *int64. *interface{} receives the converted value as is.
func (l *List) GetAttr(name string, dict Dict, kind RepnKind, dest interface{}) Result {
	c, ok := l.Lookup(name)
	if !ok {
		return AttrNotFound
	}
	v, ok := convertValue(c.Kind(), c.Value(), dict, kind)
	if !ok {
		return AttrBadValue
	}
	store(dest, v)
	return AttrFound
}

// SetAttr sets the value of the first attribute named name, appending an
// attribute when there is none. A numeric value given with a dict is
// stored as its keyword. Numeric values of another Go type are converted
// to kind.
func (l *List) SetAttr(name string, dict Dict, kind RepnKind, value interface{}) {
	kind, value = coerce(dict, kind, value)
	c, ok := l.Lookup(name)
	if !ok {
		l.Append(name, kind, value)
		return
	}
	old := c.Value()
	c.SetValue(kind, value)
	if !sameRef(old, value) {
		destroyValue(old)
	}
}

// sameRef reports whether old and value are the same list, bundle or
// object.
func sameRef(old, value interface{}) bool {
	switch o := old.(type) {
	case *List:
		v, ok := value.(*List)
		return ok && v == o
	case *Bundle:
		v, ok := value.(*Bundle)
		return ok && v == o
	case Object:
		v, ok := value.(Object)
		return ok && v == o
	}
	return true
}

// PrependAttr is SetAttr for a new attribute at the front of l.
func (l *List) PrependAttr(name string, dict Dict, kind RepnKind, value interface{}) {
	kind, value = coerce(dict, kind, value)
	l.Prepend(name, kind, value)
}

// ExtractAttr is GetAttr followed by deletion of the attribute. A missing
// attribute is an error only when required. The error is marked with
// ErrNotFound or ErrBadValue.
func (l *List) ExtractAttr(name string, dict Dict, kind RepnKind, dest interface{}, required bool) error {
	switch l.GetAttr(name, dict, kind, dest) {
	case AttrNotFound:
		if required {
			return errors.Wrapf(ErrNotFound, "%q", name)
		}
		return nil
	case AttrBadValue:
		c, _ := l.Lookup(name)
		return errors.Wrapf(ErrBadValue, "%q: %v", name, c.Value())
	}
	// Detach without destroying: dest may now share the value.
	c, _ := l.Lookup(name)
	c.Detach()
	return nil
}

// coerce converts value to the Go type of kind, or to a keyword when a
// dict is given for a numeric kind.
func coerce(dict Dict, kind RepnKind, value interface{}) (RepnKind, interface{}) {
	dt, numeric := numericType(kind)
	if !numeric {
		return kind, value
	}
	v, _, ok := dtype.FromGo(value)
	if !ok {
		panic(errors.AssertionFailedf("attribute value of type %T is not numeric", value))
	}
	if dict != nil {
		if kw, ok := dict.Keyword(v); ok {
			return StringRepn, kw
		}
	}
	cv, err := dtype.Convert(v, dt)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "attribute value"))
	}
	return kind, dtype.ToGo(cv, dt)
}

// convertValue converts an attribute value of kind from to kind to.
func convertValue(from RepnKind, value interface{}, dict Dict, to RepnKind) (interface{}, bool) {
	toType, toNumeric := numericType(to)
	fromType, fromNumeric := numericType(from)

	switch {
	case to == UnknownRepn, to == PointerRepn:
		return value, true

	case toNumeric:
		var v float64
		switch {
		case fromNumeric:
			v, _, _ = dtype.FromGo(value)
		case from == StringRepn:
			s := value.(string)
			if kv, ok := dict.Value(s); ok {
				v = kv
			} else {
				pv, err := dtype.Parse(s, dtype.Double)
				if err != nil {
					return nil, false
				}
				v = pv
			}
		default:
			return nil, false
		}
		cv, err := dtype.Convert(v, toType)
		if err != nil {
			return nil, false
		}
		return dtype.ToGo(cv, toType), true

	case to == StringRepn:
		switch {
		case from == StringRepn:
			return value, true
		case fromNumeric:
			v, _, _ := dtype.FromGo(value)
			if kw, ok := dict.Keyword(v); ok {
				return kw, true
			}
			return dtype.Format(v, fromType), true
		}
		return nil, false
	}

	if from != to {
		return nil, false
	}
	return value, true
}

// store assigns a converted value to dest.
func store(dest interface{}, v interface{}) {
	ok := true
	switch d := dest.(type) {
	case *interface{}:
		*d = v
	case *uint8:
		*d, ok = v.(uint8)
	case *int8:
		*d, ok = v.(int8)
	case *int16:
		*d, ok = v.(int16)
	case *int32:
		*d, ok = v.(int32)
	case *float32:
		*d, ok = v.(float32)
	case *float64:
		*d, ok = v.(float64)
	case *int:
		var f float64
		f, _, ok = dtype.FromGo(v)
		*d = int(f)
	case *int64:
		var f float64
		f, _, ok = dtype.FromGo(v)
		*d = int64(f)
	case *string:
		*d, ok = v.(string)
	case **List:
		*d, ok = v.(*List)
	case **Bundle:
		*d, ok = v.(*Bundle)
	case *Object:
		*d, ok = v.(Object)
	case **Image:
		*d, ok = v.(*Image)
	case **Graph:
		*d, ok = v.(*Graph)
	case **Edges:
		*d, ok = v.(*Edges)
	default:
		ok = false
	}
	if !ok {
		panic(errors.AssertionFailedf("cannot store %T in %T", v, dest))
	}
}
