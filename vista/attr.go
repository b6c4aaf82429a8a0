package vista

import (
	"github.com/cockroachdb/errors"
)

// Attribute is one name/value pair of a List.
//
// Value holds a Go value matching Kind:
//
//	BitRepn, UByteRepn  uint8
//	SByteRepn           int8
//	ShortRepn           int16
//	LongRepn            int32
//	FloatRepn           float32
//	DoubleRepn          float64
//	StringRepn          string
//	PointerRepn         any value, never written to files
//	AttrListRepn        *List
//	BundleRepn          *Bundle
//	composite kinds     Object
type Attribute struct {
	Name  string
	Kind  RepnKind
	Value interface{}

	list       *List
	prev, next *Attribute
}

// List is an ordered sequence of attributes. Names need not be unique.
// A List owns its attributes and the lists, bundles and objects they hold.
type List struct {
	head, tail *Attribute
	n          int
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Len returns the number of attributes in l.
func (l *List) Len() int {
	return l.n
}

// checkValue panics when value does not have the Go type required by kind.
func checkValue(kind RepnKind, value interface{}) {
	ok := true
	switch kind {
	case BitRepn, UByteRepn:
		_, ok = value.(uint8)
	case SByteRepn:
		_, ok = value.(int8)
	case ShortRepn:
		_, ok = value.(int16)
	case LongRepn:
		_, ok = value.(int32)
	case FloatRepn:
		_, ok = value.(float32)
	case DoubleRepn:
		_, ok = value.(float64)
	case StringRepn:
		_, ok = value.(string)
	case AttrListRepn:
		var sub *List
		sub, ok = value.(*List)
		ok = ok && sub != nil
	case BundleRepn:
		var b *Bundle
		b, ok = value.(*Bundle)
		ok = ok && b != nil
	case PointerRepn:
	case UnknownRepn:
		ok = false
	default:
		_, ok = value.(Object)
	}
	if !ok {
		panic(errors.AssertionFailedf("attribute value of type %T does not match kind %d", value, kind))
	}
}

func (l *List) newAttr(name string, kind RepnKind, value interface{}) *Attribute {
	checkValue(kind, value)
	return &Attribute{Name: name, Kind: kind, Value: value, list: l}
}

// Append adds an attribute at the end of l and returns it.
func (l *List) Append(name string, kind RepnKind, value interface{}) *Attribute {
	a := l.newAttr(name, kind, value)
	l.insertAfter(a, l.tail)
	return a
}

// Prepend adds an attribute at the front of l and returns it.
func (l *List) Prepend(name string, kind RepnKind, value interface{}) *Attribute {
	a := l.newAttr(name, kind, value)
	l.insertAfter(a, nil)
	return a
}

// insertAfter links a after at, or at the front when at is nil.
func (l *List) insertAfter(a, at *Attribute) {
	a.list = l
	if at == nil {
		a.prev = nil
		a.next = l.head
		if l.head != nil {
			l.head.prev = a
		} else {
			l.tail = a
		}
		l.head = a
	} else {
		a.prev = at
		a.next = at.next
		if at.next != nil {
			at.next.prev = a
		} else {
			l.tail = a
		}
		at.next = a
	}
	l.n++
}

// unlink removes a from l and returns the attribute that followed it.
func (l *List) unlink(a *Attribute) *Attribute {
	next := a.next
	if a.prev != nil {
		a.prev.next = a.next
	} else {
		l.head = a.next
	}
	if a.next != nil {
		a.next.prev = a.prev
	} else {
		l.tail = a.prev
	}
	a.prev, a.next, a.list = nil, nil, nil
	l.n--
	return next
}

// First returns a cursor on the first attribute of l.
func (l *List) First() Cursor {
	return Cursor{list: l, node: l.head}
}

// Last returns a cursor on the last attribute of l.
func (l *List) Last() Cursor {
	return Cursor{list: l, node: l.tail}
}

// Attributes returns the attributes of l in order. The slice is a
// snapshot; the attributes themselves are shared with l.
func (l *List) Attributes() []*Attribute {
	out := make([]*Attribute, 0, l.n)
	for a := l.head; a != nil; a = a.next {
		out = append(out, a)
	}
	return out
}

// Concat moves every attribute of src to the end of l, leaving src empty.
func (l *List) Concat(src *List) {
	if src == nil || src == l || src.head == nil {
		return
	}
	for a := src.head; a != nil; a = a.next {
		a.list = l
	}
	if l.tail == nil {
		l.head = src.head
	} else {
		l.tail.next = src.head
		src.head.prev = l.tail
	}
	l.tail = src.tail
	l.n += src.n
	src.head, src.tail, src.n = nil, nil, 0
}

// Copy returns a deep copy of l. Sub-lists and bundles are copied
// recursively and objects through their Copy method. Pointer values are
// shared.
func (l *List) Copy() *List {
	out := NewList()
	for a := l.head; a != nil; a = a.next {
		out.Append(a.Name, a.Kind, copyValue(a.Kind, a.Value))
	}
	return out
}

func copyValue(kind RepnKind, value interface{}) interface{} {
	switch v := value.(type) {
	case *List:
		return v.Copy()
	case *Bundle:
		return v.Copy()
	case Object:
		if !isPrimitive(kind) {
			return v.Copy()
		}
	}
	return value
}

// Destroy removes every attribute of l, recursively emptying the lists,
// bundles and object attribute lists they own.
func (l *List) Destroy() {
	for a := l.head; a != nil; {
		next := a.next
		destroyValue(a.Value)
		a.prev, a.next, a.list, a.Value = nil, nil, nil, nil
		a = next
	}
	l.head, l.tail, l.n = nil, nil, 0
}

func destroyValue(value interface{}) {
	switch v := value.(type) {
	case *List:
		v.Destroy()
	case *Bundle:
		v.Destroy()
	case Object:
		if attrs := v.Attrs(); attrs != nil {
			attrs.Destroy()
		}
	}
}

// cursorState is the state of a Cursor.
type cursorState int

const (
	onNode cursorState = iota
	pastEnd
)

// Cursor is a position in a List. It stays valid across deletions made
// through the cursor itself: Delete leaves the cursor on the attribute
// that followed the deleted one.
//
//	for c := l.First(); c.Exists(); {
//	    if drop(c.Attr()) {
//	        c.Delete()
//	        continue
//	    }
//	    c.Next()
//	}
type Cursor struct {
	list *List
	node *Attribute
}

func (c *Cursor) state() cursorState {
	if c.node == nil || c.node.list != c.list {
		return pastEnd
	}
	return onNode
}

// Exists reports whether the cursor is on an attribute.
func (c *Cursor) Exists() bool {
	return c.state() == onNode
}

// Next advances to the following attribute.
func (c *Cursor) Next() {
	if c.state() == onNode {
		c.node = c.node.next
	}
}

// Prev moves to the preceding attribute.
func (c *Cursor) Prev() {
	if c.state() == onNode {
		c.node = c.node.prev
	}
}

// List returns the list the cursor iterates.
func (c *Cursor) List() *List {
	return c.list
}

// Attr returns the attribute under the cursor, or nil past the end.
func (c *Cursor) Attr() *Attribute {
	if c.state() != onNode {
		return nil
	}
	return c.node
}

// Name returns the name of the current attribute.
func (c *Cursor) Name() string {
	if a := c.Attr(); a != nil {
		return a.Name
	}
	return ""
}

// Kind returns the kind of the current attribute.
func (c *Cursor) Kind() RepnKind {
	if a := c.Attr(); a != nil {
		return a.Kind
	}
	return UnknownRepn
}

// Value returns the value of the current attribute.
func (c *Cursor) Value() interface{} {
	if a := c.Attr(); a != nil {
		return a.Value
	}
	return nil
}

// SetValue replaces the kind and value of the current attribute. The old
// value is released without being destroyed, so it may be reused.
func (c *Cursor) SetValue(kind RepnKind, value interface{}) {
	a := c.Attr()
	if a == nil {
		panic(errors.AssertionFailedf("SetValue on cursor past end"))
	}
	checkValue(kind, value)
	a.Kind, a.Value = kind, value
}

// Delete removes the current attribute, destroying any list, bundle or
// object it holds, and moves the cursor to the following attribute.
func (c *Cursor) Delete() {
	a := c.Attr()
	if a == nil {
		return
	}
	value := a.Value
	c.node = c.list.unlink(a)
	destroyValue(value)
}

// Detach removes the current attribute without destroying its value,
// moves the cursor to the following attribute and returns the attribute.
func (c *Cursor) Detach() *Attribute {
	a := c.Attr()
	if a == nil {
		return nil
	}
	c.node = c.list.unlink(a)
	return a
}

// InsertBefore adds an attribute before the cursor, or at the end of the
// list when the cursor is past the end. The cursor does not move.
func (c *Cursor) InsertBefore(name string, kind RepnKind, value interface{}) *Attribute {
	a := c.list.newAttr(name, kind, value)
	if c.state() != onNode {
		c.list.insertAfter(a, c.list.tail)
	} else {
		c.list.insertAfter(a, c.node.prev)
	}
	return a
}

// InsertAfter adds an attribute after the cursor, or at the end of the
// list when the cursor is past the end. The cursor does not move.
func (c *Cursor) InsertAfter(name string, kind RepnKind, value interface{}) *Attribute {
	a := c.list.newAttr(name, kind, value)
	if c.state() != onNode {
		c.list.insertAfter(a, c.list.tail)
	} else {
		c.list.insertAfter(a, c.node)
	}
	return a
}
