// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package jsonv provides an order-preserving, immutable JSON value.
//
// Objects keep their members in the order they were decoded, which is what
// makes a mismatch tree line up with the payload it was derived from. All
// operations that "modify" a Value return a new Value; the receiver is never
// changed.
package jsonv

// Kind identifies the JSON type held by a Value.
type Kind uint8

const (
	// Null is the zero Kind, so the zero Value is a JSON null.
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	s       string // string contents, or the literal text of a number
	items   []Value
	members []Member
}

// NullValue returns a JSON null.
func NullValue() Value { return Value{} }

// BoolValue returns a JSON boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue returns a JSON number from its literal text (e.g. "1.5e3").
// The literal is kept as-is so that large integers survive a round trip.
func NumberValue(literal string) Value { return Value{kind: Number, s: literal} }

// StringValue returns a JSON string.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ArrayValue returns a JSON array holding a copy of items.
func ArrayValue(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: Array, items: cp}
}

// ObjectValue returns a JSON object holding a copy of members. Later
// duplicates of a key replace the earlier value in place.
func ObjectValue(members ...Member) Value {
	v := Value{kind: Object, members: make([]Member, 0, len(members))}
	for _, m := range members {
		if i := v.indexOf(m.Key); i >= 0 {
			v.members[i].Value = m.Value
			continue
		}
		v.members = append(v.members, m)
	}
	return v
}

// Kind returns the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is a JSON null.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean held by v (false for other kinds).
func (v Value) Bool() bool { return v.b }

// Str returns the string held by v ("" for other kinds).
func (v Value) Str() string {
	if v.kind != String {
		return ""
	}
	return v.s
}

// NumberLiteral returns the literal text of a number ("" for other kinds).
func (v Value) NumberLiteral() string {
	if v.kind != Number {
		return ""
	}
	return v.s
}

// Len returns the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Items returns a copy of the elements of an array.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// Members returns a copy of the members of an object, in order.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	cp := make([]Member, len(v.members))
	copy(cp, v.members)
	return cp
}

// Keys returns the member keys of an object, in order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Lookup returns the value of the member with the given key.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	if i := v.indexOf(key); i >= 0 {
		return v.members[i].Value, true
	}
	return Value{}, false
}

// Has reports whether an object has a member with the given key.
func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// With returns a copy of the object v with key set to val. An existing member
// keeps its position; a new member is appended.
func (v Value) With(key string, val Value) Value {
	if v.kind != Object {
		return v
	}
	out := Value{kind: Object, members: make([]Member, len(v.members), len(v.members)+1)}
	copy(out.members, v.members)
	if i := out.indexOf(key); i >= 0 {
		out.members[i].Value = val
		return out
	}
	out.members = append(out.members, Member{Key: key, Value: val})
	return out
}

// WithIndex returns a copy of the array v with element i replaced by val.
func (v Value) WithIndex(i int, val Value) Value {
	if v.kind != Array || i < 0 || i >= len(v.items) {
		return v
	}
	out := v.Items()
	out[i] = val
	return Value{kind: Array, items: out}
}

// Append returns a copy of the array v with val appended.
func (v Value) Append(val Value) Value {
	if v.kind != Array {
		return v
	}
	out := make([]Value, len(v.items), len(v.items)+1)
	copy(out, v.items)
	return Value{kind: Array, items: append(out, val)}
}

// Map returns a copy of v where every array element and object member value
// is replaced by fn applied to it. Scalars are returned unchanged.
func (v Value) Map(fn func(Value) Value) Value {
	switch v.kind {
	case Array:
		out := make([]Value, len(v.items))
		for i, item := range v.items {
			out[i] = fn(item)
		}
		return Value{kind: Array, items: out}
	case Object:
		out := make([]Member, len(v.members))
		for i, m := range v.members {
			out[i] = Member{Key: m.Key, Value: fn(m.Value)}
		}
		return Value{kind: Object, members: out}
	default:
		return v
	}
}

func (v Value) indexOf(key string) int {
	for i, m := range v.members {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// Equal reports whether a and b are structurally equal. Object member order is
// significant; numbers compare by literal text.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case Number, String:
		return a.s == b.s
	case Array:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Key != b.members[i].Key || !Equal(a.members[i].Value, b.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
