// Package mi implements the GDB Machine Interface wire grammar: the value
// model (string/list/tuple), the record dispatcher, and the C-string escape
// rules GDB uses for stream records and quoted atoms.
package mi

import "fmt"

// Kind tags the variant held by a Value.
type Kind int

const (
	// KindString holds an already-unescaped text value.
	KindString Kind = iota
	// KindList holds an ordered sequence of Values.
	KindList
	// KindTuple holds a mapping from identifier to Value.
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Value is the tagged union MI values decode into: a String, a List, or a
// Tuple. Exactly one of the accessor fields is meaningful, selected by Kind.
type Value struct {
	kind  Kind
	str   string
	list  []Value
	tuple Tuple
}

// Tuple is a mapping from identifier to Value. Insertion order is not
// significant; keys are unique within a tuple (duplicate keys from the wire
// are resolved last-writer-wins by the parser).
type Tuple map[string]Value

// String constructs a string-kind Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List constructs a list-kind Value.
func List(values ...Value) Value { return Value{kind: KindList, list: values} }

// TupleValue constructs a tuple-kind Value.
func TupleValue(t Tuple) Value { return Value{kind: KindTuple, tuple: t} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsString reports whether v holds a string.
func (v Value) IsString() bool { return v.kind == KindString }

// IsList reports whether v holds a list.
func (v Value) IsList() bool { return v.kind == KindList }

// IsTuple reports whether v holds a tuple.
func (v Value) IsTuple() bool { return v.kind == KindTuple }

// AsString returns the held string and true, or "" and false if v is not a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsList returns the held list and true, or nil and false if v is not a list.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsTuple returns the held tuple and true, or nil and false if v is not a tuple.
func (v Value) AsTuple() (Tuple, bool) {
	if v.kind != KindTuple {
		return nil, false
	}
	return v.tuple, true
}

// Field looks up key in v's tuple. Returns the zero Value and false if v is
// not a tuple or the key is absent.
func (v Value) Field(key string) (Value, bool) {
	t, ok := v.AsTuple()
	if !ok {
		return Value{}, false
	}
	val, ok := t[key]
	return val, ok
}

// String renders a debug representation of v. It is not used for any wire
// decision, only for log and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindList:
		return fmt.Sprintf("%v", v.list)
	case KindTuple:
		return fmt.Sprintf("%v", map[string]Value(v.tuple))
	default:
		return "<invalid>"
	}
}
