package domain

import "strconv"

// Kind tags which variant of a Value is active.
type Kind int

const (
	KindInt Kind = iota
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is the payload of a change notification: either a dB level or a
// power state. Exactly one variant is active.
type Value struct {
	kind Kind
	n    int
	b    bool
}

// IntValue wraps an integer control value.
func IntValue(n int) Value {
	return Value{kind: KindInt, n: n}
}

// BoolValue wraps a boolean control value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the active variant.
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns the integer payload and whether the value holds one.
func (v Value) Int() (int, bool) {
	return v.n, v.kind == KindInt
}

// Bool returns the boolean payload and whether the value holds one.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// String renders ints as decimal text and bools as "on"/"off".
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return OnOff(v.b)
	default:
		return strconv.Itoa(v.n)
	}
}

// OnOff converts a power state to its display form.
func OnOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
