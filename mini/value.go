package mini

import "strconv"

type ValueKind int

const (
	KindInt ValueKind = iota
	KindString
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value holds exactly one of an integer, a string or a boolean. It is the
// result of resolving an identifier and is never stored directly.
type Value struct {
	kind ValueKind
	data any
}

func NewInt(v int32) Value {
	return Value{kind: KindInt, data: v}
}

func NewString(v string) Value {
	return Value{kind: KindString, data: v}
}

func NewBool(v bool) Value {
	return Value{kind: KindBool, data: v}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Int() int32 {
	if n, ok := v.data.(int32); ok {
		return n
	}
	return 0
}

func (v Value) Bool() bool {
	if b, ok := v.data.(bool); ok {
		return b
	}
	return false
}

// String renders the value as print and concatenation see it.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(int64(v.Int()), 10)
	case KindBool:
		return strconv.FormatBool(v.Bool())
	default:
		s, _ := v.data.(string)
		return s
	}
}

func (v Value) Equal(other Value) bool {
	return v.kind == other.kind && v.data == other.data
}
