// Package value models decoded input data as a closed sum type.
//
// Every value entering the engine is one of [Null], [Bool], [Int], [Float],
// [String], [Sequence] or [*Mapping]. Consumers dispatch with type switches:
//
//	switch v := v.(type) {
//	case value.String:
//	case value.Sequence:
//	case *value.Mapping:
//	}
//
// Mappings keep their key order, so a rendered literal lists fields in the
// same order as the source document.
package value

import (
	"math"
	"strconv"
)

// Value is a decoded JSON or YAML value.
type Value interface {
	isValue()
}

// Null is the JSON null.
type Null struct{}

// Bool is a boolean scalar.
type Bool bool

// Int is an integral number.
type Int int64

// Float is a non-integral or explicitly fractional number.
type Float float64

// String is a string scalar.
type String string

// Sequence is an ordered list of values.
type Sequence []Value

func (Null) isValue()     {}
func (Bool) isValue()     {}
func (Int) isValue()      {}
func (Float) isValue()    {}
func (String) isValue()   {}
func (Sequence) isValue() {}
func (*Mapping) isValue() {}

// MarshalJSON encodes Null as the JSON null literal.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IsNull reports whether v is nil or Null.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// IsScalar reports whether v is a non-composite value.
func IsScalar(v Value) bool {
	switch v.(type) {
	case nil, Null, Bool, Int, Float, String:
		return true
	default:
		return false
	}
}

// Key returns a canonical identity for a scalar. Integers and integral floats
// share a key, matching JSON number equality. Composite values have no key.
func Key(v Value) (string, bool) {
	switch v := v.(type) {
	case nil, Null:
		return "null", true
	case Bool:
		return "b:" + strconv.FormatBool(bool(v)), true
	case Int:
		return "n:" + strconv.FormatInt(int64(v), 10), true
	case Float:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
			return "n:" + strconv.FormatInt(int64(f), 10), true
		}
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64), true
	case String:
		return "s:" + string(v), true
	default:
		return "", false
	}
}

// Equal reports whether a and b are structurally equal. Numbers compare by
// value, so Int(1) equals Float(1).
func Equal(a, b Value) bool {
	if ka, ok := Key(a); ok {
		kb, ok := Key(b)
		return ok && ka == kb
	}
	switch a := a.(type) {
	case Sequence:
		b, ok := b.(Sequence)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		b, ok := b.(*Mapping)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, e := range a.entries {
			bv, ok := b.Get(e.Key)
			if !ok || !Equal(e.Value, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// TypeName returns the JSON type name of v, for error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return "boolean"
	case Int:
		return "integer"
	case Float:
		return "number"
	case String:
		return "string"
	case Sequence:
		return "array"
	case *Mapping:
		return "object"
	default:
		return "unknown"
	}
}
