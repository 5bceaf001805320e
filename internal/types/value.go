package types

import (
	"bytes"
	"math"
)

// Value is a discriminated union keyed by Tag (spec §3 "Value"). Strings
// borrow a slice into a per-table string arena; copies are made only at
// cross-component boundaries (e.g. when a backend serializes a row).
type Value struct {
	Tag    DataType
	i      int64   // int32, int64, timestamp, boolean (0/1)
	f      float64 // float32 (narrowed), float64
	s      string  // string (arena-backed slice)
	vec    []float32
	custom any // Custom / Exception payload, opaque to operators
}

func Int32Value(v int32) Value     { return Value{Tag: Int32, i: int64(v)} }
func Int64Value(v int64) Value     { return Value{Tag: Int64, i: v} }
func Float32Value(v float32) Value { return Value{Tag: Float32, f: float64(v)} }
func Float64Value(v float64) Value { return Value{Tag: Float64, f: v} }
func BoolValue(v bool) Value {
	if v {
		return Value{Tag: Boolean, i: 1}
	}
	return Value{Tag: Boolean, i: 0}
}
func StringValue(s string) Value       { return Value{Tag: String, s: s} }
func TimestampValue(ms int64) Value    { return Value{Tag: Timestamp, i: ms} }
func VectorValue(v []float32) Value    { return Value{Tag: Vector, vec: v} }
func CustomValue(payload any) Value    { return Value{Tag: Custom, custom: payload} }
func ExceptionValue(payload any) Value { return Value{Tag: Exception, custom: payload} }

func (v Value) AsInt32() int32       { return int32(v.i) }
func (v Value) AsInt64() int64       { return v.i }
func (v Value) AsFloat32() float32   { return float32(v.f) }
func (v Value) AsFloat64() float64   { return v.f }
func (v Value) AsBool() bool         { return v.i != 0 }
func (v Value) AsString() string     { return v.s }
func (v Value) AsTimestamp() int64   { return v.i }
func (v Value) AsVector() []float32  { return v.vec }
func (v Value) AsCustom() any        { return v.custom }

// Equal implements §4.3/§4.4 value equality. Cross-tag comparisons are
// never equal. Custom and Exception values have no defined equality and
// always compare unequal, per spec (treated as equal only for ordering,
// not identity).
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case Int32, Int64, Timestamp:
		return v.i == o.i
	case Boolean:
		return v.i == o.i
	case Float32:
		return float32(v.f) == float32(o.f) || (math.IsNaN(float64(float32(v.f))) && math.IsNaN(float64(float32(o.f))))
	case Float64:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case String:
		return v.s == o.s
	case Vector:
		if len(v.vec) != len(o.vec) {
			return false
		}
		for i := range v.vec {
			if v.vec[i] != o.vec[i] {
				return false
			}
		}
		return true
	default: // Custom, Exception
		return false
	}
}

// Compare implements the sort operator's comparator rules (spec §4.3).
// Returns <0, 0, or >0 for v<o, v==o, v>o respectively.
func Compare(v, o Value) int {
	if v.Tag != o.Tag {
		// Cross-typed comparison: fall back to tag ordering so the
		// comparator is at least a total order, never a panic.
		return int(v.Tag) - int(o.Tag)
	}
	switch v.Tag {
	case Int32, Int64, Timestamp:
		switch {
		case v.i < o.i:
			return -1
		case v.i > o.i:
			return 1
		default:
			return 0
		}
	case Boolean:
		// false < true
		return int(v.i) - int(o.i)
	case Float32:
		return compareFloat(float64(float32(v.f)), float64(float32(o.f)))
	case Float64:
		return compareFloat(v.f, o.f)
	case String:
		return bytes.Compare([]byte(v.s), []byte(o.s))
	case Vector:
		// Empty vectors sort before non-empty; otherwise compare by
		// first element only, per spec.
		switch {
		case len(v.vec) == 0 && len(o.vec) == 0:
			return 0
		case len(v.vec) == 0:
			return -1
		case len(o.vec) == 0:
			return 1
		default:
			return compareFloat(float64(v.vec[0]), float64(o.vec[0]))
		}
	default: // Custom, Exception: no ordering, treated as equal
		return 0
	}
}

// compareFloat implements NaN-is-maximal ordering: NaN == NaN, and NaN
// sorts after every non-NaN value regardless of ASC/DESC direction. The
// sort operator achieves "still last for DESC" by applying this same
// ascending comparator and then negating only for non-NaN operands
// (see internal/sortop).
func compareFloat(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
