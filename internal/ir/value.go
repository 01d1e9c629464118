package ir

import (
	"fmt"
	"strconv"
)

// Value is a sealed interface for literal payloads.
//
// Implemented by NullValue, BoolValue, IntValue, UIntValue, FloatValue,
// Utf8Value, RangeValue and SeriesValue. Values are immutable; copying a
// Value never deep-copies column data because SeriesValue shares its series
// by reference.
type Value interface {
	value() // Sealed - only these types implement it
	// DType returns the data type the literal evaluates to.
	DType() DataType
}

// NullValue is the untyped null literal.
type NullValue struct{}

func (NullValue) value()          {}
func (NullValue) DType() DataType { return Null }
func (NullValue) String() string  { return "null" }

// BoolValue is a boolean literal.
type BoolValue bool

func (BoolValue) value()          {}
func (BoolValue) DType() DataType { return Boolean }
func (v BoolValue) String() string {
	return strconv.FormatBool(bool(v))
}

// IntValue is a signed integer literal.
type IntValue int64

func (IntValue) value()          {}
func (IntValue) DType() DataType { return Int64 }
func (v IntValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// UIntValue is an unsigned integer literal.
type UIntValue uint64

func (UIntValue) value()          {}
func (UIntValue) DType() DataType { return UInt64 }
func (v UIntValue) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// FloatValue is a floating point literal.
type FloatValue float64

func (FloatValue) value()          {}
func (FloatValue) DType() DataType { return Float64 }
func (v FloatValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// Utf8Value is a string literal.
type Utf8Value string

func (Utf8Value) value()          {}
func (Utf8Value) DType() DataType { return Utf8 }
func (v Utf8Value) String() string {
	return strconv.Quote(string(v))
}

// RangeValue is an integer range literal [Low, High) materialised as DType.
type RangeValue struct {
	Low, High int64
	Type      DataType
}

func (RangeValue) value()            {}
func (v RangeValue) DType() DataType { return v.Type }
func (v RangeValue) String() string {
	return fmt.Sprintf("range(%d, %d)", v.Low, v.High)
}

// Series is the column payload a SeriesValue literal refers to.
type Series interface {
	Name() string
	DType() DataType
	Len() int
}

// SeriesValue is a literal column. The series is shared, not copied, when
// the literal is duplicated.
type SeriesValue struct {
	Series Series
}

func (SeriesValue) value() {}
func (v SeriesValue) DType() DataType {
	if v.Series == nil {
		return Null
	}
	return v.Series.DType()
}
func (v SeriesValue) String() string {
	if v.Series == nil {
		return "series(nil)"
	}
	return fmt.Sprintf("series(%s, len=%d)", v.Series.Name(), v.Series.Len())
}

// ValueOf converts a Go scalar to a literal Value. It panics on types it
// does not know, like the Must helpers; use it for constants.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return NullValue{}
	case Value:
		return x
	case bool:
		return BoolValue(x)
	case int:
		return IntValue(x)
	case int32:
		return IntValue(x)
	case int64:
		return IntValue(x)
	case uint:
		return UIntValue(x)
	case uint32:
		return UIntValue(x)
	case uint64:
		return UIntValue(x)
	case float32:
		return FloatValue(x)
	case float64:
		return FloatValue(x)
	case string:
		return Utf8Value(x)
	default:
		panic(fmt.Sprintf("ir: unsupported literal type %T", v))
	}
}
