package ir

import (
	"fmt"
	"strings"
)

// DataType tags the physical type of a column or literal.
type DataType struct {
	Kind TypeKind
	// Inner is the element type of a List. Nil for every other kind.
	Inner *DataType
}

// TypeKind enumerates the supported column types.
type TypeKind uint8

const (
	KindNull TypeKind = iota
	KindBoolean
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindUtf8
	KindDate32
	KindDate64
	KindTime64
	KindDuration
	KindList
	KindCategorical
)

var typeKindNames = [...]string{
	KindNull:        "null",
	KindBoolean:     "bool",
	KindUInt8:       "u8",
	KindUInt16:      "u16",
	KindUInt32:      "u32",
	KindUInt64:      "u64",
	KindInt8:        "i8",
	KindInt16:       "i16",
	KindInt32:       "i32",
	KindInt64:       "i64",
	KindFloat32:     "f32",
	KindFloat64:     "f64",
	KindUtf8:        "str",
	KindDate32:      "date32",
	KindDate64:      "date64",
	KindTime64:      "time64",
	KindDuration:    "duration",
	KindList:        "list",
	KindCategorical: "cat",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseTypeKind maps a name produced by TypeKind.String back to the kind.
func ParseTypeKind(s string) (TypeKind, bool) {
	for k, name := range typeKindNames {
		if name == s {
			return TypeKind(k), true
		}
	}
	return 0, false
}

// Scalar data types.
var (
	Null        = DataType{Kind: KindNull}
	Boolean     = DataType{Kind: KindBoolean}
	UInt8       = DataType{Kind: KindUInt8}
	UInt16      = DataType{Kind: KindUInt16}
	UInt32      = DataType{Kind: KindUInt32}
	UInt64      = DataType{Kind: KindUInt64}
	Int8        = DataType{Kind: KindInt8}
	Int16       = DataType{Kind: KindInt16}
	Int32       = DataType{Kind: KindInt32}
	Int64       = DataType{Kind: KindInt64}
	Float32     = DataType{Kind: KindFloat32}
	Float64     = DataType{Kind: KindFloat64}
	Utf8        = DataType{Kind: KindUtf8}
	Date32      = DataType{Kind: KindDate32}
	Date64      = DataType{Kind: KindDate64}
	Time64      = DataType{Kind: KindTime64}
	Duration    = DataType{Kind: KindDuration}
	Categorical = DataType{Kind: KindCategorical}
)

// ListOf returns the list type with the given element type.
func ListOf(inner DataType) DataType {
	return DataType{Kind: KindList, Inner: &inner}
}

func (t DataType) String() string {
	if t.Kind == KindList && t.Inner != nil {
		return "list[" + t.Inner.String() + "]"
	}
	return t.Kind.String()
}

// Equal reports whether t and o describe the same type.
func (t DataType) Equal(o DataType) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Inner == nil || o.Inner == nil {
		return t.Inner == nil && o.Inner == nil
	}
	return t.Inner.Equal(*o.Inner)
}

// IsNumeric reports whether t is an integer or floating point type.
func (t DataType) IsNumeric() bool {
	return t.Kind >= KindUInt8 && t.Kind <= KindFloat64
}

// ParseDataType parses the String form of a data type, including nested
// lists such as "list[list[i64]]".
func ParseDataType(s string) (DataType, error) {
	if inner, ok := strings.CutPrefix(s, "list["); ok {
		inner, ok = strings.CutSuffix(inner, "]")
		if !ok {
			return DataType{}, fmt.Errorf("unterminated list type %q", s)
		}
		dt, err := ParseDataType(inner)
		if err != nil {
			return DataType{}, err
		}
		return ListOf(dt), nil
	}
	k, ok := ParseTypeKind(s)
	if !ok || k == KindList {
		return DataType{}, fmt.Errorf("unknown data type %q", s)
	}
	return DataType{Kind: k}, nil
}
