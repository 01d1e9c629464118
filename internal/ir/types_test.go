package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataType(t *testing.T) {
	tests := []struct {
		in   string
		want DataType
	}{
		{"i64", Int64},
		{"str", Utf8},
		{"bool", Boolean},
		{"list[f64]", ListOf(Float64)},
		{"list[list[u8]]", ListOf(ListOf(UInt8))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDataType(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, tt.in, got.String())
		})
	}

	for _, bad := range []string{"", "int", "list", "list[i64"} {
		_, err := ParseDataType(bad)
		assert.Error(t, err, bad)
	}
}

func TestDataTypeEqual(t *testing.T) {
	assert.True(t, Int64.Equal(Int64))
	assert.False(t, Int64.Equal(Int32))
	assert.False(t, ListOf(Int64).Equal(ListOf(Int32)))
	assert.False(t, ListOf(Int64).Equal(DataType{Kind: KindList}))
	assert.True(t, Float32.IsNumeric())
	assert.False(t, Utf8.IsNumeric())
}

func TestSchema(t *testing.T) {
	s := NewSchema(NewField("a", Int64), NewField("b", Utf8))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.Names())
	assert.Equal(t, "{a: i64, b: str}", s.String())

	f, ok := s.Field("b")
	require.True(t, ok)
	assert.Equal(t, Utf8, f.DType)
	_, ok = s.Field("c")
	assert.False(t, ok)

	assert.True(t, s.Equal(NewSchema(NewField("a", Int64), NewField("b", Utf8))))
	assert.False(t, s.Equal(NewSchema(NewField("b", Utf8), NewField("a", Int64))))

	var empty *Schema
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Names())
}

func TestOperatorRoundTrip(t *testing.T) {
	for op := OpEq; op <= OpNotLike; op++ {
		got, ok := ParseOperator(op.String())
		require.True(t, ok, op.String())
		assert.Equal(t, op, got)
	}
	assert.True(t, OpLtEq.IsComparison())
	assert.False(t, OpPlus.IsComparison())

	jt, ok := ParseJoinType("inner")
	require.True(t, ok)
	assert.Equal(t, JoinInner, jt)
}

func TestValueOf(t *testing.T) {
	assert.Equal(t, IntValue(3), ValueOf(3))
	assert.Equal(t, UIntValue(3), ValueOf(uint64(3)))
	assert.Equal(t, FloatValue(1.5), ValueOf(1.5))
	assert.Equal(t, Utf8Value("x"), ValueOf("x"))
	assert.Equal(t, BoolValue(true), ValueOf(true))
	assert.Equal(t, NullValue{}, ValueOf(nil))
	assert.Equal(t, Int64, ValueOf(1).DType())
	assert.Panics(t, func() { ValueOf(struct{}{}) })
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "double", FuncName(&SeriesUDF{Name: "double"}))
	assert.Equal(t, "<anonymous>", FuncName(&BinaryUDF{}))
	assert.Equal(t, "<nil>", FuncName((*AggApply)(nil)))
}
