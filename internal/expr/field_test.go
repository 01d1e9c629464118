package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyir/internal/ir"
)

var people = ir.NewSchema(
	ir.NewField("id", ir.Int64),
	ir.NewField("name", ir.Utf8),
	ir.NewField("age", ir.Int64),
	ir.NewField("tags", ir.ListOf(ir.Utf8)),
)

func TestFieldOf(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want ir.Field
	}{
		{"column", Col("name"), ir.NewField("name", ir.Utf8)},
		{"literal", Lit(2.5), ir.NewField("literal", ir.Float64)},
		{"alias", As(Col("age"), "years"), ir.NewField("years", ir.Int64)},
		{"arithmetic keeps left", Plus(Col("age"), Lit(1)), ir.NewField("age", ir.Int64)},
		{"comparison", Gt(Col("age"), Lit(30)), ir.NewField("age", ir.Boolean)},
		{"true divide", Binary(Col("age"), ir.OpTrueDivide, Lit(2)), ir.NewField("age", ir.Float64)},
		{"is null", &IsNull{Expr: Col("name")}, ir.NewField("name", ir.Boolean)},
		{"cast", &Cast{Expr: Col("age"), DType: ir.Float32}, ir.NewField("age", ir.Float32)},
		{"explode", &Explode{Expr: Col("tags")}, ir.NewField("tags", ir.Utf8)},
		{"mean", Aggregate(&Mean{Expr: Col("age")}), ir.NewField("age", ir.Float64)},
		{"count", Aggregate(&Count{Expr: Col("id")}), ir.NewField("id", ir.UInt32)},
		{"list", Aggregate(&List{Expr: Col("name")}), ir.NewField("name", ir.ListOf(ir.Utf8))},
		{"sum", Aggregate(&Sum{Expr: Col("age")}), ir.NewField("age", ir.Int64)},
		{"ternary", &Ternary{Predicate: Gt(Col("age"), Lit(1)), Truthy: Col("name"), Falsy: Lit("x")}, ir.NewField("name", ir.Utf8)},
		{"window", &Window{Function: Aggregate(&Max{Expr: Col("age")}), PartitionBy: Col("name")}, ir.NewField("age", ir.Int64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FieldOf(tt.expr, people)
			require.NoError(t, err)
			assert.True(t, tt.want.DType.Equal(got.DType), "dtype %s, want %s", got.DType, tt.want.DType)
			assert.Equal(t, tt.want.Name, got.Name)
		})
	}
}

func TestFieldOfMissingColumn(t *testing.T) {
	_, err := FieldOf(Plus(Col("age"), Col("salary")), people)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestFieldOfWildcard(t *testing.T) {
	_, err := FieldOf(&Wildcard{}, people)
	assert.ErrorIs(t, err, ErrNotSingleField)
}

func TestColumnsOf(t *testing.T) {
	names, err := ColumnsOf(&Wildcard{}, people)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "age", "tags"}, names)

	names, err = ColumnsOf(&Except{Input: Col("tags")}, people)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "age"}, names)

	names, err = ColumnsOf(As(Col("id"), "key"), people)
	require.NoError(t, err)
	assert.Equal(t, []string{"key"}, names)
}
