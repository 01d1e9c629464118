package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/ir"
)

var ordersSchema = ir.NewSchema(
	ir.NewField("order_id", ir.Int64),
	ir.NewField("id", ir.Int64),
	ir.NewField("x", ir.Float64),
)

func TestProjectSchemaExpandsWildcard(t *testing.T) {
	got, err := ProjectSchema([]expr.Expr{&expr.Wildcard{}, expr.As(expr.Plus(expr.Col("x"), expr.Lit(1)), "y")}, xSchema)
	require.NoError(t, err)
	assert.Equal(t, "{id: i64, x: i64, y: i64}", got.String())

	got, err = ProjectSchema([]expr.Expr{&expr.Except{Input: expr.Col("id")}}, xSchema)
	require.NoError(t, err)
	assert.Equal(t, "{x: i64}", got.String())
}

func TestProjectSchemaRejectsDuplicates(t *testing.T) {
	_, err := ProjectSchema(expr.Cols("x", "x"), xSchema)
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestHStackSchemaReplacesInPlace(t *testing.T) {
	got, err := HStackSchema([]expr.Expr{
		expr.As(expr.Gt(expr.Col("x"), expr.Lit(1)), "id"),
		expr.As(expr.Col("x"), "z"),
	}, xSchema)
	require.NoError(t, err)
	assert.Equal(t, "{id: bool, x: i64, z: i64}", got.String())
	assert.Equal(t, "{id: i64, x: i64}", xSchema.String())
}

func TestAggregateSchema(t *testing.T) {
	got, err := AggregateSchema(
		expr.Cols("id"),
		[]expr.Expr{expr.Aggregate(&expr.Mean{Expr: expr.Col("x")}), expr.As(expr.Aggregate(&expr.Count{Expr: expr.Col("x")}), "n")},
		xSchema)
	require.NoError(t, err)
	assert.Equal(t, "{id: i64, x: f64, n: u32}", got.String())
}

func TestJoinSchema(t *testing.T) {
	got, err := JoinSchema(xSchema, ordersSchema, expr.Cols("id"))
	require.NoError(t, err)
	assert.Equal(t, "{id: i64, x: i64, order_id: i64, x_right: f64}", got.String())
}

func TestMeltSchema(t *testing.T) {
	got, err := MeltSchema(ordersSchema, []string{"order_id"}, []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, "{order_id: i64, variable: str, value: i64}", got.String())

	_, err = MeltSchema(ordersSchema, []string{"order_id"}, nil)
	assert.ErrorContains(t, err, "mix")

	_, err = MeltSchema(ordersSchema, []string{"missing"}, nil)
	assert.ErrorIs(t, err, expr.ErrColumnNotFound)
}
