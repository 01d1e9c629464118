package expr

import (
	"github.com/roach88/lazyir/internal/ir"
)

// Expr is a column or scalar expression in tree form.
//
// Only pointer types declared in this package implement Expr. A tree is
// consumed by ToAExpr; callers must not keep using it afterwards.
type Expr interface {
	// lower converts the children into a, then returns the arena variant
	// for this node. The caller appends the result.
	lower(a *Arena) AExpr
	String() string
}

// IsUnique marks rows whose value occurs exactly once.
type IsUnique struct{ Expr Expr }

// Duplicated marks rows whose value occurs more than once.
type Duplicated struct{ Expr Expr }

// Reverse reverses the order of a column.
type Reverse struct{ Expr Expr }

// Explode flattens a list column into one row per element.
type Explode struct{ Expr Expr }

// Alias renames the output of Expr.
type Alias struct {
	Expr Expr
	Name string
}

// Column references an input column by name.
type Column struct{ Name string }

// Literal is a constant value.
type Literal struct{ Value ir.Value }

// BinaryExpr applies Op to two operands.
type BinaryExpr struct {
	Left  Expr
	Op    ir.Operator
	Right Expr
}

// Not is the boolean negation of Expr.
type Not struct{ Expr Expr }

// IsNotNull tests every value of Expr against null.
type IsNotNull struct{ Expr Expr }

// IsNull tests every value of Expr against null.
type IsNull struct{ Expr Expr }

// Cast converts Expr to DType.
type Cast struct {
	Expr  Expr
	DType ir.DataType
}

// Sort sorts the values of Expr.
type Sort struct {
	Expr    Expr
	Reverse bool
}

// SortBy sorts Expr by the values of By.
type SortBy struct {
	Expr    Expr
	By      Expr
	Reverse bool
}

// Filter keeps the values of Input where By is true.
type Filter struct {
	Input Expr
	By    Expr
}

// Agg wraps an aggregation.
type Agg struct{ Agg AggExpr }

// Ternary selects Truthy where Predicate holds and Falsy elsewhere.
type Ternary struct {
	Predicate Expr
	Truthy    Expr
	Falsy     Expr
}

// UDF applies a user function to one input. A nil OutputType means the
// output type equals the input type.
type UDF struct {
	Input      Expr
	Function   *ir.SeriesUDF
	OutputType *ir.DataType
}

// BinaryFunction applies a user function to two inputs.
type BinaryFunction struct {
	InputA      Expr
	InputB      Expr
	Function    *ir.BinaryUDF
	OutputField ir.Field
}

// Shift shifts the values of Input by Periods rows.
type Shift struct {
	Input   Expr
	Periods int64
}

// Window evaluates Function over partitions of PartitionBy. OrderBy is
// optional and nil when absent.
type Window struct {
	Function    Expr
	PartitionBy Expr
	OrderBy     Expr
}

// Slice takes Length values starting at Offset. A negative Offset counts
// from the end.
type Slice struct {
	Input  Expr
	Offset int64
	Length int
}

// Wildcard selects every column.
type Wildcard struct{}

// Except removes the columns selected by Input from a wildcard selection.
type Except struct{ Input Expr }
