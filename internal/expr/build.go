package expr

import "github.com/roach88/lazyir/internal/ir"

// Col references the column name.
func Col(name string) *Column { return &Column{Name: name} }

// Lit wraps a Go scalar or ir.Value as a literal. See ir.ValueOf.
func Lit(v any) *Literal { return &Literal{Value: ir.ValueOf(v)} }

// Binary builds a BinaryExpr.
func Binary(left Expr, op ir.Operator, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: op, Right: right}
}

func Eq(l, r Expr) *BinaryExpr    { return Binary(l, ir.OpEq, r) }
func NotEq(l, r Expr) *BinaryExpr { return Binary(l, ir.OpNotEq, r) }
func Lt(l, r Expr) *BinaryExpr    { return Binary(l, ir.OpLt, r) }
func LtEq(l, r Expr) *BinaryExpr  { return Binary(l, ir.OpLtEq, r) }
func Gt(l, r Expr) *BinaryExpr    { return Binary(l, ir.OpGt, r) }
func GtEq(l, r Expr) *BinaryExpr  { return Binary(l, ir.OpGtEq, r) }
func Plus(l, r Expr) *BinaryExpr  { return Binary(l, ir.OpPlus, r) }
func Minus(l, r Expr) *BinaryExpr { return Binary(l, ir.OpMinus, r) }
func Mul(l, r Expr) *BinaryExpr   { return Binary(l, ir.OpMultiply, r) }
func And(l, r Expr) *BinaryExpr   { return Binary(l, ir.OpAnd, r) }
func Or(l, r Expr) *BinaryExpr    { return Binary(l, ir.OpOr, r) }

// As renames e.
func As(e Expr, name string) *Alias { return &Alias{Expr: e, Name: name} }

// Aggregate wraps an aggregation as an expression.
func Aggregate(a AggExpr) *Agg { return &Agg{Agg: a} }

// Cols references several columns.
func Cols(names ...string) []Expr {
	exprs := make([]Expr, len(names))
	for i, name := range names {
		exprs[i] = Col(name)
	}
	return exprs
}
