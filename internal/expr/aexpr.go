package expr

import (
	"github.com/roach88/lazyir/internal/arena"
	"github.com/roach88/lazyir/internal/ir"
)

// Arena is the expression arena.
type Arena = arena.Arena[AExpr]

// NewArena returns an empty expression arena.
func NewArena() *Arena {
	return arena.New[AExpr]()
}

// AExpr is an expression in arena form. Children are Nodes into the same
// Arena. Variants are plain values, so reading a slot copies it.
type AExpr interface {
	raise(a *Arena) Expr
	// Inputs returns the child Nodes in the order they were lowered.
	Inputs() []arena.Node
}

type AIsUnique struct{ Expr arena.Node }

type ADuplicated struct{ Expr arena.Node }

type AReverse struct{ Expr arena.Node }

type AExplode struct{ Expr arena.Node }

type AAlias struct {
	Expr arena.Node
	Name string
}

type AColumn struct{ Name string }

type ALiteral struct{ Value ir.Value }

type ABinaryExpr struct {
	Left  arena.Node
	Op    ir.Operator
	Right arena.Node
}

type ANot struct{ Expr arena.Node }

type AIsNotNull struct{ Expr arena.Node }

type AIsNull struct{ Expr arena.Node }

type ACast struct {
	Expr  arena.Node
	DType ir.DataType
}

type ASort struct {
	Expr    arena.Node
	Reverse bool
}

type ASortBy struct {
	Expr    arena.Node
	By      arena.Node
	Reverse bool
}

type AFilter struct {
	Input arena.Node
	By    arena.Node
}

// AAgg holds an aggregation. The aggregation itself does not take a slot
// of its own; it lives inside the AAgg slot.
type AAgg struct{ Agg AAggExpr }

type ATernary struct {
	Predicate arena.Node
	Truthy    arena.Node
	Falsy     arena.Node
}

type AUDF struct {
	Input      arena.Node
	Function   *ir.SeriesUDF
	OutputType *ir.DataType
}

type ABinaryFunction struct {
	InputA      arena.Node
	InputB      arena.Node
	Function    *ir.BinaryUDF
	OutputField ir.Field
}

type AShift struct {
	Input   arena.Node
	Periods int64
}

type AWindow struct {
	Function    arena.Node
	PartitionBy arena.Node
	OrderBy     arena.OptNode
}

type ASlice struct {
	Input  arena.Node
	Offset int64
	Length int
}

type AWildcard struct{}

type AExcept struct{ Input arena.Node }

func (e AIsUnique) Inputs() []arena.Node   { return []arena.Node{e.Expr} }
func (e ADuplicated) Inputs() []arena.Node { return []arena.Node{e.Expr} }
func (e AReverse) Inputs() []arena.Node    { return []arena.Node{e.Expr} }
func (e AExplode) Inputs() []arena.Node    { return []arena.Node{e.Expr} }
func (e AAlias) Inputs() []arena.Node      { return []arena.Node{e.Expr} }
func (AColumn) Inputs() []arena.Node       { return nil }
func (ALiteral) Inputs() []arena.Node      { return nil }
func (e ABinaryExpr) Inputs() []arena.Node { return []arena.Node{e.Left, e.Right} }
func (e ANot) Inputs() []arena.Node        { return []arena.Node{e.Expr} }
func (e AIsNotNull) Inputs() []arena.Node  { return []arena.Node{e.Expr} }
func (e AIsNull) Inputs() []arena.Node     { return []arena.Node{e.Expr} }
func (e ACast) Inputs() []arena.Node       { return []arena.Node{e.Expr} }
func (e ASort) Inputs() []arena.Node       { return []arena.Node{e.Expr} }
func (e ASortBy) Inputs() []arena.Node     { return []arena.Node{e.Expr, e.By} }
func (e AFilter) Inputs() []arena.Node     { return []arena.Node{e.Input, e.By} }
func (e AAgg) Inputs() []arena.Node        { return e.Agg.Inputs() }
func (e ATernary) Inputs() []arena.Node {
	return []arena.Node{e.Predicate, e.Truthy, e.Falsy}
}
func (e AUDF) Inputs() []arena.Node { return []arena.Node{e.Input} }
func (e ABinaryFunction) Inputs() []arena.Node {
	return []arena.Node{e.InputA, e.InputB}
}
func (e AShift) Inputs() []arena.Node { return []arena.Node{e.Input} }
func (e AWindow) Inputs() []arena.Node {
	if n, ok := e.OrderBy.Get(); ok {
		return []arena.Node{e.Function, e.PartitionBy, n}
	}
	return []arena.Node{e.Function, e.PartitionBy}
}
func (e ASlice) Inputs() []arena.Node  { return []arena.Node{e.Input} }
func (AWildcard) Inputs() []arena.Node { return nil }
func (e AExcept) Inputs() []arena.Node { return []arena.Node{e.Input} }

// AAggExpr is an aggregation in arena form.
type AAggExpr interface {
	raiseAgg(a *Arena) AggExpr
	Inputs() []arena.Node
}

type AMin struct{ Expr arena.Node }

type AMax struct{ Expr arena.Node }

type AMedian struct{ Expr arena.Node }

type ANUnique struct{ Expr arena.Node }

type AFirst struct{ Expr arena.Node }

type ALast struct{ Expr arena.Node }

type AMean struct{ Expr arena.Node }

type AList struct{ Expr arena.Node }

type ACount struct{ Expr arena.Node }

type AQuantile struct {
	Expr     arena.Node
	Quantile float64
}

type ASum struct{ Expr arena.Node }

type AStd struct{ Expr arena.Node }

type AVar struct{ Expr arena.Node }

type AAggGroups struct{ Expr arena.Node }

func (e AMin) Inputs() []arena.Node       { return []arena.Node{e.Expr} }
func (e AMax) Inputs() []arena.Node       { return []arena.Node{e.Expr} }
func (e AMedian) Inputs() []arena.Node    { return []arena.Node{e.Expr} }
func (e ANUnique) Inputs() []arena.Node   { return []arena.Node{e.Expr} }
func (e AFirst) Inputs() []arena.Node     { return []arena.Node{e.Expr} }
func (e ALast) Inputs() []arena.Node      { return []arena.Node{e.Expr} }
func (e AMean) Inputs() []arena.Node      { return []arena.Node{e.Expr} }
func (e AList) Inputs() []arena.Node      { return []arena.Node{e.Expr} }
func (e ACount) Inputs() []arena.Node     { return []arena.Node{e.Expr} }
func (e AQuantile) Inputs() []arena.Node  { return []arena.Node{e.Expr} }
func (e ASum) Inputs() []arena.Node       { return []arena.Node{e.Expr} }
func (e AStd) Inputs() []arena.Node       { return []arena.Node{e.Expr} }
func (e AVar) Inputs() []arena.Node       { return []arena.Node{e.Expr} }
func (e AAggGroups) Inputs() []arena.Node { return []arena.Node{e.Expr} }
