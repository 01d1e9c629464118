package expr

import (
	"fmt"

	"github.com/roach88/lazyir/internal/arena"
)

// ToAExpr lowers e into a and returns the Node of its root.
//
// Children are lowered first, left to right, and the parent is appended
// last. Every node of e gets its own slot; identical subtrees are not
// shared. Lowering cannot fail. e is consumed and must not be reused.
func ToAExpr(e Expr, a *Arena) arena.Node {
	if e == nil {
		panic("expr: cannot lower a nil expression")
	}
	return a.Add(e.lower(a))
}

// NodeToExpr rebuilds the tree rooted at n. It only reads a, so repeated
// calls on the same Node return structurally equal trees.
func NodeToExpr(n arena.Node, a *Arena) Expr {
	return a.Get(n).raise(a)
}

// ToAExprs lowers each expression in order. A nil slice stays nil.
func ToAExprs(exprs []Expr, a *Arena) []arena.Node {
	if exprs == nil {
		return nil
	}
	nodes := make([]arena.Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = ToAExpr(e, a)
	}
	return nodes
}

// NodesToExprs raises each node in order. A nil slice stays nil.
func NodesToExprs(nodes []arena.Node, a *Arena) []Expr {
	if nodes == nil {
		return nil
	}
	exprs := make([]Expr, len(nodes))
	for i, n := range nodes {
		exprs[i] = NodeToExpr(n, a)
	}
	return exprs
}

// ToOptAExpr lowers e when it is not nil.
func ToOptAExpr(e Expr, a *Arena) arena.OptNode {
	if e == nil {
		return arena.None
	}
	return arena.Some(ToAExpr(e, a))
}

// OptNodeToExpr raises o when it is present and returns nil otherwise.
func OptNodeToExpr(o arena.OptNode, a *Arena) Expr {
	n, ok := o.Get()
	if !ok {
		return nil
	}
	return NodeToExpr(n, a)
}

// MustAgg returns the aggregation held at n. It panics if the slot does not
// hold an AAgg.
func MustAgg(n arena.Node, a *Arena) AAggExpr {
	agg, ok := a.Get(n).(AAgg)
	if !ok {
		panic(fmt.Sprintf("expr: %s holds %T, not an aggregation", n, a.Get(n)))
	}
	return agg.Agg
}

func (e *IsUnique) lower(a *Arena) AExpr   { return AIsUnique{Expr: ToAExpr(e.Expr, a)} }
func (e *Duplicated) lower(a *Arena) AExpr { return ADuplicated{Expr: ToAExpr(e.Expr, a)} }
func (e *Reverse) lower(a *Arena) AExpr    { return AReverse{Expr: ToAExpr(e.Expr, a)} }
func (e *Explode) lower(a *Arena) AExpr    { return AExplode{Expr: ToAExpr(e.Expr, a)} }

func (e *Alias) lower(a *Arena) AExpr {
	return AAlias{Expr: ToAExpr(e.Expr, a), Name: e.Name}
}

func (e *Column) lower(*Arena) AExpr  { return AColumn{Name: e.Name} }
func (e *Literal) lower(*Arena) AExpr { return ALiteral{Value: e.Value} }

func (e *BinaryExpr) lower(a *Arena) AExpr {
	l := ToAExpr(e.Left, a)
	r := ToAExpr(e.Right, a)
	return ABinaryExpr{Left: l, Op: e.Op, Right: r}
}

func (e *Not) lower(a *Arena) AExpr       { return ANot{Expr: ToAExpr(e.Expr, a)} }
func (e *IsNotNull) lower(a *Arena) AExpr { return AIsNotNull{Expr: ToAExpr(e.Expr, a)} }
func (e *IsNull) lower(a *Arena) AExpr    { return AIsNull{Expr: ToAExpr(e.Expr, a)} }

func (e *Cast) lower(a *Arena) AExpr {
	return ACast{Expr: ToAExpr(e.Expr, a), DType: e.DType}
}

func (e *Sort) lower(a *Arena) AExpr {
	return ASort{Expr: ToAExpr(e.Expr, a), Reverse: e.Reverse}
}

func (e *SortBy) lower(a *Arena) AExpr {
	x := ToAExpr(e.Expr, a)
	by := ToAExpr(e.By, a)
	return ASortBy{Expr: x, By: by, Reverse: e.Reverse}
}

func (e *Filter) lower(a *Arena) AExpr {
	input := ToAExpr(e.Input, a)
	by := ToAExpr(e.By, a)
	return AFilter{Input: input, By: by}
}

func (e *Agg) lower(a *Arena) AExpr {
	if e.Agg == nil {
		panic("expr: cannot lower an Agg without an aggregation")
	}
	return AAgg{Agg: e.Agg.lowerAgg(a)}
}

func (e *Ternary) lower(a *Arena) AExpr {
	p := ToAExpr(e.Predicate, a)
	t := ToAExpr(e.Truthy, a)
	f := ToAExpr(e.Falsy, a)
	return ATernary{Predicate: p, Truthy: t, Falsy: f}
}

func (e *UDF) lower(a *Arena) AExpr {
	return AUDF{Input: ToAExpr(e.Input, a), Function: e.Function, OutputType: e.OutputType}
}

func (e *BinaryFunction) lower(a *Arena) AExpr {
	x := ToAExpr(e.InputA, a)
	y := ToAExpr(e.InputB, a)
	return ABinaryFunction{InputA: x, InputB: y, Function: e.Function, OutputField: e.OutputField}
}

func (e *Shift) lower(a *Arena) AExpr {
	return AShift{Input: ToAExpr(e.Input, a), Periods: e.Periods}
}

func (e *Window) lower(a *Arena) AExpr {
	fn := ToAExpr(e.Function, a)
	partition := ToAExpr(e.PartitionBy, a)
	return AWindow{Function: fn, PartitionBy: partition, OrderBy: ToOptAExpr(e.OrderBy, a)}
}

func (e *Slice) lower(a *Arena) AExpr {
	return ASlice{Input: ToAExpr(e.Input, a), Offset: e.Offset, Length: e.Length}
}

func (*Wildcard) lower(*Arena) AExpr   { return AWildcard{} }
func (e *Except) lower(a *Arena) AExpr { return AExcept{Input: ToAExpr(e.Input, a)} }

func (e *Min) lowerAgg(a *Arena) AAggExpr       { return AMin{Expr: ToAExpr(e.Expr, a)} }
func (e *Max) lowerAgg(a *Arena) AAggExpr       { return AMax{Expr: ToAExpr(e.Expr, a)} }
func (e *Median) lowerAgg(a *Arena) AAggExpr    { return AMedian{Expr: ToAExpr(e.Expr, a)} }
func (e *NUnique) lowerAgg(a *Arena) AAggExpr   { return ANUnique{Expr: ToAExpr(e.Expr, a)} }
func (e *First) lowerAgg(a *Arena) AAggExpr     { return AFirst{Expr: ToAExpr(e.Expr, a)} }
func (e *Last) lowerAgg(a *Arena) AAggExpr      { return ALast{Expr: ToAExpr(e.Expr, a)} }
func (e *Mean) lowerAgg(a *Arena) AAggExpr      { return AMean{Expr: ToAExpr(e.Expr, a)} }
func (e *List) lowerAgg(a *Arena) AAggExpr      { return AList{Expr: ToAExpr(e.Expr, a)} }
func (e *Count) lowerAgg(a *Arena) AAggExpr     { return ACount{Expr: ToAExpr(e.Expr, a)} }
func (e *Sum) lowerAgg(a *Arena) AAggExpr       { return ASum{Expr: ToAExpr(e.Expr, a)} }
func (e *Std) lowerAgg(a *Arena) AAggExpr       { return AStd{Expr: ToAExpr(e.Expr, a)} }
func (e *Var) lowerAgg(a *Arena) AAggExpr       { return AVar{Expr: ToAExpr(e.Expr, a)} }
func (e *AggGroups) lowerAgg(a *Arena) AAggExpr { return AAggGroups{Expr: ToAExpr(e.Expr, a)} }

func (e *Quantile) lowerAgg(a *Arena) AAggExpr {
	return AQuantile{Expr: ToAExpr(e.Expr, a), Quantile: e.Quantile}
}

func (e AIsUnique) raise(a *Arena) Expr   { return &IsUnique{Expr: NodeToExpr(e.Expr, a)} }
func (e ADuplicated) raise(a *Arena) Expr { return &Duplicated{Expr: NodeToExpr(e.Expr, a)} }
func (e AReverse) raise(a *Arena) Expr    { return &Reverse{Expr: NodeToExpr(e.Expr, a)} }
func (e AExplode) raise(a *Arena) Expr    { return &Explode{Expr: NodeToExpr(e.Expr, a)} }

func (e AAlias) raise(a *Arena) Expr {
	return &Alias{Expr: NodeToExpr(e.Expr, a), Name: e.Name}
}

func (e AColumn) raise(*Arena) Expr  { return &Column{Name: e.Name} }
func (e ALiteral) raise(*Arena) Expr { return &Literal{Value: e.Value} }

func (e ABinaryExpr) raise(a *Arena) Expr {
	l := NodeToExpr(e.Left, a)
	r := NodeToExpr(e.Right, a)
	return &BinaryExpr{Left: l, Op: e.Op, Right: r}
}

func (e ANot) raise(a *Arena) Expr       { return &Not{Expr: NodeToExpr(e.Expr, a)} }
func (e AIsNotNull) raise(a *Arena) Expr { return &IsNotNull{Expr: NodeToExpr(e.Expr, a)} }
func (e AIsNull) raise(a *Arena) Expr    { return &IsNull{Expr: NodeToExpr(e.Expr, a)} }

func (e ACast) raise(a *Arena) Expr {
	return &Cast{Expr: NodeToExpr(e.Expr, a), DType: e.DType}
}

func (e ASort) raise(a *Arena) Expr {
	return &Sort{Expr: NodeToExpr(e.Expr, a), Reverse: e.Reverse}
}

func (e ASortBy) raise(a *Arena) Expr {
	return &SortBy{Expr: NodeToExpr(e.Expr, a), By: NodeToExpr(e.By, a), Reverse: e.Reverse}
}

func (e AFilter) raise(a *Arena) Expr {
	return &Filter{Input: NodeToExpr(e.Input, a), By: NodeToExpr(e.By, a)}
}

func (e AAgg) raise(a *Arena) Expr { return &Agg{Agg: e.Agg.raiseAgg(a)} }

func (e ATernary) raise(a *Arena) Expr {
	return &Ternary{
		Predicate: NodeToExpr(e.Predicate, a),
		Truthy:    NodeToExpr(e.Truthy, a),
		Falsy:     NodeToExpr(e.Falsy, a),
	}
}

func (e AUDF) raise(a *Arena) Expr {
	return &UDF{Input: NodeToExpr(e.Input, a), Function: e.Function, OutputType: e.OutputType}
}

func (e ABinaryFunction) raise(a *Arena) Expr {
	return &BinaryFunction{
		InputA:      NodeToExpr(e.InputA, a),
		InputB:      NodeToExpr(e.InputB, a),
		Function:    e.Function,
		OutputField: e.OutputField,
	}
}

func (e AShift) raise(a *Arena) Expr {
	return &Shift{Input: NodeToExpr(e.Input, a), Periods: e.Periods}
}

func (e AWindow) raise(a *Arena) Expr {
	return &Window{
		Function:    NodeToExpr(e.Function, a),
		PartitionBy: NodeToExpr(e.PartitionBy, a),
		OrderBy:     OptNodeToExpr(e.OrderBy, a),
	}
}

func (e ASlice) raise(a *Arena) Expr {
	return &Slice{Input: NodeToExpr(e.Input, a), Offset: e.Offset, Length: e.Length}
}

func (AWildcard) raise(*Arena) Expr   { return &Wildcard{} }
func (e AExcept) raise(a *Arena) Expr { return &Except{Input: NodeToExpr(e.Input, a)} }

func (e AMin) raiseAgg(a *Arena) AggExpr       { return &Min{Expr: NodeToExpr(e.Expr, a)} }
func (e AMax) raiseAgg(a *Arena) AggExpr       { return &Max{Expr: NodeToExpr(e.Expr, a)} }
func (e AMedian) raiseAgg(a *Arena) AggExpr    { return &Median{Expr: NodeToExpr(e.Expr, a)} }
func (e ANUnique) raiseAgg(a *Arena) AggExpr   { return &NUnique{Expr: NodeToExpr(e.Expr, a)} }
func (e AFirst) raiseAgg(a *Arena) AggExpr     { return &First{Expr: NodeToExpr(e.Expr, a)} }
func (e ALast) raiseAgg(a *Arena) AggExpr      { return &Last{Expr: NodeToExpr(e.Expr, a)} }
func (e AMean) raiseAgg(a *Arena) AggExpr      { return &Mean{Expr: NodeToExpr(e.Expr, a)} }
func (e AList) raiseAgg(a *Arena) AggExpr      { return &List{Expr: NodeToExpr(e.Expr, a)} }
func (e ACount) raiseAgg(a *Arena) AggExpr     { return &Count{Expr: NodeToExpr(e.Expr, a)} }
func (e ASum) raiseAgg(a *Arena) AggExpr       { return &Sum{Expr: NodeToExpr(e.Expr, a)} }
func (e AStd) raiseAgg(a *Arena) AggExpr       { return &Std{Expr: NodeToExpr(e.Expr, a)} }
func (e AVar) raiseAgg(a *Arena) AggExpr       { return &Var{Expr: NodeToExpr(e.Expr, a)} }
func (e AAggGroups) raiseAgg(a *Arena) AggExpr { return &AggGroups{Expr: NodeToExpr(e.Expr, a)} }

func (e AQuantile) raiseAgg(a *Arena) AggExpr {
	return &Quantile{Expr: NodeToExpr(e.Expr, a), Quantile: e.Quantile}
}
