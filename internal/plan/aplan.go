package plan

import (
	"github.com/roach88/lazyir/internal/arena"
	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/ir"
)

// Arena is the plan arena.
type Arena = arena.Arena[ALogicalPlan]

// NewArena returns an empty plan arena.
func NewArena() *Arena {
	return arena.New[ALogicalPlan]()
}

// ALogicalPlan is a plan in arena form. Plan inputs are Nodes into the plan
// Arena; embedded expressions are Nodes into an expr.Arena.
type ALogicalPlan interface {
	raise(ea *expr.Arena, pa *Arena) LogicalPlan
	// placeholder returns the inert value of the same variant left behind
	// in a slot after NodeToLP takes it.
	placeholder() ALogicalPlan
	// Inputs returns the plan inputs in lowering order.
	Inputs() []arena.Node
	// ExprRefs returns the embedded expression roots in lowering order.
	ExprRefs() []arena.Node
}

type ADataFrameScan struct {
	DF         ir.DataFrame
	Schema     *ir.Schema
	Projection []arena.Node
	Selection  arena.OptNode
}

type ACsvScan struct {
	Path           string
	Schema         *ir.Schema
	HasHeader      bool
	Delimiter      byte
	IgnoreErrors   bool
	SkipRows       int
	StopAfterNRows *int
	WithColumns    []string
	Predicate      arena.OptNode
	Aggregate      []arena.Node
	Cache          bool
}

type AColumnarScan struct {
	Kind           string
	Path           string
	Schema         *ir.Schema
	WithColumns    []string
	Predicate      arena.OptNode
	Aggregate      []arena.Node
	StopAfterNRows *int
	Cache          bool
}

type ASelection struct {
	Input     arena.Node
	Predicate arena.Node
}

type ASlice struct {
	Input  arena.Node
	Offset int64
	Len    int
}

type AProjection struct {
	Exprs  []arena.Node
	Input  arena.Node
	Schema *ir.Schema
}

type ALocalProjection struct {
	Exprs  []arena.Node
	Input  arena.Node
	Schema *ir.Schema
}

type ASort struct {
	Input    arena.Node
	ByColumn string
	Reverse  bool
}

type AExplode struct {
	Input   arena.Node
	Columns []string
}

type AMelt struct {
	Input     arena.Node
	IDVars    []string
	ValueVars []string
	Schema    *ir.Schema
}

type ACache struct {
	Input arena.Node
}

type AAggregate struct {
	Input  arena.Node
	Keys   []arena.Node
	Aggs   []arena.Node
	Schema *ir.Schema
	Apply  *ir.AggApply
}

type AJoin struct {
	InputLeft     arena.Node
	InputRight    arena.Node
	Schema        *ir.Schema
	How           ir.JoinType
	LeftOn        []arena.Node
	RightOn       []arena.Node
	AllowParallel bool
	ForceParallel bool
}

type AHStack struct {
	Input  arena.Node
	Exprs  []arena.Node
	Schema *ir.Schema
}

type ADistinct struct {
	Input         arena.Node
	MaintainOrder bool
	Subset        []string
}

type AUDF struct {
	Input              arena.Node
	Function           *ir.PlanUDF
	ProjectionPushdown bool
	PredicatePushdown  bool
	Schema             *ir.Schema
}

// Placeholders keep the variant but drop every payload and reference.

func (ADataFrameScan) placeholder() ALogicalPlan   { return ADataFrameScan{} }
func (ACsvScan) placeholder() ALogicalPlan         { return ACsvScan{} }
func (AColumnarScan) placeholder() ALogicalPlan    { return AColumnarScan{} }
func (ACache) placeholder() ALogicalPlan           { return ACache{Input: arena.InvalidNode} }
func (ASort) placeholder() ALogicalPlan            { return ASort{Input: arena.InvalidNode} }
func (AExplode) placeholder() ALogicalPlan         { return AExplode{Input: arena.InvalidNode} }
func (AMelt) placeholder() ALogicalPlan            { return AMelt{Input: arena.InvalidNode} }
func (ASlice) placeholder() ALogicalPlan           { return ASlice{Input: arena.InvalidNode} }
func (ADistinct) placeholder() ALogicalPlan        { return ADistinct{Input: arena.InvalidNode} }
func (AUDF) placeholder() ALogicalPlan             { return AUDF{Input: arena.InvalidNode} }
func (AProjection) placeholder() ALogicalPlan      { return AProjection{Input: arena.InvalidNode} }
func (ALocalProjection) placeholder() ALogicalPlan { return ALocalProjection{Input: arena.InvalidNode} }
func (AHStack) placeholder() ALogicalPlan          { return AHStack{Input: arena.InvalidNode} }
func (AAggregate) placeholder() ALogicalPlan       { return AAggregate{Input: arena.InvalidNode} }

func (ASelection) placeholder() ALogicalPlan {
	return ASelection{Input: arena.InvalidNode, Predicate: arena.InvalidNode}
}

func (AJoin) placeholder() ALogicalPlan {
	return AJoin{InputLeft: arena.InvalidNode, InputRight: arena.InvalidNode}
}

// IsPlaceholder reports whether lp is the value NodeToLP leaves behind.
func IsPlaceholder(lp ALogicalPlan) bool {
	if lp == nil {
		return false
	}
	switch lp := lp.(type) {
	case ADataFrameScan:
		return lp.DF == nil && lp.Schema == nil && lp.Projection == nil && !lp.Selection.Valid
	case ACsvScan:
		return lp.Path == "" && lp.Schema == nil
	case AColumnarScan:
		return lp.Kind == "" && lp.Schema == nil
	case AJoin:
		return !lp.InputLeft.IsValid() && !lp.InputRight.IsValid()
	default:
		ins := lp.Inputs()
		return len(ins) == 0
	}
}

func (lp ADataFrameScan) Inputs() []arena.Node   { return nil }
func (lp ACsvScan) Inputs() []arena.Node         { return nil }
func (lp AColumnarScan) Inputs() []arena.Node    { return nil }
func (lp ASelection) Inputs() []arena.Node       { return valid(lp.Input) }
func (lp ASlice) Inputs() []arena.Node           { return valid(lp.Input) }
func (lp AProjection) Inputs() []arena.Node      { return valid(lp.Input) }
func (lp ALocalProjection) Inputs() []arena.Node { return valid(lp.Input) }
func (lp ASort) Inputs() []arena.Node            { return valid(lp.Input) }
func (lp AExplode) Inputs() []arena.Node         { return valid(lp.Input) }
func (lp AMelt) Inputs() []arena.Node            { return valid(lp.Input) }
func (lp ACache) Inputs() []arena.Node           { return valid(lp.Input) }
func (lp AAggregate) Inputs() []arena.Node       { return valid(lp.Input) }
func (lp AJoin) Inputs() []arena.Node            { return valid(lp.InputLeft, lp.InputRight) }
func (lp AHStack) Inputs() []arena.Node          { return valid(lp.Input) }
func (lp ADistinct) Inputs() []arena.Node        { return valid(lp.Input) }
func (lp AUDF) Inputs() []arena.Node             { return valid(lp.Input) }

func (lp ADataFrameScan) ExprRefs() []arena.Node {
	return append(clone(lp.Projection), opt(lp.Selection)...)
}

func (lp ACsvScan) ExprRefs() []arena.Node {
	return append(opt(lp.Predicate), lp.Aggregate...)
}

func (lp AColumnarScan) ExprRefs() []arena.Node {
	return append(opt(lp.Predicate), lp.Aggregate...)
}

func (lp ASelection) ExprRefs() []arena.Node       { return valid(lp.Predicate) }
func (lp ASlice) ExprRefs() []arena.Node           { return nil }
func (lp AProjection) ExprRefs() []arena.Node      { return clone(lp.Exprs) }
func (lp ALocalProjection) ExprRefs() []arena.Node { return clone(lp.Exprs) }
func (lp ASort) ExprRefs() []arena.Node            { return nil }
func (lp AExplode) ExprRefs() []arena.Node         { return nil }
func (lp AMelt) ExprRefs() []arena.Node            { return nil }
func (lp ACache) ExprRefs() []arena.Node           { return nil }
func (lp AHStack) ExprRefs() []arena.Node          { return clone(lp.Exprs) }
func (lp ADistinct) ExprRefs() []arena.Node        { return nil }
func (lp AUDF) ExprRefs() []arena.Node             { return nil }

func (lp AAggregate) ExprRefs() []arena.Node {
	return append(clone(lp.Keys), lp.Aggs...)
}

func (lp AJoin) ExprRefs() []arena.Node {
	return append(clone(lp.LeftOn), lp.RightOn...)
}

func valid(nodes ...arena.Node) []arena.Node {
	out := make([]arena.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsValid() {
			out = append(out, n)
		}
	}
	return out
}

func opt(o arena.OptNode) []arena.Node {
	if n, ok := o.Get(); ok {
		return []arena.Node{n}
	}
	return nil
}

func clone(nodes []arena.Node) []arena.Node {
	return append([]arena.Node(nil), nodes...)
}
