package plan

import (
	"github.com/roach88/lazyir/internal/arena"
	"github.com/roach88/lazyir/internal/expr"
)

// ToALP lowers lp into the two arenas and returns the Node of its root in
// pa. Embedded expressions go to ea before plan inputs go to pa, and the
// node itself is appended last. lp is consumed and must not be reused.
func ToALP(lp LogicalPlan, ea *expr.Arena, pa *Arena) arena.Node {
	if lp == nil {
		panic("plan: cannot lower a nil plan")
	}
	return pa.Add(lp.lower(ea, pa))
}

// NodeToLP takes the plan rooted at n out of pa and rebuilds it as a tree.
//
// Every plan slot it visits is replaced with its placeholder, so calling
// NodeToLP twice on the same Node returns the placeholder plan the second
// time. Expressions are read from ea without modification.
func NodeToLP(n arena.Node, ea *expr.Arena, pa *Arena) LogicalPlan {
	lp := pa.Get(n)
	pa.Replace(n, lp.placeholder())
	return lp.raise(ea, pa)
}

// raiseInput tolerates the InvalidNode held by placeholders.
func raiseInput(n arena.Node, ea *expr.Arena, pa *Arena) LogicalPlan {
	if !n.IsValid() {
		return nil
	}
	return NodeToLP(n, ea, pa)
}

func raiseExpr(n arena.Node, ea *expr.Arena) expr.Expr {
	if !n.IsValid() {
		return nil
	}
	return expr.NodeToExpr(n, ea)
}

func (lp *DataFrameScan) lower(ea *expr.Arena, _ *Arena) ALogicalPlan {
	projection := expr.ToAExprs(lp.Projection, ea)
	selection := expr.ToOptAExpr(lp.Selection, ea)
	return ADataFrameScan{
		DF:         lp.DF,
		Schema:     lp.FrameSchema,
		Projection: projection,
		Selection:  selection,
	}
}

func (lp *CsvScan) lower(ea *expr.Arena, _ *Arena) ALogicalPlan {
	predicate := expr.ToOptAExpr(lp.Predicate, ea)
	aggregate := expr.ToAExprs(lp.Aggregate, ea)
	return ACsvScan{
		Path:           lp.Path,
		Schema:         lp.FileSchema,
		HasHeader:      lp.HasHeader,
		Delimiter:      lp.Delimiter,
		IgnoreErrors:   lp.IgnoreErrors,
		SkipRows:       lp.SkipRows,
		StopAfterNRows: lp.StopAfterNRows,
		WithColumns:    lp.WithColumns,
		Predicate:      predicate,
		Aggregate:      aggregate,
		Cache:          lp.Cache,
	}
}

func (lp *ColumnarScan) lower(ea *expr.Arena, _ *Arena) ALogicalPlan {
	predicate := expr.ToOptAExpr(lp.Predicate, ea)
	aggregate := expr.ToAExprs(lp.Aggregate, ea)
	return AColumnarScan{
		Kind:           lp.Kind,
		Path:           lp.Path,
		Schema:         lp.FileSchema,
		WithColumns:    lp.WithColumns,
		Predicate:      predicate,
		Aggregate:      aggregate,
		StopAfterNRows: lp.StopAfterNRows,
		Cache:          lp.Cache,
	}
}

func (lp *Selection) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	predicate := expr.ToAExpr(lp.Predicate, ea)
	input := ToALP(lp.Input, ea, pa)
	return ASelection{Input: input, Predicate: predicate}
}

func (lp *Slice) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	return ASlice{Input: ToALP(lp.Input, ea, pa), Offset: lp.Offset, Len: lp.Len}
}

func (lp *Projection) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	exprs := expr.ToAExprs(lp.Exprs, ea)
	input := ToALP(lp.Input, ea, pa)
	return AProjection{Exprs: exprs, Input: input, Schema: lp.OutputSchema}
}

func (lp *LocalProjection) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	exprs := expr.ToAExprs(lp.Exprs, ea)
	input := ToALP(lp.Input, ea, pa)
	return ALocalProjection{Exprs: exprs, Input: input, Schema: lp.OutputSchema}
}

func (lp *Sort) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	return ASort{Input: ToALP(lp.Input, ea, pa), ByColumn: lp.ByColumn, Reverse: lp.Reverse}
}

func (lp *Explode) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	return AExplode{Input: ToALP(lp.Input, ea, pa), Columns: lp.Columns}
}

func (lp *Melt) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	return AMelt{
		Input:     ToALP(lp.Input, ea, pa),
		IDVars:    lp.IDVars,
		ValueVars: lp.ValueVars,
		Schema:    lp.OutputSchema,
	}
}

func (lp *Cache) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	return ACache{Input: ToALP(lp.Input, ea, pa)}
}

func (lp *Aggregate) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	keys := expr.ToAExprs(lp.Keys, ea)
	aggs := expr.ToAExprs(lp.Aggs, ea)
	input := ToALP(lp.Input, ea, pa)
	return AAggregate{Input: input, Keys: keys, Aggs: aggs, Schema: lp.OutputSchema, Apply: lp.Apply}
}

func (lp *Join) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	leftOn := expr.ToAExprs(lp.LeftOn, ea)
	rightOn := expr.ToAExprs(lp.RightOn, ea)
	left := ToALP(lp.InputLeft, ea, pa)
	right := ToALP(lp.InputRight, ea, pa)
	return AJoin{
		InputLeft:     left,
		InputRight:    right,
		Schema:        lp.OutputSchema,
		How:           lp.How,
		LeftOn:        leftOn,
		RightOn:       rightOn,
		AllowParallel: lp.AllowParallel,
		ForceParallel: lp.ForceParallel,
	}
}

func (lp *HStack) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	exprs := expr.ToAExprs(lp.Exprs, ea)
	input := ToALP(lp.Input, ea, pa)
	return AHStack{Input: input, Exprs: exprs, Schema: lp.OutputSchema}
}

func (lp *Distinct) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	return ADistinct{Input: ToALP(lp.Input, ea, pa), MaintainOrder: lp.MaintainOrder, Subset: lp.Subset}
}

func (lp *UDF) lower(ea *expr.Arena, pa *Arena) ALogicalPlan {
	return AUDF{
		Input:              ToALP(lp.Input, ea, pa),
		Function:           lp.Function,
		ProjectionPushdown: lp.ProjectionPushdown,
		PredicatePushdown:  lp.PredicatePushdown,
		Schema:             lp.OutputSchema,
	}
}

func (lp ADataFrameScan) raise(ea *expr.Arena, _ *Arena) LogicalPlan {
	return &DataFrameScan{
		DF:          lp.DF,
		FrameSchema: lp.Schema,
		Projection:  expr.NodesToExprs(lp.Projection, ea),
		Selection:   expr.OptNodeToExpr(lp.Selection, ea),
	}
}

func (lp ACsvScan) raise(ea *expr.Arena, _ *Arena) LogicalPlan {
	return &CsvScan{
		Path:           lp.Path,
		FileSchema:     lp.Schema,
		HasHeader:      lp.HasHeader,
		Delimiter:      lp.Delimiter,
		IgnoreErrors:   lp.IgnoreErrors,
		SkipRows:       lp.SkipRows,
		StopAfterNRows: lp.StopAfterNRows,
		WithColumns:    lp.WithColumns,
		Predicate:      expr.OptNodeToExpr(lp.Predicate, ea),
		Aggregate:      expr.NodesToExprs(lp.Aggregate, ea),
		Cache:          lp.Cache,
	}
}

func (lp AColumnarScan) raise(ea *expr.Arena, _ *Arena) LogicalPlan {
	return &ColumnarScan{
		Kind:           lp.Kind,
		Path:           lp.Path,
		FileSchema:     lp.Schema,
		WithColumns:    lp.WithColumns,
		Predicate:      expr.OptNodeToExpr(lp.Predicate, ea),
		Aggregate:      expr.NodesToExprs(lp.Aggregate, ea),
		StopAfterNRows: lp.StopAfterNRows,
		Cache:          lp.Cache,
	}
}

func (lp ASelection) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &Selection{
		Input:     raiseInput(lp.Input, ea, pa),
		Predicate: raiseExpr(lp.Predicate, ea),
	}
}

func (lp ASlice) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &Slice{Input: raiseInput(lp.Input, ea, pa), Offset: lp.Offset, Len: lp.Len}
}

func (lp AProjection) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &Projection{
		Exprs:        expr.NodesToExprs(lp.Exprs, ea),
		Input:        raiseInput(lp.Input, ea, pa),
		OutputSchema: lp.Schema,
	}
}

func (lp ALocalProjection) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &LocalProjection{
		Exprs:        expr.NodesToExprs(lp.Exprs, ea),
		Input:        raiseInput(lp.Input, ea, pa),
		OutputSchema: lp.Schema,
	}
}

func (lp ASort) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &Sort{Input: raiseInput(lp.Input, ea, pa), ByColumn: lp.ByColumn, Reverse: lp.Reverse}
}

func (lp AExplode) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &Explode{Input: raiseInput(lp.Input, ea, pa), Columns: lp.Columns}
}

func (lp AMelt) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &Melt{
		Input:        raiseInput(lp.Input, ea, pa),
		IDVars:       lp.IDVars,
		ValueVars:    lp.ValueVars,
		OutputSchema: lp.Schema,
	}
}

func (lp ACache) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &Cache{Input: raiseInput(lp.Input, ea, pa)}
}

func (lp AAggregate) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &Aggregate{
		Input:        raiseInput(lp.Input, ea, pa),
		Keys:         expr.NodesToExprs(lp.Keys, ea),
		Aggs:         expr.NodesToExprs(lp.Aggs, ea),
		OutputSchema: lp.Schema,
		Apply:        lp.Apply,
	}
}

func (lp AJoin) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &Join{
		InputLeft:     raiseInput(lp.InputLeft, ea, pa),
		InputRight:    raiseInput(lp.InputRight, ea, pa),
		OutputSchema:  lp.Schema,
		How:           lp.How,
		LeftOn:        expr.NodesToExprs(lp.LeftOn, ea),
		RightOn:       expr.NodesToExprs(lp.RightOn, ea),
		AllowParallel: lp.AllowParallel,
		ForceParallel: lp.ForceParallel,
	}
}

func (lp AHStack) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &HStack{
		Input:        raiseInput(lp.Input, ea, pa),
		Exprs:        expr.NodesToExprs(lp.Exprs, ea),
		OutputSchema: lp.Schema,
	}
}

func (lp ADistinct) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &Distinct{Input: raiseInput(lp.Input, ea, pa), MaintainOrder: lp.MaintainOrder, Subset: lp.Subset}
}

func (lp AUDF) raise(ea *expr.Arena, pa *Arena) LogicalPlan {
	return &UDF{
		Input:              raiseInput(lp.Input, ea, pa),
		Function:           lp.Function,
		ProjectionPushdown: lp.ProjectionPushdown,
		PredicatePushdown:  lp.PredicatePushdown,
		OutputSchema:       lp.Schema,
	}
}
