package plan

import (
	"fmt"

	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/ir"
)

// Describe renders lp as a canonical document, in the same shape as
// expr.Describe. Data frames are described by schema and height and user
// functions by name. A taken input describes as {"taken": true}.
func Describe(lp LogicalPlan) any {
	switch lp := lp.(type) {
	case nil:
		return map[string]any{"taken": true}
	case *DataFrameScan:
		return variant("df_scan",
			"df", ir.DescribeFrame(lp.DF),
			"schema", schema(lp.FrameSchema),
			"projection", expr.DescribeList(lp.Projection),
			"selection", optExprDoc(lp.Selection))
	case *CsvScan:
		return variant("csv_scan",
			"path", lp.Path,
			"schema", schema(lp.FileSchema),
			"has_header", lp.HasHeader,
			"delimiter", string(rune(lp.Delimiter)),
			"ignore_errors", lp.IgnoreErrors,
			"skip_rows", lp.SkipRows,
			"stop_after_n_rows", optInt(lp.StopAfterNRows),
			"with_columns", ir.DescribeStrings(lp.WithColumns),
			"predicate", optExprDoc(lp.Predicate),
			"aggregate", expr.DescribeList(lp.Aggregate),
			"cache", lp.Cache)
	case *ColumnarScan:
		return variant("columnar_scan",
			"kind", lp.Kind,
			"path", lp.Path,
			"schema", schema(lp.FileSchema),
			"with_columns", ir.DescribeStrings(lp.WithColumns),
			"predicate", optExprDoc(lp.Predicate),
			"aggregate", expr.DescribeList(lp.Aggregate),
			"stop_after_n_rows", optInt(lp.StopAfterNRows),
			"cache", lp.Cache)
	case *Selection:
		return variant("selection",
			"input", Describe(lp.Input),
			"predicate", optExprDoc(lp.Predicate))
	case *Slice:
		return variant("slice", "input", Describe(lp.Input), "offset", lp.Offset, "len", lp.Len)
	case *Projection:
		return variant("projection",
			"exprs", expr.DescribeList(lp.Exprs),
			"input", Describe(lp.Input),
			"schema", schema(lp.OutputSchema))
	case *LocalProjection:
		return variant("local_projection",
			"exprs", expr.DescribeList(lp.Exprs),
			"input", Describe(lp.Input),
			"schema", schema(lp.OutputSchema))
	case *Sort:
		return variant("sort",
			"input", Describe(lp.Input),
			"by_column", lp.ByColumn,
			"reverse", lp.Reverse)
	case *Explode:
		return variant("explode",
			"input", Describe(lp.Input),
			"columns", ir.DescribeStrings(lp.Columns))
	case *Melt:
		return variant("melt",
			"input", Describe(lp.Input),
			"id_vars", ir.DescribeStrings(lp.IDVars),
			"value_vars", ir.DescribeStrings(lp.ValueVars),
			"schema", schema(lp.OutputSchema))
	case *Cache:
		return variant("cache", "input", Describe(lp.Input))
	case *Aggregate:
		var apply any
		if lp.Apply != nil {
			apply = ir.FuncName(lp.Apply)
		}
		return variant("aggregate",
			"input", Describe(lp.Input),
			"keys", expr.DescribeList(lp.Keys),
			"aggs", expr.DescribeList(lp.Aggs),
			"schema", schema(lp.OutputSchema),
			"apply", apply)
	case *Join:
		return variant("join",
			"input_left", Describe(lp.InputLeft),
			"input_right", Describe(lp.InputRight),
			"schema", schema(lp.OutputSchema),
			"how", lp.How.String(),
			"left_on", expr.DescribeList(lp.LeftOn),
			"right_on", expr.DescribeList(lp.RightOn),
			"allow_parallel", lp.AllowParallel,
			"force_parallel", lp.ForceParallel)
	case *HStack:
		return variant("hstack",
			"input", Describe(lp.Input),
			"exprs", expr.DescribeList(lp.Exprs),
			"schema", schema(lp.OutputSchema))
	case *Distinct:
		return variant("distinct",
			"input", Describe(lp.Input),
			"maintain_order", lp.MaintainOrder,
			"subset", ir.DescribeStrings(lp.Subset))
	case *UDF:
		return variant("udf",
			"input", Describe(lp.Input),
			"function", ir.FuncName(lp.Function),
			"projection_pushdown", lp.ProjectionPushdown,
			"predicate_pushdown", lp.PredicatePushdown,
			"schema", schema(lp.OutputSchema))
	default:
		panic(fmt.Sprintf("plan: unknown plan %T", lp))
	}
}

// Fingerprint returns the content hash of lp under ir.DomainPlan.
func Fingerprint(lp LogicalPlan) (string, error) {
	return ir.Fingerprint(ir.DomainPlan, Describe(lp))
}

func variant(name string, kv ...any) map[string]any {
	return map[string]any{name: ir.Doc(kv...)}
}

func schema(s *ir.Schema) any {
	if s == nil {
		return nil
	}
	return ir.DescribeSchema(s)
}

func optExprDoc(e expr.Expr) any {
	if e == nil {
		return nil
	}
	return expr.Describe(e)
}

func optInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
