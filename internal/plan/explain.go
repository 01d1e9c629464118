package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/ir"
)

// Explain renders lp as an indented tree, one node per line with inputs
// below their parent.
func Explain(lp LogicalPlan) string {
	var b strings.Builder
	explain(&b, lp, 0)
	return b.String()
}

func explain(b *strings.Builder, lp LogicalPlan, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if lp == nil {
		b.WriteString("<taken>\n")
		return
	}
	b.WriteString(describeLine(lp))
	b.WriteByte('\n')
	for _, in := range inputsOf(lp) {
		explain(b, in, depth+1)
	}
}

func describeLine(lp LogicalPlan) string {
	switch lp := lp.(type) {
	case *DataFrameScan:
		return fmt.Sprintf("DF %s; PROJECT %s; SELECTION %s",
			lp.FrameSchema, projected(lp.Projection), optExpr(lp.Selection))
	case *CsvScan:
		return fmt.Sprintf("CSV SCAN %s; PROJECT %s; SELECTION %s",
			strconv.Quote(lp.Path), columns(lp.WithColumns), optExpr(lp.Predicate))
	case *ColumnarScan:
		return fmt.Sprintf("%s SCAN %s; PROJECT %s; SELECTION %s",
			strings.ToUpper(lp.Kind), strconv.Quote(lp.Path), columns(lp.WithColumns), optExpr(lp.Predicate))
	case *Selection:
		return "FILTER " + optExpr(lp.Predicate)
	case *Slice:
		return fmt.Sprintf("SLICE offset=%d len=%d", lp.Offset, lp.Len)
	case *Projection:
		return "SELECT " + exprList(lp.Exprs)
	case *LocalProjection:
		return "LOCAL SELECT " + exprList(lp.Exprs)
	case *Sort:
		return fmt.Sprintf("SORT BY %s reverse=%t", strconv.Quote(lp.ByColumn), lp.Reverse)
	case *Explode:
		return "EXPLODE " + columns(lp.Columns)
	case *Melt:
		return fmt.Sprintf("MELT id=%s value=%s", columns(lp.IDVars), columns(lp.ValueVars))
	case *Cache:
		return "CACHE"
	case *Aggregate:
		s := fmt.Sprintf("AGGREGATE %s BY %s", exprList(lp.Aggs), exprList(lp.Keys))
		if lp.Apply != nil {
			s += " APPLY " + ir.FuncName(lp.Apply)
		}
		return s
	case *Join:
		return fmt.Sprintf("%s JOIN LEFT ON %s RIGHT ON %s",
			strings.ToUpper(lp.How.String()), exprList(lp.LeftOn), exprList(lp.RightOn))
	case *HStack:
		return "WITH COLUMNS " + exprList(lp.Exprs)
	case *Distinct:
		return fmt.Sprintf("DISTINCT subset=%s maintain_order=%t", columns(lp.Subset), lp.MaintainOrder)
	case *UDF:
		return fmt.Sprintf("UDF %s projection_pd=%t predicate_pd=%t",
			ir.FuncName(lp.Function), lp.ProjectionPushdown, lp.PredicatePushdown)
	default:
		return fmt.Sprintf("%T", lp)
	}
}

// inputsOf returns the plan inputs of lp in lowering order.
func inputsOf(lp LogicalPlan) []LogicalPlan {
	switch lp := lp.(type) {
	case *Selection:
		return []LogicalPlan{lp.Input}
	case *Slice:
		return []LogicalPlan{lp.Input}
	case *Projection:
		return []LogicalPlan{lp.Input}
	case *LocalProjection:
		return []LogicalPlan{lp.Input}
	case *Sort:
		return []LogicalPlan{lp.Input}
	case *Explode:
		return []LogicalPlan{lp.Input}
	case *Melt:
		return []LogicalPlan{lp.Input}
	case *Cache:
		return []LogicalPlan{lp.Input}
	case *Aggregate:
		return []LogicalPlan{lp.Input}
	case *Join:
		return []LogicalPlan{lp.InputLeft, lp.InputRight}
	case *HStack:
		return []LogicalPlan{lp.Input}
	case *Distinct:
		return []LogicalPlan{lp.Input}
	case *UDF:
		return []LogicalPlan{lp.Input}
	default:
		return nil
	}
}

func exprList(exprs []expr.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func projected(exprs []expr.Expr) string {
	if exprs == nil {
		return "*"
	}
	return exprList(exprs)
}

func columns(names []string) string {
	if names == nil {
		return "*"
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func optExpr(e expr.Expr) string {
	if e == nil {
		return "None"
	}
	return e.String()
}
