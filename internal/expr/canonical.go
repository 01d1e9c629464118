package expr

import (
	"fmt"

	"github.com/roach88/lazyir/internal/ir"
)

// Describe renders e as a canonical document: a single-key object naming
// the variant, holding the variant's fields. Two trees describe the same
// document exactly when they are structurally equal, with user functions
// compared by name.
func Describe(e Expr) any {
	switch e := e.(type) {
	case nil:
		panic("expr: cannot describe a nil expression")
	case *IsUnique:
		return unary("is_unique", e.Expr)
	case *Duplicated:
		return unary("duplicated", e.Expr)
	case *Reverse:
		return unary("reverse", e.Expr)
	case *Explode:
		return unary("explode", e.Expr)
	case *Alias:
		return variant("alias", "expr", Describe(e.Expr), "name", e.Name)
	case *Column:
		return variant("column", "name", e.Name)
	case *Literal:
		return variant("literal", "value", ir.DescribeValue(e.Value))
	case *BinaryExpr:
		return variant("binary",
			"left", Describe(e.Left),
			"op", e.Op.String(),
			"right", Describe(e.Right))
	case *Not:
		return unary("not", e.Expr)
	case *IsNotNull:
		return unary("is_not_null", e.Expr)
	case *IsNull:
		return unary("is_null", e.Expr)
	case *Cast:
		return variant("cast", "expr", Describe(e.Expr), "dtype", e.DType.String())
	case *Sort:
		return variant("sort", "expr", Describe(e.Expr), "reverse", e.Reverse)
	case *SortBy:
		return variant("sort_by",
			"expr", Describe(e.Expr),
			"by", Describe(e.By),
			"reverse", e.Reverse)
	case *Filter:
		return variant("filter", "input", Describe(e.Input), "by", Describe(e.By))
	case *Agg:
		return variant("agg", "agg", DescribeAgg(e.Agg))
	case *Ternary:
		return variant("ternary",
			"predicate", Describe(e.Predicate),
			"truthy", Describe(e.Truthy),
			"falsy", Describe(e.Falsy))
	case *UDF:
		var out any
		if e.OutputType != nil {
			out = e.OutputType.String()
		}
		return variant("udf",
			"input", Describe(e.Input),
			"function", ir.FuncName(e.Function),
			"output_type", out)
	case *BinaryFunction:
		return variant("binary_function",
			"input_a", Describe(e.InputA),
			"input_b", Describe(e.InputB),
			"function", ir.FuncName(e.Function),
			"output_field", e.OutputField.String())
	case *Shift:
		return variant("shift", "input", Describe(e.Input), "periods", e.Periods)
	case *Window:
		var orderBy any
		if e.OrderBy != nil {
			orderBy = Describe(e.OrderBy)
		}
		return variant("window",
			"function", Describe(e.Function),
			"partition_by", Describe(e.PartitionBy),
			"order_by", orderBy)
	case *Slice:
		return variant("slice",
			"input", Describe(e.Input),
			"offset", e.Offset,
			"length", e.Length)
	case *Wildcard:
		return variant("wildcard")
	case *Except:
		return variant("except", "input", Describe(e.Input))
	default:
		panic(fmt.Sprintf("expr: unknown expression %T", e))
	}
}

// DescribeAgg renders an aggregation the way Describe renders expressions.
func DescribeAgg(a AggExpr) any {
	switch a := a.(type) {
	case *Min:
		return unary("min", a.Expr)
	case *Max:
		return unary("max", a.Expr)
	case *Median:
		return unary("median", a.Expr)
	case *NUnique:
		return unary("n_unique", a.Expr)
	case *First:
		return unary("first", a.Expr)
	case *Last:
		return unary("last", a.Expr)
	case *Mean:
		return unary("mean", a.Expr)
	case *List:
		return unary("list", a.Expr)
	case *Count:
		return unary("count", a.Expr)
	case *Quantile:
		return variant("quantile",
			"expr", Describe(a.Expr),
			"quantile", ir.FormatFloat(a.Quantile))
	case *Sum:
		return unary("sum", a.Expr)
	case *Std:
		return unary("std", a.Expr)
	case *Var:
		return unary("var", a.Expr)
	case *AggGroups:
		return unary("agg_groups", a.Expr)
	default:
		panic(fmt.Sprintf("expr: unknown aggregation %T", a))
	}
}

// DescribeList renders a list of expressions. A nil list describes as nil
// so that it drops out of the enclosing document.
func DescribeList(exprs []Expr) any {
	if exprs == nil {
		return nil
	}
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = Describe(e)
	}
	return out
}

// Fingerprint returns the content hash of e under ir.DomainExpr.
func Fingerprint(e Expr) (string, error) {
	return ir.Fingerprint(ir.DomainExpr, Describe(e))
}

func unary(name string, e Expr) map[string]any {
	return variant(name, "expr", Describe(e))
}

func variant(name string, kv ...any) map[string]any {
	return map[string]any{name: ir.Doc(kv...)}
}
