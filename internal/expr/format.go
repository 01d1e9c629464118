package expr

import (
	"fmt"
	"strconv"

	"github.com/roach88/lazyir/internal/ir"
)

func str(e fmt.Stringer) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

func method(e Expr, name string, args ...any) string {
	s := str(e) + "." + name + "("
	for i, arg := range args {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(arg)
	}
	return s + ")"
}

func (e *IsUnique) String() string   { return method(e.Expr, "is_unique") }
func (e *Duplicated) String() string { return method(e.Expr, "is_duplicated") }
func (e *Reverse) String() string    { return method(e.Expr, "reverse") }
func (e *Explode) String() string    { return method(e.Expr, "explode") }
func (e *Alias) String() string      { return method(e.Expr, "alias", strconv.Quote(e.Name)) }
func (e *Column) String() string     { return "col(" + strconv.Quote(e.Name) + ")" }
func (e *Literal) String() string    { return "lit(" + fmt.Sprint(e.Value) + ")" }

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("[(%s) %s (%s)]", str(e.Left), e.Op, str(e.Right))
}

func (e *Not) String() string       { return "not(" + str(e.Expr) + ")" }
func (e *IsNotNull) String() string { return method(e.Expr, "is_not_null") }
func (e *IsNull) String() string    { return method(e.Expr, "is_null") }
func (e *Cast) String() string      { return method(e.Expr, "cast", e.DType) }

func (e *Sort) String() string {
	return method(e.Expr, "sort", "reverse="+strconv.FormatBool(e.Reverse))
}

func (e *SortBy) String() string {
	return method(e.Expr, "sort_by", str(e.By), "reverse="+strconv.FormatBool(e.Reverse))
}

func (e *Filter) String() string { return method(e.Input, "filter", str(e.By)) }
func (e *Agg) String() string    { return str(e.Agg) }

func (e *Ternary) String() string {
	return fmt.Sprintf("when(%s).then(%s).otherwise(%s)", str(e.Predicate), str(e.Truthy), str(e.Falsy))
}

func (e *UDF) String() string {
	if e.OutputType != nil {
		return method(e.Input, "map", ir.FuncName(e.Function), *e.OutputType)
	}
	return method(e.Input, "map", ir.FuncName(e.Function))
}

func (e *BinaryFunction) String() string {
	return fmt.Sprintf("map_binary(%s, %s, %s) -> %s", str(e.InputA), str(e.InputB), ir.FuncName(e.Function), e.OutputField)
}

func (e *Shift) String() string { return method(e.Input, "shift", e.Periods) }

func (e *Window) String() string {
	if e.OrderBy != nil {
		return method(e.Function, "over", str(e.PartitionBy), "order_by="+str(e.OrderBy))
	}
	return method(e.Function, "over", str(e.PartitionBy))
}

func (e *Slice) String() string  { return method(e.Input, "slice", e.Offset, e.Length) }
func (*Wildcard) String() string { return "*" }
func (e *Except) String() string { return "except(" + str(e.Input) + ")" }

func (e *Min) String() string       { return method(e.Expr, "min") }
func (e *Max) String() string       { return method(e.Expr, "max") }
func (e *Median) String() string    { return method(e.Expr, "median") }
func (e *NUnique) String() string   { return method(e.Expr, "n_unique") }
func (e *First) String() string     { return method(e.Expr, "first") }
func (e *Last) String() string      { return method(e.Expr, "last") }
func (e *Mean) String() string      { return method(e.Expr, "mean") }
func (e *List) String() string      { return method(e.Expr, "list") }
func (e *Count) String() string     { return method(e.Expr, "count") }
func (e *Sum) String() string       { return method(e.Expr, "sum") }
func (e *Std) String() string       { return method(e.Expr, "std") }
func (e *Var) String() string       { return method(e.Expr, "var") }
func (e *AggGroups) String() string { return method(e.Expr, "agg_groups") }

func (e *Quantile) String() string {
	return method(e.Expr, "quantile", strconv.FormatFloat(e.Quantile, 'g', -1, 64))
}
