package expr

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/lazyir/internal/ir"
)

// ErrColumnNotFound is returned when an expression references a column the
// input schema does not have.
var ErrColumnNotFound = errors.New("column not found")

// ErrNotSingleField is returned for selectors that expand to several
// columns, such as Wildcard.
var ErrNotSingleField = errors.New("expression does not produce a single field")

// FieldOf returns the output field e produces when evaluated against input.
func FieldOf(e Expr, input *ir.Schema) (ir.Field, error) {
	switch e := e.(type) {
	case nil:
		return ir.Field{}, fmt.Errorf("field of nil expression")
	case *Column:
		f, ok := input.Field(e.Name)
		if !ok {
			return ir.Field{}, fmt.Errorf("%w: %q in %s", ErrColumnNotFound, e.Name, input)
		}
		return f, nil
	case *Literal:
		return ir.NewField("literal", e.Value.DType()), nil
	case *Alias:
		f, err := FieldOf(e.Expr, input)
		if err != nil {
			return ir.Field{}, err
		}
		return ir.NewField(e.Name, f.DType), nil
	case *BinaryExpr:
		f, err := FieldOf(e.Left, input)
		if err != nil {
			return ir.Field{}, err
		}
		if _, err := FieldOf(e.Right, input); err != nil {
			return ir.Field{}, err
		}
		switch {
		case e.Op.IsComparison(), e.Op == ir.OpAnd, e.Op == ir.OpOr,
			e.Op == ir.OpLike, e.Op == ir.OpNotLike:
			return ir.NewField(f.Name, ir.Boolean), nil
		case e.Op == ir.OpTrueDivide:
			return ir.NewField(f.Name, ir.Float64), nil
		}
		return f, nil
	case *Not:
		return boolField(e.Expr, input)
	case *IsNull:
		return boolField(e.Expr, input)
	case *IsNotNull:
		return boolField(e.Expr, input)
	case *IsUnique:
		return boolField(e.Expr, input)
	case *Duplicated:
		return boolField(e.Expr, input)
	case *Cast:
		f, err := FieldOf(e.Expr, input)
		if err != nil {
			return ir.Field{}, err
		}
		return ir.NewField(f.Name, e.DType), nil
	case *Reverse:
		return FieldOf(e.Expr, input)
	case *Sort:
		return FieldOf(e.Expr, input)
	case *SortBy:
		return FieldOf(e.Expr, input)
	case *Filter:
		return FieldOf(e.Input, input)
	case *Shift:
		return FieldOf(e.Input, input)
	case *Slice:
		return FieldOf(e.Input, input)
	case *Explode:
		f, err := FieldOf(e.Expr, input)
		if err != nil {
			return ir.Field{}, err
		}
		if f.DType.Kind == ir.KindList && f.DType.Inner != nil {
			f.DType = *f.DType.Inner
		}
		return f, nil
	case *Ternary:
		return FieldOf(e.Truthy, input)
	case *UDF:
		f, err := FieldOf(e.Input, input)
		if err != nil {
			return ir.Field{}, err
		}
		if e.OutputType != nil {
			f.DType = *e.OutputType
		}
		return f, nil
	case *BinaryFunction:
		return e.OutputField, nil
	case *Window:
		return FieldOf(e.Function, input)
	case *Agg:
		return aggFieldOf(e.Agg, input)
	case *Wildcard, *Except:
		return ir.Field{}, fmt.Errorf("%w: %s", ErrNotSingleField, e)
	}
	return ir.Field{}, fmt.Errorf("field of unknown expression %T", e)
}

func boolField(e Expr, input *ir.Schema) (ir.Field, error) {
	f, err := FieldOf(e, input)
	if err != nil {
		return ir.Field{}, err
	}
	return ir.NewField(f.Name, ir.Boolean), nil
}

func aggFieldOf(a AggExpr, input *ir.Schema) (ir.Field, error) {
	inner, dtype := aggInput(a)
	if inner == nil {
		return ir.Field{}, fmt.Errorf("field of unknown aggregation %T", a)
	}
	f, err := FieldOf(inner, input)
	if err != nil {
		return ir.Field{}, err
	}
	if dtype != nil {
		f.DType = dtype(f.DType)
	}
	return f, nil
}

// aggInput returns the aggregated expression and how the aggregation maps
// its type. A nil mapping keeps the input type.
func aggInput(a AggExpr) (Expr, func(ir.DataType) ir.DataType) {
	float := func(ir.DataType) ir.DataType { return ir.Float64 }
	count := func(ir.DataType) ir.DataType { return ir.UInt32 }
	switch a := a.(type) {
	case *Min:
		return a.Expr, nil
	case *Max:
		return a.Expr, nil
	case *First:
		return a.Expr, nil
	case *Last:
		return a.Expr, nil
	case *Sum:
		return a.Expr, nil
	case *Median:
		return a.Expr, float
	case *Mean:
		return a.Expr, float
	case *Std:
		return a.Expr, float
	case *Var:
		return a.Expr, float
	case *Quantile:
		return a.Expr, float
	case *NUnique:
		return a.Expr, count
	case *Count:
		return a.Expr, count
	case *List:
		return a.Expr, ir.ListOf
	case *AggGroups:
		return a.Expr, func(ir.DataType) ir.DataType { return ir.ListOf(ir.UInt32) }
	}
	return nil, nil
}

// ColumnsOf returns the names of the columns e selects against input,
// expanding Wildcard and applying Except.
func ColumnsOf(e Expr, input *ir.Schema) ([]string, error) {
	switch e := e.(type) {
	case *Wildcard:
		return input.Names(), nil
	case *Except:
		drop, err := ColumnsOf(e.Input, input)
		if err != nil {
			return nil, err
		}
		var names []string
		for _, name := range input.Names() {
			if !slices.Contains(drop, name) {
				names = append(names, name)
			}
		}
		return names, nil
	}
	f, err := FieldOf(e, input)
	if err != nil {
		return nil, err
	}
	return []string{f.Name}, nil
}
