package planfile

import (
	"fmt"
	"strconv"

	"github.com/spf13/cast"

	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/ir"
)

var aggFuncs = map[string]func(expr.Expr) expr.AggExpr{
	"min":        func(e expr.Expr) expr.AggExpr { return &expr.Min{Expr: e} },
	"max":        func(e expr.Expr) expr.AggExpr { return &expr.Max{Expr: e} },
	"median":     func(e expr.Expr) expr.AggExpr { return &expr.Median{Expr: e} },
	"n_unique":   func(e expr.Expr) expr.AggExpr { return &expr.NUnique{Expr: e} },
	"first":      func(e expr.Expr) expr.AggExpr { return &expr.First{Expr: e} },
	"last":       func(e expr.Expr) expr.AggExpr { return &expr.Last{Expr: e} },
	"mean":       func(e expr.Expr) expr.AggExpr { return &expr.Mean{Expr: e} },
	"list":       func(e expr.Expr) expr.AggExpr { return &expr.List{Expr: e} },
	"count":      func(e expr.Expr) expr.AggExpr { return &expr.Count{Expr: e} },
	"sum":        func(e expr.Expr) expr.AggExpr { return &expr.Sum{Expr: e} },
	"std":        func(e expr.Expr) expr.AggExpr { return &expr.Std{Expr: e} },
	"var":        func(e expr.Expr) expr.AggExpr { return &expr.Var{Expr: e} },
	"agg_groups": func(e expr.Expr) expr.AggExpr { return &expr.AggGroups{Expr: e} },
}

// unaryKinds wrap a single operand held in Expr.
var unaryKinds = map[string]bool{
	ExprAlias: true, ExprNot: true, ExprIsNull: true, ExprIsNotNull: true,
	ExprIsUnique: true, ExprDuplicated: true, ExprReverse: true, ExprExplode: true,
	ExprCast: true, ExprSort: true, ExprShift: true, ExprSlice: true,
	ExprExcept: true, ExprAgg: true,
}

func exprList(specs []*Expr, path string) ([]expr.Expr, error) {
	if specs == nil {
		return nil, nil
	}
	exprs := make([]expr.Expr, len(specs))
	for i, s := range specs {
		e, err := toExpr(s, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

func optExpr(s *Expr, path string) (expr.Expr, error) {
	if s == nil {
		return nil, nil
	}
	return toExpr(s, path)
}

func toExpr(s *Expr, path string) (expr.Expr, error) {
	if s == nil || s.Kind == "" {
		return nil, ErrMissingField.New(path, "expression", "kind")
	}
	switch s.Kind {
	case ExprColumn:
		if s.Name == "" {
			return nil, ErrMissingField.New(path, s.Kind, "name")
		}
		return expr.Col(s.Name), nil
	case ExprLiteral:
		return literal(s, path)
	case ExprWildcard:
		return &expr.Wildcard{}, nil
	case ExprBinary:
		op, ok := ir.ParseOperator(s.Op)
		if !ok {
			return nil, ErrInvalidField.New(path+".op", "operator", strconv.Quote(s.Op))
		}
		left, err := required(s.Left, path, s.Kind, "left")
		if err != nil {
			return nil, err
		}
		right, err := required(s.Right, path, s.Kind, "right")
		if err != nil {
			return nil, err
		}
		return expr.Binary(left, op, right), nil
	case ExprTernary:
		pred, err := required(s.Predicate, path, s.Kind, "predicate")
		if err != nil {
			return nil, err
		}
		then, err := required(s.Then, path, s.Kind, "then")
		if err != nil {
			return nil, err
		}
		otherwise, err := required(s.Otherwise, path, s.Kind, "otherwise")
		if err != nil {
			return nil, err
		}
		return &expr.Ternary{Predicate: pred, Truthy: then, Falsy: otherwise}, nil
	}

	if !unaryKinds[s.Kind] {
		return nil, ErrUnknownExprKind.New(path, s.Kind)
	}
	in, err := required(s.Expr, path, s.Kind, "expr")
	if err != nil {
		return nil, err
	}
	switch s.Kind {
	case ExprAlias:
		if s.Name == "" {
			return nil, ErrMissingField.New(path, s.Kind, "name")
		}
		return expr.As(in, s.Name), nil
	case ExprNot:
		return &expr.Not{Expr: in}, nil
	case ExprIsNull:
		return &expr.IsNull{Expr: in}, nil
	case ExprIsNotNull:
		return &expr.IsNotNull{Expr: in}, nil
	case ExprIsUnique:
		return &expr.IsUnique{Expr: in}, nil
	case ExprDuplicated:
		return &expr.Duplicated{Expr: in}, nil
	case ExprReverse:
		return &expr.Reverse{Expr: in}, nil
	case ExprExplode:
		return &expr.Explode{Expr: in}, nil
	case ExprCast:
		dt, err := ir.ParseDataType(s.Type)
		if err != nil {
			return nil, ErrInvalidField.Wrap(err, path+".type", "type", strconv.Quote(s.Type))
		}
		return &expr.Cast{Expr: in, DType: dt}, nil
	case ExprSort:
		return &expr.Sort{Expr: in, Reverse: s.Reverse}, nil
	case ExprShift:
		return &expr.Shift{Input: in, Periods: s.Periods}, nil
	case ExprSlice:
		return &expr.Slice{Input: in, Offset: s.Offset, Length: s.Length}, nil
	case ExprExcept:
		return &expr.Except{Input: in}, nil
	case ExprAgg:
		return aggregation(s, in, path)
	}
	return nil, ErrUnknownExprKind.New(path, s.Kind)
}

func required(s *Expr, path, kind, field string) (expr.Expr, error) {
	if s == nil {
		return nil, ErrMissingField.New(path, kind, field)
	}
	return toExpr(s, path+"."+field)
}

func aggregation(s *Expr, in expr.Expr, path string) (expr.Expr, error) {
	if s.Func == "quantile" {
		if s.Quantile < 0 || s.Quantile > 1 {
			return nil, ErrInvalidField.New(path+".quantile", "quantile", s.Quantile)
		}
		return expr.Aggregate(&expr.Quantile{Expr: in, Quantile: s.Quantile}), nil
	}
	fn, ok := aggFuncs[s.Func]
	if !ok {
		if s.Func == "" {
			return nil, ErrMissingField.New(path, s.Kind, "func")
		}
		return nil, ErrInvalidField.New(path+".func", "aggregation", strconv.Quote(s.Func))
	}
	return expr.Aggregate(fn(in)), nil
}

// literal coerces the decoded value to the declared type. Types without a
// literal form of their own, such as i32, become a cast of the nearest
// literal.
func literal(s *Expr, path string) (expr.Expr, error) {
	if s.Type == "" {
		switch v := s.Value.(type) {
		case nil, bool, string, int, int64, uint64, float64:
			return &expr.Literal{Value: ir.ValueOf(v)}, nil
		}
		return nil, ErrInvalidField.New(path+".value", "literal of type", fmt.Sprintf("%T", s.Value))
	}

	dt, err := ir.ParseDataType(s.Type)
	if err != nil {
		return nil, ErrInvalidField.Wrap(err, path+".type", "type", strconv.Quote(s.Type))
	}
	if s.Value == nil {
		return &expr.Literal{Value: ir.NullValue{}}, nil
	}
	v, err := coerce(s.Value, dt)
	if err != nil {
		return nil, ErrInvalidField.Wrap(err, path+".value", dt.String()+" literal", s.Value)
	}
	lit := &expr.Literal{Value: v}
	if !v.DType().Equal(dt) {
		return &expr.Cast{Expr: lit, DType: dt}, nil
	}
	return lit, nil
}

func coerce(v any, dt ir.DataType) (ir.Value, error) {
	switch dt.Kind {
	case ir.KindBoolean:
		b, err := cast.ToBoolE(v)
		return ir.BoolValue(b), err
	case ir.KindInt8, ir.KindInt16, ir.KindInt32, ir.KindInt64:
		n, err := cast.ToInt64E(v)
		return ir.IntValue(n), err
	case ir.KindUInt8, ir.KindUInt16, ir.KindUInt32, ir.KindUInt64:
		n, err := cast.ToUint64E(v)
		return ir.UIntValue(n), err
	case ir.KindFloat32, ir.KindFloat64:
		f, err := cast.ToFloat64E(v)
		return ir.FloatValue(f), err
	case ir.KindUtf8, ir.KindCategorical:
		str, err := cast.ToStringE(v)
		return ir.Utf8Value(str), err
	}
	return nil, fmt.Errorf("no literal form for %s", dt)
}
