package optimizer

import (
	"context"

	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/ir"
	"github.com/roach88/lazyir/internal/plan"
)

// DefaultPasses returns the built-in passes in their usual order.
func DefaultPasses() []Pass {
	return []Pass{FoldConstants(), CombineSelections()}
}

// FoldConstants replaces binary expressions over two numeric or boolean
// literals with their result.
//
// It walks the expression arena forward, which visits children before
// parents, so nested constant expressions fold in a single sweep.
func FoldConstants() Pass {
	return Pass{Name: "fold_constants", Apply: foldConstants}
}

func foldConstants(_ context.Context, l *Lowered) error {
	for n := range l.Exprs.Nodes() {
		bin, ok := l.Exprs.Get(n).(expr.ABinaryExpr)
		if !ok {
			continue
		}
		left, lok := l.Exprs.Get(bin.Left).(expr.ALiteral)
		right, rok := l.Exprs.Get(bin.Right).(expr.ALiteral)
		if !lok || !rok {
			continue
		}
		if v, ok := foldBinary(left.Value, bin.Op, right.Value); ok {
			l.Exprs.Replace(n, expr.ALiteral{Value: v})
		}
	}
	return nil
}

func foldBinary(l ir.Value, op ir.Operator, r ir.Value) (ir.Value, bool) {
	switch l := l.(type) {
	case ir.IntValue:
		r, ok := r.(ir.IntValue)
		if !ok {
			return nil, false
		}
		return foldOrdered(l, op, r)
	case ir.FloatValue:
		r, ok := r.(ir.FloatValue)
		if !ok {
			return nil, false
		}
		if op == ir.OpTrueDivide && r != 0 {
			return l / r, true
		}
		return foldOrdered(l, op, r)
	case ir.BoolValue:
		r, ok := r.(ir.BoolValue)
		if !ok {
			return nil, false
		}
		switch op {
		case ir.OpAnd:
			return l && r, true
		case ir.OpOr:
			return l || r, true
		case ir.OpEq:
			return ir.BoolValue(l == r), true
		case ir.OpNotEq:
			return ir.BoolValue(l != r), true
		}
	}
	return nil, false
}

func foldOrdered[T ir.IntValue | ir.FloatValue](l T, op ir.Operator, r T) (ir.Value, bool) {
	switch op {
	case ir.OpPlus:
		return any(l + r).(ir.Value), true
	case ir.OpMinus:
		return any(l - r).(ir.Value), true
	case ir.OpMultiply:
		return any(l * r).(ir.Value), true
	case ir.OpEq:
		return ir.BoolValue(l == r), true
	case ir.OpNotEq:
		return ir.BoolValue(l != r), true
	case ir.OpLt:
		return ir.BoolValue(l < r), true
	case ir.OpLtEq:
		return ir.BoolValue(l <= r), true
	case ir.OpGt:
		return ir.BoolValue(l > r), true
	case ir.OpGtEq:
		return ir.BoolValue(l >= r), true
	default:
		return nil, false
	}
}

// CombineSelections merges a Selection directly over another Selection
// into one Selection whose predicate is the conjunction of both.
//
// The conjunction is appended to the expression arena, so it sits above
// both predicates. The inner selection's slot is left unreferenced.
func CombineSelections() Pass {
	return Pass{Name: "combine_selections", Apply: combineSelections}
}

func combineSelections(_ context.Context, l *Lowered) error {
	for n := range l.Plans.Nodes() {
		outer, ok := l.Plans.Get(n).(plan.ASelection)
		if !ok || !outer.Input.IsValid() {
			continue
		}
		inner, ok := l.Plans.Get(outer.Input).(plan.ASelection)
		if !ok || !inner.Input.IsValid() {
			continue
		}
		pred := l.Exprs.Add(expr.ABinaryExpr{Left: inner.Predicate, Op: ir.OpAnd, Right: outer.Predicate})
		l.Plans.Replace(n, plan.ASelection{Input: inner.Input, Predicate: pred})
	}
	return nil
}
