package plan

import (
	"fmt"
	"strings"

	"github.com/roach88/lazyir/internal/arena"
	"github.com/roach88/lazyir/internal/expr"
)

// OrderViolation is one reference that breaks post-order allocation.
type OrderViolation struct {
	// Arena is "plan" or "expr".
	Arena  string
	Parent arena.Node
	Child  arena.Node
	// Dangling is set when Child is outside the arena.
	Dangling bool
}

func (v OrderViolation) String() string {
	if v.Dangling {
		return fmt.Sprintf("%s %s references missing %s", v.Arena, v.Parent, v.Child)
	}
	return fmt.Sprintf("%s %s references %s which is not below it", v.Arena, v.Parent, v.Child)
}

// OrderViolationError lists every violation found by VerifyPostOrder.
type OrderViolationError struct {
	Violations []OrderViolation
}

func (e *OrderViolationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("post-order violated (%d): %s", len(e.Violations), strings.Join(parts, "; "))
}

// VerifyPostOrder checks that every plan input and every expression child
// reachable from root sits at a lower Node than the node that refers to
// it. Embedded expression roots are only checked for range, since they
// live in a different arena from the plan that holds them.
func VerifyPostOrder(root arena.Node, ea *expr.Arena, pa *Arena) error {
	v := verifier{ea: ea, pa: pa, seenExpr: make(map[arena.Node]bool)}
	if !pa.Contains(root) {
		v.add("plan", root, root, true)
	} else {
		v.plan(root)
	}
	if len(v.violations) > 0 {
		return &OrderViolationError{Violations: v.violations}
	}
	return nil
}

type verifier struct {
	ea         *expr.Arena
	pa         *Arena
	seenExpr   map[arena.Node]bool
	violations []OrderViolation
}

func (v *verifier) add(kind string, parent, child arena.Node, dangling bool) {
	v.violations = append(v.violations, OrderViolation{Arena: kind, Parent: parent, Child: child, Dangling: dangling})
}

func (v *verifier) plan(n arena.Node) {
	lp := v.pa.Get(n)
	for _, e := range lp.ExprRefs() {
		if !v.ea.Contains(e) {
			v.add("expr", e, e, true)
			continue
		}
		v.expr(e)
	}
	for _, in := range lp.Inputs() {
		switch {
		case !v.pa.Contains(in):
			v.add("plan", n, in, true)
		case in >= n:
			v.add("plan", n, in, false)
		default:
			v.plan(in)
		}
	}
}

func (v *verifier) expr(n arena.Node) {
	if v.seenExpr[n] {
		return
	}
	v.seenExpr[n] = true
	for _, c := range v.ea.Get(n).Inputs() {
		switch {
		case !v.ea.Contains(c):
			v.add("expr", n, c, true)
		case c >= n:
			v.add("expr", n, c, false)
		default:
			v.expr(c)
		}
	}
}
