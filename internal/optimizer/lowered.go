package optimizer

import (
	"github.com/roach88/lazyir/internal/arena"
	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/plan"
)

// Lowered is a plan in arena form together with the arenas that hold it.
type Lowered struct {
	Root  arena.Node
	Exprs *expr.Arena
	Plans *plan.Arena

	finalized bool
}

// Lower moves lp into fresh arenas. lp must not be used afterwards.
func Lower(lp plan.LogicalPlan) *Lowered {
	l := &Lowered{Exprs: expr.NewArena(), Plans: plan.NewArena()}
	l.Root = plan.ToALP(lp, l.Exprs, l.Plans)
	return l
}

// Finalize takes the plan back out of the arenas. It can be called once;
// later calls return ErrFinalized.
func (l *Lowered) Finalize() (plan.LogicalPlan, error) {
	if l.finalized {
		return nil, ErrFinalized
	}
	l.finalized = true
	return plan.NodeToLP(l.Root, l.Exprs, l.Plans), nil
}

// Verify checks the post-order invariant from Root.
func (l *Lowered) Verify() error {
	return plan.VerifyPostOrder(l.Root, l.Exprs, l.Plans)
}
