package cli

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyir/internal/arena"
	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/plan"
)

// LowerResult is the JSON payload of the lower command.
type LowerResult struct {
	Root  uint32 `json:"root"`
	Plans []Slot `json:"plans"`
	Exprs []Slot `json:"exprs"`
}

// Slot describes one arena slot.
type Slot struct {
	Node   uint32   `json:"node"`
	Kind   string   `json:"kind"`
	Label  string   `json:"label,omitempty"`
	Inputs []uint32 `json:"inputs,omitempty"`
	Exprs  []uint32 `json:"exprs,omitempty"`
}

// NewLowerCommand creates the lower command.
func NewLowerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lower <plan-file>",
		Short: "Lower a plan into arenas and print every slot",
		Long: `Lower a plan into a plan arena and an expression arena and print every
slot with the nodes it references.

The arenas are checked for post-order allocation: every node must sit
after the nodes it references. A violation exits with status 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLower(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runLower(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := newLogger(opts, cmd.ErrOrStderr())

	_, lp, err := loadPlan(commandContext(cmd), opts, formatter, logger, path)
	if err != nil {
		return err
	}

	ea, pa := expr.NewArena(), plan.NewArena()
	root := plan.ToALP(lp, ea, pa)
	formatter.VerboseLog("Lowered into %d plan and %d expression slot(s)", pa.Len(), ea.Len())

	if err := plan.VerifyPostOrder(root, ea, pa); err != nil {
		return checkFailed(formatter, ErrCodePostOrder, "arena not in post-order", err)
	}

	result := LowerResult{Root: uint32(root)}
	for n, p := range pa.All() {
		result.Plans = append(result.Plans, Slot{
			Node:   uint32(n),
			Kind:   kindName(p),
			Inputs: nodes(p.Inputs()),
			Exprs:  nodes(p.ExprRefs()),
		})
	}
	for n, e := range ea.All() {
		result.Exprs = append(result.Exprs, Slot{
			Node:   uint32(n),
			Kind:   kindName(e),
			Label:  exprLabel(e),
			Inputs: nodes(e.Inputs()),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	writeLowerText(formatter, result)
	return nil
}

func writeLowerText(formatter *OutputFormatter, result LowerResult) {
	w := formatter.Writer
	fmt.Fprintf(w, "root p%d\n", result.Root)
	fmt.Fprintf(w, "plan arena (%d slot(s))\n", len(result.Plans))
	for _, s := range result.Plans {
		fmt.Fprintf(w, "  p%d %s%s%s\n", s.Node, s.Kind, refs(" inputs=", "p", s.Inputs), refs(" exprs=", "e", s.Exprs))
	}
	fmt.Fprintf(w, "expr arena (%d slot(s))\n", len(result.Exprs))
	for _, s := range result.Exprs {
		label := ""
		if s.Label != "" {
			label = " " + s.Label
		}
		fmt.Fprintf(w, "  e%d %s%s%s\n", s.Node, s.Kind, label, refs(" inputs=", "e", s.Inputs))
	}
	fmt.Fprintln(w, "✓ post-order")
}

// kindName is the variant name of an arena value without its "A" prefix.
func kindName(v any) string {
	return strings.TrimPrefix(reflect.TypeOf(v).Name(), "A")
}

func exprLabel(e expr.AExpr) string {
	switch e := e.(type) {
	case expr.AColumn:
		return e.Name
	case expr.ALiteral:
		return fmt.Sprint(e.Value)
	case expr.AAlias:
		return e.Name
	case expr.ABinaryExpr:
		return e.Op.String()
	case expr.ACast:
		return e.DType.String()
	case expr.AAgg:
		return kindName(e.Agg)
	}
	return ""
}

func nodes(ns []arena.Node) []uint32 {
	if len(ns) == 0 {
		return nil
	}
	out := make([]uint32, len(ns))
	for i, n := range ns {
		out[i] = uint32(n)
	}
	return out
}

func refs(prefix, arenaTag string, ns []uint32) string {
	if len(ns) == 0 {
		return ""
	}
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%s%d", arenaTag, n)
	}
	return prefix + strings.Join(parts, ",")
}

// checkFailed reports a failed check and returns it with ExitFailure.
func checkFailed(formatter *OutputFormatter, code, message string, err error) error {
	if outErr := formatter.Error(code, message+": "+err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitFailure, message, err)
}
