package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/plan"
)

// RoundTripResult is the JSON payload of the roundtrip command.
type RoundTripResult struct {
	Fingerprint string `json:"fingerprint"`
	Plans       int    `json:"plans"`
	Exprs       int    `json:"exprs"`
}

// NewRoundTripCommand creates the roundtrip command.
func NewRoundTripCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip <plan-file>",
		Short: "Check that lowering and raising a plan preserves it",
		Long: `Lower a plan into arenas, check post-order allocation, raise it back
and compare fingerprints and explain output of both trees.

A difference exits with status 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundTrip(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runRoundTrip(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := newLogger(opts, cmd.ErrOrStderr())

	_, lp, err := loadPlan(commandContext(cmd), opts, formatter, logger, path)
	if err != nil {
		return err
	}

	before, err := plan.Fingerprint(lp)
	if err != nil {
		return fail(formatter, ErrCodeGeneric, "fingerprinting plan", err)
	}
	explained := plan.Explain(lp)

	ea, pa := expr.NewArena(), plan.NewArena()
	root := plan.ToALP(lp, ea, pa)
	if err := plan.VerifyPostOrder(root, ea, pa); err != nil {
		return checkFailed(formatter, ErrCodePostOrder, "arena not in post-order", err)
	}
	result := RoundTripResult{Fingerprint: before, Plans: pa.Len(), Exprs: ea.Len()}

	raised := plan.NodeToLP(root, ea, pa)
	if !plan.IsPlaceholder(pa.Get(root)) {
		return checkFailed(formatter, ErrCodeRoundTrip, "root slot not taken", fmt.Errorf("slot p%d still holds the plan", root))
	}
	after, err := plan.Fingerprint(raised)
	if err != nil {
		return fail(formatter, ErrCodeGeneric, "fingerprinting raised plan", err)
	}
	if after != before {
		return checkFailed(formatter, ErrCodeRoundTrip, "fingerprint changed",
			fmt.Errorf("%s before, %s after", before, after))
	}
	if got := plan.Explain(raised); got != explained {
		return checkFailed(formatter, ErrCodeRoundTrip, "explain output changed",
			fmt.Errorf("before:\n%safter:\n%s", explained, got))
	}
	formatter.VerboseLog("Fingerprint %s", before)

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ round trip preserved plan %s (%d plan node(s), %d expression node(s))\n",
		shortFingerprint(before), result.Plans, result.Exprs)
	return nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
