package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyir/internal/plan"
)

// FingerprintResult is the JSON payload of the fingerprint command.
type FingerprintResult struct {
	Name        string `json:"name,omitempty"`
	Fingerprint string `json:"fingerprint"`
}

// NewFingerprintCommand creates the fingerprint command.
func NewFingerprintCommand(rootOpts *RootOptions) *cobra.Command {
	var optimized bool

	cmd := &cobra.Command{
		Use:   "fingerprint <plan-file>",
		Short: "Print the content hash of a plan",
		Long: `Print the SHA-256 fingerprint of a plan's canonical JSON form.

Two plans with the same fingerprint have the same structure, schemas and
literals. In-memory tables are identified by schema and height only.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFingerprint(rootOpts, optimized, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&optimized, "optimize", false, "fingerprint the plan after all optimizer passes")

	return cmd
}

func runFingerprint(opts *RootOptions, optimized bool, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := newLogger(opts, cmd.ErrOrStderr())
	ctx := commandContext(cmd)

	f, lp, err := loadPlan(ctx, opts, formatter, logger, path)
	if err != nil {
		return err
	}
	var session string
	if optimized {
		lp, session, _, err = optimize(ctx, opts, logger, nil, lp)
		if err != nil {
			return WrapExitError(ExitFailure, "optimizing plan", reportOptimize(formatter, err))
		}
	}

	fp, err := plan.Fingerprint(lp)
	if err != nil {
		return fail(formatter, ErrCodeGeneric, "fingerprinting plan", err)
	}

	if formatter.Format == "json" {
		return formatter.SuccessInSession(session, FingerprintResult{Name: f.Name, Fingerprint: fp})
	}
	fmt.Fprintln(formatter.Writer, fp)
	return nil
}
