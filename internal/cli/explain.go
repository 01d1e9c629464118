package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyir/internal/optimizer"
	"github.com/roach88/lazyir/internal/plan"
)

// ExplainOptions holds flags for the explain command.
type ExplainOptions struct {
	*RootOptions
	Optimize bool
	Passes   []string
}

// ExplainResult is the JSON payload of the explain command.
type ExplainResult struct {
	Name   string   `json:"name,omitempty"`
	Plan   string   `json:"plan"`
	Schema []string `json:"schema"`
	Passes []string `json:"passes,omitempty"`
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExplainOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "explain <plan-file>",
		Short: "Print a plan as an indented tree",
		Long: `Print a plan as an indented tree, one node per line with inputs below
their parent.

With --optimize the plan is first lowered into arenas, rewritten by the
optimizer passes and raised back.

Example:
  lazyir explain plan.yaml
  lazyir explain --db tables.db --optimize --passes fold_constants plan.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Optimize, "optimize", false, "run optimizer passes before explaining")
	cmd.Flags().StringSliceVar(&opts.Passes, "passes", nil, "optimizer passes to run (default: all)")

	return cmd
}

func runExplain(opts *ExplainOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	ctx := commandContext(cmd)

	f, lp, err := loadPlan(ctx, opts.RootOptions, formatter, logger, path)
	if err != nil {
		return err
	}

	result := ExplainResult{Name: f.Name}
	var session string
	if opts.Optimize {
		lp, session, result.Passes, err = optimize(ctx, opts.RootOptions, logger, opts.Passes, lp)
		if err != nil {
			return WrapExitError(ExitFailure, "optimizing plan", reportOptimize(formatter, err))
		}
		formatter.VerboseLog("Optimized in session %s", session)
	}
	result.Plan = plan.Explain(lp)
	result.Schema = schemaStrings(lp)

	if formatter.Format == "json" {
		return formatter.SuccessInSession(session, result)
	}
	fmt.Fprint(formatter.Writer, result.Plan)
	return nil
}

// optimize runs the named passes, or all default passes when names is
// empty, and returns the rewritten plan with the session id of the run.
func optimize(ctx context.Context, opts *RootOptions, logger *slog.Logger, names []string, lp plan.LogicalPlan) (plan.LogicalPlan, string, []string, error) {
	passes, err := selectPasses(names)
	if err != nil {
		return nil, "", nil, err
	}
	ids := opts.SessionIDs
	if ids == nil {
		ids = optimizer.UUIDv7Generator{}
	}
	session := ids.Generate()

	pipeline := optimizer.New(passes,
		optimizer.WithLogger(logger),
		optimizer.WithVerify(true),
		optimizer.WithSessionIDs(fixedSession(session)))
	out, err := pipeline.Run(ctx, lp)
	if err != nil {
		return nil, session, nil, err
	}
	return out, session, pipeline.Passes(), nil
}

func selectPasses(names []string) ([]optimizer.Pass, error) {
	all := optimizer.DefaultPasses()
	if len(names) == 0 {
		return all, nil
	}
	passes := make([]optimizer.Pass, 0, len(names))
	for _, name := range names {
		found := false
		for _, p := range all {
			if p.Name == name {
				passes = append(passes, p)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown pass %q", name)
		}
	}
	return passes, nil
}

// reportOptimize writes an optimizer failure through formatter and returns
// err unchanged.
func reportOptimize(formatter *OutputFormatter, err error) error {
	if outErr := formatter.Error(ErrCodeOptimize, err.Error(), nil); outErr != nil {
		return outErr
	}
	return err
}

// fixedSession hands the same id to every optimizer run.
type fixedSession string

func (s fixedSession) Generate() string { return string(s) }

func schemaStrings(lp plan.LogicalPlan) []string {
	fields := lp.Schema().Fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.String()
	}
	return out
}
