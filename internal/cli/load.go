package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"

	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/roach88/lazyir/internal/frame"
	"github.com/roach88/lazyir/internal/plan"
	"github.com/roach88/lazyir/internal/planfile"
)

// Error codes for CLI output.
const (
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeDecode   = "E004" // Plan file could not be decoded
	ErrCodeNotFound = "E005" // Path not found
	ErrCodeDatabase = "E008" // Table catalog could not be opened

	// Plan file errors
	ErrCodeUnknownPlanKind = "E101" // Unknown node kind
	ErrCodeUnknownExprKind = "E102" // Unknown expression kind
	ErrCodeMissingField    = "E103" // Required field absent
	ErrCodeInvalidField    = "E104" // Field value unusable
	ErrCodeTable           = "E105" // df_scan table not resolved
	ErrCodeSchema          = "E106" // Output schema not derivable
	ErrCodeVersion         = "E107" // Unsupported file version

	// Check failures
	ErrCodeRoundTrip = "E201" // Plan changed across lower and raise
	ErrCodePostOrder = "E202" // Arena not in post-order
	ErrCodeOptimize  = "E203" // Optimizer pass failed
)

var planfileCodes = []struct {
	kind *goerrors.Kind
	code string
}{
	{planfile.ErrUnknownPlanKind, ErrCodeUnknownPlanKind},
	{planfile.ErrUnknownExprKind, ErrCodeUnknownExprKind},
	{planfile.ErrMissingField, ErrCodeMissingField},
	{planfile.ErrInvalidField, ErrCodeInvalidField},
	{planfile.ErrTable, ErrCodeTable},
	{planfile.ErrSchema, ErrCodeSchema},
	{planfile.ErrVersion, ErrCodeVersion},
}

// errorCode maps a plan loading error to its CLI error code.
func errorCode(err error) string {
	for _, c := range planfileCodes {
		if c.kind.Is(err) {
			return c.code
		}
	}
	if planfile.ErrRead.Is(err) {
		var e *goerrors.Error
		if errors.As(err, &e) && errors.Is(e.Cause(), fs.ErrNotExist) {
			return ErrCodeNotFound
		}
		return ErrCodeDecode
	}
	return ErrCodeGeneric
}

// newLogger returns a text logger on w at debug level when verbose, and
// warnings only otherwise.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadPlan reads the plan file at path, resolving df_scan tables through
// the --db catalog when one is given. Errors are reported through
// formatter and returned as ExitErrors.
func loadPlan(ctx context.Context, opts *RootOptions, formatter *OutputFormatter, logger *slog.Logger, path string) (*planfile.File, plan.LogicalPlan, error) {
	f, err := planfile.Decode(path)
	if err != nil {
		return nil, nil, fail(formatter, errorCode(err), "loading plan file", err)
	}

	buildOpts := []planfile.Option{planfile.WithLogger(logger)}
	if opts.Database != "" {
		catalog, err := frame.OpenCatalog(opts.Database)
		if err != nil {
			return nil, nil, fail(formatter, ErrCodeDatabase, "opening table catalog", err)
		}
		defer func() {
			if closeErr := catalog.Close(); closeErr != nil {
				logger.Error("error closing catalog", "error", closeErr)
			}
		}()
		buildOpts = append(buildOpts, planfile.WithTables(catalog))
	}

	lp, err := planfile.Build(ctx, f, buildOpts...)
	if err != nil {
		return nil, nil, fail(formatter, errorCode(err), "building plan", err)
	}
	formatter.VerboseLog("Loaded %s (%s)", path, lp.Schema())
	return f, lp, nil
}

// fail reports err through formatter and returns it as a command error.
func fail(formatter *OutputFormatter, code, message string, err error) error {
	if outErr := formatter.Error(code, message+": "+err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, message, err)
}
