package planfile

import errors "gopkg.in/src-d/go-errors.v1"

// Errors carry the path of the offending node, such as
// "plan.input.predicate.left".
var (
	// ErrRead is returned when a plan file cannot be read or decoded.
	ErrRead = errors.NewKind("read plan file %s")

	// ErrVersion is returned for a file of another format version.
	ErrVersion = errors.NewKind("unsupported plan file version %d, want %d")

	// ErrUnknownPlanKind is returned for a node kind this package does not
	// know.
	ErrUnknownPlanKind = errors.NewKind("%s: unknown plan kind %q")

	// ErrUnknownExprKind is returned for an expression kind this package
	// does not know.
	ErrUnknownExprKind = errors.NewKind("%s: unknown expression kind %q")

	// ErrMissingField is returned when a kind's required field is absent.
	ErrMissingField = errors.NewKind("%s: %s requires %s")

	// ErrInvalidField is returned when a field holds a value its kind
	// cannot use.
	ErrInvalidField = errors.NewKind("%s: invalid %s %v")

	// ErrTable is returned when a df_scan table cannot be resolved.
	ErrTable = errors.NewKind("%s: table %q")

	// ErrSchema is returned when an output schema cannot be derived.
	ErrSchema = errors.NewKind("%s: derive %s schema")
)
