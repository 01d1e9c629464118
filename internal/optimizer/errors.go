package optimizer

import (
	"errors"
	"fmt"
)

// ErrFinalized is returned when a Lowered plan is finalized twice.
var ErrFinalized = errors.New("plan already finalized")

// PassError wraps a failure inside a pass, including an invariant
// violation found after it.
type PassError struct {
	// Pass is the name of the failing pass.
	Pass string

	// Session identifies the optimizer run.
	Session string

	Err error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("pass %s (session=%s): %v", e.Pass, e.Session, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}
