package frame

import (
	"context"
	"fmt"

	"github.com/roach88/lazyir/internal/ir"
)

// Tables is an in-memory table source keyed by name.
type Tables map[string]*DataFrame

// Table returns the named frame.
func (t Tables) Table(_ context.Context, name string) (ir.DataFrame, error) {
	df, ok := t[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return df, nil
}
