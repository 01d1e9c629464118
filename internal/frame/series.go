package frame

import (
	"fmt"

	"github.com/roach88/lazyir/internal/ir"
)

// Series is a named column of values.
type Series struct {
	name   string
	dtype  ir.DataType
	values []ir.Value
}

// NewSeries creates a column. Every non-null value must have dtype.
func NewSeries(name string, dtype ir.DataType, values ...ir.Value) (*Series, error) {
	for i, v := range values {
		if _, null := v.(ir.NullValue); null || v == nil {
			continue
		}
		if !v.DType().Equal(dtype) {
			return nil, fmt.Errorf("series %q: value %d has type %s, want %s", name, i, v.DType(), dtype)
		}
	}
	return &Series{name: name, dtype: dtype, values: values}, nil
}

// MustSeries is NewSeries that panics on error.
func MustSeries(name string, dtype ir.DataType, values ...ir.Value) *Series {
	s, err := NewSeries(name, dtype, values...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Series) Name() string       { return s.name }
func (s *Series) DType() ir.DataType { return s.dtype }
func (s *Series) Len() int           { return len(s.values) }

// Value returns the i-th value.
func (s *Series) Value(i int) ir.Value { return s.values[i] }

// Rename returns a copy of s under a new name sharing the same values.
func (s *Series) Rename(name string) *Series {
	return &Series{name: name, dtype: s.dtype, values: s.values}
}
