package frame

import (
	"fmt"

	"github.com/roach88/lazyir/internal/ir"
)

// DataFrame is an ordered set of equal-length columns.
type DataFrame struct {
	columns []*Series
	schema  *ir.Schema
	height  int
}

// New builds a DataFrame. Columns must have distinct names and equal
// lengths.
func New(columns ...*Series) (*DataFrame, error) {
	fields := make([]ir.Field, len(columns))
	seen := make(map[string]bool, len(columns))
	height := 0
	for i, c := range columns {
		if seen[c.Name()] {
			return nil, fmt.Errorf("duplicate column %q", c.Name())
		}
		seen[c.Name()] = true
		if i == 0 {
			height = c.Len()
		} else if c.Len() != height {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name(), c.Len(), height)
		}
		fields[i] = ir.NewField(c.Name(), c.DType())
	}
	return &DataFrame{columns: columns, schema: ir.NewSchema(fields...), height: height}, nil
}

// Schema returns the column names and types in order.
func (df *DataFrame) Schema() *ir.Schema { return df.schema }

// Height returns the number of rows.
func (df *DataFrame) Height() int { return df.height }

// Width returns the number of columns.
func (df *DataFrame) Width() int { return len(df.columns) }

// Columns returns the columns in order.
func (df *DataFrame) Columns() []*Series {
	return append([]*Series(nil), df.columns...)
}

// Column returns the column named name.
func (df *DataFrame) Column(name string) (*Series, bool) {
	for _, c := range df.columns {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Row returns the values of row i in column order.
func (df *DataFrame) Row(i int) []ir.Value {
	row := make([]ir.Value, len(df.columns))
	for j, c := range df.columns {
		row[j] = c.Value(i)
	}
	return row
}
