package plan

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/ir"
)

// ErrDuplicateColumn is returned when a derived schema would contain the
// same column name twice.
var ErrDuplicateColumn = errors.New("duplicate column")

// ProjectSchema is the output schema of evaluating exprs against input.
// Wildcard and Except expand to the input columns they select.
func ProjectSchema(exprs []expr.Expr, input *ir.Schema) (*ir.Schema, error) {
	var fields []ir.Field
	for _, e := range exprs {
		fs, err := fieldsOf(e, input)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fs...)
	}
	return uniqueSchema(fields)
}

// HStackSchema is the schema of input with the columns of exprs added.
// A column with an existing name replaces it in place.
func HStackSchema(exprs []expr.Expr, input *ir.Schema) (*ir.Schema, error) {
	fields := input.Fields()
	for _, e := range exprs {
		f, err := expr.FieldOf(e, input)
		if err != nil {
			return nil, err
		}
		i := slices.IndexFunc(fields, func(g ir.Field) bool { return g.Name == f.Name })
		if i >= 0 {
			fields[i] = f
			continue
		}
		fields = append(fields, f)
	}
	return ir.NewSchema(fields...), nil
}

// AggregateSchema is the schema of grouping input by keys: the key columns
// followed by one column per aggregation.
func AggregateSchema(keys, aggs []expr.Expr, input *ir.Schema) (*ir.Schema, error) {
	fields := make([]ir.Field, 0, len(keys)+len(aggs))
	for _, e := range slices.Concat(keys, aggs) {
		f, err := expr.FieldOf(e, input)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return uniqueSchema(fields)
}

// JoinSchema is the schema of joining left and right. Right-hand join
// columns are dropped; other right columns whose name is taken get the
// suffix "_right".
func JoinSchema(left, right *ir.Schema, rightOn []expr.Expr) (*ir.Schema, error) {
	var drop []string
	for _, e := range rightOn {
		if c, ok := e.(*expr.Column); ok {
			drop = append(drop, c.Name)
		}
	}
	fields := left.Fields()
	for _, f := range right.Fields() {
		if slices.Contains(drop, f.Name) {
			continue
		}
		if _, taken := left.Field(f.Name); taken {
			f.Name += "_right"
		}
		fields = append(fields, f)
	}
	return uniqueSchema(fields)
}

// MeltSchema is the schema of unpivoting input: idVars, then a "variable"
// column with the source column name and a "value" column. All valueVars
// must share a type.
func MeltSchema(input *ir.Schema, idVars, valueVars []string) (*ir.Schema, error) {
	fields := make([]ir.Field, 0, len(idVars)+2)
	for _, name := range idVars {
		f, ok := input.Field(name)
		if !ok {
			return nil, fmt.Errorf("melt id var: %w: %q", expr.ErrColumnNotFound, name)
		}
		fields = append(fields, f)
	}
	if len(valueVars) == 0 {
		for _, name := range input.Names() {
			if !slices.Contains(idVars, name) {
				valueVars = append(valueVars, name)
			}
		}
	}
	value := ir.Null
	for i, name := range valueVars {
		f, ok := input.Field(name)
		if !ok {
			return nil, fmt.Errorf("melt value var: %w: %q", expr.ErrColumnNotFound, name)
		}
		if i == 0 {
			value = f.DType
		} else if !value.Equal(f.DType) {
			return nil, fmt.Errorf("melt value vars mix %s and %s", value, f.DType)
		}
	}
	fields = append(fields, ir.NewField("variable", ir.Utf8), ir.NewField("value", value))
	return uniqueSchema(fields)
}

func fieldsOf(e expr.Expr, input *ir.Schema) ([]ir.Field, error) {
	switch e.(type) {
	case *expr.Wildcard, *expr.Except:
		names, err := expr.ColumnsOf(e, input)
		if err != nil {
			return nil, err
		}
		fields := make([]ir.Field, len(names))
		for i, name := range names {
			fields[i], _ = input.Field(name)
		}
		return fields, nil
	}
	f, err := expr.FieldOf(e, input)
	if err != nil {
		return nil, err
	}
	return []ir.Field{f}, nil
}

func uniqueSchema(fields []ir.Field) (*ir.Schema, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, f.Name)
		}
		seen[f.Name] = true
	}
	return ir.NewSchema(fields...), nil
}
