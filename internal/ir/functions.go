package ir

// User supplied functions are held by pointer. Two references are equal
// exactly when they point at the same function value, which keeps tree
// equality meaningful for payloads that cannot be compared.

// SeriesUDF is a user function over one column.
type SeriesUDF struct {
	Name string
	Fn   func(Series) (Series, error)
}

// BinaryUDF is a user function over two columns.
type BinaryUDF struct {
	Name string
	Fn   func(a, b Series) (Series, error)
}

// AggApply is a custom aggregation callback run once per group.
type AggApply struct {
	Name string
	Fn   func(DataFrame) (DataFrame, error)
}

// PlanUDF is an externally supplied plan transformation.
type PlanUDF struct {
	Name string
	Fn   func(DataFrame) (DataFrame, error)
}

func udfName(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}

// FuncName returns a printable name for any of the function holders.
func FuncName(fn any) string {
	switch f := fn.(type) {
	case *SeriesUDF:
		if f != nil {
			return udfName(f.Name)
		}
	case *BinaryUDF:
		if f != nil {
			return udfName(f.Name)
		}
	case *AggApply:
		if f != nil {
			return udfName(f.Name)
		}
	case *PlanUDF:
		if f != nil {
			return udfName(f.Name)
		}
	}
	return "<nil>"
}

// DataFrame is the in-memory table payload of a DataFrameScan. It is owned
// by whichever plan form currently holds it and is never copied by the IR.
type DataFrame interface {
	Schema() *Schema
	Height() int
}
