package plan

import (
	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/ir"
)

// LogicalPlan is a query plan in tree form.
//
// Optional expression fields are nil when absent. Optional list fields
// distinguish nil (absent) from empty.
type LogicalPlan interface {
	lower(ea *expr.Arena, pa *Arena) ALogicalPlan
	// Schema returns the output schema of the plan, or nil if it cannot be
	// known (for example, when an input has been taken).
	Schema() *ir.Schema
}

// DataFrameScan reads an in-memory data frame.
type DataFrameScan struct {
	DF          ir.DataFrame
	FrameSchema *ir.Schema
	Projection  []expr.Expr
	Selection   expr.Expr
}

// CsvScan reads a delimited text file.
type CsvScan struct {
	Path           string
	FileSchema     *ir.Schema
	HasHeader      bool
	Delimiter      byte
	IgnoreErrors   bool
	SkipRows       int
	StopAfterNRows *int
	WithColumns    []string
	Predicate      expr.Expr
	Aggregate      []expr.Expr
	Cache          bool
}

// ColumnarScan reads a columnar file of a registered ScanKind.
type ColumnarScan struct {
	Kind           string
	Path           string
	FileSchema     *ir.Schema
	WithColumns    []string
	Predicate      expr.Expr
	Aggregate      []expr.Expr
	StopAfterNRows *int
	Cache          bool
}

// Selection keeps the rows of Input where Predicate holds.
type Selection struct {
	Input     LogicalPlan
	Predicate expr.Expr
}

// Slice keeps Len rows starting at Offset. A negative Offset counts from
// the end.
type Slice struct {
	Input  LogicalPlan
	Offset int64
	Len    int
}

// Projection evaluates Exprs against Input.
type Projection struct {
	Exprs        []expr.Expr
	Input        LogicalPlan
	OutputSchema *ir.Schema
}

// LocalProjection is a Projection that optimizer passes must not push
// down.
type LocalProjection struct {
	Exprs        []expr.Expr
	Input        LogicalPlan
	OutputSchema *ir.Schema
}

// Sort orders Input by one column.
type Sort struct {
	Input    LogicalPlan
	ByColumn string
	Reverse  bool
}

// Explode turns each list element of Columns into its own row.
type Explode struct {
	Input   LogicalPlan
	Columns []string
}

// Melt unpivots ValueVars into variable/value rows, keeping IDVars.
type Melt struct {
	Input        LogicalPlan
	IDVars       []string
	ValueVars    []string
	OutputSchema *ir.Schema
}

// Cache marks Input to be evaluated once and reused.
type Cache struct {
	Input LogicalPlan
}

// Aggregate groups Input by Keys and evaluates Aggs per group. When Apply
// is set it replaces Aggs as the per-group computation.
type Aggregate struct {
	Input        LogicalPlan
	Keys         []expr.Expr
	Aggs         []expr.Expr
	OutputSchema *ir.Schema
	Apply        *ir.AggApply
}

// Join joins two inputs on pairwise equality of LeftOn and RightOn.
type Join struct {
	InputLeft     LogicalPlan
	InputRight    LogicalPlan
	OutputSchema  *ir.Schema
	How           ir.JoinType
	LeftOn        []expr.Expr
	RightOn       []expr.Expr
	AllowParallel bool
	ForceParallel bool
}

// HStack adds the columns computed by Exprs to Input.
type HStack struct {
	Input        LogicalPlan
	Exprs        []expr.Expr
	OutputSchema *ir.Schema
}

// Distinct removes duplicate rows, comparing only Subset when it is set.
type Distinct struct {
	Input         LogicalPlan
	MaintainOrder bool
	Subset        []string
}

// UDF runs an external transformation over Input. A nil OutputSchema
// means the schema is unchanged.
type UDF struct {
	Input              LogicalPlan
	Function           *ir.PlanUDF
	ProjectionPushdown bool
	PredicatePushdown  bool
	OutputSchema       *ir.Schema
}

func (lp *DataFrameScan) Schema() *ir.Schema   { return lp.FrameSchema }
func (lp *CsvScan) Schema() *ir.Schema         { return lp.FileSchema }
func (lp *ColumnarScan) Schema() *ir.Schema    { return lp.FileSchema }
func (lp *Selection) Schema() *ir.Schema       { return schemaOf(lp.Input) }
func (lp *Slice) Schema() *ir.Schema           { return schemaOf(lp.Input) }
func (lp *Projection) Schema() *ir.Schema      { return lp.OutputSchema }
func (lp *LocalProjection) Schema() *ir.Schema { return lp.OutputSchema }
func (lp *Sort) Schema() *ir.Schema            { return schemaOf(lp.Input) }
func (lp *Explode) Schema() *ir.Schema         { return schemaOf(lp.Input) }
func (lp *Melt) Schema() *ir.Schema            { return lp.OutputSchema }
func (lp *Cache) Schema() *ir.Schema           { return schemaOf(lp.Input) }
func (lp *Aggregate) Schema() *ir.Schema       { return lp.OutputSchema }
func (lp *Join) Schema() *ir.Schema            { return lp.OutputSchema }
func (lp *HStack) Schema() *ir.Schema          { return lp.OutputSchema }
func (lp *Distinct) Schema() *ir.Schema        { return schemaOf(lp.Input) }

func (lp *UDF) Schema() *ir.Schema {
	if lp.OutputSchema != nil {
		return lp.OutputSchema
	}
	return schemaOf(lp.Input)
}

func schemaOf(lp LogicalPlan) *ir.Schema {
	if lp == nil {
		return nil
	}
	return lp.Schema()
}
