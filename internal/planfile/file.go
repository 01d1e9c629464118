package planfile

// Version is the plan file format version this package reads.
const Version = 1

// File is the top level of a plan file.
type File struct {
	// Version must equal Version.
	Version int `yaml:"version"`

	// Name optionally labels the plan in logs and output.
	Name string `yaml:"name,omitempty"`

	// Plan is the root node.
	Plan *Node `yaml:"plan"`
}

// Node is one plan node. Kind selects which of the other fields apply.
type Node struct {
	Kind string `yaml:"kind"`

	// Input is the single input of every non-scan node except join.
	Input *Node `yaml:"input,omitempty"`

	// Left and Right are the inputs of a join.
	Left  *Node `yaml:"left,omitempty"`
	Right *Node `yaml:"right,omitempty"`

	// Table names the data frame a df_scan reads.
	Table string `yaml:"table,omitempty"`

	// Path, Schema and Format describe file scans. Format is the scan kind
	// of a columnar_scan; when empty it is chosen from the path extension.
	Path   string  `yaml:"path,omitempty"`
	Schema []Field `yaml:"schema,omitempty"`
	Format string  `yaml:"format,omitempty"`

	// CSV options.
	HasHeader    *bool  `yaml:"has_header,omitempty"`
	Delimiter    string `yaml:"delimiter,omitempty"`
	IgnoreErrors bool   `yaml:"ignore_errors,omitempty"`
	SkipRows     int    `yaml:"skip_rows,omitempty"`

	// Scan pushdowns.
	StopAfterNRows *int     `yaml:"stop_after_n_rows,omitempty"`
	WithColumns    []string `yaml:"with_columns,omitempty"`
	Predicate      *Expr    `yaml:"predicate,omitempty"`
	Aggregate      []*Expr  `yaml:"aggregate,omitempty"`
	Cache          bool     `yaml:"cache,omitempty"`

	// Projection and Selection are the pushdowns of a df_scan.
	Projection []*Expr `yaml:"projection,omitempty"`
	Selection  *Expr   `yaml:"selection,omitempty"`

	// Offset and Len bound a slice.
	Offset int64 `yaml:"offset,omitempty"`
	Len    int   `yaml:"len,omitempty"`

	// Exprs are the columns of a projection, local_projection or hstack.
	Exprs []*Expr `yaml:"exprs,omitempty"`

	// By and Reverse order a sort.
	By      string `yaml:"by,omitempty"`
	Reverse bool   `yaml:"reverse,omitempty"`

	// Columns are the list columns an explode flattens.
	Columns []string `yaml:"columns,omitempty"`

	// IDVars and ValueVars configure a melt.
	IDVars    []string `yaml:"id_vars,omitempty"`
	ValueVars []string `yaml:"value_vars,omitempty"`

	// Keys and Aggs configure an aggregate.
	Keys []*Expr `yaml:"keys,omitempty"`
	Aggs []*Expr `yaml:"aggs,omitempty"`

	// Join options. How is left, inner or outer and defaults to inner.
	How           string  `yaml:"how,omitempty"`
	LeftOn        []*Expr `yaml:"left_on,omitempty"`
	RightOn       []*Expr `yaml:"right_on,omitempty"`
	AllowParallel bool    `yaml:"allow_parallel,omitempty"`
	ForceParallel bool    `yaml:"force_parallel,omitempty"`

	// Distinct options.
	MaintainOrder bool     `yaml:"maintain_order,omitempty"`
	Subset        []string `yaml:"subset,omitempty"`
}

// Field is one column of a declared schema.
type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Expr is one expression node. Kind selects which of the other fields
// apply.
type Expr struct {
	Kind string `yaml:"kind"`

	// Name is the column of a col and the new name of an alias.
	Name string `yaml:"name,omitempty"`

	// Value is the payload of a lit. Type, when set, fixes the literal's
	// data type; it is also the target type of a cast.
	Value any    `yaml:"value,omitempty"`
	Type  string `yaml:"type,omitempty"`

	// Op is the operator symbol of a binary, such as ">=" or "&".
	Op    string `yaml:"op,omitempty"`
	Left  *Expr  `yaml:"left,omitempty"`
	Right *Expr  `yaml:"right,omitempty"`

	// Expr is the operand of unary kinds.
	Expr *Expr `yaml:"expr,omitempty"`

	// Reverse orders a sort descending.
	Reverse bool `yaml:"reverse,omitempty"`

	// Func is the aggregation of an agg, such as "sum" or "quantile".
	Func     string  `yaml:"func,omitempty"`
	Quantile float64 `yaml:"quantile,omitempty"`

	// Predicate, Then and Otherwise form a ternary.
	Predicate *Expr `yaml:"predicate,omitempty"`
	Then      *Expr `yaml:"then,omitempty"`
	Otherwise *Expr `yaml:"otherwise,omitempty"`

	// Periods is the distance of a shift.
	Periods int64 `yaml:"periods,omitempty"`

	// Offset and Length bound a slice.
	Offset int64 `yaml:"offset,omitempty"`
	Length int   `yaml:"length,omitempty"`
}

// Plan node kinds.
const (
	KindDataFrameScan   = "df_scan"
	KindCsvScan         = "csv_scan"
	KindColumnarScan    = "columnar_scan"
	KindSelection       = "selection"
	KindSlice           = "slice"
	KindProjection      = "projection"
	KindLocalProjection = "local_projection"
	KindSort            = "sort"
	KindExplode         = "explode"
	KindMelt            = "melt"
	KindCache           = "cache"
	KindAggregate       = "aggregate"
	KindJoin            = "join"
	KindHStack          = "hstack"
	KindDistinct        = "distinct"
)

// Expression kinds.
const (
	ExprColumn     = "col"
	ExprLiteral    = "lit"
	ExprBinary     = "binary"
	ExprAlias      = "alias"
	ExprNot        = "not"
	ExprIsNull     = "is_null"
	ExprIsNotNull  = "is_not_null"
	ExprIsUnique   = "is_unique"
	ExprDuplicated = "duplicated"
	ExprReverse    = "reverse"
	ExprExplode    = "explode"
	ExprCast       = "cast"
	ExprSort       = "sort"
	ExprAgg        = "agg"
	ExprTernary    = "ternary"
	ExprShift      = "shift"
	ExprSlice      = "slice"
	ExprWildcard   = "wildcard"
	ExprExcept     = "except"
)
