package planfile

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/ir"
	"github.com/roach88/lazyir/internal/plan"
)

type builder struct {
	tables TableSource
	scans  *plan.ScanRegistry
	logger *slog.Logger
}

// Build converts a decoded plan file into a plan tree.
func Build(ctx context.Context, f *File, opts ...Option) (plan.LogicalPlan, error) {
	if f == nil || f.Plan == nil {
		return nil, ErrMissingField.New("file", "plan file", "plan")
	}
	b := &builder{scans: plan.DefaultScanKinds, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}

	lp, err := b.node(ctx, f.Plan, "plan")
	if err != nil {
		return nil, err
	}
	b.logger.Debug("plan file built", "name", f.Name, "schema", lp.Schema().String())
	return lp, nil
}

func (b *builder) node(ctx context.Context, n *Node, path string) (plan.LogicalPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrMissingField.New(path, "node", "kind")
	}
	switch n.Kind {
	case "":
		return nil, ErrMissingField.New(path, "node", "kind")
	case KindDataFrameScan:
		return b.dataFrameScan(ctx, n, path)
	case KindCsvScan:
		return csvScan(n, path)
	case KindColumnarScan:
		return b.columnarScan(n, path)
	case KindJoin:
		return b.join(ctx, n, path)
	case KindSelection, KindSlice, KindProjection, KindLocalProjection, KindSort,
		KindExplode, KindMelt, KindCache, KindAggregate, KindHStack, KindDistinct:
		return b.unary(ctx, n, path)
	}
	return nil, ErrUnknownPlanKind.New(path, n.Kind)
}

func (b *builder) dataFrameScan(ctx context.Context, n *Node, path string) (plan.LogicalPlan, error) {
	if n.Table == "" {
		return nil, ErrMissingField.New(path, n.Kind, "table")
	}
	if b.tables == nil {
		return nil, ErrTable.Wrap(fmt.Errorf("no table source configured"), path, n.Table)
	}
	df, err := b.tables.Table(ctx, n.Table)
	if err != nil {
		return nil, ErrTable.Wrap(err, path, n.Table)
	}
	projection, err := exprList(n.Projection, path+".projection")
	if err != nil {
		return nil, err
	}
	selection, err := optExpr(n.Selection, path+".selection")
	if err != nil {
		return nil, err
	}
	b.logger.Debug("table resolved", "path", path, "table", n.Table, "height", df.Height())
	return &plan.DataFrameScan{
		DF:          df,
		FrameSchema: df.Schema(),
		Projection:  projection,
		Selection:   selection,
	}, nil
}

func csvScan(n *Node, path string) (plan.LogicalPlan, error) {
	schema, err := fileSchema(n, path)
	if err != nil {
		return nil, err
	}
	delimiter := byte(',')
	if n.Delimiter != "" {
		if len(n.Delimiter) != 1 {
			return nil, ErrInvalidField.New(path+".delimiter", "delimiter", strconv.Quote(n.Delimiter))
		}
		delimiter = n.Delimiter[0]
	}
	hasHeader := true
	if n.HasHeader != nil {
		hasHeader = *n.HasHeader
	}
	predicate, aggregate, err := scanPushdowns(n, path)
	if err != nil {
		return nil, err
	}
	return &plan.CsvScan{
		Path:           n.Path,
		FileSchema:     schema,
		HasHeader:      hasHeader,
		Delimiter:      delimiter,
		IgnoreErrors:   n.IgnoreErrors,
		SkipRows:       n.SkipRows,
		StopAfterNRows: n.StopAfterNRows,
		WithColumns:    n.WithColumns,
		Predicate:      predicate,
		Aggregate:      aggregate,
		Cache:          n.Cache,
	}, nil
}

func (b *builder) columnarScan(n *Node, path string) (plan.LogicalPlan, error) {
	schema, err := fileSchema(n, path)
	if err != nil {
		return nil, err
	}
	format := n.Format
	if format == "" {
		k, ok := b.scans.ForPath(n.Path)
		if !ok {
			return nil, ErrMissingField.New(path, n.Kind, "format")
		}
		format = k.Name
	}
	scan, err := plan.NewColumnarScan(b.scans, format, n.Path, schema)
	if err != nil {
		return nil, ErrInvalidField.Wrap(err, path+".format", "format", strconv.Quote(format))
	}
	predicate, aggregate, err := scanPushdowns(n, path)
	if err != nil {
		return nil, err
	}
	scan.WithColumns = n.WithColumns
	scan.Predicate = predicate
	scan.Aggregate = aggregate
	scan.StopAfterNRows = n.StopAfterNRows
	scan.Cache = n.Cache
	return scan, nil
}

func fileSchema(n *Node, path string) (*ir.Schema, error) {
	if n.Path == "" {
		return nil, ErrMissingField.New(path, n.Kind, "path")
	}
	if len(n.Schema) == 0 {
		return nil, ErrMissingField.New(path, n.Kind, "schema")
	}
	fields := make([]ir.Field, len(n.Schema))
	for i, f := range n.Schema {
		fpath := fmt.Sprintf("%s.schema[%d]", path, i)
		if f.Name == "" {
			return nil, ErrMissingField.New(fpath, "field", "name")
		}
		dt, err := ir.ParseDataType(f.Type)
		if err != nil {
			return nil, ErrInvalidField.Wrap(err, fpath, "type", strconv.Quote(f.Type))
		}
		fields[i] = ir.NewField(f.Name, dt)
	}
	return ir.NewSchema(fields...), nil
}

func scanPushdowns(n *Node, path string) (expr.Expr, []expr.Expr, error) {
	predicate, err := optExpr(n.Predicate, path+".predicate")
	if err != nil {
		return nil, nil, err
	}
	aggregate, err := exprList(n.Aggregate, path+".aggregate")
	if err != nil {
		return nil, nil, err
	}
	return predicate, aggregate, nil
}

func (b *builder) join(ctx context.Context, n *Node, path string) (plan.LogicalPlan, error) {
	if n.Left == nil {
		return nil, ErrMissingField.New(path, n.Kind, "left")
	}
	if n.Right == nil {
		return nil, ErrMissingField.New(path, n.Kind, "right")
	}
	if len(n.LeftOn) == 0 {
		return nil, ErrMissingField.New(path, n.Kind, "left_on")
	}
	if len(n.LeftOn) != len(n.RightOn) {
		return nil, ErrInvalidField.New(path+".right_on", "length", len(n.RightOn))
	}
	how := ir.JoinInner
	if n.How != "" {
		var ok bool
		if how, ok = ir.ParseJoinType(n.How); !ok {
			return nil, ErrInvalidField.New(path+".how", "join type", strconv.Quote(n.How))
		}
	}

	left, err := b.node(ctx, n.Left, path+".left")
	if err != nil {
		return nil, err
	}
	right, err := b.node(ctx, n.Right, path+".right")
	if err != nil {
		return nil, err
	}
	leftOn, err := exprList(n.LeftOn, path+".left_on")
	if err != nil {
		return nil, err
	}
	rightOn, err := exprList(n.RightOn, path+".right_on")
	if err != nil {
		return nil, err
	}
	schema, err := plan.JoinSchema(left.Schema(), right.Schema(), rightOn)
	if err != nil {
		return nil, ErrSchema.Wrap(err, path, n.Kind)
	}
	return &plan.Join{
		InputLeft:     left,
		InputRight:    right,
		OutputSchema:  schema,
		How:           how,
		LeftOn:        leftOn,
		RightOn:       rightOn,
		AllowParallel: n.AllowParallel,
		ForceParallel: n.ForceParallel,
	}, nil
}

func (b *builder) unary(ctx context.Context, n *Node, path string) (plan.LogicalPlan, error) {
	if n.Input == nil {
		return nil, ErrMissingField.New(path, n.Kind, "input")
	}
	input, err := b.node(ctx, n.Input, path+".input")
	if err != nil {
		return nil, err
	}
	schema := input.Schema()

	switch n.Kind {
	case KindSelection:
		if n.Predicate == nil {
			return nil, ErrMissingField.New(path, n.Kind, "predicate")
		}
		predicate, err := toExpr(n.Predicate, path+".predicate")
		if err != nil {
			return nil, err
		}
		return &plan.Selection{Input: input, Predicate: predicate}, nil

	case KindSlice:
		return &plan.Slice{Input: input, Offset: n.Offset, Len: n.Len}, nil

	case KindProjection, KindLocalProjection, KindHStack:
		if len(n.Exprs) == 0 {
			return nil, ErrMissingField.New(path, n.Kind, "exprs")
		}
		exprs, err := exprList(n.Exprs, path+".exprs")
		if err != nil {
			return nil, err
		}
		if n.Kind == KindHStack {
			out, err := plan.HStackSchema(exprs, schema)
			if err != nil {
				return nil, ErrSchema.Wrap(err, path, n.Kind)
			}
			return &plan.HStack{Input: input, Exprs: exprs, OutputSchema: out}, nil
		}
		out, err := plan.ProjectSchema(exprs, schema)
		if err != nil {
			return nil, ErrSchema.Wrap(err, path, n.Kind)
		}
		if n.Kind == KindLocalProjection {
			return &plan.LocalProjection{Exprs: exprs, Input: input, OutputSchema: out}, nil
		}
		return &plan.Projection{Exprs: exprs, Input: input, OutputSchema: out}, nil

	case KindSort:
		if n.By == "" {
			return nil, ErrMissingField.New(path, n.Kind, "by")
		}
		if _, ok := schema.Field(n.By); !ok {
			return nil, ErrInvalidField.New(path+".by", "column", strconv.Quote(n.By))
		}
		return &plan.Sort{Input: input, ByColumn: n.By, Reverse: n.Reverse}, nil

	case KindExplode:
		if len(n.Columns) == 0 {
			return nil, ErrMissingField.New(path, n.Kind, "columns")
		}
		return &plan.Explode{Input: input, Columns: n.Columns}, nil

	case KindMelt:
		out, err := plan.MeltSchema(schema, n.IDVars, n.ValueVars)
		if err != nil {
			return nil, ErrSchema.Wrap(err, path, n.Kind)
		}
		return &plan.Melt{Input: input, IDVars: n.IDVars, ValueVars: n.ValueVars, OutputSchema: out}, nil

	case KindCache:
		return &plan.Cache{Input: input}, nil

	case KindAggregate:
		if len(n.Aggs) == 0 {
			return nil, ErrMissingField.New(path, n.Kind, "aggs")
		}
		keys, err := exprList(n.Keys, path+".keys")
		if err != nil {
			return nil, err
		}
		aggs, err := exprList(n.Aggs, path+".aggs")
		if err != nil {
			return nil, err
		}
		out, err := plan.AggregateSchema(keys, aggs, schema)
		if err != nil {
			return nil, ErrSchema.Wrap(err, path, n.Kind)
		}
		return &plan.Aggregate{Input: input, Keys: keys, Aggs: aggs, OutputSchema: out}, nil

	case KindDistinct:
		return &plan.Distinct{Input: input, MaintainOrder: n.MaintainOrder, Subset: n.Subset}, nil
	}
	return nil, ErrUnknownPlanKind.New(path, n.Kind)
}
