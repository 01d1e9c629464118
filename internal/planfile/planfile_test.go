package planfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/frame"
	"github.com/roach88/lazyir/internal/ir"
	"github.com/roach88/lazyir/internal/plan"
	"github.com/roach88/lazyir/internal/testutil"
)

func load(t *testing.T, path string, tables frame.Tables) plan.LogicalPlan {
	t.Helper()
	lp, err := Load(context.Background(), path,
		WithTables(tables),
		WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)
	return lp
}

// errText is the message of err followed by that of its cause.
func errText(err error) string {
	text := err.Error()
	if e, ok := err.(*errors.Error); ok && e.Cause() != nil {
		text += " " + e.Cause().Error()
	}
	return text
}

func TestLoadYAML(t *testing.T) {
	tables := testutil.Tables()
	lp := load(t, "testdata/spend_by_person.yaml", tables)

	sort, ok := lp.(*plan.Sort)
	require.True(t, ok, "root is %T", lp)
	assert.Equal(t, "total", sort.ByColumn)
	assert.True(t, sort.Reverse)
	assert.Equal(t, "{name: str, total: f64, orders: u32}", lp.Schema().String())

	agg := sort.Input.(*plan.Aggregate)
	assert.Equal(t, expr.Cols("name"), agg.Keys)
	assert.Nil(t, agg.Apply)

	join := agg.Input.(*plan.Join)
	assert.Equal(t, ir.JoinInner, join.How)
	assert.Equal(t, "{id: i64, name: str, age: i64, order_id: i64, total: f64}", join.Schema().String())

	sel := join.InputLeft.(*plan.Selection)
	assert.Equal(t, expr.Gt(expr.Col("age"), expr.Lit(30)), sel.Predicate)

	scan := sel.Input.(*plan.DataFrameScan)
	assert.Same(t, tables["people"], scan.DF)
	assert.Nil(t, scan.Projection)
	assert.Nil(t, scan.Selection)
}

func TestLoadCUE(t *testing.T) {
	lp := load(t, "testdata/events.cue", nil)

	slice := lp.(*plan.Slice)
	assert.Equal(t, 5, slice.Len)
	assert.Equal(t, int64(0), slice.Offset)

	proj := slice.Input.(*plan.Projection)
	assert.Equal(t, "{id: i64, x: f64, x2: f64}", proj.Schema().String())

	scan := proj.Input.(*plan.ColumnarScan)
	assert.Equal(t, "parquet", scan.Kind)
	assert.Equal(t, "data/events.parquet", scan.Path)
	assert.Equal(t, &expr.IsNotNull{Expr: expr.Col("x")}, scan.Predicate)
	assert.Nil(t, scan.StopAfterNRows)
}

func TestLoadJSON(t *testing.T) {
	lp := load(t, "testdata/users.json", nil)

	scan := lp.(*plan.CsvScan)
	assert.Equal(t, byte(';'), scan.Delimiter)
	assert.False(t, scan.HasHeader)
	assert.Equal(t, []string{"id"}, scan.WithColumns)
	require.NotNil(t, scan.StopAfterNRows)
	assert.Equal(t, 100, *scan.StopAfterNRows)
	assert.Equal(t, "{id: i64, tags: list[str]}", scan.Schema().String())
}

func TestLoadedPlanRoundTrips(t *testing.T) {
	tables := testutil.Tables()
	for _, path := range []string{
		"testdata/spend_by_person.yaml",
		"testdata/events.cue",
		"testdata/users.json",
	} {
		t.Run(path, func(t *testing.T) {
			ea, pa := expr.NewArena(), plan.NewArena()
			root := plan.ToALP(load(t, path, tables), ea, pa)
			require.NoError(t, plan.VerifyPostOrder(root, ea, pa))
			assert.Equal(t, load(t, path, tables), plan.NodeToLP(root, ea, pa))
		})
	}
}

func TestDecodeYAMLRejectsUnknownFields(t *testing.T) {
	_, err := DecodeYAML([]byte("version: 1\nplan:\n  kind: cache\n  inputt: {kind: df_scan}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inputt")
}

func TestDecodeYAMLVersion(t *testing.T) {
	_, err := DecodeYAML([]byte("version: 2\nplan: {kind: cache}\n"))
	assert.True(t, ErrVersion.Is(err), "got %v", err)

	_, err = DecodeYAML([]byte("version: 1\n"))
	assert.True(t, ErrMissingField.Is(err), "got %v", err)

	_, err = DecodeYAML(nil)
	assert.True(t, ErrMissingField.Is(err), "got %v", err)
}

func TestDecodeKeepsErrorKind(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	_, err := Decode(write("v2.yaml", "version: 2\nplan: {kind: cache}\n"))
	assert.True(t, ErrVersion.Is(err), "got %v", err)

	_, err = Decode(write("bad.yaml", "version: [\n"))
	assert.True(t, ErrRead.Is(err), "got %v", err)

	_, err = Decode(filepath.Join(dir, "missing.yaml"))
	require.True(t, ErrRead.Is(err), "got %v", err)
	assert.ErrorIs(t, err.(*errors.Error).Cause(), os.ErrNotExist)
}

func TestDecodeCUERejectsUnknownPlanKind(t *testing.T) {
	_, err := DecodeCUE("bad.cue", []byte(`version: 1, plan: {kind: "bogus"}`))
	assert.True(t, ErrRead.Is(err), "got %v", err)
}

func TestDecodeCUERejectsStrayTopLevelField(t *testing.T) {
	_, err := DecodeCUE("bad.cue", []byte(`version: 1, plan: {kind: "cache"}, extra: 1`))
	assert.True(t, ErrRead.Is(err), "got %v", err)
}

func TestBuildErrors(t *testing.T) {
	scan := "{kind: df_scan, table: people}"
	tests := []struct {
		name string
		plan string
		kind *errors.Kind
		msg  string
	}{
		{
			name: "unknown plan kind",
			plan: "{kind: scan}",
			kind: ErrUnknownPlanKind,
			msg:  `plan: unknown plan kind "scan"`,
		},
		{
			name: "missing input",
			plan: "{kind: cache}",
			kind: ErrMissingField,
			msg:  "plan: cache requires input",
		},
		{
			name: "unknown expression kind",
			plan: "{kind: selection, input: " + scan + ", predicate: {kind: regex}}",
			kind: ErrUnknownExprKind,
			msg:  `plan.predicate: unknown expression kind "regex"`,
		},
		{
			name: "missing operand",
			plan: "{kind: selection, input: " + scan + ", predicate: {kind: not}}",
			kind: ErrMissingField,
			msg:  "plan.predicate: not requires expr",
		},
		{
			name: "bad operator",
			plan: "{kind: selection, input: " + scan + ", predicate: {kind: binary, op: '<>', left: {kind: col, name: age}, right: {kind: lit, value: 1}}}",
			kind: ErrInvalidField,
			msg:  "plan.predicate.op",
		},
		{
			name: "unknown table",
			plan: "{kind: df_scan, table: pets}",
			kind: ErrTable,
			msg:  "table not found",
		},
		{
			name: "missing column",
			plan: "{kind: projection, input: " + scan + ", exprs: [{kind: col, name: salary}]}",
			kind: ErrSchema,
			msg:  `column not found: "salary"`,
		},
		{
			name: "nested path",
			plan: "{kind: cache, input: {kind: slice, input: {kind: projection, input: " + scan + "}}}",
			kind: ErrMissingField,
			msg:  "plan.input.input: projection requires exprs",
		},
		{
			name: "bad literal",
			plan: "{kind: selection, input: " + scan + ", predicate: {kind: lit, type: i64, value: abc}}",
			kind: ErrInvalidField,
			msg:  "plan.predicate.value",
		},
		{
			name: "unknown format",
			plan: "{kind: columnar_scan, path: a.orc, format: orc, schema: [{name: a, type: i64}]}",
			kind: ErrInvalidField,
			msg:  "unknown scan kind",
		},
		{
			name: "unrecognised extension",
			plan: "{kind: columnar_scan, path: a.orc, schema: [{name: a, type: i64}]}",
			kind: ErrMissingField,
			msg:  "columnar_scan requires format",
		},
		{
			name: "bad field type",
			plan: "{kind: csv_scan, path: a.csv, schema: [{name: a, type: int}]}",
			kind: ErrInvalidField,
			msg:  "plan.schema[0]",
		},
		{
			name: "long delimiter",
			plan: "{kind: csv_scan, path: a.csv, delimiter: '::', schema: [{name: a, type: i64}]}",
			kind: ErrInvalidField,
			msg:  "plan.delimiter",
		},
		{
			name: "join keys differ in length",
			plan: "{kind: join, left: " + scan + ", right: " + scan + ", left_on: [{kind: col, name: id}], right_on: []}",
			kind: ErrInvalidField,
			msg:  "plan.right_on",
		},
		{
			name: "bad join type",
			plan: "{kind: join, how: cross, left: " + scan + ", right: " + scan + ", left_on: [{kind: col, name: id}], right_on: [{kind: col, name: id}]}",
			kind: ErrInvalidField,
			msg:  "join type",
		},
		{
			name: "sort by unknown column",
			plan: "{kind: sort, by: height, input: " + scan + "}",
			kind: ErrInvalidField,
			msg:  "plan.by",
		},
		{
			name: "quantile out of range",
			plan: "{kind: aggregate, input: " + scan + ", aggs: [{kind: agg, func: quantile, quantile: 2, expr: {kind: col, name: age}}]}",
			kind: ErrInvalidField,
			msg:  "plan.aggs[0].quantile",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := DecodeYAML([]byte("version: 1\nplan: " + tt.plan + "\n"))
			require.NoError(t, err)

			_, err = Build(context.Background(), f,
				WithTables(testutil.Tables()),
				WithLogger(testutil.DiscardLogger()))
			require.Error(t, err)
			assert.True(t, tt.kind.Is(err), "got %v", err)
			assert.Contains(t, errText(err), tt.msg)
		})
	}
}

func TestBuildWithoutTables(t *testing.T) {
	f, err := DecodeYAML([]byte("version: 1\nplan: {kind: df_scan, table: people}\n"))
	require.NoError(t, err)

	_, err = Build(context.Background(), f, WithLogger(testutil.DiscardLogger()))
	assert.True(t, ErrTable.Is(err), "got %v", err)
}

func TestBuildHonoursCancellation(t *testing.T) {
	f, err := DecodeYAML([]byte("version: 1\nplan: {kind: df_scan, table: people}\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, f, WithTables(testutil.Tables()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildCustomScanKind(t *testing.T) {
	reg := plan.NewScanRegistry()
	require.NoError(t, reg.Register(plan.ScanKind{Name: "orc", Extensions: []string{".orc"}}))

	f, err := DecodeYAML([]byte("version: 1\nplan: {kind: columnar_scan, path: a.orc, schema: [{name: a, type: i64}]}\n"))
	require.NoError(t, err)

	lp, err := Build(context.Background(), f, WithScanKinds(reg), WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)
	assert.Equal(t, "orc", lp.(*plan.ColumnarScan).Kind)
}

func TestLiteralCoercion(t *testing.T) {
	tests := []struct {
		file Expr
		want expr.Expr
	}{
		{Expr{Kind: ExprLiteral, Value: 7}, expr.Lit(7)},
		{Expr{Kind: ExprLiteral, Value: "x"}, expr.Lit("x")},
		{Expr{Kind: ExprLiteral}, &expr.Literal{Value: ir.NullValue{}}},
		{Expr{Kind: ExprLiteral, Type: "i64", Value: "42"}, expr.Lit(42)},
		{Expr{Kind: ExprLiteral, Type: "f64", Value: 1}, expr.Lit(1.0)},
		{Expr{Kind: ExprLiteral, Type: "bool", Value: "true"}, expr.Lit(true)},
		{Expr{Kind: ExprLiteral, Type: "u64", Value: 3}, expr.Lit(uint64(3))},
		{Expr{Kind: ExprLiteral, Type: "str", Value: 12}, expr.Lit("12")},
		{Expr{Kind: ExprLiteral, Type: "i32", Value: 7}, &expr.Cast{Expr: expr.Lit(7), DType: ir.Int32}},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := toExpr(&tt.file, "lit")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLiteralCoercionFailures(t *testing.T) {
	for _, file := range []Expr{
		{Kind: ExprLiteral, Type: "u64", Value: -1},
		{Kind: ExprLiteral, Type: "date32", Value: 1},
		{Kind: ExprLiteral, Value: []any{1}},
	} {
		_, err := toExpr(&file, "lit")
		assert.True(t, ErrInvalidField.Is(err), "%+v: got %v", file, err)
	}
}
