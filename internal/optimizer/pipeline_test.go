package optimizer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyir/internal/expr"
	"github.com/roach88/lazyir/internal/plan"
	"github.com/roach88/lazyir/internal/testutil"
)

func scan() *plan.DataFrameScan {
	df := testutil.PeopleFrame()
	return &plan.DataFrameScan{DF: df, FrameSchema: df.Schema()}
}

func newPipeline(passes []Pass, opts ...Option) *Pipeline {
	opts = append([]Option{
		WithLogger(testutil.DiscardLogger()),
		WithSessionIDs(testutil.NewFixedSessionIDs("")),
	}, opts...)
	return New(passes, opts...)
}

func TestRunWithoutPassesRoundTrips(t *testing.T) {
	s := scan()
	build := func() plan.LogicalPlan {
		return &plan.Selection{Input: s, Predicate: expr.Gt(expr.Col("age"), expr.Lit(30))}
	}

	got, err := newPipeline(nil, WithVerify(true)).Run(context.Background(), build())

	require.NoError(t, err)
	assert.Equal(t, build(), got)
}

func TestRunAppliesPassesInOrder(t *testing.T) {
	var order []string
	record := func(name string) Pass {
		return Pass{Name: name, Apply: func(context.Context, *Lowered) error {
			order = append(order, name)
			return nil
		}}
	}
	p := newPipeline([]Pass{record("a"), record("b"), record("c")})

	_, err := p.Run(context.Background(), scan())

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, []string{"a", "b", "c"}, p.Passes())
}

func TestRunWrapsPassError(t *testing.T) {
	boom := errors.New("boom")
	p := newPipeline([]Pass{{Name: "explode", Apply: func(context.Context, *Lowered) error { return boom }}})

	_, err := p.Run(context.Background(), scan())

	require.ErrorIs(t, err, boom)
	var pe *PassError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "explode", pe.Pass)
	assert.Equal(t, "session-1", pe.Session)
	assert.Equal(t, "pass explode (session=session-1): boom", err.Error())
}

func TestRunVerifiesAfterEachPass(t *testing.T) {
	// Point the root at a node appended after it.
	breakOrder := Pass{Name: "break", Apply: func(_ context.Context, l *Lowered) error {
		late := l.Plans.Add(plan.ADataFrameScan{})
		l.Plans.Replace(l.Root, plan.ACache{Input: late})
		return nil
	}}

	_, err := newPipeline([]Pass{breakOrder}, WithVerify(true)).
		Run(context.Background(), &plan.Cache{Input: scan()})

	var pe *PassError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "break", pe.Pass)
	var ove *plan.OrderViolationError
	assert.True(t, errors.As(err, &ove))

	_, err = newPipeline([]Pass{breakOrder}).Run(context.Background(), &plan.Cache{Input: scan()})
	assert.NoError(t, err, "verification is off by default")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	p := newPipeline([]Pass{{Name: "x", Apply: func(context.Context, *Lowered) error {
		called = true
		return nil
	}}})

	_, err := p.Run(ctx, scan())

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRunTracesEachPass(t *testing.T) {
	tracer := mocktracer.New()
	p := newPipeline(DefaultPasses(), WithTracer(tracer))

	_, err := p.Run(context.Background(), scan())
	require.NoError(t, err)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 3)
	run := spans[2]
	assert.Equal(t, "optimizer.run", run.OperationName)
	assert.Equal(t, "session-1", run.Tag("session"))
	for i, name := range []string{"fold_constants", "combine_selections"} {
		assert.Equal(t, "optimizer.pass", spans[i].OperationName)
		assert.Equal(t, name, spans[i].Tag("pass"))
		assert.Equal(t, run.SpanContext.SpanID, spans[i].ParentID)
	}
}

func TestRunLogsSession(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := New(DefaultPasses(), WithLogger(logger), WithSessionIDs(testutil.NewFixedSessionIDs("log")))

	_, err := p.Run(context.Background(), scan())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"plan lowered"`)
	assert.Contains(t, out, `"msg":"pass applied"`)
	assert.Contains(t, out, `"pass":"combine_selections"`)
	assert.Contains(t, out, `"session":"log-1"`)
}

func TestLoweredFinalizeOnce(t *testing.T) {
	l := Lower(scan())
	require.NoError(t, l.Verify())

	_, err := l.Finalize()
	require.NoError(t, err)
	_, err = l.Finalize()
	assert.ErrorIs(t, err, ErrFinalized)
}

func TestUUIDv7Generator(t *testing.T) {
	var g UUIDv7Generator
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestDefaultPassesKeepPlanWithNothingToDo(t *testing.T) {
	s := scan()
	build := func() plan.LogicalPlan {
		return &plan.HStack{
			Input: s,
			Exprs: []expr.Expr{expr.As(expr.Mul(expr.Col("age"), expr.Lit(2)), "double_age")},
		}
	}

	got, err := newPipeline(DefaultPasses(), WithVerify(true)).Run(context.Background(), build())

	require.NoError(t, err)
	assert.Equal(t, build(), got)
}
