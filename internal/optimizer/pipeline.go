package optimizer

import (
	"context"
	"log/slog"
	"time"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/roach88/lazyir/internal/plan"
)

// Pass is one rewrite over a Lowered plan.
type Pass struct {
	Name  string
	Apply func(ctx context.Context, l *Lowered) error
}

// Pipeline applies passes in order.
type Pipeline struct {
	passes []Pass
	logger *slog.Logger
	tracer opentracing.Tracer
	verify bool
	ids    SessionIDGenerator
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithTracer sets the tracer for per-run and per-pass spans.
// Default: opentracing.NoopTracer.
func WithTracer(tracer opentracing.Tracer) Option {
	return func(p *Pipeline) {
		p.tracer = tracer
	}
}

// WithVerify checks the post-order invariant after lowering and after
// every pass.
func WithVerify(verify bool) Option {
	return func(p *Pipeline) {
		p.verify = verify
	}
}

// WithSessionIDs sets the session id generator. Default: UUIDv7Generator.
func WithSessionIDs(ids SessionIDGenerator) Option {
	return func(p *Pipeline) {
		p.ids = ids
	}
}

// New creates a Pipeline. The passes slice is copied.
func New(passes []Pass, opts ...Option) *Pipeline {
	p := &Pipeline{
		passes: append([]Pass(nil), passes...),
		logger: slog.Default(),
		tracer: opentracing.NoopTracer{},
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Passes returns the pass names in order.
func (p *Pipeline) Passes() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name
	}
	return names
}

// Run lowers lp, applies every pass and returns the finalized plan. lp is
// consumed. On error the partially rewritten plan is discarded.
func (p *Pipeline) Run(ctx context.Context, lp plan.LogicalPlan) (plan.LogicalPlan, error) {
	session := p.ids.Generate()
	span, ctx := p.span(ctx, "optimizer.run", opentracing.Tags{
		"session": session,
		"passes":  len(p.passes),
	})
	defer span.Finish()

	l := Lower(lp)
	logger := p.logger.With("session", session)
	logger.Debug("plan lowered",
		"plans", l.Plans.Len(),
		"exprs", l.Exprs.Len(),
		"root", l.Root.String())

	if p.verify {
		if err := l.Verify(); err != nil {
			return nil, &PassError{Pass: "lower", Session: session, Err: err}
		}
	}

	for _, pass := range p.passes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.apply(ctx, logger, session, pass, l); err != nil {
			span.SetTag("error", true)
			logger.Error("pass failed", "pass", pass.Name, "error", err)
			return nil, err
		}
	}

	out, err := l.Finalize()
	if err != nil {
		return nil, err
	}
	logger.Info("plan optimized", "passes", len(p.passes))
	return out, nil
}

func (p *Pipeline) apply(ctx context.Context, logger *slog.Logger, session string, pass Pass, l *Lowered) error {
	span, ctx := p.span(ctx, "optimizer.pass", opentracing.Tag{Key: "pass", Value: pass.Name})
	defer span.Finish()

	start := time.Now()
	plans, exprs := l.Plans.Len(), l.Exprs.Len()
	if err := pass.Apply(ctx, l); err != nil {
		return &PassError{Pass: pass.Name, Session: session, Err: err}
	}
	if p.verify {
		if err := l.Verify(); err != nil {
			return &PassError{Pass: pass.Name, Session: session, Err: err}
		}
	}

	span.SetTag("plans.added", l.Plans.Len()-plans)
	span.SetTag("exprs.added", l.Exprs.Len()-exprs)
	logger.Debug("pass applied",
		"pass", pass.Name,
		"plans_added", l.Plans.Len()-plans,
		"exprs_added", l.Exprs.Len()-exprs,
		"duration", time.Since(start))
	return nil
}

// span starts a span as a child of any span already in ctx.
func (p *Pipeline) span(ctx context.Context, name string, opts ...opentracing.StartSpanOption) (opentracing.Span, context.Context) {
	if parent := opentracing.SpanFromContext(ctx); parent != nil {
		opts = append(opts, opentracing.ChildOf(parent.Context()))
	}
	span := p.tracer.StartSpan(name, opts...)
	return span, opentracing.ContextWithSpan(ctx, span)
}
