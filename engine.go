// Package mvrewrite rewrites a join-free logical query plan to scan a
// materialized view instead of its base table, when the catalog holds a
// view that provably answers the query. A small Builder assembles an
// Engine from a catalog and logging options, and Engine.Rewrite is the
// one entrypoint client code calls.
package mvrewrite

import (
	opentracing "github.com/opentracing/opentracing-go"

	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/observability"
	"github.com/quillsql/mvrewrite/mv/plan"
	"github.com/quillsql/mvrewrite/mv/rules"
)

// Builder assembles an Engine, mirroring analyzer.Builder's fluent
// With* configuration methods.
type Builder struct {
	catalog mv.ViewCatalog
	debug bool
	verbose bool
}

// NewBuilder creates a Builder over the given catalog.
func NewBuilder(catalog mv.ViewCatalog) *Builder {
	return &Builder{catalog: catalog}
}

// WithDebug turns on per-candidate debug logging.
func (b *Builder) WithDebug() *Builder {
	b.debug = true
	return b
}

// WithVerbose turns on full plan-string logging of each Rewrite call's
// input and output plans.
func (b *Builder) WithVerbose() *Builder {
	b.verbose = true
	return b
}

// Build returns the configured Engine.
func (b *Builder) Build() *Engine {
	return &Engine{
		catalog: b.catalog,
		log: observability.NewLogger(b.debug, b.verbose),
	}
}

// Engine is the rewriter's entrypoint. One Engine may be shared across
// concurrent Rewrite calls — the catalog it reads is RWMutex-safe, and
// every Logger and RewriteContext a call builds is local to that call.
type Engine struct {
	catalog mv.ViewCatalog
	log *observability.Logger
}

// NewDefault builds an Engine with default (non-debug) logging.
func NewDefault(catalog mv.ViewCatalog) *Engine {
	return NewBuilder(catalog).Build()
}

// Result is what Rewrite returns: the plan the engine settled on (the
// original, unchanged, if no candidate matched) and the diagnostic trace
// of every candidate view it tried.
type Result struct {
	Plan mv.LogicalPlan
	Rewrote bool
	Traces []*ExplainTrace
}

// Rewrite attempts to answer queryPlan from a materialized view. It
// dispatches to the aggregate rule if the plan's root (ignoring a
// Project) is an Aggregate, and to the plain select/project rule
// otherwise.
func (e *Engine) Rewrite(queryPlan mv.LogicalPlan) (*Result, error) {
	span, finish := observability.StartSpan("mvrewrite.Rewrite", opentracing.Tags{
		"plan": queryPlan.String(),
	})
	defer finish()

	log := observability.NewLogger(e.log.Debug, e.log.Verbose)
	log.PushDebugContext("rewrite")
	defer log.PopDebugContext()
	log.LogPlan("input plan", queryPlan)

	var (
		res *rules.Result
		err error
	)
	if isAggregateQuery(queryPlan) {
		res, err = rules.AggregateWithoutJoinRule(log, e.catalog, queryPlan)
	} else {
		res, err = rules.WithoutJoinGroupRule(log, e.catalog, queryPlan)
	}
	if err != nil {
		span.SetTag("error", true)
		return nil, err
	}

	rewrote := res.Plan != queryPlan
	log.LogPlan("output plan", res.Plan)
	span.SetTag("rewrote", rewrote)

	return &Result{
		Plan: res.Plan,
		Rewrote: rewrote,
		Traces: explainTraces(res.Traces),
	}, nil
}

// isAggregateQuery reports whether p, after stripping an optional
// top-level Project, is rooted at an Aggregate.
func isAggregateQuery(p mv.LogicalPlan) bool {
	if pr, ok := p.(*plan.Project); ok {
		p = pr.Child()
	}
	_, ok := p.(*plan.Aggregate)
	return ok
}
