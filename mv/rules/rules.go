package rules

import (
	"fmt"

	"github.com/mitchellh/hashstructure"

	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/observability"
	"github.com/quillsql/mvrewrite/mv/plan"
	"github.com/quillsql/mvrewrite/mv/rewrite"
)

// Result is what a rule hands back to the engine: the plan it settled
// on (rewritten, or the original if nothing matched) and the trace of
// every candidate view it tried, for ExplainRewrite.
type Result struct {
	Plan mv.LogicalPlan
	Traces []*rewrite.PipelineTrace
}

// WithoutJoinGroupRule rewrites a join-free, non-aggregated query
// (Project/Filter over a single TableScan) against the catalog's
// candidate views for that table, trying each in registration order and
// committing to the first that matches.
func WithoutJoinGroupRule(log *observability.Logger, catalog mv.ViewCatalog, queryPlan mv.LogicalPlan) (*Result, error) {
	return run(log, catalog, queryPlan, rewrite.SPJStages)
}

// AggregateWithoutJoinRule rewrites a join-free grouped-aggregate query
// (Aggregate over Filter over a single TableScan) against the catalog's
// candidate views.
func AggregateWithoutJoinRule(log *observability.Logger, catalog mv.ViewCatalog, queryPlan mv.LogicalPlan) (*Result, error) {
	return run(log, catalog, queryPlan, rewrite.AggregateStages)
}

func run(log *observability.Logger, catalog mv.ViewCatalog, queryPlan mv.LogicalPlan, stagesFor func(mv.LogicalPlan) []rewrite.Stage) (*Result, error) {
	if plan.ContainsJoin(queryPlan) {
		log.Log("query plan contains a join, declining to rewrite")
		return &Result{Plan: queryPlan}, nil
	}

	tables := plan.ExtractTablesFromPlan(queryPlan)
	if len(tables) != 1 {
		log.Log("query plan references %d tables, declining to rewrite", len(tables))
		return &Result{Plan: queryPlan}, nil
	}

	candidates, ok := catalog.CandidateViewsByTable(tables[0])
	if !ok || len(candidates) == 0 {
		log.Log("no candidate views registered for table %s", tables[0])
		return &Result{Plan: queryPlan}, nil
	}

	queryParts := decompose(queryPlan)
	var traces []*rewrite.PipelineTrace
	seenComponents := map[uint64]bool{}

	for _, viewName := range candidates {
		def, ok := catalog.ViewDefinitionPlan(viewName)
		if !ok {
			continue
		}
		table, ok := catalog.ViewTablePlan(viewName)
		if !ok {
			continue
		}

		log.PushDebugContext(viewName)
		viewParts := decompose(def)
		comp := component(queryParts, viewParts)

		if sig, err := hashstructure.Hash(fmt.Sprintf("%v", *comp), nil); err == nil {
			if seenComponents[sig] {
				log.Log("candidate %s decomposes identically to an already-tried view, skipping", viewName)
				log.PopDebugContext()
				continue
			}
			seenComponents[sig] = true
		}

		ctx := mv.NewRewriteContext(viewName, def, table)
		ctx.Component = comp

		rewritten, trace := rewrite.Run(ctx, stagesFor(queryPlan), queryPlan)
		traces = append(traces, trace)
		log.Log("%s", trace.String())
		log.PopDebugContext()

		if !rewritten.Stopped {
			return &Result{Plan: rewritten.Inner, Traces: traces}, nil
		}
	}

	return &Result{Plan: queryPlan, Traces: traces}, nil
}
