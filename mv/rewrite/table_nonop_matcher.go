package rewrite

import (
	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/plan"
)

// MatchTableNonOp confirms the single base table referenced in the query
// plan is the same table referenced in the view's definition plan. No
// compensation. It is also the first stage to see the candidate's
// ProcessedComponent, so a join found on either side is rejected here
// rather than declined silently before the pipeline runs.
func MatchTableNonOp(queryPlan mv.LogicalPlan) func(ctx *mv.RewriteContext) (CompensationExpressions, error) {
	return func(ctx *mv.RewriteContext) (CompensationExpressions, error) {
		if ctx.Component != nil && ctx.Component.HasJoins() {
			return CompensationExpressions{}, ErrJoinUnmatch.New()
		}

		queryTables := plan.ExtractTablesFromPlan(queryPlan)
		viewTables := plan.ExtractTablesFromPlan(ctx.ViewDefinition)

		if len(queryTables) != 1 || len(viewTables) != 1 || !mv.EqualFold(queryTables[0], viewTables[0]) {
			return CompensationExpressions{}, ErrPredicateUnmatch.New(len(viewTables), len(queryTables))
		}

		return OkEmpty(), nil
	}
}
