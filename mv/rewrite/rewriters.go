package rewrite

import (
	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/expression"
	"github.com/quillsql/mvrewrite/mv/plan"
)

// TableOrViewRewrite returns cur unchanged: Run has already seeded the
// working plan with the candidate view's table plan, wrapped so nothing
// above it recurses back into a fresh rewrite attempt. It has no
// compensation to apply beyond what MatchTableNonOp already confirmed.
func TableOrViewRewrite(ctx *mv.RewriteContext, _ CompensationExpressions, cur mv.LogicalPlan) (mv.LogicalPlan, error) {
	return cur, nil
}

// PredicateRewrite layers a single Filter over cur whose condition is the
// AND of every compensation expression MatchPredicate returned — the
// query predicates the view's stored rows do not already satisfy. With no
// compensation, cur is returned without a Filter.
func PredicateRewrite(ctx *mv.RewriteContext, comp CompensationExpressions, cur mv.LogicalPlan) (mv.LogicalPlan, error) {
	cond := expression.JoinAnd(comp.Exprs...)
	if cond == nil {
		return cur, nil
	}
	return plan.NewFilter(cond, cur), nil
}

// ProjectRewrite rebuilds the query's projection list over the view's
// output: every AttributeRef the query names is repointed at the matching
// view column, and the surrounding expression tree (aliases, casts) is
// otherwise preserved as-is.
func ProjectRewrite(ctx *mv.RewriteContext, _ CompensationExpressions, cur mv.LogicalPlan) (mv.LogicalPlan, error) {
	comp := ctx.Component
	rewritten := make([]mv.Expression, len(comp.QueryProjection))
	for i, e := range comp.QueryProjection {
		re, err := remapAttrs(ctx, e)
		if err != nil {
			return nil, err
		}
		rewritten[i] = re
	}
	return plan.NewProject(rewritten, cur), nil
}

// GroupByRewrite rebuilds the query's Aggregate node over the view's
// output: the grouping list is repointed at the view's columns and the
// aggregate list is replaced wholesale by comp.Exprs, the rewritten
// aggregates MatchAgg already produced.
func GroupByRewrite(ctx *mv.RewriteContext, comp CompensationExpressions, cur mv.LogicalPlan) (mv.LogicalPlan, error) {
	grouping := make([]mv.Expression, len(ctx.Component.QueryGrouping))
	for i, g := range ctx.Component.QueryGrouping {
		re, err := remapAttrs(ctx, g)
		if err != nil {
			return nil, err
		}
		grouping[i] = re
	}
	return plan.NewAggregate(grouping, comp.Exprs, cur), nil
}

// remapAttrs walks e and replaces every AttributeRef with a reference
// qualified to the view, recording each substitution on ctx for reuse by
// a later rewriter (GroupByRewrite reusing a mapping ProjectRewrite made
// for the same query attribute).
func remapAttrs(ctx *mv.RewriteContext, e mv.Expression) (mv.Expression, error) {
	var mapErr error
	out := e.TransformDown(func(x mv.Expression) mv.Expression {
		ar, ok := x.(*expression.AttributeRef)
		if !ok {
			return x
		}
		if repl, ok := ctx.Replacement(ar.Name()); ok {
			return repl
		}
		mapped, err := mapAttributeToView(ctx, ar)
		if err != nil {
			mapErr = err
			return x
		}
		ctx.Replace(ar.Name(), mapped)
		return mapped
	})
	if mapErr != nil {
		return nil, mapErr
	}
	return out, nil
}

// mapAttributeToView finds ar's counterpart in the view's output — its
// projection list for a plain view, falling back to its grouping list for
// an aggregated one, since a GroupBy view exposes its grouping columns
// without necessarily wrapping them in a Project. The matchers this
// rewriter is paired with have already confirmed the attribute is
// available from the view; a miss here means the ProcessedComponent was
// built inconsistently with the matcher that approved it.
func mapAttributeToView(ctx *mv.RewriteContext, ar *expression.AttributeRef) (*expression.AttributeRef, error) {
	for _, p := range ctx.Component.ViewProjection {
		if mv.EqualFold(p.Name(), ar.Name()) {
			return expression.NewQualifiedAttributeRef(ctx.ViewName, p.Name(), p.Type()), nil
		}
	}
	for _, g := range ctx.Component.ViewGrouping {
		if mv.EqualFold(g.Name(), ar.Name()) {
			return expression.NewQualifiedAttributeRef(ctx.ViewName, g.Name(), g.Type()), nil
		}
	}
	return nil, ErrProjectUnmatch.New(ar.String())
}
