package rewrite

import (
	"reflect"

	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/expression"
	"github.com/quillsql/mvrewrite/mv/expression/aggregation"
)

// MatchAgg matches and rewrites a query's aggregate list against a
// candidate view's. It is active only for rules that see aggregation on
// both sides.
//
// A blanket rule requiring every AVG or COUNT in the query to appear,
// modulo alias, in the view conflicts with rejecting an AVG query
// against a view with no COUNT(*) via AggViewMissingCountStar rather
// than AggColumnsUnmatch — so AVG cannot be subject to a literal
// presence check. This implementation resolves that by applying the
// exact-presence check only to non-star COUNT, letting COUNT(*) and AVG
// go through their dedicated replacement rules once the count-star and
// missing-count-star guards pass; an AVG still needs a view SUM over the
// same argument, and fails with AggColumnsUnmatch without one
// (documented in DESIGN.md).
func MatchAgg(ctx *mv.RewriteContext) (CompensationExpressions, error) {
	comp := ctx.Component

	if err := matchGrouping(comp); err != nil {
		return CompensationExpressions{}, err
	}

	queryHasCountStar := false
	for _, qa := range comp.QueryAggregates {
		if c, ok := expression.Unalias(qa).(*aggregation.Count); ok && c.IsCountStar() {
			queryHasCountStar = true
			break
		}
	}
	viewCountAttr, viewHasCountStar := firstCountStarOutputAttr(comp.ViewAggregates)

	if queryHasCountStar && !viewHasCountStar {
		return CompensationExpressions{}, ErrAggNumberUnmatch.New()
	}

	queryHasAvg := false
	for _, qa := range comp.QueryAggregates {
		if _, ok := expression.Unalias(qa).(*aggregation.Average); ok {
			queryHasAvg = true
			break
		}
	}
	if queryHasAvg && !viewHasCountStar {
		return CompensationExpressions{}, ErrAggViewMissingCountStar.New()
	}

	rewritten := make([]mv.Expression, 0, len(comp.QueryAggregates))
	for _, qa := range comp.QueryAggregates {
		outName := outputName(qa)
		inner := expression.Unalias(qa)

		switch agg := inner.(type) {
		case *aggregation.Count:
			if agg.IsCountStar() {
				sumOfCounts := aggregation.NewSum(expression.NewAttributeRef(viewCountAttr, mv.Long))
				rewritten = append(rewritten, expression.NewAlias(sumOfCounts, outName))
				continue
			}
			viewAttr, ok := findMatchingViewAttr(agg, comp.ViewAggregates)
			if !ok {
				return CompensationExpressions{}, ErrAggColumnsUnmatch.New(qa.String())
			}
			rewritten = append(rewritten, expression.NewAlias(aggregation.NewCount(viewAttr), outName))

		case *aggregation.Average:
			virtualSum := aggregation.NewSum(agg.Child)
			viewAttr, ok := findMatchingViewAttr(virtualSum, comp.ViewAggregates)
			if !ok {
				return CompensationExpressions{}, ErrAggColumnsUnmatch.New(qa.String())
			}
			rolledUpSum := aggregation.NewSum(viewAttr)
			div := aggregation.NewDiv(rolledUpSum, expression.NewAttributeRef(viewCountAttr, mv.Long))
			rewritten = append(rewritten, expression.NewAlias(div, outName))

		default:
			viewAttr, ok := findMatchingViewAttr(inner, comp.ViewAggregates)
			if !ok {
				return CompensationExpressions{}, ErrAggColumnsUnmatch.New(qa.String())
			}
			newAgg, err := rebuildSameKindOver(inner, viewAttr)
			if err != nil {
				return CompensationExpressions{}, ErrAggColumnsUnmatch.New(qa.String())
			}
			rewritten = append(rewritten, expression.NewAlias(newAgg, outName))
		}
	}

	return OkWith(rewritten...), nil
}

// matchGrouping confirms the view is grouped at least as finely as the
// query: every query grouping column must be implied by the view's
// grouping list, so the view's rows can be re-aggregated up to the
// query's coarser groups. A query grouping by more columns than the view
// has can never be satisfied and fails fast on the count alone.
func matchGrouping(comp *mv.ProcessedComponent) error {
	if len(comp.QueryGrouping) > len(comp.ViewGrouping) {
		return ErrGroupBySizeUnmatch.New(len(comp.QueryGrouping), len(comp.ViewGrouping))
	}
	for _, qg := range comp.QueryGrouping {
		found := false
		for _, vg := range comp.ViewGrouping {
			if expression.SemanticEquals(qg, vg) {
				found = true
				break
			}
		}
		if !found {
			return ErrGroupByColumnsNotInView.New(qg.String())
		}
	}
	return nil
}

func outputName(e mv.Expression) string {
	if a, ok := e.(*expression.Alias); ok {
		return a.Name()
	}
	return e.Name()
}

// firstCountStarOutputAttr returns the output attribute name of the
// view's first COUNT(*) aggregate.
func firstCountStarOutputAttr(viewAggregates []mv.Expression) (string, bool) {
	for _, va := range viewAggregates {
		if c, ok := expression.Unalias(va).(*aggregation.Count); ok && c.IsCountStar() {
			return outputName(va), true
		}
	}
	return "", false
}

// findMatchingViewAttr looks for a view aggregate of the same Go type as
// target with a semantically-equal child expression (the "unify modulo
// alias" step), and returns an AttributeRef to its output column.
func findMatchingViewAttr(target mv.Expression, viewAggregates []mv.Expression) (*expression.AttributeRef, bool) {
	for _, va := range viewAggregates {
		inner := expression.Unalias(va)
		if reflect.TypeOf(inner) != reflect.TypeOf(target) {
			continue
		}
		tc, vc := inner.Children(), target.Children()
		if len(tc) != len(vc) {
			continue
		}
		match := true
		for i := range tc {
			if !expression.SemanticEquals(tc[i], vc[i]) {
				match = false
				break
			}
		}
		if match {
			return expression.NewAttributeRef(outputName(va), inner.Type()), true
		}
	}
	return nil, false
}

// rebuildSameKindOver reconstructs an aggregate of the same kind as
// template, with viewAttr as its sole child — SUM(sal) matched against
// the view's SUM(sal) AS s becomes SUM(s), re-aggregating the view's
// per-group sums into the query's coarser grouping.
func rebuildSameKindOver(template mv.Expression, viewAttr mv.Expression) (mv.Expression, error) {
	switch template.(type) {
	case *aggregation.Sum:
		return aggregation.NewSum(viewAttr), nil
	case *aggregation.Count:
		return aggregation.NewCount(viewAttr), nil
	default:
		return template.WithChildren(viewAttr)
	}
}
