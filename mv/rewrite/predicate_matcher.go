package rewrite

import (
	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/expression"
	"github.com/quillsql/mvrewrite/mv/rangecond"
)

// MatchPredicate partitions the view's and query's conjunctive predicates
// into equality, range and residual classes, checks that the view's
// predicate is implied by the query's in each class, and emits the
// query's extra predicates as compensation.
func MatchPredicate(ctx *mv.RewriteContext) (CompensationExpressions, error) {
	comp := ctx.Component

	if len(comp.ViewConjuncts) > len(comp.QueryConjuncts) {
		return CompensationExpressions{}, ErrPredicateUnmatch.New(len(comp.ViewConjuncts), len(comp.QueryConjuncts))
	}

	viewEq, viewRangeExprs, viewResidual := partition(comp.ViewConjuncts)
	queryEq, queryRangeExprs, queryResidual := partition(comp.QueryConjuncts)

	if !expression.IsSubsetOf(viewEq, queryEq) {
		return CompensationExpressions{}, ErrPredicateEqualsUnmatch.New(firstUnmatched(viewEq, queryEq))
	}
	extraEq := expression.Difference(queryEq, viewEq)

	viewRanges := rangecond.GroupAndMerge(classifyAll(viewRangeExprs))
	queryRanges := rangecond.GroupAndMerge(classifyAll(queryRangeExprs))

	if len(viewRanges) > len(queryRanges) {
		return CompensationExpressions{}, ErrPredicateRangeUnmatch.New(rangeSummary(viewRanges), rangeSummary(queryRanges))
	}
	for _, vr := range viewRanges {
		contained := false
		for _, qr := range queryRanges {
			if qr.IsSubRange(vr) {
				contained = true
				break
			}
		}
		if !contained {
			return CompensationExpressions{}, ErrPredicateRangeUnmatch.New(vr.String(), rangeSummary(queryRanges))
		}
	}
	var rangeCompensation []mv.Expression
	for _, qr := range queryRanges {
		rangeCompensation = append(rangeCompensation, qr.ToExpression()...)
	}

	if !expression.IsSubsetOf(viewResidual, queryResidual) {
		return CompensationExpressions{}, ErrPredicateResidualUnmatch.New(firstUnmatched(viewResidual, queryResidual))
	}
	extraResidual := expression.Difference(queryResidual, viewResidual)

	compensation := append(append(append([]mv.Expression{}, extraEq...), rangeCompensation...), extraResidual...)

	for _, attr := range attributesIn(compensation) {
		if !projectedByView(attr, comp.ViewProjection) && !projectedByView(attr, comp.ViewGrouping) {
			return CompensationExpressions{}, ErrPredicateColumnsNotInView.New(attr.String())
		}
	}

	return OkWith(compensation...), nil
}

// partition splits conjuncts into the equality, range and residual
// classes. Range membership is determined by whether
// rangecond.Classify recognizes the conjunct; everything else that is not
// an equality comparison is residual.
func partition(conjuncts []mv.Expression) (equalities, ranges, residuals []mv.Expression) {
	for _, c := range conjuncts {
		switch {
		case expression.IsEqualityComparison(c):
			equalities = append(equalities, c)
		case isRangeConjunct(c):
			ranges = append(ranges, c)
		default:
			residuals = append(residuals, c)
		}
	}
	return
}

func isRangeConjunct(e mv.Expression) bool {
	_, ok := rangecond.Classify(e)
	return ok
}

func classifyAll(exprs []mv.Expression) []*rangecond.RangeCondition {
	out := make([]*rangecond.RangeCondition, 0, len(exprs))
	for _, e := range exprs {
		rc, ok := rangecond.Classify(e)
		if ok {
			out = append(out, rc)
		}
	}
	return out
}

func attributesIn(exprs []mv.Expression) []*expression.AttributeRef {
	var out []*expression.AttributeRef
	for _, e := range exprs {
		out = append(out, expression.ExtractAttributeRefs(e)...)
	}
	return out
}

func projectedByView(attr *expression.AttributeRef, viewProjection []mv.Expression) bool {
	for _, p := range viewProjection {
		if mv.EqualFold(p.Name(), attr.Name()) {
			return true
		}
	}
	return false
}

func firstUnmatched(missing, present []mv.Expression) string {
	for _, m := range missing {
		found := false
		for _, p := range present {
			if expression.SemanticEquals(m, p) {
				found = true
				break
			}
		}
		if !found {
			return m.String()
		}
	}
	return ""
}

func rangeSummary(rs []*rangecond.RangeCondition) string {
	if len(rs) == 0 {
		return "<none>"
	}
	s := rs[0].String()
	for _, r := range rs[1:] {
		s += "; " + r.String()
	}
	return s
}
