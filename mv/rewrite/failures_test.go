package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/expression"
	"github.com/quillsql/mvrewrite/mv/expression/aggregation"
	"github.com/quillsql/mvrewrite/mv/plan"
	"github.com/quillsql/mvrewrite/mv/rewrite"
)

// TestFailureTaxonomyIsComplete pairs every one of the twelve typed
// rewrite failures in failures.go with an input that actually triggers
// it, so an unreachable or misnamed Kind gets caught here rather than
// discovered by a caller who never sees ExplainRewrite report it.
func TestFailureTaxonomyIsComplete(t *testing.T) {
	strLit := func(s string) *expression.Literal { return expression.NewLiteral(s, mv.String) }

	tests := []struct {
		name string
		is func(error) bool
		run func() error
	}{
		{
			name: "PredicateUnmatch",
			is: rewrite.ErrPredicateUnmatch.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					ViewConjuncts: []mv.Expression{
						expression.NewEquals(attr("dept"), strLit("eng")),
						expression.NewEquals(attr("region"), strLit("east")),
					},
					QueryConjuncts: []mv.Expression{expression.NewEquals(attr("dept"), strLit("eng"))},
				}
				_, err := rewrite.MatchPredicate(newCtx(comp))
				return err
			},
		},
		{
			name: "PredicateEqualsUnmatch",
			is: rewrite.ErrPredicateEqualsUnmatch.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					ViewConjuncts: []mv.Expression{expression.NewEquals(attr("dept"), strLit("eng"))},
					QueryConjuncts: []mv.Expression{expression.NewEquals(attr("region"), strLit("east"))},
					ViewProjection: []mv.Expression{attr("dept")},
				}
				_, err := rewrite.MatchPredicate(newCtx(comp))
				return err
			},
		},
		{
			name: "PredicateRangeUnmatch",
			is: rewrite.ErrPredicateRangeUnmatch.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					ViewConjuncts: []mv.Expression{expression.NewGreaterThanOrEqual(attr("age"), lit(18))},
					QueryConjuncts: []mv.Expression{expression.NewGreaterThanOrEqual(attr("age"), lit(10))},
					ViewProjection: []mv.Expression{attr("age")},
				}
				_, err := rewrite.MatchPredicate(newCtx(comp))
				return err
			},
		},
		{
			name: "PredicateResidualUnmatch",
			is: rewrite.ErrPredicateResidualUnmatch.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					ViewConjuncts: []mv.Expression{expression.NewFuncCall("LIKE", mv.Boolean, attr("name"), strLit("A%"))},
					QueryConjuncts: []mv.Expression{expression.NewFuncCall("LIKE", mv.Boolean, attr("name"), strLit("B%"))},
					ViewProjection: []mv.Expression{attr("name")},
				}
				_, err := rewrite.MatchPredicate(newCtx(comp))
				return err
			},
		},
		{
			name: "PredicateColumnsNotInView",
			is: rewrite.ErrPredicateColumnsNotInView.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					QueryConjuncts: []mv.Expression{expression.NewEquals(attr("hidden"), lit(1))},
					ViewProjection: []mv.Expression{attr("age")},
				}
				_, err := rewrite.MatchPredicate(newCtx(comp))
				return err
			},
		},
		{
			name: "ProjectUnmatch",
			is: rewrite.ErrProjectUnmatch.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					QueryProjection: []mv.Expression{attr("salary")},
					ViewProjection: []mv.Expression{attr("name")},
				}
				_, err := rewrite.MatchProject(newCtx(comp))
				return err
			},
		},
		{
			name: "GroupBySizeUnmatch",
			is: rewrite.ErrGroupBySizeUnmatch.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					QueryGrouping: []mv.Expression{attr("dept"), attr("region")},
					ViewGrouping: []mv.Expression{attr("dept")},
				}
				_, err := rewrite.MatchAgg(newCtx(comp))
				return err
			},
		},
		{
			name: "GroupByColumnsNotInView",
			is: rewrite.ErrGroupByColumnsNotInView.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					QueryGrouping: []mv.Expression{attr("region")},
					ViewGrouping: []mv.Expression{attr("dept")},
				}
				_, err := rewrite.MatchAgg(newCtx(comp))
				return err
			},
		},
		{
			name: "AggNumberUnmatch",
			is: rewrite.ErrAggNumberUnmatch.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					QueryAggregates: []mv.Expression{expression.NewAlias(aggregation.NewCountStar(), "c")},
					ViewAggregates: []mv.Expression{expression.NewAlias(aggregation.NewSum(attr("sal")), "s")},
				}
				_, err := rewrite.MatchAgg(newCtx(comp))
				return err
			},
		},
		{
			name: "AggColumnsUnmatch",
			is: rewrite.ErrAggColumnsUnmatch.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					QueryAggregates: []mv.Expression{expression.NewAlias(aggregation.NewSum(attr("bonus")), "b")},
					ViewAggregates: []mv.Expression{expression.NewAlias(aggregation.NewSum(attr("sal")), "s")},
				}
				_, err := rewrite.MatchAgg(newCtx(comp))
				return err
			},
		},
		{
			name: "AggViewMissingCountStar",
			is: rewrite.ErrAggViewMissingCountStar.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					QueryAggregates: []mv.Expression{expression.NewAlias(aggregation.NewAverage(attr("sal")), "a")},
					ViewAggregates: []mv.Expression{expression.NewAlias(aggregation.NewSum(attr("sal")), "s")},
				}
				_, err := rewrite.MatchAgg(newCtx(comp))
				return err
			},
		},
		{
			name: "JoinUnmatch",
			is: rewrite.ErrJoinUnmatch.Is,
			run: func() error {
				comp := &mv.ProcessedComponent{
					ViewJoins: []mv.LogicalPlan{plan.NewJoin(plan.InnerJoin,
						plan.NewTableScan("a", mv.Schema{}), plan.NewTableScan("b", mv.Schema{}), nil)},
				}
				ctx := newCtx(comp)
				match := rewrite.MatchTableNonOp(plan.NewTableScan("a", mv.Schema{}))
				_, err := match(ctx)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			require.True(t, tt.is(err), "expected error %v to be of the asserted kind", err)
		})
	}
}
