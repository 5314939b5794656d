package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/expression"
	"github.com/quillsql/mvrewrite/mv/expression/aggregation"
	"github.com/quillsql/mvrewrite/mv/rewrite"
)

func TestMatchAggRollsUpSumAndCountStarOverCoarserGrouping(t *testing.T) {
	r := require.New(t)

	dept := attr("dept")
	sal := attr("sal")

	comp := &mv.ProcessedComponent{
		QueryGrouping: []mv.Expression{dept},
		ViewGrouping: []mv.Expression{dept, attr("emp")},
		QueryAggregates: []mv.Expression{expression.NewAlias(aggregation.NewCountStar(), "c"), expression.NewAlias(aggregation.NewSum(sal), "s")},
		ViewAggregates: []mv.Expression{expression.NewAlias(aggregation.NewCountStar(), "c"), expression.NewAlias(aggregation.NewSum(sal), "s")},
	}

	out, err := rewrite.MatchAgg(newCtx(comp))
	r.NoError(err)
	r.True(out.Ok)
	r.Len(out.Exprs, 2)

	sumOfCounts, ok := expression.Unalias(out.Exprs[0]).(*aggregation.Sum)
	r.True(ok)
	countArg, ok := sumOfCounts.Child.(*expression.AttributeRef)
	r.True(ok)
	r.Equal("c", countArg.Name())

	sumOfSums, ok := expression.Unalias(out.Exprs[1]).(*aggregation.Sum)
	r.True(ok)
	sumArg, ok := sumOfSums.Child.(*expression.AttributeRef)
	r.True(ok)
	r.Equal("s", sumArg.Name())
}

func TestMatchAggRejectsCountStarWithNoViewCounterpart(t *testing.T) {
	r := require.New(t)

	comp := &mv.ProcessedComponent{
		QueryAggregates: []mv.Expression{expression.NewAlias(aggregation.NewCountStar(), "c")},
		ViewAggregates: []mv.Expression{expression.NewAlias(aggregation.NewSum(attr("sal")), "s")},
	}

	_, err := rewrite.MatchAgg(newCtx(comp))
	r.True(rewrite.ErrAggNumberUnmatch.Is(err))
}

func TestMatchAggRejectsAvgWhenViewHasNoCountStar(t *testing.T) {
	r := require.New(t)

	comp := &mv.ProcessedComponent{
		QueryAggregates: []mv.Expression{expression.NewAlias(aggregation.NewAverage(attr("sal")), "a")},
		ViewAggregates: []mv.Expression{expression.NewAlias(aggregation.NewSum(attr("sal")), "s")},
	}

	_, err := rewrite.MatchAgg(newCtx(comp))
	r.True(rewrite.ErrAggViewMissingCountStar.Is(err))
}

func TestMatchAggDerivesAvgFromSumAndCountStar(t *testing.T) {
	r := require.New(t)

	sal := attr("sal")
	comp := &mv.ProcessedComponent{
		QueryAggregates: []mv.Expression{expression.NewAlias(aggregation.NewAverage(sal), "a")},
		ViewAggregates: []mv.Expression{
			expression.NewAlias(aggregation.NewCountStar(), "c"),
			expression.NewAlias(aggregation.NewSum(sal), "s"),
		},
	}

	out, err := rewrite.MatchAgg(newCtx(comp))
	r.NoError(err)
	div, ok := expression.Unalias(out.Exprs[0]).(*aggregation.Div)
	r.True(ok)
	r.Equal("a", out.Exprs[0].Name())
	_ = div
}

func TestMatchAggRejectsUnmatchedGrouping(t *testing.T) {
	r := require.New(t)

	comp := &mv.ProcessedComponent{
		QueryGrouping: []mv.Expression{attr("region")},
		ViewGrouping: []mv.Expression{attr("dept")},
	}

	_, err := rewrite.MatchAgg(newCtx(comp))
	r.True(rewrite.ErrGroupByColumnsNotInView.Is(err))
}
