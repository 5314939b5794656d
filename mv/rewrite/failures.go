// Package rewrite implements the match-and-compensate engine:
// PredicateMatcher, ProjectMatcher, AggMatcher and TableNonOpMatcher,
// their paired rewriters, and the Pipeline that drives them in order.
// Failures are typed Kind values via gopkg.in/src-d/go-errors.v1, the way
// a Rule/Batch analyzer pipeline reports its own typed errors.
package rewrite

import errors "gopkg.in/src-d/go-errors.v1"

// The twelve typed rewrite failures a matcher can return. Each is data,
// never thrown — a matcher returns one as an ordinary error value, and
// the rule driving the pipeline decides whether to log it and try the
// next candidate view.
var (
	ErrPredicateUnmatch = errors.NewKind("predicate unmatch: view has more conjuncts (%d) than query (%d)")
	ErrPredicateEqualsUnmatch = errors.NewKind("predicate equals unmatch: view equality %s is not implied by any query equality")
	ErrPredicateRangeUnmatch = errors.NewKind("predicate range unmatch: view range %s is not contained in any query range (query ranges: %s)")
	ErrPredicateResidualUnmatch = errors.NewKind("predicate residual unmatch: view residual %s does not exactly match any query residual")
	ErrPredicateColumnsNotInView = errors.NewKind("predicate columns not in view: attribute %q is not projected by the view")
	ErrProjectUnmatch = errors.NewKind("project unmatch: attribute %q referenced by the query is not projected by the view")
	ErrGroupBySizeUnmatch = errors.NewKind("group by size unmatch: query grouping has %d expressions, view grouping has %d")
	ErrGroupByColumnsNotInView = errors.NewKind("group by columns not in view: grouping expression %s is not implied by the view's grouping")
	ErrAggNumberUnmatch = errors.NewKind("agg number unmatch: query has COUNT(*) but the view has none")
	ErrAggColumnsUnmatch = errors.NewKind("agg columns unmatch: aggregate %s has no counterpart in the view")
	ErrAggViewMissingCountStar = errors.NewKind("agg view missing count star: query has AVG but the view has no COUNT(*) to derive it from")
	ErrJoinUnmatch = errors.NewKind("join unmatch: the engine does not rewrite across a join")
)
