package rewrite

import "github.com/quillsql/mvrewrite/mv"

// CompensationExpressions is the residue a matcher hands to its paired
// rewriter: the expressions that must be re-applied above the view scan
// for the rewritten plan to remain equivalent to the original. Ok is
// redundant with whether the matcher returned an error — both are kept
// because a matcher with no compensation to emit (ProjectMatcher,
// TableNonOpMatcher) still needs to signal success.
type CompensationExpressions struct {
	Ok bool
	Exprs []mv.Expression
}

// OkEmpty is shorthand for "matched, nothing to compensate".
func OkEmpty() CompensationExpressions {
	return CompensationExpressions{Ok: true}
}

// OkWith is shorthand for "matched, re-apply these expressions".
func OkWith(exprs ...mv.Expression) CompensationExpressions {
	return CompensationExpressions{Ok: true, Exprs: exprs}
}
