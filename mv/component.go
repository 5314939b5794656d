package mv

// ProcessedComponent is the per-candidate working set: the conjunctive
// predicates, projection list, grouping list, aggregate list and join
// list split out of the query plan and of the view's two plans. It is
// populated once per candidate by a Rule and then only read by matchers;
// rewriters read it and return the evolving plan (recording attribute
// substitutions on the RewriteContext), never writing the component itself.
type ProcessedComponent struct {
	QueryConjuncts []Expression
	ViewConjuncts []Expression

	QueryProjection []Expression
	ViewProjection []Expression

	QueryGrouping []Expression
	ViewGrouping []Expression

	QueryAggregates []Expression
	ViewAggregates []Expression

	QueryJoins []LogicalPlan
	ViewJoins []LogicalPlan
}

// HasJoins reports whether either side observed a join. MatchTableNonOp,
// the first stage of every pipeline, rejects the candidate with
// ErrJoinUnmatch once this is true — join-aware rewriting is out of scope.
func (c *ProcessedComponent) HasJoins() bool {
	return len(c.QueryJoins) > 0 || len(c.ViewJoins) > 0
}
