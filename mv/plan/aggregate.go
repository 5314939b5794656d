package plan

import (
	"fmt"
	"strings"

	"github.com/quillsql/mvrewrite/mv"
)

// Aggregate groups rows by Grouping and computes Aggregates over each
// group. Grounded on plan.GroupBy, renamed to match
// LogicalPlan variant name.
type Aggregate struct {
	UnaryNode
	Grouping []mv.Expression
	Aggregates []mv.Expression
}

var _ mv.LogicalPlan = (*Aggregate)(nil)
var _ mv.UnaryPlan = (*Aggregate)(nil)

func NewAggregate(grouping, aggregates []mv.Expression, child mv.LogicalPlan) *Aggregate {
	return &Aggregate{UnaryNode{child}, grouping, aggregates}
}

func (a *Aggregate) Resolved() bool {
	return a.UnaryNode.Resolved() &&
		mv.ExpressionsResolved(a.Grouping...) &&
		mv.ExpressionsResolved(a.Aggregates...)
}

func (a *Aggregate) Schema() mv.Schema {
	s := make(mv.Schema, len(a.Aggregates))
	for i, e := range a.Aggregates {
		s[i] = &mv.Column{Name: e.Name(), Type: e.Type()}
	}
	return s
}

func (a *Aggregate) WithChildren(children ...mv.LogicalPlan) (mv.LogicalPlan, error) {
	if err := requireArity("Aggregate", 1, children); err != nil {
		return nil, err
	}
	return NewAggregate(a.Grouping, a.Aggregates, children[0]), nil
}

// WithGroupingAndAggregates returns a copy of a with new grouping and
// aggregate lists, used by GroupByRewrite.
func (a *Aggregate) WithGroupingAndAggregates(grouping, aggregates []mv.Expression) *Aggregate {
	return NewAggregate(grouping, aggregates, a.Child())
}

func (a *Aggregate) TransformDown(f func(mv.LogicalPlan) mv.LogicalPlan) mv.LogicalPlan {
	return f(NewAggregate(a.Grouping, a.Aggregates, a.Child().TransformDown(f)))
}

func (a *Aggregate) String() string {
	g := make([]string, len(a.Grouping))
	for i, e := range a.Grouping {
		g[i] = e.String()
	}
	agg := make([]string, len(a.Aggregates))
	for i, e := range a.Aggregates {
		agg[i] = e.String()
	}
	return fmt.Sprintf("Aggregate(group=[%s], agg=[%s])\n %s", strings.Join(g, ", "), strings.Join(agg, ", "), a.Child())
}
