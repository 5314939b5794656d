package plan

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// Filter skips rows that don't match cond. Grounded on plan.Filter.
type Filter struct {
	UnaryNode
	Cond mv.Expression
}

var _ mv.LogicalPlan = (*Filter)(nil)
var _ mv.UnaryPlan = (*Filter)(nil)

func NewFilter(cond mv.Expression, child mv.LogicalPlan) *Filter {
	return &Filter{UnaryNode{child}, cond}
}

func (f *Filter) Resolved() bool {
	return f.UnaryNode.Resolved() && f.Cond.Resolved()
}

func (f *Filter) Schema() mv.Schema { return f.Child().Schema() }

func (f *Filter) WithChildren(children ...mv.LogicalPlan) (mv.LogicalPlan, error) {
	if err := requireArity("Filter", 1, children); err != nil {
		return nil, err
	}
	return NewFilter(f.Cond, children[0]), nil
}

func (f *Filter) TransformDown(fn func(mv.LogicalPlan) mv.LogicalPlan) mv.LogicalPlan {
	return fn(NewFilter(f.Cond, f.Child().TransformDown(fn)))
}

func (f *Filter) String() string {
	return fmt.Sprintf("Filter(%s)\n %s", f.Cond, f.Child())
}
