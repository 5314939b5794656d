package plan

import (
	"fmt"
	"strings"

	"github.com/quillsql/mvrewrite/mv"
)

// Project projects a list of expressions over its child. Grounded on the
// teacher's plan.Project.
type Project struct {
	UnaryNode
	Exprs []mv.Expression
}

var _ mv.LogicalPlan = (*Project)(nil)
var _ mv.UnaryPlan = (*Project)(nil)

func NewProject(exprs []mv.Expression, child mv.LogicalPlan) *Project {
	return &Project{UnaryNode{child}, exprs}
}

func (p *Project) Resolved() bool {
	return p.UnaryNode.Resolved() && mv.ExpressionsResolved(p.Exprs...)
}

func (p *Project) Schema() mv.Schema {
	s := make(mv.Schema, len(p.Exprs))
	for i, e := range p.Exprs {
		s[i] = &mv.Column{Name: e.Name(), Type: e.Type()}
	}
	return s
}

func (p *Project) WithChildren(children ...mv.LogicalPlan) (mv.LogicalPlan, error) {
	if err := requireArity("Project", 1, children); err != nil {
		return nil, err
	}
	return NewProject(p.Exprs, children[0]), nil
}

// WithExpressions returns a copy of p with its projection list replaced.
func (p *Project) WithExpressions(exprs []mv.Expression) *Project {
	return NewProject(exprs, p.Child())
}

func (p *Project) TransformDown(f func(mv.LogicalPlan) mv.LogicalPlan) mv.LogicalPlan {
	return f(NewProject(p.Exprs, p.Child().TransformDown(f)))
}

func (p *Project) String() string {
	parts := make([]string, len(p.Exprs))
	for i, e := range p.Exprs {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Project(%s)\n %s", strings.Join(parts, ", "), p.Child())
}
