package plan

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// JoinKind identifies the join variant. The engine never rewrites across
// a Join; this type exists solely so rules can detect one and decline.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
)

// Join is a binary plan node, collapsed into one type parameterized by
// kind since this engine only ever inspects a Join to reject it.
type Join struct {
	Kind JoinKind
	Left mv.LogicalPlan
	Right mv.LogicalPlan
	Cond mv.Expression
}

var _ mv.LogicalPlan = (*Join)(nil)

func NewJoin(kind JoinKind, left, right mv.LogicalPlan, cond mv.Expression) *Join {
	return &Join{kind, left, right, cond}
}

func (j *Join) Resolved() bool {
	return j.Left.Resolved() && j.Right.Resolved() && (j.Cond == nil || j.Cond.Resolved())
}

func (j *Join) Schema() mv.Schema {
	return append(append(mv.Schema{}, j.Left.Schema()...), j.Right.Schema()...)
}

func (j *Join) Children() []mv.LogicalPlan { return []mv.LogicalPlan{j.Left, j.Right} }

func (j *Join) WithChildren(children ...mv.LogicalPlan) (mv.LogicalPlan, error) {
	if err := requireArity("Join", 2, children); err != nil {
		return nil, err
	}
	return NewJoin(j.Kind, children[0], children[1], j.Cond), nil
}

func (j *Join) TransformDown(f func(mv.LogicalPlan) mv.LogicalPlan) mv.LogicalPlan {
	return f(NewJoin(j.Kind, j.Left.TransformDown(f), j.Right.TransformDown(f), j.Cond))
}

func (j *Join) String() string {
	return fmt.Sprintf("Join(%v)\n %s\n %s", j.Cond, j.Left, j.Right)
}

// ContainsJoin reports whether p or any of its descendants (not crossing a
// RewrittenLeaf boundary) is a Join.
func ContainsJoin(p mv.LogicalPlan) bool {
	found := false
	var walk func(mv.LogicalPlan)
	walk = func(n mv.LogicalPlan) {
		if found {
			return
		}
		if _, boundary := n.(*RewrittenLeaf); boundary {
			return
		}
		if _, ok := n.(*Join); ok {
			found = true
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(p)
	return found
}
