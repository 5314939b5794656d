package plan

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// RewrittenPlan wraps the top-level result of a Rewrite call: the caller
// may unwrap it to learn whether the pipeline actually committed a
// rewrite (Stopped == false) or gave up (Stopped == true, Inner is the
// original plan verbatim). The "stopped" flag is kept separate from the
// "do not recurse" marker — that marker is BoundaryNode/RewrittenLeaf, a
// distinct type.
type RewrittenPlan struct {
	Inner mv.LogicalPlan
	Stopped bool
}

var _ mv.LogicalPlan = (*RewrittenPlan)(nil)

func NewRewrittenPlan(inner mv.LogicalPlan, stopped bool) *RewrittenPlan {
	return &RewrittenPlan{inner, stopped}
}

func (r *RewrittenPlan) Resolved() bool { return r.Inner.Resolved() }
func (r *RewrittenPlan) Schema() mv.Schema { return r.Inner.Schema() }
func (r *RewrittenPlan) Children() []mv.LogicalPlan { return []mv.LogicalPlan{r.Inner} }

func (r *RewrittenPlan) WithChildren(children ...mv.LogicalPlan) (mv.LogicalPlan, error) {
	if err := requireArity("RewrittenPlan", 1, children); err != nil {
		return nil, err
	}
	return NewRewrittenPlan(children[0], r.Stopped), nil
}

func (r *RewrittenPlan) TransformDown(f func(mv.LogicalPlan) mv.LogicalPlan) mv.LogicalPlan {
	return f(NewRewrittenPlan(r.Inner.TransformDown(f), r.Stopped))
}

func (r *RewrittenPlan) String() string {
	return fmt.Sprintf("RewrittenPlan(stopped=%v)\n %s", r.Stopped, r.Inner)
}

// RewrittenLeaf marks a subtree an outer TransformDown must not recurse
// into — once a rule commits a rewrite over a view, the resulting scan of
// the view must not itself be mistaken for a fresh base-table scan by a
// later rule attempt. It implements BoundaryNode.
type RewrittenLeaf struct {
	Inner mv.LogicalPlan
}

var _ mv.LogicalPlan = (*RewrittenLeaf)(nil)
var _ mv.BoundaryNode = (*RewrittenLeaf)(nil)

func NewRewrittenLeaf(inner mv.LogicalPlan) *RewrittenLeaf {
	return &RewrittenLeaf{inner}
}

func (r *RewrittenLeaf) Boundary() {}

func (r *RewrittenLeaf) Resolved() bool { return r.Inner.Resolved() }
func (r *RewrittenLeaf) Schema() mv.Schema { return r.Inner.Schema() }
func (r *RewrittenLeaf) Children() []mv.LogicalPlan { return []mv.LogicalPlan{r.Inner} }

func (r *RewrittenLeaf) WithChildren(children ...mv.LogicalPlan) (mv.LogicalPlan, error) {
	if err := requireArity("RewrittenLeaf", 1, children); err != nil {
		return nil, err
	}
	return NewRewrittenLeaf(children[0]), nil
}

// TransformDown applies f to the RewrittenLeaf node itself but does not
// descend into Inner — that is the entire point of the boundary.
func (r *RewrittenLeaf) TransformDown(f func(mv.LogicalPlan) mv.LogicalPlan) mv.LogicalPlan {
	return f(r)
}

func (r *RewrittenLeaf) String() string {
	return fmt.Sprintf("RewrittenLeaf\n %s", r.Inner)
}

// StripWrappers removes every RewrittenPlan/RewrittenLeaf wrapper
// anywhere in p, not just at the root: a committed rewrite's output
// nests its view scan several levels below the top node (under a Project
// or Aggregate), and the boundary those wrappers exist to enforce is no
// longer needed once a pipeline run has finished.
func StripWrappers(p mv.LogicalPlan) mv.LogicalPlan {
	switch n := p.(type) {
	case *RewrittenPlan:
		return StripWrappers(n.Inner)
	case *RewrittenLeaf:
		return StripWrappers(n.Inner)
	default:
		children := n.Children()
		if len(children) == 0 {
			return n
		}
		newChildren := make([]mv.LogicalPlan, len(children))
		changed := false
		for i, c := range children {
			nc := StripWrappers(c)
			newChildren[i] = nc
			if nc != c {
				changed = true
			}
		}
		if !changed {
			return n
		}
		out, err := n.WithChildren(newChildren...)
		if err != nil {
			return n
		}
		return out
	}
}
