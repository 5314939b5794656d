// Package plan implements the LogicalPlan variants the rewriter operates
// over: Project, Filter, Aggregate, TableScan, Join, and the engine's two
// bookkeeping wrappers RewrittenPlan and RewrittenLeaf. Grounded on the
// teacher's sql/plan package (filter.go, project.go, group_by.go),
// stripped of RowIter/execution — this engine only ever rewrites trees.
package plan

import "fmt"

import "github.com/quillsql/mvrewrite/mv"

// UnaryNode is embedded by every single-child plan node. Grounded on the
// teacher's plan.UnaryNode.
type UnaryNode struct {
	child mv.LogicalPlan
}

func (n UnaryNode) Child() mv.LogicalPlan { return n.child }
func (n UnaryNode) Resolved() bool { return n.child.Resolved() }
func (n UnaryNode) Children() []mv.LogicalPlan { return []mv.LogicalPlan{n.child} }

func requireArity(name string, want int, children []mv.LogicalPlan) error {
	if len(children) != want {
		return fmt.Errorf("%s: invalid children number, got %d, expected %d", name, len(children), want)
	}
	return nil
}
