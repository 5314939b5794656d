package plan

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// TableScan is a leaf plan reading every row of a base table or a
// materialized view's persisted rows, reduced to the name and schema
// this engine needs.
type TableScan struct {
	TableName string
	Output mv.Schema
}

var _ mv.LogicalPlan = (*TableScan)(nil)

func NewTableScan(name string, output mv.Schema) *TableScan {
	return &TableScan{TableName: name, Output: output}
}

func (t *TableScan) Resolved() bool { return true }
func (t *TableScan) Schema() mv.Schema { return t.Output }
func (t *TableScan) Children() []mv.LogicalPlan { return nil }

func (t *TableScan) WithChildren(children ...mv.LogicalPlan) (mv.LogicalPlan, error) {
	if err := requireArity("TableScan", 0, children); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TableScan) TransformDown(f func(mv.LogicalPlan) mv.LogicalPlan) mv.LogicalPlan {
	return f(t)
}

func (t *TableScan) String() string {
	return fmt.Sprintf("TableScan(%s)", t.TableName)
}

// ExtractTablesFromPlan returns the distinct base-table names scanned
// anywhere in plan. RewrittenLeaf boundaries are not recursed into,
// matching the no-recurse semantics BoundaryNode carries.
func ExtractTablesFromPlan(p mv.LogicalPlan) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(mv.LogicalPlan)
	walk = func(n mv.LogicalPlan) {
		if _, boundary := n.(*RewrittenLeaf); boundary {
			return
		}
		if ts, ok := n.(*TableScan); ok {
			if !seen[ts.TableName] {
				seen[ts.TableName] = true
				out = append(out, ts.TableName)
			}
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(p)
	return out
}
