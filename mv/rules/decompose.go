// Package rules implements the two top-level rewrite rules the engine
// runs over a join-free query plan: WithoutJoinGroupRule for a plain
// select/project/filter query, and AggregateWithoutJoinRule for a grouped
// aggregate query. Grounded on analyzer rule shape
// (sql/analyzer/rules.go: a named func(*Analyzer, sql.Node) (sql.Node,
// error)), generalized from "resolve this node" to "find a materialized
// view that can answer this node".
package rules

import (
	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/expression"
	"github.com/quillsql/mvrewrite/mv/plan"
)

// parts is the flattened shape a query or view definition plan decomposes
// into: the predicate conjuncts, projection list, grouping list,
// aggregate list and any joins found anywhere in the tree.
type parts struct {
	Conjuncts []mv.Expression
	Projection []mv.Expression
	Grouping []mv.Expression
	Aggregates []mv.Expression
	Joins []mv.LogicalPlan
}

// decompose walks p and collects its predicate, projection and
// aggregate/grouping structure. It does not recurse past a Join — a join
// anywhere in the tree is recorded, and the pipeline's first stage
// (MatchTableNonOp) rejects the candidate once HasJoins is true.
func decompose(p mv.LogicalPlan) *parts {
	out := &parts{}
	var walk func(mv.LogicalPlan)
	walk = func(n mv.LogicalPlan) {
		switch v := n.(type) {
		case *plan.Project:
			out.Projection = v.Exprs
			walk(v.Child())
		case *plan.Filter:
			out.Conjuncts = append(out.Conjuncts, expression.SplitConjunction(v.Cond)...)
			walk(v.Child())
		case *plan.Aggregate:
			out.Grouping = v.Grouping
			out.Aggregates = v.Aggregates
			walk(v.Child())
		case *plan.Join:
			out.Joins = append(out.Joins, v)
		case *plan.TableScan:
		case *plan.RewrittenLeaf:
			walk(v.Inner)
		case *plan.RewrittenPlan:
			walk(v.Inner)
		default:
			for _, c := range n.Children() {
				walk(c)
			}
		}
	}
	walk(p)
	return out
}

// component merges a query's and a candidate view's decomposed parts into
// the ProcessedComponent the matchers read.
func component(query, view *parts) *mv.ProcessedComponent {
	return &mv.ProcessedComponent{
		QueryConjuncts: query.Conjuncts,
		ViewConjuncts: view.Conjuncts,
		QueryProjection: query.Projection,
		ViewProjection: view.Projection,
		QueryGrouping: query.Grouping,
		ViewGrouping: view.Grouping,
		QueryAggregates: query.Aggregates,
		ViewAggregates: view.Aggregates,
		QueryJoins: query.Joins,
		ViewJoins: view.Joins,
	}
}
