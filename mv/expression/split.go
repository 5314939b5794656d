package expression

import "github.com/quillsql/mvrewrite/mv"

// SplitConjunction splits a top-level AND-chain into its list of
// conjuncts, in left-to-right order. A non-And expression splits into a
// single-element slice; a nil expression splits into an empty slice.
// Grounded on expression.SplitConjunction helper
// (sql/analyzer/filters.go / expression.SplitConjunctivePredicates).
func SplitConjunction(e mv.Expression) []mv.Expression {
	if e == nil {
		return nil
	}
	and, ok := e.(*And)
	if !ok {
		return []mv.Expression{e}
	}
	return append(SplitConjunction(and.Left), SplitConjunction(and.Right)...)
}
