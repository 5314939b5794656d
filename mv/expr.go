package mv

// Expression is the immutable, tagged-variant tree type the engine
// manipulates: attribute references, literals, casts, comparisons,
// arithmetic, aliases and aggregate calls all implement it. Modeled on the
// teacher's sql.Expression, but pared down to what predicate/projection/
// aggregate matching needs — there is no Eval, because this engine never
// executes a plan, only rewrites it.
type Expression interface {
	// Resolved reports whether every attribute this expression touches
	// has a known type and position. An unresolved expression can never
	// participate in a rewrite.
	Resolved() bool

	// Type returns the expression's static type.
	Type() DataType

	// Name is the display/output name of the expression (its column
	// name if it became the output of a Project).
	Name() string

	// Children returns the expression's direct operands, in order.
	Children() []Expression

	// WithChildren returns a copy of this expression with its operands
	// replaced. len(children) must equal len(e.Children()).
	WithChildren(children ...Expression) (Expression, error)

	// TransformDown applies f to every node of the tree, top-down,
	// rebuilding ancestors with WithChildren as it returns. It is the
	// generic substitution mechanism used in place of a mirrored class
	// hierarchy per node kind.
	TransformDown(f func(Expression) Expression) Expression

	String() string
}

// Qualified is implemented by expressions that carry a table/alias
// qualifier — only AttributeRef does today. Semantic equality strips the
// qualifier, so callers that need it use this interface rather than a
// type switch.
type Qualified interface {
	Qualifier() string
}

// ExpressionsResolved reports whether every expression in exprs is
// Resolved(); used by plan nodes to compute their own Resolved().
func ExpressionsResolved(exprs ...Expression) bool {
	for _, e := range exprs {
		if e == nil || !e.Resolved() {
			return false
		}
	}
	return true
}
