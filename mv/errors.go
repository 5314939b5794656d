package mv

import errors "gopkg.in/src-d/go-errors.v1"

// Fatal errors: conditions calls out as panics rather than data,
// because they indicate a bug in a caller (an unreachable ProcessedComponent
// shape) or an input outside the engine's declared type universe.
var (
	// ErrUnsupportedRangeType is raised when a RangeCondition key or
	// literal has a DataType the range algebra does not order (§3: "Any
	// other type is an error").
	ErrUnsupportedRangeType = errors.NewKind("unsupported type %s for range comparison")

	// ErrMalformedComponent is raised when a ProcessedComponent violates
	// an invariant a matcher assumes is already enforced by its caller
	// (for example, an empty conjunct list paired with a non-empty
	// grouping list on a rule that never populates one).
	ErrMalformedComponent = errors.NewKind("malformed processed component: %s")
)

// MustResolved panics with ErrMalformedComponent if any of exprs is not
// Resolved, for checking inputs taken from a ProcessedComponent, which by
// contract has already been resolved by the rule that built it. The
// matchers in mv/rewrite do not call it.
func MustResolved(label string, exprs ...Expression) {
	if !ExpressionsResolved(exprs...) {
		panic(ErrMalformedComponent.New(label + ": unresolved expression"))
	}
}
