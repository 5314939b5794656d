package expression

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// BinaryExpression is embedded by every two-operand expression. Grounded
// on expression.BinaryExpression.
type BinaryExpression struct {
	Left mv.Expression
	Right mv.Expression
}

func (b *BinaryExpression) Children() []mv.Expression { return []mv.Expression{b.Left, b.Right} }
func (b *BinaryExpression) Resolved() bool { return b.Left.Resolved() && b.Right.Resolved() }

// Comparison is the shared shape of every binary predicate the range and
// equality algebra recognizes.
type Comparison struct {
	BinaryExpression
	op string
}

func (c *Comparison) Type() mv.DataType { return mv.Boolean }
func (c *Comparison) Name() string { return "" }
func (c *Comparison) Op() string { return c.op }

func (c *Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Left.String(), c.op, c.Right.String())
}

func newComparison(op string, left, right mv.Expression) Comparison {
	return Comparison{BinaryExpression{left, right}, op}
}

// comparisonWithChildren rebuilds a comparison of the given constructor
// with new children, validating arity the way WithChildren implementations do.
func comparisonWithChildren(name string, ctor func(l, r mv.Expression) mv.Expression, children []mv.Expression) (mv.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("%s: invalid children number, got %d, expected 2", name, len(children))
	}
	return ctor(children[0], children[1]), nil
}

// Equals is `left = right`.
type Equals struct{ Comparison }

func NewEquals(left, right mv.Expression) *Equals { return &Equals{newComparison("=", left, right)} }
func (e *Equals) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	return comparisonWithChildren("Equals", func(l, r mv.Expression) mv.Expression { return NewEquals(l, r) }, children)
}
func (e *Equals) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewEquals(e.Left.TransformDown(f), e.Right.TransformDown(f)))
}

// NullSafeEquals is `left <=> right`.
type NullSafeEquals struct{ Comparison }

func NewNullSafeEquals(left, right mv.Expression) *NullSafeEquals {
	return &NullSafeEquals{newComparison("<=>", left, right)}
}
func (e *NullSafeEquals) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	return comparisonWithChildren("NullSafeEquals", func(l, r mv.Expression) mv.Expression { return NewNullSafeEquals(l, r) }, children)
}
func (e *NullSafeEquals) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewNullSafeEquals(e.Left.TransformDown(f), e.Right.TransformDown(f)))
}

// LessThan is `left < right`.
type LessThan struct{ Comparison }

func NewLessThan(left, right mv.Expression) *LessThan { return &LessThan{newComparison("<", left, right)} }
func (e *LessThan) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	return comparisonWithChildren("LessThan", func(l, r mv.Expression) mv.Expression { return NewLessThan(l, r) }, children)
}
func (e *LessThan) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewLessThan(e.Left.TransformDown(f), e.Right.TransformDown(f)))
}

// LessThanOrEqual is `left <= right`.
type LessThanOrEqual struct{ Comparison }

func NewLessThanOrEqual(left, right mv.Expression) *LessThanOrEqual {
	return &LessThanOrEqual{newComparison("<=", left, right)}
}
func (e *LessThanOrEqual) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	return comparisonWithChildren("LessThanOrEqual", func(l, r mv.Expression) mv.Expression { return NewLessThanOrEqual(l, r) }, children)
}
func (e *LessThanOrEqual) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewLessThanOrEqual(e.Left.TransformDown(f), e.Right.TransformDown(f)))
}

// GreaterThan is `left > right`.
type GreaterThan struct{ Comparison }

func NewGreaterThan(left, right mv.Expression) *GreaterThan {
	return &GreaterThan{newComparison(">", left, right)}
}
func (e *GreaterThan) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	return comparisonWithChildren("GreaterThan", func(l, r mv.Expression) mv.Expression { return NewGreaterThan(l, r) }, children)
}
func (e *GreaterThan) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewGreaterThan(e.Left.TransformDown(f), e.Right.TransformDown(f)))
}

// GreaterThanOrEqual is `left >= right`.
type GreaterThanOrEqual struct{ Comparison }

func NewGreaterThanOrEqual(left, right mv.Expression) *GreaterThanOrEqual {
	return &GreaterThanOrEqual{newComparison(">=", left, right)}
}
func (e *GreaterThanOrEqual) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	return comparisonWithChildren("GreaterThanOrEqual", func(l, r mv.Expression) mv.Expression { return NewGreaterThanOrEqual(l, r) }, children)
}
func (e *GreaterThanOrEqual) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewGreaterThanOrEqual(e.Left.TransformDown(f), e.Right.TransformDown(f)))
}

// IsEqualityComparison reports whether e is an Equals or NullSafeEquals —
// the equality-condition class of predicate.
func IsEqualityComparison(e mv.Expression) bool {
	switch e.(type) {
	case *Equals, *NullSafeEquals:
		return true
	default:
		return false
	}
}

// IsRangeComparison reports whether e is one of the four ordered
// comparisons the range algebra classifies.
func IsRangeComparison(e mv.Expression) bool {
	switch e.(type) {
	case *LessThan, *LessThanOrEqual, *GreaterThan, *GreaterThanOrEqual:
		return true
	default:
		return false
	}
}
