package expression

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// And is a conjunction of two boolean expressions. Grounded on the
// teacher's expression.And.
type And struct{ BinaryExpression }

var _ mv.Expression = (*And)(nil)

func NewAnd(left, right mv.Expression) *And {
	return &And{BinaryExpression{left, right}}
}

func (a *And) Type() mv.DataType { return mv.Boolean }
func (a *And) Name() string { return "" }

func (a *And) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("And: invalid children number, got %d, expected 2", len(children))
	}
	return NewAnd(children[0], children[1]), nil
}

func (a *And) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewAnd(a.Left.TransformDown(f), a.Right.TransformDown(f)))
}

func (a *And) String() string {
	return fmt.Sprintf("(%s AND %s)", a.Left.String(), a.Right.String())
}

// JoinAnd folds a slice of boolean expressions into a single right-nested
// And tree, or returns nil for an empty slice, or the sole expression for
// a one-element slice. Used by PredicateRewrite to build the compensating
// filter condition.
func JoinAnd(exprs ...mv.Expression) mv.Expression {
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		result := exprs[len(exprs)-1]
		for i := len(exprs) - 2; i >= 0; i-- {
			result = NewAnd(exprs[i], result)
		}
		return result
	}
}
