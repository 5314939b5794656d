package expression

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// Cast wraps a child expression with a target type, the way the parser
// wraps a literal compared against a differently-typed column. Semantic
// equality (see semantic.go) treats a Cast around a Literal as cosmetic
// and strips it before comparing.
type Cast struct {
	Child mv.Expression
	castType mv.DataType
}

var _ mv.Expression = (*Cast)(nil)

// NewCast creates a Cast expression.
func NewCast(child mv.Expression, castType mv.DataType) *Cast {
	return &Cast{Child: child, castType: castType}
}

func (c *Cast) Resolved() bool { return c.Child.Resolved() }
func (c *Cast) Type() mv.DataType { return c.castType }
func (c *Cast) Name() string { return c.Child.Name() }

func (c *Cast) Children() []mv.Expression { return []mv.Expression{c.Child} }

func (c *Cast) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("Cast: invalid children number, got %d, expected 1", len(children))
	}
	return NewCast(children[0], c.castType), nil
}

func (c *Cast) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewCast(c.Child.TransformDown(f), c.castType))
}

func (c *Cast) String() string {
	return fmt.Sprintf("CAST(%s AS %s)", c.Child.String(), c.castType.String())
}
