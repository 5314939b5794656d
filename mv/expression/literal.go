package expression

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// Literal is a constant value of a known type. Grounded on expression.Literal.
type Literal struct {
	value interface{}
	dataType mv.DataType
}

var _ mv.Expression = (*Literal)(nil)

// NewLiteral creates a Literal.
func NewLiteral(value interface{}, dataType mv.DataType) *Literal {
	return &Literal{value: value, dataType: dataType}
}

// Value returns the literal's Go value.
func (l *Literal) Value() interface{} { return l.value }

func (l *Literal) Resolved() bool { return true }
func (l *Literal) Type() mv.DataType { return l.dataType }
func (l *Literal) Name() string { return fmt.Sprintf("%v", l.value) }
func (l *Literal) Children() []mv.Expression { return nil }

func (l *Literal) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("Literal: invalid children number, got %d, expected 0", len(children))
	}
	return l, nil
}

func (l *Literal) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(l)
}

func (l *Literal) String() string {
	if s, ok := l.value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", l.value)
}
