package expression

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// Alias gives its child expression an output name — `SUM(x) AS total`.
// Grounded on expression.Alias.
type Alias struct {
	Child mv.Expression
	name string
}

var _ mv.Expression = (*Alias)(nil)

func NewAlias(child mv.Expression, name string) *Alias {
	return &Alias{Child: child, name: name}
}

func (a *Alias) Resolved() bool { return a.Child.Resolved() }
func (a *Alias) Type() mv.DataType { return a.Child.Type() }
func (a *Alias) Name() string { return a.name }
func (a *Alias) Children() []mv.Expression { return []mv.Expression{a.Child} }

func (a *Alias) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("Alias: invalid children number, got %d, expected 1", len(children))
	}
	return NewAlias(children[0], a.name), nil
}

func (a *Alias) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewAlias(a.Child.TransformDown(f), a.name))
}

func (a *Alias) String() string {
	return fmt.Sprintf("%s AS %s", a.Child.String(), a.name)
}

// Unalias strips a top-level Alias, returning its child; if e is not an
// Alias, e is returned unchanged. Matchers compare aggregate expressions
// "modulo alias" by unaliasing both sides first.
func Unalias(e mv.Expression) mv.Expression {
	if al, ok := e.(*Alias); ok {
		return al.Child
	}
	return e
}
