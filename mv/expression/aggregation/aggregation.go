// Package aggregation implements the three aggregate calls AggMatcher and
// GroupByRewrite reason about: SUM, COUNT and AVG. It carries only the
// expression-tree shape of each call, stripped of any row-buffer
// accumulation logic, since this engine never evaluates an aggregate,
// only rewrites its expression tree.
package aggregation

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// unary is embedded by every aggregate call in this package.
type unary struct {
	Child mv.Expression
}

func (u *unary) Resolved() bool { return u.Child == nil || u.Child.Resolved() }
func (u *unary) Children() []mv.Expression { return []mv.Expression{u.Child} }

// Star is the argument of COUNT(*): a placeholder with no real type,
// distinguishing COUNT(*) from COUNT(col). Grounded on expression.Star.
type Star struct{}

var _ mv.Expression = Star{}

func (Star) Resolved() bool { return true }
func (Star) Type() mv.DataType { return mv.Invalid }
func (Star) Name() string { return "*" }
func (Star) Children() []mv.Expression { return nil }
func (Star) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("Star: invalid children number, got %d, expected 0", len(children))
	}
	return Star{}, nil
}
func (s Star) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression { return f(s) }
func (Star) String() string { return "*" }

// Sum is SUM(child).
type Sum struct{ unary }

var _ mv.Expression = (*Sum)(nil)

func NewSum(child mv.Expression) *Sum { return &Sum{unary{child}} }

func (s *Sum) Type() mv.DataType { return mv.Double }
func (s *Sum) Name() string { return fmt.Sprintf("SUM(%s)", s.Child.String()) }

func (s *Sum) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("Sum: invalid children number, got %d, expected 1", len(children))
	}
	return NewSum(children[0]), nil
}

func (s *Sum) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewSum(s.Child.TransformDown(f)))
}

func (s *Sum) String() string { return s.Name() }

// Count is COUNT(child) or, when Child is Star{}, COUNT(*).
type Count struct{ unary }

var _ mv.Expression = (*Count)(nil)

func NewCount(child mv.Expression) *Count { return &Count{unary{child}} }

// NewCountStar builds COUNT(*), the specific form calls
// "COUNT(1)" — the rendered SQL text is COUNT(*); the classification is
// keyed on the Star argument, not the literal 1.
func NewCountStar() *Count { return NewCount(Star{}) }

func (c *Count) Type() mv.DataType { return mv.Long }
func (c *Count) Name() string { return fmt.Sprintf("COUNT(%s)", c.Child.String()) }

func (c *Count) IsCountStar() bool {
	_, ok := c.Child.(Star)
	return ok
}

func (c *Count) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("Count: invalid children number, got %d, expected 1", len(children))
	}
	return NewCount(children[0]), nil
}

func (c *Count) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewCount(c.Child.TransformDown(f)))
}

func (c *Count) String() string { return c.Name() }

// Average is AVG(child).
type Average struct{ unary }

var _ mv.Expression = (*Average)(nil)

func NewAverage(child mv.Expression) *Average { return &Average{unary{child}} }

func (a *Average) Type() mv.DataType { return mv.Double }
func (a *Average) Name() string { return fmt.Sprintf("AVG(%s)", a.Child.String()) }

func (a *Average) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("Average: invalid children number, got %d, expected 1", len(children))
	}
	return NewAverage(children[0]), nil
}

func (a *Average) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewAverage(a.Child.TransformDown(f)))
}

func (a *Average) String() string { return a.Name() }

// Div is `left / right`, the arithmetic AggMatcher builds when it replaces
// an AVG with SUM(k) / view_count_attr.
type Div struct {
	Left, Right mv.Expression
}

var _ mv.Expression = (*Div)(nil)

func NewDiv(left, right mv.Expression) *Div { return &Div{left, right} }

func (d *Div) Resolved() bool { return d.Left.Resolved() && d.Right.Resolved() }
func (d *Div) Type() mv.DataType { return mv.Double }
func (d *Div) Name() string { return fmt.Sprintf("%s / %s", d.Left.Name(), d.Right.Name()) }
func (d *Div) Children() []mv.Expression { return []mv.Expression{d.Left, d.Right} }

func (d *Div) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("Div: invalid children number, got %d, expected 2", len(children))
	}
	return NewDiv(children[0], children[1]), nil
}

func (d *Div) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(NewDiv(d.Left.TransformDown(f), d.Right.TransformDown(f)))
}

func (d *Div) String() string { return fmt.Sprintf("%s / %s", d.Left.String(), d.Right.String()) }
