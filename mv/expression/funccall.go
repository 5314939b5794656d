package expression

import (
	"fmt"
	"strings"

	"github.com/quillsql/mvrewrite/mv"
)

// FuncCall is an opaque scalar function invocation — `LIKE`, `REGEXP`,
// user-defined functions, anything the range and equality classifiers in
// do not recognize. It always lands in the "residual
// conditions" bucket, matched only by exact SemanticEquals since the
// engine has no algebra for arbitrary functions.
type FuncCall struct {
	FuncName string
	Args []mv.Expression
	retType mv.DataType
}

var _ mv.Expression = (*FuncCall)(nil)

func NewFuncCall(name string, retType mv.DataType, args ...mv.Expression) *FuncCall {
	return &FuncCall{FuncName: name, Args: args, retType: retType}
}

func (c *FuncCall) Resolved() bool { return mv.ExpressionsResolved(c.Args...) }
func (c *FuncCall) Type() mv.DataType { return c.retType }
func (c *FuncCall) Name() string { return c.FuncName }
func (c *FuncCall) Children() []mv.Expression { return c.Args }

func (c *FuncCall) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != len(c.Args) {
		return nil, fmt.Errorf("FuncCall %s: invalid children number, got %d, expected %d", c.FuncName, len(children), len(c.Args))
	}
	return NewFuncCall(c.FuncName, c.retType, children...), nil
}

func (c *FuncCall) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	newArgs := make([]mv.Expression, len(c.Args))
	for i, a := range c.Args {
		newArgs[i] = a.TransformDown(f)
	}
	return f(NewFuncCall(c.FuncName, c.retType, newArgs...))
}

func (c *FuncCall) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.FuncName, strings.Join(parts, ", "))
}
