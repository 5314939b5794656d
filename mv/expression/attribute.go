package expression

import (
	"fmt"

	"github.com/quillsql/mvrewrite/mv"
)

// AttributeRef is an expression referencing one column of a plan's input,
// optionally qualified by a table/alias name. It carries none of the
// row-index bookkeeping a row-evaluating expression would need, since
// this engine never evaluates rows.
type AttributeRef struct {
	name string
	qualifier string
	dataType mv.DataType
	nullable bool
}

var _ mv.Expression = (*AttributeRef)(nil)
var _ mv.Qualified = (*AttributeRef)(nil)

// NewAttributeRef creates an unqualified attribute reference.
func NewAttributeRef(name string, dataType mv.DataType) *AttributeRef {
	return &AttributeRef{name: name, dataType: dataType}
}

// NewQualifiedAttributeRef creates an attribute reference qualified by a
// table or alias name.
func NewQualifiedAttributeRef(qualifier, name string, dataType mv.DataType) *AttributeRef {
	return &AttributeRef{qualifier: qualifier, name: name, dataType: dataType}
}

func (a *AttributeRef) Resolved() bool { return a.dataType != mv.Invalid }
func (a *AttributeRef) Type() mv.DataType { return a.dataType }
func (a *AttributeRef) Name() string { return a.name }
func (a *AttributeRef) Qualifier() string { return a.qualifier }
func (a *AttributeRef) Children() []mv.Expression { return nil }

func (a *AttributeRef) WithChildren(children ...mv.Expression) (mv.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("AttributeRef: invalid children number, got %d, expected 0", len(children))
	}
	return a, nil
}

// WithQualifier returns a copy of a re-qualified by qualifier. Used by
// ProjectRewrite/GroupByRewrite to re-point a query attribute at the
// view's output.
func (a *AttributeRef) WithQualifier(qualifier string) *AttributeRef {
	cp := *a
	cp.qualifier = qualifier
	return &cp
}

func (a *AttributeRef) TransformDown(f func(mv.Expression) mv.Expression) mv.Expression {
	return f(a)
}

func (a *AttributeRef) String() string {
	if a.qualifier == "" {
		return a.name
	}
	return fmt.Sprintf("%s.%s", a.qualifier, a.name)
}
