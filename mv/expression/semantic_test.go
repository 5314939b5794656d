package expression_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/expression"
)

func TestSemanticEqualsIgnoresQualifier(t *testing.T) {
	r := require.New(t)

	a := expression.NewQualifiedAttributeRef("orders", "status", mv.String)
	b := expression.NewQualifiedAttributeRef("o", "status", mv.String)

	r.True(expression.SemanticEquals(a, b))
}

func TestSemanticEqualsStripsCosmeticCastAroundLiteral(t *testing.T) {
	r := require.New(t)

	raw := expression.NewLiteral(int64(5), mv.Long)
	cast := expression.NewCast(expression.NewLiteral(int64(5), mv.Long), mv.Long)

	r.True(expression.SemanticEquals(raw, cast))
}

func TestSemanticEqualsCastAroundAttributeIsSignificant(t *testing.T) {
	r := require.New(t)

	attr := expression.NewAttributeRef("amount", mv.Double)
	cast := expression.NewCast(attr, mv.Double)

	r.False(expression.SemanticEquals(attr, cast))
}

func TestSemanticEqualsDoesNotCommuteOverDifferentOperatorOrder(t *testing.T) {
	r := require.New(t)

	a := expression.NewAttributeRef("a", mv.Long)
	b := expression.NewAttributeRef("b", mv.Long)

	left := expression.NewEquals(a, b)
	right := expression.NewEquals(b, a)

	r.False(expression.SemanticEquals(left, right))
}

func TestIsSubsetOfIgnoresDuplicatesAndOrder(t *testing.T) {
	r := require.New(t)

	x := expression.NewAttributeRef("x", mv.Long)
	y := expression.NewAttributeRef("y", mv.Long)

	sub := []mv.Expression{
		expression.NewEquals(x, expression.NewLiteral(int64(1), mv.Long)),
		expression.NewEquals(x, expression.NewLiteral(int64(1), mv.Long)),
	}
	super := []mv.Expression{
		expression.NewEquals(y, expression.NewLiteral(int64(2), mv.Long)),
		expression.NewEquals(x, expression.NewLiteral(int64(1), mv.Long)),
	}

	r.True(expression.IsSubsetOf(sub, super))
	r.False(expression.IsSubsetOf(super, sub))
}

func TestDifferenceKeepsOrderAndDropsMatches(t *testing.T) {
	r := require.New(t)

	x := expression.NewAttributeRef("x", mv.Long)
	eq1 := expression.NewEquals(x, expression.NewLiteral(int64(1), mv.Long))
	eq2 := expression.NewEquals(x, expression.NewLiteral(int64(2), mv.Long))

	diff := expression.Difference([]mv.Expression{eq1, eq2}, []mv.Expression{eq1})
	r.Len(diff, 1)
	r.True(expression.SemanticEquals(diff[0], eq2))
}
