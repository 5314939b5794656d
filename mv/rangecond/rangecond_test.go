package rangecond_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/expression"
	"github.com/quillsql/mvrewrite/mv/rangecond"
)

func age(n int64) *expression.Literal {
	return expression.NewLiteral(n, mv.Long)
}

func ageKey() *expression.AttributeRef {
	return expression.NewAttributeRef("age", mv.Long)
}

func TestClassifyRecognizesEveryComparisonShape(t *testing.T) {
	r := require.New(t)

	cases := []struct {
		name string
		expr mv.Expression
	}{
		{"gt", expression.NewGreaterThan(ageKey(), age(10))},
		{"gte", expression.NewGreaterThanOrEqual(ageKey(), age(10))},
		{"lt", expression.NewLessThan(ageKey(), age(10))},
		{"lte", expression.NewLessThanOrEqual(ageKey(), age(10))},
		{"flipped gt", expression.NewGreaterThan(age(10), ageKey())},
		{"flipped gte", expression.NewGreaterThanOrEqual(age(10), ageKey())},
		{"flipped lt", expression.NewLessThan(age(10), ageKey())},
		{"flipped lte", expression.NewLessThanOrEqual(age(10), ageKey())},
	}
	for _, c := range cases {
		_, ok := rangecond.Classify(c.expr)
		r.True(ok, c.name)
	}

	_, ok := rangecond.Classify(expression.NewEquals(ageKey(), age(10)))
	r.False(ok, "equality is not a range comparison")
}

func TestMergeIntersectsTwoRanges(t *testing.T) {
	r := require.New(t)

	a, _ := rangecond.Classify(expression.NewGreaterThanOrEqual(ageKey(), age(10)))
	b, _ := rangecond.Classify(expression.NewLessThan(ageKey(), age(20)))

	merged := rangecond.Merge(a, b)
	r.Equal(int64(10), merged.Lower.Value())
	r.True(merged.InclLower)
	r.Equal(int64(20), merged.Upper.Value())
	r.False(merged.InclUpper)
}

func TestIsSubRangeTighterContainedInLooser(t *testing.T) {
	r := require.New(t)

	tight, _ := rangecond.Classify(expression.NewGreaterThanOrEqual(ageKey(), age(18)))
	loose, _ := rangecond.Classify(expression.NewGreaterThanOrEqual(ageKey(), age(10)))

	r.True(tight.IsSubRange(loose))
	r.False(loose.IsSubRange(tight))
}

func TestIsSubRangeStrictRejectsLooserInclusivityAtSharedBound(t *testing.T) {
	r := require.New(t)

	inclusive, _ := rangecond.Classify(expression.NewGreaterThanOrEqual(ageKey(), age(18)))
	exclusive, _ := rangecond.Classify(expression.NewGreaterThan(ageKey(), age(18)))

	r.True(inclusive.IsSubRange(exclusive))
	r.False(inclusive.IsSubRangeStrict(exclusive))
	r.True(exclusive.IsSubRangeStrict(inclusive))
}

func TestIsEmptyDetectsCrossedBounds(t *testing.T) {
	r := require.New(t)

	above, _ := rangecond.Classify(expression.NewGreaterThan(ageKey(), age(20)))
	below, _ := rangecond.Classify(expression.NewLessThan(ageKey(), age(10)))
	merged := rangecond.Merge(above, below)

	r.True(merged.IsEmpty())
}

func TestGroupAndMergeFoldsByKey(t *testing.T) {
	r := require.New(t)

	salaryKey := expression.NewAttributeRef("salary", mv.Long)
	conds := []*rangecond.RangeCondition{
		mustClassify(expression.NewGreaterThanOrEqual(ageKey(), age(10))),
		mustClassify(expression.NewLessThan(ageKey(), age(50))),
		mustClassify(expression.NewGreaterThan(salaryKey, age(1000))),
	}

	merged := rangecond.GroupAndMerge(conds)
	r.Len(merged, 2)
}

func mustClassify(e mv.Expression) *rangecond.RangeCondition {
	rc, ok := rangecond.Classify(e)
	if !ok {
		panic("not a range comparison")
	}
	return rc
}
