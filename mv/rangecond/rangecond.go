// Package rangecond implements a small range algebra: it normalizes a
// conjunctive predicate of the shape `cmp(key, literal)` (or the flipped
// `cmp(literal, key)`) into a RangeCondition, merges same-key ranges by
// intersection, and tests sub-range containment. The two-optional-bound
// shape is a simplified form of a bounded cut pair over a single column.
package rangecond

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/expression"
)

// RangeCondition is the normalized interval of a single keyed expression:
// at most one lower and one upper literal bound, each with its own
// inclusivity flag. Merging two ranges can produce an empty one (lower >
// upper) without detecting it — see IsEmpty below, which callers may
// invoke explicitly; Merge never calls it automatically.
type RangeCondition struct {
	Key mv.Expression
	Lower *expression.Literal
	Upper *expression.Literal
	InclLower bool
	InclUpper bool
}

// Classify recognizes a single comparison of a keyed expression against a
// literal (optionally Cast-wrapped) on either side, across the eight
// combinations of {<, <=, >, >=} x {key on left, key on right}. ok is
// false if cmp is not one of those recognized shapes.
func Classify(cmp mv.Expression) (rc *RangeCondition, ok bool) {
	key, lit, keyOnLeft, recognized := splitKeyLiteral(cmp)
	if !recognized {
		return nil, false
	}

	switch cmp.(type) {
	case *expression.GreaterThan:
		if keyOnLeft {
			return &RangeCondition{Key: key, Lower: lit, InclLower: false}, true
		}
		return &RangeCondition{Key: key, Upper: lit, InclUpper: false}, true
	case *expression.GreaterThanOrEqual:
		if keyOnLeft {
			return &RangeCondition{Key: key, Lower: lit, InclLower: true}, true
		}
		return &RangeCondition{Key: key, Upper: lit, InclUpper: true}, true
	case *expression.LessThan:
		if keyOnLeft {
			return &RangeCondition{Key: key, Upper: lit, InclUpper: false}, true
		}
		return &RangeCondition{Key: key, Lower: lit, InclLower: false}, true
	case *expression.LessThanOrEqual:
		if keyOnLeft {
			return &RangeCondition{Key: key, Upper: lit, InclUpper: true}, true
		}
		return &RangeCondition{Key: key, Lower: lit, InclLower: true}, true
	default:
		return nil, false
	}
}

// splitKeyLiteral recognizes `key cmp literal` or `literal cmp key`,
// unwrapping a cosmetic Cast around the literal operand.
func splitKeyLiteral(cmp mv.Expression) (key mv.Expression, lit *expression.Literal, keyOnLeft bool, ok bool) {
	if !expression.IsRangeComparison(cmp) {
		return nil, nil, false, false
	}
	children := cmp.Children()
	if len(children) != 2 {
		return nil, nil, false, false
	}
	left, right := children[0], children[1]

	if l, isLit := unwrapLiteral(right); isLit {
		return left, l, true, true
	}
	if l, isLit := unwrapLiteral(left); isLit {
		return right, l, false, true
	}
	return nil, nil, false, false
}

func unwrapLiteral(e mv.Expression) (*expression.Literal, bool) {
	if c, ok := e.(*expression.Cast); ok {
		e = c.Child
	}
	l, ok := e.(*expression.Literal)
	return l, ok
}

// Merge combines two RangeConditions with the same key into their
// intersection: the greater lower bound (preferring the tighter
// inclusivity on a tie) and the lesser upper bound. Merge panics via
// mv.ErrUnsupportedRangeType if the key's type cannot be ordered.
func Merge(a, b *RangeCondition) *RangeCondition {
	if !expression.SemanticEquals(a.Key, b.Key) {
		panic(mv.ErrMalformedComponent.New("Merge: mismatched keys"))
	}

	out := &RangeCondition{Key: a.Key}

	switch {
	case a.Lower == nil:
		out.Lower, out.InclLower = b.Lower, b.InclLower
	case b.Lower == nil:
		out.Lower, out.InclLower = a.Lower, a.InclLower
	default:
		c := compareLiterals(a.Lower, b.Lower)
		switch {
		case c > 0:
			out.Lower, out.InclLower = a.Lower, a.InclLower
		case c < 0:
			out.Lower, out.InclLower = b.Lower, b.InclLower
		default:
			out.Lower = a.Lower
			out.InclLower = a.InclLower && b.InclLower
		}
	}

	switch {
	case a.Upper == nil:
		out.Upper, out.InclUpper = b.Upper, b.InclUpper
	case b.Upper == nil:
		out.Upper, out.InclUpper = a.Upper, a.InclUpper
	default:
		c := compareLiterals(a.Upper, b.Upper)
		switch {
		case c < 0:
			out.Upper, out.InclUpper = a.Upper, a.InclUpper
		case c > 0:
			out.Upper, out.InclUpper = b.Upper, b.InclUpper
		default:
			out.Upper = a.Upper
			out.InclUpper = a.InclUpper && b.InclUpper
		}
	}

	return out
}

// GroupAndMerge groups conds by semantic key equality and folds each
// group with Merge, yielding one canonical RangeCondition per distinct
// key. Order of the returned slice follows first-occurrence order of each
// key in conds.
func GroupAndMerge(conds []*RangeCondition) []*RangeCondition {
	var keys []mv.Expression
	byKey := map[int]*RangeCondition{}

	indexOf := func(key mv.Expression) int {
		for i, k := range keys {
			if expression.SemanticEquals(k, key) {
				return i
			}
		}
		return -1
	}

	for _, c := range conds {
		idx := indexOf(c.Key)
		if idx == -1 {
			keys = append(keys, c.Key)
			byKey[len(keys)-1] = c
			continue
		}
		byKey[idx] = Merge(byKey[idx], c)
	}

	out := make([]*RangeCondition, len(keys))
	for i := range keys {
		out[i] = byKey[i]
	}
	return out
}

// IsSubRange reports whether self ⊆ other: same key, self's lower bound is
// at least as tight (>= other's, treating an absent lower as -inf), and
// self's upper bound is at least as tight (<= other's, treating an absent
// upper as +inf). Inclusivity is *not* compared numerically here — this
// is an accepted approximation, e.g. `x > 5` is treated as a sub-range of
// `x >= 5` and vice versa. Use IsSubRangeStrict for containment that
// accounts for inclusivity.
func (self *RangeCondition) IsSubRange(other *RangeCondition) bool {
	if !expression.SemanticEquals(self.Key, other.Key) {
		return false
	}
	if other.Lower != nil {
		if self.Lower == nil || compareLiterals(self.Lower, other.Lower) < 0 {
			return false
		}
	}
	if other.Upper != nil {
		if self.Upper == nil || compareLiterals(self.Upper, other.Upper) > 0 {
			return false
		}
	}
	return true
}

// IsSubRangeStrict is IsSubRange plus correct inclusivity accounting: a
// boundary shared with `other` is only safe when self is no more
// permissive there (e.g. self inclusive at a bound equal to an exclusive
// `other` bound is NOT contained). New callers that need exact
// containment should prefer this over IsSubRange.
func (self *RangeCondition) IsSubRangeStrict(other *RangeCondition) bool {
	if !expression.SemanticEquals(self.Key, other.Key) {
		return false
	}
	if other.Lower != nil {
		if self.Lower == nil {
			return false
		}
		c := compareLiterals(self.Lower, other.Lower)
		if c < 0 {
			return false
		}
		if c == 0 && !other.InclLower && self.InclLower {
			return false
		}
	}
	if other.Upper != nil {
		if self.Upper == nil {
			return false
		}
		c := compareLiterals(self.Upper, other.Upper)
		if c > 0 {
			return false
		}
		if c == 0 && !other.InclUpper && self.InclUpper {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the range is provably empty (lower > upper, or
// lower == upper with either bound exclusive). Merging two ranges never checks
// this automatically after Merge — callers that want the stricter
// behavior call it explicitly.
func (r *RangeCondition) IsEmpty() bool {
	if r.Lower == nil || r.Upper == nil {
		return false
	}
	c := compareLiterals(r.Lower, r.Upper)
	if c > 0 {
		return true
	}
	if c == 0 && (!r.InclLower || !r.InclUpper) {
		return true
	}
	return false
}

// ToExpression renders the RangeCondition back to 0, 1 or 2 comparison
// expressions. Each literal bound is wrapped in Cast(_, key.Type()) to
// match the shape the parser originally produced.
func (r *RangeCondition) ToExpression() []mv.Expression {
	var out []mv.Expression
	if r.Lower != nil {
		lit := expression.NewCast(r.Lower, r.Key.Type())
		if r.InclLower {
			out = append(out, expression.NewGreaterThanOrEqual(r.Key, lit))
		} else {
			out = append(out, expression.NewGreaterThan(r.Key, lit))
		}
	}
	if r.Upper != nil {
		lit := expression.NewCast(r.Upper, r.Key.Type())
		if r.InclUpper {
			out = append(out, expression.NewLessThanOrEqual(r.Key, lit))
		} else {
			out = append(out, expression.NewLessThan(r.Key, lit))
		}
	}
	return out
}

// compareLiterals orders two literals of (assumed) the same data type.
// Short|Int|Long|Float|Double compare numerically via github.com/spf13/cast
// coercion to float64; String compares lexicographically. Any other type
// panics with mv.ErrUnsupportedRangeType.
func compareLiterals(a, b *expression.Literal) int {
	dt := a.Type()
	if dt == mv.Invalid {
		dt = b.Type()
	}

	switch {
	case dt.IsNumeric():
		av, err := cast.ToFloat64E(a.Value())
		if err != nil {
			panic(mv.ErrUnsupportedRangeType.New(dt.String()))
		}
		bv, err := cast.ToFloat64E(b.Value())
		if err != nil {
			panic(mv.ErrUnsupportedRangeType.New(dt.String()))
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case dt == mv.String:
		as, aok := a.Value().(string)
		bs, bok := b.Value().(string)
		if !aok || !bok {
			panic(mv.ErrUnsupportedRangeType.New(dt.String()))
		}
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	default:
		panic(mv.ErrUnsupportedRangeType.New(dt.String()))
	}
}

func (r *RangeCondition) String() string {
	lo := "-inf"
	if r.Lower != nil {
		lo = fmt.Sprintf("%v", r.Lower.Value())
	}
	hi := "+inf"
	if r.Upper != nil {
		hi = fmt.Sprintf("%v", r.Upper.Value())
	}
	loB, hiB := "(", ")"
	if r.InclLower {
		loB = "["
	}
	if r.InclUpper {
		hiB = "]"
	}
	return fmt.Sprintf("%s%s, %s%s on %s", loB, lo, hi, hiB, r.Key.String())
}
