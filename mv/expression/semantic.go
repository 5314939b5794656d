package expression

import (
	"reflect"

	"github.com/quillsql/mvrewrite/mv"
)

// SemanticEquals compares two expressions for shape and attribute
// identity, ignoring AttributeRef qualifiers and stripping a Cast wrapped
// directly around a Literal on either side. This is not full logical
// equivalence: `a+b=c` and `c=a+b` are not semantically equal under this
// definition — operand order within a binary expression is significant.
func SemanticEquals(a, b mv.Expression) bool {
	a = stripCosmeticCast(a)
	b = stripCosmeticCast(b)

	switch av := a.(type) {
	case *AttributeRef:
		bv, ok := b.(*AttributeRef)
		return ok && mv.EqualFold(av.name, bv.name)
	case *Literal:
		bv, ok := b.(*Literal)
		return ok && av.dataType == bv.dataType && av.value == bv.value
	case *Cast:
		bv, ok := b.(*Cast)
		return ok && av.castType == bv.castType && SemanticEquals(av.Child, bv.Child)
	case *Equals:
		return semanticEqualsBinary(av.Left, av.Right, b, func(e mv.Expression) (mv.Expression, mv.Expression, bool) {
			v, ok := e.(*Equals)
			if !ok {
				return nil, nil, false
			}
			return v.Left, v.Right, true
		})
	case *NullSafeEquals:
		return semanticEqualsBinary(av.Left, av.Right, b, func(e mv.Expression) (mv.Expression, mv.Expression, bool) {
			v, ok := e.(*NullSafeEquals)
			if !ok {
				return nil, nil, false
			}
			return v.Left, v.Right, true
		})
	case *LessThan:
		return semanticEqualsBinary(av.Left, av.Right, b, func(e mv.Expression) (mv.Expression, mv.Expression, bool) {
			v, ok := e.(*LessThan)
			if !ok {
				return nil, nil, false
			}
			return v.Left, v.Right, true
		})
	case *LessThanOrEqual:
		return semanticEqualsBinary(av.Left, av.Right, b, func(e mv.Expression) (mv.Expression, mv.Expression, bool) {
			v, ok := e.(*LessThanOrEqual)
			if !ok {
				return nil, nil, false
			}
			return v.Left, v.Right, true
		})
	case *GreaterThan:
		return semanticEqualsBinary(av.Left, av.Right, b, func(e mv.Expression) (mv.Expression, mv.Expression, bool) {
			v, ok := e.(*GreaterThan)
			if !ok {
				return nil, nil, false
			}
			return v.Left, v.Right, true
		})
	case *GreaterThanOrEqual:
		return semanticEqualsBinary(av.Left, av.Right, b, func(e mv.Expression) (mv.Expression, mv.Expression, bool) {
			v, ok := e.(*GreaterThanOrEqual)
			if !ok {
				return nil, nil, false
			}
			return v.Left, v.Right, true
		})
	case *And:
		bv, ok := b.(*And)
		return ok && SemanticEquals(av.Left, bv.Left) && SemanticEquals(av.Right, bv.Right)
	case *Alias:
		bv, ok := b.(*Alias)
		return ok && mv.EqualFold(av.name, bv.name) && SemanticEquals(av.Child, bv.Child)
	default:
		return sameFunctionShape(a, b)
	}
}

func semanticEqualsBinary(left, right mv.Expression, b mv.Expression, split func(mv.Expression) (mv.Expression, mv.Expression, bool)) bool {
	bl, br, ok := split(b)
	if !ok {
		return false
	}
	return SemanticEquals(left, bl) && SemanticEquals(right, br)
}

// stripCosmeticCast removes a Cast that wraps a Literal directly — the
// query planner emits these around literal bounds. A Cast around
// anything else (an AttributeRef, a function call) is significant and is
// left in place.
func stripCosmeticCast(e mv.Expression) mv.Expression {
	if c, ok := e.(*Cast); ok {
		if _, isLiteral := c.Child.(*Literal); isLiteral {
			return c.Child
		}
	}
	return e
}

// sameFunctionShape is the fallback comparison for expression kinds this
// package does not special-case (residual predicates: function calls,
// unsupported comparisons). Two nodes match only if they are the exact
// same Go type with pairwise-semantically-equal children — an exact
// syntactic match, which is the intended behavior for residual
// conditions.
func sameFunctionShape(a, b mv.Expression) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !SemanticEquals(ac[i], bc[i]) {
			return false
		}
	}
	return a.String() == b.String()
}

// IsSubsetOf reports whether every element of a semantically equals some
// element of b. Both slices are treated as unordered sets: duplicates in
// a are not required to have distinct matches in b.
func IsSubsetOf(a, b []mv.Expression) bool {
	for _, ae := range a {
		found := false
		for _, be := range b {
			if SemanticEquals(ae, be) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Difference returns the elements of a that do not semantically equal any
// element of b, preserving a's order. Used to compute "the extra query
// equalities/residuals" compensation.
func Difference(a, b []mv.Expression) []mv.Expression {
	var out []mv.Expression
	for _, ae := range a {
		matched := false
		for _, be := range b {
			if SemanticEquals(ae, be) {
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, ae)
		}
	}
	return out
}

// ExtractAttributeRefs walks e and returns every AttributeRef it contains,
// including e itself if it is one.
func ExtractAttributeRefs(e mv.Expression) []*AttributeRef {
	var out []*AttributeRef
	var walk func(mv.Expression)
	walk = func(x mv.Expression) {
		if ar, ok := x.(*AttributeRef); ok {
			out = append(out, ar)
		}
		for _, c := range x.Children() {
			walk(c)
		}
	}
	walk(e)
	return out
}
