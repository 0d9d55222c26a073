package view

import "github.com/BenSimner/starling-tool/internal/expr"

// Iterated wraps a VFunc with an optional multiplicity expression: `iter[n]
// f(...)` in source syntax means n copies of f's underlying func. A nil
// Mult means an ordinary, non-iterated element (multiplicity 1).
type Iterated struct {
	Mult *expr.IntExpr
	Func VFunc
}

// Normalise composes an Iterated element with a further multiplicity k,
// producing iter(f, m*k). If both m and k are integer literals, the product is constant-folded into a single
// IntLiteral; otherwise the multiplication is left symbolic.
func Normalise(it Iterated, k expr.IntExpr) Iterated {
	if it.Mult == nil {
		return Iterated{Mult: &k, Func: it.Func}
	}

	m := *it.Mult
	if mLit, ok := m.(*expr.IntLiteral); ok {
		if kLit, ok := k.(*expr.IntLiteral); ok {
			folded := expr.IntExpr(&expr.IntLiteral{Value: mLit.Value * kLit.Value})
			return Iterated{Mult: &folded, Func: it.Func}
		}
	}

	product := expr.IntMul(m, k)
	return Iterated{Mult: &product, Func: it.Func}
}

// IsIterated reports whether the element carries an explicit multiplicity.
func (it Iterated) IsIterated() bool { return it.Mult != nil }
