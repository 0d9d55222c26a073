package expr

// Polarity tracks whether the current position in an expression tree is
// positive or negative. It flips on each negation and on the antecedent of
// an implication; this is what lets underapproximation of a symbol be
// sound: the replacement a Boolean-position symbol receives depends on the
// polarity of the position it occurs in, and tracking that structurally
// (rather than re-traversing to rediscover it) is the reason this exists
// as an explicit context value instead of ambient state.
type Polarity int

const (
	Positive Polarity = iota
	Negative
)

// Flip returns the opposite polarity.
func (p Polarity) Flip() Polarity {
	if p == Positive {
		return Negative
	}
	return Positive
}

// SymbolPolicy is invoked by Substitute at every Ref (regular or symbolic)
// it encounters, in the position's current polarity. kind is the static
// type of the position (Int or Bool). Returning ok=false leaves the
// reference as-is.
type SymbolPolicy func(pol Polarity, kind Type, ref Ref[Var]) (replacement Expr, ok bool)

// IdentitySymbolPolicy never rewrites anything; used for plain traversal.
func IdentitySymbolPolicy(Polarity, Type, Ref[Var]) (Expr, bool) {
	return nil, false
}

// UnderapproximatePolicy implements the symbol-underapproximation rule: a
// symbol occurring in a Boolean position is replaced by false in positive
// polarity and true in negative polarity. Integer positions are untouched.
// Regular variables are never rewritten.
func UnderapproximatePolicy(pol Polarity, kind Type, ref Ref[Var]) (Expr, bool) {
	if !ref.IsSymbol() {
		return nil, false
	}
	if kind != Bool {
		return nil, false
	}
	return BoolLit(pol == Negative), true
}

// Underapproximate rewrites every Boolean-position symbol in e to
// false/true according to its polarity, starting from Positive.
func Underapproximate(e Expr) Expr {
	return e.Substitute(Positive, UnderapproximatePolicy)
}
