package expr

// EliminateSymbols returns e unchanged alongside ok=true if no symbol
// occurs anywhere in e; ok=false signals failure, to be used by downstream
// SMT encoding which cannot represent a remaining symbol. The core never
// attempts to synthesize a symbol's meaning -- callers are expected to
// have already run Underapproximate on Boolean positions before this
// pass, since that is the only sound way to discharge a symbol within the
// core; any symbol surviving that (in particular, any symbol in an
// integer position) makes this pass fail.
func EliminateSymbols(e Expr) (Expr, bool) {
	if e.ContainsSymbol() {
		return e, false
	}
	return e, true
}
