package expr

import "testing"

func sharedVar(name string) Var {
	return Var{Scope: Shared, Type: Int, Name: name}
}

func TestSmartConstructorPeepholeRules(t *testing.T) {
	if got := BoolAnd(); !got.Equal(BoolLit(true)) {
		t.Errorf("and [] = %s, want true", got)
	}
	if got := BoolOr(); !got.Equal(BoolLit(false)) {
		t.Errorf("or [] = %s, want false", got)
	}
	x := BoolVarOf(Var{Scope: Shared, Type: Bool, Name: "x"})
	if got := BoolAnd(x); !got.Equal(x) {
		t.Errorf("and [x] = %s, want x", got)
	}
	if got := Implies(BoolLit(false), x); !got.Equal(BoolLit(true)) {
		t.Errorf("implies(false,_) = %s, want true", got)
	}
	if got := Implies(x, BoolLit(true)); !got.Equal(BoolLit(true)) {
		t.Errorf("implies(_,true) = %s, want true", got)
	}
}

func TestEqDoesNotFoldSyntacticIdentity(t *testing.T) {
	v := IntVarOf(sharedVar("x"))
	got := Eq(v, v)
	if got.Equal(BoolLit(true)) {
		t.Fatalf("eq(x,x) must not fold to true (soundness w.r.t. symbols), got %s", got)
	}
	if _, ok := got.(*BoolEqExpr); !ok {
		t.Fatalf("eq(x,x) should remain a BoolEqExpr node, got %T", got)
	}
}

func TestMarkRecursesIntoSymbolArgsButNotName(t *testing.T) {
	v := sharedVar("x")
	sym := IntSymOf("myLatch", IntVarOf(v))
	marked := sym.Mark(Before, 0).(IntExpr)

	ref := marked.(*IntVarRef).Ref
	s, ok := ref.Symbol()
	if !ok {
		t.Fatalf("expected marked symbol to remain a symbol")
	}
	if s.Name != "myLatch" {
		t.Fatalf("symbol name must not be rewritten by marking, got %q", s.Name)
	}
	argRef := s.Args[0].(*IntVarRef).Ref
	argVar, ok := argRef.Reg()
	if !ok || argVar.Mark != Before {
		t.Fatalf("symbol argument must be marked, got %+v", argRef)
	}
}

func TestUnderapproximateBooleanPositionOnly(t *testing.T) {
	boolSym := BoolSymOf("P")
	got := Underapproximate(boolSym)
	if !got.Equal(BoolLit(false)) {
		t.Fatalf("positive-polarity boolean symbol should underapproximate to false, got %s", got)
	}

	negated := Underapproximate(Not(BoolSymOf("P")))
	if !negated.Equal(Not(BoolLit(true))) {
		t.Fatalf("symbol under a single negation should underapproximate to true, got %s", negated)
	}

	intSym := IntSymOf("f")
	predicate := Gt(intSym, &IntLiteral{Value: 0})
	got2 := Underapproximate(predicate)
	if _, ok := got2.(*BoolCompare).Lhs.(*IntVarRef); !ok {
		t.Fatalf("integer-position symbol must be left untouched, got %s", got2)
	}
}

// TestUnderapproximateNestedImplies checks the polarity of a doubly-nested
// implication: in implies(implies(sym, sym), sym), the antecedent's antecedent is at
// negative-then-negative = positive polarity, the inner consequent is at a
// single negation = negative polarity, and the outer consequent keeps the
// top-level positive polarity.
func TestUnderapproximateNestedImplies(t *testing.T) {
	inner := Implies(BoolSymOf("a"), BoolSymOf("b"))
	outer := Implies(inner, BoolSymOf("c"))

	got := Underapproximate(outer).(*BoolImpliesExpr)
	innerGot, ok := got.Antecedent.(*BoolImpliesExpr)
	if !ok {
		t.Fatalf("implies(false,_)/implies(_,true) folding must not fire here (no literal operands): got %T", got.Antecedent)
	}

	// innermost antecedent: flipped twice (negative, then negative again) => positive => false
	if !innerGot.Antecedent.Equal(BoolLit(false)) {
		t.Errorf("innermost antecedent should underapproximate to false (positive polarity), got %s", innerGot.Antecedent)
	}
	// inner's consequent: flipped once (negative, inherited) => negative => true
	if !innerGot.Consequent.Equal(BoolLit(true)) {
		t.Errorf("inner consequent should underapproximate to true (negative polarity), got %s", innerGot.Consequent)
	}
	// outer consequent: positive (top-level, inherited) => false
	if !got.Consequent.Equal(BoolLit(false)) {
		t.Errorf("outer consequent should underapproximate to false (positive polarity), got %s", got.Consequent)
	}
}

func TestFreeVarsAndHighestStage(t *testing.T) {
	v1 := sharedVar("t")
	v2 := sharedVar("s")
	e := IntAdd(IntVarOf(v1.markedAs(Intermediate, 2)), IntVarOf(v2.markedAs(Intermediate, 5)))

	fv := FreeVars(e)
	if len(fv) != 2 {
		t.Fatalf("expected 2 free vars, got %d", len(fv))
	}
	if got := HighestIntermediateStage(e); got != 5 {
		t.Fatalf("expected highest stage 5, got %d", got)
	}
}

func TestEliminateSymbolsFailsWhenSymbolRemains(t *testing.T) {
	_, ok := EliminateSymbols(BoolSymOf("p"))
	if ok {
		t.Fatalf("EliminateSymbols should fail in the presence of a symbol")
	}

	clean := BoolVarOf(Var{Scope: Shared, Type: Bool, Name: "x"})
	_, ok = EliminateSymbols(clean)
	if !ok {
		t.Fatalf("EliminateSymbols should succeed with no symbols present")
	}
}
