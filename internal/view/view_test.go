package view

import (
	"testing"

	"github.com/BenSimner/starling-tool/internal/expr"
)

func tvar(name string) expr.Var {
	return expr.Var{Scope: expr.ThreadLocal, Type: expr.Int, Name: name}
}

func TestMultisetUnionAndDifference(t *testing.T) {
	f := NewVFunc("holdTick", expr.IntVarOf(tvar("t")))
	v1 := SingletonView(f)
	v2 := SingletonView(f)

	u := UnionViews(v1, v2)
	if u.Count(f) != 2 {
		t.Fatalf("expected multiplicity 2 after union, got %d", u.Count(f))
	}

	d := DifferenceViews(u, v1)
	if d.Count(f) != 1 {
		t.Fatalf("expected multiplicity 1 after difference, got %d", d.Count(f))
	}

	d2 := DifferenceViews(v1, u)
	if d2.Count(f) != 0 {
		t.Fatalf("difference should clamp at zero, got %d", d2.Count(f))
	}
}

func TestMultisetEqualityIgnoresOrder(t *testing.T) {
	a := NewVFunc("a")
	b := NewVFunc("b")

	v1 := UnionViews(SingletonView(a), SingletonView(b))
	v2 := UnionViews(SingletonView(b), SingletonView(a))

	if !Equal[VFunc](v1, v2) {
		t.Fatalf("multisets with same elements in different insertion order should be equal")
	}
}

func TestFlattenIsDeterministic(t *testing.T) {
	a := NewVFunc("a")
	b := NewVFunc("b")
	v := UnionViews(SingletonView(a), SingletonView(b))

	first := FlattenView(v)
	second := FlattenView(v)
	if len(first) != len(second) {
		t.Fatalf("flatten should be stable across calls")
	}
	for i := range first {
		if first[i].Key() != second[i].Key() {
			t.Fatalf("flatten order changed between calls at index %d", i)
		}
	}
}

func TestGuardDistributesOverEveryElement(t *testing.T) {
	a := NewVFunc("holdLock")
	v := SingletonView(a)
	g := expr.BoolVarOf(expr.Var{Scope: expr.ThreadLocal, Type: expr.Bool, Name: "b"})

	gv := Guard(g, v)
	elems := gv.Flatten()
	if len(elems) != 1 {
		t.Fatalf("expected 1 guarded element, got %d", len(elems))
	}
	if !elems[0].Guard.Equal(g) {
		t.Fatalf("guard not distributed correctly")
	}
}

func TestGuardMergeOrsGuardsOfStructurallyEqualFuncs(t *testing.T) {
	a := NewVFunc("holdLock")
	g1 := expr.BoolVarOf(expr.Var{Scope: expr.ThreadLocal, Type: expr.Bool, Name: "b1"})
	g2 := expr.BoolVarOf(expr.Var{Scope: expr.ThreadLocal, Type: expr.Bool, Name: "b2"})

	gv := NewGView()
	gv.Add(g1, a)
	gv.Add(g2, a)

	elems := gv.Flatten()
	if len(elems) != 1 {
		t.Fatalf("structurally equal funcs should merge into one entry, got %d", len(elems))
	}
	want := expr.BoolOr(g1, g2)
	if !elems[0].Guard.Equal(want) {
		t.Fatalf("expected ORed guard %s, got %s", want, elems[0].Guard)
	}
}

func TestIteratedNormaliseFoldsConstants(t *testing.T) {
	f := NewVFunc("r")
	it := Iterated{Func: f}

	two := expr.IntExpr(&expr.IntLiteral{Value: 2})
	three := expr.IntExpr(&expr.IntLiteral{Value: 3})

	step1 := Normalise(it, two)
	step2 := Normalise(step1, three)

	lit, ok := (*step2.Mult).(*expr.IntLiteral)
	if !ok {
		t.Fatalf("expected folded literal multiplicity, got %T", *step2.Mult)
	}
	if lit.Value != 6 {
		t.Fatalf("expected 2*3=6, got %d", lit.Value)
	}
}

func TestCViewITEKeyDistinguishesBranches(t *testing.T) {
	f1 := NewVFunc("holdLock")
	f2 := NewVFunc("holdTick", expr.IntVarOf(tvar("t")))
	cond := expr.BoolVarOf(expr.Var{Scope: expr.ThreadLocal, Type: expr.Bool, Name: "c"})

	ite1 := CFuncITE{Cond: cond, Then: PlainCView(SingletonView(f1)), Else: PlainCView(SingletonView(f2))}
	ite2 := CFuncITE{Cond: cond, Then: PlainCView(SingletonView(f2)), Else: PlainCView(SingletonView(f1))}

	if ite1.Key() == ite2.Key() {
		t.Fatalf("ITE nodes with swapped branches must have distinct keys")
	}
}
