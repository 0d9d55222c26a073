package model

import (
	"bufio"
	"sort"
	"strings"
	"testing"

	"github.com/BenSimner/starling-tool/internal/collate"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/syntax"
	"github.com/BenSimner/starling-tool/internal/view"
	"github.com/google/go-cmp/cmp"
)

func build(t *testing.T, src string) (*Model[view.CView], *report.Bag) {
	t.Helper()
	items, err := syntax.ParseFile(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	m, bag := BuildModel(collate.Collate(items))
	return m, bag
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestBuildModelEmptyScript(t *testing.T) {
	m, bag := build(t, "")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	if len(m.Globals) != 0 || len(m.Locals) != 0 || len(m.MethodOrder) != 0 || len(m.ViewDefs) != 0 {
		t.Fatalf("expected an entirely empty model, got %#v", m)
	}
	if len(m.Semantics) == 0 {
		t.Fatalf("expected the base semantics templates even for an empty script")
	}
}

func TestBuildModelTicketLock(t *testing.T) {
	src := `
		shared int ticket;
		shared int serving;
		thread int t;
		thread int s;

		view holdTick(int t);
		view holdLock();

		constraint emp -> ticket >= serving;
		constraint holdTick(t) -> ticket > t;
		constraint holdLock() -> ticket != serving;

		method lock() {
			{| emp |}
			<t = ticket>
			{| emp |}
			<ticket++>
			{| holdTick(t) |}
			do {
				{| holdTick(t) |}
				<s = serving>
				{| holdTick(t) |}
			} while (s != t)
			{| holdLock() |}
		}

		method unlock() {
			{| holdLock() |}
			<serving++>
			{| emp |}
		}
	`
	m, bag := build(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}

	if diff := cmp.Diff([]string{"serving", "ticket"}, sortedKeys(m.Globals)); diff != "" {
		t.Fatalf("unexpected globals (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"s", "t"}, sortedKeys(m.Locals)); diff != "" {
		t.Fatalf("unexpected locals (-want +got):\n%s", diff)
	}
	if len(m.ViewDefs) != 3 {
		t.Fatalf("expected 3 view_defs, got %d", len(m.ViewDefs))
	}
	if diff := cmp.Diff([]string{"lock", "unlock"}, append([]string{}, m.MethodOrder...)); diff != "" {
		t.Fatalf("unexpected method order (-want +got):\n%s", diff)
	}
	if len(m.Axioms) != 2 {
		t.Fatalf("expected 2 axioms, got %d", len(m.Axioms))
	}
	if _, ok := m.Axioms["lock"]; !ok {
		t.Fatalf("missing axiom for lock")
	}
	if _, ok := m.Axioms["unlock"]; !ok {
		t.Fatalf("missing axiom for unlock")
	}
}

func TestBuildModelConditionalViewFlattensToITE(t *testing.T) {
	src := `
		shared bool flag;
		view heldIf(int x);

		method m() {
			{| if flag then heldIf(1) else emp |}
			<skip()>
			{| emp |}
		}
	`
	m, bag := build(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	body := m.Axioms["m"]
	if len(body.Views) == 0 {
		t.Fatalf("expected at least one view")
	}
	first := body.Views[0]
	if first.Len() != 1 {
		t.Fatalf("expected exactly one CFunc in the first view, got %d", first.Len())
	}
	found := false
	for _, f := range first.Distinct() {
		if _, ok := f.(view.CFuncITE); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the conditional view to flatten into a CFuncITE, got %#v", first)
	}
	if len(m.ViewDefs) != 1 {
		t.Fatalf("expected heldIf's missing constraint to still get one view_def, got %d: %#v", len(m.ViewDefs), m.ViewDefs)
	}
	if m.ViewDefs[0].Kind != view.Indefinite || len(m.ViewDefs[0].Signature) != 1 || m.ViewDefs[0].Signature[0].Name != "heldIf" {
		t.Fatalf("expected an indefinite view_def for heldIf, got %#v", m.ViewDefs[0])
	}
}

func TestBuildModelEveryPrototypeGetsExactlyOneViewDef(t *testing.T) {
	src := `
		shared int ticket;
		view holdTick(int t);
		view holdLock();

		constraint holdTick(t) -> ticket > t;

		method m() {
			{| emp |}
			<skip()>
			{| emp |}
		}
	`
	m, bag := build(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}

	covered := map[string]view.ViewDefKind{}
	for _, vd := range m.ViewDefs {
		for _, f := range vd.Signature {
			if _, seen := covered[f.Name]; seen {
				t.Fatalf("prototype %q covered by more than one view_def", f.Name)
			}
			covered[f.Name] = vd.Kind
		}
	}
	for name := range m.Prototypes {
		kind, ok := covered[name]
		if !ok {
			t.Fatalf("prototype %q has no view_def at all", name)
		}
		if name == "holdTick" && kind != view.Definite {
			t.Fatalf("expected holdTick's constraint to produce a Definite view_def, got %v", kind)
		}
		if name == "holdLock" && kind != view.Indefinite {
			t.Fatalf("expected holdLock's missing constraint to fall back to Indefinite, got %v", kind)
		}
	}
}

func TestBuildModelCASLockSemantics(t *testing.T) {
	src := `
		shared bool lock;
		thread bool test;

		method acquire() {
			{| emp |}
			<CAS(lock, test, true)>
			{| emp |}
		}
	`
	m, bag := build(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Errors())
	}
	var found bool
	for _, sem := range m.Semantics {
		if sem.Sig.Name == "cas_bool" {
			found = true
			if sem.Sig.Arity() != 3 {
				t.Fatalf("expected cas_bool to take 3 parameters, got %d", sem.Sig.Arity())
			}
		}
	}
	if !found {
		t.Fatalf("expected a cas_bool semantic template to be registered")
	}

	axiom := m.Axioms["acquire"]
	prim, ok := axiom.Steps[0].(PrimCmd[view.CView])
	if !ok {
		t.Fatalf("expected the sole step to be a PrimCmd, got %#v", axiom.Steps[0])
	}
	if len(prim.Cmd) != 1 || prim.Cmd[0].Name != "cas_bool" {
		t.Fatalf("expected a single cas_bool command, got %#v", prim.Cmd)
	}
	if len(prim.Cmd[0].Results) != 2 {
		t.Fatalf("expected CAS to report 2 written results (dest, test), got %d", len(prim.Cmd[0].Results))
	}
}

func TestBuildModelTypeErrorOnBooleanContext(t *testing.T) {
	src := `
		shared int x;
		constraint emp -> x && true;
	`
	_, bag := build(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected a TypeMismatch error")
	}
	var found bool
	for _, d := range bag.Errors() {
		if me, ok := d.Err.(*report.ModelError); ok && me.Kind == report.TypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ModelError of kind TypeMismatch, got %v", bag.Errors())
	}
}

func TestBuildModelUnknownIdentifier(t *testing.T) {
	src := `
		method m() {
			{| emp |}
			<x = 1>
			{| emp |}
		}
	`
	_, bag := build(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected an UnknownIdentifier error")
	}
}

func TestBuildModelConstraintCannotSeeThreadLocal(t *testing.T) {
	src := `
		thread int t;
		view v(int x);
		constraint v(x) -> t > 0;
	`
	_, bag := build(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected a ConstraintScopeViolation error")
	}
}
