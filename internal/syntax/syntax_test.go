package syntax

import (
	"bufio"
	"strings"
	"testing"
)

func parseSource(t *testing.T, src string) []ScriptItem {
	t.Helper()
	items, err := ParseFile(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return items
}

func TestParseGlobalAndLocalDecls(t *testing.T) {
	items := parseSource(t, `
		shared int x;
		thread bool b;
	`)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	g, ok := items[0].(*GlobalDecl)
	if !ok || g.Name.Type != "int" || g.Name.Name != "x" {
		t.Fatalf("unexpected first item: %#v", items[0])
	}
	l, ok := items[1].(*LocalDecl)
	if !ok || l.Name.Type != "bool" || l.Name.Name != "b" {
		t.Fatalf("unexpected second item: %#v", items[1])
	}
}

func TestParseViewPrototypeAndConstraint(t *testing.T) {
	items := parseSource(t, `
		view holdTick(int t);
		constraint holdTick(t) -> t > 0;
	`)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	proto, ok := items[0].(*ViewProtoDecl)
	if !ok || proto.Name != "holdTick" || len(proto.Params) != 1 {
		t.Fatalf("unexpected prototype: %#v", items[0])
	}
	cons, ok := items[1].(*ConstraintDecl)
	if !ok {
		t.Fatalf("unexpected constraint: %#v", items[1])
	}
	fp, ok := cons.Pattern.(*FuncPattern)
	if !ok || fp.Name != "holdTick" {
		t.Fatalf("unexpected constraint pattern: %#v", cons.Pattern)
	}
	if _, ok := cons.Body.(*BinaryExpr); !ok {
		t.Fatalf("unexpected constraint body: %#v", cons.Body)
	}
}

func TestParseMethodWithAtomicStepsAndViews(t *testing.T) {
	items := parseSource(t, `
		method incr() {
			{| emp |}
			<x = x + 1>
			{| emp |}
		}
	`)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	m, ok := items[0].(*MethodDecl)
	if !ok || m.Name != "incr" {
		t.Fatalf("unexpected item: %#v", items[0])
	}
	if len(m.Body.Views) != 2 || len(m.Body.Steps) != 1 {
		t.Fatalf("unexpected body shape: %d views, %d steps", len(m.Body.Views), len(m.Body.Steps))
	}
	prim, ok := m.Body.Steps[0].(*PrimStep)
	if !ok || len(prim.Block.Prims) != 1 {
		t.Fatalf("unexpected step: %#v", m.Body.Steps[0])
	}
	if len(prim.Block.Prims[0].Results) != 1 || prim.Block.Prims[0].Results[0] != "x" {
		t.Fatalf("unexpected atomic prim: %#v", prim.Block.Prims[0])
	}
}

func TestParseIfElseAndDoWhile(t *testing.T) {
	items := parseSource(t, `
		method m() {
			{| emp |}
			if (true) {
				{| emp |}
				<skip()>
				{| emp |}
			} else {
				{| emp |}
				<skip()>
				{| emp |}
			}
			{| emp |}
			do {
				{| emp |}
				<x++>
				{| emp |}
			} while (x < 10)
			{| emp |}
		}
	`)
	m := items[0].(*MethodDecl)
	if len(m.Body.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(m.Body.Steps))
	}
	if _, ok := m.Body.Steps[0].(*IfStep); !ok {
		t.Fatalf("expected IfStep, got %#v", m.Body.Steps[0])
	}
	ws, ok := m.Body.Steps[1].(*WhileStep)
	if !ok || !ws.IsDoWhile {
		t.Fatalf("expected do-while WhileStep, got %#v", m.Body.Steps[1])
	}
}

func TestParseMultiStatementAtomicBlockAndCAS(t *testing.T) {
	items := parseSource(t, `
		method m() {
			{| emp |}
			<{ y = x; CAS(x, y, y+1); }>
			{| emp |}
		}
	`)
	m := items[0].(*MethodDecl)
	prim := m.Body.Steps[0].(*PrimStep)
	if len(prim.Block.Prims) != 2 {
		t.Fatalf("expected 2 atomic prims, got %d", len(prim.Block.Prims))
	}
	if prim.Block.Prims[1].Name != "CAS" || len(prim.Block.Prims[1].Args) != 3 {
		t.Fatalf("unexpected CAS prim: %#v", prim.Block.Prims[1])
	}
}

func TestParseSymbolCallAndViewUnion(t *testing.T) {
	items := parseSource(t, `
		method m() {
			{| holdA() * holdB() |}
			<%{unmodellable}(x)>
			{| emp |}
		}
	`)
	m := items[0].(*MethodDecl)
	union, ok := m.Body.Views[0].Pattern.(*UnionPattern)
	if !ok {
		t.Fatalf("expected UnionPattern, got %#v", m.Body.Views[0].Pattern)
	}
	if _, ok := union.Lhs.(*FuncPattern); !ok {
		t.Fatalf("expected FuncPattern lhs, got %#v", union.Lhs)
	}
	prim := m.Body.Steps[0].(*PrimStep)
	if !prim.Block.Prims[0].IsSymbol || prim.Block.Prims[0].Name != "unmodellable" {
		t.Fatalf("unexpected symbol prim: %#v", prim.Block.Prims[0])
	}
}

func TestParseNestedBlockComments(t *testing.T) {
	items := parseSource(t, `
		/* outer /* inner */ still a comment */
		shared int x; // trailing line comment
	`)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestParseIteratedAndConditionalViewPattern(t *testing.T) {
	items := parseSource(t, `
		constraint iter[n] holdTick(t) -> true;
		method m() {
			{| if x > 0 then holdA() else holdB() |}
			<skip()>
			{| emp |}
		}
	`)
	cons := items[0].(*ConstraintDecl)
	if _, ok := cons.Pattern.(*IterPattern); !ok {
		t.Fatalf("expected IterPattern, got %#v", cons.Pattern)
	}
	m := items[1].(*MethodDecl)
	if _, ok := m.Body.Views[0].Pattern.(*ITEPattern); !ok {
		t.Fatalf("expected ITEPattern, got %#v", m.Body.Views[0].Pattern)
	}
}

func reprint(t *testing.T, src string) string {
	t.Helper()
	items := parseSource(t, src)
	return PrintScript(items)
}

// TestPrintScriptRoundTripsThroughReparse checks that printing a parsed
// script and reparsing the result is a fixed point: printing the reparse
// yields the same text, so no information was lost beyond whitespace and
// comments.
func TestPrintScriptRoundTripsThroughReparse(t *testing.T) {
	src := `
		shared int ticket;
		shared int serving;
		thread int t;
		thread int s;

		view holdTick(int t);
		view holdLock();

		constraint holdTick(t) -> ticket > t;
		constraint holdLock() -> ticket != serving;
		constraint iter[n] holdTick(t) -> true;

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

		method branch() {
			{| if s == t then holdLock() else holdTick(t) |}
			if (s == t) {
				{| holdLock() |}
				<{ y = x; CAS(x, y, y+1); }>
				{| emp |}
			} else {
				{| holdTick(t) |}
				<%{unmodellable}(t)>
				{| emp |}
			}
			{| emp |}
		}
	`
	first := reprint(t, src)
	second := reprint(t, first)
	if first != second {
		t.Fatalf("print->parse->print is not a fixed point:\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := ParseFile(bufio.NewReader(strings.NewReader("shared int ;")))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), ":") {
		t.Fatalf("expected position-tagged error, got %q", err.Error())
	}
}
