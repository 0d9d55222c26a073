package collate

import (
	"bufio"
	"strings"
	"testing"

	"github.com/BenSimner/starling-tool/internal/syntax"
	"github.com/google/go-cmp/cmp"
)

func TestCollatePartitionsAndPreservesOrder(t *testing.T) {
	src := `
		shared int x;
		shared int y;
		thread bool b;
		view holdTick(int t);
		constraint holdTick(t) -> t > 0;
		method m() {
			{| emp |}
			<skip()>
			{| emp |}
		}
	`
	items, err := syntax.ParseFile(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	s := Collate(items)

	if len(s.Globals) != 2 || s.Globals[0].Name.Name != "x" || s.Globals[1].Name.Name != "y" {
		t.Fatalf("unexpected globals: %#v", s.Globals)
	}
	if len(s.Locals) != 1 || s.Locals[0].Name.Name != "b" {
		t.Fatalf("unexpected locals: %#v", s.Locals)
	}
	if len(s.ViewProtos) != 1 || s.ViewProtos[0].Name != "holdTick" {
		t.Fatalf("unexpected view protos: %#v", s.ViewProtos)
	}
	if len(s.Constraints) != 1 {
		t.Fatalf("unexpected constraints: %#v", s.Constraints)
	}
	if len(s.Methods) != 1 || s.Methods[0].Name != "m" {
		t.Fatalf("unexpected methods: %#v", s.Methods)
	}
}

func TestCollateEmptyScript(t *testing.T) {
	s := Collate(nil)
	if len(s.Globals)+len(s.Locals)+len(s.ViewProtos)+len(s.Constraints)+len(s.Methods) != 0 {
		t.Fatalf("expected an entirely empty Script, got %#v", s)
	}
}

func TestFlattenIsCollatesInverse(t *testing.T) {
	src := `
		shared int x;
		shared int y;
		thread bool b;
		view holdTick(int t);
		constraint holdTick(t) -> t > 0;
		method m() {
			{| emp |}
			<skip()>
			{| emp |}
		}
	`
	items, err := syntax.ParseFile(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	s := Collate(items)
	reCollated := Collate(Flatten(s))

	if diff := cmp.Diff(s, reCollated); diff != "" {
		t.Fatalf("Collate(Flatten(s)) != s (-want +got):\n%s", diff)
	}
}

func TestFlattenOrdersBucketsGlobalsLocalsProtosConstraintsMethods(t *testing.T) {
	src := `
		method m() { {| emp |} <skip()> {| emp |} }
		constraint holdTick(t) -> t > 0;
		view holdTick(int t);
		thread bool b;
		shared int x;
	`
	items, err := syntax.ParseFile(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	flat := Flatten(Collate(items))
	if len(flat) != 5 {
		t.Fatalf("expected 5 flattened items, got %d", len(flat))
	}
	kinds := make([]string, len(flat))
	for i, item := range flat {
		switch item.(type) {
		case *syntax.GlobalDecl:
			kinds[i] = "global"
		case *syntax.LocalDecl:
			kinds[i] = "local"
		case *syntax.ViewProtoDecl:
			kinds[i] = "viewproto"
		case *syntax.ConstraintDecl:
			kinds[i] = "constraint"
		case *syntax.MethodDecl:
			kinds[i] = "method"
		}
	}
	want := []string{"global", "local", "viewproto", "constraint", "method"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("unexpected flattened bucket order (-want +got):\n%s", diff)
	}
}
