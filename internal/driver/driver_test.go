package driver

import (
	"strings"
	"testing"

	"github.com/BenSimner/starling-tool/internal/report"
)

const smallSrc = `
	shared int x;
	method m() {
		{| emp |}
		<x = 1>
		{| emp |}
	}
`

func TestRunEachTargetSucceedsOnValidSource(t *testing.T) {
	for _, target := range []Target{Parse, Collate, Model, Guard, Graph} {
		res, _, err := Run(target, strings.NewReader(smallSrc))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", target, err)
		}
		if res.Target != target {
			t.Fatalf("%s: expected Result.Target to match, got %s", target, res.Target)
		}
	}
}

func TestRunParseFailureStopsBeforeLaterStages(t *testing.T) {
	_, bag, err := Run(Graph, strings.NewReader("method ("))
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if bag != nil {
		t.Fatalf("expected no bag on a parse failure, got %v", bag)
	}
	se, ok := err.(*StageError)
	if !ok {
		t.Fatalf("expected a *StageError, got %T", err)
	}
	if se.Stage != report.StageParse {
		t.Fatalf("expected the error to be tagged StageParse, got %s", se.Stage)
	}
}

func TestRunModelFailureIsTaggedWithItsStage(t *testing.T) {
	src := `
		method m() {
			{| emp |}
			<x = 1>
			{| emp |}
		}
	`
	_, bag, err := Run(Graph, strings.NewReader(src))
	if err == nil {
		t.Fatalf("expected an unknown-identifier error")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected the returned bag to carry the error")
	}
	se, ok := err.(*StageError)
	if !ok {
		t.Fatalf("expected a *StageError, got %T", err)
	}
	if se.Stage != report.StageModel {
		t.Fatalf("expected the error to be tagged StageModel, got %s", se.Stage)
	}
}

func TestParseTargetRoundTrips(t *testing.T) {
	for _, name := range []string{"parse", "collate", "model", "guard", "graph"} {
		target, ok := ParseTarget(name)
		if !ok {
			t.Fatalf("expected %q to resolve to a Target", name)
		}
		if target.String() != name {
			t.Fatalf("expected %q to round-trip, got %q", name, target.String())
		}
	}
	if _, ok := ParseTarget("bogus"); ok {
		t.Fatalf("expected an unknown target name to fail")
	}
}
