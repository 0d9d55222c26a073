package report

import (
	"strings"
	"testing"
)

func TestBagHasErrorsOnlyOnErrorSeverity(t *testing.T) {
	b := NewBag(StageModel)
	b.AddWarning("looks odd", SpanAt(1, 1))
	if b.HasErrors() {
		t.Fatalf("a bag with only a warning should not report HasErrors")
	}
	b.AddError("unknown identifier", SpanAt(2, 3), &ModelError{Kind: UnknownIdentifier, Name: "x"})
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors after AddError")
	}
	if len(b.Errors()) != 1 {
		t.Fatalf("expected exactly one error diagnostic, got %d", len(b.Errors()))
	}
}

func TestBagMergeAppendsDiagnostics(t *testing.T) {
	a := NewBag(StageGuard)
	a.AddWarning("first", nil)
	b := NewBag(StageGuard)
	b.AddWarning("second", nil)
	a.Merge(b)
	if len(a.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics after merge, got %d", len(a.Diagnostics))
	}
}

func TestDiagnosticStringIncludesStageAndSeverity(t *testing.T) {
	d := &Diagnostic{Stage: StageGraph, Severity: SeverityError, Message: "boom", Span: SpanAt(4, 5)}
	s := d.String()
	if !strings.Contains(s, "Graph error") || !strings.Contains(s, "boom") || !strings.Contains(s, "4:5") {
		t.Fatalf("unexpected diagnostic string: %q", s)
	}
}

func TestSpanStringHandlesNilAndMultiline(t *testing.T) {
	var nilSpan *Span
	if nilSpan.String() != "<unknown position>" {
		t.Fatalf("expected placeholder for nil span, got %q", nilSpan.String())
	}
	single := SpanAt(3, 4)
	if single.String() != "3:4-4" {
		t.Fatalf("unexpected single-line span string: %q", single.String())
	}
	multi := SpanOver(SpanAt(1, 1), SpanAt(2, 5))
	if multi.String() != "1:1-2:5" {
		t.Fatalf("unexpected multi-line span string: %q", multi.String())
	}
}

func TestStageStringCoversAllStages(t *testing.T) {
	cases := map[Stage]string{
		StageParse:   "Parse",
		StageCollate: "Collate",
		StageModel:   "Model",
		StageGuard:   "Guard",
		StageGraph:   "Graph",
	}
	for stage, want := range cases {
		if got := stage.String(); got != want {
			t.Fatalf("Stage(%d).String() = %q, want %q", stage, got, want)
		}
	}
}

func TestReporterPrintDoesNotPanicOnEmptyBag(t *testing.T) {
	r := NewReporter(LogLevelSilent)
	r.Print(NewBag(StageModel))
}

func TestModelErrorMessagesNameTheOffendingConstruct(t *testing.T) {
	err := &ModelError{Kind: TypeMismatch, Where: "axiom lock", Expected: "Bool", Got: "Int"}
	if got := err.Error(); !strings.Contains(got, "axiom lock") || !strings.Contains(got, "Bool") || !strings.Contains(got, "Int") {
		t.Fatalf("unexpected type mismatch message: %q", got)
	}
}

func TestGraphErrorMessageNamesTheMethod(t *testing.T) {
	err := &GraphError{Method: "lock", Reason: "block has no view between two steps"}
	if got := err.Error(); !strings.Contains(got, "lock") || !strings.Contains(got, "block has no view") {
		t.Fatalf("unexpected graph error message: %q", got)
	}
}
