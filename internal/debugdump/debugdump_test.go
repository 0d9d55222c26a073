package debugdump

import (
	"bytes"
	"strings"
	"testing"
)

type point struct {
	X, Y int
}

func TestDumpIncludesFieldNames(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, point{X: 1, Y: 2})
	out := buf.String()
	if !strings.Contains(out, "X:") || !strings.Contains(out, "Y:") {
		t.Fatalf("expected field names in dump output, got %q", out)
	}
}

func TestSprintMatchesDump(t *testing.T) {
	var buf bytes.Buffer
	Dump(&buf, point{X: 3, Y: 4})
	if got := Sprint(point{X: 3, Y: 4}) + "\n"; got != buf.String() {
		t.Fatalf("Sprint and Dump disagree: %q vs %q", got, buf.String())
	}
}
