// Package report provides structured diagnostics for every stage of the
// Starling pipeline: source spans, accumulating error/warning bags, and a
// coloured terminal renderer.
package report

import "fmt"

// Span is a range of source text with 1-indexed line and column numbers;
// the start is inclusive and EndCol is the column just past the last
// character (matching the file-position diagnostics demanded
// by the source language's ParseError).
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// SpanAt returns a zero-width span at a single position.
func SpanAt(line, col int) *Span {
	return &Span{StartLine: line, StartCol: col, EndLine: line, EndCol: col}
}

// SpanOver returns a span beginning at the start of a and ending at the end
// of b.
func SpanOver(a, b *Span) *Span {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &Span{StartLine: a.StartLine, StartCol: a.StartCol, EndLine: b.EndLine, EndCol: b.EndCol}
}

func (s *Span) String() string {
	if s == nil {
		return "<unknown position>"
	}
	if s.StartLine == s.EndLine {
		return fmt.Sprintf("%d:%d-%d", s.StartLine, s.StartCol, s.EndCol)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}
