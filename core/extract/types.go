package extract

import (
	"fmt"
	"strings"
)

// Span is a substring of the scanned text, Text == text[Start:End].
type Span struct {
	Start int
	End   int
	Text  string
}

// Literal is a decoded span.
type Literal struct {
	Span
	Value any
}

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind string

const (
	DiagnosticDanglingSpan      DiagnosticKind = "dangling_span"
	DiagnosticUnsafeLiteral     DiagnosticKind = "unsafe_literal"
	DiagnosticMismatchedBracket DiagnosticKind = "mismatched_bracket"
)

// Diagnostic is a non-fatal notice about a span that was not returned.
type Diagnostic struct {
	Kind DiagnosticKind
	Span Span
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %d..%d: %v", d.Kind, d.Span.Start, d.Span.End, d.Err)
}

// Mode selects the span scanner.
type Mode string

const (
	ModeStack  Mode = "stack"
	ModeLegacy Mode = "legacy"
)

// ParseMode parses "stack" or "legacy", case-insensitively. An empty string
// selects ModeStack.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stack":
		return ModeStack, nil
	case "legacy":
		return ModeLegacy, nil
	default:
		return "", fmt.Errorf("unknown scan mode %q (want stack or legacy)", s)
	}
}
