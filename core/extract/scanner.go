package extract

import (
	"errors"
	"regexp"
)

// Spans returns the top-level literal spans of text found by the given
// scanner, in order, plus diagnostics for fragments that were dropped.
func Spans(text string, mode Mode) ([]Span, []Diagnostic) {
	if mode == ModeLegacy {
		return scanLegacy(text)
	}
	return scanStack(text, false)
}

func newSpan(text string, start, end int) Span {
	return Span{Start: start, End: end, Text: text[start:end]}
}

// --- stack scanner ---

// scanStack walks text, opening a span at each unescaped '{' or '[' and
// closing it when the bracket stack empties. With nested set, a span that
// fails to close is rescanned from the byte after its opener so complete
// literals inside it are still found.
func scanStack(text string, nested bool) ([]Span, []Diagnostic) {
	var spans []Span
	var diags []Diagnostic

	pos := 0
	for pos < len(text) {
		start := indexOpen(text, pos)
		if start < 0 {
			break
		}

		end, err := closeSpan(text, start)
		switch {
		case err == nil:
			spans = append(spans, newSpan(text, start, end))
			pos = end
		case errors.Is(err, ErrMismatchedBracket):
			diags = append(diags, Diagnostic{Kind: DiagnosticMismatchedBracket, Span: newSpan(text, start, end), Err: err})
			pos = end
			if nested {
				pos = start + 1
			}
		default:
			diags = append(diags, Diagnostic{Kind: DiagnosticDanglingSpan, Span: newSpan(text, start, end), Err: err})
			if !nested {
				return spans, diags
			}
			pos = start + 1
		}
	}
	return spans, diags
}

// indexOpen returns the index of the first opening bracket at or after pos
// that is not preceded by a backslash, or -1.
func indexOpen(text string, pos int) int {
	for i := pos; i < len(text); i++ {
		if (text[i] == '{' || text[i] == '[') && !escapedAt(text, i) {
			return i
		}
	}
	return -1
}

func escapedAt(text string, i int) bool {
	return i > 0 && text[i-1] == '\\'
}

// closeSpan scans from the opener at start and returns the index just past
// the bracket that balances it. Brackets inside strings are ignored. A single
// quote opens a string only where a value or key can start, after one of
// "{[,:" and optional whitespace. On a mismatched closer it returns the index just past
// that closer with ErrMismatchedBracket; when text ends first it returns
// len(text) with ErrDanglingSpan.
func closeSpan(text string, start int) (int, error) {
	stack := make([]byte, 0, 8)
	var quote byte
	escaped := false
	// prev is the last non-space byte seen outside a string.
	var prev byte

	for i := start; i < len(text); i++ {
		c := text[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
				prev = c
			}
			continue
		}

		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			quote = c
		case '\'':
			// an apostrophe in prose is not a string opener
			if prev == '{' || prev == '[' || prev == ',' || prev == ':' {
				quote = c
			}
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			top := stack[len(stack)-1]
			if (top == '{') != (c == '}') {
				return i + 1, ErrMismatchedBracket
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1, nil
			}
		}
		prev = c
	}
	return len(text), ErrDanglingSpan
}

// --- legacy scanner ---

// legacyPattern matches one innermost bracket group: no bracket of the same
// family inside it.
var legacyPattern = regexp.MustCompile(`\[[^\[\]]*?\]|\{[^{}]*\}`)

// legacyMatches returns the legacyPattern matches that do not start after a
// backslash and, for arrays, do not end with an escaped ']'. A rejected match
// resumes the search one byte after its start.
func legacyMatches(text string) [][2]int {
	var out [][2]int
	offset := 0
	for offset < len(text) {
		loc := legacyPattern.FindStringIndex(text[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		if escapedAt(text, start) || (text[start] == '[' && escapedAt(text, end-1)) {
			offset = start + 1
			continue
		}
		out = append(out, [2]int{start, end})
		offset = end
	}
	return out
}

// scanLegacy groups innermost matches into spans with one counter per
// opening bracket: a span closes once the counter of the latest closer equals
// the number of bracket kinds seen. This is a heuristic, not a balance
// check; in practice every innermost group becomes its own span.
func scanLegacy(text string) ([]Span, []Diagnostic) {
	var spans []Span
	var diags []Diagnostic

	counts := map[byte]int{'{': 0, '[': 0}
	pending := 0
	start := 0
	lastEnd := 0

	for _, m := range legacyMatches(text) {
		if pending == 0 {
			start = m[0]
		}
		pending++
		lastEnd = m[1]

		opener := byte('{')
		if text[m[1]-1] == ']' {
			opener = '['
		}
		counts[opener]++

		open := 0
		for _, n := range counts {
			if n != 0 {
				open++
			}
		}
		if counts[opener] == open {
			spans = append(spans, newSpan(text, start, m[1]))
			pending = 0
			counts['{'], counts['['] = 0, 0
		}
	}

	if pending > 0 {
		diags = append(diags, Diagnostic{Kind: DiagnosticDanglingSpan, Span: newSpan(text, start, lastEnd), Err: ErrDanglingSpan})
	}
	return spans, diags
}
