package fit

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// literalWords are the bare identifiers allowed in lenient literals.
var literalWords = map[string]bool{
	"true": true, "false": true, "null": true,
	"True": true, "False": true, "None": true,
}

// DecodeLenient decodes JSON or a Python-style literal: single-quoted
// strings, True/False/None, a leading '+' on numbers and trailing commas.
//
// The text is checked token by token first, so names, calls, operators,
// juxtaposed values and numbers outside the JSON grammar are rejected. What
// passes is normalised with jsonrepair and decoded strictly; a result with
// more strings than the input had quoted is rejected too, since that means a
// bare token was turned into a string. Every failure wraps ErrNotLiteral.
func DecodeLenient(text string) (any, error) {
	if v, err := Decode(text); err == nil {
		return v, nil
	}

	normalised, quoted, err := checkLiteralTokens(text)
	if err != nil {
		return nil, err
	}
	repaired, err := jsonrepair.JSONRepair(normalised)
	if err != nil {
		return nil, fmt.Errorf("%w: repair failed: %v", ErrNotLiteral, err)
	}
	v, err := Decode(repaired)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotLiteral, err)
	}
	if n := countStrings(v); n > quoted {
		return nil, fmt.Errorf("%w: %d strings decoded from %d quoted", ErrNotLiteral, n, quoted)
	}
	return v, nil
}

// checkLiteralTokens accepts quoted strings, JSON numbers with an optional
// leading '+', the words in literalWords, the punctuation {}[],: and
// whitespace. A value may not directly follow another value. It returns the
// text with '+' signs dropped and the number of quoted strings.
func checkLiteralTokens(text string) (string, int, error) {
	var b strings.Builder
	b.Grow(len(text))
	quoted := 0
	afterValue := false

	value := func(i int) error {
		if afterValue {
			return fmt.Errorf("%w: missing separator at offset %d", ErrNotLiteral, i)
		}
		afterValue = true
		return nil
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			b.WriteByte(c)
			i++
		case c == '{' || c == '[':
			if err := value(i); err != nil {
				return "", 0, err
			}
			afterValue = false
			b.WriteByte(c)
			i++
		case c == '}' || c == ']':
			afterValue = true
			b.WriteByte(c)
			i++
		case c == ',' || c == ':':
			afterValue = false
			b.WriteByte(c)
			i++
		case c == '"' || c == '\'':
			if err := value(i); err != nil {
				return "", 0, err
			}
			end, ok := skipQuoted(text, i)
			if !ok {
				return "", 0, fmt.Errorf("%w: unterminated string at offset %d", ErrNotLiteral, i)
			}
			quoted++
			b.WriteString(text[i:end])
			i = end
		case c == '-' || c == '+' || (c >= '0' && c <= '9'):
			if err := value(i); err != nil {
				return "", 0, err
			}
			end, ok := scanNumber(text, i)
			if !ok || (end < len(text) && isWordByte(text[end])) || (end < len(text) && text[end] == '.') {
				return "", 0, fmt.Errorf("%w: invalid number at offset %d", ErrNotLiteral, i)
			}
			if c == '+' {
				b.WriteString(text[i+1 : end])
			} else {
				b.WriteString(text[i:end])
			}
			i = end
		case isWordByte(c):
			if err := value(i); err != nil {
				return "", 0, err
			}
			j := i
			for j < len(text) && isWordByte(text[j]) {
				j++
			}
			if word := text[i:j]; !literalWords[word] {
				return "", 0, fmt.Errorf("%w: name %q at offset %d", ErrNotLiteral, word, i)
			}
			b.WriteString(text[i:j])
			i = j
		default:
			return "", 0, fmt.Errorf("%w: unexpected %q at offset %d", ErrNotLiteral, c, i)
		}
	}
	return b.String(), quoted, nil
}

// scanNumber matches [+-]? (0 | [1-9][0-9]*) (\.[0-9]+)? ([eE][+-]?[0-9]+)?
// at i and returns the index after it.
func scanNumber(text string, i int) (int, bool) {
	if text[i] == '-' || text[i] == '+' {
		i++
	}
	digits := func() int {
		start := i
		for i < len(text) && text[i] >= '0' && text[i] <= '9' {
			i++
		}
		return i - start
	}

	if i < len(text) && text[i] == '0' {
		i++
	} else if digits() == 0 {
		return 0, false
	}
	if i < len(text) && text[i] == '.' {
		i++
		if digits() == 0 {
			return 0, false
		}
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		if digits() == 0 {
			return 0, false
		}
	}
	return i, true
}

// skipQuoted returns the index just past the string literal opening at i.
func skipQuoted(text string, i int) (int, bool) {
	quote := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case quote:
			return j + 1, true
		}
	}
	return 0, false
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// countStrings counts object keys and string values in v.
func countStrings(v any) int {
	switch t := v.(type) {
	case string:
		return 1
	case map[string]any:
		n := len(t)
		for _, val := range t {
			n += countStrings(val)
		}
		return n
	case []any:
		n := 0
		for _, val := range t {
			n += countStrings(val)
		}
		return n
	}
	return 0
}
