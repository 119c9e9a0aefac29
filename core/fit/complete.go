package fit

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Attempt describes how Complete reached its outcome.
type Attempt struct {
	// Parses is the number of decode attempts made.
	Parses int
	// Kept is the byte length of the prefix that decoded, 0 on failure.
	Kept int
}

// Complete appends suffix to text and decodes the result. While that fails
// it drops the last character of text and tries again, so a dangling token,
// stray comma or unterminated string at the tail is cut away until suffix
// closes the structure. It returns ErrCannotRepair once text is exhausted.
//
//	fit.Complete(`{"a": 1, "b": 2`, "}")          // map[a:1 b:2]
//	fit.Complete(`{"a": 1, "b": 2}}}}}}`, "")     // map[a:1 b:2]
//	fit.Complete(`{"a": 1, "b": 2`, "")           // ErrCannotRepair
func Complete(text, suffix string) (any, error) {
	v, _, err := CompleteStats(text, suffix)
	return v, err
}

// CompleteStats is Complete that also reports the attempts it made. It makes
// at most one decode attempt per character of text.
func CompleteStats(text, suffix string) (any, Attempt, error) {
	var attempt Attempt
	for len(text) > 0 {
		attempt.Parses++
		candidate := text + suffix
		if json.Valid([]byte(candidate)) {
			v, err := Decode(candidate)
			if err == nil {
				attempt.Kept = len(text)
				return v, attempt, nil
			}
		}
		_, size := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-size]
	}
	return nil, attempt, fmt.Errorf("%w: no prefix accepts closing string %q", ErrCannotRepair, suffix)
}
