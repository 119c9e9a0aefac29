package fit

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrCannotRepair is returned by Complete when no prefix of the text,
	// followed by the closing string, decodes.
	ErrCannotRepair = errors.New("couldn't fix JSON")

	// ErrEmptyCandidateSet is returned by Rank when there is nothing to rank.
	ErrEmptyCandidateSet = errors.New("no viable completion")

	// ErrNoMarks is joined to ErrEmptyCandidateSet when the text contains
	// no opening bracket at all.
	ErrNoMarks = errors.New("no opening bracket in input")

	// ErrInternal wraps a panic recovered at the Fit boundary.
	ErrInternal = errors.New("internal error")

	// ErrNotLiteral is returned by DecodeLenient for text that is not made
	// of literal tokens only.
	ErrNotLiteral = errors.New("not a literal")
)

// ParseError reports text that is not a valid JSON value.
type ParseError struct {
	// Offset is the byte offset after which the error was detected, -1 when
	// the decoder did not report one.
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("invalid JSON at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("invalid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(err error) *ParseError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Offset: syntaxErr.Offset, Err: err}
	}
	return &ParseError{Offset: -1, Err: err}
}
