package extract

import "errors"

var (
	// ErrUnsafeLiteral marks a span that is not plain literal syntax.
	ErrUnsafeLiteral = errors.New("not a safe literal")

	// ErrDanglingSpan marks a span still open when the text ended.
	ErrDanglingSpan = errors.New("incomplete object at end of string")

	// ErrMismatchedBracket marks a span abandoned at a closer that does not
	// match the innermost open bracket.
	ErrMismatchedBracket = errors.New("mismatched closing bracket")
)
