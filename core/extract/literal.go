package extract

import (
	"fmt"

	"github.com/leofalp/jsonfit/core/fit"
)

// EvaluateLiteral decodes a span as a literal value.
//
// In strict mode the span must be valid JSON. In lenient mode it may also use
// Python literal syntax as accepted by fit.DecodeLenient; names, calls and
// operators are still rejected. Every failure wraps ErrUnsafeLiteral.
func EvaluateLiteral(text string, lenient bool) (any, error) {
	var v any
	var err error
	if lenient {
		v, err = fit.DecodeLenient(text)
	} else {
		v, err = fit.Decode(text)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsafeLiteral, err)
	}
	return v, nil
}
