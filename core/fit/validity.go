package fit

import "encoding/json"

// Kind is the runtime type tag of a decoded value.
type Kind string

const (
	KindInvalid Kind = ""
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBool    Kind = "bool"
	KindNull    Kind = "null"
)

// KindOf reports the Kind of a value produced by Decode.
func KindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case string:
		return KindString
	case float64, json.Number:
		return KindNumber
	case bool:
		return KindBool
	case nil:
		return KindNull
	default:
		return KindInvalid
	}
}

// IsValid reports whether text is a single, complete JSON value.
//
//	fit.IsValid(`{"name": "Alice", "age": 30}`) // true
//	fit.IsValid(`[1, 2, 3, 4]`)                 // true
//	fit.IsValid(`{"name": "Bob", "age": }`)     // false
func IsValid(text string) bool {
	return json.Valid([]byte(text))
}

// Decode strictly decodes text into the generic encoding/json representation
// (map[string]any, []any, string, float64, bool, nil). A failure is always a
// *ParseError.
func Decode(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, newParseError(err)
	}
	return v, nil
}
