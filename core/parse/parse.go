package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/leofalp/jsonfit/core/extract"
	"github.com/leofalp/jsonfit/core/fit"
)

// ErrNoCandidate is returned when no recovery stage produced JSON that
// decodes into the target type.
var ErrNoCandidate = errors.New("no decodable candidate")

// Stage names the recovery step that produced a value.
type Stage string

const (
	StageDirect  Stage = "direct"
	StageExtract Stage = "extract"
	StageFit     Stage = "fit"
	StageRepair  Stage = "repair"
)

// As parses content into T.
//
// Strings are returned as-is unless content is a schema envelope. Bools and
// numbers go through strconv after trimming whitespace. Every other kind is
// decoded from JSON using the recovery stages described in the package doc.
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	person, err := parse.As[Person](`{"name":"John","age":30`)
//	person, err := parse.As[Person]("Sure:\n```json\n{'name': 'John'}\n```")
//	n, err := parse.As[int]("42")
func As[T any](content string) (T, error) {
	v, _, err := AsStage[T](content)
	return v, err
}

// AsStage is As and also reports which stage produced the value. Primitive
// kinds always report StageDirect.
func AsStage[T any](content string) (T, Stage, error) {
	var result T
	target := reflect.ValueOf(&result).Elem()

	switch target.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if err := setPrimitive(target, content); err != nil {
			return result, StageDirect, err
		}
		return result, StageDirect, nil
	}

	var firstErr error
	for _, c := range candidates(content) {
		var v T
		err := decodeCandidate(c.json, &v)
		if err == nil {
			return v, c.stage, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = ErrNoCandidate
	} else {
		firstErr = fmt.Errorf("%w: %w", ErrNoCandidate, firstErr)
	}
	return result, "", fmt.Errorf("failed to unmarshal content as %T: %w", result, firstErr)
}

type candidate struct {
	stage Stage
	json  string
}

// candidates returns the JSON texts to try, in stage order: the content
// itself, every complete literal found in it, the completion of a literal
// left open at the end, and the jsonrepair output.
func candidates(content string) []candidate {
	out := []candidate{{stage: StageDirect, json: content}}

	literals, diags := extract.Scan(content, extract.WithLenient(true))
	for _, literal := range literals {
		if b, err := json.Marshal(literal.Value); err == nil {
			out = append(out, candidate{stage: StageExtract, json: string(b)})
		}
	}

	for _, d := range diags {
		if d.Kind != extract.DiagnosticDanglingSpan {
			continue
		}
		r := fit.Fit(d.Span.Text)
		best, ok := r.Best()
		if !ok || isEmptyContainer(best) {
			continue
		}
		if b, err := json.Marshal(best); err == nil {
			out = append(out, candidate{stage: StageFit, json: string(b)})
		}
	}

	if repaired, err := jsonrepair.JSONRepair(content); err == nil {
		out = append(out, candidate{stage: StageRepair, json: repaired})
	}
	return out
}

// isEmptyContainer reports whether v is {} or []. A completion that had to
// drop everything after the opener carries no data.
func isEmptyContainer(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

// decodeCandidate unmarshals text into v, retrying with schema envelopes
// unwrapped.
func decodeCandidate(text string, v any) error {
	err := json.Unmarshal([]byte(text), v)
	if err == nil {
		return nil
	}
	unwrapped, unwrapErr := unwrapSchemaValues(text)
	if unwrapErr != nil || unwrapped == text {
		return err
	}
	if retryErr := json.Unmarshal([]byte(unwrapped), v); retryErr != nil {
		return err
	}
	return nil
}

func setPrimitive(target reflect.Value, content string) error {
	if target.Kind() == reflect.String {
		if strings.HasPrefix(content, "{") {
			if unwrapped, err := tryUnwrapPrimitive(content); err == nil {
				target.SetString(unwrapped)
				return nil
			}
		}
		target.SetString(content)
		return nil
	}

	err := setScalar(target, strings.TrimSpace(content))
	if err == nil {
		return nil
	}
	if unwrapped, unwrapErr := tryUnwrapPrimitive(content); unwrapErr == nil {
		if retryErr := setScalar(target, unwrapped); retryErr == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to parse content as %s: %w", target.Kind(), err)
}

func setScalar(target reflect.Value, s string) error {
	switch target.Kind() {
	case reflect.Bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		target.SetBool(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(s, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetFloat(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(s, 10, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetInt(v)
	default:
		v, err := strconv.ParseUint(s, 10, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetUint(v)
	}
	return nil
}

// tryUnwrapPrimitive returns the value of a {"type": ..., "value": ...}
// envelope as a string.
func tryUnwrapPrimitive(content string) (string, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}
	value, ok := envelopeValue(data)
	if !ok {
		return "", errors.New("not a schema-wrapped value")
	}
	switch v := value.(type) {
	case string:
		return v, nil
	case float64, bool:
		return fmt.Sprint(v), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func envelopeValue(m map[string]any) (any, bool) {
	if len(m) != 2 {
		return nil, false
	}
	if _, ok := m["type"]; !ok {
		return nil, false
	}
	value, ok := m["value"]
	return value, ok
}

// unwrapSchemaValues replaces every schema envelope in the JSON text with
// its value, so
//
//	{"name": {"type": "string", "value": "John"}}
//
// becomes {"name":"John"}.
func unwrapSchemaValues(text string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return "", err
	}
	b, err := json.Marshal(recursiveUnwrap(data))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func recursiveUnwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if value, ok := envelopeValue(v); ok {
			return recursiveUnwrap(value)
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = recursiveUnwrap(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = recursiveUnwrap(val)
		}
		return out
	default:
		return data
	}
}
