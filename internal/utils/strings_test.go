package utils

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONToString(t *testing.T) {
	compact := JSONToString(map[string]int{"a": 1, "b": 2})
	if compact != `{"a":1,"b":2}` {
		t.Errorf("JSONToString() = %q", compact)
	}

	indented := JSONToString(map[string]int{"x": 42}, true)
	if indented != "{\n  \"x\": 42\n}" {
		t.Errorf("JSONToString(indent) = %q", indented)
	}
}

// Channels cannot be marshaled; the fallback must still be valid JSON.
func TestJSONToString_MarshalError(t *testing.T) {
	got := JSONToString(make(chan int))

	var decoded map[string]string
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("fallback is not JSON: %q (%v)", got, err)
	}
	if !strings.HasPrefix(decoded["error"], "failed to marshal to JSON") {
		t.Errorf("fallback error = %q", decoded["error"])
	}
}
