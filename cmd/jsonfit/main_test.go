package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// decodeOutputs splits the indented documents printed by run.
func decodeOutputs(t *testing.T, stdout string) []map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(stdout))
	var out []map[string]any
	for dec.More() {
		var doc map[string]any
		if err := dec.Decode(&doc); err != nil {
			t.Fatalf("stdout is not a JSON stream: %v\n%s", err, stdout)
		}
		out = append(out, doc)
	}
	return out
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "no command", args: nil, wantCode: exitUsage},
		{name: "unknown command", args: []string{"repair"}, wantCode: exitUsage},
		{name: "help", args: []string{"help"}, wantCode: exitOK},
		{name: "bad flag", args: []string{"fit", "-nope"}, wantCode: exitUsage},
		{name: "bad mode", args: []string{"extract", "-mode", "regex"}, wantCode: exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runCLI(t, "", tt.args...); code != tt.wantCode {
				t.Errorf("run(%v) = %d, want %d", tt.args, code, tt.wantCode)
			}
		})
	}
}

func TestRun_Valid(t *testing.T) {
	code, stdout, _ := runCLI(t, `[1, 2]`, "valid")
	docs := decodeOutputs(t, stdout)
	if code != exitOK || len(docs) != 1 {
		t.Fatalf("run(valid) = %d, %v", code, docs)
	}
	if docs[0]["valid"] != true || docs[0]["object_type"] != "array" || docs[0]["input"] != "-" {
		t.Errorf("valid output = %v", docs[0])
	}

	code, stdout, _ = runCLI(t, `{"a": 1`, "valid")
	docs = decodeOutputs(t, stdout)
	if code != exitFailure || docs[0]["valid"] != false {
		t.Errorf("run(valid) on truncated input = %d, %v", code, docs)
	}
}

func TestRun_Fit(t *testing.T) {
	code, stdout, _ := runCLI(t, `{"a": 1, "b": 2`, "fit", "-dedupe")
	if code != exitOK {
		t.Fatalf("run(fit) = %d", code)
	}
	docs := decodeOutputs(t, stdout)
	result, _ := docs[0]["result"].(map[string]any)
	if result["status"] != "incomplete" {
		t.Fatalf("fit result = %v", result)
	}
	data, _ := result["data"].(map[string]any)
	completion, _ := data["completion"].(map[string]any)
	if completion["a"] != 1.0 || completion["b"] != 2.0 {
		t.Errorf("completion = %v", data["completion"])
	}

	code, stdout, _ = runCLI(t, `nothing to fix`, "fit")
	docs = decodeOutputs(t, stdout)
	result, _ = docs[0]["result"].(map[string]any)
	if code != exitFailure || result["status"] != "failed" {
		t.Errorf("run(fit) on prose = %d, %v", code, result)
	}
}

func TestRun_FitLenient(t *testing.T) {
	code, stdout, _ := runCLI(t, `{'a': 1, 'ok': True}`, "fit", "-lenient")
	if code != exitOK {
		t.Fatalf("run(fit -lenient) = %d", code)
	}
	result, _ := decodeOutputs(t, stdout)[0]["result"].(map[string]any)
	if result["status"] != "completed" || result["object_type"] != "object" {
		t.Errorf("fit -lenient result = %v", result)
	}
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	for _, name := range []string{first, second} {
		if err := os.WriteFile(name, []byte(`{"a": 1}`), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"valid", "-workers", "1", first, second}, strings.NewReader(""), &stdout, &stderr)
	if code != exitFailure {
		t.Errorf("run(valid) with a cancelled context = %d, want %d", code, exitFailure)
	}

	docs := decodeOutputs(t, stdout.String())
	if len(docs) != 2 {
		t.Fatalf("want one document per input, got %d:\n%s", len(docs), stdout.String())
	}
	for i, doc := range docs {
		if doc == nil {
			t.Fatalf("document %d is null", i)
		}
		if doc["input"] == nil || doc["error"] == nil {
			t.Errorf("document %d = %v, want input and error", i, doc)
		}
	}
}

func TestRun_ExtractFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	if err := os.WriteFile(first, []byte(`see {"a":1} and {"b":`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte(`{'x': True}`), 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.txt")

	code, stdout, stderr := runCLI(t, "", "extract", "-lenient", "-workers", "2", first, second, missing)
	if code != exitFailure {
		t.Errorf("run(extract) with a missing input = %d, want %d", code, exitFailure)
	}
	docs := decodeOutputs(t, stdout)
	if len(docs) != 3 {
		t.Fatalf("want one document per input, got %d:\n%s", len(docs), stdout)
	}

	if docs[0]["input"] != first {
		t.Errorf("outputs out of order: %v", docs[0]["input"])
	}
	literals, _ := docs[0]["literals"].([]any)
	diags, _ := docs[0]["diagnostics"].([]any)
	if len(literals) != 1 || len(diags) != 1 {
		t.Errorf("first input: literals %v, diagnostics %v", literals, diags)
	}

	literals, _ = docs[1]["literals"].([]any)
	if len(literals) != 1 || literals[0].(map[string]any)["x"] != true {
		t.Errorf("second input literals = %v", literals)
	}

	if _, ok := docs[2]["error"]; !ok {
		t.Errorf("missing input should report an error: %v", docs[2])
	}
	if !strings.Contains(stderr, "Failed to load input") {
		t.Errorf("stderr should log the load failure:\n%s", stderr)
	}
}
