package fit

import "testing"

func TestSelectMarks(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantMarks    string
		wantTerminal Mark
	}{
		{name: "object only", input: `{"a": 1`, wantMarks: "}", wantTerminal: CloseObject},
		{name: "array only", input: `[1, 2`, wantMarks: "]", wantTerminal: CloseArray},
		{name: "array of objects", input: `[{"a": 1}, {"b"`, wantMarks: "}]", wantTerminal: CloseArray},
		{name: "object with array", input: `{"a": [1`, wantMarks: "}]", wantTerminal: CloseObject},
		{name: "leading whitespace", input: "  \n\t[1", wantMarks: "]", wantTerminal: CloseArray},
		{name: "no brackets", input: `"just text"`, wantMarks: "", wantTerminal: CloseObject},
		{name: "empty", input: "", wantMarks: "", wantTerminal: CloseObject},
		{name: "closed object still selects", input: `{"a": 1} trailing`, wantMarks: "}", wantTerminal: CloseObject},
		{name: "bracket inside string counts", input: `{"a": "[x"`, wantMarks: "}]", wantTerminal: CloseObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marks, terminal := SelectMarks(tt.input)
			if marks.String() != tt.wantMarks {
				t.Errorf("SelectMarks() marks = %q, want %q", marks.String(), tt.wantMarks)
			}
			if terminal != tt.wantTerminal {
				t.Errorf("SelectMarks() terminal = %q, want %q", terminal, tt.wantTerminal)
			}
		})
	}
}

func TestMarkSet_Contains(t *testing.T) {
	marks := MarkSet{CloseObject}
	if !marks.Contains(CloseObject) {
		t.Error("Contains('}') = false, want true")
	}
	if marks.Contains(CloseArray) {
		t.Error("Contains(']') = true, want false")
	}
}
