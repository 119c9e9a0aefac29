package fit

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeLenient(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    any
		wantErr bool
	}{
		{name: "strict json", input: `{"a": 1}`, want: map[string]any{"a": 1.0}},
		{name: "python dict", input: `{'a': 'b', 'n': None}`, want: map[string]any{"a": "b", "n": nil}},
		{name: "leading plus", input: `[+1, -0.5]`, want: []any{1.0, -0.5}},
		{name: "subtraction", input: `[1-2]`, wantErr: true},
		{name: "hex", input: `{'a': 0x1F}`, wantErr: true},
		{name: "leading zero", input: `[01]`, wantErr: true},
		{name: "bare dot", input: `[.5]`, wantErr: true},
		{name: "trailing dot", input: `[1.]`, wantErr: true},
		{name: "bare name", input: `{'a': b}`, wantErr: true},
		{name: "adjacent strings", input: `['a' 'b']`, wantErr: true},
		{name: "adjacent containers", input: `[[1] [2]]`, wantErr: true},
		{name: "lone sign", input: `[-]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeLenient(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNotLiteral) {
					t.Fatalf("DecodeLenient() error = %v, want ErrNotLiteral", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeLenient() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeLenient() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
