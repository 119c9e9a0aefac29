package extract

import (
	"errors"
	"reflect"
	"testing"
)

func TestEvaluateLiteral(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		lenient bool
		want    any
		wantErr bool
	}{
		{
			name:  "json object",
			input: `{"a": [1, true, null]}`,
			want:  map[string]any{"a": []any{1.0, true, nil}},
		},
		{
			name:    "single quotes rejected in strict mode",
			input:   `{'a': 1}`,
			wantErr: true,
		},
		{
			name:    "single quotes accepted in lenient mode",
			input:   `{'a': 1}`,
			lenient: true,
			want:    map[string]any{"a": 1.0},
		},
		{
			name:    "python constants",
			input:   `{'ok': True, 'missing': None, 'off': False}`,
			lenient: true,
			want:    map[string]any{"ok": true, "missing": nil, "off": false},
		},
		{
			name:    "trailing commas",
			input:   `[1, 2, ]`,
			lenient: true,
			want:    []any{1.0, 2.0},
		},
		{
			name:    "names are not literals",
			input:   `{'a': os.system('ls')}`,
			lenient: true,
			wantErr: true,
		},
		{
			name:    "operators are not literals",
			input:   `[1 * 2]`,
			lenient: true,
			wantErr: true,
		},
		{
			name:    "subtraction is not a number",
			input:   `[1-2]`,
			lenient: true,
			wantErr: true,
		},
		{
			name:    "hex digits are not a number",
			input:   `{'a': 0x1F}`,
			lenient: true,
			wantErr: true,
		},
		{
			name:    "digit separators rejected",
			input:   `[1_000]`,
			lenient: true,
			wantErr: true,
		},
		{
			name:    "exponent without digits",
			input:   `{"a": 1e}`,
			lenient: true,
			wantErr: true,
		},
		{
			name:    "values without separator",
			input:   `[1 2]`,
			lenient: true,
			wantErr: true,
		},
		{
			name:    "signed numbers",
			input:   `[+1, -2.5e3]`,
			lenient: true,
			want:    []any{1.0, -2500.0},
		},
		{
			name:    "unterminated string",
			input:   `{'a': 'b}`,
			lenient: true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateLiteral(tt.input, tt.lenient)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsafeLiteral) {
					t.Fatalf("EvaluateLiteral() error = %v, want ErrUnsafeLiteral", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("EvaluateLiteral() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EvaluateLiteral() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
