package fit

import (
	"errors"
	"reflect"
	"testing"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   []any
	}{
		{
			name:   "sorted by rendering length",
			values: []any{"a", "abc", "ab"},
			want:   []any{"abc", "ab", "a"},
		},
		{
			name:   "ties keep input order",
			values: []any{1.0, 2.0, 3.0},
			want:   []any{1.0, 2.0, 3.0},
		},
		{
			name: "longer structure wins",
			values: []any{
				map[string]any{},
				map[string]any{"a": map[string]any{"b": 1.0}},
				map[string]any{"a": 1.0},
			},
			want: []any{
				map[string]any{"a": map[string]any{"b": 1.0}},
				map[string]any{"a": 1.0},
				map[string]any{},
			},
		},
		{
			name:   "single value",
			values: []any{[]any{1.0}},
			want:   []any{[]any{1.0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rank(tt.values)
			if err != nil {
				t.Fatalf("Rank() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got.Suggestions, tt.want) {
				t.Errorf("Rank().Suggestions = %#v, want %#v", got.Suggestions, tt.want)
			}
			if !reflect.DeepEqual(got.Completion, got.Suggestions[0]) {
				t.Errorf("Rank().Completion = %#v, want Suggestions[0] %#v", got.Completion, got.Suggestions[0])
			}
			for i := 1; i < len(got.Suggestions); i++ {
				if RenderLength(got.Suggestions[i]) > RenderLength(got.Suggestions[i-1]) {
					t.Errorf("suggestion %d renders longer than suggestion %d", i, i-1)
				}
			}
		})
	}
}

func TestRank_Empty(t *testing.T) {
	_, err := Rank(nil)
	if !errors.Is(err, ErrEmptyCandidateSet) {
		t.Errorf("Rank(nil) error = %v, want ErrEmptyCandidateSet", err)
	}
}

func TestRenderLength(t *testing.T) {
	tests := []struct {
		value any
		want  int
	}{
		{value: map[string]any{"a": 1.0, "b": 2.0}, want: len(`{"a":1,"b":2}`)},
		{value: []any{}, want: 2},
		{value: nil, want: 4},
		{value: "x", want: 3},
		{value: func() {}, want: -1},
	}
	for _, tt := range tests {
		if got := RenderLength(tt.value); got != tt.want {
			t.Errorf("RenderLength(%#v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}
