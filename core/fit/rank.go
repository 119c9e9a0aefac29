package fit

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Ranked holds candidate values ordered from most to least complete.
// Completion is always Suggestions[0].
type Ranked struct {
	Completion  any
	Suggestions []any
}

// RenderLength is the length of the compact JSON rendering of v, the score
// used by Rank. Values that cannot be rendered score -1.
func RenderLength(v any) int {
	encoded, err := json.Marshal(v)
	if err != nil {
		return -1
	}
	return len(encoded)
}

// Rank sorts values by descending RenderLength. Ties keep their input order.
// It returns ErrEmptyCandidateSet when values is empty.
func Rank(values []any) (Ranked, error) {
	if len(values) == 0 {
		return Ranked{}, fmt.Errorf("%w: nothing to rank", ErrEmptyCandidateSet)
	}

	type scored struct {
		value  any
		length int
	}
	items := make([]scored, len(values))
	for i, v := range values {
		items[i] = scored{value: v, length: RenderLength(v)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].length > items[j].length
	})

	suggestions := make([]any, len(items))
	for i, item := range items {
		suggestions[i] = item.value
	}
	return Ranked{Completion: suggestions[0], Suggestions: suggestions}, nil
}

// dedupe drops values whose rendering was already seen, keeping the first.
func dedupe(values []any) []any {
	seen := make(map[string]bool, len(values))
	out := values[:0:0]
	for _, v := range values {
		encoded, err := json.Marshal(v)
		if err != nil {
			out = append(out, v)
			continue
		}
		if seen[string(encoded)] {
			continue
		}
		seen[string(encoded)] = true
		out = append(out, v)
	}
	return out
}
