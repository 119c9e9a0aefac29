package fit

import "strings"

// Mark is a closing delimiter tried during repair.
type Mark byte

const (
	CloseObject Mark = '}'
	CloseArray  Mark = ']'
)

// MarkSet is an ordered set of closing marks. Objects always come before
// arrays, which fixes the enumeration order of Combinations.
type MarkSet []Mark

// Contains reports whether m is in the set.
func (s MarkSet) Contains(m Mark) bool {
	for _, mark := range s {
		if mark == m {
			return true
		}
	}
	return false
}

func (s MarkSet) String() string {
	var b strings.Builder
	for _, mark := range s {
		b.WriteByte(byte(mark))
	}
	return b.String()
}

// SelectMarks returns the closing marks worth trying for text and the mark
// every closing string must end with.
//
// A closer is included when its opening bracket appears anywhere in text.
// This is a presence check, not a balance check: a closed object followed by
// more text still selects '}'. The terminal mark is ']' when the first
// non-whitespace byte is '[', otherwise '}'.
func SelectMarks(text string) (MarkSet, Mark) {
	var marks MarkSet
	if strings.ContainsRune(text, '{') {
		marks = append(marks, CloseObject)
	}
	if strings.ContainsRune(text, '[') {
		marks = append(marks, CloseArray)
	}

	terminal := CloseObject
	if trimmed := strings.TrimSpace(text); trimmed != "" && trimmed[0] == '[' {
		terminal = CloseArray
	}
	return marks, terminal
}
