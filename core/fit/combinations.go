package fit

// Combinations returns every closing string of length 1..maxLen built from
// marks (with repetition) whose last mark is end.
//
// Shorter strings come first; strings of equal length follow the
// lexicographic order of marks, so for marks "}]" the length-2 candidates
// ending in ']' are "}]" then "]]". The space grows as len(marks)^maxLen;
// with the two bracket kinds and the default bound that is 62 strings before
// filtering.
func Combinations(marks MarkSet, maxLen int, end Mark) []string {
	if len(marks) == 0 || maxLen <= 0 || !marks.Contains(end) {
		return nil
	}

	var out []string
	buf := make([]byte, maxLen)
	for n := 1; n <= maxLen; n++ {
		idx := make([]int, n)
		for {
			if marks[idx[n-1]] == end {
				for i, j := range idx {
					buf[i] = byte(marks[j])
				}
				out = append(out, string(buf[:n]))
			}

			// odometer increment, rightmost position fastest
			pos := n - 1
			for pos >= 0 {
				idx[pos]++
				if idx[pos] < len(marks) {
					break
				}
				idx[pos] = 0
				pos--
			}
			if pos < 0 {
				break
			}
		}
	}
	return out
}

// CombinationCount is the size of the unfiltered search space for an
// alphabet of k marks and closing strings up to maxLen long.
func CombinationCount(k, maxLen int) int {
	total, power := 0, 1
	for n := 1; n <= maxLen; n++ {
		power *= k
		total += power
	}
	return total
}
