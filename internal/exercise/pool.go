package exercise

// Remaining subtracts placed from candidates element for element, so two
// copies of a word stay two separate tiles. Candidate order is kept and the
// first matching occurrences are the ones removed. Neither input is modified.
// Placed values that are not candidates are ignored.
func Remaining(candidates, placed []string) []string {
	used := Counts(placed)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if used[c] > 0 {
			used[c]--
			continue
		}
		out = append(out, c)
	}
	return out
}

// Counts returns the multiplicity of every value.
func Counts(values []string) map[string]int {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	return counts
}

// Available reports whether value is still in the pool left by placed.
func Available(candidates, placed []string, value string) bool {
	for _, v := range Remaining(candidates, placed) {
		if v == value {
			return true
		}
	}
	return false
}
