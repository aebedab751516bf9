// Package similarity scores how alike two strings are using normalized
// Levenshtein distance.
package similarity

import "strings"

// Similarity returns a score in [0,1]: 1 for identical strings (ignoring
// case), 0 when every character must change. Two empty strings score 1.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	maxLen := max(len(ra), len(rb), 1)
	dist := Distance(ra, rb)
	return float64(maxLen-dist) / float64(maxLen)
}

// Distance is the Levenshtein edit distance with unit cost for insertion,
// deletion and substitution.
func Distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows of the DP table are enough.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
