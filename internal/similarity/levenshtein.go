package similarity

import "unicode/utf8"

// Metric is a normalized distance function.
type Metric interface {
	// Distance returns a value in [0, 1]; 0 iff a == b.
	Distance(a, b string) float64
}

// NormalizedLevenshtein is the Levenshtein edit distance divided by the
// length of the longer input, counted in runes. Inputs that are not valid
// UTF-8 are compared byte by byte, so distinct invalid bytes never collapse
// into the same replacement rune.
type NormalizedLevenshtein struct{}

// Distance implements Metric.
func (NormalizedLevenshtein) Distance(a, b string) float64 {
	if a == b {
		return 0.0
	}
	if !utf8.ValidString(a) || !utf8.ValidString(b) {
		return normalized([]byte(a), []byte(b))
	}
	return normalized([]rune(a), []rune(b))
}

func normalized[T comparable](a, b []T) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0.0
	}
	return float64(levenshtein(a, b)) / float64(longest)
}

// Similarity returns 1 - Distance(a, b).
func Similarity(m Metric, a, b string) float64 {
	return FromDistance(m.Distance(a, b))
}

// FromDistance converts a stored distance score into a similarity.
func FromDistance(distance float64) float64 {
	return 1.0 - distance
}

// levenshtein computes the edit distance between two sequences using two
// rolling rows.
func levenshtein[T comparable](a, b []T) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Keep the shorter slice as the row to bound memory.
	if len(b) > len(a) {
		a, b = b, a
	}

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
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
