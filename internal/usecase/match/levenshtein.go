package match

// levenshteinDistance computes the edit distance between two strings,
// operating on runes so multi-byte titles score correctly.
func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	// Two-row rolling window keeps allocation linear in the shorter string.
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
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

	return prev[lb]
}

// stringSimilarity computes normalized Levenshtein similarity.
// Returns a value between 0.0 (completely different) and 1.0 (identical).
// Comparison is case-insensitive; callers pass already-lowercased input.
func stringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	distance := levenshteinDistance(a, b)
	maxLen := max(len([]rune(a)), len([]rune(b)))

	return 1.0 - float64(distance)/float64(maxLen)
}
