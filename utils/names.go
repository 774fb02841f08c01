package utils

import "strings"

// NormalizeString normalizes string for comparison (lowercase, remove spaces)
func NormalizeString(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}

// CompareNames reports whether two spellings plausibly name the same person,
// e.g. the salary slip's "R. K. PATEL" and the tour order's "Ravi K Patel".
func CompareNames(name1, name2 string) bool {
	if name1 == "" || name2 == "" {
		return false
	}

	norm1 := NormalizeString(name1)
	norm2 := NormalizeString(name2)

	if norm1 == norm2 {
		return true
	}
	if strings.Contains(norm1, norm2) || strings.Contains(norm2, norm1) {
		return true
	}

	words1 := strings.Fields(strings.ToLower(strings.ReplaceAll(name1, ".", " ")))
	words2 := strings.Fields(strings.ToLower(strings.ReplaceAll(name2, ".", " ")))
	if len(words1) > len(words2) {
		words1, words2 = words2, words1
	}
	if len(words1) == 0 {
		return false
	}

	// Initials count as a match for the word they abbreviate.
	matchCount := 0
	for _, w1 := range words1 {
		for _, w2 := range words2 {
			if w1 == w2 || (len(w1) == 1 && strings.HasPrefix(w2, w1)) || (len(w2) == 1 && strings.HasPrefix(w1, w2)) {
				matchCount++
				break
			}
		}
	}

	return float64(matchCount)/float64(len(words1)) >= 0.5 && matchCount > 0 && lastWordsMatch(words1, words2)
}

func lastWordsMatch(a, b []string) bool {
	for _, w := range b {
		if w == a[len(a)-1] {
			return true
		}
	}
	return false
}
