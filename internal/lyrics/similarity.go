package lyrics

import "strings"

// NormalizeKey lowercases text and collapses internal whitespace to single
// spaces so that paragraphs which differ only in casing or spacing compare
// equal during deduplication.
func NormalizeKey(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Jaccard returns the Jaccard similarity of the whitespace-split word sets of
// a and b: intersection size divided by union size. Two empty sets score 0.
func Jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}
