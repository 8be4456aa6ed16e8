package lyrics

import "strings"

// similarityThreshold is the Jaccard score above which two paragraphs are
// treated as repeats of the same section.
const similarityThreshold = 0.80

// dedupeSections collapses repeated paragraphs (choruses, refrains) down to a
// single instance at the position of the first occurrence. Paragraphs are
// blank-line-delimited blocks. An exact normalized-key repeat is skipped
// outright; a near-duplicate (Jaccard > similarityThreshold against any kept
// paragraph) is also dropped, but when the newcomer is strictly longer it
// replaces the kept variant in place so the most complete repeat survives.
// Structurally distinct sections are never merged.
func dedupeSections(text string) string {
	paragraphs := splitParagraphs(text)

	var kept []string
	var keptKeys []string
	position := make(map[string]int)

	for _, para := range paragraphs {
		key := NormalizeKey(para)
		if _, seen := position[key]; seen {
			continue
		}

		duplicate := false
		for i, keptKey := range keptKeys {
			if Jaccard(key, keptKey) > similarityThreshold {
				if len(para) > len(kept[i]) {
					delete(position, keptKey)
					kept[i] = para
					keptKeys[i] = key
					position[key] = i
				}
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		position[key] = len(kept)
		kept = append(kept, para)
		keptKeys = append(keptKeys, key)
	}

	return strings.Join(kept, "\n\n")
}

// splitParagraphs splits text into trimmed, non-empty paragraphs delimited by
// one or more blank lines, preserving order.
func splitParagraphs(text string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		para := strings.TrimSpace(strings.Join(current, "\n"))
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paragraphs
}
