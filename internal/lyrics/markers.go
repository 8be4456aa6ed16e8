package lyrics

import (
	"regexp"
	"strings"
)

// Structural annotations found in scraped lyric sheets. English song-structure
// terms plus the Indonesian equivalents seen on local lyric sites.
var (
	// Entirely bracketed annotations, e.g. "[Verse 1]", "[Chorus 2x]".
	bracketMarkerRe = regexp.MustCompile(`^\[[^\[\]]+\]$`)

	// Bare keyword lines, e.g. "Chorus:", "Verse 2", "Reff 2x", "Bait", "Ulang".
	// Keyword, optional number, optional separator with another number,
	// optional trailing repeat "x" - and nothing else.
	keywordMarkerRe = regexp.MustCompile(`(?i)^(?:intro|verse|chorus|pre[\s-]?chorus|bridge|hook|interlude|outro|solo|breakdown|instrumental|coda|spoken|refrain|bait|ulang|pengulangan|repeat|reff)(?:\s*\d+)?(?:\s*[:\-–—]\s*\d*)?(?:\s*\d*x)?\s*$`)
)

// isMarkerLine reports whether a line is purely a structural song-section
// label. Blank lines are never markers; they delimit paragraphs and must
// survive for the deduplication stage.
func isMarkerLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	return bracketMarkerRe.MatchString(trimmed) || keywordMarkerRe.MatchString(trimmed)
}

// stripMarkers drops marker lines, preserving order and blank lines.
func stripMarkers(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isMarkerLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
