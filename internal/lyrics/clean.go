// Package lyrics implements the deterministic cleanup pipeline applied to
// scraped or pasted song lyrics before they are stored or translated.
//
// The pipeline runs four ordered, independent stages: section-marker
// stripping, chord-line removal, repeated-section deduplication and
// whitespace normalization. Every stage is a pure string transform; the
// composition is total over all inputs, never fails and is idempotent -
// cleaning already-clean text returns it unchanged.
package lyrics

import "strings"

// Clean normalizes raw lyric text. Empty or whitespace-only input yields the
// empty string. Line endings are normalized before paragraph splitting, so
// CRLF input behaves the same as LF.
func Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = stripMarkers(text)
	text = removeChordLines(text)
	text = dedupeSections(text)
	return normalizeWhitespace(text)
}
