package lyrics

import (
	"regexp"
	"strings"
	"unicode"
)

// Tunable heuristic thresholds. The values match the behavior the cleanup was
// originally calibrated with; change them only together with the tests.
const (
	chordDensityThreshold = 0.50
	chordShapeThreshold   = 0.60
	uppercaseThreshold    = 0.40
)

var (
	// Chord grammar: root A-G, optional accidental, optional quality,
	// optional scale degrees, optional addN extension, optional slash chord.
	// Bare roots like "A" or "G" intentionally count as chords even though
	// they can appear as words; see the lyric-word override below.
	chordTokenRe = regexp.MustCompile(`^[A-G][#b]?(?:maj|min|m|M|aug|dim|sus)?[0-9]*(?:add[0-9]+)?(?:/[A-G][#b]?)?$`)

	// A root note followed by a sharp or flat, anywhere in the line.
	accidentalRe = regexp.MustCompile(`[A-G][#b]`)

	// Isolated chord-quality tokens that essentially never occur in lyrics.
	chordQualityRe = regexp.MustCompile(`(?:^|[\s(|])(?:maj7|min7|sus2|sus4|dim7|add9|aug|m7|M7)(?:[\s)|]|$)`)
)

// Punctuation that may wrap a chord token in chord sheets: bars, repeat
// parentheses, dots and dashes.
const chordPunct = "()[]{}|.,;:!-"

// Common English function words. A line containing any of these is lyrics, no
// matter how chord-like the rest of it looks. Single-letter words and "am"
// are deliberately absent - they collide with chord roots.
var lyricWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "is", "are", "was", "were", "you", "your", "my", "me",
		"we", "they", "he", "she", "it", "in", "on", "of", "to", "for",
		"with", "that", "this", "what", "when", "where", "who", "how",
		"not", "but", "all", "oh", "yeah", "love", "like", "know", "never",
		"will", "can", "dont", "cant", "im", "ill", "its", "youre", "be",
		"so", "no", "do", "go", "say", "one", "now", "time", "heart",
	} {
		lyricWords[w] = struct{}{}
	}
}

// isChordLine classifies a line as guitar/piano chord notation. The
// heuristics are evaluated in order: a common lyric word forces a definitive
// keep, then the structural rules are OR'd - any one firing removes the line.
// Classification is approximate by design.
func isChordLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	// 1. Lyric-word override: definitive keep.
	if containsLyricWord(trimmed) {
		return false
	}

	tokens := strings.Fields(trimmed)
	nonSpace := 0
	for _, r := range trimmed {
		if !unicode.IsSpace(r) {
			nonSpace++
		}
	}

	// 2. Chord-pattern exhaustion: every token is a chord or bare
	// punctuation/bar symbols.
	matches := 0
	matchedLen := 0
	onlyChords := true
	for _, tok := range tokens {
		core := strings.Trim(tok, chordPunct)
		if core == "" {
			continue
		}
		if chordTokenRe.MatchString(core) {
			matches++
			matchedLen += len(core)
			continue
		}
		onlyChords = false
	}
	if matches > 0 && onlyChords {
		return true
	}

	// 3. Chord density: matched chords dominate the line.
	if matches >= 2 && nonSpace > 0 && float64(matchedLen) > chordDensityThreshold*float64(nonSpace) {
		return true
	}

	// 4. Structural shape: short line made mostly of chord-shaped tokens.
	if len(trimmed) < 40 && len(tokens) >= 2 {
		shaped := 0
		for _, tok := range tokens {
			if isChordShaped(tok) {
				shaped++
			}
		}
		if float64(shaped) >= chordShapeThreshold*float64(len(tokens)) {
			return true
		}
	}

	// 5. Sharp/flat on a short uppercase-heavy line.
	if accidentalRe.MatchString(trimmed) && len(trimmed) < 50 && nonSpace > 0 {
		upper := 0
		for _, r := range trimmed {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		if float64(upper) > uppercaseThreshold*float64(nonSpace) {
			return true
		}
	}

	// 6. Isolated chord-quality keyword on a short line.
	if len(trimmed) < 50 && chordQualityRe.MatchString(trimmed) {
		return true
	}

	return false
}

func containsLyricWord(line string) bool {
	for _, tok := range strings.Fields(strings.ToLower(line)) {
		stripped := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) {
				return r
			}
			return -1
		}, tok)
		if _, ok := lyricWords[stripped]; ok {
			return true
		}
	}
	return false
}

// isChordShaped is a looser test than the chord grammar: short token,
// starts with a root letter, contains at least one chord-indicative
// character (A-G, sharp, flat or a slash).
func isChordShaped(tok string) bool {
	if len(tok) == 0 || len(tok) > 6 {
		return false
	}
	if tok[0] < 'A' || tok[0] > 'G' {
		return false
	}
	return strings.ContainsAny(tok, "ABCDEFG#b/")
}

// removeChordLines drops chord-notation lines, preserving blank lines.
func removeChordLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isChordLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
