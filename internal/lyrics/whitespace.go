package lyrics

import "strings"

// normalizeWhitespace trims every line, collapses runs of blank lines into a
// single blank line and trims the overall result. Purely cosmetic; no
// classification logic.
func normalizeWhitespace(text string) string {
	var b strings.Builder
	blankPending := false
	wroteLine := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			blankPending = wroteLine
			continue
		}
		if blankPending {
			b.WriteString("\n")
			blankPending = false
		}
		if wroteLine {
			b.WriteString("\n")
		}
		b.WriteString(trimmed)
		wroteLine = true
	}

	return b.String()
}
