package lyrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMarkerLine(t *testing.T) {
	markers := []string{
		"[Verse]",
		"[Verse 1]",
		"[Chorus 2x]",
		"[Intro - acoustic]",
		"Chorus",
		"Chorus:",
		"chorus:",
		"Verse 2",
		"Intro 1",
		"Reff 2x",
		"Pre-Chorus",
		"Pre Chorus 2",
		"Interlude 2 - 3",
		"Bait",
		"Ulang",
		"Pengulangan",
		"Repeat",
		"BREAKDOWN",
		"Instrumental",
		"  [Outro]  ",
	}
	for _, line := range markers {
		require.True(t, isMarkerLine(line), "expected marker: %q", line)
	}

	lyricsLines := []string{
		"",
		"   ",
		"Hello darkness my old friend",
		"Chorus of angels singing",
		"The bridge is falling down",
		"Ulangi semua dari awal lagi",
		"[bracket] with trailing text",
	}
	for _, line := range lyricsLines {
		require.False(t, isMarkerLine(line), "expected non-marker: %q", line)
	}
}

func TestStripMarkers_PreservesBlankLines(t *testing.T) {
	in := "[Verse 1]\nfirst line\n\n[Chorus]\nsecond line"
	out := stripMarkers(in)
	require.Equal(t, "first line\n\nsecond line", out)
}
