package lyrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsChordLine_PureChordLines(t *testing.T) {
	chordLines := []string{
		"C G Am F",
		"G D Em C",
		"F#m D A E",
		"Am",
		"A", // bare roots count as chords; known false-positive source
		"C  G  Am  F",
		"| C | G | Am | F |",
		"Cmaj7 Fmaj7",
		"Dm7 G7 Cmaj7",
		"A/B C/G",
		"Bb Eb F",
	}
	for _, line := range chordLines {
		require.True(t, isChordLine(line), "expected chord line: %q", line)
	}
}

func TestIsChordLine_LyricWordOverride(t *testing.T) {
	lines := []string{
		"I am the one",
		"A B C easy as one two three", // "one" and "as"? "one" is enough
		"Be my baby tonight",
		"G is for the way you look at me",
	}
	for _, line := range lines {
		require.False(t, isChordLine(line), "override should keep: %q", line)
	}
}

func TestIsChordLine_Density(t *testing.T) {
	// Four chords plus a repeat count: not pure chords, but chord characters
	// dominate the line.
	require.True(t, isChordLine("Am F C G x2"))
}

func TestIsChordLine_StructuralShape(t *testing.T) {
	// A7sus4 fails the strict grammar (suffix after the digits) but the line
	// is short and every token is chord-shaped.
	require.True(t, isChordLine("Bm7 Em7 A7sus4 D"))
}

func TestIsChordLine_AccidentalUppercase(t *testing.T) {
	require.True(t, isChordLine("C# RIFF G#"))
}

func TestIsChordLine_QualityKeyword(t *testing.T) {
	require.True(t, isChordLine("play sus4 here"))
	require.True(t, isChordLine("hold maj7 then stop"))
}

func TestIsChordLine_KeepsOrdinaryLyrics(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"Hello darkness my old friend",
		"Kita bernyanyi bersama lagi",
		"Walking down the empty street",
		"Semua kenangan tersimpan selamanya",
	}
	for _, line := range lines {
		require.False(t, isChordLine(line), "expected lyric line: %q", line)
	}
}

func TestRemoveChordLines_PreservesBlankLines(t *testing.T) {
	in := "C G Am F\nI am the one\n\nD A Bm G\nYou are the light"
	out := removeChordLines(in)
	require.Equal(t, "I am the one\n\nYou are the light", out)
}
