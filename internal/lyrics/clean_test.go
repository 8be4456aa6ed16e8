package lyrics_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lirik/internal/lyrics"
)

func TestClean_EmptyInput(t *testing.T) {
	require.Equal(t, "", lyrics.Clean(""))
	require.Equal(t, "", lyrics.Clean("   \n\n  "))
	require.Equal(t, "", lyrics.Clean("\r\n\t\r\n"))
}

func TestClean_RemovesMarkers(t *testing.T) {
	out := lyrics.Clean("[Verse 1]\nHello\n[Chorus]\nWorld")

	require.Contains(t, out, "Hello")
	require.Contains(t, out, "World")
	for _, line := range strings.Split(out, "\n") {
		require.NotEqual(t, "[Verse 1]", line)
		require.NotEqual(t, "[Chorus]", line)
	}
}

func TestClean_RemovesChordLinesKeepsLyrics(t *testing.T) {
	out := lyrics.Clean("C G Am F\nI am the one who waits for you")

	require.NotContains(t, out, "C G Am F")
	require.Contains(t, out, "I am the one who waits for you")
}

func TestClean_CollapsesExactRepeats(t *testing.T) {
	chorus := "Take my hand and hold on tight\nWe will make it through the night"
	input := chorus + "\n\n" + "You and me against the world tonight" + "\n\n" + chorus + "\n\n" + chorus

	out := lyrics.Clean(input)

	require.Equal(t, 1, strings.Count(out, "Take my hand and hold on tight"))
	// First occurrence position is preserved: the chorus comes before the verse.
	require.Less(t,
		strings.Index(out, "Take my hand"),
		strings.Index(out, "You and me against"))
}

func TestClean_NearDuplicateKeepsLongerVariant(t *testing.T) {
	short := "Di malam sunyi ku menunggu dirimu\nBersama bintang menyanyi sendiri\nMenanti pagi datang membawa cahaya"
	long := short + "\nSelamanya di sini"

	out := lyrics.Clean(short + "\n\n" + long)

	require.Contains(t, out, "Selamanya di sini")
	require.Equal(t, 1, strings.Count(out, "Di malam sunyi ku menunggu dirimu"))
}

func TestClean_KeepsDistinctVerses(t *testing.T) {
	out := lyrics.Clean("[Verse 1]\nLine A\nLine B\n\n[Verse 2]\nLine C\nLine D")

	require.Contains(t, out, "Line A\nLine B")
	require.Contains(t, out, "Line C\nLine D")
}

func TestClean_CollapsesBlankLines(t *testing.T) {
	out := lyrics.Clean("First verse opening words\n\n\n\n\nSecond verse closing words\n\n")

	require.Equal(t, "First verse opening words\n\nSecond verse closing words", out)
}

func TestClean_TrimsLineWhitespace(t *testing.T) {
	out := lyrics.Clean("   Hello out there   \n\t\nGoodnight moon and stars\t")

	require.Equal(t, "Hello out there\n\nGoodnight moon and stars", out)
}

func TestClean_NormalizesCRLF(t *testing.T) {
	lf := lyrics.Clean("Hello out there\n\nGoodnight moon and stars")
	crlf := lyrics.Clean("Hello out there\r\n\r\nGoodnight moon and stars")

	require.Equal(t, lf, crlf)
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   \n  ",
		"[Verse 1]\nHello\n[Chorus]\nWorld",
		"C G Am F\nI am the one who waits for you",
		"Take my hand and hold on tight\n\nTake my hand and hold on tight",
		"[Intro]\nE B C#m A\nWhen the day has come and gone\n\nReff:\nKita bernyanyi bersama lagi\n\nKita bernyanyi bersama lagi",
		"   First verse opening words\n\n\n\nSecond verse closing words  ",
	}

	for _, in := range inputs {
		once := lyrics.Clean(in)
		twice := lyrics.Clean(once)
		require.Equal(t, once, twice, "pipeline must be idempotent for %q", in)
	}
}

func TestClean_FullChordSheet(t *testing.T) {
	input := strings.Join([]string{
		"[Intro]",
		"C  G  Am  F",
		"",
		"Verse 1:",
		"Walking down the empty street",
		"C          G",
		"Counting every heart beat",
		"",
		"[Chorus 2x]",
		"Sing it loud and sing it true",
		"Every word I keep for you",
		"",
		"Sing it loud and sing it true",
		"Every word I keep for you",
	}, "\n")

	out := lyrics.Clean(input)

	require.NotContains(t, out, "[Intro]")
	require.NotContains(t, out, "Verse 1:")
	require.NotContains(t, out, "[Chorus 2x]")
	require.NotContains(t, out, "C  G  Am  F")
	require.Contains(t, out, "Walking down the empty street")
	require.Equal(t, 1, strings.Count(out, "Sing it loud and sing it true"))
}
