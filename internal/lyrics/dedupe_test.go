package lyrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDedupeSections_ExactRepeat(t *testing.T) {
	chorus := "sing the song again\nall night long"
	in := chorus + "\n\n" + chorus + "\n\n" + chorus
	require.Equal(t, chorus, dedupeSections(in))
}

func TestDedupeSections_NormalizedKeyMatch(t *testing.T) {
	in := "Sing The   Song\n\nsing the song"
	// Differs only in casing and spacing: the first kept variant wins.
	require.Equal(t, "Sing The   Song", dedupeSections(in))
}

func TestDedupeSections_NearDuplicateReplacedInPlace(t *testing.T) {
	verse := "something completely different here\nwith totally other words entirely"
	short := "di malam sunyi ku menunggu dirimu\nbersama bintang aku bernyanyi\nmenanti pagi datang membawa cahaya"
	long := short + "\nselamanya di sini"

	out := dedupeSections(verse + "\n\n" + short + "\n\n" + long)

	// The longer variant replaces the shorter one at its original position.
	require.Equal(t, verse+"\n\n"+long, out)
}

func TestDedupeSections_ShorterNearDuplicateDropped(t *testing.T) {
	long := "di malam sunyi ku menunggu dirimu\nbersama bintang aku bernyanyi\nmenanti pagi datang membawa cahaya\nselamanya di sini"
	short := "di malam sunyi ku menunggu dirimu\nbersama bintang aku bernyanyi\nmenanti pagi datang membawa cahaya"

	out := dedupeSections(long + "\n\n" + short)

	require.Equal(t, long, out)
}

func TestDedupeSections_DistinctSectionsKept(t *testing.T) {
	a := "line alpha\nline beta"
	b := "line gamma\nline delta"
	out := dedupeSections(a + "\n\n" + b)
	require.Equal(t, a+"\n\n"+b, out)
}

func TestSplitParagraphs(t *testing.T) {
	paras := splitParagraphs("one\ntwo\n\n\nthree\n\n  \nfour\n")
	require.Equal(t, []string{"one\ntwo", "three", "four"}, paras)
}

func TestSplitParagraphs_Empty(t *testing.T) {
	require.Empty(t, splitParagraphs(""))
	require.Empty(t, splitParagraphs("\n\n  \n"))
}
