package lyrics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lirik/internal/lyrics"
)

func TestNormalizeKey(t *testing.T) {
	require.Equal(t, "hello world", lyrics.NormalizeKey("  Hello   WORLD \n"))
	require.Equal(t, "a b c", lyrics.NormalizeKey("a\nb\tc"))
	require.Equal(t, "", lyrics.NormalizeKey("   "))
}

func TestJaccard(t *testing.T) {
	require.Equal(t, 1.0, lyrics.Jaccard("a b c", "c b a"))
	require.Equal(t, 0.0, lyrics.Jaccard("a b", "c d"))
	require.Equal(t, 0.0, lyrics.Jaccard("", ""))
	require.Equal(t, 0.0, lyrics.Jaccard("a b", ""))
	require.InDelta(t, 0.5, lyrics.Jaccard("a b c d", "a b"), 1e-9)
}

func TestJaccard_RepeatedWordsCountOnce(t *testing.T) {
	// Word sets, not bags: repetition does not change the score.
	require.Equal(t, 1.0, lyrics.Jaccard("la la la", "la"))
}
