package main

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCandidates_Count(t *testing.T) {
	tiles := []string{"a", "bb", "ccc", "dd", "e", "ff"}
	for n := 0; n <= len(tiles); n++ {
		for k := 0; k <= 5; k++ {
			got := generateCandidates(tiles[:n], k)
			assert.Len(t, got, candidateCount(n, k), "n=%d k=%d", n, k)
		}
	}
}

func TestCandidateCount(t *testing.T) {
	assert.Equal(t, 0, candidateCount(0, 4))
	assert.Equal(t, 0, candidateCount(3, 0))
	assert.Equal(t, 3+6+6, candidateCount(3, 4), "k > n contributes nothing beyond n")
	// 20 tiles, up to 4: 20 + 380 + 6840 + 116280.
	assert.Equal(t, 123520, candidateCount(20, 4))
	assert.Equal(t, math.MaxInt, candidateCount(1000, 1000))
}

func TestGenerateCandidates_WordIsConcatenation(t *testing.T) {
	for _, c := range generateCandidates([]string{"jou", "rn", "al", "x"}, 4) {
		sum := 0
		for _, tile := range c.Grouping {
			sum += len(tile.Text)
		}
		assert.Equal(t, sum, len(c.Word))
		assert.Equal(t, strings.Join(c.Grouping.Texts(), ""), c.Word)
	}
}

func TestGenerateCandidates_Order(t *testing.T) {
	got := generateCandidates([]string{"a", "b", "c"}, 2)
	words := make([]string, len(got))
	for i, c := range got {
		words[i] = c.Word
	}
	assert.Equal(t, []string{"a", "b", "c", "ab", "ac", "ba", "bc", "ca", "cb"}, words)
}

func TestGenerateCandidates_DistinctPositions(t *testing.T) {
	for _, c := range generateCandidates([]string{"la", "la", "te"}, 3) {
		seen := map[int]bool{}
		for _, tile := range c.Grouping {
			require.False(t, seen[tile.Pos], "position %d repeated in %v", tile.Pos, c.Grouping)
			seen[tile.Pos] = true
		}
	}
}

func TestGenerateCandidates_Deterministic(t *testing.T) {
	tiles := []string{"far", "ci", "ca", "lly"}
	assert.Equal(t, generateCandidates(tiles, 4), generateCandidates(tiles, 4))
}

func TestEachCandidate_StopsEarly(t *testing.T) {
	calls := 0
	eachCandidate(makeTiles([]string{"a", "b", "c"}), 3, func(Candidate) bool {
		calls++
		return calls < 4
	})
	assert.Equal(t, 4, calls)
}

func TestCheckCandidateBudget(t *testing.T) {
	require.NoError(t, checkCandidateBudget(20, 4, defaultMaxCandidates))
	require.NoError(t, checkCandidateBudget(500, 4, 0))
	err := checkCandidateBudget(100, 4, defaultMaxCandidates)
	require.ErrorIs(t, err, errTooManyCandidates)
}
