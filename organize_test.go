package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupWords(g Group) []string {
	out := make([]string, len(g.Entries))
	for i, e := range g.Entries {
		out[i] = e.Word
	}
	return out
}

func TestSolve_Journal(t *testing.T) {
	lex := newLexicon([]string{"journal"})
	res := solve([]string{"jou", "rn", "al"}, lex, solveOptions{MinLength: 2, MaxGroup: 4})

	require.Len(t, res.Groups, 4)
	assert.Empty(t, res.Groups[0].Entries)
	assert.Empty(t, res.Groups[1].Entries)
	require.Len(t, res.Groups[2].Entries, 1)
	assert.Empty(t, res.Groups[3].Entries)

	e := res.Groups[2].Entries[0]
	assert.Equal(t, "journal", e.Word)
	assert.Equal(t, []string{"jou", "rn", "al"}, e.Grouping.Texts())
	assert.Empty(t, e.Tags)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 0, res.Tagged)
}

func TestSolve_NoMatches(t *testing.T) {
	lex := newLexicon([]string{"journal", "farce"})
	res := solve([]string{"ca", "ci"}, lex, solveOptions{MinLength: 2, MaxGroup: 4})

	for _, g := range res.Groups {
		assert.Empty(t, g.Entries, "group %d", g.Size)
		assert.Zero(t, g.Tagged)
	}
	assert.Zero(t, res.Total)
	assert.Zero(t, res.Tagged)
}

func TestSolve_EmptyInput(t *testing.T) {
	lex := newLexicon([]string{"journal"})
	res := solve(nil, lex, solveOptions{MinLength: 2, MaxGroup: 4})
	assert.Zero(t, res.Total)

	res = solve([]string{"jou"}, nil, solveOptions{MinLength: 2, MaxGroup: 4})
	assert.Zero(t, res.Total)
}

func TestSolve_DuplicateTilesKeepFirstWitness(t *testing.T) {
	lex := newLexicon([]string{"lala", "la"})
	res := solve([]string{"la", "la"}, lex, solveOptions{MinLength: 2, MaxGroup: 4})

	require.Len(t, res.Groups[0].Entries, 1, "both single tiles spell la")
	assert.Equal(t, 0, res.Groups[0].Entries[0].Grouping[0].Pos)

	require.Len(t, res.Groups[1].Entries, 1)
	witness := res.Groups[1].Entries[0].Grouping
	assert.Equal(t, 0, witness[0].Pos)
	assert.Equal(t, 1, witness[1].Pos)
	assert.Equal(t, 2, res.Total)
}

func TestSolve_WitnessIsFirstGenerated(t *testing.T) {
	// "late" comes from la+te (positions 0,2) and from l+ate (positions 1,3).
	lex := newLexicon([]string{"late"})
	res := solve([]string{"la", "l", "te", "ate"}, lex, solveOptions{MinLength: 2, MaxGroup: 4})

	require.Len(t, res.Groups[1].Entries, 1)
	assert.Equal(t, []string{"la", "te"}, res.Groups[1].Entries[0].Grouping.Texts())
}

func TestSolve_SortUntaggedFirst(t *testing.T) {
	lex := newLexicon([]string{"rec", "cap", "tac", "hm", "ing"})
	res := solve([]string{"rec", "cap", "tac", "hm", "ing"}, lex, solveOptions{MinLength: 2, MaxGroup: 1})

	require.Len(t, res.Groups, 1)
	assert.Equal(t, []string{"cap", "ing", "tac", "hm", "rec"}, groupWords(res.Groups[0]))
	assert.Equal(t, 2, res.Groups[0].Tagged)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 2, res.Tagged)
}

func TestSolve_MinLength(t *testing.T) {
	lex := newLexicon([]string{"al", "rn", "journal", "jou"})
	res := solve([]string{"jou", "rn", "al"}, lex, solveOptions{MinLength: 3, MaxGroup: 4})

	assert.Equal(t, []string{"jou"}, groupWords(res.Groups[0]))
	assert.Equal(t, []string{"journal"}, groupWords(res.Groups[2]))
	assert.Equal(t, 2, res.Total)
}

func TestSolve_ProfanityNeverReported(t *testing.T) {
	lex := newLexicon([]string{"ass", "asses", "hell", "hello"})
	res := solve([]string{"as", "s", "es", "he", "ll", "o"}, lex, solveOptions{MinLength: 2, MaxGroup: 4})

	var words []string
	for _, g := range res.Groups {
		words = append(words, groupWords(g)...)
	}
	assert.NotContains(t, words, "ass")
	assert.NotContains(t, words, "hell")
	assert.Contains(t, words, "asses")
	assert.Contains(t, words, "hello")
}

func TestSolve_Idempotent(t *testing.T) {
	lex := newLexicon([]string{"farcically", "far", "recapitulate", "journal", "thought", "after", "les", "lala", "rec"})
	opts := solveOptions{MinLength: 2, MaxGroup: 4}

	var a, b bytes.Buffer
	renderResult(&a, solve(demoTiles, lex, opts), opts.MinLength)
	renderResult(&b, solve(demoTiles, lex, opts), opts.MinLength)
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "far + ci + ca + lly = farcically")
	assert.Contains(t, a.String(), "jou + rn + al = journal")
}

func TestSolve_MaxGroupBounds(t *testing.T) {
	lex := newLexicon([]string{"journal"})
	res := solve([]string{"jou", "rn", "al"}, lex, solveOptions{MinLength: 2, MaxGroup: 2})
	require.Len(t, res.Groups, 2)
	assert.Zero(t, res.Total)

	res = solve([]string{"jou", "rn", "al"}, lex, solveOptions{MinLength: 2, MaxGroup: 0})
	assert.Empty(t, res.Groups)
}

func TestSolve_HugeMaxGroupIsBoundedByTiles(t *testing.T) {
	lex := newLexicon([]string{"jou", "journal"})

	res := solve([]string{"jou"}, lex, solveOptions{MinLength: 2, MaxGroup: 1 << 62})
	require.Len(t, res.Groups, defaultMaxGroup)
	assert.Equal(t, []string{"jou"}, groupWords(res.Groups[0]))
	assert.Equal(t, 1, res.Total)

	tiles := []string{"jou", "rn", "al", "a", "b", "c"}
	res = solve(tiles, lex, solveOptions{MinLength: 2, MaxGroup: 100_000_000})
	require.Len(t, res.Groups, len(tiles))
	assert.Equal(t, []string{"journal"}, groupWords(res.Groups[2]))
	assert.Equal(t, 2, res.Total)
}

func TestSolve_MinLengthCountsLetters(t *testing.T) {
	lex := newLexicon([]string{"ñu", "ñandu"})
	res := solve([]string{"ñ", "u", "ñan", "du"}, lex, solveOptions{MinLength: 3, MaxGroup: 4})

	assert.Equal(t, []string{"ñandu"}, groupWords(res.Groups[1]))
	assert.Equal(t, 1, res.Total)
}
