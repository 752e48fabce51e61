package main

import (
	"cmp"
	"slices"
	"unicode/utf8"
)

// wordChecker reports whether a word belongs to the dictionary.
type wordChecker interface {
	IsValid(word string) bool
}

// solveOptions bounds a single solve run.
type solveOptions struct {
	MinLength int
	MaxGroup  int
}

// ResultEntry is one unique word, the first grouping that produced it and
// its tags.
type ResultEntry struct {
	Word     string
	Grouping Grouping
	Tags     []Tag
}

// Tagged reports whether the entry carries at least one tag.
func (e ResultEntry) Tagged() bool { return len(e.Tags) > 0 }

// Group holds the unique words built from exactly Size tiles.
type Group struct {
	Size    int
	Entries []ResultEntry
	Tagged  int
}

// Result is the outcome of a solve run. Groups[i] holds the words built
// from i+1 tiles.
type Result struct {
	Groups []Group
	Total  int
	Tagged int
}

// solve finds every dictionary word formable from 1..opts.MaxGroup distinct
// tiles. For each group size the first grouping generated for a word is kept
// as its witness; the output is identical for identical inputs.
func solve(tiles []string, lex wordChecker, opts solveOptions) Result {
	return organize(tiles, lex, opts, defaultClassifier())
}

func organize(tiles []string, lex wordChecker, opts solveOptions, cls *classifier) Result {
	// Groups above the tile count are always empty; the default size keeps
	// small puzzles reporting the usual four groups.
	maxGroup := min(max(opts.MaxGroup, 0), max(len(tiles), defaultMaxGroup))
	res := Result{Groups: make([]Group, maxGroup)}
	for i := range res.Groups {
		res.Groups[i].Size = i + 1
	}
	if lex == nil {
		return res
	}

	seen := make([]map[string]struct{}, maxGroup)
	eachCandidate(makeTiles(tiles), maxGroup, func(c Candidate) bool {
		if utf8.RuneCountInString(c.Word) < opts.MinLength || !lex.IsValid(c.Word) {
			return true
		}
		idx := len(c.Grouping) - 1
		if seen[idx] == nil {
			seen[idx] = make(map[string]struct{})
		}
		if _, dup := seen[idx][c.Word]; dup {
			return true
		}
		seen[idx][c.Word] = struct{}{}
		res.Groups[idx].Entries = append(res.Groups[idx].Entries, ResultEntry{
			Word:     c.Word,
			Grouping: c.Grouping.clone(),
			Tags:     cls.classify(c.Word),
		})
		return true
	})

	for i := range res.Groups {
		g := &res.Groups[i]
		slices.SortStableFunc(g.Entries, compareEntries)
		for _, e := range g.Entries {
			if e.Tagged() {
				g.Tagged++
			}
		}
		res.Total += len(g.Entries)
		res.Tagged += g.Tagged
	}
	return res
}

// compareEntries orders untagged words before tagged ones, then by word.
func compareEntries(a, b ResultEntry) int {
	if a.Tagged() != b.Tagged() {
		if a.Tagged() {
			return 1
		}
		return -1
	}
	return cmp.Compare(a.Word, b.Word)
}
