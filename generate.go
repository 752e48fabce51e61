package main

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// defaultMaxGroup is the largest number of tiles joined into one word.
const defaultMaxGroup = 4

// Tile is one puzzle fragment together with its position in the input.
// Two tiles may share the same text but never the same position.
type Tile struct {
	Pos  int
	Text string
}

// Grouping is an ordered selection of distinct tiles.
type Grouping []Tile

// Texts returns the tile strings in grouping order.
func (g Grouping) Texts() []string {
	out := make([]string, len(g))
	for i, t := range g {
		out[i] = t.Text
	}
	return out
}

// Join renders the grouping with sep between tile strings.
func (g Grouping) Join(sep string) string {
	return strings.Join(g.Texts(), sep)
}

func (g Grouping) clone() Grouping {
	out := make(Grouping, len(g))
	copy(out, g)
	return out
}

// Candidate is a grouping paired with the word its tiles spell.
type Candidate struct {
	Grouping Grouping
	Word     string
}

// makeTiles assigns input positions to tile strings.
func makeTiles(texts []string) []Tile {
	out := make([]Tile, len(texts))
	for i, s := range texts {
		out[i] = Tile{Pos: i, Text: s}
	}
	return out
}

// eachCandidate visits every ordered selection of 1..maxGroup distinct tiles.
// Selections come out by increasing size, and within one size in
// lexicographic order of their position tuples. The Grouping handed to fn is
// reused between calls; callers that keep it must clone it. Returning false
// from fn stops the walk.
func eachCandidate(tiles []Tile, maxGroup int, fn func(Candidate) bool) {
	if len(tiles) == 0 || maxGroup < 1 {
		return
	}
	if maxGroup > len(tiles) {
		maxGroup = len(tiles)
	}

	used := make([]bool, len(tiles))
	buf := make(Grouping, 0, maxGroup)

	var walk func(size int, prefix string) bool
	walk = func(size int, prefix string) bool {
		for i, t := range tiles {
			if used[i] {
				continue
			}
			word := prefix + t.Text
			buf = append(buf, t)
			if len(buf) == size {
				if !fn(Candidate{Grouping: buf, Word: word}) {
					return false
				}
			} else {
				used[i] = true
				ok := walk(size, word)
				used[i] = false
				if !ok {
					return false
				}
			}
			buf = buf[:len(buf)-1]
		}
		return true
	}

	for size := 1; size <= maxGroup; size++ {
		buf = buf[:0]
		if !walk(size, "") {
			return
		}
	}
}

// generateCandidates materialises every candidate eachCandidate would visit.
func generateCandidates(texts []string, maxGroup int) []Candidate {
	var out []Candidate
	eachCandidate(makeTiles(texts), maxGroup, func(c Candidate) bool {
		out = append(out, Candidate{Grouping: c.Grouping.clone(), Word: c.Word})
		return true
	})
	return out
}

// candidateCount returns sum over r in [1, k] of n!/(n-r)!, saturating at
// math.MaxInt.
func candidateCount(n, k int) int {
	if n < 1 || k < 1 {
		return 0
	}
	if k > n {
		k = n
	}
	total, perms := 0, 1
	for r := 1; r <= k; r++ {
		f := n - r + 1
		if perms > math.MaxInt/f {
			return math.MaxInt
		}
		perms *= f
		if total > math.MaxInt-perms {
			return math.MaxInt
		}
		total += perms
	}
	return total
}

// errTooManyCandidates guards against tile counts that explode combinatorially.
var errTooManyCandidates = errors.New("too many candidate groupings")

func checkCandidateBudget(n, maxGroup, limit int) error {
	if limit <= 0 {
		return nil
	}
	if got := candidateCount(n, maxGroup); got > limit {
		return fmt.Errorf("%w: %d tiles with up to %d per word give %d groupings (limit %d)", errTooManyCandidates, n, maxGroup, got, limit)
	}
	return nil
}
