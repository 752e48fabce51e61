package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// errNoTiles means tile acquisition produced nothing to solve.
var errNoTiles = errors.New("no tiles found")

// demoTiles is used when neither an image nor a tile list is given.
var demoTiles = []string{
	"far", "ci", "ca", "lly", "rec", "ep", "tac", "les", "cap", "itu",
	"la", "te", "jou", "rn", "al", "ing", "aft", "er", "tho", "ught",
}

// splitTileList splits a user-supplied list on whitespace and commas.
func splitTileList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// normalizeTile folds compatibility forms (full-width letters and the like),
// trims and lowercases a single tile.
func normalizeTile(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// normalizeTiles normalises every tile, drops empty ones and rejects tiles
// that are not purely alphabetic.
func normalizeTiles(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		t := normalizeTile(r)
		if t == "" {
			continue
		}
		if !isAlpha(t) {
			return nil, fmt.Errorf("invalid tile %q: tiles must contain letters only", r)
		}
		out = append(out, t)
	}
	return out, nil
}

// cleanToken turns a recognised token into a tile. Tokens with uppercase
// letters are treated as UI text rather than tiles; whatever remains must
// have at least two letters once non-letters are stripped.
func cleanToken(text string) (string, bool) {
	text = norm.NFKC.String(strings.TrimSpace(text))
	if text == "" {
		return "", false
	}
	for _, r := range text {
		if unicode.IsUpper(r) {
			return "", false
		}
	}
	cleaned := strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, text))
	if len([]rune(cleaned)) < 2 {
		return "", false
	}
	return cleaned, true
}

// printTilesGrid writes tiles four to a row.
func printTilesGrid(w io.Writer, tiles []string) {
	const cols = 4
	for i := 0; i < len(tiles); i += cols {
		row := tiles[i:min(i+cols, len(tiles))]
		cells := make([]string, len(row))
		for j, t := range row {
			cells[j] = fmt.Sprintf("%-8s", t)
		}
		_, _ = fmt.Fprintf(w, "  %s\n", strings.Join(cells, "  "))
	}
}
