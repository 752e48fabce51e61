package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

const groupingSep = " + "

// renderResult writes the grouped words as aligned text followed by a summary.
func renderResult(w io.Writer, res Result, minLength int) {
	for _, g := range res.Groups {
		if len(g.Entries) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "\n--- %d Tile Combinations ---\n", g.Size)

		width := 0
		for _, e := range g.Entries {
			width = max(width, utf8.RuneCountInString(e.Grouping.Join(groupingSep)))
		}
		for _, e := range g.Entries {
			left := e.Grouping.Join(groupingSep)
			pad := strings.Repeat(" ", width-utf8.RuneCountInString(left))
			_, _ = fmt.Fprintf(w, "%s%s = %s", left, pad, e.Word)
			if e.Tagged() {
				_, _ = fmt.Fprintf(w, " [%s]", joinTags(e.Tags))
			}
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "Count: %d (%d may need review)\n", len(g.Entries), g.Tagged)
	}

	rule := strings.Repeat("=", 30)
	_, _ = fmt.Fprintf(w, "\n%s\nSUMMARY\n%s\n", rule, rule)
	_, _ = fmt.Fprintf(w, "Total words found: %d\n", res.Total)
	if res.Tagged > 0 {
		_, _ = fmt.Fprintf(w, "Words needing review: %d (marked with [%s])\n", res.Tagged, joinTags(usedTags(res)))
	}
	if minLength > defaultMinLength {
		_, _ = fmt.Fprintf(w, "Minimum length: %d\n", minLength)
	}
	_, _ = fmt.Fprintln(w, rule)
}

func joinTags(tags []Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// usedTags lists every distinct tag present in res, in tag order.
func usedTags(res Result) []Tag {
	var tags []Tag
	for _, g := range res.Groups {
		for _, e := range g.Entries {
			for _, t := range e.Tags {
				if !slices.Contains(tags, t) {
					tags = append(tags, t)
				}
			}
		}
	}
	slices.Sort(tags)
	return tags
}

// wordReport is the JSON form of a ResultEntry.
type wordReport struct {
	Word  string   `json:"word" jsonschema:"the dictionary word"`
	Tiles []string `json:"tiles" jsonschema:"the witness tiles in order"`
	Tags  []string `json:"tags" jsonschema:"review flags such as abbreviation"`
}

// groupReport is the JSON form of a Group.
type groupReport struct {
	Tiles  int          `json:"tiles" jsonschema:"number of tiles joined"`
	Count  int          `json:"count"`
	Tagged int          `json:"tagged"`
	Words  []wordReport `json:"words"`
}

// solveReport is the machine-readable result shared by --json and the MCP tool.
type solveReport struct {
	Groups    []groupReport `json:"groups"`
	Total     int           `json:"total" jsonschema:"unique words across all groups"`
	Tagged    int           `json:"tagged" jsonschema:"words carrying at least one tag"`
	MinLength int           `json:"min_length"`
}

func newSolveReport(res Result, minLength int) solveReport {
	rep := solveReport{
		Groups:    make([]groupReport, 0, len(res.Groups)),
		Total:     res.Total,
		Tagged:    res.Tagged,
		MinLength: minLength,
	}
	for _, g := range res.Groups {
		gr := groupReport{Tiles: g.Size, Count: len(g.Entries), Tagged: g.Tagged, Words: make([]wordReport, 0, len(g.Entries))}
		for _, e := range g.Entries {
			tags := make([]string, len(e.Tags))
			for i, t := range e.Tags {
				tags[i] = t.String()
			}
			gr.Words = append(gr.Words, wordReport{Word: e.Word, Tiles: e.Grouping.Texts(), Tags: tags})
		}
		rep.Groups = append(rep.Groups, gr)
	}
	return rep
}

// renderJSON writes res as an indented JSON report.
func renderJSON(w io.Writer, res Result, minLength int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newSolveReport(res, minLength)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
