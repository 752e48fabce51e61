package main

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Tag marks a dictionary word that deserves a second look before it is
// trusted as a puzzle answer.
type Tag int

// Known tags. Add new variants here and give them a name in String.
const (
	TagAbbreviation Tag = iota + 1
)

func (t Tag) String() string {
	switch t {
	case TagAbbreviation:
		return "abbreviation"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// tagRule decides whether a single tag applies to a word.
type tagRule interface {
	Tag() Tag
	Match(word string) bool
}

const consonants = "bcdfghjklmnpqrstvwxyz"

// abbreviationRule flags short all-consonant words such as "rec" or "hm",
// which are more often initialisms than intended answers.
type abbreviationRule struct {
	maxLen int
}

func (abbreviationRule) Tag() Tag { return TagAbbreviation }

func (r abbreviationRule) Match(word string) bool {
	if word == "" || utf8.RuneCountInString(word) > r.maxLen {
		return false
	}
	for _, c := range word {
		if !strings.ContainsRune(consonants, c) {
			return false
		}
	}
	return true
}

// classifier runs a fixed list of rules over a word.
type classifier struct {
	rules []tagRule
}

func newClassifier(rules ...tagRule) *classifier {
	return &classifier{rules: rules}
}

func defaultClassifier() *classifier {
	return newClassifier(abbreviationRule{maxLen: 3})
}

// classify returns the distinct tags matching word in ascending order, or
// nil when no rule applies.
func (c *classifier) classify(word string) []Tag {
	var tags []Tag
	for _, r := range c.rules {
		if r.Match(word) && !slices.Contains(tags, r.Tag()) {
			tags = append(tags, r.Tag())
		}
	}
	slices.Sort(tags)
	return tags
}
