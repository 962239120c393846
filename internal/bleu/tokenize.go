// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bleu

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// contractionSuffixes are split off the end of a word the way the Penn
// Treebank tokenizer does. Longest suffixes first.
var contractionSuffixes = []string{"n't", "'ll", "'re", "'ve", "'s", "'m", "'d"}

// Tokenizer splits text into units for n-gram comparison.
type Tokenizer struct {
	lang language.Tag
}

// NewTokenizer returns a tokenizer that lowercases word-level text using
// the casing rules of lang.
func NewTokenizer(lang language.Tag) *Tokenizer {
	return &Tokenizer{lang: lang}
}

// Tokenize returns the tokens of text. Text containing any rune outside
// ASCII is split into single characters, whitespace and punctuation
// included. ASCII text is lowercased and split into words, with
// contractions and punctuation as separate tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	if hasNonASCII(text) {
		return characters(text)
	}
	return t.words(text)
}

func hasNonASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return true
		}
	}
	return false
}

func characters(s string) []string {
	tokens := make([]string, 0, len(s))
	for _, r := range s {
		tokens = append(tokens, string(r))
	}
	return tokens
}

func (t *Tokenizer) words(s string) []string {
	// cases.Caser carries state, so one per call keeps Tokenize safe to share.
	s = cases.Lower(t.lang).String(norm.NFC.String(s))

	var tokens []string
	state := -1
	var word string
	afterSpace := true
	for len(s) > 0 {
		word, s, state = uniseg.FirstWordInString(s, state)
		if strings.TrimSpace(word) == "" {
			afterSpace = true
			continue
		}
		if word == "." && !afterSpace && len(tokens) > 0 && isDots(tokens[len(tokens)-1]) {
			tokens[len(tokens)-1] += word
			continue
		}
		afterSpace = false
		tokens = append(tokens, splitContraction(word)...)
	}
	return tokens
}

func isDots(s string) bool {
	return s != "" && strings.Trim(s, ".") == ""
}

func splitContraction(word string) []string {
	w := strings.ReplaceAll(word, "’", "'")
	for _, suffix := range contractionSuffixes {
		if len(w) > len(suffix) && strings.HasSuffix(w, suffix) {
			return []string{w[:len(w)-len(suffix)], suffix}
		}
	}
	return []string{word}
}
