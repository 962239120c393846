// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bleu computes smoothed sentence-level BLEU between a reference
// translation and a candidate translation.
package bleu

import (
	"errors"
	"math"
	"strings"

	"golang.org/x/text/language"
)

const (
	// MaxOrder is the largest n-gram order scored.
	MaxOrder = 4

	// epsilon is added to the numerator of an order with no matches
	// (additive smoothing, NLTK method1).
	epsilon = 0.1
)

var (
	// ErrEmptyInput is reported when the reference or candidate is empty.
	ErrEmptyInput = errors.New("empty reference or candidate")

	// ErrDegenerate is reported when the computation yields a non-finite score.
	ErrDegenerate = errors.New("degenerate BLEU computation")
)

// Result is the outcome of scoring one reference/candidate pair.
type Result struct {
	Score float64
	Err   error
}

// OrZero returns the score, or 0 when scoring failed for any reason.
func (r Result) OrZero() float64 {
	if r.Err != nil {
		return 0
	}
	return r.Score
}

// Scorer scores candidate translations against a single reference.
type Scorer struct {
	tok *Tokenizer
}

// NewScorer returns a scorer whose word-level tokenizer lowercases with
// the rules of lang.
func NewScorer(lang language.Tag) *Scorer {
	return &Scorer{tok: NewTokenizer(lang)}
}

// Score tokenizes both texts independently and returns their sentence BLEU.
func (s *Scorer) Score(reference, candidate string) Result {
	if reference == "" || candidate == "" {
		return Result{Err: ErrEmptyInput}
	}
	return Sentence(s.tok.Tokenize(reference), s.tok.Tokenize(candidate))
}

// Sentence computes BLEU for a candidate token sequence against one
// reference token sequence, with uniform weights over orders 1..MaxOrder.
// Orders the candidate is too short to contain are left out and the
// weights spread over the rest, so identical sequences always score 1.
func Sentence(reference, candidate []string) Result {
	if len(reference) == 0 || len(candidate) == 0 {
		return Result{Err: ErrEmptyInput}
	}

	orders := min(MaxOrder, len(candidate))
	var logSum float64
	for n := 1; n <= orders; n++ {
		matches, total := modifiedPrecision(reference, candidate, n)
		if n == 1 && matches == 0 {
			return Result{Score: 0}
		}
		p := float64(matches) / float64(total)
		if matches == 0 {
			p = epsilon / float64(total)
		}
		logSum += math.Log(p) / float64(orders)
	}

	score := brevityPenalty(len(reference), len(candidate)) * math.Exp(logSum)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return Result{Err: ErrDegenerate}
	}
	return Result{Score: score}
}

// modifiedPrecision returns the clipped n-gram match count and the number
// of candidate n-grams of order n.
func modifiedPrecision(reference, candidate []string, n int) (matches, total int) {
	refCounts := ngramCounts(reference, n)
	candCounts := ngramCounts(candidate, n)
	for gram, count := range candCounts {
		matches += min(count, refCounts[gram])
		total += count
	}
	return matches, total
}

func ngramCounts(tokens []string, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], "\x00")]++
	}
	return counts
}

func brevityPenalty(refLen, candLen int) float64 {
	if candLen > refLen {
		return 1
	}
	return math.Exp(1 - float64(refLen)/float64(candLen))
}
