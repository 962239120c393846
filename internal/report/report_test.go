// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/pdiddy/translation-compare/internal/bleu"
	"github.com/pdiddy/translation-compare/pkg/types"
)

// --- test helpers ---

// fakeScorer returns 1 for identical texts and 0.5 otherwise; empty input
// is an error, like the real scorer.
type fakeScorer struct{}

func (fakeScorer) Score(reference, candidate string) bleu.Result {
	if reference == "" || candidate == "" {
		return bleu.Result{Err: bleu.ErrEmptyInput}
	}
	if reference == candidate {
		return bleu.Result{Score: 1}
	}
	return bleu.Result{Score: 0.5}
}

// tableBuilder assembles a types.Table directly for report tests.
type tableBuilder struct {
	table *types.Table
}

func newTable() *tableBuilder {
	return &tableBuilder{table: types.NewTable()}
}

func (tb *tableBuilder) image(name string, originals ...string) *tableBuilder {
	img := &types.Image{Name: name}
	for i, o := range originals {
		img.Boxes = append(img.Boxes, types.Box{Index: i, Original: o})
	}
	tb.table.Images.Set(name, img)
	return tb
}

// engine adds an engine; texts maps image name to its box targets.
func (tb *tableBuilder) engine(name string, reference bool, texts map[string][]string) *tableBuilder {
	e := &types.Engine{
		Name:         name,
		Reference:    reference,
		Translations: make(map[types.BoxKey]string),
		BoxCounts:    make(map[string]int),
	}
	for img, targets := range texts {
		for i, t := range targets {
			e.Translations[types.BoxKey{Image: img, Index: i}] = t
		}
		e.BoxCounts[img] = len(targets)
	}
	tb.table.Engines = append(tb.table.Engines, e)
	return tb
}

func rowEngines(rows []Row) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Engine
	}
	return names
}

// --- tests ---

func TestBuildUnscored(t *testing.T) {
	table := newTable().
		image("p1", "一", "二").
		engine("google", false, map[string][]string{"p1": {"one", "two"}}).
		engine("human", true, map[string][]string{"p1": {"one"}}).
		table

	r := Build(table, Options{})
	assert.False(t, r.Scored())
	assert.Nil(t, r.Summary)
	require.Len(t, r.Sections, 1)

	sec := r.Sections[0]
	assert.Equal(t, "p1", sec.Image)
	assert.Equal(t, []string{"google", "human"}, rowEngines(sec.Rows))
	assert.Equal(t, []string{"one", ""}, sec.Rows[1].Cells)
	assert.Empty(t, sec.Rows[0].Scores)
}

func TestBuildScoredRanksRows(t *testing.T) {
	table := newTable().
		image("p1", "一", "二").
		engine("deepl", false, map[string][]string{"p1": {"uno", "dos"}}).
		engine("google", false, map[string][]string{"p1": {"one", "two"}}).
		engine("human", true, map[string][]string{"p1": {"one", "two"}}).
		table

	r := Build(table, Options{Scored: true, Scorer: fakeScorer{}})
	assert.Equal(t, []string{"human"}, r.References)

	sec := r.Sections[0]
	assert.Equal(t, []string{"google", "human", "deepl"}, rowEngines(sec.Rows))
	assert.Equal(t, []float64{1}, sec.Rows[0].Scores)
	assert.Equal(t, []float64{0.5}, sec.Rows[2].Scores)
}

func TestBuildRankingIsStable(t *testing.T) {
	table := newTable().
		image("p1", "一").
		engine("zeta", false, map[string][]string{"p1": {"x"}}).
		engine("alpha", false, map[string][]string{"p1": {"y"}}).
		engine("mid", false, map[string][]string{"p1": {"z"}}).
		engine("human", true, map[string][]string{"p1": {"ref"}}).
		table

	r := Build(table, Options{Scored: true, Scorer: fakeScorer{}})
	assert.Equal(t, []string{"human", "zeta", "alpha", "mid"}, rowEngines(r.Sections[0].Rows))
	assert.Equal(t, []string{"human", "zeta", "alpha", "mid"}, []string{
		r.Summary[0].Engine, r.Summary[1].Engine, r.Summary[2].Engine, r.Summary[3].Engine,
	})
}

func TestBuildPerImageAverageCountsMissingBoxes(t *testing.T) {
	// google lacks box 1; the per-image mean divides by both boxes while the
	// summary only averages the box both engines supplied.
	table := newTable().
		image("p1", "一", "二").
		engine("google", false, map[string][]string{"p1": {"one"}}).
		engine("human", true, map[string][]string{"p1": {"one", "two"}}).
		table

	r := Build(table, Options{Scored: true, Scorer: fakeScorer{}})

	rows := r.Sections[0].Rows
	require.Equal(t, "human", rows[0].Engine)
	assert.InDelta(t, 0.5, rows[1].Scores[0], 1e-12)

	require.Len(t, r.Summary, 2)
	google := r.Summary[0]
	if google.Engine != "google" {
		google = r.Summary[1]
	}
	assert.InDelta(t, 1.0, google.Scores[0], 1e-12)
	assert.InDelta(t, 1.0, google.Average, 1e-12)
}

func TestBuildSummaryMultipleReferences(t *testing.T) {
	table := newTable().
		image("p1", "一").
		image("p2", "二").
		engine("google", false, map[string][]string{"p1": {"one"}, "p2": {"two"}}).
		engine("human_a", true, map[string][]string{"p1": {"one"}, "p2": {"2"}}).
		engine("human_b", true, map[string][]string{"p3": {"three"}}).
		table

	r := Build(table, Options{Scored: true, Scorer: fakeScorer{}})
	assert.Equal(t, []string{"human_a", "human_b"}, r.References)

	var google SummaryRow
	for _, row := range r.Summary {
		if row.Engine == "google" {
			google = row
		}
	}
	// human_a: mean(1, 0.5); human_b shares no boxes with google.
	assert.InDeltaSlice(t, []float64{0.75, 0}, google.Scores, 1e-12)
	assert.InDelta(t, 0.375, google.Average, 1e-12)
}

func TestBuildNoReferences(t *testing.T) {
	table := newTable().
		image("p1", "一").
		engine("google", false, map[string][]string{"p1": {"one"}}).
		table

	r := Build(table, Options{Scored: true, Scorer: fakeScorer{}})
	assert.False(t, r.Scored())
	assert.Nil(t, r.Summary)
	assert.Empty(t, r.Sections[0].Rows[0].Scores)
}

func TestBuildWithBLEUScorer(t *testing.T) {
	table := newTable().
		image("p1", "こんにちは").
		engine("google", false, map[string][]string{"p1": {"hello world"}}).
		engine("human", true, map[string][]string{"p1": {"hello there"}}).
		table

	r := Build(table, Options{Scored: true, Scorer: bleu.NewScorer(language.English)})
	rows := r.Sections[0].Rows
	require.Equal(t, []string{"human", "google"}, rowEngines(rows))
	assert.InDelta(t, 1.0, rows[0].Average, 1e-9)
	assert.Greater(t, rows[1].Average, 0.0)
	assert.Less(t, rows[1].Average, 1.0)
}
