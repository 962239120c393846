// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report joins a translation table into per-image comparison tables
// and an overall BLEU summary, and renders them as Markdown.
package report

import (
	"cmp"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/translation-compare/internal/bleu"
	"github.com/pdiddy/translation-compare/pkg/types"
)

// Scorer scores a candidate translation against a reference translation.
// *bleu.Scorer implements it.
type Scorer interface {
	Score(reference, candidate string) bleu.Result
}

// Options selects the report variant.
type Options struct {
	// Scored adds BLEU columns, ranking, and the summary section when the
	// table has reference engines.
	Scored bool

	// Scorer is required when Scored is true.
	Scorer Scorer
}

// Report is the assembled comparison of one directory.
type Report struct {
	// References names the reference engines used as BLEU columns, in file
	// order. Empty for the unscored variant or when no reference exists.
	References []string `json:"references,omitempty" yaml:"references,omitempty"`

	// Sections holds one table per image, in first-seen order.
	Sections []Section `json:"sections" yaml:"sections"`

	// Summary ranks engines over all images. Nil when References is empty.
	Summary []SummaryRow `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Scored reports whether the report carries BLEU columns.
func (r Report) Scored() bool {
	return len(r.References) > 0
}

// Section is the comparison table of one image.
type Section struct {
	Image string      `json:"image" yaml:"image"`
	Boxes []types.Box `json:"boxes" yaml:"boxes"`
	Rows  []Row       `json:"rows" yaml:"rows"`
}

// Row is one engine's translations of an image's boxes.
type Row struct {
	Engine string `json:"engine" yaml:"engine"`

	// Cells holds the engine's translation per box; "" when missing.
	Cells []string `json:"cells" yaml:"cells"`

	// Scores holds the mean BLEU per reference over all of the image's
	// boxes. Boxes missing on either side count as 0.
	Scores []float64 `json:"scores,omitempty" yaml:"scores,omitempty"`

	// Average is the mean of Scores; the row's sort key.
	Average float64 `json:"average" yaml:"average"`
}

// SummaryRow is one engine's overall BLEU.
type SummaryRow struct {
	Engine string `json:"engine" yaml:"engine"`

	// Scores holds the mean BLEU per reference over the boxes the engine
	// and the reference both supplied; 0 when they share none.
	Scores []float64 `json:"scores" yaml:"scores"`

	// Average is the mean of Scores.
	Average float64 `json:"average" yaml:"average"`
}

// Build assembles the report for table. Engines appear in file order,
// reference engines included. In the scored variant rows are ranked by
// average BLEU, descending, keeping file order on ties.
func Build(table *types.Table, opts Options) Report {
	var refs []*types.Engine
	if opts.Scored && opts.Scorer != nil {
		refs = table.References()
	}

	var r Report
	for _, ref := range refs {
		r.References = append(r.References, ref.Name)
	}

	for _, img := range table.ImageList() {
		r.Sections = append(r.Sections, buildSection(img, table.Engines, refs, opts.Scorer))
	}

	if len(refs) > 0 {
		r.Summary = buildSummary(table.Engines, refs, opts.Scorer)
	}
	return r
}

func buildSection(img *types.Image, engines, refs []*types.Engine, scorer Scorer) Section {
	sec := Section{
		Image: img.Name,
		Boxes: slices.Clone(img.Boxes),
		Rows:  make([]Row, 0, len(engines)),
	}

	for _, e := range engines {
		row := Row{Engine: e.Name, Cells: make([]string, len(img.Boxes))}
		for i, box := range img.Boxes {
			row.Cells[i] = e.Text(box.Key(img.Name))
		}

		for _, ref := range refs {
			scores := make([]float64, len(img.Boxes))
			for i, box := range img.Boxes {
				key := box.Key(img.Name)
				scores[i] = scorer.Score(ref.Text(key), e.Text(key)).OrZero()
			}
			row.Scores = append(row.Scores, mean(scores))
		}
		row.Average = mean(row.Scores)

		sec.Rows = append(sec.Rows, row)
	}

	sort.SliceStable(sec.Rows, func(i, j int) bool {
		return sec.Rows[i].Average > sec.Rows[j].Average
	})
	return sec
}

func buildSummary(engines, refs []*types.Engine, scorer Scorer) []SummaryRow {
	rows := make([]SummaryRow, 0, len(engines))
	for _, e := range engines {
		row := SummaryRow{Engine: e.Name, Scores: make([]float64, 0, len(refs))}
		for _, ref := range refs {
			keys := commonKeys(e, ref)
			scores := make([]float64, len(keys))
			for i, key := range keys {
				scores[i] = scorer.Score(ref.Text(key), e.Text(key)).OrZero()
			}
			row.Scores = append(row.Scores, mean(scores))
		}
		row.Average = mean(row.Scores)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Average > rows[j].Average
	})
	return rows
}

// commonKeys returns the boxes both engines supplied, sorted so sums are
// accumulated in a fixed order.
func commonKeys(a, b *types.Engine) []types.BoxKey {
	var keys []types.BoxKey
	for key := range a.Translations {
		if _, ok := b.Lookup(key); ok {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, func(x, y types.BoxKey) int {
		if c := cmp.Compare(x.Image, y.Image); c != 0 {
			return c
		}
		return cmp.Compare(x.Index, y.Index)
	})
	return keys
}

// mean returns the arithmetic mean of xs, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}
