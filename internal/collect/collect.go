// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect reads per-engine translation files and aligns their boxes
// into a translation table keyed by image and box position.
package collect

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/pdiddy/translation-compare/pkg/types"
)

// Options controls how files are collected into a table.
type Options struct {
	// Pattern is the glob matched inside the directory.
	Pattern string

	// ReferencePrefix marks reference engines by name prefix.
	ReferencePrefix string

	// TempMarker excludes images whose name contains it.
	TempMarker string

	// OnError selects continue-on-error or fail-fast.
	OnError types.ErrorPolicy
}

// OptionsFrom builds collector options from the run configuration.
func OptionsFrom(cfg types.CollectConfig) Options {
	return Options{
		Pattern:         cfg.Pattern,
		ReferencePrefix: cfg.ReferencePrefix,
		TempMarker:      cfg.TempMarker,
		OnError:         cfg.OnError,
	}
}

// Summary holds counts from a collection run.
type Summary struct {
	Parsed   int
	Failed   int
	Warnings []string
}

// Total returns the number of files processed.
func (s Summary) Total() int {
	return s.Parsed + s.Failed
}

// Builder merges engine files into a translation table.
type Builder struct {
	table           *types.Table
	referencePrefix string

	// firstCount remembers, per image, the first engine that listed it and
	// how many boxes it had.
	firstCount map[string]engineCount
}

type engineCount struct {
	engine string
	count  int
}

// NewBuilder returns a builder that flags engines starting with
// referencePrefix as references.
func NewBuilder(referencePrefix string) *Builder {
	return &Builder{
		table:           types.NewTable(),
		referencePrefix: referencePrefix,
		firstCount:      make(map[string]engineCount),
	}
}

// Add merges f into the table. The first file to supply a box position of
// an image sets its original text. It returns one warning per image whose
// box count differs from the first engine that listed it; the boxes are
// still aligned by position.
func (b *Builder) Add(f EngineFile) ([]string, error) {
	if lo.ContainsBy(b.table.Engines, func(e *types.Engine) bool { return e.Name == f.Name }) {
		return nil, fmt.Errorf("duplicate engine %q from %s", f.Name, f.Path)
	}

	engine := &types.Engine{
		Name:         f.Name,
		Reference:    b.referencePrefix != "" && strings.HasPrefix(f.Name, b.referencePrefix),
		Translations: make(map[types.BoxKey]string),
		BoxCounts:    make(map[string]int, len(f.Images)),
	}

	var warnings []string
	for _, fi := range f.Images {
		img := b.table.Image(fi.Name)
		if img == nil {
			img = &types.Image{Name: fi.Name}
			b.table.Images.Set(fi.Name, img)
		}

		for i, box := range fi.Boxes {
			engine.Translations[types.BoxKey{Image: fi.Name, Index: i}] = box.Target
			if len(img.Boxes) <= i {
				img.Boxes = append(img.Boxes, types.Box{Index: i, Original: box.Original})
			}
		}
		engine.BoxCounts[fi.Name] = len(fi.Boxes)

		first, seen := b.firstCount[fi.Name]
		switch {
		case !seen:
			b.firstCount[fi.Name] = engineCount{engine: f.Name, count: len(fi.Boxes)}
		case first.count != len(fi.Boxes):
			warnings = append(warnings, fmt.Sprintf(
				"image %s: engine %s has %d boxes, engine %s has %d; boxes are aligned by position",
				fi.Name, f.Name, len(fi.Boxes), first.engine, first.count))
		}
	}

	b.table.Engines = append(b.table.Engines, engine)
	return warnings, nil
}

// Table returns the table built so far. Callers must not modify it.
func (b *Builder) Table() *types.Table {
	return b.table
}

// CollectDir parses every file in dir matching opts.Pattern, in name order,
// and builds the translation table. Per-file status lines go to w. With
// OnErrorFailFast the first unreadable or malformed file aborts the run;
// otherwise the file is reported and skipped.
func CollectDir(ctx context.Context, dir string, opts Options, w io.Writer) (*types.Table, Summary, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = types.DefaultPattern
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, Summary{}, fmt.Errorf("matching %s in %s: %w", pattern, dir, err)
	}

	b := NewBuilder(opts.ReferencePrefix)
	var summary Summary

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return nil, summary, ctx.Err()
		default:
		}

		f, err := ParseFile(path, opts.TempMarker)
		if err == nil {
			var warnings []string
			warnings, err = b.Add(f)
			for _, msg := range warnings {
				fmt.Fprintf(w, "warning: %s\n", msg)
			}
			summary.Warnings = append(summary.Warnings, warnings...)
		}
		if err != nil {
			if opts.OnError == types.OnErrorFailFast {
				return nil, summary, err
			}
			fmt.Fprintf(w, "failed  %s: %v\n", filepath.Base(path), err)
			summary.Failed++
			continue
		}

		summary.Parsed++
	}

	return b.Table(), summary, nil
}
