// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compare runs the collect, score, and report pipeline over
// directories of engine translation files.
package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"

	"github.com/pdiddy/translation-compare/internal/bleu"
	"github.com/pdiddy/translation-compare/internal/collect"
	"github.com/pdiddy/translation-compare/internal/report"
	"github.com/pdiddy/translation-compare/pkg/types"
)

// ErrMissingDir is returned when a directory to process does not exist.
var ErrMissingDir = errors.New("directory does not exist")

// DirResult describes one processed directory.
type DirResult struct {
	Dir        string
	ReportPath string
	ExportPath string
	Collect    collect.Summary
	Report     report.Report
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Processed int
	Missing   int
	Failed    int
	Dirs      []DirResult
}

// Total returns the number of directories visited.
func (r BatchResult) Total() int {
	return r.Processed + r.Missing + r.Failed
}

// HasFailures reports whether any directory failed processing.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ProcessDirectory collects every engine file in dir, scores engines
// against the reference engines, and writes the report into dir.
func ProcessDirectory(ctx context.Context, dir string, cfg types.CompareConfig, w io.Writer) (DirResult, error) {
	lang := language.English
	if cfg.Scoring.Language != "" {
		var err error
		lang, err = language.Parse(cfg.Scoring.Language)
		if err != nil {
			return DirResult{}, fmt.Errorf("parsing scoring language %q: %w", cfg.Scoring.Language, err)
		}
	}
	return run(ctx, dir, cfg, report.Options{Scored: true, Scorer: bleu.NewScorer(lang)}, w)
}

// Align writes the unscored report for dir: every engine's translations
// side by side, in file order. Unless configured otherwise, the first
// malformed file aborts the run.
func Align(ctx context.Context, dir string, cfg types.CompareConfig, w io.Writer) (DirResult, error) {
	if cfg.Collect.OnError == "" {
		cfg.Collect.OnError = types.OnErrorFailFast
	}
	return run(ctx, dir, cfg, report.Options{}, w)
}

func run(ctx context.Context, dir string, cfg types.CompareConfig, opts report.Options, w io.Writer) (DirResult, error) {
	if err := cfg.Validate(); err != nil {
		return DirResult{}, err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return DirResult{}, fmt.Errorf("%s: %w", dir, ErrMissingDir)
	}

	table, summary, err := collect.CollectDir(ctx, dir, collect.OptionsFrom(cfg.Collect), w)
	if err != nil {
		return DirResult{}, err
	}

	res := DirResult{
		Dir:     dir,
		Collect: summary,
		Report:  report.Build(table, opts),
	}

	content := report.Render(res.Report, report.LabelsFor(cfg.Report.Locale))
	res.ReportPath, err = report.WriteFile(dir, cfg.Report.OutputFile, content)
	if err != nil {
		return res, err
	}
	fmt.Fprintf(w, "wrote %s (%s, %d engines, %d images)\n",
		res.ReportPath, humanize.Bytes(uint64(len(content))), len(table.Engines), len(res.Report.Sections))

	if cfg.Report.Export != "" {
		res.ExportPath = filepath.Join(dir, cfg.Report.Export)
		if err := report.Export(res.Report, res.ExportPath); err != nil {
			return res, fmt.Errorf("exporting scores: %w", err)
		}
		fmt.Fprintf(w, "wrote %s\n", res.ExportPath)
	}

	return res, nil
}

// ProcessBatch runs ProcessDirectory over dirs in order. Missing
// directories are reported and skipped; a failing directory is reported
// and the batch continues.
func ProcessBatch(ctx context.Context, dirs []string, cfg types.CompareConfig, w io.Writer) BatchResult {
	if cfg.Collect.OnError == "" {
		cfg.Collect.OnError = types.OnErrorContinue
	}

	var result BatchResult
	for _, dir := range dirs {
		if ctx.Err() != nil {
			break
		}

		fmt.Fprintf(w, "processing %s\n", dir)
		res, err := ProcessDirectory(ctx, dir, cfg, w)
		switch {
		case errors.Is(err, ErrMissingDir):
			fmt.Fprintf(w, "missing %s\n", dir)
			result.Missing++
			continue
		case err != nil:
			fmt.Fprintf(w, "failed  %s: %v\n", dir, err)
			result.Failed++
			continue
		}

		result.Processed++
		result.Dirs = append(result.Dirs, res)
	}

	fmt.Fprintf(w, "\nprocessed: %d, missing: %d, failed: %d\n",
		result.Processed, result.Missing, result.Failed)
	return result
}

// ResolveDirs returns dirs with relative entries joined to root.
func ResolveDirs(root string, dirs []string) []string {
	resolved := make([]string, len(dirs))
	for i, d := range dirs {
		if root != "" && !filepath.IsAbs(d) {
			d = filepath.Join(root, d)
		}
		resolved[i] = d
	}
	return resolved
}
