// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ErrorPolicy decides what the collector does when a translation file
// cannot be read or parsed.
type ErrorPolicy string

const (
	// OnErrorContinue logs the failing file and skips it.
	OnErrorContinue ErrorPolicy = "continue"
	// OnErrorFailFast aborts the run on the first failing file.
	OnErrorFailFast ErrorPolicy = "fail-fast"
)

// Valid reports whether p is a known policy.
func (p ErrorPolicy) Valid() bool {
	return p == OnErrorContinue || p == OnErrorFailFast
}

// CollectConfig holds settings for the translation collector.
type CollectConfig struct {
	// Pattern is the glob matched inside a directory (default "*.itp").
	Pattern string `json:"pattern" yaml:"pattern"`

	// ReferencePrefix marks engines that hold human reference translations
	// (default "human").
	ReferencePrefix string `json:"reference_prefix" yaml:"reference_prefix"`

	// TempMarker excludes images whose name contains it (default "tmp").
	TempMarker string `json:"temp_marker" yaml:"temp_marker"`

	// OnError selects continue-on-error or fail-fast.
	OnError ErrorPolicy `json:"on_error" yaml:"on_error"`
}

// ScoringConfig holds settings for BLEU scoring.
type ScoringConfig struct {
	// Language is the BCP 47 tag used for lowercasing word-level text
	// (default "en").
	Language string `json:"language" yaml:"language"`
}

// ReportConfig holds settings for the comparison report.
type ReportConfig struct {
	// OutputFile is the report file name written inside each processed
	// directory (default "translation_comparison.md").
	OutputFile string `json:"output_file" yaml:"output_file"`

	// Locale selects the report labels: "en" or "zh".
	Locale string `json:"locale" yaml:"locale"`

	// Export is an optional file name for a YAML or JSON score dump,
	// written next to the report. Empty disables the export.
	Export string `json:"export,omitempty" yaml:"export,omitempty"`
}

// CompareConfig groups the settings of one pipeline run.
type CompareConfig struct {
	Collect CollectConfig `json:"collect" yaml:"collect"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
	Report  ReportConfig  `json:"report" yaml:"report"`

	// Root is the base directory that relative Dirs are resolved against.
	Root string `json:"root" yaml:"root"`

	// Dirs lists the directories processed by the batch entry point when
	// none are given on the command line.
	Dirs []string `json:"dirs" yaml:"dirs"`
}

// Defaults for CompareConfig fields.
const (
	DefaultPattern         = "*.itp"
	DefaultReferencePrefix = "human"
	DefaultTempMarker      = "tmp"
	DefaultLanguage        = "en"
	DefaultOutputFile      = "translation_comparison.md"
	DefaultLocale          = "en"
)

// DefaultDirs are the batch directories, relative to Root.
var DefaultDirs = []string{"manga/ja2en", "manga/ja2zh"}

// DefaultCompareConfig returns the configuration used when nothing is
// overridden. The error policy is left to the entry point.
func DefaultCompareConfig() CompareConfig {
	return CompareConfig{
		Collect: CollectConfig{
			Pattern:         DefaultPattern,
			ReferencePrefix: DefaultReferencePrefix,
			TempMarker:      DefaultTempMarker,
		},
		Scoring: ScoringConfig{Language: DefaultLanguage},
		Report: ReportConfig{
			OutputFile: DefaultOutputFile,
			Locale:     DefaultLocale,
		},
		Dirs: append([]string(nil), DefaultDirs...),
	}
}

// Validate checks the fields that have a closed set of values.
func (c CompareConfig) Validate() error {
	if c.Collect.OnError != "" && !c.Collect.OnError.Valid() {
		return fmt.Errorf("unsupported error policy %q: use %s or %s",
			c.Collect.OnError, OnErrorContinue, OnErrorFailFast)
	}
	if c.Collect.Pattern == "" {
		return fmt.Errorf("collect pattern must not be empty")
	}
	if c.Report.OutputFile == "" {
		return fmt.Errorf("report output file must not be empty")
	}
	switch c.Report.Locale {
	case "", "en", "zh":
	default:
		return fmt.Errorf("unsupported report locale %q: use en or zh", c.Report.Locale)
	}
	return nil
}
