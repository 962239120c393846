// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ExportEntry holds the scores of one image for export.
type ExportEntry struct {
	Image  string        `json:"image" yaml:"image"`
	Scores []ExportScore `json:"scores" yaml:"scores"`
}

// ExportScore is one engine's BLEU on an image.
type ExportScore struct {
	Engine  string             `json:"engine" yaml:"engine"`
	BLEU    map[string]float64 `json:"bleu,omitempty" yaml:"bleu,omitempty"`
	Average float64            `json:"average" yaml:"average"`
}

// ExportDocument is the exported form of a report: per-image scores and the
// overall ranking, without the translated text.
type ExportDocument struct {
	References []string      `json:"references" yaml:"references"`
	Images     []ExportEntry `json:"images" yaml:"images"`
	Summary    []ExportScore `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// NewExportDocument converts r into its export form.
func NewExportDocument(r Report) ExportDocument {
	doc := ExportDocument{References: r.References}
	for _, sec := range r.Sections {
		entry := ExportEntry{Image: sec.Image}
		for _, row := range sec.Rows {
			entry.Scores = append(entry.Scores, exportScore(r.References, row.Engine, row.Scores, row.Average))
		}
		doc.Images = append(doc.Images, entry)
	}
	for _, row := range r.Summary {
		doc.Summary = append(doc.Summary, exportScore(r.References, row.Engine, row.Scores, row.Average))
	}
	return doc
}

func exportScore(refs []string, engine string, scores []float64, avg float64) ExportScore {
	s := ExportScore{Engine: engine, Average: avg}
	if len(scores) > 0 {
		s.BLEU = make(map[string]float64, len(scores))
		for i, ref := range refs {
			s.BLEU[ref] = scores[i]
		}
	}
	return s
}

// Export writes the scores of r to path. The format follows the file
// extension: .json for JSON, .yaml or .yml for YAML.
func Export(r Report, path string) error {
	doc := NewExportDocument(r)

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(doc, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	default:
		return fmt.Errorf("unsupported export format %q: use .yaml or .json", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
