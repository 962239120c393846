// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

var (
	cellEscaper   = strings.NewReplacer(`|`, `\|`, "\r\n", "<br>", "\n", "<br>")
	cellUnescaper = strings.NewReplacer(`\|`, `|`, "<br>", "\n")
)

// EscapeCell makes text safe to place in a Markdown table cell: pipes are
// backslash-escaped and line breaks become <br>.
func EscapeCell(text string) string {
	return cellEscaper.Replace(text)
}

// UnescapeCell reverses EscapeCell. CRLF line breaks come back as LF.
func UnescapeCell(cell string) string {
	return cellUnescaper.Replace(cell)
}

// FormatScore renders a BLEU score with four decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.4f", score)
}

// Render returns the Markdown document for r.
func Render(r Report, labels Labels) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", labels.Title)

	bleuHeaders := lo.Map(r.References, func(ref string, _ int) string {
		return "BLEU@" + ref
	})

	for _, sec := range r.Sections {
		fmt.Fprintf(&b, "## %s\n\n", sec.Image)

		headers := []string{labels.Engine}
		for _, box := range sec.Boxes {
			headers = append(headers, fmt.Sprintf("%d. %s", box.Index+1, box.Original))
		}
		headers = append(headers, bleuHeaders...)
		writeRow(&b, headers)
		writeSeparator(&b, len(headers))

		for _, row := range sec.Rows {
			cells := append([]string{row.Engine}, row.Cells...)
			if r.Scored() {
				cells = append(cells, lo.Map(row.Scores, func(s float64, _ int) string { return FormatScore(s) })...)
			}
			writeRow(&b, cells)
		}
		b.WriteString("\n")
	}

	if len(r.Summary) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", labels.Summary)

		headers := append(append([]string{labels.Engine}, bleuHeaders...), labels.Average)
		writeRow(&b, headers)
		writeSeparator(&b, len(headers))

		for _, row := range r.Summary {
			cells := []string{row.Engine}
			cells = append(cells, lo.Map(row.Scores, func(s float64, _ int) string { return FormatScore(s) })...)
			cells = append(cells, FormatScore(row.Average))
			writeRow(&b, cells)
		}
	}

	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	escaped := lo.Map(cells, func(c string, _ int) string { return EscapeCell(c) })
	b.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}

func writeSeparator(b *strings.Builder, n int) {
	b.WriteString("| " + strings.Join(lo.Times(n, func(int) string { return "---" }), " | ") + " |\n")
}

// WriteFile writes the rendered document to dir/name and returns the path.
func WriteFile(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	return path, nil
}
