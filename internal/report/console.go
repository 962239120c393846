// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxEngineWidth = 24

// PrintSummary writes the overall ranking to w as an aligned text table.
// Column widths account for East Asian wide characters in engine names.
func PrintSummary(w io.Writer, r Report) {
	if len(r.Summary) == 0 {
		return
	}

	width := runewidth.StringWidth("Engine")
	for _, row := range r.Summary {
		width = max(width, min(runewidth.StringWidth(row.Engine), maxEngineWidth))
	}

	var header strings.Builder
	fmt.Fprintf(&header, "%-4s  %s", "Rank", runewidth.FillRight("Engine", width))
	for _, ref := range r.References {
		fmt.Fprintf(&header, "  %10s", truncate("@"+ref, 10))
	}
	fmt.Fprintf(&header, "  %10s", "Average")
	fmt.Fprintln(w, header.String())
	fmt.Fprintln(w, strings.Repeat("-", runewidth.StringWidth(header.String())))

	for i, row := range r.Summary {
		name := runewidth.Truncate(row.Engine, maxEngineWidth, "...")
		fmt.Fprintf(w, "%-4d  %s", i+1, runewidth.FillRight(name, width))
		for _, s := range row.Scores {
			fmt.Fprintf(w, "  %10s", FormatScore(s))
		}
		fmt.Fprintf(w, "  %10s\n", FormatScore(row.Average))
	}
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "~")
}
