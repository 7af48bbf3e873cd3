// Package console renders coverage results for terminal display: the
// one-line status string, the longer tooltip, and the per-file listing
// table.
package console

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/coverlay/coverlay/internal/model"
)

const maxTooltipLines = 20

// StatusLine formats the short per-file status, e.g. "app.ts: 83%".
// A nil detail or one without instrumented lines renders as unknown,
// which is distinct from a genuine 0% result.
func StatusLine(path string, detail *model.FileDetail) string {
	name := filepath.Base(path)
	if detail == nil {
		return fmt.Sprintf("%s: unknown", name)
	}
	percent, ok := detail.CoveredPercent()
	if !ok {
		return fmt.Sprintf("%s: unknown", name)
	}
	return fmt.Sprintf("%s: %s", name, formatPercent(percent))
}

// WatchLine is the status line plus the age of the published map, for
// long-running watch sessions.
func WatchLine(path string, detail *model.FileDetail, builtAt time.Time) string {
	line := StatusLine(path, detail)
	if builtAt.IsZero() {
		return line
	}
	return fmt.Sprintf("%s (built %s)", line, humanize.Time(builtAt))
}

// Tooltip formats the multi-line detail view for one file.
func Tooltip(path string, detail *model.FileDetail) string {
	if detail == nil {
		return fmt.Sprintf("%s\nNo coverage data for this file.", path)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", path)
	fmt.Fprintf(&b, "Lines instrumented: %d\n", detail.Lines)
	fmt.Fprintf(&b, "Lines hit: %d\n", detail.Hits)
	if percent, ok := detail.CoveredPercent(); ok {
		fmt.Fprintf(&b, "Coverage: %s\n", formatPercent(percent))
	} else {
		b.WriteString("Coverage: unknown\n")
	}
	if len(detail.UncoveredLines) > 0 {
		b.WriteString("Uncovered lines: ")
		b.WriteString(joinLines(detail.UncoveredLines, maxTooltipLines))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Entry is one row of the structured listing used by selection UIs.
type Entry struct {
	Path      string
	Percent   float64
	Known     bool
	Uncovered int
}

// Listing converts a coverage map into rows sorted by ascending
// percent (unknown entries first), ties broken by path.
func Listing(m model.CoverageMap) []Entry {
	entries := make([]Entry, 0, len(m))
	for path, detail := range m {
		percent, known := detail.CoveredPercent()
		entries = append(entries, Entry{
			Path:      path,
			Percent:   percent,
			Known:     known,
			Uncovered: len(detail.UncoveredLines),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Known != b.Known {
			return !a.Known
		}
		if a.Percent != b.Percent {
			return a.Percent < b.Percent
		}
		return a.Path < b.Path
	})
	return entries
}

// RenderListing writes the listing as a table.
func RenderListing(w io.Writer, entries []Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"File", "Coverage", "Uncovered"})
	for _, entry := range entries {
		coverage := "unknown"
		if entry.Known {
			coverage = formatPercent(entry.Percent)
		}
		t.AppendRow(table.Row{entry.Path, coverage, entry.Uncovered})
	}
	t.Render()
}

// formatPercent renders a percentage, colorized by threshold when the
// output supports it (fatih/color degrades to plain text otherwise).
func formatPercent(percent float64) string {
	text := fmt.Sprintf("%.0f%%", percent)
	switch {
	case percent >= 80:
		return color.GreenString(text)
	case percent >= 50:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}

func joinLines(lines []int, limit int) string {
	var parts []string
	for i, n := range lines {
		if i == limit {
			parts = append(parts, fmt.Sprintf("… (%d more)", len(lines)-limit))
			break
		}
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return strings.Join(parts, ", ")
}
