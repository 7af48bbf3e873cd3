// Package htmlreport writes a one-page HTML summary of a coverage map.
package htmlreport

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/coverlay/coverlay/internal/model"
	"github.com/coverlay/coverlay/internal/reporter/console"
)

// HtmlReportBuilder renders the summary page into an output directory.
type HtmlReportBuilder struct {
	outputDir string
}

func NewHtmlReportBuilder(outputDir string) *HtmlReportBuilder {
	return &HtmlReportBuilder{outputDir: outputDir}
}

// fileRow is the per-file view model for the summary table.
type fileRow struct {
	Path      string
	Lines     int
	Hits      int
	Coverage  string
	Uncovered int
	CSSClass  string
}

type summaryViewModel struct {
	GeneratedAt string
	Total       fileRow
	Files       []fileRow
}

// CreateReport writes index.html for the given map. The table is
// ordered like the console listing: least covered first.
func (b *HtmlReportBuilder) CreateReport(m model.CoverageMap, builtAt time.Time) error {
	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	vm := summaryViewModel{GeneratedAt: builtAt.Format(time.RFC1123)}
	var totalLines, totalHits int
	for _, entry := range console.Listing(m) {
		detail := m[entry.Path]
		vm.Files = append(vm.Files, newFileRow(entry.Path, detail))
		totalLines += detail.Lines
		totalHits += detail.Hits
	}
	vm.Total = newFileRow("Total", &model.FileDetail{Stat: model.Stat{Lines: totalLines, Hits: totalHits}})

	out, err := os.Create(filepath.Join(b.outputDir, "index.html"))
	if err != nil {
		return fmt.Errorf("create index.html: %w", err)
	}
	defer out.Close()

	if err := summaryTemplate.Execute(out, vm); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

func newFileRow(path string, detail *model.FileDetail) fileRow {
	row := fileRow{
		Path:      path,
		Lines:     detail.Lines,
		Hits:      detail.Hits,
		Coverage:  "unknown",
		Uncovered: len(detail.UncoveredLines),
		CSSClass:  "unknown",
	}
	if percent, ok := detail.CoveredPercent(); ok {
		row.Coverage = fmt.Sprintf("%.1f%%", percent)
		switch {
		case percent >= 80:
			row.CSSClass = "high"
		case percent >= 50:
			row.CSSClass = "medium"
		default:
			row.CSSClass = "low"
		}
	}
	return row
}

var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Coverage Summary</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
tr.high td.pct { color: #1a7f37; }
tr.medium td.pct { color: #9a6700; }
tr.low td.pct { color: #cf222e; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>Coverage Summary</h1>
<p>Generated {{.GeneratedAt}}</p>
<table>
<thead>
<tr><th>File</th><th>Lines</th><th>Hits</th><th>Coverage</th><th>Uncovered</th></tr>
</thead>
<tbody>
{{range .Files}}<tr class="{{.CSSClass}}"><td>{{.Path}}</td><td>{{.Lines}}</td><td>{{.Hits}}</td><td class="pct">{{.Coverage}}</td><td>{{.Uncovered}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr class="{{.Total.CSSClass}}"><td>{{.Total.Path}}</td><td>{{.Total.Lines}}</td><td>{{.Total.Hits}}</td><td class="pct">{{.Total.Coverage}}</td><td></td></tr>
</tfoot>
</table>
</body>
</html>
`))
