package htmlreport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/coverlay/coverlay/internal/model"
)

func TestCreateReport_WritesWellFormedSummary(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "report")
	m := model.CoverageMap{
		"/p/a.ts": {Stat: model.Stat{Lines: 10, Hits: 7}, UncoveredLines: []int{2, 5, 9}},
		"/p/b.ts": {Stat: model.Stat{Lines: 4, Hits: 4}},
	}

	builder := NewHtmlReportBuilder(outputDir)
	require.NoError(t, builder.CreateReport(m, time.Now()))

	data, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(string(data)))
	require.NoError(t, err, "report must be parseable HTML")

	assert.Equal(t, 2, countElements(doc, "tbody", "tr"), "one body row per file")
	assert.Equal(t, 1, countElements(doc, "tfoot", "tr"))
	assert.Contains(t, string(data), "/p/a.ts")
	assert.Contains(t, string(data), "70.0%")
	assert.Contains(t, string(data), "78.6%", "total row: 11 of 14 lines")
}

func TestCreateReport_EmptyMap(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "report")

	builder := NewHtmlReportBuilder(outputDir)
	require.NoError(t, builder.CreateReport(model.CoverageMap{}, time.Now()))

	data, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "unknown", "empty total renders as unknown")
}

// countElements counts tag occurrences beneath the first ancestor tag
// found, walking the parsed tree.
func countElements(doc *html.Node, ancestor, tag string) int {
	var inAncestor func(n *html.Node, inside bool) int
	inAncestor = func(n *html.Node, inside bool) int {
		count := 0
		if n.Type == html.ElementNode {
			if n.Data == ancestor {
				inside = true
			} else if inside && n.Data == tag {
				count++
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			count += inAncestor(child, inside)
		}
		return count
	}
	return inAncestor(doc, false)
}
