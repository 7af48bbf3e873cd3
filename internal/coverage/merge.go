// Package coverage combines parsed per-report mappings into a single
// coverage map and resolves target file paths against it.
package coverage

import (
	"sort"

	"github.com/coverlay/coverlay/internal/model"
)

// Merge reduces per-report mappings into one CoverageMap. When the same
// source path appears in several inputs its line and hit totals are
// summed and the uncovered line sets are unioned in ascending order.
//
// Summation assumes the inputs are distinct runs contributing
// additively (separate test suites writing separate reports). Feeding
// the same run twice double-counts; callers own deduplication. The
// result is deterministic regardless of input or map iteration order.
func Merge(mappings ...map[string]*model.FileDetail) model.CoverageMap {
	merged := make(model.CoverageMap)
	uncovered := make(map[string]map[int]struct{})

	for _, mapping := range mappings {
		for path, detail := range mapping {
			entry, ok := merged[path]
			if !ok {
				entry = &model.FileDetail{}
				merged[path] = entry
				uncovered[path] = make(map[int]struct{})
			}
			entry.Lines += detail.Lines
			entry.Hits += detail.Hits
			for _, line := range detail.UncoveredLines {
				uncovered[path][line] = struct{}{}
			}
		}
	}

	for path, set := range uncovered {
		if len(set) == 0 {
			continue
		}
		lines := make([]int, 0, len(set))
		for n := range set {
			lines = append(lines, n)
		}
		sort.Ints(lines)
		merged[path].UncoveredLines = lines
	}

	return merged
}
