package model

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Stat holds the line totals for one source file: how many lines were
// instrumented and how many of those were executed at least once.
// Values are passed through as reported; a malformed report may claim
// more hits than lines and no clamping is applied.
type Stat struct {
	Lines int
	Hits  int
}

// CoveredPercent returns the hit percentage for the stat. The second
// return value is false when no lines were instrumented, so callers can
// distinguish "unknown" from a genuine 0% result.
func (s Stat) CoveredPercent() (float64, bool) {
	if s.Lines <= 0 {
		return 0, false
	}
	return float64(s.Hits) / float64(s.Lines) * 100, true
}

// FileDetail extends Stat with the uncovered line numbers (1-based,
// ascending, deduplicated).
type FileDetail struct {
	Stat
	UncoveredLines []int
}

// CoverageMap maps a normalized absolute source path to its coverage
// detail. It is rebuilt wholesale on every refresh and replaced
// atomically; entries are never mutated after publication.
type CoverageMap map[string]*FileDetail

// NormalizePath cleans a path into the canonical form used as a
// CoverageMap key. On Windows the comparison is case-insensitive, so
// keys are lowercased there.
func NormalizePath(path string) string {
	p := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		p = strings.ToLower(p)
	}
	return p
}
