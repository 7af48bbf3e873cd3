// Package lcov parses the line-oriented LCOV tracefile format into
// per-file coverage details. Only the line coverage markers (SF, DA,
// LF, LH, end_of_record) are interpreted; branch and function records
// pass through as unrecognized lines.
package lcov

import (
	"bufio"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/coverlay/coverlay/internal/model"
)

// ParseSummary reports what a single Parse call did with its input, so
// callers can surface skipped data instead of silently dropping it.
type ParseSummary struct {
	Records         int // SF blocks encountered
	Kept            int // records that produced a map entry
	Dropped         int // records discarded (no path or no usable totals)
	MalformedFields int // numeric fields that failed to parse and were skipped
}

// record accumulates one SF-delimited block while scanning.
type record struct {
	sourcePath string
	lf, lh     int
	lfSeen     bool
	lhSeen     bool
	daLines    int
	daHits     int
	uncovered  map[int]struct{}
}

// Parse converts raw LCOV text into a mapping from resolved absolute
// source path to coverage detail. Relative SF paths are resolved
// against the directory containing reportPath. The parser never fails:
// malformed fields are skipped and counted, unrecognized lines are
// ignored, and records without usable totals are dropped.
func Parse(content string, reportPath string) (map[string]*model.FileDetail, ParseSummary) {
	out := make(map[string]*model.FileDetail)
	var summary ParseSummary
	reportDir := filepath.Dir(reportPath)

	var current *record
	flush := func() {
		if current == nil {
			return
		}
		flushRecord(current, reportDir, out, &summary)
		current = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "SF:"):
			flush()
			summary.Records++
			current = &record{
				sourcePath: strings.TrimSpace(strings.TrimPrefix(line, "SF:")),
				uncovered:  make(map[int]struct{}),
			}
		case strings.HasPrefix(line, "DA:"):
			if current != nil {
				parseDA(current, strings.TrimPrefix(line, "DA:"), &summary)
			}
		case strings.HasPrefix(line, "LF:"):
			if current != nil {
				if n, err := strconv.Atoi(strings.TrimPrefix(line, "LF:")); err == nil {
					current.lf = n
					current.lfSeen = true
				} else {
					summary.MalformedFields++
				}
			}
		case strings.HasPrefix(line, "LH:"):
			if current != nil {
				if n, err := strconv.Atoi(strings.TrimPrefix(line, "LH:")); err == nil {
					current.lh = n
					current.lhSeen = true
				} else {
					summary.MalformedFields++
				}
			}
		case line == "end_of_record":
			flush()
		}
	}
	flush()

	return out, summary
}

// parseDA handles one "DA:<line>,<count>[,<checksum>]" payload. Each
// well-formed occurrence counts toward the detail-derived totals; a
// zero count marks the line uncovered.
func parseDA(rec *record, payload string, summary *ParseSummary) {
	fields := strings.Split(payload, ",")
	if len(fields) < 2 {
		summary.MalformedFields++
		return
	}
	lineNo, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		summary.MalformedFields++
		return
	}
	count, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		summary.MalformedFields++
		return
	}

	rec.daLines++
	if count > 0 {
		rec.daHits++
	} else {
		rec.uncovered[lineNo] = struct{}{}
	}
}

// flushRecord resolves a finished record into the result map. Summary
// LF/LH totals are authoritative when both were seen; otherwise the
// DA-derived totals apply. Records with no path or with zero totals by
// both methods are dropped.
func flushRecord(rec *record, reportDir string, out map[string]*model.FileDetail, summary *ParseSummary) {
	if rec.sourcePath == "" {
		summary.Dropped++
		return
	}

	var stat model.Stat
	switch {
	case rec.lfSeen && rec.lhSeen:
		stat = model.Stat{Lines: rec.lf, Hits: rec.lh}
		if rec.lf == 0 && rec.lh == 0 && rec.daLines == 0 {
			summary.Dropped++
			return
		}
	case rec.daLines > 0:
		stat = model.Stat{Lines: rec.daLines, Hits: rec.daHits}
	default:
		summary.Dropped++
		return
	}

	path := rec.sourcePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(reportDir, path)
	}
	key := model.NormalizePath(path)

	summary.Kept++
	existing, ok := out[key]
	if !ok {
		out[key] = &model.FileDetail{
			Stat:           stat,
			UncoveredLines: sortedLines(rec.uncovered),
		}
		return
	}

	// Two records for the same resolved path within one report merge
	// the same way reports merge across files: sum and union.
	existing.Lines += stat.Lines
	existing.Hits += stat.Hits
	existing.UncoveredLines = unionLines(existing.UncoveredLines, rec.uncovered)
}

func sortedLines(set map[int]struct{}) []int {
	if len(set) == 0 {
		return nil
	}
	lines := make([]int, 0, len(set))
	for n := range set {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	return lines
}

func unionLines(existing []int, extra map[int]struct{}) []int {
	if len(extra) == 0 {
		return existing
	}
	set := make(map[int]struct{}, len(existing)+len(extra))
	for _, n := range existing {
		set[n] = struct{}{}
	}
	for n := range extra {
		set[n] = struct{}{}
	}
	return sortedLines(set)
}
