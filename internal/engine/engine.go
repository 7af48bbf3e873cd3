// Package engine runs the rebuild pipeline: discover report files,
// read and parse each one, merge the results, and publish the merged
// coverage map atomically.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coverlay/coverlay/internal/config"
	"github.com/coverlay/coverlay/internal/coverage"
	"github.com/coverlay/coverlay/internal/filereader"
	"github.com/coverlay/coverlay/internal/glob"
	"github.com/coverlay/coverlay/internal/lcov"
	"github.com/coverlay/coverlay/internal/model"
)

// Summary describes one rebuild: what was processed and what was
// skipped. Per-item failures never abort a rebuild; they end up here.
type Summary struct {
	Reports         int // report files parsed
	ReportsSkipped  int // report files that could not be read
	Records         int // SF records across all reports
	RecordsDropped  int // records without a path or usable totals
	MalformedFields int // numeric fields skipped while parsing
	Files           int // entries in the merged map
	Duration        time.Duration
}

// Engine owns the pipeline collaborators and the currently published
// coverage map. It replaces the ambient-global style of sharing state:
// everything a rebuild needs is carried here explicitly.
type Engine struct {
	cfg    config.Config
	finder glob.Finder
	reader filereader.Reader
	log    *slog.Logger

	mu        sync.RWMutex
	published model.CoverageMap
	builtAt   time.Time
}

func New(cfg config.Config, finder glob.Finder, reader filereader.Reader, log *slog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		finder: finder,
		reader: reader,
		log:    log,
	}
}

// Rebuild runs one full pipeline pass and returns the merged map
// without publishing it. Unreadable report files are skipped and
// counted; an error is returned only for discovery failure or context
// cancellation.
func (e *Engine) Rebuild(ctx context.Context) (model.CoverageMap, Summary, error) {
	start := time.Now()
	var summary Summary

	reportFiles, err := e.finder.Find(e.cfg.Globs())
	if err != nil {
		return nil, summary, err
	}

	var mappings []map[string]*model.FileDetail
	for _, reportFile := range reportFiles {
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}

		text, err := e.reader.ReadText(reportFile)
		if err != nil {
			e.log.Warn("skipping unreadable report", "file", reportFile, "error", err)
			summary.ReportsSkipped++
			continue
		}

		mapping, ps := lcov.Parse(text, reportFile)
		summary.Reports++
		summary.Records += ps.Records
		summary.RecordsDropped += ps.Dropped
		summary.MalformedFields += ps.MalformedFields
		mappings = append(mappings, mapping)
	}

	merged := coverage.Merge(mappings...)
	summary.Files = len(merged)
	summary.Duration = time.Since(start)

	e.log.Debug("rebuild complete",
		"reports", summary.Reports,
		"skipped", summary.ReportsSkipped,
		"files", summary.Files,
		"duration", summary.Duration)
	return merged, summary, nil
}

// Refresh rebuilds and publishes. The published map is only ever
// replaced by a complete one; a rebuild in flight is never partially
// visible. Last write wins, which is safe because rebuilds are pure
// functions of the report files on disk.
func (e *Engine) Refresh(ctx context.Context) (Summary, error) {
	merged, summary, err := e.Rebuild(ctx)
	if err != nil {
		return summary, err
	}
	e.mu.Lock()
	e.published = merged
	e.builtAt = time.Now()
	e.mu.Unlock()
	return summary, nil
}

// Logger exposes the engine's logger for collaborators wired alongside
// it.
func (e *Engine) Logger() *slog.Logger {
	return e.log
}

// Snapshot returns the currently published map and its build time. The
// map is nil before the first successful Refresh. Callers must not
// mutate the returned map.
func (e *Engine) Snapshot() (model.CoverageMap, time.Time) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.published, e.builtAt
}
