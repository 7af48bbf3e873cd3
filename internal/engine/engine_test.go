package engine

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverlay/coverlay/internal/config"
	"github.com/coverlay/coverlay/internal/logging"
	"github.com/coverlay/coverlay/internal/model"
)

// fakeFinder returns a fixed file list without touching the disk.
type fakeFinder struct {
	files []string
	err   error
}

func (f *fakeFinder) Find(patterns []string) ([]string, error) {
	return f.files, f.err
}

// fakeReader serves report text from memory; missing paths fail.
type fakeReader struct {
	files map[string]string
}

func (r *fakeReader) ReadText(path string) (string, error) {
	text, ok := r.files[path]
	if !ok {
		return "", errors.New("read failed: " + path)
	}
	return text, nil
}

func newTestEngine(finder *fakeFinder, reader *fakeReader) *Engine {
	cfg := config.Default("/work")
	log := logging.New(io.Discard, logging.Off)
	return New(cfg, finder, reader, log)
}

func TestRebuild_MergesAcrossReports(t *testing.T) {
	finder := &fakeFinder{files: []string{"/work/one/lcov.info", "/work/two/lcov.info"}}
	reader := &fakeReader{files: map[string]string{
		"/work/one/lcov.info": "SF:/src/a.ts\nDA:1,1\nDA:2,0\nend_of_record\n",
		"/work/two/lcov.info": "SF:/src/a.ts\nDA:3,0\nend_of_record\nSF:/src/b.ts\nDA:1,1\nend_of_record\n",
	}}
	eng := newTestEngine(finder, reader)

	merged, summary, err := eng.Rebuild(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Reports)
	assert.Equal(t, 0, summary.ReportsSkipped)
	assert.Equal(t, 2, summary.Files)

	a := merged[model.NormalizePath("/src/a.ts")]
	require.NotNil(t, a)
	assert.Equal(t, model.Stat{Lines: 3, Hits: 1}, a.Stat)
	assert.Equal(t, []int{2, 3}, a.UncoveredLines)
}

func TestRebuild_UnreadableReportIsSkipped(t *testing.T) {
	finder := &fakeFinder{files: []string{"/work/bad/lcov.info", "/work/good/lcov.info"}}
	reader := &fakeReader{files: map[string]string{
		"/work/good/lcov.info": "SF:/src/a.ts\nDA:1,1\nend_of_record\n",
	}}
	eng := newTestEngine(finder, reader)

	merged, summary, err := eng.Rebuild(context.Background())

	require.NoError(t, err, "one bad report must not abort the rebuild")
	assert.Equal(t, 1, summary.Reports)
	assert.Equal(t, 1, summary.ReportsSkipped)
	assert.Len(t, merged, 1)
}

func TestRebuild_NoReportsYieldsEmptyMap(t *testing.T) {
	eng := newTestEngine(&fakeFinder{}, &fakeReader{})

	merged, summary, err := eng.Rebuild(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
	assert.Equal(t, 0, summary.Reports)
}

func TestRebuild_DiscoveryFailure(t *testing.T) {
	eng := newTestEngine(&fakeFinder{err: errors.New("walk failed")}, &fakeReader{})

	_, _, err := eng.Rebuild(context.Background())

	assert.Error(t, err)
}

func TestRebuild_CancelledContext(t *testing.T) {
	finder := &fakeFinder{files: []string{"/work/lcov.info"}}
	eng := newTestEngine(finder, &fakeReader{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := eng.Rebuild(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRefresh_PublishesCompleteMapOnly(t *testing.T) {
	finder := &fakeFinder{files: []string{"/work/lcov.info"}}
	reader := &fakeReader{files: map[string]string{
		"/work/lcov.info": "SF:/src/a.ts\nDA:1,1\nend_of_record\n",
	}}
	eng := newTestEngine(finder, reader)

	snapshot, builtAt := eng.Snapshot()
	assert.Nil(t, snapshot, "nothing published before the first refresh")
	assert.True(t, builtAt.IsZero())

	_, err := eng.Refresh(context.Background())
	require.NoError(t, err)

	snapshot, builtAt = eng.Snapshot()
	require.Len(t, snapshot, 1)
	assert.False(t, builtAt.IsZero())

	// A failing later refresh leaves the previous map published.
	finder.err = errors.New("boom")
	_, err = eng.Refresh(context.Background())
	require.Error(t, err)
	snapshot, _ = eng.Snapshot()
	assert.Len(t, snapshot, 1)
}
