package glob

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root string, parts ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("SF:/a.ts\n"), 0o644))
	return path
}

func TestFind_ExpandsDoublestarPatterns(t *testing.T) {
	root := t.TempDir()
	top := writeFile(t, root, "lcov.info")
	nested := writeFile(t, root, "coverage", "lcov.info")
	extra := writeFile(t, root, "reports", "unit.lcov")
	writeFile(t, root, "src", "app.ts.txt")

	w := NewWalker(root)
	files, err := w.Find([]string{"**/lcov.info", "**/*.lcov"})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{top, nested, extra}, files)
}

func TestFind_SkipsDependencyDirectories(t *testing.T) {
	root := t.TempDir()
	keep := writeFile(t, root, "coverage", "lcov.info")
	writeFile(t, root, "node_modules", "pkg", "lcov.info")
	writeFile(t, root, "vendor", "lib", "lcov.info")
	writeFile(t, root, ".git", "lcov.info")

	w := NewWalker(root)
	files, err := w.Find([]string{"**/lcov.info"})

	require.NoError(t, err)
	assert.Equal(t, []string{keep}, files)
}

func TestFind_ResultsAreSortedAndDeduplicated(t *testing.T) {
	root := t.TempDir()
	b := writeFile(t, root, "b", "lcov.info")
	a := writeFile(t, root, "a", "lcov.info")

	w := NewWalker(root)
	// Both patterns match the same files; the result holds each once.
	files, err := w.Find([]string{"**/lcov.info", "**/lcov.*"})

	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestFind_InvalidPatternIsIgnored(t *testing.T) {
	root := t.TempDir()
	keep := writeFile(t, root, "lcov.info")

	w := NewWalker(root)
	files, err := w.Find([]string{"[", "**/lcov.info"})

	require.NoError(t, err)
	assert.Equal(t, []string{keep}, files)
}

func TestFind_NoValidPatterns(t *testing.T) {
	w := NewWalker(t.TempDir())

	files, err := w.Find([]string{"["})

	require.NoError(t, err)
	assert.Empty(t, files)
}
