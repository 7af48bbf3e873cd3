// Package glob discovers report files under a workspace root by
// expanding doublestar patterns.
package glob

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Finder expands glob patterns into a sorted set of absolute file
// paths. It is the report-discovery collaborator of the rebuild
// pipeline.
type Finder interface {
	Find(patterns []string) ([]string, error)
}

// skipDirs are dependency and metadata directories never worth
// descending into when looking for coverage reports.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
	".git":         {},
}

// Walker finds files under a single root directory. Invalid patterns
// are ignored rather than failing the whole discovery; per-entry walk
// errors skip that entry only.
type Walker struct {
	root string
}

func NewWalker(root string) *Walker {
	return &Walker{root: root}
}

func (w *Walker) Find(patterns []string) ([]string, error) {
	valid := patterns[:0:0]
	for _, pattern := range patterns {
		if doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			valid = append(valid, filepath.ToSlash(pattern))
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var files []string
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && path != w.root {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range valid {
			if doublestar.MatchUnvalidated(pattern, rel) {
				abs, err := filepath.Abs(path)
				if err != nil {
					abs = path
				}
				if _, dup := seen[abs]; !dup {
					seen[abs] = struct{}{}
					files = append(files, abs)
				}
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
