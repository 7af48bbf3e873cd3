package coverage

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/coverlay/coverlay/internal/model"
)

// Match resolves a target absolute path against the coverage map.
//
// Lookup order: an exact key match wins outright. Otherwise every key
// sharing the target's basename becomes a candidate and the one with
// the highest suffix score (shared trailing directory segments) is
// chosen. A best score of zero means the only thing in common was the
// filename itself, which is not trustworthy when reports describe
// files under foreign roots (container build paths vs. local
// checkouts), so that case reports no match.
func Match(target string, m model.CoverageMap) (*model.FileDetail, bool) {
	key := model.NormalizePath(target)
	if detail, ok := m[key]; ok {
		return detail, true
	}

	base := filepath.Base(key)
	var candidates []string
	for candidate := range m {
		if filepath.Base(candidate) == base {
			candidates = append(candidates, candidate)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	// Map iteration order is randomized, so ties are pinned to sorted
	// key order to keep results stable across runs.
	sort.Strings(candidates)

	best := ""
	bestScore := 0
	for _, candidate := range candidates {
		if score := suffixScore(key, candidate); score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore == 0 {
		return nil, false
	}
	return m[best], true
}

// suffixScore counts how many trailing directory segments two paths
// share beyond the filename, stopping at the first mismatch.
// "/a/b/c/f.ts" vs "/x/b/c/f.ts" scores 2; "/a/f.ts" vs "/y/z/f.ts"
// scores 0.
func suffixScore(a, b string) int {
	segsA := pathSegments(a)
	segsB := pathSegments(b)

	score := 0
	// Index 0 is the filename, which already matched to get here.
	for i := 1; i < len(segsA) && i < len(segsB); i++ {
		if segsA[i] != segsB[i] {
			break
		}
		score++
	}
	return score
}

// pathSegments splits a path into segments ordered from the filename
// toward the root.
func pathSegments(p string) []string {
	parts := strings.Split(strings.Trim(filepath.ToSlash(p), "/"), "/")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}
