package config

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// hasGlobMeta reports whether pattern contains doublestar/glob
// metacharacters, in which case it is matched as a glob rather than by
// spec.md §6's literal substring/exact/suffix rule.
func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// MatchesExcludedFolder reports whether relPath should be excluded by
// folder rules: a literal entry matches any path segment by substring
// (spec.md §6); a glob entry matches via doublestar against the whole
// relative path, additive enrichment for projects that want directory
// globs instead of bare names.
func (r ExclusionRules) MatchesExcludedFolder(relPath string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, f := range r.Folders {
		if hasGlobMeta(f) {
			if ok, _ := doublestar.Match(f, normalized); ok {
				return true
			}
			continue
		}
		if strings.Contains(normalized, f) {
			return true
		}
	}
	return false
}

// MatchesExcludedFile reports whether the file's basename is excluded:
// exact match for literal entries, glob match for patterned ones.
func (r ExclusionRules) MatchesExcludedFile(relPath string) bool {
	base := filepath.Base(relPath)
	normalized := filepath.ToSlash(relPath)
	for _, f := range r.Files {
		if hasGlobMeta(f) {
			if ok, _ := doublestar.Match(f, normalized); ok {
				return true
			}
			if ok, _ := doublestar.Match(f, base); ok {
				return true
			}
			continue
		}
		if base == f {
			return true
		}
	}
	return false
}

// MatchesExcludedExtension reports whether relPath's extension is
// excluded, by suffix match (spec.md §6).
func (r ExclusionRules) MatchesExcludedExtension(relPath string) bool {
	for _, ext := range r.Extensions {
		if strings.HasSuffix(relPath, ext) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether relPath is excluded by any folder, file,
// or extension rule.
func (r ExclusionRules) MatchesAny(relPath string) bool {
	return r.MatchesExcludedFolder(relPath) ||
		r.MatchesExcludedFile(relPath) ||
		r.MatchesExcludedExtension(relPath)
}

// MatchesProtectedPattern reports whether path or content matches any
// configured protected pattern (spec.md §4.3 reachability rule (iv)):
// substring match for literal patterns, glob match for patterned ones.
func MatchesProtectedPattern(patterns []string, path, content string) bool {
	normalized := filepath.ToSlash(path)
	for _, p := range patterns {
		if hasGlobMeta(p) {
			if ok, _ := doublestar.Match(p, normalized); ok {
				return true
			}
			continue
		}
		if strings.Contains(normalized, p) || strings.Contains(content, p) {
			return true
		}
	}
	return false
}
