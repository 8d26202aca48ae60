// Package pathutil converts between absolute and relative paths.
//
// The registry, graph, and cluster detector key on paths relative to the
// config directory, so for those paths ToRelative returns its input
// unchanged; it converts an absolute path that reaches an output
// boundary back to one relative to the project root.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to one relative to rootDir.
// Falls back to the original path if conversion fails, the path is
// already relative, or the path falls outside rootDir.
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}
	return relPath
}

// ToSlash normalizes a path to forward slashes for deterministic,
// platform-independent output and pattern matching.
func ToSlash(p string) string {
	return filepath.ToSlash(p)
}
