// Package graph builds the dependency graph, computes reachability and
// dead-code sets, detects cycles, and parses the optional external map
// document (spec.md §4.3).
package graph

import (
	"regexp"
	"strings"
)

// linkWithPathPattern matches " [label](path)" markdown links and
// captures the parenthesized path. Grounded on
// original_source/_dev-system/analyzer/src/guard.rs's get_mapped_files:
// `Regex::new(r" \[.*?\]\((.*?)\)")`.
var linkWithPathPattern = regexp.MustCompile(` \[.*?\]\((.*?)\)`)

// bareLabelPattern is the fallback "[src/Main.res](" style match:
// `Regex::new(r"\[(.*?)\]\(")`, filtered to labels that look like a
// source path (contain a dot, start with a known source prefix).
var bareLabelPattern = regexp.MustCompile(`\[(.*?)\]\(`)

// ParseMapDocument extracts every referenced file path from an external
// map document's content, per spec.md §4.3/§6. projectRootName is the
// base name of the configured project root, used to strip a
// `file://.../<projectRootName>/` prefix from absolute links (guard.rs
// hardcodes this project name; SPEC_FULL.md generalizes it to the
// configured root's base name instead).
func ParseMapDocument(content, projectRootName string) []string {
	seen := make(map[string]bool)
	var paths []string

	add := func(p string) {
		p = strings.ReplaceAll(p, "\\", "/")
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		paths = append(paths, p)
	}

	for _, m := range linkWithPathPattern.FindAllStringSubmatch(content, -1) {
		p := m[1]
		if strings.HasPrefix(p, "file://") && projectRootName != "" {
			marker := "/" + projectRootName + "/"
			if idx := strings.Index(p, marker); idx != -1 {
				p = p[idx+len(marker):]
			}
		}
		add(p)
	}

	for _, m := range bareLabelPattern.FindAllStringSubmatch(content, -1) {
		p := m[1]
		if strings.Contains(p, ".") && (strings.HasPrefix(p, "src/") || strings.HasPrefix(p, "backend/src/")) {
			add(p)
		}
	}

	return paths
}
