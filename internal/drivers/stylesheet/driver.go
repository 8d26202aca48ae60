// Package stylesheet drives the style-sheet family (spec.md §4.1.3):
// .css, .scss, .less. Grounded on spec.md's literal description: an
// @import directive (with optional url(...) wrapper and quote
// stripping) is an external call, logic_count counts '{', and nesting
// tracks brace depth.
package stylesheet

import (
	"strings"

	"github.com/standardbeagle/codehealth/internal/drivers"
	"github.com/standardbeagle/codehealth/internal/types"
)

// Extensions lists the file extensions this driver claims.
func Extensions() []string {
	return []string{".css", ".scss", ".less"}
}

// Analyze produces CommonMetrics for a style-sheet file (spec.md
// §4.1.3).
func Analyze(path string, content []byte, dictionary map[string]float64) types.CommonMetrics {
	stripped := drivers.Strip(string(content), true)

	metrics := types.CommonMetrics{
		LOC:               drivers.CountNonBlankLines(stripped),
		ComplexityPenalty: drivers.ScorePenalty(stripped, dictionary),
	}

	depth := 0
	maxDepth := 0
	for _, c := range stripped {
		switch c {
		case '{':
			metrics.LogicCount++
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	metrics.MaxNesting = maxDepth

	deps := extractImports(string(content))
	metrics.Dependencies = deps
	metrics.ExternalCalls = len(deps)

	return metrics
}

// extractImports recognises `@import "X"`, `@import 'X'`, and
// `@import url(X)` (with or without quotes inside url(...)). It reads
// the raw source: the stripper blanks quoted text, which would erase
// every quoted specifier.
func extractImports(src string) []string {
	var deps []string
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "@import") {
			continue
		}
		rest := strings.TrimSpace(trimmed[len("@import"):])
		if dep, ok := extractURLWrapped(rest); ok {
			deps = append(deps, dep)
			continue
		}
		if dep, ok := extractQuoted(rest); ok {
			deps = append(deps, dep)
		}
	}
	return deps
}

func extractURLWrapped(s string) (string, bool) {
	if !strings.HasPrefix(s, "url(") {
		return "", false
	}
	end := strings.IndexByte(s, ')')
	if end == -1 {
		return "", false
	}
	inner := strings.TrimSpace(s[len("url(")+0 : end])
	inner = strings.Trim(inner, "\"'")
	if inner == "" {
		return "", false
	}
	return inner, true
}

func extractQuoted(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return "", false
	}
	quote := s[0]
	if quote != '"' && quote != '\'' {
		return "", false
	}
	end := strings.IndexByte(s[1:], quote)
	if end == -1 {
		return "", false
	}
	return s[1 : end+1], true
}
