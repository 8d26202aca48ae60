// Package markup drives the markup family (spec.md §4.1.3): .html,
// .htm, .xml, .svelte, .vue. Grounded on spec.md's literal description —
// the recognised constructs are exact string/prefix matches, so this is
// a line-oriented scanner rather than an HTML parser (the example pack
// has no markup-parsing library to reach for).
package markup

import (
	"strings"

	"github.com/standardbeagle/codehealth/internal/drivers"
	"github.com/standardbeagle/codehealth/internal/types"
)

// Extensions lists the file extensions this driver claims.
func Extensions() []string {
	return []string{".html", ".htm", ".xml", ".svelte", ".vue"}
}

// Analyze produces CommonMetrics for a markup file (spec.md §4.1.3):
// logic_count is the count of opening tags, nesting is estimated from
// leading whitespace divided by two, and import/require forms are
// recorded as external calls.
func Analyze(path string, content []byte, dictionary map[string]float64) types.CommonMetrics {
	stripped := drivers.Strip(string(content), true)

	metrics := types.CommonMetrics{
		LOC:               drivers.CountNonBlankLines(stripped),
		ComplexityPenalty: drivers.ScorePenalty(stripped, dictionary),
	}

	maxNesting := 0
	for _, line := range strings.Split(stripped, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		leading := 0
		for _, c := range line {
			if c != ' ' && c != '\t' {
				break
			}
			leading++
		}
		if depth := leading / 2; depth > maxNesting {
			maxNesting = depth
		}
		metrics.LogicCount += strings.Count(line, "<") - strings.Count(line, "</")
	}
	metrics.MaxNesting = maxNesting

	deps := extractImports(string(content))
	metrics.Dependencies = deps
	metrics.ExternalCalls = len(deps)

	return metrics
}

// extractImports recognises `import … from "X"`, `import "X"`, and
// `require("X")` (spec.md §4.1.3). It reads the raw source: the
// stripper blanks quoted text, which would erase every specifier.
func extractImports(src string) []string {
	var deps []string
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if dep, ok := matchImportFrom(trimmed); ok {
			deps = append(deps, dep)
			continue
		}
		if dep, ok := matchBareImport(trimmed); ok {
			deps = append(deps, dep)
			continue
		}
		if dep, ok := matchRequire(trimmed); ok {
			deps = append(deps, dep)
		}
	}
	return deps
}

func matchImportFrom(line string) (string, bool) {
	if !strings.HasPrefix(line, "import ") {
		return "", false
	}
	idx := strings.Index(line, " from ")
	if idx == -1 {
		return "", false
	}
	return extractQuoted(line[idx+len(" from "):])
}

func matchBareImport(line string) (string, bool) {
	if !strings.HasPrefix(line, "import ") {
		return "", false
	}
	rest := strings.TrimSpace(line[len("import "):])
	if len(rest) == 0 || (rest[0] != '"' && rest[0] != '\'') {
		return "", false
	}
	return extractQuoted(rest)
}

func matchRequire(line string) (string, bool) {
	idx := strings.Index(line, "require(")
	if idx == -1 {
		return "", false
	}
	return extractQuoted(line[idx+len("require("):])
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
