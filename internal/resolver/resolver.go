// Package resolver maps a textual dependency string (as extracted by a
// driver) to zero or more concrete registry paths, per spec.md §4.2.
// Grounded on original_source/_dev-system/analyzer/src/resolver.rs's
// Resolver.resolve: same five strategies in the same order, translated
// from Rust's Option-chaining idiom to Go's early-return style.
package resolver

import (
	"path/filepath"
	"sort"
	"strings"
)

// Resolver looks up dependency strings against a stem→paths registry
// built by discovery.
type Resolver struct {
	stems map[string][]string
}

// New builds a Resolver over stems (typically types.Registry.Stems).
func New(stems map[string][]string) *Resolver {
	return &Resolver{stems: stems}
}

// Resolve returns the sorted, deduplicated set of paths dep resolves
// to, per spec.md §4.2's five strategies. Strategies 1 and 2 accumulate
// into the same result; the remaining strategies are tried in order and
// the first to yield any match wins.
func (r *Resolver) Resolve(dep string) []string {
	dep = strings.TrimSpace(dep)
	var matches []string

	// Strategy 1: dotted notation ("Module.Member" -> "Module").
	if strings.Contains(dep, ".") && !strings.HasPrefix(dep, ".") {
		first := strings.SplitN(dep, ".", 2)[0]
		matches = append(matches, r.stems[first]...)
	}

	// Strategy 2: "::"-notation — last segment first, then the
	// second-to-last if the last segment had no hits.
	if strings.Contains(dep, "::") {
		parts := strings.Split(dep, "::")
		last := parts[len(parts)-1]
		matches = append(matches, r.stems[last]...)

		if len(matches) == 0 && len(parts) > 1 {
			parent := parts[len(parts)-2]
			matches = append(matches, r.stems[parent]...)
		}
	}

	if len(matches) == 0 {
		// Strategy 3: direct stem match.
		matches = append(matches, r.stems[dep]...)
	}

	if len(matches) == 0 {
		// Strategy 4: strip anything before the last "::" and retry.
		clean := dep
		if strings.Contains(dep, "::") {
			parts := strings.Split(dep, "::")
			clean = strings.TrimSpace(parts[len(parts)-1])
		}
		matches = append(matches, r.stems[clean]...)
	}

	if len(matches) == 0 {
		// Strategy 5: treat dep as a path, look up its file stem.
		base := filepath.Base(dep)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		matches = append(matches, r.stems[stem]...)
	}

	return dedupSorted(matches)
}

func dedupSorted(matches []string) []string {
	if len(matches) == 0 {
		return nil
	}
	sorted := append([]string(nil), matches...)
	sort.Strings(sorted)
	out := sorted[:0]
	var prev string
	for i, m := range sorted {
		if i == 0 || m != prev {
			out = append(out, m)
		}
		prev = m
	}
	return out
}
