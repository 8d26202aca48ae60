package graph

import (
	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/types"
)

// EntryPoints computes the union of spec.md §4.3's four entry-point
// sources: (i) configured entries, (ii) every path in the external map
// document, (iii) every orchestrator/service-orchestrator file, and
// (iv) every file whose path or content matches a protected pattern.
// Missing configured entries are returned separately so the caller can
// log-and-continue per spec.md §7 rather than fail the run.
func EntryPoints(reg *types.Registry, cfg *config.Config, mappedPaths []string) (entries []string, missingConfigured []string) {
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			entries = append(entries, p)
		}
	}

	for _, e := range cfg.EntryPoints {
		if _, ok := reg.Files[e]; ok {
			add(e)
		} else {
			missingConfigured = append(missingConfigured, e)
		}
	}

	for _, p := range mappedPaths {
		if _, ok := reg.Files[p]; ok {
			add(p)
		}
	}

	for path, rec := range reg.Files {
		if types.IsOrchestratorRole(rec.Role) {
			add(path)
		}
	}

	for path, rec := range reg.Files {
		if config.MatchesProtectedPattern(cfg.ProtectedPatterns, path, rec.Content) {
			add(path)
		}
	}

	return entries, missingConfigured
}
