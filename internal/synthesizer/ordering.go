package synthesizer

import (
	"path/filepath"
	"sort"

	"github.com/standardbeagle/codehealth/internal/types"
)

var categoryRank = func() map[types.WorkUnitKind]int {
	ranks := make(map[types.WorkUnitKind]int, len(types.CategoryOrder))
	for i, k := range types.CategoryOrder {
		ranks[k] = i
	}
	return ranks
}()

// order sorts units in place per spec.md §4.5's emission ordering:
// category first (Ambiguity, Structural, Violation, Surgical, Merge),
// then by domain (directory) within a category, then by action, then
// lexicographically by path for a fully deterministic final order
// (spec.md P7).
func order(units []types.WorkUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if categoryRank[a.Kind] != categoryRank[b.Kind] {
			return categoryRank[a.Kind] < categoryRank[b.Kind]
		}
		if d := domainOf(a); d != domainOf(b) {
			return d < domainOf(b)
		}
		if actionOf(a) != actionOf(b) {
			return actionOf(a) < actionOf(b)
		}
		return sortKey(a) < sortKey(b)
	})
}

func domainOf(u types.WorkUnit) string {
	if u.Kind == types.KindMerge {
		return filepath.ToSlash(u.Folder)
	}
	return filepath.ToSlash(filepath.Dir(u.File))
}

func actionOf(u types.WorkUnit) string {
	switch u.Kind {
	case types.KindSurgical, types.KindStructural:
		return u.Action
	case types.KindViolation:
		return u.Pattern
	}
	return ""
}

func sortKey(u types.WorkUnit) string {
	if u.Kind == types.KindMerge {
		return u.Folder
	}
	return u.File
}
