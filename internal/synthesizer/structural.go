package synthesizer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/codehealth/internal/types"
)

// verticalSlices emits one Structural{action: "Vertical Slice"} per
// file stem that recurs in more than two merge-eligible paths spread
// across more than one parent directory (spec.md §4.5, concrete
// scenario 5). Grounded on original_source's main.rs feature_map pass:
// stems of three characters or fewer are ignored as too generic to be
// a meaningful feature name.
func verticalSlices(candidates []mergeCandidate) []types.WorkUnit {
	type entry struct {
		path     string
		platform types.Platform
	}
	byStem := make(map[string][]entry)
	var stems []string
	for _, mc := range candidates {
		stem := strings.TrimSuffix(filepath.Base(mc.path), filepath.Ext(mc.path))
		if len(stem) <= 3 {
			continue
		}
		if _, ok := byStem[stem]; !ok {
			stems = append(stems, stem)
		}
		byStem[stem] = append(byStem[stem], entry{mc.path, mc.platform})
	}
	sort.Strings(stems)

	var units []types.WorkUnit
	for _, stem := range stems {
		entries := byStem[stem]
		if len(entries) <= 2 {
			continue
		}

		dirSet := make(map[string]bool)
		for _, e := range entries {
			dirSet[filepath.ToSlash(filepath.Dir(e.path))] = true
		}
		if len(dirSet) <= 1 {
			continue
		}

		sorted := append([]entry(nil), entries...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].path < sorted[j].path })

		quoted := make([]string, len(sorted))
		for i, e := range sorted {
			quoted[i] = fmt.Sprintf("%q", e.path)
		}
		reason := fmt.Sprintf("Feature %q fragmented across %d files: %s", stem, len(entries), strings.Join(quoted, ", "))

		units = append(units, types.NewStructural(stem, "Vertical Slice", reason, entries[0].platform,
			directiveFor(types.KindStructural, "Vertical Slice")))
	}
	return units
}
