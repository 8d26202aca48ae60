// Package emit writes the analyzer's two output shapes (spec.md §4.6):
// one Markdown plan per driver family, a JSON metadata snapshot, and a
// set of grouped task files with deterministic numeric-prefix reuse and
// zombie elimination. Grounded on original_source's main.rs
// flush_plans/sync_all_architectural_tasks, adapted from its
// HashMap<driver_name, Vec<WorkUnit>> buffer into a pass over the typed
// Registry this rewrite uses throughout.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/types"
)

// Dirs names the two output roots (spec.md §6 "Outputs").
type Dirs struct {
	PlansDir string
	TasksDir string
}

// driverOf resolves the driver family a work unit belongs to, for plan
// grouping, by looking up the unit's representative file in reg
// (Merge units use their first file).
func driverOf(u types.WorkUnit, reg *types.Registry) (types.Driver, bool) {
	path := u.File
	if u.Kind == types.KindMerge && len(u.Files) > 0 {
		path = u.Files[0]
	}
	rec, ok := reg.Files[path]
	if !ok {
		return "", false
	}
	return rec.Driver, true
}

// WritePlans emits one plans/<DRIVER>_PLAN.md per driver family that
// owns at least one work unit, sections in the fixed order ambiguity,
// surgical, structural, merge, each header carrying a count (spec.md
// §4.6 "Per-driver plan").
func WritePlans(units []types.WorkUnit, reg *types.Registry, cfg *config.Config, dirs Dirs) error {
	if err := os.MkdirAll(dirs.PlansDir, 0o755); err != nil {
		return err
	}

	byDriver := make(map[types.Driver][]types.WorkUnit)
	for _, u := range units {
		driver, ok := driverOf(u, reg)
		if !ok {
			continue
		}
		byDriver[driver] = append(byDriver[driver], u)
	}

	var drivers []types.Driver
	for d := range byDriver {
		drivers = append(drivers, d)
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i] < drivers[j] })

	for _, driver := range drivers {
		if err := writeDriverPlan(driver, byDriver[driver], cfg, dirs.PlansDir); err != nil {
			return err
		}
	}
	return nil
}

func writeDriverPlan(driver types.Driver, units []types.WorkUnit, cfg *config.Config, plansDir string) error {
	var b strings.Builder
	name := strings.ToUpper(string(driver))
	fmt.Fprintf(&b, "# %s MASTER PLAN\n", name)
	b.WriteString(strings.NewReplacer(
		"{nesting_w}", fmt.Sprintf("%.2f", cfg.Settings.NestingWeight),
		"{density_w}", fmt.Sprintf("%.2f", cfg.Settings.DensityWeight),
		"{drag_t}", fmt.Sprintf("%.2f", cfg.Settings.DragTarget),
		"{merge_t}", fmt.Sprintf("%.2f", cfg.Settings.MergeScoreThreshold),
		"{roles}", roleList(cfg),
	).Replace(cfg.Templates.Legend))
	b.WriteString("\n")

	ambiguities := filterKind(units, types.KindAmbiguity)
	if len(ambiguities) > 0 {
		fmt.Fprintf(&b, "\n## PRECURSOR: AMBIGUITY RESOLUTION (%d)\n", len(ambiguities))
		for _, u := range ambiguities {
			fmt.Fprintf(&b, "- [ ] `%s`\n", u.File)
		}
		b.WriteString("\n---\n")
	}

	surgicals := filterKind(units, types.KindSurgical)
	if len(surgicals) > 0 {
		fmt.Fprintf(&b, "\n## SURGICAL REFACTOR TASKS (%d)\n", len(surgicals))
		for _, u := range surgicals {
			fmt.Fprintf(&b, "- [ ] **%s**\n  - *Reason:* %s\n", u.File, u.Reason)
		}
		b.WriteString("\n---\n")
	}

	structural := filterKind(units, types.KindStructural)
	if len(structural) > 0 {
		fmt.Fprintf(&b, "\n## STRUCTURAL REFACTOR TASKS (%d)\n", len(structural))
		for _, u := range structural {
			fmt.Fprintf(&b, "- [ ] **%s** (Action: %s)\n  - *Reason:* %s\n", u.File, u.Action, u.Reason)
		}
		b.WriteString("\n---\n")
	}

	merges := filterKind(units, types.KindMerge)
	if len(merges) > 0 {
		fmt.Fprintf(&b, "\n## MERGE TASKS (%d)\n", len(merges))
		for _, u := range merges {
			fmt.Fprintf(&b, "### Merge Folder: `%s`\n- **Reason:** %s\n- **Files:**\n", u.Folder, u.Reason)
			files := append([]string(nil), u.Files...)
			sort.Strings(files)
			for _, f := range files {
				fmt.Fprintf(&b, "  - `%s`\n", f)
			}
		}
	}

	path := filepath.Join(plansDir, name+"_PLAN.md")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func filterKind(units []types.WorkUnit, kind types.WorkUnitKind) []types.WorkUnit {
	var out []types.WorkUnit
	for _, u := range units {
		if u.Kind == kind {
			out = append(out, u)
		}
	}
	return out
}
