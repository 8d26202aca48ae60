package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/types"
)

var taskSubdirs = []string{"pending", "active", "completed", "postponed"}

// categoryPrefixes are the known architectural-category name stems,
// used both to allocate/reuse numeric prefixes and to recognize zombie
// task files during cleanup (main.rs's arch_patterns list).
var categoryPrefixes = []string{
	"Classify_Ambiguous_Files", "Structural_Refactor_", "Fix_Violations_",
	"Surgical_Refactor_", "Merge_Folders_",
}

type section struct {
	action    string
	directive string
	items     []string
}

// SyncTasks groups the work-unit buffer into per-category task files
// under tasksDir/pending, reusing each category's numeric prefix across
// pending/active/completed/postponed (spec.md §4.6 "Per-category
// task"), then deletes any pending file whose category prefix was not
// rewritten this run (spec.md §4.6/P8 "Zombie elimination"). Grounded
// on original_source's main.rs sync_architectural_category /
// sync_all_architectural_tasks, generalized per spec.md's wording to
// search every task subdirectory for a prefix match rather than only
// pending (see DESIGN.md).
func SyncTasks(units []types.WorkUnit, reg *types.Registry, cfg *config.Config, dirs Dirs) error {
	pendingDir := filepath.Join(dirs.TasksDir, "pending")
	if err := os.MkdirAll(pendingDir, 0o755); err != nil {
		return err
	}

	ambiguity := make(map[string][]section)
	violation := make(map[string][]section)
	structural := make(map[string][]section)
	surgical := make(map[string][]section)
	merge := make(map[string][]section)

	appendSection := func(buckets map[string][]section, key, action, directive, item string) {
		for i := range buckets[key] {
			if buckets[key][i].action == action && buckets[key][i].directive == directive {
				buckets[key][i].items = append(buckets[key][i].items, item)
				return
			}
		}
		buckets[key] = append(buckets[key], section{action: action, directive: directive, items: []string{item}})
	}

	for _, u := range units {
		switch u.Kind {
		case types.KindAmbiguity:
			appendSection(ambiguity, "Classify_Ambiguous_Files", "Classify Ambiguous Files", u.Directive,
				fmt.Sprintf("`%s`", u.File))

		case types.KindViolation:
			platform := platformOf(u, reg)
			key := "Fix_Violations_" + platformLabel(platform)
			action := fmt.Sprintf("Fix Pattern `%s`", u.Pattern)
			appendSection(violation, key, action, u.Directive, fmt.Sprintf("`%s`", u.File))

		case types.KindStructural:
			key := "Structural_Refactor_" + platformLabel(u.Platform)
			appendSection(structural, key, u.Action, u.Directive, fmt.Sprintf("**%s** (Metric: %s)", u.File, u.Reason))

		case types.KindSurgical:
			domain := strings.ToUpper(filepath.Base(filepath.Dir(u.File)))
			key := fmt.Sprintf("Surgical_Refactor_%s_%s", domain, platformLabel(u.Platform))
			appendSection(surgical, key, u.Action, u.Directive, fmt.Sprintf("**%s** (Metric: %s)", u.File, u.Reason))

		case types.KindMerge:
			key := "Merge_Folders_" + platformLabel(u.Platform)
			item := mergeItem(u)
			appendSection(merge, key, "Merge Fragmented Folders", u.Directive, item)
		}
	}

	var written []string

	writeAll := func(buckets map[string][]section, objective string) error {
		var keys []string
		for k := range buckets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			path, err := writeTaskFile(dirs.TasksDir, key, buckets[key], objective)
			if err != nil {
				return err
			}
			written = append(written, filepath.Base(path))
		}
		return nil
	}

	ambiguityObj := strings.ReplaceAll(cfg.Templates.AmbiguityObjective, "{roles}", roleList(cfg))
	surgicalObj := renderSurgicalObjective(cfg)
	mergeObj := strings.ReplaceAll(cfg.Templates.MergeObjective, "{merge_t}",
		fmt.Sprintf("%.2f", cfg.Settings.MergeScoreThreshold))

	if err := writeAll(ambiguity, ambiguityObj); err != nil {
		return err
	}
	if err := writeAll(structural, cfg.Templates.StructuralObjective); err != nil {
		return err
	}
	if err := writeAll(violation, cfg.Templates.ViolationObjective); err != nil {
		return err
	}
	if err := writeAll(surgical, surgicalObj); err != nil {
		return err
	}
	if err := writeAll(merge, mergeObj); err != nil {
		return err
	}

	return eliminateZombies(pendingDir, written)
}

func platformOf(u types.WorkUnit, reg *types.Registry) types.Platform {
	if rec, ok := reg.Files[u.File]; ok {
		return rec.Platform
	}
	return types.PlatformBackend
}

func platformLabel(p types.Platform) string {
	return strings.ToUpper(string(p))
}

func mergeItem(u types.WorkUnit) string {
	files := append([]string(nil), u.Files...)
	sort.Strings(files)
	var b strings.Builder
	fmt.Fprintf(&b, "Folder: `%s` (Metric: %s)", u.Folder, u.Reason)
	for _, f := range files {
		fmt.Fprintf(&b, "\n    - `%s`", filepath.ToSlash(filepath.Join(u.Folder, filepath.Base(f))))
	}
	return b.String()
}

func roleList(cfg *config.Config) string {
	var names []string
	for name := range cfg.Taxonomy {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "*   **%s**: %s\n", name, cfg.Taxonomy[name].Desc)
	}
	return b.String()
}

func renderSurgicalObjective(cfg *config.Config) string {
	obj := cfg.Templates.SurgicalObjective
	obj = strings.ReplaceAll(obj, "{nesting_w}", fmt.Sprintf("%.2f", cfg.Settings.NestingWeight))
	obj = strings.ReplaceAll(obj, "{density_w}", fmt.Sprintf("%.2f", cfg.Settings.DensityWeight))
	obj = strings.ReplaceAll(obj, "{drag_t}", fmt.Sprintf("%.2f", cfg.Settings.DragTarget))
	return obj
}

// writeTaskFile renders one category's sections into a task document and
// writes it under tasksDir/pending, reusing the category's numeric
// prefix if one already exists anywhere under tasksDir (spec.md §4.6).
func writeTaskFile(tasksDir, fullCategoryName string, sections []section, objective string) (string, error) {
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].action != sections[j].action {
			return sections[i].action < sections[j].action
		}
		return sections[i].directive < sections[j].directive
	})

	id := resolvePrefix(tasksDir, fullCategoryName)
	name := fmt.Sprintf("%s_%s.md", id, fullCategoryName)
	path := filepath.Join(tasksDir, "pending", name)

	var b strings.Builder
	title := strings.ReplaceAll(fullCategoryName, "_", " ")
	fmt.Fprintf(&b, "# Task %s: %s\n\n## Objective\n%s\n\n## Tasks\n", id, title, objective)
	for _, s := range sections {
		fmt.Fprintf(&b, "\n### Action: %s\n**Directive:** %s\n\n", s.action, s.directive)
		items := append([]string(nil), s.items...)
		sort.Strings(items)
		for _, item := range items {
			fmt.Fprintf(&b, "- [ ] %s\n", item)
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// resolvePrefix reuses the numeric prefix of any existing task file
// whose name contains fullCategoryName, searched across every task
// subdirectory; otherwise it allocates 1 + the highest existing prefix
// across all four (spec.md §4.6: "if a file with the same
// Category[_Platform] suffix already exists in any pending/active/
// completed/postponed directory, its numeric prefix is reused").
func resolvePrefix(tasksDir, fullCategoryName string) string {
	maxID := 0
	for _, sub := range taskSubdirs {
		entries, err := os.ReadDir(filepath.Join(tasksDir, sub))
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			idStr, _, found := strings.Cut(name, "_")
			if !found {
				continue
			}
			if id, err := strconv.Atoi(idStr); err == nil && id > maxID {
				maxID = id
			}
			if strings.Contains(name, fullCategoryName) {
				return idStr
			}
		}
	}
	return fmt.Sprintf("%03d", maxID+1)
}

func eliminateZombies(pendingDir string, written []string) error {
	keep := make(map[string]bool, len(written))
	for _, name := range written {
		keep[name] = true
	}

	entries, err := os.ReadDir(pendingDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		isArch := false
		for _, prefix := range categoryPrefixes {
			if strings.Contains(name, prefix) {
				isArch = true
				break
			}
		}
		if isArch && !keep[name] {
			os.Remove(filepath.Join(pendingDir, name))
		}
	}
	return nil
}
