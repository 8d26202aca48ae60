package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeConfig marshals cfg to path/codehealth.json and returns the path.
func writeConfig(t *testing.T, dir string, cfg map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, "codehealth.json")
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// TestRunEndToEnd exercises every pipeline stage against a small real
// Go project: a reachable entry point, a reachable helper it imports,
// and an unreferenced file long enough to trip MinDeadCodeLOC
// (spec.md §2's full eight-stage sequence).
func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()

	mainSrc := `package main

import (
	"fmt"
	"example.com/sample/helper"
)

func main() {
	fmt.Println(helper.Greet())
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte(mainSrc), 0o644))

	helperSrc := `package helper

func Greet() string {
	return "hello"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helper.go"), []byte(helperSrc), 0o644))

	// orphan.go is never imported by anything and must be padded past
	// min_dead_code_loc so it actually surfaces as a Surgical unit.
	orphanLines := "package orphan\n\nfunc Unused() int {\n"
	for i := 0; i < 30; i++ {
		orphanLines += "\t_ = 1\n"
	}
	orphanLines += "\treturn 0\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orphan.go"), []byte(orphanLines), 0o644))

	writeConfig(t, dir, map[string]any{
		"scanned_roots": []string{"."},
		"entry_points":  []string{"main.go"},
		"settings": map[string]any{
			"min_dead_code_loc":    5,
			"base_loc_limit":       400,
			"hard_ceiling_loc":     1200,
			"soft_floor_loc":       80,
			"merge_score_threshold": 1.0,
			"nesting_weight":       1.0,
			"density_weight":       1.0,
			"drag_target":          1.0,
			"state_weight":         1.0,
			"max_depth_threshold":  6,
		},
	})

	plansDir := filepath.Join(dir, "plans")
	tasksDir := filepath.Join(dir, "tasks")
	statePath := filepath.Join(dir, "analyzer_state.json")

	result, err := Run(Options{
		ConfigPath: filepath.Join(dir, "codehealth.json"),
		StatePath:  statePath,
		PlansDir:   plansDir,
		TasksDir:   tasksDir,
		Now:        1700000000,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Contains(t, result.DeadFiles, "orphan.go")
	require.NotContains(t, result.DeadFiles, "main.go")
	require.NotContains(t, result.DeadFiles, "helper.go")

	foundOrphanUnit := false
	for _, u := range result.Units {
		if u.File == "orphan.go" {
			foundOrphanUnit = true
		}
	}
	require.True(t, foundOrphanUnit, "expected a work unit for the dead orphan.go file")

	// Run never marks a failure or records an action, so the state
	// snapshot stays clean and Save writes nothing.
	require.NoFileExists(t, statePath)
	require.FileExists(t, filepath.Join(plansDir, "CYCLES.md"))
	require.FileExists(t, filepath.Join(plansDir, "metadata.json"))

	cycleReport, err := os.ReadFile(filepath.Join(plansDir, "CYCLES.md"))
	require.NoError(t, err)
	require.Contains(t, string(cycleReport), "No cycles detected")
}

// TestRunRootOverride confirms --root's config override takes effect
// before discovery walks anything (cmd/codehealth's --root flag).
func TestRunRootOverride(t *testing.T) {
	scanDir := t.TempDir()
	cfgDir := t.TempDir()

	src := `package main

func main() {}
`
	require.NoError(t, os.WriteFile(filepath.Join(scanDir, "main.go"), []byte(src), 0o644))

	writeConfig(t, cfgDir, map[string]any{
		"scanned_roots": []string{"/nonexistent-path-should-be-overridden"},
		"entry_points":  []string{"main.go"},
	})

	result, err := Run(Options{
		ConfigPath:   filepath.Join(cfgDir, "codehealth.json"),
		StatePath:    filepath.Join(cfgDir, "analyzer_state.json"),
		PlansDir:     filepath.Join(cfgDir, "plans"),
		TasksDir:     filepath.Join(cfgDir, "tasks"),
		RootOverride: scanDir,
		Now:          1700000000,
	})
	require.NoError(t, err)
	require.Len(t, result.Registry.Files, 1)
}

// TestRunMissingEntryPointIsReported confirms a configured-but-absent
// entry point is surfaced in MissingEntryPoints rather than failing the
// run (spec.md §7).
func TestRunMissingEntryPointIsReported(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644))

	writeConfig(t, dir, map[string]any{
		"scanned_roots": []string{"."},
		"entry_points":  []string{"main.go", "nope.go"},
	})

	result, err := Run(Options{
		ConfigPath: filepath.Join(dir, "codehealth.json"),
		StatePath:  filepath.Join(dir, "analyzer_state.json"),
		PlansDir:   filepath.Join(dir, "plans"),
		TasksDir:   filepath.Join(dir, "tasks"),
		Now:        1700000000,
	})
	require.NoError(t, err)
	require.Contains(t, result.MissingEntryPoints, "nope.go")

	lines := SummarizeMissingEntryPoints(result.MissingEntryPoints)
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "nope.go")
}
