package graph

import (
	"sort"
	"testing"

	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/types"
)

func TestEntryPointsUnionsAllFourSources(t *testing.T) {
	reg := types.NewRegistry()
	reg.Add(&types.FileRecord{Path: "cmd/main.go", Content: "package main"}, "main")
	reg.Add(&types.FileRecord{Path: "internal/orchestrator.go", Role: types.RoleOrchestrator, Content: ""}, "orchestrator")
	reg.Add(&types.FileRecord{Path: "internal/protected.go", Content: "// DO NOT DELETE"}, "protected")
	reg.Add(&types.FileRecord{Path: "internal/mapped.go", Content: ""}, "mapped")
	reg.Add(&types.FileRecord{Path: "internal/unreferenced.go", Content: ""}, "unreferenced")

	cfg := config.Default()
	cfg.EntryPoints = []string{"cmd/main.go", "cmd/missing.go"}
	cfg.ProtectedPatterns = []string{"DO NOT DELETE"}

	entries, missing := EntryPoints(reg, cfg, []string{"internal/mapped.go"})

	sort.Strings(entries)
	want := []string{"cmd/main.go", "internal/mapped.go", "internal/orchestrator.go", "internal/protected.go"}
	if len(entries) != len(want) {
		t.Fatalf("got %v, want %v", entries, want)
	}
	for i, e := range entries {
		if e != want[i] {
			t.Errorf("got %v, want %v", entries, want)
			break
		}
	}

	if len(missing) != 1 || missing[0] != "cmd/missing.go" {
		t.Errorf("expected missing configured entry to be reported, got %v", missing)
	}
}
