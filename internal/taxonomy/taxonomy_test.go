package taxonomy

import (
	"testing"

	"github.com/standardbeagle/codehealth/internal/types"
)

func sampleRoles() map[string]types.TaxonomyRole {
	return map[string]types.TaxonomyRole{
		types.RoleOrchestrator: {Name: types.RoleOrchestrator, Multiplier: 1.5},
		types.RoleDomainLogic:  {Name: types.RoleDomainLogic, Multiplier: 1.0},
		types.RoleUtilPure:     {Name: types.RoleUtilPure, Multiplier: 0.5},
	}
}

func TestAssignFromIgnorePragma(t *testing.T) {
	a := NewAssigner(sampleRoles())
	got := a.Assign("internal/foo.go", "// @efficiency: ignore\npackage foo")
	if !got.Ignored || got.Role != types.RoleIgnored {
		t.Fatalf("expected ignored role, got %+v", got)
	}
}

func TestAssignFromSingletonPragma(t *testing.T) {
	a := NewAssigner(sampleRoles())
	got := a.Assign("internal/bootstrap.go", "// @efficiency-role: singleton\npackage bootstrap")
	if got.Role != types.RoleOrchestrator {
		t.Fatalf("expected orchestrator, got %+v", got)
	}
}

func TestAssignAdoptsArbitraryTagVerbatim(t *testing.T) {
	a := NewAssigner(sampleRoles())
	got := a.Assign("internal/x.go", "// @efficiency-role domain-logic\npackage x")
	if got.Role != "domain-logic" {
		t.Fatalf("expected verbatim tag adoption, got %+v", got)
	}
}

func TestAssignSuggestsCloseRole(t *testing.T) {
	a := NewAssigner(sampleRoles())
	got := a.Assign("internal/x.go", "// @efficiency-role: orchestrater\npackage x")
	if got.Role != "orchestrater" {
		t.Fatalf("tag must still be adopted verbatim, got %+v", got)
	}
	if got.Suggestion == "" {
		t.Errorf("expected a did-you-mean suggestion for a near-miss tag")
	}
}

func TestAssignFromPathHeuristic(t *testing.T) {
	a := NewAssigner(sampleRoles())
	got := a.Assign("cmd/server/main.go", "package main")
	if got.Role != types.RoleOrchestrator {
		t.Fatalf("expected orchestrator from cmd/ path, got %+v", got)
	}
}

func TestAssignUnknownWithNoMatch(t *testing.T) {
	a := NewAssigner(sampleRoles())
	got := a.Assign("weird/thing.go", "package thing")
	if got.Role != types.RoleUnknown {
		t.Fatalf("expected unknown role, got %+v", got)
	}
}

func TestAssignStrictFlagFallsBackToPath(t *testing.T) {
	a := NewAssigner(sampleRoles())
	got := a.Assign("internal/util/helpers.go", "// @efficiency-role: strict\npackage util")
	if got.Role != types.RoleUtilPure {
		t.Fatalf("expected util-pure from path fallback, got %+v", got)
	}
}
