package synthesizer

import (
	"testing"

	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/types"
)

func TestPathComponentCount(t *testing.T) {
	if got := PathComponentCount("a/b/c/d.go"); got != 4 {
		t.Errorf("got %d, want 4", got)
	}
	if got := PathComponentCount(""); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestDepthPenaltyZeroWhenWithinThreshold(t *testing.T) {
	if got := DepthPenalty(3, 6); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestDepthPenaltyScalesOverThreshold(t *testing.T) {
	if got := DepthPenalty(8, 6); got != 1.0 {
		t.Errorf("got %v, want 1.0", got)
	}
}

func TestDragIncludesAllTerms(t *testing.T) {
	settings := config.Settings{NestingWeight: 1, DensityWeight: 1, StateWeight: 1, MaxDepthThreshold: 6}
	m := types.CommonMetrics{LOC: 100, LogicCount: 10, MaxNesting: 2, ComplexityPenalty: 5, StateCount: 1}
	got := Drag(m, "a/b.go", settings, 1.0)
	if got <= 1.0 {
		t.Errorf("expected drag above the baseline 1.0, got %v", got)
	}
}

func TestDragAppliesFailureMultiplier(t *testing.T) {
	settings := config.Settings{NestingWeight: 1, DensityWeight: 1, StateWeight: 1, MaxDepthThreshold: 6}
	m := types.CommonMetrics{LOC: 100, LogicCount: 10}
	normal := Drag(m, "a/b.go", settings, 1.0)
	failed := Drag(m, "a/b.go", settings, 1.5)
	if failed <= normal {
		t.Errorf("expected failure multiplier to increase drag: %v vs %v", failed, normal)
	}
}

func TestCohesionBonusCapsAtZeroFloor(t *testing.T) {
	if got := CohesionBonus(0.9); got != 1.0 {
		t.Errorf("got %v, want 1.0 (max(0, 0.5-0.9) clamps to 0)", got)
	}
}

func TestPModMultipliesMatchingExceptions(t *testing.T) {
	exceptions := []config.Exception{
		{Pattern: "legacy/", Multiplier: 0.5},
		{Pattern: "vendor/", Multiplier: 2.0},
	}
	got := PMod(1.0, exceptions, "legacy/old.go")
	if got != 0.5 {
		t.Errorf("got %v, want 0.5", got)
	}
}

func TestPinnedMaxLOC(t *testing.T) {
	exceptions := []config.Exception{{Pattern: "generated/", MaxLOC: 5000}}
	loc, ok := PinnedMaxLOC(exceptions, "generated/schema.go")
	if !ok || loc != 5000 {
		t.Errorf("expected pinned 5000, got %d ok=%v", loc, ok)
	}
	if _, ok := PinnedMaxLOC(exceptions, "other/schema.go"); ok {
		t.Errorf("expected no pin for non-matching path")
	}
}

func TestLimitClampsToSoftFloorAndHardCeiling(t *testing.T) {
	got := Limit(1.0, 1.0, 1.0, 100, 200, 1200)
	if got != 200 {
		t.Errorf("expected soft-floor clamp of 200, got %v", got)
	}

	got = Limit(0.1, 10.0, 2.0, 1000, 80, 1200)
	if got != 1200 {
		t.Errorf("expected hard-ceiling clamp of 1200, got %v", got)
	}
}
