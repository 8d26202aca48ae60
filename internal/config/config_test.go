package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.ScannedRoots) != 1 || cfg.ScannedRoots[0] != "../../" {
		t.Errorf("expected default scanned_roots, got %v", cfg.ScannedRoots)
	}
	if cfg.Settings.HardCeilingLOC != 1200 {
		t.Errorf("expected default hard_ceiling_loc 1200, got %d", cfg.Settings.HardCeilingLOC)
	}
}

func TestLoadValidDocument(t *testing.T) {
	doc := `{
		"scanned_roots": ["src", "lib"],
		"entry_points": ["src/main.go"],
		"settings": {"min_dead_code_loc": 10, "base_loc_limit": 300, "hard_ceiling_loc": 900, "soft_floor_loc": 50, "merge_score_threshold": 1.5, "nesting_weight": 2, "density_weight": 3, "drag_target": 1, "state_weight": 4, "max_depth_threshold": 5},
		"taxonomy": {"orchestrator": {"multiplier": 2.0}},
		"exceptions": [{"pattern": "generated", "max_loc": 5000}]
	}`
	dir := t.TempDir()
	path := filepath.Join(dir, "codehealth.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.ScannedRoots) != 2 {
		t.Errorf("expected 2 scanned roots, got %v", cfg.ScannedRoots)
	}
	if cfg.Settings.MinDeadCodeLOC != 10 {
		t.Errorf("expected min_dead_code_loc 10, got %d", cfg.Settings.MinDeadCodeLOC)
	}
	if cfg.Taxonomy["orchestrator"].Multiplier != 2.0 {
		t.Errorf("expected orchestrator multiplier 2.0, got %v", cfg.Taxonomy["orchestrator"].Multiplier)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codehealth.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codehealth.json")
	// settings must be an object, not a string
	if err := os.WriteFile(path, []byte(`{"settings": "nope"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected schema validation error")
	}
}
