package config

import "testing"

func TestApplyDefaultsFillsZeroValues(t *testing.T) {
	cfg := Default()
	cfg.Settings.HardCeilingLOC = 0
	cfg.Settings.SoftFloorLOC = 0

	if err := NewValidator().ApplyDefaults(cfg); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if cfg.Settings.HardCeilingLOC != 1200 {
		t.Errorf("expected hard_ceiling_loc default 1200, got %d", cfg.Settings.HardCeilingLOC)
	}
	if cfg.Settings.SoftFloorLOC != 80 {
		t.Errorf("expected soft_floor_loc default 80, got %d", cfg.Settings.SoftFloorLOC)
	}
}

func TestApplyDefaultsRejectsInvertedFloorCeiling(t *testing.T) {
	cfg := Default()
	cfg.Settings.SoftFloorLOC = 2000
	cfg.Settings.HardCeilingLOC = 1000

	if err := NewValidator().ApplyDefaults(cfg); err == nil {
		t.Fatalf("expected error when soft_floor_loc exceeds hard_ceiling_loc")
	}
}

func TestApplyDefaultsRejectsNegativeTaxonomyMultiplier(t *testing.T) {
	cfg := Default()
	cfg.Taxonomy["broken"] = TaxonomyEntry{Multiplier: -1}

	if err := NewValidator().ApplyDefaults(cfg); err == nil {
		t.Fatalf("expected error for negative taxonomy multiplier")
	}
}
