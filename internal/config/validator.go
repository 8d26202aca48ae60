package config

import "fmt"

// Validator applies smart defaults to a decoded Config and checks the
// invariants a config must hold before the pipeline can trust it
// (spec.md §7: "no panics are permitted outside of start-up config
// validation" — this is where that validation happens).
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ApplyDefaults fills in zero-valued settings with sane defaults and
// checks the invariants the synthesizer's drag/limit formula depends on
// (spec.md §4.5): soft_floor_loc must not exceed hard_ceiling_loc, and
// every weight must be non-negative.
func (v *Validator) ApplyDefaults(cfg *Config) error {
	if len(cfg.ScannedRoots) == 0 {
		cfg.ScannedRoots = append([]string{}, defaultScannedRoots...)
	}

	s := &cfg.Settings
	if s.BaseLOCLimit == 0 {
		s.BaseLOCLimit = 400
	}
	if s.HardCeilingLOC == 0 {
		s.HardCeilingLOC = 1200
	}
	if s.SoftFloorLOC == 0 {
		s.SoftFloorLOC = 80
	}
	if s.MaxDepthThreshold == 0 {
		s.MaxDepthThreshold = 6
	}
	if s.NestingWeight == 0 {
		s.NestingWeight = 1.0
	}
	if s.DensityWeight == 0 {
		s.DensityWeight = 1.0
	}
	if s.DragTarget == 0 {
		s.DragTarget = 1.0
	}
	if s.StateWeight == 0 {
		s.StateWeight = 1.0
	}
	if s.MergeScoreThreshold == 0 {
		s.MergeScoreThreshold = 1.0
	}

	if s.SoftFloorLOC > s.HardCeilingLOC {
		return fmt.Errorf("settings.soft_floor_loc (%d) exceeds settings.hard_ceiling_loc (%d)", s.SoftFloorLOC, s.HardCeilingLOC)
	}
	if s.NestingWeight < 0 || s.DensityWeight < 0 || s.StateWeight < 0 {
		return fmt.Errorf("settings weights must be non-negative")
	}

	for role, entry := range cfg.Taxonomy {
		if entry.Multiplier < 0 {
			return fmt.Errorf("taxonomy[%s].multiplier must be non-negative, got %v", role, entry.Multiplier)
		}
	}

	return nil
}
