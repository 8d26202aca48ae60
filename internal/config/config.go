// Package config loads and validates the analyzer's JSON configuration
// document (spec.md §6): scanned roots, entry points, scoring settings,
// task templates, exclusion rules, per-driver pattern profiles, taxonomy
// multipliers, exceptions, and protected patterns.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	cherrors "github.com/standardbeagle/codehealth/internal/errors"
)

// Config is the fully decoded, validated, defaulted configuration
// document. Field names mirror the JSON keys named in spec.md §6.
type Config struct {
	ScannedRoots      []string                 `json:"scanned_roots"`
	EntryPoints       []string                 `json:"entry_points"`
	Settings          Settings                 `json:"settings"`
	Templates         Templates                `json:"templates"`
	ExclusionRules    ExclusionRules           `json:"exclusion_rules"`
	Profiles          map[string]Profile       `json:"profiles"`
	Taxonomy          map[string]TaxonomyEntry `json:"taxonomy"`
	Exceptions        []Exception              `json:"exceptions"`
	ProtectedPatterns []string                 `json:"protected_patterns"`

	// ConfigDir is the directory the config file was loaded from; relative
	// scanned_roots are resolved against it. Not part of the JSON document.
	ConfigDir string `json:"-"`
}

// Settings holds the ten named thresholds the synthesizer's drag/limit
// arithmetic reads from (spec.md §4.5). No magic numbers are permitted in
// synthesis logic — every threshold in that formula traces back here.
type Settings struct {
	MinDeadCodeLOC      int     `json:"min_dead_code_loc"`
	BaseLOCLimit        int     `json:"base_loc_limit"`
	HardCeilingLOC      int     `json:"hard_ceiling_loc"`
	SoftFloorLOC        int     `json:"soft_floor_loc"`
	MergeScoreThreshold float64 `json:"merge_score_threshold"`
	NestingWeight       float64 `json:"nesting_weight"`
	DensityWeight       float64 `json:"density_weight"`
	DragTarget          float64 `json:"drag_target"`
	StateWeight         float64 `json:"state_weight"`
	MaxDepthThreshold   int     `json:"max_depth_threshold"`
}

// Templates holds the per-category task-body format strings. The emit
// package substitutes their placeholders, not this one: every named
// placeholder in the legend, {roles} in the ambiguity objective,
// {nesting_w}/{density_w}/{drag_t} in the surgical objective, and
// {merge_t} in the merge objective. The violation and structural
// objectives, and any other placeholder such as {file}, are written as-is.
type Templates struct {
	Legend              string `json:"legend"`
	SurgicalObjective   string `json:"surgical_objective"`
	ViolationObjective  string `json:"violation_objective"`
	StructuralObjective string `json:"structural_objective"`
	MergeObjective      string `json:"merge_objective"`
	AmbiguityObjective  string `json:"ambiguity_objective"`
}

// ExclusionRules controls discovery's tree walk. Folders match by
// substring, Files by exact basename, Extensions by suffix.
type ExclusionRules struct {
	Folders    []string `json:"folders"`
	Files      []string `json:"files"`
	Extensions []string `json:"extensions"`
}

// Profile is a driver's pattern-penalty dictionary and forbidden-pattern
// list, keyed by driver name in Config.Profiles (spec.md §4.1, §4.5).
type Profile struct {
	ComplexityDictionary map[string]float64 `json:"complexity_dictionary"`
	ForbiddenPatterns    []string           `json:"forbidden_patterns"`
}

// TaxonomyEntry maps a role name to its size-budget multiplier.
type TaxonomyEntry struct {
	Multiplier float64 `json:"multiplier"`
	Desc       string  `json:"desc,omitempty"`
}

// Exception pins or scales the computed limit for paths matching Pattern
// (a plain substring, per spec.md §4.5).
type Exception struct {
	Pattern    string  `json:"pattern"`
	MaxLOC     int     `json:"max_loc,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
}

// defaultScannedRoots is applied when scanned_roots is absent (spec.md §6).
var defaultScannedRoots = []string{"../../"}

// Load reads, validates, and defaults the configuration document at path.
// A missing file is not an error: spec.md §7 treats config load failure as
// fatal only when the document exists but is malformed, so a caller that
// wants zero-config operation can point Load at a nonexistent path and
// receive built-in defaults.
func Load(path string) (*Config, error) {
	dir := filepath.Dir(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		cfg.ConfigDir = dir
		return cfg, nil
	}
	if err != nil {
		return nil, cherrors.NewConfigError(path, err)
	}

	if err := ValidateSchema(data); err != nil {
		return nil, cherrors.NewConfigError(path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, cherrors.NewConfigError(path, err)
	}
	cfg.ConfigDir = dir

	if err := NewValidator().ApplyDefaults(cfg); err != nil {
		return nil, cherrors.NewConfigError(path, err)
	}

	cfg.enrichExclusionsWithBuildArtifacts()

	return cfg, nil
}

// Default returns a Config populated with spec.md's documented defaults
// and the analyzer's own conservative exclusion set, before any
// user-supplied document is merged in.
func Default() *Config {
	return &Config{
		ScannedRoots: append([]string{}, defaultScannedRoots...),
		EntryPoints:  []string{},
		Settings: Settings{
			MinDeadCodeLOC:      20,
			BaseLOCLimit:        400,
			HardCeilingLOC:      1200,
			SoftFloorLOC:        80,
			MergeScoreThreshold: 1.0,
			NestingWeight:       1.0,
			DensityWeight:       1.0,
			DragTarget:          1.0,
			StateWeight:         1.0,
			MaxDepthThreshold:   6,
		},
		Templates: Templates{
			Legend:              "Legend: {nesting_w} nesting, {density_w} density, {drag_t} drag target, {merge_t} merge threshold. Roles: {roles}.",
			SurgicalObjective:   "Reduce {file} below its dynamic budget.",
			ViolationObjective:  "Remove the forbidden pattern from {file}.",
			StructuralObjective: "Restructure {file} to reduce directory depth.",
			MergeObjective:      "Consolidate the files in {file} into one cohesive unit.",
			AmbiguityObjective:  "Assign an explicit taxonomy role to {file}.",
		},
		ExclusionRules: ExclusionRules{
			Folders: []string{
				".git", "node_modules", "vendor", "dist", "build", "target", "bin", "obj", "__pycache__",
			},
			Files:      []string{},
			Extensions: []string{".min.js", ".min.css"},
		},
		Profiles:          map[string]Profile{},
		Taxonomy:          map[string]TaxonomyEntry{},
		Exceptions:        []Exception{},
		ProtectedPatterns: []string{},
	}
}

// enrichExclusionsWithBuildArtifacts appends folder names inferred from
// language-specific build manifests (package.json, tsconfig.json,
// Cargo.toml, pyproject.toml) to ExclusionRules.Folders, deduplicated.
func (c *Config) enrichExclusionsWithBuildArtifacts() {
	if c.ConfigDir == "" {
		return
	}
	detector := NewBuildArtifactDetector(c.ConfigDir)
	detected := detector.DetectOutputFolders()
	if len(detected) == 0 {
		return
	}
	c.ExclusionRules.Folders = DeduplicatePatterns(append(c.ExclusionRules.Folders, detected...))
}
