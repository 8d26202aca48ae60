// Package synthesizer turns per-file metrics, taxonomy, and reachability
// into a priority-ordered plan of WorkUnits (spec.md §4.5). This file
// holds the generation pass: per-file checks (ambiguity, dead-code,
// de-bloat, violations), folder-level checks (recursive pods, shallow
// merges, structural flatten/vertical-slice), conflict + temporal
// locking, and the final emission ordering. Grounded line-for-line on
// original_source's main.rs Phase 3/4 synthesis loop, translated from
// its HashMap-of-tuples registry into the typed Registry/FileRecord
// model this rewrite uses throughout.
package synthesizer

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/standardbeagle/codehealth/internal/cluster"
	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/drivers"
	"github.com/standardbeagle/codehealth/internal/state"
	"github.com/standardbeagle/codehealth/internal/types"
)

// mergeCandidate holds one eligible file's folder-merge inputs, carried
// from the per-file pass into the folder-level pass and the vertical-
// slice check.
type mergeCandidate struct {
	path        string
	loc         int
	platform    types.Platform
	drag        float64
	clusterDrag float64
	pMod        float64
}

// Inputs bundles everything Generate needs from the earlier pipeline
// stages, kept here rather than as a long parameter list.
type Inputs struct {
	Registry    *types.Registry
	DeadFiles   []string
	Config      *config.Config
	State       *state.State
	Now         int64 // unix seconds; passed in so results are reproducible
}

// Generate runs the full synthesis pass and returns every work unit,
// already ordered per spec.md §4.5's "Emission ordering".
func Generate(in Inputs) []types.WorkUnit {
	reg := in.Registry
	cfg := in.Config

	deadSet := make(map[string]bool, len(in.DeadFiles))
	for _, f := range in.DeadFiles {
		deadSet[f] = true
	}

	paths := reg.Paths()
	sort.Strings(paths)

	dynamicBase := DynamicBase(cfg.Settings, projectAvgLOC(reg))

	var units []types.WorkUnit
	surgical := make(map[string]bool)

	var mergeEligible []mergeCandidate

	// --- Per-file pass ---
	for _, path := range paths {
		rec := reg.Files[path]
		m := rec.Metrics

		if rec.Role == types.RoleUnknown {
			units = append(units, types.NewAmbiguity(path, directiveFor(types.KindAmbiguity, "")))
		}

		taxonomyMult := 1.0
		if entry, ok := cfg.Taxonomy[rec.Role]; ok {
			taxonomyMult = entry.Multiplier
		}
		pMod := PMod(taxonomyMult, cfg.Exceptions, path)
		depDensity := DepDensity(m)
		cohesion := CohesionBonus(depDensity)
		failureMult := in.State.DragMultiplier(path, []byte(rec.Content), in.Now)
		drag := Drag(m, path, cfg.Settings, failureMult)

		var limit float64
		if pinned, ok := PinnedMaxLOC(cfg.Exceptions, path); ok {
			limit = math.Min(float64(pinned), float64(cfg.Settings.HardCeilingLOC))
		} else {
			limit = Limit(drag, pMod, cohesion, dynamicBase, cfg.Settings.SoftFloorLOC, cfg.Settings.HardCeilingLOC)
		}

		// Dead-code audit (any role, including unknown).
		if deadSet[path] && m.LOC > cfg.Settings.MinDeadCodeLOC {
			reason := fmt.Sprintf("Unreachable from every entry point (%d LOC).", m.LOC)
			units = append(units, types.NewSurgical(path, "Audit & Delete", reason, rec.Platform, 0,
				directiveFor(types.KindSurgical, reason)))
			surgical[path] = true
		} else if m.LOC > int(limit) && rec.Role != types.RoleUnknown {
			reason := deBloatReason(m, path, cfg.Settings, drag, limit)
			complexity := (float64(m.LOC)-limit)/10 + drag
			units = append(units, types.NewSurgical(path, "De-bloat", reason, rec.Platform, complexity,
				directiveFor(types.KindSurgical, reason)))
			surgical[path] = true
		}

		// Violations (any role).
		if profile, ok := cfg.Profiles[string(rec.Driver)]; ok {
			stripped := drivers.Strip(rec.Content, singleQuoteIsString(rec.Driver))
			for _, pattern := range drivers.MatchForbidden(stripped, profile.ForbiddenPatterns) {
				units = append(units, types.NewViolation(path, pattern, directiveFor(types.KindViolation, pattern)))
			}
		}

		// Merge eligibility: known role and not already surgical
		// (conflict locking — spec.md §4.5 "merge eligibility excludes
		// them"; generalized over every Surgical branch, not only
		// De-bloat, so P6 holds for every run).
		if rec.Role != types.RoleUnknown && !surgical[path] {
			mergeEligible = append(mergeEligible, mergeCandidate{
				path: path, loc: m.LOC, platform: rec.Platform,
				drag: drag, clusterDrag: ClusterDrag(m, cfg.Settings), pMod: pMod,
			})
		}
	}

	// --- Folder-level pass ---
	processedForMerge := make(map[string]bool)

	// Priority 1: recursive pods.
	var clusterInputs []cluster.FileInput
	for _, mc := range mergeEligible {
		rec := reg.Files[mc.path]
		clusterInputs = append(clusterInputs, cluster.FileInput{
			Path: mc.path, LOC: mc.loc, Drag: mc.clusterDrag,
			Platform: rec.Platform, Extension: strings.ToLower(filepath.Ext(mc.path)),
		})
	}
	pods := cluster.Detect(clusterInputs, cfg.Settings.HardCeilingLOC)
	sort.Slice(pods, func(i, j int) bool { return pods[i].Root < pods[j].Root })
	for _, pod := range pods {
		projected := Limit(pod.MaxDrag, 1.0, 1.0, dynamicBase, cfg.Settings.SoftFloorLOC, cfg.Settings.HardCeilingLOC)
		if float64(pod.TotalLOC) > projected {
			continue
		}
		platform := types.PlatformBackend
		if len(pod.Files) > 0 {
			platform = reg.Files[pod.Files[0]].Platform
		}
		for _, f := range pod.Files {
			processedForMerge[f] = true
		}
		reason := fmt.Sprintf("Recursive pod: %d files under %s sum to %d LOC (max drag %.2f).",
			len(pod.Files), pod.Root, pod.TotalLOC, pod.MaxDrag)
		units = append(units, types.NewMerge(pod.Root, pod.Files, reason, platform, directiveFor(types.KindMerge, "")))
	}

	// Priority 2: shallow folder merges, grouped by (directory, extension).
	type dirKey struct{ dir, ext string }
	dirGroups := make(map[dirKey][]mergeCandidate)
	var dirKeys []dirKey
	for _, mc := range mergeEligible {
		k := dirKey{filepath.ToSlash(filepath.Dir(mc.path)), strings.ToLower(filepath.Ext(mc.path))}
		if _, ok := dirGroups[k]; !ok {
			dirKeys = append(dirKeys, k)
		}
		dirGroups[k] = append(dirGroups[k], mc)
	}
	sort.Slice(dirKeys, func(i, j int) bool {
		if dirKeys[i].dir != dirKeys[j].dir {
			return dirKeys[i].dir < dirKeys[j].dir
		}
		return dirKeys[i].ext < dirKeys[j].ext
	})

	for _, k := range dirKeys {
		members := dirGroups[k]
		if in.State.IsLocked(k.dir, in.Now) {
			continue
		}

		var eligible []mergeCandidate
		for _, mc := range members {
			if !processedForMerge[mc.path] {
				eligible = append(eligible, mc)
			}
		}
		if len(eligible) < 2 {
			continue
		}

		total := 0
		maxDrag := 0.0
		minPMod := math.Inf(1)
		for _, mc := range eligible {
			total += mc.loc
			if mc.drag > maxDrag {
				maxDrag = mc.drag
			}
			if mc.pMod < minPMod {
				minPMod = mc.pMod
			}
		}
		safeDrag := maxDrag
		if safeDrag < 1.0 {
			safeDrag = 1.0
		}
		projected := Limit(safeDrag, minPMod, 1.0, dynamicBase, cfg.Settings.SoftFloorLOC, cfg.Settings.HardCeilingLOC)

		var score float64
		if float64(total) > projected {
			score = 0
		} else {
			score = mergeScore(len(eligible), total, cfg.Settings.HardCeilingLOC)
		}

		if score > cfg.Settings.MergeScoreThreshold {
			files := make([]string, len(eligible))
			for i, mc := range eligible {
				files[i] = mc.path
			}
			reason := fmt.Sprintf("Read-tax score %.2f exceeds the merge threshold (projected limit %.0f at drag %.2f).",
				score, projected, safeDrag)
			// Deliberately reads the platform of the pre-filter member
			// list's first entry, not the eligible set (original_source's
			// open question (a), kept as-is).
			units = append(units, types.NewMerge(k.dir, files, reason, members[0].platform, directiveFor(types.KindMerge, "")))
		}

		// Structural: flatten. Reads the same members[0] platform.
		depth := PathComponentCount(k.dir)
		if over := depth - cfg.Settings.MaxDepthThreshold; over > 0 {
			reason := fmt.Sprintf("Directory depth is %d components; flatten to reduce traversal cost.", depth)
			units = append(units, types.NewStructural(k.dir, "Flatten Hierarchy", reason, members[0].platform,
				directiveFor(types.KindStructural, "Flatten Hierarchy")))
		}
	}

	// Structural: vertical slice — same file stem in >2 paths across
	// >1 parent directory, restricted to the merge-eligible set with
	// stems longer than 3 characters.
	units = append(units, verticalSlices(mergeEligible)...)

	order(units)
	return units
}

func singleQuoteIsString(driver types.Driver) bool {
	return driver == types.DriverMarkup || driver == types.DriverStylesheet
}

func projectAvgLOC(reg *types.Registry) float64 {
	if len(reg.Files) == 0 {
		return 0
	}
	total := 0
	for _, rec := range reg.Files {
		total += rec.Metrics.LOC
	}
	return float64(total) / float64(len(reg.Files))
}

// ClusterDrag is the reduced drag term the recursive-pod detector uses
// to rank candidate subtrees: nesting, density, and pattern complexity
// only — no depth penalty, state density, or failure multiplier
// (original_source's main.rs recursive-cluster pass computes drag this
// way, distinct from the full per-file Drag used for de-bloat sizing
// and shallow merges).
func ClusterDrag(m types.CommonMetrics, settings config.Settings) float64 {
	density := safeDensity(m.LogicCount, m.LOC)
	complexityDensity := safeDensityF(m.ComplexityPenalty, m.LOC)
	return 1 + float64(m.MaxNesting)*settings.NestingWeight + density*settings.DensityWeight + complexityDensity*20
}

// mergeScore is spec.md §4.5's read_tax × context_utility score,
// grounded on original_source's consolidator.rs calculate_merge_score.
func mergeScore(fileCount, totalLOC, hardCeiling int) float64 {
	if fileCount < 2 {
		return 0
	}
	if float64(totalLOC) > float64(hardCeiling)*1.1 {
		return 0
	}
	readTax := float64(fileCount) * 0.5
	var utility float64
	switch {
	case totalLOC < 600:
		utility = 2.0
	case totalLOC < 1200:
		utility = 1.0
	default:
		utility = 0.2
	}
	return readTax * utility
}

func deBloatReason(m types.CommonMetrics, path string, settings config.Settings, drag, limit float64) string {
	nestingFactor := float64(m.MaxNesting) * settings.NestingWeight
	density := safeDensity(m.LogicCount, m.LOC)
	densityFactor := density * settings.DensityWeight
	coupling := safeDensity(m.ExternalCalls, m.LOC)

	reason := fmt.Sprintf("[Nesting: %.2f, Density: %.2f, Coupling: %.2f] | Drag: %.2f | LOC: %d/%.0f",
		nestingFactor, densityFactor, coupling, drag, m.LOC, limit)

	if m.HotspotSymbol != "" {
		cause := m.HotspotReason
		if cause == "" {
			cause = "complex logic"
		}
		reason = fmt.Sprintf("%s — hotspot: %s (%s)", reason, m.HotspotSymbol, cause)
	} else if m.HotspotStartLine > 0 {
		cause := m.HotspotReason
		reason = fmt.Sprintf("%s — hotspot: lines %d-%d (%s)", reason, m.HotspotStartLine, m.HotspotEndLine, cause)
	}
	return reason
}

func directiveFor(kind types.WorkUnitKind, detail string) string {
	switch kind {
	case types.KindAmbiguity:
		return "Add an explicit @efficiency-role: <role> header pragma so the analyzer can size this file correctly."
	case types.KindSurgical:
		lower := strings.ToLower(detail)
		hasNesting := strings.Contains(lower, "nesting")
		hasDensity := strings.Contains(lower, "density")
		switch {
		case hasNesting && hasDensity:
			return "Flatten control flow with guard clauses and extract dense logic into private helpers."
		case hasNesting:
			return "Replace nested conditionals with early returns or pattern matching."
		case hasDensity:
			return "Extract the dense logic into a focused sub-module."
		default:
			return "Reduce this file's size by extracting independent logic into its own module."
		}
	case types.KindMerge:
		return "Consolidate these fragmented files into one cohesive module to cut per-file read overhead."
	case types.KindStructural:
		if strings.Contains(detail, "Flatten") {
			return "Move these modules up one or two directory levels to reduce traversal depth."
		}
		return "Group the related files into a single feature-scoped folder."
	case types.KindViolation:
		return fmt.Sprintf("Replace the forbidden '%s' pattern with the profile's recommended alternative.", detail)
	}
	return ""
}
