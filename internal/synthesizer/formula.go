// Package synthesizer turns per-file metrics, taxonomy, and reachability
// into a priority-ordered plan of WorkUnits (spec.md §4.5). This file
// holds the dynamic size-budget arithmetic (drag, cohesion bonus,
// dynamic base, path-modifier, limit) exactly as spec.md §4.5
// specifies it. generate.go carries its own constants for the merge
// score steps and the reduced cluster drag.
package synthesizer

import (
	"math"
	"strings"

	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/types"
)

// PathComponentCount counts the directory segments in path (spec.md
// §4.5 depth_penalty input).
func PathComponentCount(path string) int {
	clean := strings.Trim(strings.ReplaceAll(path, "\\", "/"), "/")
	if clean == "" {
		return 0
	}
	return len(strings.Split(clean, "/"))
}

// DepthPenalty is spec.md §4.5's depth_penalty term.
func DepthPenalty(pathComponentCount, maxDepthThreshold int) float64 {
	over := pathComponentCount - maxDepthThreshold
	if over <= 0 {
		return 0
	}
	return float64(over) * 0.5
}

func safeDensity(numerator int, loc int) float64 {
	if loc == 0 {
		return 0
	}
	return float64(numerator) / float64(loc)
}

func safeDensityF(numerator float64, loc int) float64 {
	if loc == 0 {
		return 0
	}
	return numerator / float64(loc)
}

// Drag computes spec.md §4.5's drag term for one file. failureMult is
// state.DragMultiplier(path, content, now) (1.5 if the file failed
// within the last 24h and its content is unchanged since, else 1.0) —
// passed in so this package stays decoupled from internal/state.
func Drag(m types.CommonMetrics, path string, settings config.Settings, failureMult float64) float64 {
	density := safeDensity(m.LogicCount, m.LOC)
	complexityDensity := safeDensityF(m.ComplexityPenalty, m.LOC)
	stateDensity := safeDensity(m.StateCount, m.LOC)
	depthPenalty := DepthPenalty(PathComponentCount(path), settings.MaxDepthThreshold)

	base := 1 +
		float64(m.MaxNesting)*settings.NestingWeight +
		density*settings.DensityWeight +
		complexityDensity*20 +
		stateDensity*settings.StateWeight +
		depthPenalty
	return base * failureMult
}

// DepDensity is spec.md §4.5's dep_density term, needed separately from
// Drag for CohesionBonus.
func DepDensity(m types.CommonMetrics) float64 {
	return safeDensity(m.ExternalCalls, m.LOC)
}

// CohesionBonus is spec.md §4.5's cohesion_bonus term.
func CohesionBonus(depDensity float64) float64 {
	return 1 + math.Max(0, 0.5-depDensity)
}

// DynamicBase is spec.md §4.5's dynamic_base term.
func DynamicBase(settings config.Settings, projectAvgLOC float64) float64 {
	return float64(settings.BaseLOCLimit)*0.8 + projectAvgLOC*0.2
}

// PMod is spec.md §4.5's p_mod term: the role's taxonomy multiplier
// times the product of every matching exception's multiplier.
func PMod(taxonomyMultiplier float64, exceptions []config.Exception, path string) float64 {
	p := taxonomyMultiplier
	for _, exc := range exceptions {
		if exc.Multiplier != 0 && strings.Contains(path, exc.Pattern) {
			p *= exc.Multiplier
		}
	}
	return p
}

// PinnedMaxLOC returns the first matching exception's MaxLOC override
// and true, if any configured exception with a nonzero MaxLOC matches
// path by substring (spec.md §4.5 "pin limit to a fixed max_loc").
func PinnedMaxLOC(exceptions []config.Exception, path string) (int, bool) {
	for _, exc := range exceptions {
		if exc.MaxLOC != 0 && strings.Contains(path, exc.Pattern) {
			return exc.MaxLOC, true
		}
	}
	return 0, false
}

// Limit computes spec.md §4.5's limit term, clamped to
// [softFloor, hardCeiling] (P9).
func Limit(drag, pMod, cohesionBonus, dynamicBase float64, softFloor, hardCeiling int) float64 {
	raw := (dynamicBase * pMod * cohesionBonus) / math.Pow(drag, 0.75)
	clamped := math.Max(float64(softFloor), raw)
	return clamp(clamped, float64(softFloor), float64(hardCeiling))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
