package drivers

import "strings"

// ScorePenalty computes complexity_penalty = Σ (occurrences × weight)
// over a driver's complexity_dictionary (spec.md §4.1: "All drivers add
// complexity_penalty from a driver-specific weighted-pattern dictionary").
// Counting runs over the stripped source so comment/string text can never
// contribute.
func ScorePenalty(strippedSrc string, dictionary map[string]float64) float64 {
	var penalty float64
	for pattern, weight := range dictionary {
		if pattern == "" {
			continue
		}
		penalty += float64(strings.Count(strippedSrc, pattern)) * weight
	}
	return penalty
}

// MatchForbidden returns the subset of patterns present in strippedSrc,
// in the order given, for the synthesizer to emit one Violation per
// match (spec.md §4.5: "If any forbidden pattern for the driver is
// present in stripped source: emit Violation per matching pattern").
func MatchForbidden(strippedSrc string, patterns []string) []string {
	var hits []string
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(strippedSrc, pattern) {
			hits = append(hits, pattern)
		}
	}
	return hits
}

// CountNonBlankLines implements the `loc` fallback every driver uses
// when a richer count isn't available (and the sole definition the
// structural driver falls back to on a parse failure, spec.md §4.1.1).
func CountNonBlankLines(src string) int {
	count := 0
	inLine := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\n' {
			if inLine {
				count++
			}
			inLine = false
			continue
		}
		if c != ' ' && c != '\t' && c != '\r' {
			inLine = true
		}
	}
	if inLine {
		count++
	}
	return count
}
