package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteCycleReport renders the diagnostics-only cycle list (found by
// internal/graph.FindCycles) to plans/CYCLES.md (SPEC_FULL.md §5). This
// file is never read by the synthesizer — it exists purely so a human
// reviewing the plans directory can see what the cycle detector found.
func WriteCycleReport(cycles [][]string, plansDir string) error {
	if err := os.MkdirAll(plansDir, 0o755); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("# Dependency Cycles\n\n")
	if len(cycles) == 0 {
		b.WriteString("No cycles detected.\n")
	} else {
		fmt.Fprintf(&b, "%d cycle(s) detected. Informational only; not used by the synthesizer.\n\n", len(cycles))
		for _, cycle := range cycles {
			b.WriteString("- " + strings.Join(cycle, " -> ") + "\n")
		}
	}

	return os.WriteFile(filepath.Join(plansDir, "CYCLES.md"), []byte(b.String()), 0o644)
}
