package emit

import (
	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/types"
)

// Run writes every output shape in one call: per-driver plans,
// metadata.json, the grouped + zombie-eliminated task files (spec.md
// §4.6, §6 "Outputs"), and the informational cycle report
// (SPEC_FULL.md §5). cycles may be nil when the caller has none to
// report.
func Run(units []types.WorkUnit, reg *types.Registry, cfg *config.Config, dirs Dirs, cycles [][]string) error {
	if err := WritePlans(units, reg, cfg, dirs); err != nil {
		return err
	}
	if err := WriteMetadata(units, dirs); err != nil {
		return err
	}
	if err := WriteCycleReport(cycles, dirs.PlansDir); err != nil {
		return err
	}
	return SyncTasks(units, reg, cfg, dirs)
}
