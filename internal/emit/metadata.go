package emit

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/standardbeagle/codehealth/internal/types"
)

// WriteMetadata dumps the full work-unit buffer to plans/metadata.json,
// mirroring spec.md §4.6's "serialized work-unit buffer" for downstream
// consumers.
func WriteMetadata(units []types.WorkUnit, dirs Dirs) error {
	if err := os.MkdirAll(dirs.PlansDir, 0o755); err != nil {
		return err
	}
	if units == nil {
		units = []types.WorkUnit{}
	}
	data, err := json.MarshalIndent(units, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dirs.PlansDir, "metadata.json"), data, 0o644)
}
