// Package discovery walks scanned_roots, applies exclusion_rules and
// the ignore pragma, dispatches each remaining file to its driver
// family, and assembles the Registry (spec.md §2 stage 2, §3
// "Registry"). Grounded on original_source's discovery loop
// (_dev-system/analyzer/src/main.rs's `for entry in WalkDir::new(...)`
// block): read file, skip on ignore pragma, infer taxonomy, dispatch by
// extension, insert into the registry keyed by path plus a stem index.
package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/debug"
	"github.com/standardbeagle/codehealth/internal/drivers/configfile"
	"github.com/standardbeagle/codehealth/internal/drivers/lexical"
	"github.com/standardbeagle/codehealth/internal/drivers/markup"
	"github.com/standardbeagle/codehealth/internal/drivers/stylesheet"
	"github.com/standardbeagle/codehealth/internal/drivers/structural"
	cherrors "github.com/standardbeagle/codehealth/internal/errors"
	"github.com/standardbeagle/codehealth/internal/taxonomy"
	"github.com/standardbeagle/codehealth/internal/types"
)

// backendExtensions generalizes original_source's `ext == "rs"` platform
// rule to every backend-typed structural-family extension (spec.md §3
// FileRecord platform tag; SPEC_FULL.md §7 extension table).
var backendExtensions = map[string]bool{
	".go": true, ".rs": true, ".cs": true, ".java": true,
	".cpp": true, ".hpp": true, ".cc": true, ".zig": true,
}

// Discovery owns the stateful structural driver (tree-sitter parser
// cache) across the whole walk and produces one Registry per run.
type Discovery struct {
	cfg        *config.Config
	assigner   *taxonomy.Assigner
	structural *structural.Driver
}

// New builds a Discovery bound to cfg's scanned roots, exclusion rules,
// profiles, and taxonomy.
func New(cfg *config.Config) *Discovery {
	return &Discovery{
		cfg:        cfg,
		assigner:   taxonomy.NewAssigner(toTaxonomyRoles(cfg.Taxonomy)),
		structural: structural.New(),
	}
}

func toTaxonomyRoles(taxonomy map[string]config.TaxonomyEntry) map[string]types.TaxonomyRole {
	roles := make(map[string]types.TaxonomyRole, len(taxonomy))
	for name, entry := range taxonomy {
		roles[name] = types.TaxonomyRole{Name: name, Multiplier: entry.Multiplier, Desc: entry.Desc}
	}
	return roles
}

// Run walks every scanned root and returns a finalized Registry.
func (d *Discovery) Run() (*types.Registry, error) {
	registry := types.NewRegistry()

	for _, root := range d.cfg.ScannedRoots {
		resolved := d.resolveRoot(root)
		if err := filepath.WalkDir(resolved, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				// A single unreadable directory entry does not fail the
				// run (spec.md §7 non-fatal discovery errors).
				return nil
			}
			if entry.IsDir() {
				return nil
			}
			d.visit(registry, path)
			return nil
		}); err != nil {
			return nil, cherrors.NewDriverError(resolved, "discovery", err)
		}
	}

	registry.Finalize()
	return registry, nil
}

func (d *Discovery) resolveRoot(root string) string {
	if filepath.IsAbs(root) {
		return filepath.Clean(root)
	}
	base := d.cfg.ConfigDir
	if base == "" {
		base = "."
	}
	return filepath.Clean(filepath.Join(base, root))
}

func (d *Discovery) visit(registry *types.Registry, path string) {
	relPath := d.relativePath(path)
	if d.cfg.ExclusionRules.MatchesAny(relPath) {
		return
	}

	ext := strings.ToLower(filepath.Ext(path))
	driver, ok := driverFor(ext)
	if !ok {
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		debug.Log("discovery", "unreadable file %s: %v", relPath, err)
		return
	}

	assignment := d.assigner.Assign(relPath, string(content))
	if assignment.Ignored {
		return
	}

	dictionary := d.cfg.Profiles[string(driver)].ComplexityDictionary
	metrics := d.analyze(driver, path, content, dictionary)

	rec := &types.FileRecord{
		Path:     relPath,
		Content:  string(content),
		Role:     assignment.Role,
		Metrics:  metrics,
		Platform: platformFor(relPath, ext),
		Driver:   driver,
	}
	registry.Add(rec, stem(path))
}

func (d *Discovery) relativePath(path string) string {
	base := d.cfg.ConfigDir
	if base == "" {
		base = "."
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (d *Discovery) analyze(driver types.Driver, path string, content []byte, dictionary map[string]float64) types.CommonMetrics {
	switch driver {
	case types.DriverStructural:
		return d.structural.Analyze(path, content, dictionary)
	case types.DriverLexical:
		return lexical.Analyze(path, content, dictionary)
	case types.DriverMarkup:
		return markup.Analyze(path, content, dictionary)
	case types.DriverStylesheet:
		return stylesheet.Analyze(path, content, dictionary)
	case types.DriverConfigFile:
		return configfile.Analyze(path, content, dictionary)
	}
	return types.CommonMetrics{}
}

// driverFor returns the driver family that owns ext, per the
// authoritative extension table (SPEC_FULL.md §7).
func driverFor(ext string) (types.Driver, bool) {
	for _, e := range structural.Extensions() {
		if e == ext {
			return types.DriverStructural, true
		}
	}
	for _, e := range lexical.Extensions() {
		if e == ext {
			return types.DriverLexical, true
		}
	}
	for _, e := range markup.Extensions() {
		if e == ext {
			return types.DriverMarkup, true
		}
	}
	for _, e := range stylesheet.Extensions() {
		if e == ext {
			return types.DriverStylesheet, true
		}
	}
	for _, e := range configfile.Extensions() {
		if e == ext {
			return types.DriverConfigFile, true
		}
	}
	return "", false
}

func platformFor(relPath, ext string) types.Platform {
	if strings.Contains(relPath, "backend") {
		return types.PlatformBackend
	}
	if backendExtensions[ext] {
		return types.PlatformBackend
	}
	return types.PlatformFrontend
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
