// Package pipeline wires every analyzer stage into one ordered run:
// config + state load, discovery, dependency resolution, graph
// construction, reachability, cluster detection (inside Generate),
// synthesis, and emission (spec.md §2). Grounded on
// original_source/_dev-system/analyzer/src/main.rs's top-level `main`
// function, which runs exactly this sequence against its own
// HashMap-keyed registry; this rewrite threads the same stages through
// the typed Registry/DependencyGraph this module uses throughout.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/discovery"
	"github.com/standardbeagle/codehealth/internal/emit"
	cherrors "github.com/standardbeagle/codehealth/internal/errors"
	"github.com/standardbeagle/codehealth/internal/graph"
	"github.com/standardbeagle/codehealth/internal/resolver"
	"github.com/standardbeagle/codehealth/internal/state"
	"github.com/standardbeagle/codehealth/internal/synthesizer"
	"github.com/standardbeagle/codehealth/internal/types"
)

// Options bundles every filesystem location and runtime input the
// pipeline needs; everything else (scanned roots, thresholds, taxonomy)
// lives inside the loaded Config.
type Options struct {
	ConfigPath      string
	StatePath       string
	MapDocumentPath string // optional; empty skips external map parsing
	PlansDir        string
	TasksDir        string
	RootOverride    string // optional; replaces the loaded config's ScannedRoots when set
	Now             int64  // unix seconds, supplied by the caller for reproducibility
}

// Result surfaces everything downstream tooling (or tests) might want
// to inspect after a run, beyond the files already written to disk.
type Result struct {
	Registry           *types.Registry
	Units              []types.WorkUnit
	DeadFiles          []string
	Cycles             [][]string
	MissingEntryPoints []string
}

// Run executes the full pipeline and returns once every output file has
// been written (spec.md §2's eight stages).
func Run(opts Options) (*Result, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err // already a *cherrors.ConfigError
	}
	if opts.RootOverride != "" {
		abs, err := filepath.Abs(opts.RootOverride)
		if err != nil {
			return nil, cherrors.NewConfigError("root", err)
		}
		cfg.ScannedRoots = []string{abs}
	}

	st, err := state.Load(opts.StatePath)
	if err != nil {
		return nil, cherrors.NewStateError(opts.StatePath, err)
	}

	reg, err := discovery.New(cfg).Run()
	if err != nil {
		return nil, err // already a *cherrors.DriverError
	}

	res := resolver.New(reg.Stems)
	g := buildGraph(reg, res)

	mappedPaths := loadMapDocument(opts.MapDocumentPath, cfg)
	entries, missingConfigured := graph.EntryPoints(reg, cfg, mappedPaths)

	allFiles := reg.Paths()
	sort.Strings(allFiles)
	dead := graph.DeadFiles(g, allFiles, entries)
	cycles := graph.FindCycles(g, allFiles) // diagnostics only; never fed to the synthesizer

	units := synthesizer.Generate(synthesizer.Inputs{
		Registry:  reg,
		DeadFiles: dead,
		Config:    cfg,
		State:     st,
		Now:       opts.Now,
	})

	dirs := emit.Dirs{PlansDir: opts.PlansDir, TasksDir: opts.TasksDir}
	if err := emit.Run(units, reg, cfg, dirs, cycles); err != nil {
		return nil, cherrors.NewEmitError(opts.PlansDir, err)
	}

	if err := st.Save(opts.StatePath); err != nil {
		return nil, cherrors.NewStateError(opts.StatePath, err)
	}

	return &Result{
		Registry:           reg,
		Units:              units,
		DeadFiles:          dead,
		Cycles:             cycles,
		MissingEntryPoints: missingConfigured,
	}, nil
}

// buildGraph resolves every file's raw Dependencies strings against the
// registry's stem index and records one edge per resolved target
// (spec.md §4.2/§4.3; original_source's main.rs Phase 2 resolution
// loop).
func buildGraph(reg *types.Registry, res *resolver.Resolver) *types.DependencyGraph {
	g := types.NewDependencyGraph()
	paths := reg.Paths()
	sort.Strings(paths)
	for _, path := range paths {
		rec := reg.Files[path]
		for _, dep := range rec.Metrics.Dependencies {
			for _, target := range res.Resolve(dep) {
				if target != path {
					g.AddEdge(path, target)
				}
			}
		}
	}
	return g
}

// loadMapDocument reads and parses the optional external map document
// (spec.md §4.3/§6). A missing or unreadable document is not an error:
// the map document is one of four entry-point sources, not a required
// one.
func loadMapDocument(path string, cfg *config.Config) []string {
	if path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	root := cfg.ConfigDir
	if root == "" {
		root = "."
	}
	projectRootName := filepath.Base(filepath.Clean(root))
	return graph.ParseMapDocument(string(content), projectRootName)
}

// SummarizeMissingEntryPoints renders a human-readable warning line for
// every configured entry point that did not resolve to a registry file,
// for the CLI to print without failing the run (spec.md §7 "missing
// entry points are logged but do not fail the run").
func SummarizeMissingEntryPoints(missing []string) []string {
	lines := make([]string, len(missing))
	for i, m := range missing {
		lines[i] = fmt.Sprintf("configured entry point not found: %s", m)
	}
	return lines
}
