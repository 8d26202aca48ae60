package types

import "sort"

// Platform distinguishes frontend from backend files for grouping and
// reporting purposes (spec.md §3 FileRecord).
type Platform string

const (
	PlatformFrontend Platform = "frontend"
	PlatformBackend  Platform = "backend"
)

// Driver identifies which per-file analyzer produced a FileRecord's
// CommonMetrics.
type Driver string

const (
	DriverStructural  Driver = "structural"
	DriverLexical     Driver = "lexical"
	DriverMarkup      Driver = "markup"
	DriverStylesheet  Driver = "stylesheet"
	DriverConfigFile  Driver = "configfile"
)

// FileRecord is the tuple of path, raw content, inferred role, metrics,
// platform, and driver tag described in spec.md §3.
type FileRecord struct {
	Path     string
	Content  string
	Role     string
	Metrics  CommonMetrics
	Platform Platform
	Driver   Driver
}

// Registry maps file paths to FileRecords, plus a stem index used by the
// resolver. Built once per run by Discovery and never mutated afterwards
// (spec.md §9 "Ownership of registry").
type Registry struct {
	Files map[string]*FileRecord
	Stems map[string][]string // file stem -> sorted, deduped paths
}

// NewRegistry returns an empty, initialized Registry.
func NewRegistry() *Registry {
	return &Registry{
		Files: make(map[string]*FileRecord),
		Stems: make(map[string][]string),
	}
}

// Add inserts a FileRecord and indexes its stem. Callers must not call Add
// after the registry has been handed to downstream stages.
func (r *Registry) Add(rec *FileRecord, stem string) {
	r.Files[rec.Path] = rec
	r.Stems[stem] = append(r.Stems[stem], rec.Path)
}

// Finalize sorts and deduplicates every stem's path list. Call once
// after discovery has added every file, before handing the registry to
// downstream stages (spec.md §9 "Ownership of registry").
func (r *Registry) Finalize() {
	for stem, paths := range r.Stems {
		sort.Strings(paths)
		deduped := paths[:0]
		var prev string
		for i, p := range paths {
			if i == 0 || p != prev {
				deduped = append(deduped, p)
			}
			prev = p
		}
		r.Stems[stem] = deduped
	}
}

// Paths returns all registered file paths, unordered.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.Files))
	for p := range r.Files {
		paths = append(paths, p)
	}
	return paths
}
