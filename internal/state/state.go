// Package state persists the analyzer's cross-run memory: one
// FileHistory entry per file that has ever failed or been acted upon
// (spec.md §3, §5). Grounded on original_source's
// _dev-system/analyzer/src/state.rs AnalyzerState, translated from its
// dirty-flag/OpenOptions idiom into Go's write-truncate-rename
// discipline (spec.md §5 "under a write-truncate-rename discipline").
package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/standardbeagle/codehealth/internal/types"
)

const (
	failureWindowSeconds = 86400 // 1.5x drag if failed within 24h (state.rs get_drag_multiplier)
	lockWindowSeconds    = 3600  // directory/file frozen for 1h after an action (state.rs is_locked)
)

// State is the persisted snapshot: one FileHistory per file path that
// has ever failed or been acted on. Entries are created lazily.
type State struct {
	Files map[string]*types.FileHistory `json:"files"`

	dirty bool
}

// Load reads the snapshot at path. A missing file is not an error: it
// yields an empty, zero-value State (spec.md §5 "read once at start").
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return New(), nil
	}
	if s.Files == nil {
		s.Files = make(map[string]*types.FileHistory)
	}
	return &s, nil
}

// New returns an empty State.
func New() *State {
	return &State{Files: make(map[string]*types.FileHistory)}
}

// Save writes the snapshot to path under a write-truncate-rename
// discipline: write to a sibling temp file, then atomically rename it
// over the destination, so a process killed mid-write leaves the prior
// snapshot intact (spec.md §5's "idempotently regenerated" guarantee;
// no file is ever left half-written at the final path).
func (s *State) Save(path string) error {
	if !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".analyzer_state-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}

// ContentHash fingerprints raw file content for FileHistory.ContentHash
// (SPEC_FULL addition, spec.md §9's dependency table row for
// cespare/xxhash/v2).
func ContentHash(content []byte) uint64 {
	return xxhash.Sum64(content)
}

func (s *State) entry(path string) *types.FileHistory {
	h, ok := s.Files[path]
	if !ok {
		h = &types.FileHistory{}
		s.Files[path] = h
	}
	return h
}

// MarkFailure records a failed action against path: increments the
// failure count, stamps the failure time, drops stability by 0.2
// clamped to the [0,1] floor, and records the content's fingerprint
// (state.rs mark_failure, with the content-hash addition).
func (s *State) MarkFailure(path string, content []byte, now int64) {
	h := s.entry(path)
	h.FailureCount++
	h.LastFailureEpoch = now
	h.Stability -= 0.2
	h.ClampStability()
	h.ContentHash = ContentHash(content)
	s.dirty = true
}

// RecordAction records a completed action against path: stamps the
// action name and time, and resets stability to 0.5 (state.rs
// record_action).
func (s *State) RecordAction(path, action string, now int64) {
	h := s.entry(path)
	h.LastAction = action
	h.LastActionEpoch = now
	h.Stability = 0.5
	h.ClampStability()
	s.dirty = true
}

// DragMultiplier is spec.md §4.5's failure_mult: 1.5 if path failed
// within the last 24h, else 1.0 (state.rs get_drag_multiplier). content
// is the file's current raw bytes: SPEC_FULL.md §4's content-hash
// addition makes a stale failure record inert the moment the file's
// content changes, rather than waiting out the 24h window, since a
// changed file most likely already had its failing condition addressed.
func (s *State) DragMultiplier(path string, content []byte, now int64) float64 {
	h, ok := s.Files[path]
	if !ok || h.LastFailureEpoch == 0 {
		return 1.0
	}
	if h.ContentHash != 0 && h.ContentHash != ContentHash(content) {
		return 1.0
	}
	if now-h.LastFailureEpoch < failureWindowSeconds {
		return 1.5
	}
	return 1.0
}

// IsLocked reports whether path was acted on within the last hour
// (state.rs is_locked). path may be a file or a directory: FileHistory
// entries are keyed by whatever path an action was recorded against,
// so a Merge unit's completion recording RecordAction(folder, ...)
// makes this double as the "is this directory temporally locked" check
// spec.md §4.5 requires before a shallow folder merge.
func (s *State) IsLocked(path string, now int64) bool {
	h, ok := s.Files[path]
	if !ok || h.LastActionEpoch == 0 {
		return false
	}
	return now-h.LastActionEpoch < lockWindowSeconds
}
