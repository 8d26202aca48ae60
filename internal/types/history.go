package types

// FileHistory is the persisted per-file state spec.md §3 describes:
// last action tag and timestamp, failure bookkeeping, and a stability
// score. One entry exists per file path that has ever failed or been
// acted upon; entries are created lazily (spec.md "Lifecycles").
type FileHistory struct {
	LastAction      string  `json:"last_action,omitempty"`
	LastActionEpoch int64   `json:"last_action_epoch,omitempty"`
	FailureCount    int     `json:"failure_count,omitempty"`
	LastFailureEpoch int64  `json:"last_failure_epoch,omitempty"`
	Stability       float64 `json:"stability"`

	// ContentHash is a SPEC_FULL addition (xxhash of the file's raw
	// content at the time of the last recorded failure) used to
	// detect whether a "recent failure" is still about the same content.
	ContentHash uint64 `json:"content_hash,omitempty"`
}

// ClampStability keeps Stability within [0,1] (spec.md §3 invariant).
func (h *FileHistory) ClampStability() {
	if h.Stability < 0 {
		h.Stability = 0
	}
	if h.Stability > 1 {
		h.Stability = 1
	}
}
