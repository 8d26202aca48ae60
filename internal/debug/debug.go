// Package debug provides gated, component-tagged logging for the
// analyzer pipeline. Adapted from the teacher's internal/debug package:
// MCPMode (protocol-compliance suppression) is dropped since there is no
// MCP surface in this tool; a Quiet flag plays the equivalent role for
// the CLI's --quiet flag.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// EnableDebug can be flipped at build time:
//
//	go build -ldflags "-X github.com/standardbeagle/codehealth/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// Quiet suppresses all output (debug and progress) when set, mirroring
// the CLI's --quiet flag.
var Quiet = false

var (
	output io.Writer = os.Stderr
	mu      sync.Mutex
)

// SetOutput redirects debug/progress output. Pass nil to discard it.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// IsDebugEnabled reports whether debug-level logging is active.
func IsDebugEnabled() bool {
	if Quiet {
		return false
	}
	if EnableDebug == "true" {
		return true
	}
	v := os.Getenv("DEBUG")
	return v == "1" || v == "true"
}

// Printf writes a debug line when debug logging is enabled.
func Printf(format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
}

// Log writes a component-tagged debug line.
func Log(component, format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}

// Progress writes a one-line progress update unless Quiet is set. Unlike
// Printf/Log this is not gated on debug mode — it is the pipeline's
// normal "stage N of M" narration.
func Progress(format string, args ...interface{}) {
	if Quiet {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Fatal formats a fatal error for a caller to return; it never exits the
// process itself so pipeline code stays testable (spec.md §7 "no panics
// permitted outside start-up config validation").
func Fatal(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if !Quiet {
		if w := writer(); w != nil {
			fmt.Fprintf(w, "[FATAL] %s\n", msg)
		}
	}
	return fmt.Errorf("fatal: %s", msg)
}
