// Package errors defines typed errors for the analyzer pipeline so
// callers can distinguish fatal from recoverable failures (spec.md §7)
// instead of matching on formatted strings.
package errors

import (
	"fmt"
	"time"
)

// ErrorType classifies where in the pipeline an error originated.
type ErrorType string

const (
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeDriver   ErrorType = "driver"
	ErrorTypeResolver ErrorType = "resolver"
	ErrorTypeState    ErrorType = "state"
	ErrorTypeEmit     ErrorType = "emit"
	ErrorTypeDiscover ErrorType = "discover"
)

// ConfigError wraps a configuration load/validation failure. Always
// fatal per spec.md §7.
type ConfigError struct {
	Field      string
	Underlying error
	Timestamp  time.Time
}

func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Underlying: err, Timestamp: time.Now()}
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %v", e.Underlying)
	}
	return fmt.Sprintf("config field %q: %v", e.Field, e.Underlying)
}

func (e *ConfigError) Unwrap() error { return e.Underlying }

// DriverError wraps a per-file analysis failure. Structural driver parse
// failures are recovered internally and never surface as a DriverError.
// Discovery wraps a tree-walk failure in it and returns it to the
// caller; an unreadable file is logged and skipped without one.
type DriverError struct {
	Path       string
	Driver     string
	Underlying error
}

func NewDriverError(path, driver string, err error) *DriverError {
	return &DriverError{Path: path, Driver: driver, Underlying: err}
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("driver %s failed for %s: %v", e.Driver, e.Path, e.Underlying)
}

func (e *DriverError) Unwrap() error { return e.Underlying }

// ResolverError is never returned by the resolver itself (a miss is
// silent per spec.md §4.2/§7); it exists for malformed resolver input
// (e.g. a nil registry) which is a programming error, not a data error.
type ResolverError struct {
	Dep        string
	Underlying error
}

func NewResolverError(dep string, err error) *ResolverError {
	return &ResolverError{Dep: dep, Underlying: err}
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("resolver: dependency %q: %v", e.Dep, e.Underlying)
}

func (e *ResolverError) Unwrap() error { return e.Underlying }

// StateError wraps a failure to persist the FileHistory snapshot.
// Surfaced to the caller but not fatal: analysis output is already on
// disk by the time state is written (spec.md §7).
type StateError struct {
	Path       string
	Underlying error
}

func NewStateError(path string, err error) *StateError {
	return &StateError{Path: path, Underlying: err}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state write to %s failed: %v", e.Path, e.Underlying)
}

func (e *StateError) Unwrap() error { return e.Underlying }

// EmitError wraps a failure writing a plan/task/metadata file.
type EmitError struct {
	Path       string
	Underlying error
}

func NewEmitError(path string, err error) *EmitError {
	return &EmitError{Path: path, Underlying: err}
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("emit %s failed: %v", e.Path, e.Underlying)
}

func (e *EmitError) Unwrap() error { return e.Underlying }

// MultiError aggregates independent per-file failures so a run can
// report all of them without aborting after the first (spec.md §7
// "each file's failures are localized").
type MultiError struct {
	Errors []error
}

func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return &MultiError{Errors: filtered}
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred (first: %v)", len(e.Errors), e.Errors[0])
}

func (e *MultiError) Unwrap() []error { return e.Errors }
