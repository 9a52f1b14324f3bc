package workspace

import (
	"errors"
	"fmt"
)

// Sentinel errors forming this engine's error taxonomy. They are matched
// with errors.Is; strategies wrap them with context via fmt.Errorf("%w", ...)
// or github.com/pkg/errors where a cause chain needs preserving.
var (
	// ErrNotFound indicates a source file is missing. Non-fatal: the
	// engine records a warning and skips the affected file group.
	ErrNotFound = errors.New("source file not found")

	// ErrIntegrityMismatch indicates a post-materialization hash check
	// failed. Fatal only for the hybrid strategy's essential files;
	// otherwise recorded as a warning.
	ErrIntegrityMismatch = errors.New("materialized content does not match expected hash")

	// ErrCapabilityUnsupported indicates a strategy requested a primitive
	// the platform refused (symlink without privilege, hard link across
	// volumes). Strategies with a built-in fallback handle it silently;
	// strict strategies surface it as fatal.
	ErrCapabilityUnsupported = errors.New("required filesystem capability is unsupported on this host")

	// ErrSourceUnreadable indicates an I/O error reading a source file,
	// distinct from ErrNotFound (the file exists but could not be read).
	ErrSourceUnreadable = errors.New("unable to read source file")

	// ErrPreparationAborted indicates an unrecoverable condition during
	// scheduling, unrelated to any single file.
	ErrPreparationAborted = errors.New("workspace preparation aborted")
)

// CasStorageError wraps the underlying cause when a ContentAddressable file
// could not be materialized after every fallback in the CAS dispatch chain
// (specialized CAS primitive, direct hard link, direct copy) has been
// exhausted.
type CasStorageError struct {
	Hash  string
	Cause error
}

// Error implements the error interface.
func (e *CasStorageError) Error() string {
	return fmt.Sprintf("unable to materialize CAS object %s after all fallbacks: %v", e.Hash, e.Cause)
}

// Unwrap allows errors.Is/errors.As to see through to the underlying cause.
func (e *CasStorageError) Unwrap() error {
	return e.Cause
}
