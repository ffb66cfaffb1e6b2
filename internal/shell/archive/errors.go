package archive

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrEntryNotFound means the requested entry does not exist inside the
	// archive. Callers looking for an optional dependency manifest treat
	// this as absence, not failure.
	ErrEntryNotFound = errors.New("entry not found in archive")
)

// ReadError wraps archive read failures with the archive and entry involved.
type ReadError struct {
	Archive string
	Entry   string
	Err     error
}

func (e *ReadError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("read %s from %s: %v", e.Entry, e.Archive, e.Err)
	}
	return fmt.Sprintf("read archive %s: %v", e.Archive, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
