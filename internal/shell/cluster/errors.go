package cluster

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrSubmitRejected means the controller rejected a function record
	// with a non-retryable status.
	ErrSubmitRejected = errors.New("cluster rejected function record")

	// ErrRetriesExhausted means retryable failures persisted through every
	// configured attempt.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// SubmitError wraps submission failures with the function and last HTTP
// status involved.
type SubmitError struct {
	Function string
	Status   int
	Attempts int
	Err      error
}

func (e *SubmitError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("submit %s (status %d, %d attempts): %v", e.Function, e.Status, e.Attempts, e.Err)
	}
	return fmt.Sprintf("submit %s (%d attempts): %v", e.Function, e.Attempts, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
