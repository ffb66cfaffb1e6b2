// Package manifest contains pure functions for parsing the fnship service
// manifest. This is part of the Functional Core - all functions are pure
// with no I/O.
package manifest

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input validation errors
	ErrEmptyManifest = errors.New("service manifest is empty")

	// YAML parsing errors
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// Structure errors
	ErrNoService   = errors.New("manifest must set a service name")
	ErrNoFunctions = errors.New("manifest must declare at least one function")
	ErrNoRuntime   = errors.New("no runtime set for function and no provider default")
)

// ParseError wraps errors with context about where parsing failed.
type ParseError struct {
	Field   string // e.g. "functions.hello.events[0]"
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("manifest %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("manifest: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError with the given context.
func NewParseError(field, message string, err error) *ParseError {
	return &ParseError{Field: field, Message: message, Err: err}
}
