package artifact

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrInvalidPackageLayout means an explicit package path was supplied
	// for an individually-packaged service but does not point at a
	// directory of per-function artifacts. This is a configuration error
	// and aborts the whole deployment.
	ErrInvalidPackageLayout = errors.New("package path must be a directory when packaging individually")
)

// LayoutError wraps layout failures with the offending path.
type LayoutError struct {
	Path string
	Err  error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("resolve artifact: %s: %v", e.Path, e.Err)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}
