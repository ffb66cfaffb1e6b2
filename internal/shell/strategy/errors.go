package strategy

import "fmt"

// =============================================================================
// Error Types
// =============================================================================

// DeployError wraps staging failures with the transport and artifact
// involved. Any DeployError aborts the whole deployment batch.
type DeployError struct {
	Transport string
	Artifact  string
	Err       error
}

func (e *DeployError) Error() string {
	return fmt.Sprintf("%s deploy of %s: %v", e.Transport, e.Artifact, e.Err)
}

func (e *DeployError) Unwrap() error {
	return e.Err
}
