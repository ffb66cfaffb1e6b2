package strategy

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fnship/fnship/internal/core/domain"
	"github.com/fnship/fnship/internal/core/manifest"
)

// =============================================================================
// Reference Strategy
// =============================================================================

// Reference records an absolute pointer to the artifact instead of embedding
// it. The cluster controller fetches the artifact itself; the checksum lets
// it verify what it fetched is what was submitted.
type Reference struct{}

// Name returns the transport name.
func (s *Reference) Name() string { return TransportReference }

// Deploy resolves the artifact to an absolute path and returns metadata
// carrying the pointer and checksum.
func (s *Reference) Deploy(ctx context.Context, fn manifest.Function, artifactPath string) (domain.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return domain.Metadata{}, err
	}

	abs, err := filepath.Abs(artifactPath)
	if err != nil {
		return domain.Metadata{}, &DeployError{Transport: TransportReference, Artifact: artifactPath, Err: err}
	}

	checksum, err := checksumFile(abs)
	if err != nil {
		return domain.Metadata{}, &DeployError{Transport: TransportReference, Artifact: artifactPath, Err: fmt.Errorf("checksum: %w", err)}
	}

	return domain.Metadata{
		Transport: TransportReference,
		Checksum:  checksum,
		Path:      abs,
	}, nil
}
