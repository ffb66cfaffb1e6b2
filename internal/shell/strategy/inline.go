package strategy

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/fnship/fnship/internal/core/domain"
	"github.com/fnship/fnship/internal/core/manifest"
)

// =============================================================================
// Inline Strategy
// =============================================================================

// Inline embeds the base64-encoded artifact payload directly in the function
// record. Suited to small artifacts; the size advisor warns before this
// transport hits the record store's limit.
type Inline struct{}

// Name returns the transport name.
func (s *Inline) Name() string { return TransportInline }

// Deploy reads the artifact and returns metadata carrying its payload and
// checksum.
func (s *Inline) Deploy(ctx context.Context, fn manifest.Function, artifactPath string) (domain.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return domain.Metadata{}, err
	}

	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return domain.Metadata{}, &DeployError{Transport: TransportInline, Artifact: artifactPath, Err: err}
	}

	checksum, err := checksumFile(artifactPath)
	if err != nil {
		return domain.Metadata{}, &DeployError{Transport: TransportInline, Artifact: artifactPath, Err: fmt.Errorf("checksum: %w", err)}
	}

	return domain.Metadata{
		Transport: TransportInline,
		Checksum:  checksum,
		Content:   base64.StdEncoding.EncodeToString(data),
	}, nil
}
