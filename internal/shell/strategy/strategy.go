// Package strategy stages function code for the cluster. Each strategy
// turns a resolved artifact into the deployment metadata the cluster
// controller needs to materialize the function's code.
package strategy

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/fnship/fnship/internal/core/domain"
	"github.com/fnship/fnship/internal/core/manifest"
)

// =============================================================================
// Strategy Selection
// =============================================================================

const (
	// TransportInline embeds the artifact payload in the function record.
	TransportInline = "inline"

	// TransportReference records a pointer to the artifact instead.
	TransportReference = "reference"
)

var (
	// ErrUnknownTransport means the provider names a code transport no
	// strategy implements.
	ErrUnknownTransport = errors.New("unknown code transport")
)

// Strategy stages one function's code and returns its deployment metadata.
type Strategy interface {
	// Name returns the transport name the strategy implements.
	Name() string

	// Deploy stages the artifact for fn and returns the resulting
	// metadata. Failures are fatal for the whole batch.
	Deploy(ctx context.Context, fn manifest.Function, artifactPath string) (domain.Metadata, error)
}

// Select returns the strategy for the provider's configured code transport.
// An empty transport selects inline, the historical default.
func Select(p manifest.Provider) (Strategy, error) {
	switch p.CodeTransport {
	case "", TransportInline:
		return &Inline{}, nil
	case TransportReference:
		return &Reference{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, p.CodeTransport)
	}
}

// =============================================================================
// Checksums
// =============================================================================

// checksumFile computes the BLAKE2b-256 checksum of the artifact, in the
// "blake2b:<hex>" form recorded on deployment metadata.
func checksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return "blake2b:" + hex.EncodeToString(h.Sum(nil)), nil
}
