// Package domain holds the deployment record types shared between the
// population engine and the cluster-facing shell.
package domain

import (
	"time"

	"github.com/fnship/fnship/internal/core/event"
	"github.com/fnship/fnship/internal/core/manifest"
)

// =============================================================================
// Deployment Records
// =============================================================================

// Metadata is the strategy-specific deployment metadata attached to a
// populated function. The orchestrator treats it as opaque beyond carrying
// it on the record.
type Metadata struct {
	// Transport names the staging mechanism ("inline" or "reference").
	Transport string `json:"transport"`

	// Checksum is the artifact content checksum, "blake2b:<hex>".
	Checksum string `json:"checksum"`

	// Content is the base64 artifact payload. Inline transport only.
	Content string `json:"content,omitempty"`

	// Path is the absolute artifact path. Reference transport only.
	Path string `json:"path,omitempty"`
}

// PopulatedFunction is a deployment-ready function record: the declaration
// enriched with identity, resolved dependencies, image, normalized events,
// and staging metadata. Functions without a handler carry only the
// declaration and ID.
type PopulatedFunction struct {
	manifest.Function

	// ID is the function's name, its unique key in the function map.
	ID string

	// Deps is the dependency manifest content extracted from the artifact.
	// Meaningful only when HasDeps is true.
	Deps string

	// HasDeps distinguishes "no dependency manifest in the artifact" from
	// an empty one.
	HasDeps bool

	// Image is the effective runtime image for the function.
	Image string

	// NormalizedEvents is the declared event list in submission shape,
	// declared order preserved.
	NormalizedEvents []event.Normalized

	// Deployment is the staging metadata produced by the selected
	// strategy. Nil for metadata-only functions.
	Deployment *Metadata
}

// =============================================================================
// Submission Options
// =============================================================================

// RetryConfig is passed through opaquely to the submitter; the population
// core never interprets it.
type RetryConfig struct {
	// RetryLimit is the number of additional attempts after the first.
	RetryLimit int

	// RetryInterval is the pause between attempts.
	RetryInterval time.Duration
}

// SubmitOptions carries the cluster-level settings for a submission.
type SubmitOptions struct {
	Namespace            string
	Hostname             string
	DefaultDNSResolution string
	Ingress              manifest.Ingress
	CPU                  string
	MemorySize           string
	Affinity             map[string]any
	Tolerations          []manifest.Toleration
	Force                bool
	Verbose              bool
	Timeout              string
	Environment          map[string]string
	Retry                RetryConfig
}
