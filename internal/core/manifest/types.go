package manifest

import (
	"github.com/fnship/fnship/internal/core/event"
)

// =============================================================================
// Service Manifest Types
// =============================================================================

// Service is the parsed service manifest: a named set of function
// declarations plus the provider settings they deploy under. Immutable input
// owned by the caller; population never mutates it.
type Service struct {
	// Service is the service name, used as the deployment grouping key.
	Service string `yaml:"service"`

	// Provider holds cluster-level settings shared by all functions.
	Provider Provider `yaml:"provider"`

	// Package holds service-level packaging settings.
	Package Package `yaml:"package"`

	// Artifact is the service-level prebuilt artifact fallback, used when
	// no other packaging source applies.
	Artifact string `yaml:"artifact"`

	// Functions maps function name to its declaration. Names are unique by
	// construction (YAML mapping keys).
	Functions map[string]Function `yaml:"functions"`
}

// Provider holds the cluster-level deployment settings.
type Provider struct {
	Runtime              string            `yaml:"runtime"`
	Namespace            string            `yaml:"namespace"`
	Hostname             string            `yaml:"hostname"`
	DefaultDNSResolution string            `yaml:"defaultDNSResolution"`
	Ingress              Ingress           `yaml:"ingress"`
	CPU                  string            `yaml:"cpu"`
	Memory               string            `yaml:"memory"`
	Affinity             map[string]any    `yaml:"affinity"`
	Tolerations          []Toleration      `yaml:"tolerations"`
	Timeout              string            `yaml:"timeout"`
	Environment          map[string]string `yaml:"environment"`
	Image                string            `yaml:"image"`

	// CodeTransport selects how function code is staged for the cluster:
	// "inline" embeds the payload in the function record, "reference"
	// records a pointer to the artifact. Empty means inline.
	CodeTransport string `yaml:"codeTransport"`
}

// Ingress holds ingress settings passed through to the submitter.
type Ingress struct {
	Class       string            `yaml:"class"`
	TLS         bool              `yaml:"tls"`
	Annotations map[string]string `yaml:"annotations"`
}

// Toleration mirrors a scheduling toleration on the target cluster.
type Toleration struct {
	Key      string `yaml:"key"`
	Operator string `yaml:"operator"`
	Value    string `yaml:"value"`
	Effect   string `yaml:"effect"`
}

// Package holds packaging settings, at service or function level.
type Package struct {
	// Path points at a prebuilt package on disk.
	Path string `yaml:"path"`

	// Artifact points at a prebuilt artifact archive.
	Artifact string `yaml:"artifact"`

	// Individually packages each function into its own artifact.
	Individually bool `yaml:"individually"`

	// Exclude lists glob patterns removed from the package.
	Exclude []string `yaml:"exclude"`
}

// Function is one declared function. A function with a handler carries code
// and goes through artifact resolution; a function without one is
// metadata-only and is submitted as declared.
type Function struct {
	Handler     string              `yaml:"handler"`
	Runtime     string              `yaml:"runtime"`
	Image       string              `yaml:"image"`
	Description string              `yaml:"description"`
	Events      []event.Declaration `yaml:"events"`
	Package     Package             `yaml:"package"`
	Environment map[string]string   `yaml:"environment"`
}

// EffectiveRuntime returns the function's runtime, falling back to the
// provider-level runtime.
func (f Function) EffectiveRuntime(p Provider) string {
	if f.Runtime != "" {
		return f.Runtime
	}
	return p.Runtime
}

// EffectiveImage returns the function's image, falling back to the
// provider-level image.
func (f Function) EffectiveImage(p Provider) string {
	if f.Image != "" {
		return f.Image
	}
	return p.Image
}

// Options is the recognized option bag supplied by the caller.
type Options struct {
	// Package is an explicit package path override.
	Package string

	// Force replaces existing functions on the cluster without comparison.
	Force bool

	// Verbose enables verbose submission logging.
	Verbose bool
}
