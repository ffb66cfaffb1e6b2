package cluster

import (
	"github.com/fnship/fnship/internal/core/domain"
	"github.com/fnship/fnship/internal/core/event"
	"github.com/fnship/fnship/internal/core/manifest"
)

// =============================================================================
// Wire Types
// =============================================================================

// submitRequest is the body of one function upsert against the controller.
type submitRequest struct {
	DeploymentID string       `json:"deploymentId"`
	Service      string       `json:"service"`
	Runtime      string       `json:"runtime"`
	Force        bool         `json:"force,omitempty"`
	Function     functionSpec `json:"function"`
}

// functionSpec is the controller-facing shape of a populated function.
type functionSpec struct {
	ID                   string                `json:"id"`
	Handler              string                `json:"handler,omitempty"`
	Runtime              string                `json:"runtime,omitempty"`
	Image                string                `json:"image,omitempty"`
	Description          string                `json:"description,omitempty"`
	Deps                 *string               `json:"deps,omitempty"`
	Events               []event.Normalized    `json:"events,omitempty"`
	Deployment           *domain.Metadata      `json:"deployment,omitempty"`
	Environment          map[string]string     `json:"environment,omitempty"`
	Hostname             string                `json:"hostname,omitempty"`
	DefaultDNSResolution string                `json:"defaultDNSResolution,omitempty"`
	Ingress              *ingressSpec          `json:"ingress,omitempty"`
	CPU                  string                `json:"cpu,omitempty"`
	MemorySize           string                `json:"memorySize,omitempty"`
	Affinity             map[string]any        `json:"affinity,omitempty"`
	Tolerations          []manifest.Toleration `json:"tolerations,omitempty"`
	Timeout              string                `json:"timeout,omitempty"`
}

type ingressSpec struct {
	Class       string            `json:"class,omitempty"`
	TLS         bool              `json:"tls,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// buildSpec flattens a populated function and the cluster-level options into
// the wire shape.
func buildSpec(fn domain.PopulatedFunction, opts domain.SubmitOptions) functionSpec {
	spec := functionSpec{
		ID:                   fn.ID,
		Handler:              fn.Handler,
		Runtime:              fn.Runtime,
		Image:                fn.Image,
		Description:          fn.Description,
		Events:               fn.NormalizedEvents,
		Deployment:           fn.Deployment,
		Environment:          mergeEnv(opts.Environment, fn.Function.Environment),
		Hostname:             opts.Hostname,
		DefaultDNSResolution: opts.DefaultDNSResolution,
		CPU:                  opts.CPU,
		MemorySize:           opts.MemorySize,
		Affinity:             opts.Affinity,
		Tolerations:          opts.Tolerations,
		Timeout:              opts.Timeout,
	}
	if fn.HasDeps {
		deps := fn.Deps
		spec.Deps = &deps
	}
	if opts.Ingress.Class != "" || opts.Ingress.TLS || len(opts.Ingress.Annotations) > 0 {
		spec.Ingress = &ingressSpec{
			Class:       opts.Ingress.Class,
			TLS:         opts.Ingress.TLS,
			Annotations: opts.Ingress.Annotations,
		}
	}
	return spec
}

// mergeEnv overlays function environment on top of the cluster-level one.
func mergeEnv(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
