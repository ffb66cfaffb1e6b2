package manifest

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Parser Functions
// =============================================================================

// Parse parses service manifest YAML into a Service.
// This is a pure function - no I/O, no side effects.
func Parse(yamlContent string) (*Service, error) {
	if strings.TrimSpace(yamlContent) == "" {
		return nil, ErrEmptyManifest
	}

	var svc Service
	if err := yaml.Unmarshal([]byte(yamlContent), &svc); err != nil {
		return nil, NewParseError("", err.Error(), ErrInvalidYAML)
	}

	if err := validate(&svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func validate(svc *Service) error {
	if strings.TrimSpace(svc.Service) == "" {
		return ErrNoService
	}
	if len(svc.Functions) == 0 {
		return ErrNoFunctions
	}

	// A metadata-only function (no handler) needs no runtime; a code
	// function must resolve one from itself or the provider.
	for name, fn := range svc.Functions {
		if fn.Handler == "" {
			continue
		}
		if fn.EffectiveRuntime(svc.Provider) == "" {
			return NewParseError("functions."+name, "no runtime set", ErrNoRuntime)
		}
	}
	return nil
}

// =============================================================================
// Packaging Exclusions
// =============================================================================

// DependencyExclude is the exclusion pattern for the node package directory.
// Installed dependencies are rebuilt on the cluster from the dependency
// manifest and must not ship inside the artifact.
const DependencyExclude = "node_modules/**"

// EnsureExcludes returns the exclusion patterns with DependencyExclude
// guaranteed present. Appending even when already present is acceptable;
// the packager tolerates duplicate patterns.
func EnsureExcludes(patterns []string) []string {
	return append(patterns, DependencyExclude)
}
