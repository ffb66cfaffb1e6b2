// Package artifact decides which packaged artifact a function deploys from.
// The precedence logic is pure; the filesystem question it needs (is a path
// a directory) is injected by the caller.
package artifact

import (
	"fmt"
	"path/filepath"

	"github.com/fnship/fnship/internal/core/manifest"
)

// =============================================================================
// Artifact Resolution
// =============================================================================

// DirChecker reports whether a path is an existing directory.
type DirChecker func(path string) (bool, error)

// DefaultOutputDir is where the packager writes the service artifact when no
// explicit source is configured.
const DefaultOutputDir = ".fnship"

// Resolve returns the artifact path to deploy fn from. First non-empty
// source wins:
//
//	explicit caller package path
//	> service package path
//	> service package artifact
//	> per-function package artifact
//	> service artifact fallback
//	> packager default output
//
// When the caller supplied an explicit path and the service packages
// individually, the path must be a directory and the per-function artifact
// <path>/<name>.zip is returned; anything else fails with
// ErrInvalidPackageLayout, which callers treat as fatal for the whole
// deployment.
func Resolve(fn manifest.Function, name string, opts manifest.Options, svc *manifest.Service, isDir DirChecker) (string, error) {
	if opts.Package != "" {
		if svc.Package.Individually {
			return resolveIndividual(opts.Package, name, isDir)
		}
		return opts.Package, nil
	}
	if svc.Package.Path != "" {
		return svc.Package.Path, nil
	}
	if svc.Package.Artifact != "" {
		return svc.Package.Artifact, nil
	}
	if fn.Package.Artifact != "" {
		return fn.Package.Artifact, nil
	}
	if svc.Artifact != "" {
		return svc.Artifact, nil
	}
	return filepath.Join(DefaultOutputDir, svc.Service+".zip"), nil
}

func resolveIndividual(dir, name string, isDir DirChecker) (string, error) {
	ok, err := isDir(dir)
	if err != nil {
		return "", fmt.Errorf("resolve artifact: stat %s: %w", dir, err)
	}
	if !ok {
		return "", &LayoutError{Path: dir, Err: ErrInvalidPackageLayout}
	}
	return filepath.Join(dir, name+".zip"), nil
}
