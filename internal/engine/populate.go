// Package engine drives the function population pipeline: concurrent
// per-function enrichment joined into a single batched submission.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fnship/fnship/internal/core/artifact"
	"github.com/fnship/fnship/internal/core/domain"
	"github.com/fnship/fnship/internal/core/event"
	"github.com/fnship/fnship/internal/core/manifest"
	"github.com/fnship/fnship/internal/shell/archive"
)

// =============================================================================
// Collaborator Contracts
// =============================================================================

// ArchiveReader extracts named entries from packaged artifacts.
type ArchiveReader interface {
	ReadFile(archivePath, name string) (string, error)
}

// Deployer stages one function's code and returns its deployment metadata.
type Deployer interface {
	Deploy(ctx context.Context, fn manifest.Function, artifactPath string) (domain.Metadata, error)
}

// Selector chooses the code staging strategy for a provider.
type Selector interface {
	Select(p manifest.Provider) (Deployer, error)
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(p manifest.Provider) (Deployer, error)

// Select calls the wrapped function.
func (f SelectorFunc) Select(p manifest.Provider) (Deployer, error) { return f(p) }

// SizeChecker inspects a resolved artifact's size before submission.
type SizeChecker interface {
	Check(path string) error
}

// Submitter performs the cluster-facing create/update workflow for a fully
// populated batch.
type Submitter interface {
	Submit(ctx context.Context, fns []domain.PopulatedFunction, runtime, serviceName string, opts domain.SubmitOptions) error
}

// =============================================================================
// Populator
// =============================================================================

// Populator enriches every declared function concurrently and hands the
// complete batch to the submitter exactly once. Any fatal per-function error
// aborts the whole batch; the submitter never sees partial results.
type Populator struct {
	archive   ArchiveReader
	selector  Selector
	sizes     SizeChecker
	submitter Submitter
	isDir     artifact.DirChecker
	logger    *slog.Logger
}

// Config wires a Populator's collaborators.
type Config struct {
	Archive   ArchiveReader
	Selector  Selector
	Sizes     SizeChecker
	Submitter Submitter

	// IsDir answers the resolver's directory question. Defaults to the
	// local filesystem.
	IsDir artifact.DirChecker

	Logger *slog.Logger
}

// NewPopulator creates a Populator from the given collaborators.
func NewPopulator(cfg Config) *Populator {
	isDir := cfg.IsDir
	if isDir == nil {
		isDir = statIsDir
	}
	return &Populator{
		archive:   cfg.Archive,
		selector:  cfg.Selector,
		sizes:     cfg.Sizes,
		submitter: cfg.Submitter,
		isDir:     isDir,
		logger:    cfg.Logger.With("component", "populator"),
	}
}

func statIsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// Deploy populates the declared functions and submits the batch. The
// submitter is invoked exactly once, and only if every function populated
// successfully.
func (p *Populator) Deploy(ctx context.Context, svc *manifest.Service, opts manifest.Options, retry domain.RetryConfig) error {
	fns, err := p.Populate(ctx, svc, opts)
	if err != nil {
		return err
	}
	return p.submitter.Submit(ctx, fns, svc.Provider.Runtime, svc.Service, domain.SubmitOptions{
		Namespace:            svc.Provider.Namespace,
		Hostname:             svc.Provider.Hostname,
		DefaultDNSResolution: svc.Provider.DefaultDNSResolution,
		Ingress:              svc.Provider.Ingress,
		CPU:                  svc.Provider.CPU,
		MemorySize:           svc.Provider.Memory,
		Affinity:             svc.Provider.Affinity,
		Tolerations:          svc.Provider.Tolerations,
		Force:                opts.Force,
		Verbose:              opts.Verbose,
		Timeout:              svc.Provider.Timeout,
		Environment:          svc.Provider.Environment,
		Retry:                retry,
	})
}

// Populate runs one enrichment branch per declared function and returns the
// full result set once every branch has settled. Branches are launched
// without ordering guarantees; the result order is unspecified. The first
// fatal error cancels the remaining branches' context and is the one
// returned. No per-branch timeout is applied: a hanging artifact read stalls
// the batch until the caller's context is canceled.
func (p *Populator) Populate(ctx context.Context, svc *manifest.Service, opts manifest.Options) ([]domain.PopulatedFunction, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	populated := make([]domain.PopulatedFunction, 0, len(svc.Functions))

	for name, fn := range svc.Functions {
		name, fn := name, fn
		g.Go(func() error {
			rec, err := p.populateOne(ctx, svc, name, fn, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			populated = append(populated, rec)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.logger.Error("population aborted", "service", svc.Service, "error", err)
		return nil, err
	}

	p.logger.Debug("population complete", "service", svc.Service, "functions", len(populated))
	return populated, nil
}

// populateOne enriches a single declaration. Functions without a handler are
// metadata-only: they skip artifact, strategy, and dependency resolution and
// carry just the declaration and their name.
func (p *Populator) populateOne(ctx context.Context, svc *manifest.Service, name string, fn manifest.Function, opts manifest.Options) (domain.PopulatedFunction, error) {
	if fn.Handler == "" {
		return domain.PopulatedFunction{Function: fn, ID: name}, nil
	}

	path, err := artifact.Resolve(fn, name, opts, svc, p.isDir)
	if err != nil {
		return domain.PopulatedFunction{}, err
	}

	if err := p.sizes.Check(path); err != nil {
		return domain.PopulatedFunction{}, err
	}

	deployer, err := p.selector.Select(svc.Provider)
	if err != nil {
		return domain.PopulatedFunction{}, err
	}
	meta, err := deployer.Deploy(ctx, fn, path)
	if err != nil {
		return domain.PopulatedFunction{}, err
	}

	deps, hasDeps, err := p.readDependencies(path, fn.EffectiveRuntime(svc.Provider))
	if err != nil {
		return domain.PopulatedFunction{}, err
	}

	return domain.PopulatedFunction{
		Function:         fn,
		ID:               name,
		Deps:             deps,
		HasDeps:          hasDeps,
		Image:            fn.EffectiveImage(svc.Provider),
		NormalizedEvents: event.Normalize(fn.Events),
		Deployment:       &meta,
	}, nil
}

// readDependencies looks for the runtime's dependency manifest inside the
// artifact. Absence - either no manifest file for the runtime or no such
// entry in the archive - is a valid state, not a failure.
func (p *Populator) readDependencies(artifactPath, runtime string) (string, bool, error) {
	depFile, known := manifest.DependencyFile(runtime)
	if !known {
		return "", false, nil
	}

	content, err := p.archive.ReadFile(artifactPath, depFile)
	switch {
	case errors.Is(err, archive.ErrEntryNotFound):
		return "", false, nil
	case err != nil:
		return "", false, err
	default:
		return content, true, nil
	}
}
