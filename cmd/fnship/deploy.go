package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/fnship/fnship/internal/core/domain"
	"github.com/fnship/fnship/internal/core/manifest"
	"github.com/fnship/fnship/internal/engine"
	"github.com/fnship/fnship/internal/shell/archive"
	"github.com/fnship/fnship/internal/shell/cluster"
	"github.com/fnship/fnship/internal/shell/sizecheck"
	"github.com/fnship/fnship/internal/shell/strategy"
)

// =============================================================================
// Deploy Command
// =============================================================================

type deployFlags struct {
	packagePath string
	force       bool
	verbose     bool
}

// runDeploy loads the manifest, populates every declared function, and
// submits the batch to the cluster controller.
func runDeploy(ctx context.Context, cfg *Config, logger *slog.Logger, manifestPath string, flags deployFlags) int {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		logger.Error("failed to read service manifest", "manifest", manifestPath, "error", err)
		return ExitManifestError
	}

	svc, err := manifest.Parse(string(raw))
	if err != nil {
		logger.Error("failed to parse service manifest", "manifest", manifestPath, "error", err)
		return ExitManifestError
	}

	// Installed dependencies are rebuilt on the cluster; never ship them.
	svc.Package.Exclude = manifest.EnsureExcludes(svc.Package.Exclude)

	populator := engine.NewPopulator(engine.Config{
		Archive: archive.NewReader(),
		Selector: engine.SelectorFunc(func(p manifest.Provider) (engine.Deployer, error) {
			return strategy.Select(p)
		}),
		Sizes:     sizecheck.NewAdvisor(logger),
		Submitter: cluster.NewClient(cfg.Cluster.URL, cfg.Cluster.Timeout, logger),
		Logger:    logger,
	})

	opts := manifest.Options{
		Package: flags.packagePath,
		Force:   flags.force,
		Verbose: flags.verbose,
	}
	retry := domain.RetryConfig{
		RetryLimit:    cfg.Cluster.RetryLimit,
		RetryInterval: cfg.Cluster.RetryInterval,
	}

	if err := populator.Deploy(ctx, svc, opts, retry); err != nil {
		logger.Error("deployment failed", "service", svc.Service, "error", err)
		return ExitDeployError
	}

	logger.Info("deployment complete", "service", svc.Service, "functions", len(svc.Functions))
	return ExitSuccess
}
