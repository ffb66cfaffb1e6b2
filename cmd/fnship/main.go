// fnship deploys a service manifest's functions to a cluster controller.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess       = 0
	ExitConfigError   = 1
	ExitManifestError = 2
	ExitDeployError   = 3
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("fnship", pflag.ContinueOnError)
	configPath := flags.String("config", "", "Path to config file")
	manifestPath := flags.StringP("file", "f", "fnship.yml", "Path to the service manifest")
	packagePath := flags.StringP("package", "p", "", "Explicit package path or per-function artifact directory")
	force := flags.Bool("force", false, "Replace existing functions without comparison")
	verbose := flags.BoolP("verbose", "v", false, "Verbose submission logging")
	showVersion := flags.Bool("version", false, "Print version and exit")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "flag error: %v\n", err)
		return ExitConfigError
	}

	if *showVersion {
		fmt.Printf("fnship %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}
	if *verbose && cfg.Log.Level == "" {
		cfg.Log.Level = "debug"
	}

	logger := SetupLogger(cfg)
	logger.Info("starting fnship",
		"version", Version,
		"manifest", *manifestPath,
		"cluster", cfg.Cluster.URL,
	)

	return runDeploy(context.Background(), cfg, logger, *manifestPath, deployFlags{
		packagePath: *packagePath,
		force:       *force,
		verbose:     *verbose,
	})
}
