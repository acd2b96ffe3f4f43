package di

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/juju/clock"

	"github.com/opsbench/opsctl/internal/application/services"
	"github.com/opsbench/opsctl/internal/infrastructure/awsapi"
	"github.com/opsbench/opsctl/internal/infrastructure/config"
	"github.com/opsbench/opsctl/internal/infrastructure/filestore"
	httpinfra "github.com/opsbench/opsctl/internal/infrastructure/http"
	"github.com/opsbench/opsctl/internal/infrastructure/kube"
	"github.com/opsbench/opsctl/internal/infrastructure/logging"
	"github.com/opsbench/opsctl/internal/interfaces/cli"
)

// probeTimeout bounds the API server version request
const probeTimeout = 10 * time.Second

// Container holds all application dependencies
type Container struct {
	// Configuration
	ConfigLoader *config.Loader
	Config       *config.Config

	// CLI
	CLIContainer *cli.CLIContainer

	// Logger
	Logger hclog.Logger

	clock     clock.Clock
	logOutput io.Writer
}

// NewContainer creates a container reading the process environment
func NewContainer() (*Container, error) {
	return newContainer(config.NewLoader()), nil
}

// NewContainerWithLookup creates a container reading environment variables
// through lookup
func NewContainerWithLookup(lookup config.LookupFunc) (*Container, error) {
	if lookup == nil {
		return nil, fmt.Errorf("environment lookup cannot be nil")
	}
	return newContainer(config.NewLoaderWithLookup(lookup)), nil
}

func newContainer(loader *config.Loader) *Container {
	c := &Container{
		ConfigLoader: loader,
		Logger:       logging.NewLogger(logging.Options{}),
		clock:        clock.WallClock,
		logOutput:    os.Stderr,
	}
	c.CLIContainer = &cli.CLIContainer{Runtime: c}
	return c
}

// Configure implements cli.Runtime. It layers overrides over the environment,
// rebuilds the logger for the resolved level and wires the services.
// Overrides apply to this call only.
func (c *Container) Configure(ctx context.Context, overrides config.Source) (*config.Config, *cli.Services, error) {
	cfg, err := c.ConfigLoader.Load(overrides)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	c.Config = cfg
	c.Logger = logging.NewLogger(logging.Options{Debug: cfg.Debug, Quiet: cfg.Quiet, Output: c.logOutput})
	c.Logger.Debug("configuration resolved",
		"region", cfg.Region,
		"profile", cfg.Profile,
		"kubeconfig", cfg.KubeconfigPath)

	return cfg, c.buildServices(cfg), nil
}

// buildServices wires adapters into the application services for cfg
func (c *Container) buildServices(cfg *config.Config) *cli.Services {
	session := newCloudSession(awsapi.Options{Region: cfg.Region, Profile: cfg.Profile}, c.Logger)
	store := filestore.NewFileStoreWithClock(cfg.KubeconfigPath, c.Logger, c.clock)

	mergeOpts := services.DefaultMergeOptions()
	mergeOpts.Auth.Command = cfg.ExecCommand
	mergeOpts.Auth.Profile = cfg.Profile
	engine := services.NewMergeEngine(store, mergeOpts, c.Logger)

	return &cli.Services{
		Kubeconfig: services.NewKubeconfigService(
			sessionDescriber{session: session},
			engine,
			store,
			kube.NewProber(probeTimeout),
			c.Logger,
		),
		Billing: services.NewBillingService(
			sessionIdentity{session: session},
			sessionCosts{session: session},
			c.clock,
			c.Logger,
		),
		Buckets: services.NewBucketService(sessionBuckets{session: session}, c.Logger),
		IP:      services.NewIPService(httpinfra.NewIPResolver(cfg.IPEndpoint, cfg.IPTimeout), c.Logger),
	}
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}
