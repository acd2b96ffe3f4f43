package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/opsbench/opsctl/internal/application/services"
	"github.com/opsbench/opsctl/internal/core/domain"
	"github.com/opsbench/opsctl/internal/infrastructure/config"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// errReported marks failures a command has already written to its output
var errReported = errors.New("error already reported")

// Services holds the application services commands call into
type Services struct {
	Kubeconfig *services.KubeconfigService
	Billing    *services.BillingService
	Buckets    *services.BucketService
	IP         *services.IPService
}

// Runtime resolves configuration and builds services once flags are parsed
type Runtime interface {
	Configure(ctx context.Context, overrides config.Source) (*config.Config, *Services, error)
}

// CLIContainer holds all the dependencies for CLI commands. Config and
// Services are populated before any command runs.
type CLIContainer struct {
	Runtime  Runtime
	Config   *config.Config
	Services *Services
}

// NewRootCommand RootCommand represents the base command when called without any subcommands
func NewRootCommand(container *CLIContainer) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "opsctl",
		Short: "opsctl - operator tooling for EKS clusters and AWS accounts",
		Long: `opsctl registers EKS clusters in your kubeconfig, reports month-to-date
AWS spend, prepares the Terraform state bucket and resolves this host's
public IP.

Registering a cluster is safe to repeat: entries for other clusters are left
untouched and the registered cluster becomes the current context.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigurationOverrides(cmd, container); err != nil {
				return fmt.Errorf("failed to apply configuration overrides: %w", err)
			}
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Only log errors")
	rootCmd.PersistentFlags().String("region", "", "AWS region (default $AWS_REGION or us-east-1)")
	rootCmd.PersistentFlags().String("profile", "", "AWS shared config profile")
	rootCmd.PersistentFlags().String("kubeconfig", "", "Kubeconfig file (default first path in $KUBECONFIG or ~/.kube/config)")

	rootCmd.AddCommand(NewUpdateKubeconfigCommand(container))
	rootCmd.AddCommand(NewContextsCommand(container))
	rootCmd.AddCommand(NewVerifyCommand(container))
	rootCmd.AddCommand(NewBillingCommand(container))
	rootCmd.AddCommand(NewBucketCommand(container))
	rootCmd.AddCommand(NewIPCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// applyConfigurationOverrides layers explicitly set flags over the
// environment and builds the services for this invocation
func applyConfigurationOverrides(cmd *cobra.Command, container *CLIContainer) error {
	if container.Runtime == nil {
		return fmt.Errorf("runtime not configured")
	}

	overrides := flagOverrides(cmd)
	cfg, svc, err := container.Runtime.Configure(cmd.Context(), config.NewStaticSource("flags", 0, overrides))
	if err != nil {
		return err
	}

	container.Config = cfg
	container.Services = svc
	return nil
}

// flagOverrides collects flags the user set on the command line. Flags left
// at their default do not mask environment values.
func flagOverrides(cmd *cobra.Command) *config.Config {
	overrides := &config.Config{}
	flags := cmd.Flags()

	changed := func(name string) (string, bool) {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			return "", false
		}
		return f.Value.String(), true
	}

	if v, ok := changed("region"); ok {
		overrides.Region = v
	}
	if v, ok := changed("profile"); ok {
		overrides.Profile = v
	}
	if v, ok := changed("kubeconfig"); ok {
		overrides.KubeconfigPath = v
	}
	if v, ok := changed("name"); ok {
		overrides.ClusterName = v
	}
	if v, ok := changed("bucket"); ok {
		overrides.BucketName = v
	}
	if _, ok := changed("debug"); ok {
		overrides.Debug, _ = flags.GetBool("debug")
	}
	if _, ok := changed("quiet"); ok {
		overrides.Quiet, _ = flags.GetBool("quiet")
	}

	return overrides
}

// errorHint returns operator guidance for well-known failure categories
func errorHint(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "AWS credentials not found or invalid. Run 'aws configure'."
	case errors.Is(err, domain.ErrPermissionDenied):
		return "Access denied. Please check your IAM policies."
	case errors.Is(err, domain.ErrSourceUnreachable):
		return "The remote service could not be reached. Check your network connection."
	default:
		return ""
	}
}

// reportError writes err in the form every command uses
func reportError(w io.Writer, err error) {
	if errors.Is(err, errReported) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	if hint := errorHint(err); hint != "" {
		fmt.Fprintln(w, hint)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context, container *CLIContainer) {
	rootCmd := NewRootCommand(container)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
