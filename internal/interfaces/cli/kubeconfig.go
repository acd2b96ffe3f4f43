package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewUpdateKubeconfigCommand creates the update-kubeconfig command
func NewUpdateKubeconfigCommand(container *CLIContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-kubeconfig [cluster-name]",
		Short: "Register an EKS cluster in the local kubeconfig",
		Long: `Describe an EKS cluster and merge its cluster, user and context
entries into the kubeconfig file.

Entries for other clusters are preserved. Re-running the command for the same
cluster replaces its entries instead of duplicating them, and the cluster
becomes the current context.

The cluster name comes from the argument, --name, or $CLUSTER_NAME.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdateKubeconfig(cmd, container, args)
		},
	}

	cmd.Flags().String("name", "", "EKS cluster name")
	return cmd
}

func runUpdateKubeconfig(cmd *cobra.Command, container *CLIContainer, args []string) error {
	name := container.Config.ClusterName
	if len(args) == 1 {
		name = args[0]
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("cluster name is required: pass it as an argument, with --name or via CLUSTER_NAME")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "🔍 Fetching details for cluster: %s...\n", name)

	result, err := container.Services.Kubeconfig.UpdateKubeconfig(cmd.Context(), name)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ Successfully updated: %s\n", result.Path)
	fmt.Fprintf(out, "Current context: %s\n", result.Context)
	return nil
}

// NewContextsCommand creates the contexts command
func NewContextsCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "contexts",
		Short: "List the contexts in the kubeconfig",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := container.Services.Kubeconfig.ListContexts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintf(out, "No contexts found in %s\n", container.Config.KubeconfigPath)
				return nil
			}
			fmt.Fprint(out, renderContexts(summaries))
			return nil
		},
	}
}

// NewVerifyCommand creates the verify command
func NewVerifyCommand(container *CLIContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a kubeconfig context reaches its API server",
		Long: `Connect to the API server behind a kubeconfig context and print its
version. Uses the current context unless --context is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contextName, _ := cmd.Flags().GetString("context")

			version, err := container.Services.Kubeconfig.Verify(cmd.Context(), contextName)
			if err != nil {
				return err
			}

			label := contextName
			if label == "" {
				label = "current context"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Cluster reachable via %s (server version %s)\n", label, version)
			return nil
		},
	}

	cmd.Flags().String("context", "", "Kubeconfig context to verify")
	return cmd
}
