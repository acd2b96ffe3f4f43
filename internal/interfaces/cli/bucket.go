package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBucketCommand creates the tfstate-bucket command
func NewBucketCommand(container *CLIContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tfstate-bucket",
		Short: "Create the Terraform state bucket if it does not exist",
		Long: `Check for the S3 bucket that holds Terraform state and create it in the
configured region when it is missing.

The bucket name comes from --bucket or $TF_STATE_BUCKET.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := container.Config.BucketName
			region := container.Config.Region

			created, err := container.Services.Buckets.Ensure(cmd.Context(), name, region)
			if err != nil {
				return fmt.Errorf("failed to prepare bucket %q: %w", name, err)
			}

			out := cmd.OutOrStdout()
			if created {
				fmt.Fprintf(out, "✅ Bucket '%s' created in %s.\n", name, region)
			} else {
				fmt.Fprintf(out, "Bucket '%s' already exists.\n", name)
			}
			return nil
		},
	}

	cmd.Flags().String("bucket", "", "Bucket name")
	return cmd
}
