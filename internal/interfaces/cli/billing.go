package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBillingCommand creates the billing command
func NewBillingCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "billing",
		Short: "Show month-to-date AWS spend",
		Long: `Verify AWS credentials and print the unblended cost from the first day
of the current month through today.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.Services.Billing.MonthToDate(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderBilling(report))
			return nil
		},
	}
}
