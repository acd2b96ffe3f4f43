package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type ipResult struct {
	IP     string `json:"ip,omitempty"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewIPCommand creates the ip command
func NewIPCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "ip",
		Short: "Print this host's public IPv4 address as JSON",
		Long: `Ask an external echo service for the public IPv4 address of this host.

Prints {"ip": "...", "status": "success"} on success and {"error": "..."}
on failure, so the output can be consumed by scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := ipResult{Status: "success"}
			ip, lookupErr := container.Services.IP.Resolve(cmd.Context())
			if lookupErr != nil {
				result = ipResult{Error: lookupErr.Error()}
			} else {
				result.IP = ip
			}

			data, err := json.Marshal(result)
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			if lookupErr != nil {
				return fmt.Errorf("%w: %w", errReported, lookupErr)
			}
			return nil
		},
	}
}
