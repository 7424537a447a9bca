package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Long:  "Calls the server's health endpoint and reports how many listings it holds.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := newAPIClient()

			fmt.Fprintf(out, "Server:   %s\n", c.BaseURL())

			h, err := c.Health()
			if err != nil {
				fmt.Fprintf(out, "Status:   ✗ cannot reach server (%v)\n", err)
				return nil
			}
			fmt.Fprintf(out, "Status:   ✓ %s\n", h.Status)
			fmt.Fprintf(out, "Listings: %d\n", h.Properties)
			return nil
		},
	}
}
