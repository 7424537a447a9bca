package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/listings/internal/client"
)

func newListCmd() *cobra.Command {
	var (
		status        string
		limit, offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		Long: `List properties on the server, optionally filtered by status.
Passing --limit or --offset (even --offset 0) requests a page and its pagination details.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := client.ListOptions{Status: status}
			if cmd.Flags().Changed("limit") {
				opts.Limit = &limit
			}
			if cmd.Flags().Changed("offset") {
				opts.Offset = &offset
			}

			resp, err := newAPIClient().ListProperties(opts)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			return printPropertyTable(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (available|sold|pending)")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of matches to skip")

	return cmd
}
