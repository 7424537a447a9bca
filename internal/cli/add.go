package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/listings/internal/property"
)

func newAddCmd() *cobra.Command {
	var np property.NewProperty
	var status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property",
		Long:  "Create a listing. --title, --address and --price are required; status defaults to available.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			np.Status = property.Status(status)

			p, err := newAPIClient().CreateProperty(np)
			if err != nil {
				return fmt.Errorf("adding property: %w", err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Property added successfully!")
			printPropertySummary(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&np.Title, "title", "", "listing title")
	cmd.Flags().StringVar(&np.Address, "address", "", "street address")
	cmd.Flags().Float64Var(&np.Price, "price", 0, "asking price")
	cmd.Flags().StringVar(&np.Description, "description", "", "free-form description")
	cmd.Flags().StringVar(&status, "status", "", "available|sold|pending")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}
