package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/listings/internal/property"
)

func newUpdateCmd() *cobra.Command {
	var (
		title, address, description, status string
		price                               float64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a property",
		Long:  "Change one or more fields of a listing. Only the flags you pass are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			var patch property.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("address") {
				patch.Address = &address
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("price") {
				patch.Price = &price
			}
			if flags.Changed("status") {
				s := property.Status(status)
				patch.Status = &s
			}
			if patch.IsEmpty() {
				return errors.New("nothing to update: pass at least one of --title, --address, --description, --price or --status")
			}

			p, err := newAPIClient().UpdateProperty(id, patch)
			if err != nil {
				return fmt.Errorf("updating property: %w", err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Property updated.")
			printPropertySummary(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&address, "address", "", "new address")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().Float64Var(&price, "price", 0, "new price")
	cmd.Flags().StringVar(&status, "status", "", "available|sold|pending")

	return cmd
}
