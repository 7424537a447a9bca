// Package cli defines the cobra command tree for listings.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/listings/internal/client"
)

var (
	flagFormat string
	flagServer string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "listings",
		Short:         "Manage property listings",
		Long:          "Run an in-memory property listings API, or create, browse, update and remove listings on a running server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL (default: $LISTINGS_SERVER_URL, config, or http://localhost:8080)")

	root.AddCommand(
		newServeCmd(),
		newAddCmd(),
		newListCmd(),
		newShowCmd(),
		newUpdateCmd(),
		newRemoveCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the listings API.
func newAPIClient() *client.Client {
	if flagServer != "" {
		return client.New(flagServer)
	}
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
