package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is stamped by release builds:
//
//	go build -ldflags "-X github.com/evcraddock/listings/internal/cli.Version=v1.0.0" ./cmd/listings
var Version = "dev"

// buildVersion returns Version, or the module version recorded by
// `go install` when no version was stamped.
func buildVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the listings version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "listings %s\n", buildVersion())
		},
	}
}
