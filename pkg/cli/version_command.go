package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/githubnext/flowlint/pkg/constants"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the flowlint version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", constants.CLIName, constants.Version)
		},
	}
}
