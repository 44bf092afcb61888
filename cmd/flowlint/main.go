package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/githubnext/flowlint/pkg/cli"
	"github.com/githubnext/flowlint/pkg/console"
	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/logger"
)

var mainLog = logger.New("main")

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Lint prompt flows before they run",
	Long: `flowlint checks prompt flows for problems before they run: unreachable
end nodes, prompts a provider would reject, template variables that resolve to
nothing, outputs nobody reads, out-of-range parameters and bad data store
initial values.

Common tasks:
  ` + constants.CLIName + ` validate flow.yaml           # Validate a flow document
  ` + constants.CLIName + ` validate flow.yaml --watch   # Re-validate on every save
  ` + constants.CLIName + ` providers                    # Show provider rules and parameter ranges
  ` + constants.CLIName + ` variables                    # Show the system variables templates can use
  ` + constants.CLIName + ` mcp-server                   # Serve validation to editors and agents`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = constants.Version
	rootCmd.SetVersionTemplate(constants.CLIName + " version {{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: "validation", Title: "Validation Commands:"},
		&cobra.Group{ID: "utilities", Title: "Utilities:"},
	)

	validateCmd := cli.NewValidateCommand()
	validateCmd.GroupID = "validation"

	schemaCmd := cli.NewSchemaCommand()
	schemaCmd.GroupID = "validation"

	providersCmd := cli.NewProvidersCommand()
	providersCmd.GroupID = "utilities"

	variablesCmd := cli.NewVariablesCommand()
	variablesCmd.GroupID = "utilities"

	mcpServerCmd := cli.NewMCPServerCommand()
	mcpServerCmd.GroupID = "utilities"

	rootCmd.AddCommand(validateCmd, schemaCmd, providersCmd, variablesCmd, mcpServerCmd, cli.NewVersionCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		mainLog.Printf("Command failed: %v", err)
		if !errors.Is(err, cli.ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
		os.Exit(1)
	}
}
