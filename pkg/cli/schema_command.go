package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/document"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of flow documents",
		Long: `Print the JSON schema flow documents are checked against before validation.
Editors can use it for completion and inline errors.

Examples:
  ` + constants.CLIName + ` schema > flow.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunSchema(cmd.OutOrStdout())
		},
	}
}

// RunSchema writes the document schema to out.
func RunSchema(out io.Writer) error {
	data, err := document.SchemaJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
