package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/githubnext/flowlint/pkg/console"
	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/varlib"
)

var variablesLog = logger.New("cli:variables_command")

// VariableInfo is one resolvable variable path.
type VariableInfo struct {
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	// Open paths accept anything below them.
	Open bool `json:"open,omitempty"`
}

// NewVariablesCommand creates the variables command.
func NewVariablesCommand() *cobra.Command {
	var (
		asJSON     bool
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "variables [name]...",
		Short: "List the system variables templates can use",
		Long: `List the system variables every template can read, including the ones added
by the variables section of the config file.

Examples:
  ` + constants.CLIName + ` variables              # Every variable
  ` + constants.CLIName + ` variables cast user    # Only the cast and user trees
  ` + constants.CLIName + ` variables --json       # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			lib, err := cfg.Library()
			if err != nil {
				return err
			}
			return RunVariables(cmd.OutOrStdout(), lib, args, asJSON)
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output in JSON format")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config file (default: "+constants.DefaultConfigFileName+" if present)")
	return cmd
}

// RunVariables writes the variables below the named roots, or every root
// when names is empty.
func RunVariables(out io.Writer, lib *varlib.Library, names []string, asJSON bool) error {
	if len(names) == 0 {
		names = lib.Names()
	}

	var infos []VariableInfo
	for _, name := range names {
		root, ok := lib.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown variable %q", name)
		}
		infos = flattenVariable(infos, "", root)
	}
	variablesLog.Printf("Listing %d paths under %d roots", len(infos), len(names))

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		path := info.Path
		if info.Open {
			path += ".*"
		}
		rows = append(rows, []string{path, info.Description})
	}
	fmt.Fprint(out, console.RenderTable(console.TableConfig{
		Title:   "System variables",
		Headers: []string{"Variable", "Description"},
		Rows:    rows,
	}))
	return nil
}

func flattenVariable(infos []VariableInfo, prefix string, v *varlib.Variable) []VariableInfo {
	path := v.Name
	if prefix != "" {
		path = prefix + "." + v.Name
	}
	infos = append(infos, VariableInfo{Path: path, Description: v.Description, Open: v.Open})
	for _, c := range v.Children {
		infos = flattenVariable(infos, path, c)
	}
	return infos
}
