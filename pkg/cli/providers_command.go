package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/githubnext/flowlint/pkg/console"
	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/provider"
)

// ProviderInfo is what flowlint knows about one provider.
type ProviderInfo struct {
	ID                       provider.ID              `json:"id"`
	Name                     string                   `json:"name"`
	StructuredOutput         string                   `json:"structuredOutput"`
	ContiguousSystemMessages bool                     `json:"contiguousSystemMessages"`
	UserMessageAfterSystem   bool                     `json:"userMessageAfterSystem"`
	Parameters               []provider.ParameterSpec `json:"parameters"`
}

// NewProvidersCommand creates the providers command.
func NewProvidersCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "providers [provider]...",
		Short: "List providers, their capabilities and parameter ranges",
		Long: `List the providers flowlint knows about, which prompt rules they impose and the
request parameters they accept, with their allowed ranges.

Examples:
  ` + constants.CLIName + ` providers                # All providers
  ` + constants.CLIName + ` providers anthropic      # One provider
  ` + constants.CLIName + ` providers --json         # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := providerArgs(args)
			if err != nil {
				return err
			}
			return RunProviders(cmd.OutOrStdout(), ids, asJSON)
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output in JSON format")
	return cmd
}

func providerArgs(args []string) ([]provider.ID, error) {
	if len(args) == 0 {
		return provider.All(), nil
	}
	ids := make([]provider.ID, 0, len(args))
	for _, a := range args {
		id := provider.ID(a)
		if !id.Known() {
			return nil, fmt.Errorf("unknown provider %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func describeProvider(id provider.ID) ProviderInfo {
	params := provider.Parameters(id)
	if params == nil {
		params = []provider.ParameterSpec{}
	}
	return ProviderInfo{
		ID:                       id,
		Name:                     id.DisplayName(),
		StructuredOutput:         provider.StructuredOutputSupport(id).String(),
		ContiguousSystemMessages: provider.RequiresContiguousSystemMessages(id),
		UserMessageAfterSystem:   provider.RequiresUserAfterSystem(id),
		Parameters:               params,
	}
}

// RunProviders writes the provider listing for ids to out.
func RunProviders(out io.Writer, ids []provider.ID, asJSON bool) error {
	infos := make([]ProviderInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, describeProvider(id))
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	for i, info := range infos {
		if i > 0 {
			fmt.Fprintln(out)
		}
		rows := make([][]string, 0, len(info.Parameters))
		for _, p := range info.Parameters {
			rows = append(rows, []string{p.ID, string(p.Type), formatBound(p.Min), formatBound(p.Max)})
		}
		fmt.Fprint(out, console.RenderTable(console.TableConfig{
			Title:   fmt.Sprintf("%s (%s)", info.Name, info.ID),
			Headers: []string{"Parameter", "Type", "Min", "Max"},
			Rows:    rows,
		}))
		fmt.Fprintf(out, "structured output: %s\n", info.StructuredOutput)
		if info.ContiguousSystemMessages {
			fmt.Fprintln(out, "system messages must be contiguous")
		}
		if info.UserMessageAfterSystem {
			fmt.Fprintln(out, "the message after the system prompt must be a user or history message")
		}
	}
	return nil
}

func formatBound(b *float64) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatFloat(*b, 'f', -1, 64)
}
