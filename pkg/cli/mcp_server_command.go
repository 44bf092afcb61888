package cli

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/githubnext/flowlint/pkg/config"
	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/document"
	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/validation"
)

var mcpServerLog = logger.NewSlogLogger("cli:mcp_server")

// ValidateFlowInput is the argument of the validate_flow tool.
type ValidateFlowInput struct {
	Document string `json:"document" jsonschema:"the flow document text"`
	Format   string `json:"format,omitempty" jsonschema:"yaml (default) or json"`
}

// ValidateFlowOutput is the structured result of the validate_flow tool.
type ValidateFlowOutput struct {
	Valid    bool               `json:"valid"`
	Errors   int                `json:"errors"`
	Warnings int                `json:"warnings"`
	Issues   []validation.Issue `json:"issues"`
}

// NewMCPServerCommand creates the mcp-server command.
func NewMCPServerCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve flow validation over the Model Context Protocol",
		Long: `Run an MCP server on stdio exposing the ` + constants.MCPToolName + ` tool, so editors and
agents can validate flow documents while they are being written.

The server reads ` + constants.DefaultConfigFileName + ` (or --config) once at startup.

Examples:
  ` + constants.CLIName + ` mcp-server
  ` + constants.CLIName + ` mcp-server --config team.flowlint.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			server, err := NewMCPServer(cfg)
			if err != nil {
				return err
			}
			mcpServerLog.Info("serving on stdio")
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config file")
	return cmd
}

// NewMCPServer builds the MCP server with the validate_flow tool bound to
// cfg.
func NewMCPServer(cfg *config.Config) (*mcp.Server, error) {
	filter, err := cfg.Filter()
	if err != nil {
		return nil, err
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    constants.CLIName,
		Version: constants.Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        constants.MCPToolName,
		Description: "Validate a flow document and return every issue found, errors first.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, in ValidateFlowInput) (*mcp.CallToolResult, ValidateFlowOutput, error) {
		return validateFlowTool(cfg, filter, in)
	})
	return server, nil
}

func validateFlowTool(cfg *config.Config, filter *validation.Filter, in ValidateFlowInput) (*mcp.CallToolResult, ValidateFlowOutput, error) {
	format := document.FormatYAML
	if in.Format != "" {
		format = document.Format(in.Format)
	}

	doc, err := document.Parse([]byte(in.Document), format)
	if err != nil {
		mcpServerLog.Warn("document rejected", "error", err)
		return nil, ValidateFlowOutput{}, err
	}
	ctx, err := document.BuildContext(doc, cfg)
	if err != nil {
		return nil, ValidateFlowOutput{}, err
	}

	issues := filter.Apply(validation.Validate(ctx))
	validation.Sort(issues)
	if issues == nil {
		issues = []validation.Issue{}
	}
	errs, warnings := validation.Count(issues)
	mcpServerLog.Info("validated flow", "errors", errs, "warnings", warnings)

	out := ValidateFlowOutput{
		Valid:    errs == 0,
		Errors:   errs,
		Warnings: warnings,
		Issues:   issues,
	}
	summary := fmt.Sprintf("%d errors, %d warnings", errs, warnings)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: summary}},
	}, out, nil
}
