package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/githubnext/flowlint/pkg/config"
	"github.com/githubnext/flowlint/pkg/console"
	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/document"
	"github.com/githubnext/flowlint/pkg/envutil"
	"github.com/githubnext/flowlint/pkg/fileutil"
	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/validation"
)

var validateLog = logger.New("cli:validate_command")

// ErrValidationFailed is returned when a run found errors, or warnings in
// strict mode. The report has already been printed.
var ErrValidationFailed = errors.New("validation failed")

// ValidateOptions are the inputs of a validate run.
type ValidateOptions struct {
	Files      []string
	ConfigPath string
	JSON       bool
	Strict     bool
	Ignore     []string
	Watch      bool
}

// FileResult is the outcome for one document. Error is set when the
// document could not be loaded; Issues is then empty.
type FileResult struct {
	File   string             `json:"file"`
	Error  string             `json:"error,omitempty"`
	Issues []validation.Issue `json:"issues"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate flow documents",
		Long: `Validate one or more flow documents (YAML or JSON) and report every problem
found in the flow graph, agent prompts, template variables, provider settings
and data store schema.

The exit status is non-zero when any error is found, or any warning with --strict.

Examples:
  ` + constants.CLIName + ` validate flow.yaml                    # Validate one flow
  ` + constants.CLIName + ` validate flows/*.yaml                 # Validate several flows
  ` + constants.CLIName + ` validate flows/                       # Validate every flow below a directory
  ` + constants.CLIName + ` validate flow.yaml --json             # Output results as JSON
  ` + constants.CLIName + ` validate flow.yaml --ignore MISSING_HISTORY_MESSAGE
  ` + constants.CLIName + ` validate flow.yaml --watch            # Re-validate on every save`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			return RunValidate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.JSON, "json", "j", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on warnings as well as errors")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the config file (default: "+constants.DefaultConfigFileName+" if present)")
	cmd.Flags().StringSliceVar(&opts.Ignore, "ignore", nil, "Issue codes to leave out of the report (repeatable)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-validate whenever one of the files changes")

	_ = cmd.RegisterFlagCompletionFunc("ignore", completeIssueCodes)

	return cmd
}

// RunValidate validates opts.Files and writes the report to out.
func RunValidate(ctx context.Context, out io.Writer, opts ValidateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	cfg = cfg.WithIgnore(opts.Ignore...)
	if opts.Strict {
		cfg.Strict = true
	}

	filter, err := cfg.Filter()
	if err != nil {
		return err
	}

	files, err := fileutil.ExpandPaths(opts.Files, document.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no flow documents found in %v", opts.Files)
	}

	run := func() error {
		results := validateFiles(ctx, files, cfg, filter)
		if err := writeResults(out, results, opts.JSON); err != nil {
			return err
		}
		if failed(results, cfg.Strict) {
			return ErrValidationFailed
		}
		return nil
	}

	if !opts.Watch {
		return run()
	}

	validateLog.Printf("Watching %d files", len(files))
	return watchFiles(ctx, files, cfg.WatchDebounce(), func() {
		if err := run(); err != nil && !errors.Is(err, ErrValidationFailed) {
			PrintValidationError(err)
		}
	})
}

func completeIssueCodes(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	codes := validation.Codes()
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = string(c)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

// maxParallel is the configured parallelism, overridable from the
// environment. Zero or less means one per CPU.
func maxParallel(cfg *config.Config) int {
	return envutil.GetIntFromEnv(constants.MaxParallelEnvVar, cfg.MaxParallel, 0, 256, validateLog)
}

// validateFiles loads and validates every file concurrently. Results keep
// the order of files.
func validateFiles(ctx context.Context, files []string, cfg *config.Config, filter *validation.Filter) []FileResult {
	limit := maxParallel(cfg)
	registry := validation.DefaultRegistry()
	registry.SetMaxParallel(limit)
	validateLog.Printf("Rules: %v", registry.Rules())
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]FileResult, len(files))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				results[i] = FileResult{File: file, Error: err.Error()}
				return nil
			}
			results[i] = validateFile(file, cfg, registry, filter)
			return nil
		})
	}
	_ = g.Wait() // failures are recorded per file

	return results
}

func validateFile(file string, cfg *config.Config, registry *validation.Registry, filter *validation.Filter) FileResult {
	result := FileResult{File: file, Issues: []validation.Issue{}}

	doc, err := document.Load(file)
	if err != nil {
		validateLog.Printf("Failed to load %s: %v", file, err)
		result.Error = err.Error()
		return result
	}
	ctx, err := document.BuildContext(doc, cfg)
	if err != nil {
		result.Error = fmt.Sprintf("%s: %v", file, err)
		return result
	}

	issues := filter.Apply(registry.Run(ctx))
	validation.Sort(issues)
	if issues != nil {
		result.Issues = issues
	}
	validateLog.Printf("%s: %d issues", file, len(result.Issues))
	return result
}

func writeResults(out io.Writer, results []FileResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if r.Error != "" {
			fmt.Fprintln(out, FormatValidationError(errors.New(r.Error)))
			continue
		}
		fmt.Fprint(out, console.RenderReport(r.File, r.Issues))
	}
	return nil
}

// failed reports whether results should make the run fail.
func failed(results []FileResult, strict bool) bool {
	for _, r := range results {
		if r.Error != "" || validation.HasErrors(r.Issues) {
			return true
		}
		if _, warnings := validation.Count(r.Issues); strict && warnings > 0 {
			return true
		}
	}
	return false
}
