// Package constants holds names and defaults shared by the flowlint packages.
package constants

import "time"

// CLIName is the executable name used in help text and messages.
const CLIName = "flowlint"

// Version is set at build time with -ldflags "-X ...constants.Version=...".
var Version = "dev"

// DefaultConfigFileName is looked up in the working directory when no
// --config flag is given.
const DefaultConfigFileName = ".flowlint.yaml"

// SupportedDocumentMajor is the only flow document major version accepted.
const SupportedDocumentMajor = "v1"

// DefaultWatchDebounce delays a watch-mode re-run until edits settle.
const DefaultWatchDebounce = 300 * time.Millisecond

// MaxParallelEnvVar caps how many documents are loaded and how many rules
// run at once. 0 means one per CPU.
const MaxParallelEnvVar = "FLOWLINT_MAX_PARALLEL"

// Template variable names with fixed meaning.
const (
	// HistoryVariable expands to the conversation so far.
	HistoryVariable = "history"
	// TurnVariableRoot is the root of per-turn variables inside history messages.
	TurnVariableRoot = "turn"
	// ResponseField is the only field of an agent without structured output.
	ResponseField = "response"
	// DataStoreReference names the data store in issue metadata.
	DataStoreReference = "datastore"
)

// MCPToolName is the tool name exposed by `flowlint mcp-server`.
const MCPToolName = "validate_flow"
