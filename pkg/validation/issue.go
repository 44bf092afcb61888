package validation

import (
	"cmp"
	"slices"
	"strings"
)

// Severity says whether an issue blocks running the flow.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code identifies the rule an issue came from.
type Code string

const (
	CodeInvalidFlowStructure          Code = "INVALID_FLOW_STRUCTURE"
	CodeNonSystemMessageBetweenSystem Code = "NON_SYSTEM_MESSAGE_BETWEEN_SYSTEM_MESSAGES"
	CodeMissingUserMessageAfterSystem Code = "MISSING_USER_MESSAGE_AFTER_SYSTEM"
	CodeMissingHistoryMessage         Code = "MISSING_HISTORY_MESSAGE"
	CodeUndefinedOutputVariable       Code = "UNDEFINED_OUTPUT_VARIABLE"
	CodeTurnVariableOutsideHistory    Code = "TURN_VARIABLE_OUTSIDE_HISTORY"
	CodeUnusedOutputVariable          Code = "UNUSED_OUTPUT_VARIABLE"
	CodeSyntaxError                   Code = "SYNTAX_ERROR"
	CodeUnsupportedParameters         Code = "UNSUPPORTED_PARAMETERS"
	CodeUndefinedProviderParameter    Code = "UNDEFINED_PROVIDER_PARAMETER"
	CodeParameterOutOfRange           Code = "PARAMETER_OUT_OF_RANGE"
	CodeDataStoreMissingInitialValue  Code = "DATA_STORE_MISSING_INITIAL_VALUE"
	CodeDataStoreInvalidInitialValue  Code = "DATA_STORE_INVALID_INITIAL_VALUE"
)

// severities is fixed per code; no rule picks a severity itself.
var severities = map[Code]Severity{
	CodeInvalidFlowStructure:          SeverityError,
	CodeNonSystemMessageBetweenSystem: SeverityError,
	CodeMissingUserMessageAfterSystem: SeverityError,
	CodeMissingHistoryMessage:         SeverityWarning,
	CodeUndefinedOutputVariable:       SeverityError,
	CodeTurnVariableOutsideHistory:    SeverityError,
	CodeUnusedOutputVariable:          SeverityWarning,
	CodeSyntaxError:                   SeverityError,
	CodeUnsupportedParameters:         SeverityWarning,
	CodeUndefinedProviderParameter:    SeverityWarning,
	CodeParameterOutOfRange:           SeverityWarning,
	CodeDataStoreMissingInitialValue:  SeverityWarning,
	CodeDataStoreInvalidInitialValue:  SeverityWarning,
}

// Codes returns every issue code in a stable order.
func Codes() []Code {
	codes := make([]Code, 0, len(severities))
	for c := range severities {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// SeverityOf returns the fixed severity of code. Unknown codes are errors.
func SeverityOf(code Code) Severity {
	if s, ok := severities[code]; ok {
		return s
	}
	return SeverityError
}

// KnownCode reports whether code is produced by one of the rules.
func KnownCode(code string) bool {
	_, ok := severities[Code(code)]
	return ok
}

// Issue is one finding. ID is derived from the code and the subject the
// issue is about, so re-running validation over the same flow yields the
// same ids.
type Issue struct {
	ID          string         `json:"id"`
	Code        Code           `json:"code"`
	Severity    Severity       `json:"severity"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Suggestion  string         `json:"suggestion,omitempty"`
	AgentID     string         `json:"agentId,omitempty"`
	AgentName   string         `json:"agentName,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Owner kinds lead the subject of an issue id, so an agent and a node that
// share an id never produce the same issue id.
const (
	ownerAgent     = "agent"
	ownerNode      = "node"
	ownerFlow      = "flow"
	ownerDataStore = "datastore"
)

// newIssue starts an issue for code about the subject built from parts.
func newIssue(code Code, subject ...string) Issue {
	id := string(code)
	if len(subject) > 0 {
		id += ":" + strings.Join(subject, ":")
	}
	return Issue{ID: id, Code: code, Severity: SeverityOf(code)}
}

// IsError reports whether the issue has error severity.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// Deduplicate keeps the first issue for each id, preserving order.
func Deduplicate(issues []Issue) []Issue {
	seen := make(map[string]bool, len(issues))
	out := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if seen[issue.ID] {
			continue
		}
		seen[issue.ID] = true
		out = append(out, issue)
	}
	return out
}

// Count returns the number of errors and warnings in issues.
func Count(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		if issue.IsError() {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	return slices.ContainsFunc(issues, Issue.IsError)
}

// Sort orders issues errors first, then by id.
func Sort(issues []Issue) {
	slices.SortStableFunc(issues, func(a, b Issue) int {
		if a.IsError() != b.IsError() {
			if a.IsError() {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
