// This file provides validation for outputs nothing reads.
//
// # Unused Variable Validation
//
// A structured-output field that no other template reads is wasted tokens,
// and a data store field nothing reads is dead state. Both are warnings.
//
// # Validation Functions
//
//   - validateUnusedOutputVariables() - Structured-output fields of connected agents never referenced
//   - validateUnusedDataStoreFields() - Declared data store fields never referenced
//
// A bare reference to an agent ({{analyzer}}) uses all of its fields.

package validation

import (
	"fmt"
	"strings"

	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/flow"
	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/stringutil"
)

var unusedVariableValidationLog = logger.New("validation:unused_variable_validation")

// scannedTemplate pairs a template with the variables found in it. agent is
// nil for templates that do not belong to an agent.
type scannedTemplate struct {
	agent     *flow.Agent
	variables []string
}

func scanTemplates(ctx *Context) []scannedTemplate {
	sources := collectTemplates(ctx)
	out := make([]scannedTemplate, 0, len(sources))
	for _, src := range sources {
		out = append(out, scannedTemplate{agent: src.agent, variables: src.variables()})
	}
	return out
}

// validateUnusedOutputVariables warns about structured-output fields of
// connected agents that no other connected template reads.
func validateUnusedOutputVariables(ctx *Context) []Issue {
	scanned := scanTemplates(ctx)

	var issues []Issue
	for _, a := range ctx.connectedAgentList() {
		if !a.EnabledStructuredOutput || len(a.SchemaFields) == 0 {
			continue
		}
		ref := stringutil.SanitizeIdentifier(a.Name)
		if ref == "" {
			continue
		}

		bare := false
		usedFields := map[string]bool{}
		for _, t := range scanned {
			if t.agent == a {
				continue
			}
			for _, v := range t.variables {
				root, rest, hasRest := strings.Cut(v, ".")
				if root != ref {
					continue
				}
				if !hasRest {
					bare = true
					continue
				}
				usedFields[stringutil.RootSegment(rest)] = true
			}
		}
		if bare {
			continue
		}

		for _, f := range a.SchemaFields {
			if f.Name == "" || usedFields[f.Name] {
				continue
			}
			unusedVariableValidationLog.Printf("Agent %s field %s is never read", a.ID, f.Name)
			issue := newIssue(CodeUnusedOutputVariable, ownerAgent, a.ID, f.Name)
			issue.Title = "Unused output field"
			issue.Description = fmt.Sprintf("%q produces the field %q, but no connected template reads {{%s.%s}}.", a.Name, f.Name, ref, f.Name)
			issue.Suggestion = "Reference the field in a later agent or the response template, or remove it from the structured output."
			issue.AgentID, issue.AgentName = a.ID, a.Name
			issue.Metadata = map[string]any{
				"referencedAgent": ref,
				"variable":        ref + "." + f.Name,
				"field":           f.Name,
			}
			issues = append(issues, issue)
		}
	}
	return issues
}

// validateUnusedDataStoreFields warns about declared data store fields that
// no connected template reads.
func validateUnusedDataStoreFields(ctx *Context) []Issue {
	if ctx.Flow == nil || ctx.Flow.DataStoreSchema == nil {
		return nil
	}

	used := map[string]bool{}
	for _, t := range scanTemplates(ctx) {
		for _, v := range t.variables {
			used[stringutil.RootSegment(v)] = true
		}
	}

	var issues []Issue
	for _, f := range ctx.Flow.DataStoreSchema.Fields {
		if f.Name == "" || used[f.Name] {
			continue
		}
		unusedVariableValidationLog.Printf("Data store field %s is never read", f.Name)
		issue := newIssue(CodeUnusedOutputVariable, ownerDataStore, f.Name)
		issue.Title = "Unused data store field"
		issue.Description = fmt.Sprintf("The data store declares %q, but no connected template reads {{%s}}.", f.Name, f.Name)
		issue.Suggestion = "Reference the field in a template, or remove it from the data store."
		issue.Metadata = map[string]any{
			"referencedAgent": constants.DataStoreReference,
			"variable":        f.Name,
			"field":           f.Name,
		}
		issues = append(issues, issue)
	}
	return issues
}
