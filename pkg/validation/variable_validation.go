// This file provides validation for template variable references.
//
// # Variable Validation
//
// Every template of a connected agent, the flow response template and the
// templates of connected if and data store nodes are scanned for variables.
// Each variable must resolve, in this order, as:
//
//  1. a turn variable (turn.*), only inside history messages
//  2. a built-in library variable
//  3. a data store field imported by a connected data store node
//  4. a connected agent, by sanitized name, optionally followed by one of its
//     structured-output fields, or "response" when structured output is off
//
// # Validation Functions
//
//   - validateVariables() - Reports undefined and misplaced turn variables
//
// One issue is reported per template owner and variable, however many times
// the variable appears in that owner's templates.

package validation

import (
	"fmt"

	"github.com/githubnext/flowlint/pkg/constants"
	"github.com/githubnext/flowlint/pkg/logger"
)

var variableValidationLog = logger.New("validation:variable_validation")

// validateVariables resolves every variable of every connected template.
func validateVariables(ctx *Context) []Issue {
	var issues []Issue
	seen := map[string]bool{}

	for _, src := range collectTemplates(ctx) {
		for _, v := range src.variables() {
			res := resolveVariable(ctx, v, src.inHistory)
			if res.ok {
				continue
			}

			var issue Issue
			if res.kind == kindTurn {
				issue = turnOutsideHistoryIssue(src, v)
			} else {
				issue = undefinedVariableIssue(src, v, res)
			}
			if seen[issue.ID] {
				continue
			}
			seen[issue.ID] = true
			variableValidationLog.Printf("%s in %s/%s", issue.ID, src.ownerID, src.location)
			issues = append(issues, issue)
		}
	}
	return issues
}

func turnOutsideHistoryIssue(src templateSource, variable string) Issue {
	issue := newIssue(CodeTurnVariableOutsideHistory, append(src.subject(), variable)...)
	issue.Title = "Turn variable outside history"
	issue.Description = fmt.Sprintf("{{%s}} is only defined inside history messages, where it refers to one past turn.", variable)
	issue.Suggestion = "Move this block into a history message, or use a variable that exists for the whole prompt."
	issue.Metadata = map[string]any{
		"variable": variable,
		"location": src.location,
	}
	setAgent(&issue, src)
	return issue
}

func undefinedVariableIssue(src templateSource, variable string, res resolution) Issue {
	issue := newIssue(CodeUndefinedOutputVariable, append(src.subject(), variable)...)
	issue.Metadata = map[string]any{
		"referencedAgent": res.referenced,
		"variable":        variable,
		"location":        src.location,
	}

	switch {
	case res.kind == kindDataStore:
		issue.Title = "Data store field not imported"
		issue.Description = fmt.Sprintf("{{%s}} is a data store field, but no connected data store node imports it.", variable)
		issue.Suggestion = "Add the field to a data store node on the path from the start node."
	case res.field != "":
		issue.Title = "Undefined output field"
		issue.Description = fmt.Sprintf("{{%s}} refers to field %q, which %q does not produce.", variable, res.field, res.referenced)
		issue.Suggestion = fmt.Sprintf("Use {{%s.%s}} or add %q to the agent's structured output.", res.referenced, constants.ResponseField, res.field)
		issue.Metadata["field"] = res.field
	default:
		issue.Title = "Undefined variable"
		issue.Description = fmt.Sprintf("{{%s}} does not match a built-in variable, a data store field or a connected agent.", variable)
		issue.Suggestion = "Check the spelling, or connect the agent that produces this value to the flow."
	}
	setAgent(&issue, src)
	return issue
}

func setAgent(issue *Issue, src templateSource) {
	if src.agent != nil {
		issue.AgentID, issue.AgentName = src.agent.ID, src.agent.Name
	}
}
