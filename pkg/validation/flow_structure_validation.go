// This file provides validation for the overall shape of the flow graph.
//
// # Flow Structure Validation
//
// A flow can only run when there is a path from its start node to an end
// node. Reachability itself lives in pkg/flow; this file only reports the
// result.
//
// # Validation Functions
//
//   - validateFlowStructure() - Reports a flow with no start-to-end path

package validation

import (
	"github.com/githubnext/flowlint/pkg/flow"
	"github.com/githubnext/flowlint/pkg/logger"
)

var flowStructureValidationLog = logger.New("validation:flow_structure_validation")

// validateFlowStructure returns a single INVALID_FLOW_STRUCTURE error when
// no end node is reachable from the start node.
func validateFlowStructure(ctx *Context) []Issue {
	if flow.HasValidFlow(ctx.Flow) {
		return nil
	}

	flowStructureValidationLog.Print("Flow has no path from start to end")
	issue := newIssue(CodeInvalidFlowStructure, ownerFlow)
	issue.Title = "Incomplete flow"
	issue.Description = "There is no path from the start node to an end node, so the flow cannot run."
	issue.Suggestion = "Connect the start node through your agents to an end node."
	return []Issue{issue}
}
