// This file provides validation for the order of an agent's prompt messages.
//
// # Message Structure Validation
//
// Some providers fold all system messages into one system prompt, or expect
// a particular message right after it. A prompt that ignores those rules is
// rejected or silently rearranged by the provider.
//
// # Validation Functions
//
//   - validateSystemMessageContiguity() - System messages split by other messages (Google, Anthropic)
//   - validateMessageAfterSystem() - Message after the last system message must be user or history (Google)
//   - validateHistoryUsage() - Agent never includes the conversation history
//
// All three check connected agents only. The provider is found from the
// agent's model name; agents whose provider cannot be resolved are skipped by
// the provider-specific checks.

package validation

import (
	"fmt"
	"regexp"

	"github.com/githubnext/flowlint/pkg/flow"
	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/provider"
)

var messageStructureValidationLog = logger.New("validation:message_structure_validation")

// historyInterpolationPattern matches a {{history}} interpolation, with or
// without inner whitespace.
var historyInterpolationPattern = regexp.MustCompile(`\{\{-?\s*history\s*-?\}\}`)

// validateSystemMessageContiguity reports agents whose system messages are
// separated by a non-system message. One issue per agent.
func validateSystemMessageContiguity(ctx *Context) []Issue {
	var issues []Issue
	for _, a := range ctx.connectedAgentList() {
		id, ok := ctx.providerFor(a)
		if !ok || !provider.RequiresContiguousSystemMessages(id) {
			continue
		}
		if len(a.PromptMessages) < 3 {
			continue
		}

		seenSystem, gap := false, false
		for i, m := range a.PromptMessages {
			if !m.IsSystem() {
				if seenSystem {
					gap = true
				}
				continue
			}
			if gap {
				messageStructureValidationLog.Printf("Agent %s: system message %d follows a non-system message", a.ID, i)
				issue := newIssue(CodeNonSystemMessageBetweenSystem, ownerAgent, a.ID)
				issue.Title = "Non-system message between system messages"
				issue.Description = fmt.Sprintf("%s merges all system messages into one system prompt, but %q has a non-system message between its system messages.", id.DisplayName(), a.Name)
				issue.Suggestion = "Move all system messages to the top of the prompt, before any user, assistant or history message."
				issue.AgentID, issue.AgentName = a.ID, a.Name
				issue.Metadata = map[string]any{"provider": string(id), "messageIndex": i}
				issues = append(issues, issue)
				break
			}
			seenSystem = true
		}
	}
	return issues
}

// validateMessageAfterSystem reports agents whose message following the last
// system message is neither a user message nor a history message.
func validateMessageAfterSystem(ctx *Context) []Issue {
	var issues []Issue
	for _, a := range ctx.connectedAgentList() {
		id, ok := ctx.providerFor(a)
		if !ok || !provider.RequiresUserAfterSystem(id) {
			continue
		}

		last := -1
		for i, m := range a.PromptMessages {
			if m.IsSystem() {
				last = i
			}
		}
		if last < 0 || last+1 >= len(a.PromptMessages) {
			continue
		}

		next := a.PromptMessages[last+1]
		if next.IsHistory() || next.Role == flow.RoleUser {
			continue
		}

		messageStructureValidationLog.Printf("Agent %s: message %d after the system prompt has role %q", a.ID, last+1, next.Role)
		issue := newIssue(CodeMissingUserMessageAfterSystem, ownerAgent, a.ID)
		issue.Title = "Missing user message after system prompt"
		issue.Description = fmt.Sprintf("%s expects the message after the system prompt to come from the user, but %q continues with a %s message.", id.DisplayName(), a.Name, roleName(next.Role))
		issue.Suggestion = "Add a user message or a history message right after the last system message."
		issue.AgentID, issue.AgentName = a.ID, a.Name
		issue.Metadata = map[string]any{"provider": string(id), "messageIndex": last + 1}
		issues = append(issues, issue)
	}
	return issues
}

// validateHistoryUsage warns about agents that never see the conversation:
// no history message and no plain block interpolating history.
func validateHistoryUsage(ctx *Context) []Issue {
	var issues []Issue
	for _, a := range ctx.connectedAgentList() {
		if usesHistory(a) {
			continue
		}

		messageStructureValidationLog.Printf("Agent %s has no history", a.ID)
		issue := newIssue(CodeMissingHistoryMessage, ownerAgent, a.ID)
		issue.Title = "No conversation history"
		issue.Description = fmt.Sprintf("%q does not include the conversation history, so it only sees the current prompt.", a.Name)
		issue.Suggestion = "Add a history message, or use {{history}} in a prompt block."
		issue.AgentID, issue.AgentName = a.ID, a.Name
		issues = append(issues, issue)
	}
	return issues
}

func usesHistory(a *flow.Agent) bool {
	for _, m := range a.PromptMessages {
		if m.IsHistory() {
			return true
		}
		for _, b := range m.Blocks() {
			if b.IsPlain() && historyInterpolationPattern.MatchString(b.Template) {
				return true
			}
		}
	}
	return false
}

func roleName(r flow.Role) string {
	if r == "" {
		return "untyped"
	}
	return string(r)
}
