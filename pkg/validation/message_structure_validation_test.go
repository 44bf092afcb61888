//go:build !integration

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githubnext/flowlint/pkg/flow"
)

func modelAgent(model string, messages ...flow.PromptMessage) flow.Agent {
	return flow.Agent{ID: "a1", Name: "Narrator", ModelName: model, PromptMessages: messages}
}

func TestValidateSystemMessageContiguity(t *testing.T) {
	sys := message(flow.RoleSystem, "You are {{user.name}}'s narrator.")
	usr := message(flow.RoleUser, "Continue.")
	asst := message(flow.RoleAssistant, "Once upon a time")

	tests := []struct {
		name      string
		agent     flow.Agent
		connected bool
		wantIssue bool
	}{
		{name: "google split system", agent: modelAgent("gemini-2.5-pro", sys, usr, sys), connected: true, wantIssue: true},
		{name: "anthropic split system", agent: modelAgent("claude-sonnet-4", sys, asst, sys), connected: true, wantIssue: true},
		{name: "history splits system", agent: modelAgent("claude-sonnet-4", sys, historyMessage("{{turn.content}}"), sys), connected: true, wantIssue: true},
		{name: "openai split system allowed", agent: modelAgent("gpt-4o", sys, usr, sys), connected: true, wantIssue: false},
		{name: "contiguous system", agent: modelAgent("gemini-2.5-pro", sys, sys, usr), connected: true, wantIssue: false},
		{name: "fewer than three messages", agent: modelAgent("gemini-2.5-pro", sys, usr), connected: true, wantIssue: false},
		{name: "no system messages", agent: modelAgent("gemini-2.5-pro", usr, asst, usr), connected: true, wantIssue: false},
		{name: "unresolved provider", agent: modelAgent("mystery-model", sys, usr, sys), connected: true, wantIssue: false},
		{name: "disconnected agent", agent: modelAgent("gemini-2.5-pro", sys, usr, sys), connected: false, wantIssue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := chainFlow(agentNode("a1"))
			if !tt.connected {
				f = withOrphans(chainFlow(), agentNode("a1"))
			}

			issues := validateSystemMessageContiguity(newTestContext(f, tt.agent))
			if !tt.wantIssue {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, CodeNonSystemMessageBetweenSystem, issues[0].Code)
			assert.Equal(t, SeverityError, issues[0].Severity)
			assert.Equal(t, "a1", issues[0].AgentID)
			assert.Equal(t, "Narrator", issues[0].AgentName)
		})
	}
}

func TestValidateSystemMessageContiguity_OneIssuePerAgent(t *testing.T) {
	sys := message(flow.RoleSystem, "rules")
	usr := message(flow.RoleUser, "go")
	a := modelAgent("gemini-2.5-pro", sys, usr, sys, usr, sys)

	issues := validateSystemMessageContiguity(newTestContext(chainFlow(agentNode("a1")), a))
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Metadata["messageIndex"])
}

func TestValidateMessageAfterSystem(t *testing.T) {
	sys := message(flow.RoleSystem, "rules")
	usr := message(flow.RoleUser, "go")
	asst := message(flow.RoleAssistant, "ok")
	hist := historyMessage("{{turn.content}}")
	split := flow.PromptMessage{UserPromptBlocks: []flow.PromptBlock{{Template: "{{turn.content}}"}}}

	tests := []struct {
		name      string
		agent     flow.Agent
		wantIssue bool
	}{
		{name: "google assistant after system", agent: modelAgent("gemini-2.5-pro", sys, asst), wantIssue: true},
		{name: "google user after system", agent: modelAgent("gemini-2.5-pro", sys, usr), wantIssue: false},
		{name: "google history after system", agent: modelAgent("gemini-2.5-pro", sys, hist), wantIssue: false},
		{name: "google split history after system", agent: modelAgent("gemini-2.5-pro", sys, split), wantIssue: false},
		{name: "google checks the last system message", agent: modelAgent("gemini-2.5-pro", sys, usr, sys, asst), wantIssue: true},
		{name: "google system is last", agent: modelAgent("gemini-2.5-pro", usr, sys), wantIssue: false},
		{name: "google no system", agent: modelAgent("gemini-2.5-pro", asst, usr), wantIssue: false},
		{name: "anthropic assistant after system", agent: modelAgent("claude-sonnet-4", sys, asst), wantIssue: false},
		{name: "openai assistant after system", agent: modelAgent("gpt-4o", sys, asst), wantIssue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := validateMessageAfterSystem(newTestContext(chainFlow(agentNode("a1")), tt.agent))
			if !tt.wantIssue {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, CodeMissingUserMessageAfterSystem, issues[0].Code)
			assert.Equal(t, SeverityError, issues[0].Severity)
			assert.Equal(t, "google", issues[0].Metadata["provider"])
		})
	}
}

func TestValidateHistoryUsage(t *testing.T) {
	tests := []struct {
		name      string
		messages  []flow.PromptMessage
		connected bool
		wantIssue bool
	}{
		{name: "history message", messages: []flow.PromptMessage{message(flow.RoleSystem, "x"), historyMessage("{{turn.content}}")}, connected: true},
		{name: "split history message", messages: []flow.PromptMessage{{AssistantPromptBlocks: []flow.PromptBlock{{Template: "x"}}}}, connected: true},
		{name: "history interpolation", messages: []flow.PromptMessage{message(flow.RoleUser, "Story so far: {{history}}")}, connected: true},
		{name: "history interpolation with spaces", messages: []flow.PromptMessage{message(flow.RoleUser, "{{ history }}")}, connected: true},
		{name: "no history", messages: []flow.PromptMessage{message(flow.RoleSystem, "x"), message(flow.RoleUser, "y")}, connected: true, wantIssue: true},
		{name: "history filtered is not a plain interpolation", messages: []flow.PromptMessage{message(flow.RoleUser, "{{ history | last }}")}, connected: true, wantIssue: true},
		{name: "no messages at all", messages: nil, connected: true, wantIssue: true},
		{name: "disconnected agent", messages: []flow.PromptMessage{message(flow.RoleUser, "y")}, connected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := chainFlow(agentNode("a1"))
			if !tt.connected {
				f = withOrphans(chainFlow(), agentNode("a1"))
			}
			a := flow.Agent{ID: "a1", Name: "Narrator", ModelName: "gpt-4o", PromptMessages: tt.messages}

			issues := validateHistoryUsage(newTestContext(f, a))
			if !tt.wantIssue {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, CodeMissingHistoryMessage, issues[0].Code)
			assert.Equal(t, SeverityWarning, issues[0].Severity)
			assert.Equal(t, "MISSING_HISTORY_MESSAGE:agent:a1", issues[0].ID)
		})
	}
}
