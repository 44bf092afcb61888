//go:build !integration

package validation

import (
	"fmt"

	"github.com/githubnext/flowlint/pkg/flow"
	"github.com/githubnext/flowlint/pkg/provider"
)

// testConnections maps the model names used in tests to providers.
var testConnections = []provider.Connection{
	{ID: "openai", Provider: provider.OpenAI, Models: []string{"gpt-4o"}},
	{ID: "anthropic", Provider: provider.Anthropic, Models: []string{"claude-sonnet-4"}},
	{ID: "google", Provider: provider.Google, Models: []string{"gemini-2.5-pro"}},
	{ID: "deepseek", Provider: provider.DeepSeek, Models: []string{"deepseek-chat"}},
	{ID: "router", Provider: provider.OpenRouter, Models: []string{"mixtral-8x7b"}},
}

// chainFlow builds start -> nodes... -> end, wiring the nodes in order.
func chainFlow(nodes ...flow.Node) *flow.Flow {
	f := &flow.Flow{}
	f.Nodes = append(f.Nodes, flow.Node{ID: "start", Type: flow.NodeTypeStart, Data: flow.StartData{}})
	f.Nodes = append(f.Nodes, nodes...)
	f.Nodes = append(f.Nodes, flow.Node{ID: "end", Type: flow.NodeTypeEnd, Data: flow.EndData{}})
	for i := 0; i+1 < len(f.Nodes); i++ {
		f.Edges = append(f.Edges, flow.Edge{
			ID:     fmt.Sprintf("e%d", i),
			Source: f.Nodes[i].ID,
			Target: f.Nodes[i+1].ID,
		})
	}
	return f
}

// withOrphans adds nodes that no edge reaches.
func withOrphans(f *flow.Flow, nodes ...flow.Node) *flow.Flow {
	f.Nodes = append(f.Nodes, nodes...)
	return f
}

func agentNode(agentID string) flow.Node {
	return flow.Node{ID: "node-" + agentID, Type: flow.NodeTypeAgent, Data: flow.AgentData{AgentID: agentID}}
}

func ifNode(id string, conds ...flow.Condition) flow.Node {
	return flow.Node{ID: id, Type: flow.NodeTypeIf, Data: flow.IfData{Conditions: conds}}
}

func dataStoreNode(id string, fields ...flow.DataStoreNodeField) flow.Node {
	return flow.Node{ID: id, Type: flow.NodeTypeDataStore, Data: flow.DataStoreData{DataStoreFields: fields}}
}

func message(role flow.Role, templates ...string) flow.PromptMessage {
	m := flow.PromptMessage{Type: flow.MessageTypePlain, Role: role}
	for _, tpl := range templates {
		m.PromptBlocks = append(m.PromptBlocks, flow.PromptBlock{Type: flow.BlockTypePlain, Template: tpl})
	}
	return m
}

func historyMessage(templates ...string) flow.PromptMessage {
	m := flow.PromptMessage{Type: flow.MessageTypeHistory}
	for _, tpl := range templates {
		m.PromptBlocks = append(m.PromptBlocks, flow.PromptBlock{Type: flow.BlockTypePlain, Template: tpl})
	}
	return m
}

// agent returns a connected-ready agent on gpt-4o with a history message so
// it does not trip the history check.
func agent(id, name string, messages ...flow.PromptMessage) flow.Agent {
	return flow.Agent{
		ID:             id,
		Name:           name,
		ModelName:      "gpt-4o",
		PromptMessages: append(messages, historyMessage("{{turn.content}}")),
	}
}

func structured(a flow.Agent, fields ...string) flow.Agent {
	a.EnabledStructuredOutput = true
	for _, f := range fields {
		a.SchemaFields = append(a.SchemaFields, flow.SchemaField{ID: "f-" + f, Name: f, Type: "string"})
	}
	return a
}

func newTestContext(f *flow.Flow, agents ...flow.Agent) *Context {
	return NewContext(f, agents, testConnections, nil)
}

func issueCodes(issues []Issue) []Code {
	out := make([]Code, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func issuesWithCode(issues []Issue, code Code) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Code == code {
			out = append(out, i)
		}
	}
	return out
}
