package validation

import (
	"fmt"

	"github.com/githubnext/flowlint/pkg/flow"
	"github.com/githubnext/flowlint/pkg/template"
)

// responseTemplateOwner is the owner id used for the flow response template.
const responseTemplateOwner = "responseTemplate"

// templateSource is one template-bearing field of a connected agent or node,
// or the flow response template.
type templateSource struct {
	// ownerKind is ownerAgent, ownerNode or ownerFlow.
	ownerKind string
	// ownerID is the agent id, the node id or responseTemplateOwner.
	ownerID string
	// agent is set when the template belongs to an agent.
	agent    *flow.Agent
	location string
	text     string
	// inHistory is true for blocks of history messages.
	inHistory bool
	// renderable is true for plain prompt blocks and the response template.
	renderable bool
}

// subject identifies the owner in issue ids. The flow owns only the
// response template, so its id is left out.
func (s templateSource) subject() []string {
	if s.ownerKind == ownerFlow {
		return []string{ownerFlow}
	}
	return []string{s.ownerKind, s.ownerID}
}

func (s templateSource) variables() []string {
	return template.ExtractVariables(s.text)
}

// collectTemplates gathers every template of the connected agents, the
// response template and the connected if and data store nodes, in a stable
// order. Empty templates are skipped.
func collectTemplates(ctx *Context) []templateSource {
	var out []templateSource
	add := func(s templateSource) {
		if s.text != "" {
			out = append(out, s)
		}
	}

	for _, a := range ctx.connectedAgentList() {
		for i, m := range a.PromptMessages {
			history := m.IsHistory()
			blockGroups := []struct {
				name   string
				blocks []flow.PromptBlock
			}{
				{"promptBlocks", m.PromptBlocks},
				{"userPromptBlocks", m.UserPromptBlocks},
				{"assistantPromptBlocks", m.AssistantPromptBlocks},
			}
			for _, group := range blockGroups {
				for j, b := range group.blocks {
					add(templateSource{
						ownerKind:  ownerAgent,
						ownerID:    a.ID,
						agent:      a,
						location:   fmt.Sprintf("promptMessages[%d].%s[%d]", i, group.name, j),
						text:       b.Template,
						inHistory:  history,
						renderable: b.IsPlain(),
					})
				}
			}
		}

		if !a.EnabledStructuredOutput {
			continue
		}
		for i, f := range a.SchemaFields {
			add(templateSource{
				ownerKind: ownerAgent,
				ownerID:   a.ID,
				agent:     a,
				location:  fmt.Sprintf("schemaFields[%d].description", i),
				text:     f.Description,
			})
		}
		add(templateSource{ownerKind: ownerAgent, ownerID: a.ID, agent: a, location: "schemaDescription", text: a.SchemaDescription})
	}

	if ctx.Flow != nil {
		add(templateSource{
			ownerKind:  ownerFlow,
			ownerID:    responseTemplateOwner,
			location:   responseTemplateOwner,
			text:       ctx.Flow.ResponseTemplate,
			renderable: true,
		})
	}

	for _, n := range ctx.connectedNodeList() {
		switch d := n.Data.(type) {
		case flow.IfData:
			addConditions(add, n.ID, "conditions", d.Conditions)
			addConditions(add, n.ID, "draftConditions", d.DraftConditions)
		case flow.DataStoreData:
			for i, f := range d.DataStoreFields {
				add(templateSource{
					ownerKind: ownerNode,
					ownerID:   n.ID,
					location:  fmt.Sprintf("dataStoreFields[%d].logic", i),
					text:     f.Logic,
				})
			}
		}
	}
	return out
}

func addConditions(add func(templateSource), nodeID, group string, conds []flow.Condition) {
	for i, c := range conds {
		add(templateSource{ownerKind: ownerNode, ownerID: nodeID, location: fmt.Sprintf("%s[%d].value1", group, i), text: c.Value1})
		add(templateSource{ownerKind: ownerNode, ownerID: nodeID, location: fmt.Sprintf("%s[%d].value2", group, i), text: c.Value2})
	}
}
