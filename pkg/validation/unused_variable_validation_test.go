//go:build !integration

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/githubnext/flowlint/pkg/flow"
)

func TestValidateUnusedOutputVariables(t *testing.T) {
	analyzer := structured(agent("a1", "Analyzer", message(flow.RoleSystem, "x")), "summary", "mood")

	tests := []struct {
		name          string
		consumer      string
		response      string
		ifValue       string
		selfReference string
		wantUnused    []string
	}{
		{name: "one field read", consumer: "{{ analyzer.summary }}", wantUnused: []string{"mood"}},
		{name: "both fields read", consumer: "{{ analyzer.summary }} {{ analyzer.mood }}"},
		{name: "bare reference reads all", consumer: "{{ analyzer }}"},
		{name: "nothing read", consumer: "Hello", wantUnused: []string{"summary", "mood"}},
		{name: "response template counts", consumer: "Hello", response: "{{ analyzer.mood }}", wantUnused: []string{"summary"}},
		{name: "if node counts", consumer: "Hello", ifValue: "{{ analyzer.summary }}", wantUnused: []string{"mood"}},
		{name: "loop over field counts", consumer: "{% for m in analyzer.mood %}{{ m }}{% endfor %}", wantUnused: []string{"summary"}},
		{name: "self reference does not count", consumer: "Hello", selfReference: "{{ analyzer.summary }}", wantUnused: []string{"summary", "mood"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			producer := analyzer
			if tt.selfReference != "" {
				producer.PromptMessages = append([]flow.PromptMessage{message(flow.RoleUser, tt.selfReference)}, producer.PromptMessages...)
			}
			consumer := agent("a2", "Writer", message(flow.RoleUser, tt.consumer))

			nodes := []flow.Node{agentNode("a1"), agentNode("a2")}
			if tt.ifValue != "" {
				nodes = append(nodes, ifNode("if1", flow.Condition{Value1: tt.ifValue, Operator: "!=", Value2: ""}))
			}
			f := chainFlow(nodes...)
			f.ResponseTemplate = tt.response

			issues := validateUnusedOutputVariables(newTestContext(f, producer, consumer))

			var fields []string
			for _, issue := range issues {
				assert.Equal(t, CodeUnusedOutputVariable, issue.Code)
				assert.Equal(t, SeverityWarning, issue.Severity)
				assert.Equal(t, "analyzer", issue.Metadata["referencedAgent"])
				assert.Equal(t, "a1", issue.AgentID)
				fields = append(fields, issue.Metadata["field"].(string))
			}
			assert.Equal(t, tt.wantUnused, fields)
		})
	}
}

func TestValidateUnusedOutputVariables_Skips(t *testing.T) {
	t.Run("structured output disabled", func(t *testing.T) {
		a := agent("a1", "Analyzer", message(flow.RoleSystem, "x"))
		a.SchemaFields = []flow.SchemaField{{Name: "summary"}}
		assert.Empty(t, validateUnusedOutputVariables(newTestContext(chainFlow(agentNode("a1")), a)))
	})

	t.Run("disconnected producer", func(t *testing.T) {
		a := structured(agent("a1", "Analyzer", message(flow.RoleSystem, "x")), "summary")
		f := withOrphans(chainFlow(), agentNode("a1"))
		assert.Empty(t, validateUnusedOutputVariables(newTestContext(f, a)))
	})

	t.Run("disconnected consumer does not count", func(t *testing.T) {
		a := structured(agent("a1", "Analyzer", message(flow.RoleSystem, "x")), "summary")
		reader := agent("a2", "Reader", message(flow.RoleUser, "{{ analyzer.summary }}"))
		f := withOrphans(chainFlow(agentNode("a1")), agentNode("a2"))

		issues := validateUnusedOutputVariables(newTestContext(f, a, reader))
		require.Len(t, issues, 1)
		assert.Equal(t, "UNUSED_OUTPUT_VARIABLE:agent:a1:summary", issues[0].ID)
	})
}

func TestValidateUnusedOutputVariables_NodeSharingAgentID(t *testing.T) {
	a := structured(agent("a1", "Analyzer", message(flow.RoleSystem, "x")), "summary")
	check := ifNode("a1", flow.Condition{Value1: "{{ analyzer.summary }}", Operator: "==", Value2: "done"})

	assert.Empty(t, validateUnusedOutputVariables(newTestContext(chainFlow(agentNode("a1"), check), a)))
}

func TestUnusedDataStoreField_AgentNamedDatastore(t *testing.T) {
	a := structured(agent("datastore", "Analyzer", message(flow.RoleSystem, "x")), "mood")
	f := chainFlow(agentNode("datastore"))
	f.DataStoreSchema = &flow.DataStoreSchema{Fields: []flow.DataStoreField{
		{ID: "f1", Name: "mood", Type: flow.DataStoreFieldString, InitialValue: "calm"},
	}}

	issues := issuesWithCode(Validate(newTestContext(f, a)), CodeUnusedOutputVariable)
	assert.Equal(t, []string{
		"UNUSED_OUTPUT_VARIABLE:agent:datastore:mood",
		"UNUSED_OUTPUT_VARIABLE:datastore:mood",
	}, issueIDs(issues))
}

func TestValidateUnusedDataStoreFields(t *testing.T) {
	schema := &flow.DataStoreSchema{Fields: []flow.DataStoreField{
		{ID: "f1", Name: "score", Type: flow.DataStoreFieldNumber, InitialValue: "0"},
		{ID: "f2", Name: "mood", Type: flow.DataStoreFieldString, InitialValue: "calm"},
	}}

	tests := []struct {
		name       string
		template   string
		logic      string
		wantUnused []string
	}{
		{name: "both read", template: "{{ score }} {{ mood }}"},
		{name: "path under field counts", template: "{{ score.value }} {{ mood }}"},
		{name: "one unused", template: "{{ score }}", wantUnused: []string{"mood"}},
		{name: "read in data store logic", template: "{{ score }}", logic: "{{ mood | upper }}"},
		{name: "condition usage counts", template: "{% if mood == 'calm' %}{{ score }}{% endif %}"},
		{name: "none read", template: "Hello", wantUnused: []string{"score", "mood"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := chainFlow(
				dataStoreNode("ds", flow.DataStoreNodeField{SchemaFieldID: "f1", Logic: tt.logic}),
				agentNode("a1"),
			)
			f.DataStoreSchema = schema
			a := agent("a1", "Writer", message(flow.RoleUser, tt.template))

			issues := validateUnusedDataStoreFields(newTestContext(f, a))

			var fields []string
			for _, issue := range issues {
				assert.Equal(t, CodeUnusedOutputVariable, issue.Code)
				assert.Equal(t, SeverityWarning, issue.Severity)
				assert.Equal(t, "datastore", issue.Metadata["referencedAgent"])
				assert.Empty(t, issue.AgentID)
				fields = append(fields, issue.Metadata["field"].(string))
			}
			assert.Equal(t, tt.wantUnused, fields)
		})
	}
}

func TestValidateUnusedDataStoreFields_NoSchema(t *testing.T) {
	assert.Empty(t, validateUnusedDataStoreFields(newTestContext(chainFlow())))
}
