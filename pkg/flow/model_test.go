//go:build !integration

package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptMessage_IsHistory(t *testing.T) {
	tests := []struct {
		name    string
		message PromptMessage
		want    bool
	}{
		{name: "history type", message: PromptMessage{Type: MessageTypeHistory}, want: true},
		{name: "history type capitalised", message: PromptMessage{Type: "History"}, want: true},
		{name: "split user blocks", message: PromptMessage{UserPromptBlocks: []PromptBlock{{Template: "{{turn.content}}"}}}, want: true},
		{name: "split assistant blocks", message: PromptMessage{AssistantPromptBlocks: []PromptBlock{{Template: "x"}}}, want: true},
		{name: "plain system", message: PromptMessage{Type: MessageTypePlain, Role: RoleSystem}, want: false},
		{name: "untyped user", message: PromptMessage{Role: RoleUser, PromptBlocks: []PromptBlock{{Template: "hi"}}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.message.IsHistory())
		})
	}
}

func TestPromptMessage_IsSystem(t *testing.T) {
	assert.True(t, PromptMessage{Role: RoleSystem}.IsSystem())
	assert.False(t, PromptMessage{Role: RoleUser}.IsSystem())
	assert.False(t, PromptMessage{Type: MessageTypeHistory, Role: RoleSystem}.IsSystem())
}

func TestPromptMessage_Blocks(t *testing.T) {
	m := PromptMessage{
		PromptBlocks:          []PromptBlock{{Template: "a"}},
		UserPromptBlocks:      []PromptBlock{{Template: "u"}},
		AssistantPromptBlocks: []PromptBlock{{Template: "b"}},
	}

	var got []string
	for _, b := range m.Blocks() {
		got = append(got, b.Template)
	}
	assert.Equal(t, []string{"a", "u", "b"}, got)
	assert.Empty(t, PromptMessage{}.Blocks())
}

func TestPromptBlock_IsPlain(t *testing.T) {
	assert.True(t, PromptBlock{}.IsPlain())
	assert.True(t, PromptBlock{Type: BlockTypePlain}.IsPlain())
	assert.False(t, PromptBlock{Type: "image"}.IsPlain())
}

func TestAgent_HasSchemaField(t *testing.T) {
	a := &Agent{SchemaFields: []SchemaField{{Name: "summary"}, {Name: "mood"}}}
	assert.True(t, a.HasSchemaField("summary"))
	assert.False(t, a.HasSchemaField("response"))
}

func TestDecodeNodeData(t *testing.T) {
	tests := []struct {
		name     string
		typ      NodeType
		raw      map[string]any
		expected NodeData
	}{
		{name: "start", typ: NodeTypeStart, raw: map[string]any{"label": "Start"}, expected: StartData{}},
		{name: "end", typ: NodeTypeEnd, raw: nil, expected: EndData{}},
		{name: "agent", typ: NodeTypeAgent, raw: map[string]any{"agentId": "a1", "position": map[string]any{"x": 1}}, expected: AgentData{AgentID: "a1"}},
		{
			name: "if",
			typ:  NodeTypeIf,
			raw: map[string]any{
				"conditions":      []any{map[string]any{"value1": "{{x}}", "operator": "==", "value2": "1"}},
				"draftConditions": []any{map[string]any{"value1": "{{y}}"}},
			},
			expected: IfData{
				Conditions:      []Condition{{Value1: "{{x}}", Operator: "==", Value2: "1"}},
				DraftConditions: []Condition{{Value1: "{{y}}"}},
			},
		},
		{
			name: "data store",
			typ:  NodeTypeDataStore,
			raw: map[string]any{
				"dataStoreFields": []any{map[string]any{"schemaFieldId": "f1", "logic": "{{ score + 1 }}"}},
			},
			expected: DataStoreData{DataStoreFields: []DataStoreNodeField{{SchemaFieldID: "f1", Logic: "{{ score + 1 }}"}}},
		},
		{
			name:     "agent with wrong shape",
			typ:      NodeTypeAgent,
			raw:      map[string]any{"agentId": 12},
			expected: UnknownData{Raw: map[string]any{"agentId": 12}},
		},
		{
			name:     "unknown type",
			typ:      "comment",
			raw:      map[string]any{"text": "note"},
			expected: UnknownData{Raw: map[string]any{"text": "note"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecodeNodeData(tt.typ, tt.raw))
		})
	}
}
