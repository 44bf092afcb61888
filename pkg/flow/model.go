// Package flow models a prompt flow: a directed graph of start, end, agent
// and control nodes, plus the agents the agent nodes point at.
//
// Values in this package are read-only inputs to validation. Nothing here
// executes a flow.
package flow

import "strings"

// NodeType is the discriminator of a node's data payload.
type NodeType string

const (
	NodeTypeStart     NodeType = "start"
	NodeTypeEnd       NodeType = "end"
	NodeTypeAgent     NodeType = "agent"
	NodeTypeIf        NodeType = "if"
	NodeTypeDataStore NodeType = "dataStore"
)

// Flow is the graph plus the flow-wide data store schema and response template.
type Flow struct {
	Nodes            []Node
	Edges            []Edge
	DataStoreSchema  *DataStoreSchema
	ResponseTemplate string
}

// Node is one vertex of the graph. Data holds the payload variant that
// matches Type; nodes of unrecognised types carry UnknownData.
type Node struct {
	ID   string
	Type NodeType
	Data NodeData
}

// Edge connects two nodes. SourceHandle names the branch of an if node the
// edge leaves from ("true", "false", or a condition id); it does not affect
// reachability.
type Edge struct {
	ID           string `json:"id,omitempty"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
}

// NodeData is implemented only by the payload types in this package.
type NodeData interface {
	nodeType() NodeType
}

// StartData is the payload of the start node.
type StartData struct{}

// EndData is the payload of an end node.
type EndData struct{}

// AgentData points an agent node at an entry of the agent set.
type AgentData struct {
	AgentID string `json:"agentId"`
}

// IfData holds the branch conditions of an if node. DraftConditions are
// conditions still being edited in the authoring UI; they are templates too.
type IfData struct {
	Conditions      []Condition `json:"conditions,omitempty"`
	DraftConditions []Condition `json:"draftConditions,omitempty"`
}

// Condition compares two template expressions.
type Condition struct {
	ID       string `json:"id,omitempty"`
	Value1   string `json:"value1,omitempty"`
	Operator string `json:"operator,omitempty"`
	Value2   string `json:"value2,omitempty"`
}

// DataStoreData lists the data store fields a node imports, each optionally
// updated by a logic template.
type DataStoreData struct {
	DataStoreFields []DataStoreNodeField `json:"dataStoreFields,omitempty"`
}

// DataStoreNodeField references a DataStoreField by id.
type DataStoreNodeField struct {
	SchemaFieldID string `json:"schemaFieldId"`
	Logic         string `json:"logic,omitempty"`
}

// UnknownData keeps the raw payload of a node type this package does not model.
type UnknownData struct {
	Raw map[string]any
}

func (StartData) nodeType() NodeType { return NodeTypeStart }
func (EndData) nodeType() NodeType { return NodeTypeEnd }
func (AgentData) nodeType() NodeType { return NodeTypeAgent }
func (IfData) nodeType() NodeType { return NodeTypeIf }
func (DataStoreData) nodeType() NodeType { return NodeTypeDataStore }
func (UnknownData) nodeType() NodeType { return "" }

// DataStoreSchema declares the flow's data store.
type DataStoreSchema struct {
	Fields []DataStoreField `json:"fields,omitempty"`
}

// DataStoreFieldType is the declared type of a data store field.
type DataStoreFieldType string

const (
	DataStoreFieldBoolean DataStoreFieldType = "boolean"
	DataStoreFieldNumber  DataStoreFieldType = "number"
	DataStoreFieldInteger DataStoreFieldType = "integer"
	DataStoreFieldString  DataStoreFieldType = "string"
)

// DataStoreField is one declared data store variable. InitialValue is the
// literal text entered by the author.
type DataStoreField struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Type         DataStoreFieldType `json:"type"`
	InitialValue string             `json:"initialValue,omitempty"`
}

// Agent is an LLM call configured in the flow.
type Agent struct {
	ID                      string          `json:"id"`
	Name                    string          `json:"name"`
	ModelName               string          `json:"modelName,omitempty"`
	PromptMessages          []PromptMessage `json:"promptMessages,omitempty"`
	SchemaFields            []SchemaField   `json:"schemaFields,omitempty"`
	SchemaDescription       string          `json:"schemaDescription,omitempty"`
	EnabledStructuredOutput bool            `json:"enabledStructuredOutput,omitempty"`
	EnabledParameters       map[string]bool `json:"enabledParameters,omitempty"`
	ParameterValues         map[string]any  `json:"parameterValues,omitempty"`
}

// HasSchemaField reports whether the agent declares a structured output
// field named name.
func (a *Agent) HasSchemaField(name string) bool {
	for _, f := range a.SchemaFields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// SchemaField is one field of an agent's structured output.
type SchemaField struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// MessageType distinguishes plain messages from history messages.
type MessageType string

const (
	MessageTypePlain   MessageType = "plain"
	MessageTypeHistory MessageType = "history"
)

// Role is the chat role of a plain message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PromptMessage is one entry of an agent's prompt. History messages either
// use PromptBlocks for every past turn or split them into user and assistant
// blocks.
type PromptMessage struct {
	ID                    string        `json:"id,omitempty"`
	Type                  MessageType   `json:"type,omitempty"`
	Role                  Role          `json:"role,omitempty"`
	PromptBlocks          []PromptBlock `json:"promptBlocks,omitempty"`
	UserPromptBlocks      []PromptBlock `json:"userPromptBlocks,omitempty"`
	AssistantPromptBlocks []PromptBlock `json:"assistantPromptBlocks,omitempty"`
}

// IsHistory reports whether m expands to past conversation turns, either by
// its type marker or by carrying split user/assistant blocks.
func (m PromptMessage) IsHistory() bool {
	if strings.EqualFold(string(m.Type), string(MessageTypeHistory)) {
		return true
	}
	return len(m.UserPromptBlocks) > 0 || len(m.AssistantPromptBlocks) > 0
}

// IsSystem reports whether m is a plain system message.
func (m PromptMessage) IsSystem() bool {
	return !m.IsHistory() && m.Role == RoleSystem
}

// Blocks returns all blocks of m: unified blocks first, then user and
// assistant blocks.
func (m PromptMessage) Blocks() []PromptBlock {
	out := make([]PromptBlock, 0, len(m.PromptBlocks)+len(m.UserPromptBlocks)+len(m.AssistantPromptBlocks))
	out = append(out, m.PromptBlocks...)
	out = append(out, m.UserPromptBlocks...)
	out = append(out, m.AssistantPromptBlocks...)
	return out
}

// BlockType is the kind of a prompt block.
type BlockType string

const BlockTypePlain BlockType = "plain"

// PromptBlock is a piece of prompt text written in the template language.
type PromptBlock struct {
	ID       string    `json:"id,omitempty"`
	Type     BlockType `json:"type,omitempty"`
	Template string    `json:"template"`
}

// IsPlain reports whether b holds template text. An untyped block is plain.
func (b PromptBlock) IsPlain() bool {
	return b.Type == "" || b.Type == BlockTypePlain
}
