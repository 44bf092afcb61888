// Package document reads flow documents: a flow graph, its agents and
// optional provider connections, stored as YAML or JSON.
//
//	version: v1.0.0
//	flow:
//	  nodes: [...]
//	  edges: [...]
//	  dataStoreSchema: {fields: [...]}
//	  responseTemplate: "{{ writer.response }}"
//	agents: [...]
//	connections: [...]
//
// Loading validates the document against the JSON schema derived from the
// types below before anything is decoded, so decoding never sees a
// structurally wrong document.
package document

import (
	"github.com/githubnext/flowlint/pkg/flow"
	"github.com/githubnext/flowlint/pkg/provider"
)

// Document is the on-disk form of a flow and its agents.
type Document struct {
	Version     string                `json:"version" jsonschema:"document format version, a semantic version with major v1"`
	Flow        FlowSpec              `json:"flow" jsonschema:"the flow graph"`
	Agents      []flow.Agent          `json:"agents,omitempty" jsonschema:"agents referenced by agent nodes"`
	Connections []provider.Connection `json:"connections,omitempty" jsonschema:"API connections mapping model names to providers"`
}

// FlowSpec is the on-disk form of a flow. Node data is kept as a raw map
// until the node type is known.
type FlowSpec struct {
	Nodes            []NodeSpec            `json:"nodes"`
	Edges            []flow.Edge           `json:"edges,omitempty"`
	DataStoreSchema  *flow.DataStoreSchema `json:"dataStoreSchema,omitempty"`
	ResponseTemplate string                `json:"responseTemplate,omitempty"`
}

// NodeSpec is one node as stored. UIs keep layout and other data next to
// the fields flowlint reads; unknown keys are ignored.
type NodeSpec struct {
	ID   string         `json:"id"`
	Type flow.NodeType  `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// ToFlow converts the stored flow into the engine's model.
func (d *Document) ToFlow() *flow.Flow {
	f := &flow.Flow{
		Edges:            d.Flow.Edges,
		DataStoreSchema:  d.Flow.DataStoreSchema,
		ResponseTemplate: d.Flow.ResponseTemplate,
	}
	f.Nodes = make([]flow.Node, 0, len(d.Flow.Nodes))
	for _, n := range d.Flow.Nodes {
		f.Nodes = append(f.Nodes, flow.Node{
			ID:   n.ID,
			Type: n.Type,
			Data: flow.DecodeNodeData(n.Type, n.Data),
		})
	}
	return f
}
